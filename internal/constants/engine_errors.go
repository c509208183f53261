package constants

// Engine error codes returned to API callers alongside the message.

// Lookup failures
const (
	ErrCodeAirlineNotFound   = "AIRLINE_NOT_FOUND"
	ErrCodeAirplaneNotFound  = "AIRPLANE_NOT_FOUND"
	ErrCodeFlightNotFound    = "FLIGHT_NOT_FOUND"
	ErrCodeClassNotFound     = "CLASS_FLIGHT_NOT_FOUND"
	ErrCodePassengerNotFound = "PASSENGER_NOT_FOUND"
	ErrCodeBookingNotFound   = "BOOKING_NOT_FOUND"
	ErrCodeSeatNotFound      = "SEAT_NOT_FOUND"
)

// Input validation
const (
	ErrCodeInvalidTimeRange       = "INVALID_TIME_RANGE"
	ErrCodeTooManyPassengers      = "TOO_MANY_PASSENGERS"
	ErrCodePassengerCountMismatch = "PASSENGER_COUNT_MISMATCH"
	ErrCodeInvalidField           = "INVALID_FIELD"
	ErrCodeClassCapacityExceeded  = "CLASS_CAPACITY_EXCEEDS_AIRPLANE"
	ErrCodeClassNotOnFlight       = "CLASS_NOT_ON_FLIGHT"
)

// State and scheduling
const (
	ErrCodeIllegalFlightState  = "ILLEGAL_FLIGHT_STATE"
	ErrCodeIllegalBookingState = "ILLEGAL_BOOKING_STATE"
	ErrCodeFlightNotBookable   = "FLIGHT_NOT_BOOKABLE"
	ErrCodeAirplaneDeleted     = "AIRPLANE_DELETED"
	ErrCodeAirplaneInFlight    = "AIRPLANE_IN_FLIGHT"
	ErrCodeSchedulingConflict  = "SCHEDULING_CONFLICT"
)

// Capacity and dependents
const (
	ErrCodeNoSeatsAvailable = "NO_SEATS_AVAILABLE"
	ErrCodeSeatsExhausted   = "SEATS_EXHAUSTED"
	ErrCodeSeatPoolFull     = "SEAT_POOL_FULL"
	ErrCodeActiveBookings   = "ACTIVE_BOOKINGS"
	ErrCodeActiveAirplanes  = "ACTIVE_AIRPLANES"
	ErrCodeDuplicate        = "DUPLICATE"
)

var EngineErrorMessages = map[string]string{
	ErrCodeAirlineNotFound:   "airline not found",
	ErrCodeAirplaneNotFound:  "airplane not found",
	ErrCodeFlightNotFound:    "flight not found",
	ErrCodeClassNotFound:     "class flight not found",
	ErrCodePassengerNotFound: "passenger not found",
	ErrCodeBookingNotFound:   "booking not found",
	ErrCodeSeatNotFound:      "seat not found",

	ErrCodeInvalidTimeRange:       "departure time must be before arrival time",
	ErrCodeTooManyPassengers:      "too many passengers for one booking",
	ErrCodePassengerCountMismatch: "passenger count does not match the passenger list",
	ErrCodeInvalidField:           "invalid field value",
	ErrCodeClassCapacityExceeded:  "class capacities exceed the airplane seat capacity",
	ErrCodeClassNotOnFlight:       "class flight does not belong to the flight",

	ErrCodeIllegalFlightState:  "operation not allowed in the flight's current status",
	ErrCodeIllegalBookingState: "operation not allowed in the booking's current status",
	ErrCodeFlightNotBookable:   "flight is not open for booking",
	ErrCodeAirplaneDeleted:     "airplane has been deleted",
	ErrCodeAirplaneInFlight:    "airplane has a flight in the air",
	ErrCodeSchedulingConflict:  "airplane is already scheduled in an overlapping time window",

	ErrCodeNoSeatsAvailable: "no seats available",
	ErrCodeSeatsExhausted:   "seat assignment failed; class likely fully booked",
	ErrCodeSeatPoolFull:     "class already holds its full seat capacity",
	ErrCodeActiveBookings:   "flight has paid or rescheduled bookings",
	ErrCodeActiveAirplanes:  "airline still owns active airplanes",
	ErrCodeDuplicate:        "record already exists",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := EngineErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
