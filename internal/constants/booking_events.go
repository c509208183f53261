package constants

// Booking event stream
const (
	BookingEventStream = "flightcore:booking-events"
	BookingEventGroup  = "seatmap-invalidators"
)

// BookingEventGroupFor names the consumer group of one instance. Every
// instance reads the full stream since each holds its own local seat maps.
func BookingEventGroupFor(instanceID string) string {
	return BookingEventGroup + ":" + instanceID
}

// Event types published after a booking transaction commits
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventSeatsReleased    = "seats.released"
	EventFlightCancelled  = "flight.cancelled"
)
