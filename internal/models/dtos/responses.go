package dtos

import (
	"airline-ops/flightcore/internal/constants"
	"time"
)

// --- Controller envelope ----

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Code         string `json:"code,omitempty"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// --- Reference data ----

type AirlineResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	IsDeleted bool   `json:"is_deleted"`
}

type AirplaneResponse struct {
	ID              string `json:"id"`
	AirlineID       string `json:"airline_id"`
	Model           string `json:"model"`
	SeatCapacity    int    `json:"seat_capacity"`
	ManufactureYear int    `json:"manufacture_year"`
	IsDeleted       bool   `json:"is_deleted"`
}

type AirplaneDeleteResponse struct {
	AirplaneID       string   `json:"airplane_id"`
	CancelledFlights []string `json:"cancelled_flights"`
}

type PassengerResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	BirthDate  time.Time `json:"birth_date"`
	Gender     string    `json:"gender"`
	IDPassport string    `json:"id_passport"`
}

// --- Scheduling ----

type FlightResponse struct {
	ID               string                 `json:"id"`
	AirlineID        string                 `json:"airline_id"`
	AirplaneID       string                 `json:"airplane_id"`
	OriginCode       string                 `json:"origin_code"`
	DestinationCode  string                 `json:"destination_code"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Terminal         string                 `json:"terminal"`
	Gate             string                 `json:"gate"`
	BaggageAllowance int                    `json:"baggage_allowance"`
	Status           constants.FlightStatus `json:"status"`
	IsDeleted        bool                   `json:"is_deleted"`
}

type AvailabilityResponse struct {
	AirplaneID         string    `json:"airplane_id"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	Available          bool      `json:"available"`
	ConflictingFlights []string  `json:"conflicting_flights"`
}

// --- Inventory ----

type ClassFlightResponse struct {
	ID             string  `json:"id"`
	FlightID       string  `json:"flight_id"`
	ClassType      string  `json:"class_type"`
	SeatCapacity   int     `json:"seat_capacity"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
}

type SeatResponse struct {
	ID            string  `json:"id"`
	ClassFlightID string  `json:"class_flight_id"`
	SeatNumber    string  `json:"seat_number"`
	IsAvailable   bool    `json:"is_available"`
	PassengerID   *string `json:"passenger_id"`
}

type SeatMapResponse struct {
	ClassFlightID  string         `json:"class_flight_id"`
	ClassType      string         `json:"class_type"`
	SeatCapacity   int            `json:"seat_capacity"`
	AvailableSeats int            `json:"available_seats"`
	Seats          []SeatResponse `json:"seats"`
}

type SeatReleaseResponse struct {
	PassengerID string `json:"passenger_id"`
	Released    int    `json:"released"`
}

// --- Bookings ----

type BookingPassengerResponse struct {
	PassengerID string `json:"passenger_id"`
	SeatID      string `json:"seat_id"`
	SeatNumber  string `json:"seat_number"`
}

type BookingResponse struct {
	ID             string                     `json:"id"`
	FlightID       string                     `json:"flight_id"`
	ClassFlightID  string                     `json:"class_flight_id"`
	ContactEmail   string                     `json:"contact_email"`
	ContactPhone   string                     `json:"contact_phone"`
	PassengerCount int                        `json:"passenger_count"`
	Status         constants.BookingStatus    `json:"status"`
	TotalPrice     float64                    `json:"total_price"`
	IsDeleted      bool                       `json:"is_deleted"`
	Passengers     []BookingPassengerResponse `json:"passengers"`
	CreatedAt      time.Time                  `json:"created_at"`
}
