package dtos

import (
	"airline-ops/flightcore/internal/constants"
	"time"
)

type CreateAirlineRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type CreateAirplaneRequest struct {
	AirlineID       string `json:"airline_id"`
	Model           string `json:"model"`
	SeatCapacity    int    `json:"seat_capacity"`
	ManufactureYear int    `json:"manufacture_year"`
}

// CreateFlightRequest leaves ID empty to have one generated from the airplane id
type CreateFlightRequest struct {
	ID               string                 `json:"id,omitempty"`
	AirlineID        string                 `json:"airline_id"`
	AirplaneID       string                 `json:"airplane_id"`
	OriginCode       string                 `json:"origin_code"`
	DestinationCode  string                 `json:"destination_code"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Terminal         string                 `json:"terminal"`
	Gate             string                 `json:"gate"`
	BaggageAllowance int                    `json:"baggage_allowance"`
	Status           constants.FlightStatus `json:"status,omitempty"`
}

// UpdateFlightRequest applies only the fields that are set
type UpdateFlightRequest struct {
	AirplaneID       *string                 `json:"airplane_id,omitempty"`
	OriginCode       *string                 `json:"origin_code,omitempty"`
	DestinationCode  *string                 `json:"destination_code,omitempty"`
	DepartureTime    *time.Time              `json:"departure_time,omitempty"`
	ArrivalTime      *time.Time              `json:"arrival_time,omitempty"`
	Terminal         *string                 `json:"terminal,omitempty"`
	Gate             *string                 `json:"gate,omitempty"`
	BaggageAllowance *int                    `json:"baggage_allowance,omitempty"`
	Status           *constants.FlightStatus `json:"status,omitempty"`
}

type FlightStatusRequest struct {
	Status constants.FlightStatus `json:"status"`
}

type CreateClassFlightRequest struct {
	ClassType    string  `json:"class_type"`
	SeatCapacity int     `json:"seat_capacity"`
	Price        float64 `json:"price"`
}

// AddSeatsRequest takes explicit seat numbers, a row/letter layout, or both
type AddSeatsRequest struct {
	SeatNumbers []string    `json:"seat_numbers,omitempty"`
	Layout      *SeatLayout `json:"layout,omitempty"`
}

type SeatLayout struct {
	FromRow int    `json:"from_row"`
	ToRow   int    `json:"to_row"`
	Letters string `json:"letters"`
}

type AssignSeatRequest struct {
	PassengerID string `json:"passenger_id"`
}

type CreatePassengerRequest struct {
	FullName   string    `json:"full_name"`
	BirthDate  time.Time `json:"birth_date"`
	Gender     string    `json:"gender"`
	IDPassport string    `json:"id_passport"`
}

type CreateBookingRequest struct {
	FlightID       string                  `json:"flight_id"`
	ClassFlightID  string                  `json:"class_flight_id"`
	ContactEmail   string                  `json:"contact_email"`
	ContactPhone   string                  `json:"contact_phone"`
	PassengerCount int                     `json:"passenger_count"`
	PassengerIDs   []string                `json:"passenger_ids"`
	Status         constants.BookingStatus `json:"status,omitempty"`
}

type UpdateBookingRequest struct {
	ContactEmail *string                  `json:"contact_email,omitempty"`
	ContactPhone *string                  `json:"contact_phone,omitempty"`
	Status       *constants.BookingStatus `json:"status,omitempty"`
}
