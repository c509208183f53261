package entities

import (
	"airline-ops/flightcore/internal/constants"
	"time"
)

// ScheduleEntry is one row of an airplane's timetable report
type ScheduleEntry struct {
	FlightID        string                 `db:"id" json:"flight_id"`
	OriginCode      string                 `db:"origin_code" json:"origin_code"`
	DestinationCode string                 `db:"destination_code" json:"destination_code"`
	DepartureTime   time.Time              `db:"departure_time" json:"departure_time"`
	ArrivalTime     time.Time              `db:"arrival_time" json:"arrival_time"`
	Status          constants.FlightStatus `db:"status" json:"status"`
}

// ClassOccupancy summarizes seat usage of one fare class
type ClassOccupancy struct {
	ClassFlightID  string `db:"class_flight_id" json:"class_flight_id"`
	ClassType      string `db:"class_type" json:"class_type"`
	SeatCapacity   int    `db:"seat_capacity" json:"seat_capacity"`
	SeatRows       int    `db:"seat_rows" json:"seat_rows"`
	AvailableSeats int    `db:"available_seats" json:"available_seats"`
}

// Occupied is the number of seats currently held by passengers
func (c ClassOccupancy) Occupied() int { return c.SeatRows - c.AvailableSeats }
