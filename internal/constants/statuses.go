package constants

import (
	"database/sql/driver"
	"fmt"
)

// FlightStatus mirrors the flight_status column
type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightInFlight  FlightStatus = "InFlight"
	FlightFinished  FlightStatus = "Finished"
	FlightDelayed   FlightStatus = "Delayed"
	FlightCancelled FlightStatus = "Cancelled"
)

// ActiveFlightStatuses still occupy the airplane's schedule.
var ActiveFlightStatuses = []FlightStatus{FlightScheduled, FlightInFlight, FlightDelayed}

// flightTransitions excludes Cancelled, which only the cancel operation sets.
var flightTransitions = map[FlightStatus][]FlightStatus{
	FlightScheduled: {FlightInFlight, FlightDelayed},
	FlightDelayed:   {FlightInFlight, FlightFinished},
	FlightInFlight:  {FlightFinished},
}

func (s FlightStatus) String() string { return string(s) }

// IsActive reports whether the flight blocks its airplane's time window.
func (s FlightStatus) IsActive() bool {
	for _, a := range ActiveFlightStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsMutable reports whether update/cancel are legal from this status.
func (s FlightStatus) IsMutable() bool {
	return s == FlightScheduled || s == FlightDelayed
}

// CanTransitionTo applies the flight state graph.
func (s FlightStatus) CanTransitionTo(target FlightStatus) bool {
	for _, next := range flightTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s FlightStatus) Valid() bool {
	switch s {
	case FlightScheduled, FlightInFlight, FlightFinished, FlightDelayed, FlightCancelled:
		return true
	}
	return false
}

func (s *FlightStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = FlightStatus(v)
	case []byte:
		*s = FlightStatus(v)
	default:
		return fmt.Errorf("FlightStatus: cannot scan type %T", src)
	}
	return nil
}

func (s FlightStatus) Value() (driver.Value, error) { return string(s), nil }

// BookingStatus mirrors the booking_status column
type BookingStatus string

const (
	BookingUnpaid      BookingStatus = "Unpaid"
	BookingPaid        BookingStatus = "Paid"
	BookingCancelled   BookingStatus = "Cancelled"
	BookingRescheduled BookingStatus = "Rescheduled"
)

// BlockingBookingStatuses prevent a flight from being cancelled.
var BlockingBookingStatuses = []BookingStatus{BookingPaid, BookingRescheduled}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingUnpaid: {BookingPaid, BookingCancelled},
	BookingPaid:   {BookingCancelled, BookingRescheduled},
}

func (s BookingStatus) String() string { return string(s) }

// IsMutable reports whether update/cancel are legal from this status.
func (s BookingStatus) IsMutable() bool {
	return s == BookingUnpaid || s == BookingPaid
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingUnpaid, BookingPaid, BookingCancelled, BookingRescheduled:
		return true
	}
	return false
}

func (s *BookingStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = BookingStatus(v)
	case []byte:
		*s = BookingStatus(v)
	default:
		return fmt.Errorf("BookingStatus: cannot scan type %T", src)
	}
	return nil
}

func (s BookingStatus) Value() (driver.Value, error) { return string(s), nil }
