package common

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingEvent is emitted after a booking or flight transaction commits.
// Downstream consumers (seat map caches, the loyalty ledger) read it from
// the booking event stream.
type BookingEvent struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id,omitempty"`
	FlightID      string    `json:"flight_id,omitempty"`
	ClassFlightID string    `json:"class_flight_id,omitempty"`
	PassengerIDs  []string  `json:"passenger_ids,omitempty"`
	SeatIDs       []string  `json:"seat_ids,omitempty"`
	TotalPrice    float64   `json:"total_price,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingEvent stamps an event with a fresh id and the current time
func NewBookingEvent(eventType string) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher defines the contract for booking event sinks
type EventPublisher interface {
	Publish(ctx context.Context, event *BookingEvent) error
}

// NoopEventPublisher drops events; used when Redis is disabled
type NoopEventPublisher struct{}

var _ EventPublisher = NoopEventPublisher{}

func (NoopEventPublisher) Publish(context.Context, *BookingEvent) error { return nil }
