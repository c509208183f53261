package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to FlightStatus
		want     bool
	}{
		{FlightScheduled, FlightInFlight, true},
		{FlightScheduled, FlightDelayed, true},
		{FlightScheduled, FlightFinished, false},
		{FlightDelayed, FlightInFlight, true},
		{FlightDelayed, FlightFinished, true},
		{FlightDelayed, FlightScheduled, false},
		{FlightInFlight, FlightFinished, true},
		{FlightInFlight, FlightDelayed, false},
		{FlightFinished, FlightScheduled, false},
		{FlightScheduled, FlightCancelled, false},
		{FlightCancelled, FlightScheduled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestFlightStatusPredicates(t *testing.T) {
	assert.True(t, FlightInFlight.IsActive())
	assert.False(t, FlightFinished.IsActive())
	assert.False(t, FlightCancelled.IsActive())

	assert.True(t, FlightDelayed.IsMutable())
	assert.False(t, FlightInFlight.IsMutable())

	assert.True(t, FlightCancelled.Valid())
	assert.False(t, FlightStatus("Boarding").Valid())
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingUnpaid.CanTransitionTo(BookingPaid))
	assert.True(t, BookingUnpaid.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingUnpaid.CanTransitionTo(BookingRescheduled))
	assert.True(t, BookingPaid.CanTransitionTo(BookingRescheduled))
	assert.False(t, BookingPaid.CanTransitionTo(BookingUnpaid))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingPaid))
	assert.False(t, BookingRescheduled.CanTransitionTo(BookingCancelled))

	assert.True(t, BookingPaid.IsMutable())
	assert.False(t, BookingRescheduled.IsMutable())
}

func TestStatusScan(t *testing.T) {
	var fs FlightStatus
	require.NoError(t, fs.Scan([]byte("Delayed")))
	assert.Equal(t, FlightDelayed, fs)

	var bs BookingStatus
	require.NoError(t, bs.Scan("Paid"))
	assert.Equal(t, BookingPaid, bs)

	assert.Error(t, fs.Scan(42))
}

func TestCachePrefixKey(t *testing.T) {
	assert.Equal(t, "SEATMAP_abc", CachePrefixSeatMap.Key("abc"))
}
