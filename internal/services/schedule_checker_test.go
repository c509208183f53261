package services

import (
	"context"
	"testing"

	"airline-ops/flightcore/internal/constants"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFlights struct {
	flights []gormModels.Flight
}

func (s staticFlights) ListActiveForAirplane(context.Context, string) ([]gormModels.Flight, error) {
	return s.flights, nil
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		dep, arr   int
		oDep, oArr int
		want       bool
	}{
		{"partial overlap", 11, 13, 10, 12, true},
		{"touching end", 12, 14, 10, 12, false},
		{"touching start", 8, 10, 10, 12, false},
		{"contained", 10, 11, 9, 13, true},
		{"containing", 9, 13, 10, 11, true},
		{"identical", 10, 12, 10, 12, true},
		{"disjoint", 14, 16, 10, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(at(tt.dep), at(tt.arr), at(tt.oDep), at(tt.oArr)))
			assert.Equal(t, tt.want, Overlaps(at(tt.oDep), at(tt.oArr), at(tt.dep), at(tt.arr)))
		})
	}
}

func TestScheduleChecker_Conflicts(t *testing.T) {
	src := staticFlights{flights: []gormModels.Flight{
		{ID: "GA-AAA-001", DepartureTime: at(10), ArrivalTime: at(12), Status: constants.FlightScheduled},
		{ID: "GA-AAA-002", DepartureTime: at(11), ArrivalTime: at(13), Status: constants.FlightFinished},
		{ID: "GA-AAA-003", DepartureTime: at(11), ArrivalTime: at(13), Status: constants.FlightCancelled, IsDeleted: true},
		{ID: "GA-AAA-004", DepartureTime: at(12), ArrivalTime: at(15), Status: constants.FlightDelayed},
	}}
	checker := NewScheduleChecker()
	ctx := context.Background()

	conflicts, err := checker.Conflicts(ctx, src, "GA-AAA", at(11), at(13), "")
	require.NoError(t, err)
	ids := []string{}
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"GA-AAA-001", "GA-AAA-004"}, ids)

	conflicts, err = checker.Conflicts(ctx, src, "GA-AAA", at(11), at(12), "GA-AAA-001")
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	free, err := checker.IsAirplaneAvailable(ctx, src, "GA-AAA", at(15), at(17), "")
	require.NoError(t, err)
	assert.True(t, free)
}
