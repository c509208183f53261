package services

import (
	"context"
	"time"

	gormModels "airline-ops/flightcore/internal/models/gorm"
)

// flightWindowSource lists an airplane's flights that may still occupy its
// schedule. The flight repository satisfies it, bound or not to a tx.
type flightWindowSource interface {
	ListActiveForAirplane(ctx context.Context, airplaneID string) ([]gormModels.Flight, error)
}

// ScheduleChecker decides whether a candidate time window fits an airplane
type ScheduleChecker struct{}

func NewScheduleChecker() *ScheduleChecker {
	return &ScheduleChecker{}
}

// Overlaps reports whether [dep, arr) and [otherDep, otherArr) intersect.
// Windows that only touch at a boundary do not overlap.
func Overlaps(dep, arr, otherDep, otherArr time.Time) bool {
	disjoint := !arr.After(otherDep) || !dep.Before(otherArr)
	return !disjoint
}

// Conflicts returns every active flight of the airplane overlapping the
// window, skipping excludeFlightID.
func (c *ScheduleChecker) Conflicts(ctx context.Context, src flightWindowSource, airplaneID string, dep, arr time.Time, excludeFlightID string) ([]gormModels.Flight, error) {
	flights, err := src.ListActiveForAirplane(ctx, airplaneID)
	if err != nil {
		return nil, err
	}

	var conflicts []gormModels.Flight
	for _, f := range flights {
		if excludeFlightID != "" && f.ID == excludeFlightID {
			continue
		}
		if f.IsDeleted || !f.Status.IsActive() {
			continue
		}
		if Overlaps(dep, arr, f.DepartureTime, f.ArrivalTime) {
			conflicts = append(conflicts, f)
		}
	}
	return conflicts, nil
}

// IsAirplaneAvailable is true when no active flight overlaps the window
func (c *ScheduleChecker) IsAirplaneAvailable(ctx context.Context, src flightWindowSource, airplaneID string, dep, arr time.Time, excludeFlightID string) (bool, error) {
	conflicts, err := c.Conflicts(ctx, src, airplaneID, dep, arr, excludeFlightID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
