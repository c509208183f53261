package repositories

import (
	"context"
	"fmt"
	"time"

	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ScheduleReportRepository runs read-only report queries with sqlx
type ScheduleReportRepository struct {
	db *sqlx.DB
}

func NewScheduleReportRepository(db *sqlx.DB) *ScheduleReportRepository {
	return &ScheduleReportRepository{db: db}
}

// AirplaneSchedule lists non-deleted flights of an airplane overlapping [from, to)
func (r *ScheduleReportRepository) AirplaneSchedule(ctx context.Context, airplaneID string, from, to time.Time) ([]entities.ScheduleEntry, error) {
	entries := []entities.ScheduleEntry{}

	query := r.db.Rebind(constants.AirplaneScheduleQuery)
	if err := r.db.SelectContext(ctx, &entries, query, airplaneID, false, from, to); err != nil {
		return nil, fmt.Errorf("failed to fetch airplane schedule: %w", err)
	}
	return entries, nil
}

// FlightOccupancy reports seat usage per class of a flight
func (r *ScheduleReportRepository) FlightOccupancy(ctx context.Context, flightID string) ([]entities.ClassOccupancy, error) {
	rows := []entities.ClassOccupancy{}

	query := r.db.Rebind(constants.FlightOccupancyQuery)
	if err := r.db.SelectContext(ctx, &rows, query, flightID); err != nil {
		return nil, fmt.Errorf("failed to fetch flight occupancy: %w", err)
	}
	return rows, nil
}
