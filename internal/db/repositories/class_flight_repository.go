package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClassFlightRepository handles fare class operations using GORM
type ClassFlightRepository struct {
	db *gorm.DB
}

func NewClassFlightRepository(db *gorm.DB) *ClassFlightRepository {
	return &ClassFlightRepository{db: db}
}

func (r *ClassFlightRepository) WithTx(tx *gorm.DB) *ClassFlightRepository {
	return &ClassFlightRepository{db: tx}
}

func (r *ClassFlightRepository) Create(ctx context.Context, class *gormModels.ClassFlight) error {
	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class flight: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the class does not exist
func (r *ClassFlightRepository) GetByID(ctx context.Context, id string) (*gormModels.ClassFlight, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDForUpdate locks the class row until the transaction ends
func (r *ClassFlightRepository) GetByIDForUpdate(ctx context.Context, id string) (*gormModels.ClassFlight, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *ClassFlightRepository) get(ctx context.Context, q *gorm.DB, id string) (*gormModels.ClassFlight, error) {
	var class gormModels.ClassFlight

	err := q.WithContext(ctx).
		Where("id = ?", id).
		First(&class).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch class flight: %w", err)
	}

	return &class, nil
}

func (r *ClassFlightRepository) ListByFlight(ctx context.Context, flightID string) ([]gormModels.ClassFlight, error) {
	var classes []gormModels.ClassFlight

	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("class_type ASC").
		Find(&classes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list class flights: %w", err)
	}
	return classes, nil
}

func (r *ClassFlightRepository) ExistsForFlight(ctx context.Context, flightID, classType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.ClassFlight{}).
		Where("flight_id = ? AND class_type = ?", flightID, classType).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check class flight: %w", err)
	}
	return count > 0, nil
}

// SumCapacityByFlight adds up the seat capacity of every class on a flight
func (r *ClassFlightRepository) SumCapacityByFlight(ctx context.Context, flightID string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.ClassFlight{}).
		Where("flight_id = ?", flightID).
		Select("COALESCE(SUM(seat_capacity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum class capacity: %w", err)
	}
	return int(total), nil
}

// ListIDsForOpenFlights returns the class ids of every non-deleted flight
func (r *ClassFlightRepository) ListIDsForOpenFlights(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.ClassFlight{}).
		Joins("JOIN flights ON flights.id = class_flights.flight_id").
		Where("flights.is_deleted = ?", false).
		Order("class_flights.id ASC").
		Pluck("class_flights.id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list class ids: %w", err)
	}
	return ids, nil
}

// SetAvailableSeats stores the recomputed availability snapshot
func (r *ClassFlightRepository) SetAvailableSeats(ctx context.Context, id string, available int) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.ClassFlight{}).
		Where("id = ?", id).
		Update("available_seats", available).Error
	if err != nil {
		return fmt.Errorf("failed to store available seats: %w", err)
	}
	return nil
}
