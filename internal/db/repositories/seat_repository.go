package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// SeatRepository handles seat operations. Occupancy changes go through the
// guarded updates below; RowsAffected is the success signal.
type SeatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

func (r *SeatRepository) WithTx(tx *gorm.DB) *SeatRepository {
	return &SeatRepository{db: tx}
}

func (r *SeatRepository) CreateBatch(ctx context.Context, seats []gormModels.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&seats).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the seat does not exist
func (r *SeatRepository) GetByID(ctx context.Context, id string) (*gormModels.Seat, error) {
	var seat gormModels.Seat

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&seat).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seat: %w", err)
	}

	return &seat, nil
}

func (r *SeatRepository) ListByClass(ctx context.Context, classFlightID string) ([]gormModels.Seat, error) {
	var seats []gormModels.Seat

	err := r.db.WithContext(ctx).
		Where("class_flight_id = ?", classFlightID).
		Order("seat_row ASC, seat_number ASC").
		Find(&seats).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

// ListAvailable returns available seats lowest row first, then by letter
func (r *SeatRepository) ListAvailable(ctx context.Context, classFlightID string, limit int) ([]gormModels.Seat, error) {
	var seats []gormModels.Seat

	q := r.db.WithContext(ctx).
		Where("class_flight_id = ? AND is_available = ?", classFlightID, true).
		Order("seat_row ASC, seat_number ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch available seats: %w", err)
	}
	return seats, nil
}

func (r *SeatRepository) CountByClass(ctx context.Context, classFlightID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("class_flight_id = ?", classFlightID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count seats: %w", err)
	}
	return int(count), nil
}

func (r *SeatRepository) CountAvailable(ctx context.Context, classFlightID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("class_flight_id = ? AND is_available = ?", classFlightID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count available seats: %w", err)
	}
	return int(count), nil
}

// MarkOccupied binds the seat to a passenger only if it is still available.
// Returns false when another writer took the seat first.
func (r *SeatRepository) MarkOccupied(ctx context.Context, seatID, passengerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("id = ? AND is_available = ?", seatID, true).
		Updates(map[string]interface{}{
			"is_available": false,
			"passenger_id": passengerID,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to assign seat: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Release frees an occupied seat. Already available seats are left alone.
func (r *SeatRepository) Release(ctx context.Context, seatID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("id = ? AND is_available = ?", seatID, false).
		Updates(map[string]interface{}{
			"is_available": true,
			"passenger_id": nil,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to release seat: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ReleaseHeldBy frees the given seats of a class that are still held by the
// passenger. Seats since reassigned to someone else are untouched.
func (r *SeatRepository) ReleaseHeldBy(ctx context.Context, classFlightID, passengerID string, seatIDs []string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("class_flight_id = ? AND passenger_id = ? AND id IN ?", classFlightID, passengerID, seatIDs).
		Updates(map[string]interface{}{
			"is_available": true,
			"passenger_id": nil,
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to release booking seats: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ReleaseAllForPassenger frees every seat, in any class, held by the passenger
func (r *SeatRepository) ReleaseAllForPassenger(ctx context.Context, passengerID string) ([]gormModels.Seat, error) {
	var held []gormModels.Seat
	if err := r.db.WithContext(ctx).
		Where("passenger_id = ?", passengerID).
		Find(&held).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch passenger seats: %w", err)
	}
	if len(held) == 0 {
		return nil, nil
	}

	result := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("passenger_id = ?", passengerID).
		Updates(map[string]interface{}{
			"is_available": true,
			"passenger_id": nil,
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to release passenger seats: %w", result.Error)
	}
	return held, nil
}
