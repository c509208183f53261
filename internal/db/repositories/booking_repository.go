package repositories

import (
	"context"
	"errors"
	"fmt"

	"airline-ops/flightcore/internal/constants"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// BookingRepository handles bookings and their passenger/seat rows
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) Create(ctx context.Context, booking *gormModels.Booking) error {
	if err := r.db.WithContext(ctx).Omit("Passengers").Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) AddPassengers(ctx context.Context, rows []gormModels.BookingPassenger) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to link booking passengers: %w", err)
	}
	return nil
}

// GetByID loads the booking with its passenger rows in booking order.
// Returns nil, nil when the booking does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*gormModels.Booking, error) {
	var booking gormModels.Booking

	err := r.db.WithContext(ctx).
		Preload("Passengers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&booking).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return &booking, nil
}

func (r *BookingRepository) ListByFlight(ctx context.Context, flightID string) ([]gormModels.Booking, error) {
	var bookings []gormModels.Booking

	err := r.db.WithContext(ctx).
		Preload("Passengers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("flight_id = ?", flightID).
		Order("id ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListIDsWithPrefix returns every booking id (cancelled included) starting with prefix
func (r *BookingRepository) ListIDsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id LIKE ?", prefix+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking ids: %w", err)
	}
	return ids, nil
}

// CountBlocking counts Paid/Rescheduled bookings on the given flights
func (r *BookingRepository) CountBlocking(ctx context.Context, flightIDs ...string) (int64, error) {
	if len(flightIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("flight_id IN ? AND status IN ? AND is_deleted = ?", flightIDs, constants.BlockingBookingStatuses, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

// UpdateFields applies a partial update guarded by the expected status.
// Returns false when the booking moved on in the meantime.
func (r *BookingRepository) UpdateFields(ctx context.Context, id string, expected constants.BookingStatus, fields map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, expected, false).
		Updates(fields)

	if result.Error != nil {
		return false, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Cancel soft deletes a booking that is still Unpaid or Paid
func (r *BookingRepository) Cancel(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Booking{}).
		Where("id = ? AND is_deleted = ? AND status IN ?", id, false,
			[]constants.BookingStatus{constants.BookingUnpaid, constants.BookingPaid}).
		Updates(map[string]interface{}{
			"status":     constants.BookingCancelled,
			"is_deleted": true,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel booking: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
