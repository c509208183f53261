package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

type PassengerRepository struct {
	db *gorm.DB
}

func NewPassengerRepository(db *gorm.DB) *PassengerRepository {
	return &PassengerRepository{db: db}
}

func (r *PassengerRepository) WithTx(tx *gorm.DB) *PassengerRepository {
	return &PassengerRepository{db: tx}
}

func (r *PassengerRepository) Create(ctx context.Context, passenger *gormModels.Passenger) error {
	if err := r.db.WithContext(ctx).Create(passenger).Error; err != nil {
		return fmt.Errorf("failed to create passenger: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the passenger does not exist
func (r *PassengerRepository) GetByID(ctx context.Context, id string) (*gormModels.Passenger, error) {
	var passenger gormModels.Passenger

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&passenger).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch passenger: %w", err)
	}

	return &passenger, nil
}

// ListByIDs returns the passengers that exist among ids, in no particular order
func (r *PassengerRepository) ListByIDs(ctx context.Context, ids []string) ([]gormModels.Passenger, error) {
	var passengers []gormModels.Passenger
	if len(ids) == 0 {
		return passengers, nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&passengers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch passengers: %w", err)
	}
	return passengers, nil
}
