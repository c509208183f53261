package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// AirlineRepository handles airline table operations using GORM
type AirlineRepository struct {
	db *gorm.DB
}

func NewAirlineRepository(db *gorm.DB) *AirlineRepository {
	return &AirlineRepository{db: db}
}

// WithTx returns a copy bound to an open transaction
func (r *AirlineRepository) WithTx(tx *gorm.DB) *AirlineRepository {
	return &AirlineRepository{db: tx}
}

func (r *AirlineRepository) Create(ctx context.Context, airline *gormModels.Airline) error {
	if err := r.db.WithContext(ctx).Create(airline).Error; err != nil {
		return fmt.Errorf("failed to create airline: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the airline does not exist
func (r *AirlineRepository) GetByID(ctx context.Context, id string) (*gormModels.Airline, error) {
	var airline gormModels.Airline

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&airline).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airline: %w", err)
	}

	return &airline, nil
}

func (r *AirlineRepository) List(ctx context.Context) ([]gormModels.Airline, error) {
	var airlines []gormModels.Airline

	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&airlines).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list airlines: %w", err)
	}
	return airlines, nil
}

func (r *AirlineRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Airline{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return fmt.Errorf("failed to delete airline: %w", result.Error)
	}
	return nil
}
