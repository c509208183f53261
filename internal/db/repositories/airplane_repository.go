package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirplaneRepository handles airplane table operations using GORM
type AirplaneRepository struct {
	db *gorm.DB
}

func NewAirplaneRepository(db *gorm.DB) *AirplaneRepository {
	return &AirplaneRepository{db: db}
}

func (r *AirplaneRepository) WithTx(tx *gorm.DB) *AirplaneRepository {
	return &AirplaneRepository{db: tx}
}

func (r *AirplaneRepository) Create(ctx context.Context, airplane *gormModels.Airplane) error {
	if err := r.db.WithContext(ctx).Create(airplane).Error; err != nil {
		return fmt.Errorf("failed to create airplane: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the airplane does not exist
func (r *AirplaneRepository) GetByID(ctx context.Context, id string) (*gormModels.Airplane, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDForUpdate locks the airplane row until the surrounding
// transaction ends. Schedule writes for one airplane serialize on it.
func (r *AirplaneRepository) GetByIDForUpdate(ctx context.Context, id string) (*gormModels.Airplane, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *AirplaneRepository) get(ctx context.Context, q *gorm.DB, id string) (*gormModels.Airplane, error) {
	var airplane gormModels.Airplane

	err := q.WithContext(ctx).
		Where("id = ?", id).
		First(&airplane).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airplane: %w", err)
	}

	return &airplane, nil
}

// Exists checks every airplane, deleted or not, so retired ids are never reused
func (r *AirplaneRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Airplane{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check airplane id: %w", err)
	}
	return count > 0, nil
}

func (r *AirplaneRepository) ListByAirline(ctx context.Context, airlineID string) ([]gormModels.Airplane, error) {
	var airplanes []gormModels.Airplane

	err := r.db.WithContext(ctx).
		Where("airline_id = ? AND is_deleted = ?", airlineID, false).
		Order("id ASC").
		Find(&airplanes).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list airplanes: %w", err)
	}
	return airplanes, nil
}

func (r *AirplaneRepository) CountActiveByAirline(ctx context.Context, airlineID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Airplane{}).
		Where("airline_id = ? AND is_deleted = ?", airlineID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count airplanes: %w", err)
	}
	return count, nil
}

func (r *AirplaneRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Airplane{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return fmt.Errorf("failed to delete airplane: %w", result.Error)
	}
	return nil
}
