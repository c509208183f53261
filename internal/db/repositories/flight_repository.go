package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airline-ops/flightcore/internal/constants"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlightFilter narrows List; zero values are ignored
type FlightFilter struct {
	AirplaneID      string
	OriginCode      string
	DestinationCode string
	Status          constants.FlightStatus
	DepartFrom      *time.Time
	DepartTo        *time.Time
	IncludeDeleted  bool
	Limit           int
}

// FlightRepository handles flight table operations using GORM
type FlightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

func (r *FlightRepository) WithTx(tx *gorm.DB) *FlightRepository {
	return &FlightRepository{db: tx}
}

func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when the flight does not exist
func (r *FlightRepository) GetByID(ctx context.Context, id string) (*gormModels.Flight, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDForUpdate locks the flight row for the rest of the transaction
func (r *FlightRepository) GetByIDForUpdate(ctx context.Context, id string) (*gormModels.Flight, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *FlightRepository) get(ctx context.Context, q *gorm.DB, id string) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := q.WithContext(ctx).
		Where("id = ?", id).
		First(&flight).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// ListActiveForAirplane returns the non-deleted flights of an airplane whose
// status still occupies its schedule
func (r *FlightRepository) ListActiveForAirplane(ctx context.Context, airplaneID string) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight

	err := r.db.WithContext(ctx).
		Where("airplane_id = ? AND is_deleted = ? AND status IN ?", airplaneID, false, constants.ActiveFlightStatuses).
		Order("departure_time ASC").
		Find(&flights).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch airplane flights: %w", err)
	}
	return flights, nil
}

// ListIDsWithPrefix returns every flight id (deleted included) starting with prefix
func (r *FlightRepository) ListIDsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id LIKE ?", prefix+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight ids: %w", err)
	}
	return ids, nil
}

func (r *FlightRepository) List(ctx context.Context, filter FlightFilter) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight

	q := r.db.WithContext(ctx).Model(&gormModels.Flight{})
	if !filter.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if filter.AirplaneID != "" {
		q = q.Where("airplane_id = ?", filter.AirplaneID)
	}
	if filter.OriginCode != "" {
		q = q.Where("origin_code = ?", filter.OriginCode)
	}
	if filter.DestinationCode != "" {
		q = q.Where("destination_code = ?", filter.DestinationCode)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DepartFrom != nil {
		q = q.Where("departure_time >= ?", *filter.DepartFrom)
	}
	if filter.DepartTo != nil {
		q = q.Where("departure_time < ?", *filter.DepartTo)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	if err := q.Order("departure_time ASC").Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

// Save writes every column of an already loaded flight
func (r *FlightRepository) Save(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Save(flight).Error; err != nil {
		return fmt.Errorf("failed to update flight: %w", err)
	}
	return nil
}

// UpdateStatus moves a flight from one status to another only if it is
// still in the expected status. Returns false when the guard did not match.
func (r *FlightRepository) UpdateStatus(ctx context.Context, id string, from, to constants.FlightStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, from, false).
		Update("status", to)

	if result.Error != nil {
		return false, fmt.Errorf("failed to update flight status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Cancel soft deletes a flight that is still Scheduled or Delayed
func (r *FlightRepository) Cancel(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ? AND is_deleted = ? AND status IN ?", id, false,
			[]constants.FlightStatus{constants.FlightScheduled, constants.FlightDelayed}).
		Updates(map[string]interface{}{
			"status":     constants.FlightCancelled,
			"is_deleted": true,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel flight: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
