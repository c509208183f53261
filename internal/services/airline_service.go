package services

import (
	"context"
	"fmt"
	"strings"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

type AirlineService struct {
	db        *gorm.DB
	airlines  *repositories.AirlineRepository
	airplanes *repositories.AirplaneRepository
}

func NewAirlineService(db *gorm.DB) *AirlineService {
	return &AirlineService{
		db:        db,
		airlines:  repositories.NewAirlineRepository(db),
		airplanes: repositories.NewAirplaneRepository(db),
	}
}

// Create registers an airline under a short code such as "GA"
func (s *AirlineService) Create(ctx context.Context, req *dtos.CreateAirlineRequest) (*gormModels.Airline, error) {
	id := common.NormalizeCode(req.ID)
	if err := requireField("id", id); err != nil {
		return nil, err
	}
	if len(id) > 8 || strings.Contains(id, "-") {
		return nil, invalidInput(constants.ErrCodeInvalidField, "airline id must be at most 8 characters without '-'")
	}
	if err := requireField("name", req.Name); err != nil {
		return nil, err
	}

	airline := &gormModels.Airline{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Country: strings.TrimSpace(req.Country),
	}
	if err := s.airlines.Create(ctx, airline); err != nil {
		if isDuplicate(err) {
			return nil, newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "airline "+id)
		}
		return nil, err
	}

	logging.Info("Airline created", "airline_id", airline.ID)
	return airline, nil
}

func (s *AirlineService) Get(ctx context.Context, id string) (*gormModels.Airline, error) {
	airline, err := s.airlines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, notFound(constants.ErrCodeAirlineNotFound, id)
	}
	return airline, nil
}

func (s *AirlineService) List(ctx context.Context) ([]gormModels.Airline, error) {
	return s.airlines.List(ctx)
}

// Delete soft deletes an airline that no longer owns active airplanes
func (s *AirlineService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		airline, err := s.airlines.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}
		if airline == nil || airline.IsDeleted {
			return notFound(constants.ErrCodeAirlineNotFound, id)
		}

		owned, err := s.airplanes.WithTx(tx).CountActiveByAirline(ctx, id)
		if err != nil {
			return err
		}
		if owned > 0 {
			return newError(ErrBlockedByDependents, constants.ErrCodeActiveAirplanes,
				fmt.Sprintf("airline %s owns %d", id, owned))
		}

		return s.airlines.WithTx(tx).SoftDelete(ctx, id)
	})
	if err != nil {
		return err
	}

	logging.Info("Airline deleted", "airline_id", id)
	return nil
}
