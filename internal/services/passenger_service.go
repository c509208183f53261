package services

import (
	"context"
	"strings"

	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// PassengerService keeps passenger identities; the engine only references them
type PassengerService struct {
	passengers *repositories.PassengerRepository
}

func NewPassengerService(db *gorm.DB) *PassengerService {
	return &PassengerService{passengers: repositories.NewPassengerRepository(db)}
}

func (s *PassengerService) Create(ctx context.Context, req *dtos.CreatePassengerRequest) (*gormModels.Passenger, error) {
	if err := requireField("full_name", req.FullName); err != nil {
		return nil, err
	}
	if err := requireField("id_passport", req.IDPassport); err != nil {
		return nil, err
	}

	passenger := &gormModels.Passenger{
		FullName:   strings.TrimSpace(req.FullName),
		BirthDate:  req.BirthDate.UTC(),
		Gender:     strings.TrimSpace(req.Gender),
		IDPassport: strings.ToUpper(strings.TrimSpace(req.IDPassport)),
	}
	if err := s.passengers.Create(ctx, passenger); err != nil {
		if isDuplicate(err) {
			return nil, newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "passport already registered")
		}
		return nil, err
	}

	logging.Info("Passenger created", "passenger_id", passenger.ID)
	return passenger, nil
}

func (s *PassengerService) Get(ctx context.Context, id string) (*gormModels.Passenger, error) {
	passenger, err := s.passengers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, notFound(constants.ErrCodePassengerNotFound, id)
	}
	return passenger, nil
}
