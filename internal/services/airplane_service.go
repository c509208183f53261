package services

import (
	"context"
	"fmt"
	"strings"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/metrics"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// AirplaneService manages the fleet. Deleting an airplane cancels its
// upcoming flights in the same transaction.
type AirplaneService struct {
	db        *gorm.DB
	airlines  *repositories.AirlineRepository
	airplanes *repositories.AirplaneRepository
	flights   *repositories.FlightRepository
	bookings  *repositories.BookingRepository
	ids       *IDGenerator
	events    common.EventPublisher
	metrics   *metrics.MetricsRegistry
}

func NewAirplaneService(db *gorm.DB, ids *IDGenerator, events common.EventPublisher, metricsReg *metrics.MetricsRegistry) *AirplaneService {
	return &AirplaneService{
		db:        db,
		airlines:  repositories.NewAirlineRepository(db),
		airplanes: repositories.NewAirplaneRepository(db),
		flights:   repositories.NewFlightRepository(db),
		bookings:  repositories.NewBookingRepository(db),
		ids:       ids,
		events:    events,
		metrics:   metricsReg,
	}
}

func (s *AirplaneService) Create(ctx context.Context, req *dtos.CreateAirplaneRequest) (*gormModels.Airplane, error) {
	airlineID := common.NormalizeCode(req.AirlineID)
	if err := requireField("airline_id", airlineID); err != nil {
		return nil, err
	}
	if err := requireField("model", req.Model); err != nil {
		return nil, err
	}
	if req.SeatCapacity <= 0 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "seat_capacity must be positive")
	}
	if req.ManufactureYear < 0 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "manufacture_year must not be negative")
	}

	airplane := &gormModels.Airplane{
		AirlineID:       airlineID,
		Model:           strings.TrimSpace(req.Model),
		SeatCapacity:    req.SeatCapacity,
		ManufactureYear: req.ManufactureYear,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		airline, err := s.airlines.WithTx(tx).GetByID(ctx, airlineID)
		if err != nil {
			return err
		}
		if airline == nil || airline.IsDeleted {
			return notFound(constants.ErrCodeAirlineNotFound, airlineID)
		}

		airplanesTx := s.airplanes.WithTx(tx)
		for attempt := 0; attempt < constants.AirplaneIDMaxAttempts; attempt++ {
			candidate := s.ids.AirplaneID(airlineID)
			taken, err := airplanesTx.Exists(ctx, candidate)
			if err != nil {
				return err
			}
			if taken {
				continue
			}
			airplane.ID = candidate
			return airplanesTx.Create(ctx, airplane)
		}
		return newError(ErrAlreadyExists, constants.ErrCodeDuplicate,
			fmt.Sprintf("no free airplane id for %s after %d attempts", airlineID, constants.AirplaneIDMaxAttempts))
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "airplane "+airplane.ID)
		}
		return nil, err
	}

	logging.Info("Airplane created", "airplane_id", airplane.ID, "airline_id", airlineID)
	return airplane, nil
}

func (s *AirplaneService) Get(ctx context.Context, id string) (*gormModels.Airplane, error) {
	airplane, err := s.airplanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, notFound(constants.ErrCodeAirplaneNotFound, id)
	}
	return airplane, nil
}

func (s *AirplaneService) ListByAirline(ctx context.Context, airlineID string) ([]gormModels.Airplane, error) {
	return s.airplanes.ListByAirline(ctx, common.NormalizeCode(airlineID))
}

// Delete soft deletes the airplane and cancels every Scheduled or Delayed
// flight it still has. A flight in the air or one with Paid/Rescheduled
// bookings blocks the whole delete.
func (s *AirplaneService) Delete(ctx context.Context, id string) (*dtos.AirplaneDeleteResponse, error) {
	var cancelled []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		airplane, err := s.airplanes.WithTx(tx).GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if airplane == nil {
			return notFound(constants.ErrCodeAirplaneNotFound, id)
		}
		if airplane.IsDeleted {
			return notFound(constants.ErrCodeAirplaneDeleted, id)
		}

		flightsTx := s.flights.WithTx(tx)
		active, err := flightsTx.ListActiveForAirplane(ctx, id)
		if err != nil {
			return err
		}

		flightIDs := make([]string, 0, len(active))
		for _, f := range active {
			if f.Status == constants.FlightInFlight {
				return newError(ErrBlockedByDependents, constants.ErrCodeAirplaneInFlight, "flight "+f.ID)
			}
			flightIDs = append(flightIDs, f.ID)
		}

		blocking, err := s.bookings.WithTx(tx).CountBlocking(ctx, flightIDs...)
		if err != nil {
			return err
		}
		if blocking > 0 {
			return newError(ErrBlockedByDependents, constants.ErrCodeActiveBookings,
				fmt.Sprintf("airplane %s flights hold %d", id, blocking))
		}

		for _, flightID := range flightIDs {
			ok, err := flightsTx.Cancel(ctx, flightID)
			if err != nil {
				return err
			}
			if !ok {
				return illegalState(constants.ErrCodeIllegalFlightState, "flight "+flightID+" changed concurrently")
			}
			cancelled = append(cancelled, flightID)
		}

		return s.airplanes.WithTx(tx).SoftDelete(ctx, id)
	})
	s.metrics.FlightOp("airplane_delete", err)
	if err != nil {
		return nil, err
	}

	for _, flightID := range cancelled {
		event := common.NewBookingEvent(constants.EventFlightCancelled)
		event.FlightID = flightID
		publishEvent(ctx, s.events, event)
	}

	logging.Info("Airplane deleted", "airplane_id", id, "cancelled_flights", cancelled)
	if cancelled == nil {
		cancelled = []string{}
	}
	return &dtos.AirplaneDeleteResponse{AirplaneID: id, CancelledFlights: cancelled}, nil
}
