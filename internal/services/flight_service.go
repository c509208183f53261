package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/metrics"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// FlightService owns flight status and gates create/update/cancel on it.
// Every schedule write locks the airplane row first so conflict checks for
// one airplane never interleave.
type FlightService struct {
	db        *gorm.DB
	airlines  *repositories.AirlineRepository
	airplanes *repositories.AirplaneRepository
	flights   *repositories.FlightRepository
	classes   *repositories.ClassFlightRepository
	seats     *repositories.SeatRepository
	bookings  *repositories.BookingRepository
	checker   *ScheduleChecker
	ids       *IDGenerator
	events    common.EventPublisher
	metrics   *metrics.MetricsRegistry
}

func NewFlightService(db *gorm.DB, checker *ScheduleChecker, ids *IDGenerator, events common.EventPublisher, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		db:        db,
		airlines:  repositories.NewAirlineRepository(db),
		airplanes: repositories.NewAirplaneRepository(db),
		flights:   repositories.NewFlightRepository(db),
		classes:   repositories.NewClassFlightRepository(db),
		seats:     repositories.NewSeatRepository(db),
		bookings:  repositories.NewBookingRepository(db),
		checker:   checker,
		ids:       ids,
		events:    events,
		metrics:   metricsReg,
	}
}

// Create schedules a new flight. Status defaults to Scheduled and an id is
// generated from the airplane when none is supplied.
func (s *FlightService) Create(ctx context.Context, req *dtos.CreateFlightRequest) (*gormModels.Flight, error) {
	flight, err := s.create(ctx, req)
	s.metrics.FlightOp("create", err)
	if err != nil {
		return nil, err
	}

	logging.Info("Flight created",
		"flight_id", flight.ID,
		"airplane_id", flight.AirplaneID,
		"departure", flight.DepartureTime,
		"arrival", flight.ArrivalTime,
	)
	return flight, nil
}

func (s *FlightService) create(ctx context.Context, req *dtos.CreateFlightRequest) (*gormModels.Flight, error) {
	required := [][2]string{
		{"airline_id", req.AirlineID},
		{"airplane_id", req.AirplaneID},
	}
	for _, field := range required {
		if err := requireField(field[0], field[1]); err != nil {
			return nil, err
		}
	}
	if err := validateAirportCode("origin_code", req.OriginCode); err != nil {
		return nil, err
	}
	if err := validateAirportCode("destination_code", req.DestinationCode); err != nil {
		return nil, err
	}
	if err := validateWindow(req.DepartureTime, req.ArrivalTime); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = constants.FlightScheduled
	}
	if !status.Valid() || status == constants.FlightCancelled {
		return nil, invalidInput(constants.ErrCodeInvalidField, "status "+status.String()+" cannot be set at creation")
	}
	if len(strings.TrimSpace(req.ID)) > 40 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "flight id longer than 40 characters")
	}

	flight := &gormModels.Flight{
		ID:               strings.TrimSpace(req.ID),
		AirlineID:        req.AirlineID,
		AirplaneID:       req.AirplaneID,
		OriginCode:       common.NormalizeCode(req.OriginCode),
		DestinationCode:  common.NormalizeCode(req.DestinationCode),
		DepartureTime:    req.DepartureTime.UTC(),
		ArrivalTime:      req.ArrivalTime.UTC(),
		Terminal:         req.Terminal,
		Gate:             req.Gate,
		BaggageAllowance: req.BaggageAllowance,
		Status:           status,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		airline, err := s.airlines.WithTx(tx).GetByID(ctx, flight.AirlineID)
		if err != nil {
			return err
		}
		if airline == nil || airline.IsDeleted {
			return notFound(constants.ErrCodeAirlineNotFound, flight.AirlineID)
		}

		airplane, err := s.lockAirplane(ctx, tx, flight.AirplaneID)
		if err != nil {
			return err
		}
		if airplane.AirlineID != flight.AirlineID {
			return invalidInput(constants.ErrCodeInvalidField,
				fmt.Sprintf("airplane %s belongs to airline %s", airplane.ID, airplane.AirlineID))
		}

		flightsTx := s.flights.WithTx(tx)
		if flight.Status.IsActive() {
			if err := s.ensureNoConflict(ctx, flightsTx, flight, ""); err != nil {
				return err
			}
		}

		if flight.ID == "" {
			existing, err := flightsTx.ListIDsWithPrefix(ctx, FlightIDPrefix(flight.AirplaneID))
			if err != nil {
				return err
			}
			flight.ID = s.ids.FlightID(flight.AirplaneID, existing)
		}

		if err := flightsTx.Create(ctx, flight); err != nil {
			if isDuplicate(err) {
				return newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "flight "+flight.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flight, nil
}

// Update applies the set fields of req. Only Scheduled and Delayed flights
// may change; the resulting window is re-checked against the (possibly new)
// airplane, excluding the flight itself.
func (s *FlightService) Update(ctx context.Context, flightID string, req *dtos.UpdateFlightRequest) (*gormModels.Flight, error) {
	var updated *gormModels.Flight

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flightsTx := s.flights.WithTx(tx)

		// lock order: airplanes by id, then the flight row
		current, err := flightsTx.GetByID(ctx, flightID)
		if err != nil {
			return err
		}
		if current == nil {
			return notFound(constants.ErrCodeFlightNotFound, flightID)
		}
		targetAirplaneID := current.AirplaneID
		if req.AirplaneID != nil {
			targetAirplaneID = strings.TrimSpace(*req.AirplaneID)
		}
		lockIDs := []string{current.AirplaneID}
		if targetAirplaneID != current.AirplaneID {
			lockIDs = append(lockIDs, targetAirplaneID)
			sort.Strings(lockIDs)
		}
		var targetAirplane *gormModels.Airplane
		for _, id := range lockIDs {
			airplane, err := s.airplanes.WithTx(tx).GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if id == targetAirplaneID {
				targetAirplane = airplane
			}
		}

		flight, err := flightsTx.GetByIDForUpdate(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return notFound(constants.ErrCodeFlightNotFound, flightID)
		}
		if flight.AirplaneID != current.AirplaneID {
			return illegalState(constants.ErrCodeIllegalFlightState, "flight "+flightID+" changed concurrently")
		}
		if !flight.Status.IsMutable() {
			return illegalState(constants.ErrCodeIllegalFlightState, "flight is "+flight.Status.String())
		}

		target := *flight
		applyFlightUpdate(&target, req)

		if err := validateWindow(target.DepartureTime, target.ArrivalTime); err != nil {
			return err
		}
		if req.Status != nil && *req.Status != flight.Status {
			if !flight.Status.CanTransitionTo(*req.Status) {
				return illegalState(constants.ErrCodeIllegalFlightState,
					fmt.Sprintf("%s -> %s", flight.Status, *req.Status))
			}
		}
		if err := validateAirportCode("origin_code", target.OriginCode); err != nil {
			return err
		}
		if err := validateAirportCode("destination_code", target.DestinationCode); err != nil {
			return err
		}

		if targetAirplane == nil {
			return notFound(constants.ErrCodeAirplaneNotFound, target.AirplaneID)
		}
		if targetAirplane.IsDeleted {
			return notFound(constants.ErrCodeAirplaneDeleted, target.AirplaneID)
		}
		if targetAirplane.AirlineID != target.AirlineID {
			return invalidInput(constants.ErrCodeInvalidField,
				fmt.Sprintf("airplane %s belongs to airline %s", targetAirplane.ID, targetAirplane.AirlineID))
		}

		if target.Status.IsActive() {
			if err := s.ensureNoConflict(ctx, flightsTx, &target, target.ID); err != nil {
				return err
			}
		}

		if err := flightsTx.Save(ctx, &target); err != nil {
			return err
		}
		updated = &target
		return nil
	})
	s.metrics.FlightOp("update", err)
	if err != nil {
		return nil, err
	}

	logging.Info("Flight updated",
		"flight_id", updated.ID,
		"airplane_id", updated.AirplaneID,
		"status", updated.Status,
	)
	return updated, nil
}

func applyFlightUpdate(f *gormModels.Flight, req *dtos.UpdateFlightRequest) {
	if req.AirplaneID != nil {
		f.AirplaneID = strings.TrimSpace(*req.AirplaneID)
	}
	if req.OriginCode != nil {
		f.OriginCode = common.NormalizeCode(*req.OriginCode)
	}
	if req.DestinationCode != nil {
		f.DestinationCode = common.NormalizeCode(*req.DestinationCode)
	}
	if req.DepartureTime != nil {
		f.DepartureTime = req.DepartureTime.UTC()
	}
	if req.ArrivalTime != nil {
		f.ArrivalTime = req.ArrivalTime.UTC()
	}
	if req.Terminal != nil {
		f.Terminal = *req.Terminal
	}
	if req.Gate != nil {
		f.Gate = *req.Gate
	}
	if req.BaggageAllowance != nil {
		f.BaggageAllowance = *req.BaggageAllowance
	}
	if req.Status != nil {
		f.Status = *req.Status
	}
}

// Cancel soft deletes a Scheduled or Delayed flight with no Paid or
// Rescheduled bookings
func (s *FlightService) Cancel(ctx context.Context, flightID string) (*gormModels.Flight, error) {
	var cancelled *gormModels.Flight

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flightsTx := s.flights.WithTx(tx)

		flight, err := flightsTx.GetByIDForUpdate(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return notFound(constants.ErrCodeFlightNotFound, flightID)
		}
		if err := s.cancelLocked(ctx, tx, flight); err != nil {
			return err
		}
		cancelled = flight
		return nil
	})
	s.metrics.FlightOp("cancel", err)
	if err != nil {
		return nil, err
	}

	event := common.NewBookingEvent(constants.EventFlightCancelled)
	event.FlightID = cancelled.ID
	publishEvent(ctx, s.events, event)

	logging.Info("Flight cancelled", "flight_id", cancelled.ID, "airplane_id", cancelled.AirplaneID)
	return cancelled, nil
}

// cancelLocked cancels a flight the caller already holds inside tx
func (s *FlightService) cancelLocked(ctx context.Context, tx *gorm.DB, flight *gormModels.Flight) error {
	if !flight.Status.IsMutable() {
		return illegalState(constants.ErrCodeIllegalFlightState, "flight "+flight.ID+" is "+flight.Status.String())
	}

	blocking, err := s.bookings.WithTx(tx).CountBlocking(ctx, flight.ID)
	if err != nil {
		return err
	}
	if blocking > 0 {
		return newError(ErrBlockedByDependents, constants.ErrCodeActiveBookings,
			fmt.Sprintf("flight %s has %d", flight.ID, blocking))
	}

	ok, err := s.flights.WithTx(tx).Cancel(ctx, flight.ID)
	if err != nil {
		return err
	}
	if !ok {
		return illegalState(constants.ErrCodeIllegalFlightState, "flight "+flight.ID+" changed concurrently")
	}

	flight.Status = constants.FlightCancelled
	flight.IsDeleted = true
	return nil
}

// TransitionStatus moves a flight along the status graph. Cancelled is only
// reachable through Cancel.
func (s *FlightService) TransitionStatus(ctx context.Context, flightID string, target constants.FlightStatus) (*gormModels.Flight, error) {
	if !target.Valid() {
		return nil, invalidInput(constants.ErrCodeInvalidField, "unknown status "+target.String())
	}
	if target == constants.FlightCancelled {
		return nil, illegalState(constants.ErrCodeIllegalFlightState, "use cancel to cancel a flight")
	}

	var flight *gormModels.Flight
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flightsTx := s.flights.WithTx(tx)

		var err error
		flight, err = flightsTx.GetByIDForUpdate(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return notFound(constants.ErrCodeFlightNotFound, flightID)
		}
		if !flight.Status.CanTransitionTo(target) {
			return illegalState(constants.ErrCodeIllegalFlightState,
				fmt.Sprintf("%s -> %s", flight.Status, target))
		}

		ok, err := flightsTx.UpdateStatus(ctx, flightID, flight.Status, target)
		if err != nil {
			return err
		}
		if !ok {
			return illegalState(constants.ErrCodeIllegalFlightState, "flight "+flightID+" changed concurrently")
		}
		flight.Status = target
		return nil
	})
	s.metrics.FlightOp("transition", err)
	if err != nil {
		return nil, err
	}

	logging.Info("Flight status changed", "flight_id", flightID, "status", target)
	return flight, nil
}

// Get returns a flight, cancelled ones included
func (s *FlightService) Get(ctx context.Context, flightID string) (*gormModels.Flight, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, notFound(constants.ErrCodeFlightNotFound, flightID)
	}
	return flight, nil
}

func (s *FlightService) List(ctx context.Context, filter repositories.FlightFilter) ([]gormModels.Flight, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidInput(constants.ErrCodeInvalidField, "unknown status "+filter.Status.String())
	}
	filter.OriginCode = common.NormalizeCode(filter.OriginCode)
	filter.DestinationCode = common.NormalizeCode(filter.DestinationCode)
	return s.flights.List(ctx, filter)
}

// CheckAvailability reports whether the airplane is free for [dep, arr)
// and which active flights stand in the way
func (s *FlightService) CheckAvailability(ctx context.Context, airplaneID string, dep, arr time.Time, excludeFlightID string) (*dtos.AvailabilityResponse, error) {
	if err := validateWindow(dep, arr); err != nil {
		return nil, err
	}

	airplane, err := s.airplanes.GetByID(ctx, airplaneID)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, notFound(constants.ErrCodeAirplaneNotFound, airplaneID)
	}
	if airplane.IsDeleted {
		return nil, notFound(constants.ErrCodeAirplaneDeleted, airplaneID)
	}

	conflicts, err := s.checker.Conflicts(ctx, s.flights, airplaneID, dep, arr, excludeFlightID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(conflicts))
	for _, f := range conflicts {
		ids = append(ids, f.ID)
	}
	return &dtos.AvailabilityResponse{
		AirplaneID:         airplaneID,
		DepartureTime:      dep.UTC(),
		ArrivalTime:        arr.UTC(),
		Available:          len(ids) == 0,
		ConflictingFlights: ids,
	}, nil
}

// CreateClassFlight adds a fare class to a Scheduled or Delayed flight.
// Class capacities together may not exceed the airplane's seats.
func (s *FlightService) CreateClassFlight(ctx context.Context, flightID string, req *dtos.CreateClassFlightRequest) (*gormModels.ClassFlight, error) {
	classType := strings.TrimSpace(req.ClassType)
	if err := requireField("class_type", classType); err != nil {
		return nil, err
	}
	if req.SeatCapacity <= 0 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "seat_capacity must be positive")
	}
	if req.Price < 0 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "price must not be negative")
	}

	class := &gormModels.ClassFlight{
		FlightID:     flightID,
		ClassType:    classType,
		SeatCapacity: req.SeatCapacity,
		Price:        req.Price,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		flight, err := s.flights.WithTx(tx).GetByIDForUpdate(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil || flight.IsDeleted {
			return notFound(constants.ErrCodeFlightNotFound, flightID)
		}
		if !flight.Status.IsMutable() {
			return illegalState(constants.ErrCodeIllegalFlightState, "flight is "+flight.Status.String())
		}

		classesTx := s.classes.WithTx(tx)
		exists, err := classesTx.ExistsForFlight(ctx, flightID, classType)
		if err != nil {
			return err
		}
		if exists {
			return newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "class "+classType+" on flight "+flightID)
		}

		airplane, err := s.airplanes.WithTx(tx).GetByID(ctx, flight.AirplaneID)
		if err != nil {
			return err
		}
		if airplane == nil {
			return notFound(constants.ErrCodeAirplaneNotFound, flight.AirplaneID)
		}
		allocated, err := classesTx.SumCapacityByFlight(ctx, flightID)
		if err != nil {
			return err
		}
		if allocated+class.SeatCapacity > airplane.SeatCapacity {
			return invalidInput(constants.ErrCodeClassCapacityExceeded,
				fmt.Sprintf("%d allocated + %d requested > %d", allocated, class.SeatCapacity, airplane.SeatCapacity))
		}

		if err := classesTx.Create(ctx, class); err != nil {
			if isDuplicate(err) {
				return newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "class "+classType+" on flight "+flightID)
			}
			return err
		}
		return nil
	})
	s.metrics.FlightOp("create_class", err)
	if err != nil {
		return nil, err
	}

	logging.Info("Class flight created",
		"flight_id", flightID,
		"class_flight_id", class.ID,
		"class_type", class.ClassType,
		"seat_capacity", class.SeatCapacity,
	)
	return class, nil
}

// ListClasses returns the flight's fare classes with availability counted
// from the seat rows
func (s *FlightService) ListClasses(ctx context.Context, flightID string) ([]gormModels.ClassFlight, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, notFound(constants.ErrCodeFlightNotFound, flightID)
	}

	classes, err := s.classes.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	for i := range classes {
		available, err := s.seats.CountAvailable(ctx, classes[i].ID)
		if err != nil {
			return nil, err
		}
		classes[i].AvailableSeats = available
	}
	return classes, nil
}

// GetClass returns one fare class with derived availability
func (s *FlightService) GetClass(ctx context.Context, classFlightID string) (*gormModels.ClassFlight, error) {
	class, err := s.classes.GetByID(ctx, classFlightID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, notFound(constants.ErrCodeClassNotFound, classFlightID)
	}
	available, err := s.seats.CountAvailable(ctx, classFlightID)
	if err != nil {
		return nil, err
	}
	class.AvailableSeats = available
	return class, nil
}

// lockAirplane takes the airplane row lock and rejects missing or deleted airplanes
func (s *FlightService) lockAirplane(ctx context.Context, tx *gorm.DB, airplaneID string) (*gormModels.Airplane, error) {
	airplane, err := s.airplanes.WithTx(tx).GetByIDForUpdate(ctx, airplaneID)
	if err != nil {
		return nil, err
	}
	if airplane == nil {
		return nil, notFound(constants.ErrCodeAirplaneNotFound, airplaneID)
	}
	if airplane.IsDeleted {
		return nil, notFound(constants.ErrCodeAirplaneDeleted, airplaneID)
	}
	return airplane, nil
}

func (s *FlightService) ensureNoConflict(ctx context.Context, src flightWindowSource, flight *gormModels.Flight, excludeFlightID string) error {
	conflicts, err := s.checker.Conflicts(ctx, src, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, excludeFlightID)
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	s.metrics.SchedulingConflict()
	logging.Warn("Scheduling conflict",
		"airplane_id", flight.AirplaneID,
		"departure", flight.DepartureTime,
		"arrival", flight.ArrivalTime,
		"conflicts", ids,
	)
	return newError(ErrSchedulingConflict, constants.ErrCodeSchedulingConflict,
		fmt.Sprintf("airplane %s overlaps %s", flight.AirplaneID, strings.Join(ids, ", ")))
}
