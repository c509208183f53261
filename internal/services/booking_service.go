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

// BookingService orchestrates booking lifecycle and per-passenger seat
// assignment. A booking and all of its seat holds commit or roll back
// together.
type BookingService struct {
	db            *gorm.DB
	flights       *repositories.FlightRepository
	classes       *repositories.ClassFlightRepository
	passengers    *repositories.PassengerRepository
	bookings      *repositories.BookingRepository
	seats         *repositories.SeatRepository
	inventory     *SeatInventoryService
	ids           *IDGenerator
	events        common.EventPublisher
	metrics       *metrics.MetricsRegistry
	maxPassengers int
	idAttempts    int
}

func NewBookingService(
	db *gorm.DB,
	inventory *SeatInventoryService,
	ids *IDGenerator,
	events common.EventPublisher,
	metricsReg *metrics.MetricsRegistry,
	maxPassengers int,
	idAttempts int,
) *BookingService {
	if maxPassengers <= 0 || maxPassengers > constants.MaxPassengersPerBooking {
		maxPassengers = constants.MaxPassengersPerBooking
	}
	if idAttempts <= 0 {
		idAttempts = 1
	}
	return &BookingService{
		db:            db,
		flights:       repositories.NewFlightRepository(db),
		classes:       repositories.NewClassFlightRepository(db),
		passengers:    repositories.NewPassengerRepository(db),
		bookings:      repositories.NewBookingRepository(db),
		seats:         repositories.NewSeatRepository(db),
		inventory:     inventory,
		ids:           ids,
		events:        events,
		metrics:       metricsReg,
		maxPassengers: maxPassengers,
		idAttempts:    idAttempts,
	}
}

// Create books every listed passenger onto the class, one seat each, in
// list order. A lost booking id race retries the whole unit of work.
func (s *BookingService) Create(ctx context.Context, req *dtos.CreateBookingRequest) (*gormModels.Booking, error) {
	status, err := s.validateCreate(req)
	if err != nil {
		s.metrics.BookingOp("create", err)
		return nil, err
	}

	var booking *gormModels.Booking
	for attempt := 1; attempt <= s.idAttempts; attempt++ {
		booking, err = s.createOnce(ctx, req, status)
		if err == nil || !isDuplicate(err) {
			break
		}
		logging.Debug("Booking id collision, retrying", "flight_id", req.FlightID, "attempt", attempt)
	}
	if err != nil && isDuplicate(err) {
		err = newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "booking id collided repeatedly")
	}
	s.metrics.BookingOp("create", err)
	if err != nil {
		return nil, err
	}

	s.inventory.invalidateSeatMap(booking.ClassFlightID)

	event := common.NewBookingEvent(constants.EventBookingCreated)
	fillBookingEvent(event, booking)
	publishEvent(ctx, s.events, event)

	logging.Info("Booking created",
		"booking_id", booking.ID,
		"flight_id", booking.FlightID,
		"class_flight_id", booking.ClassFlightID,
		"passengers", booking.PassengerCount,
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

func (s *BookingService) validateCreate(req *dtos.CreateBookingRequest) (constants.BookingStatus, error) {
	if err := requireField("flight_id", req.FlightID); err != nil {
		return "", err
	}
	if err := requireField("class_flight_id", req.ClassFlightID); err != nil {
		return "", err
	}
	if err := requireField("contact_email", req.ContactEmail); err != nil {
		return "", err
	}

	if req.PassengerCount < 1 {
		return "", invalidInput(constants.ErrCodeInvalidField, "passenger_count must be at least 1")
	}
	if req.PassengerCount > s.maxPassengers {
		return "", invalidInput(constants.ErrCodeTooManyPassengers,
			fmt.Sprintf("%d requested, at most %d allowed", req.PassengerCount, s.maxPassengers))
	}
	if len(req.PassengerIDs) != req.PassengerCount {
		return "", invalidInput(constants.ErrCodePassengerCountMismatch,
			fmt.Sprintf("passenger_count %d, %d passengers listed", req.PassengerCount, len(req.PassengerIDs)))
	}

	seen := make(map[string]struct{}, len(req.PassengerIDs))
	for _, id := range req.PassengerIDs {
		if strings.TrimSpace(id) == "" {
			return "", invalidInput(constants.ErrCodeInvalidField, "empty passenger id")
		}
		if _, dup := seen[id]; dup {
			return "", invalidInput(constants.ErrCodeInvalidField, "passenger "+id+" listed twice")
		}
		seen[id] = struct{}{}
	}

	status := req.Status
	if status == "" {
		status = constants.BookingUnpaid
	}
	if !status.Valid() || status == constants.BookingCancelled {
		return "", invalidInput(constants.ErrCodeInvalidField, "status "+status.String()+" cannot be set at creation")
	}
	return status, nil
}

func (s *BookingService) createOnce(ctx context.Context, req *dtos.CreateBookingRequest, status constants.BookingStatus) (*gormModels.Booking, error) {
	var booking *gormModels.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializes with flight cancellation, which counts paid bookings
		flight, err := s.flights.WithTx(tx).GetByIDForUpdate(ctx, req.FlightID)
		if err != nil {
			return err
		}
		if flight == nil || flight.IsDeleted {
			return notFound(constants.ErrCodeFlightNotFound, req.FlightID)
		}
		if flight.Status != constants.FlightScheduled {
			return illegalState(constants.ErrCodeFlightNotBookable, "flight is "+flight.Status.String())
		}

		class, err := s.classes.WithTx(tx).GetByID(ctx, req.ClassFlightID)
		if err != nil {
			return err
		}
		if class == nil {
			return notFound(constants.ErrCodeClassNotFound, req.ClassFlightID)
		}
		if class.FlightID != flight.ID {
			return invalidInput(constants.ErrCodeClassNotOnFlight, class.ID+" is not on "+flight.ID)
		}

		if err := s.requirePassengers(ctx, tx, req.PassengerIDs); err != nil {
			return err
		}

		bookingsTx := s.bookings.WithTx(tx)
		existing, err := bookingsTx.ListIDsWithPrefix(ctx, BookingIDPrefix(flight.ID, flight.OriginCode, flight.DestinationCode))
		if err != nil {
			return err
		}

		booking = &gormModels.Booking{
			ID:             s.ids.BookingID(flight.ID, flight.OriginCode, flight.DestinationCode, existing),
			FlightID:       flight.ID,
			ClassFlightID:  class.ID,
			ContactEmail:   strings.TrimSpace(req.ContactEmail),
			ContactPhone:   strings.TrimSpace(req.ContactPhone),
			PassengerCount: req.PassengerCount,
			Status:         status,
			TotalPrice:     float64(req.PassengerCount) * class.Price,
		}
		if err := bookingsTx.Create(ctx, booking); err != nil {
			return err
		}

		store := s.seats.WithTx(tx)
		rows := make([]gormModels.BookingPassenger, 0, len(req.PassengerIDs))
		for i, passengerID := range req.PassengerIDs {
			seat, err := s.inventory.assignFrom(ctx, store, class.ID, passengerID)
			if err != nil {
				logging.Warn("Booking rolled back on seat assignment",
					"flight_id", flight.ID,
					"class_flight_id", class.ID,
					"passenger_index", i,
					"error", err.Error(),
				)
				return err
			}
			rows = append(rows, gormModels.BookingPassenger{
				BookingID:   booking.ID,
				PassengerID: passengerID,
				Position:    i,
				SeatID:      seat.ID,
				SeatNumber:  seat.SeatNumber,
			})
		}

		if err := bookingsTx.AddPassengers(ctx, rows); err != nil {
			return err
		}
		booking.Passengers = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// requirePassengers fails NotFound on the first listed passenger that does not exist
func (s *BookingService) requirePassengers(ctx context.Context, tx *gorm.DB, ids []string) error {
	found, err := s.passengers.WithTx(tx).ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}

	known := make(map[string]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return notFound(constants.ErrCodePassengerNotFound, id)
		}
	}
	return nil
}

// Update changes contact details and/or advances the status. A Cancelled
// status is handed to Cancel so seats are released.
func (s *BookingService) Update(ctx context.Context, bookingID string, req *dtos.UpdateBookingRequest) (*gormModels.Booking, error) {
	if req.Status != nil && *req.Status == constants.BookingCancelled {
		return s.Cancel(ctx, bookingID)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, invalidInput(constants.ErrCodeInvalidField, "unknown status "+req.Status.String())
	}
	if req.ContactEmail != nil {
		if err := requireField("contact_email", *req.ContactEmail); err != nil {
			return nil, err
		}
	}

	var updated *gormModels.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingsTx := s.bookings.WithTx(tx)

		booking, err := bookingsTx.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return notFound(constants.ErrCodeBookingNotFound, bookingID)
		}
		if !booking.Status.IsMutable() {
			return illegalState(constants.ErrCodeIllegalBookingState, "booking is "+booking.Status.String())
		}

		// serializes with flight cancellation, which counts paid bookings
		flight, err := s.flights.WithTx(tx).GetByIDForUpdate(ctx, booking.FlightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return notFound(constants.ErrCodeFlightNotFound, booking.FlightID)
		}
		if !flight.Status.IsMutable() {
			return illegalState(constants.ErrCodeIllegalFlightState, "flight is "+flight.Status.String())
		}

		fields := map[string]interface{}{}
		if req.ContactEmail != nil {
			fields["contact_email"] = strings.TrimSpace(*req.ContactEmail)
		}
		if req.ContactPhone != nil {
			fields["contact_phone"] = strings.TrimSpace(*req.ContactPhone)
		}
		if req.Status != nil && *req.Status != booking.Status {
			if !booking.Status.CanTransitionTo(*req.Status) {
				return illegalState(constants.ErrCodeIllegalBookingState,
					fmt.Sprintf("%s -> %s", booking.Status, *req.Status))
			}
			fields["status"] = *req.Status
		}

		if len(fields) == 0 {
			updated = booking
			return nil
		}

		ok, err := bookingsTx.UpdateFields(ctx, bookingID, booking.Status, fields)
		if err != nil {
			return err
		}
		if !ok {
			return illegalState(constants.ErrCodeIllegalBookingState, "booking "+bookingID+" changed concurrently")
		}

		updated, err = bookingsTx.GetByID(ctx, bookingID)
		return err
	})
	s.metrics.BookingOp("update", err)
	if err != nil {
		return nil, err
	}

	event := common.NewBookingEvent(constants.EventBookingUpdated)
	fillBookingEvent(event, updated)
	publishEvent(ctx, s.events, event)

	logging.Info("Booking updated", "booking_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// Cancel soft deletes an Unpaid or Paid booking and frees the seats it
// took, unless they have since been given to someone else
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (*gormModels.Booking, error) {
	var (
		booking  *gormModels.Booking
		released int64
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingsTx := s.bookings.WithTx(tx)

		var err error
		booking, err = bookingsTx.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return notFound(constants.ErrCodeBookingNotFound, bookingID)
		}
		if !booking.Status.IsMutable() {
			return illegalState(constants.ErrCodeIllegalBookingState, "booking is "+booking.Status.String())
		}

		ok, err := bookingsTx.Cancel(ctx, bookingID)
		if err != nil {
			return err
		}
		if !ok {
			return illegalState(constants.ErrCodeIllegalBookingState, "booking "+bookingID+" changed concurrently")
		}

		seatsTx := s.seats.WithTx(tx)
		for _, p := range booking.Passengers {
			if p.SeatID == "" {
				continue
			}
			n, err := seatsTx.ReleaseHeldBy(ctx, booking.ClassFlightID, p.PassengerID, []string{p.SeatID})
			if err != nil {
				return err
			}
			released += n
		}
		return nil
	})
	s.metrics.BookingOp("cancel", err)
	if err != nil {
		return nil, err
	}

	booking.Status = constants.BookingCancelled
	booking.IsDeleted = true

	s.inventory.invalidateSeatMap(booking.ClassFlightID)
	s.metrics.SeatsReleased("booking_cancel", int(released))

	event := common.NewBookingEvent(constants.EventBookingCancelled)
	fillBookingEvent(event, booking)
	publishEvent(ctx, s.events, event)

	logging.Info("Booking cancelled",
		"booking_id", booking.ID,
		"flight_id", booking.FlightID,
		"seats_released", released,
	)
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, bookingID string) (*gormModels.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, notFound(constants.ErrCodeBookingNotFound, bookingID)
	}
	return booking, nil
}

func (s *BookingService) ListByFlight(ctx context.Context, flightID string) ([]gormModels.Booking, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, notFound(constants.ErrCodeFlightNotFound, flightID)
	}
	return s.bookings.ListByFlight(ctx, flightID)
}

func fillBookingEvent(event *common.BookingEvent, booking *gormModels.Booking) {
	event.BookingID = booking.ID
	event.FlightID = booking.FlightID
	event.ClassFlightID = booking.ClassFlightID
	event.TotalPrice = booking.TotalPrice
	for _, p := range booking.Passengers {
		event.PassengerIDs = append(event.PassengerIDs, p.PassengerID)
		if p.SeatID != "" {
			event.SeatIDs = append(event.SeatIDs, p.SeatID)
		}
	}
}
