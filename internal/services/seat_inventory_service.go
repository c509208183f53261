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

// SeatStore is the slice of seat persistence the assignment protocol needs.
// MarkOccupied must be a single guarded UPDATE reporting whether it won.
type SeatStore interface {
	ListAvailable(ctx context.Context, classFlightID string, limit int) ([]gormModels.Seat, error)
	MarkOccupied(ctx context.Context, seatID, passengerID string) (bool, error)
}

// SeatInventoryService owns seat pools and the optimistic assignment protocol
type SeatInventoryService struct {
	db          *gorm.DB
	classes     *repositories.ClassFlightRepository
	seats       *repositories.SeatRepository
	passengers  *repositories.PassengerRepository
	cache       common.CacheInterface
	metrics     *metrics.MetricsRegistry
	maxAttempts int
}

func NewSeatInventoryService(db *gorm.DB, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry, maxAttempts int) *SeatInventoryService {
	if maxAttempts <= 0 {
		maxAttempts = constants.DefaultSeatAssignAttempts
	}
	return &SeatInventoryService{
		db:          db,
		classes:     repositories.NewClassFlightRepository(db),
		seats:       repositories.NewSeatRepository(db),
		passengers:  repositories.NewPassengerRepository(db),
		cache:       cache,
		metrics:     metricsReg,
		maxAttempts: maxAttempts,
	}
}

// MaxAttempts is the per-passenger retry budget
func (s *SeatInventoryService) MaxAttempts() int { return s.maxAttempts }

// assignFrom binds one passenger to the lowest numbered available seat.
// A lost race re-reads the pool; the loop gives up after maxAttempts.
func (s *SeatInventoryService) assignFrom(ctx context.Context, store SeatStore, classFlightID, passengerID string) (*gormModels.Seat, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		// only the first candidate is ever tried per attempt
		candidates, err := store.ListAvailable(ctx, classFlightID, 1)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			s.metrics.SeatAttempt("empty")
			return nil, newError(ErrCapacityExhausted, constants.ErrCodeNoSeatsAvailable, "class "+classFlightID)
		}

		seat := candidates[0]
		won, err := store.MarkOccupied(ctx, seat.ID, passengerID)
		if err != nil {
			return nil, err
		}
		if won {
			s.metrics.SeatAttempt("won")
			seat.IsAvailable = false
			pid := passengerID
			seat.PassengerID = &pid
			return &seat, nil
		}

		s.metrics.SeatAttempt("lost")
		logging.Debug("Seat taken concurrently, retrying",
			"class_flight_id", classFlightID,
			"seat_number", seat.SeatNumber,
			"attempt", attempt,
		)
	}

	s.metrics.SeatExhausted()
	logging.Warn("Seat assignment retries exhausted",
		"class_flight_id", classFlightID,
		"passenger_id", passengerID,
		"attempts", s.maxAttempts,
	)
	return nil, newError(ErrCapacityExhausted, constants.ErrCodeSeatsExhausted, "class "+classFlightID)
}

// AssignSeat runs the protocol in its own transaction, for staff seat
// assignment outside of booking creation
func (s *SeatInventoryService) AssignSeat(ctx context.Context, classFlightID, passengerID string) (*gormModels.Seat, error) {
	var seat *gormModels.Seat

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		class, err := s.classes.WithTx(tx).GetByID(ctx, classFlightID)
		if err != nil {
			return err
		}
		if class == nil {
			return notFound(constants.ErrCodeClassNotFound, classFlightID)
		}

		passenger, err := s.passengers.WithTx(tx).GetByID(ctx, passengerID)
		if err != nil {
			return err
		}
		if passenger == nil {
			return notFound(constants.ErrCodePassengerNotFound, passengerID)
		}

		seat, err = s.assignFrom(ctx, s.seats.WithTx(tx), classFlightID, passengerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSeatMap(classFlightID)
	logging.Info("Seat assigned",
		"class_flight_id", classFlightID,
		"seat_number", seat.SeatNumber,
		"passenger_id", passengerID,
	)
	return seat, nil
}

// Release returns a seat to the pool. Releasing an available seat is a no-op.
func (s *SeatInventoryService) Release(ctx context.Context, seatID string) (*gormModels.Seat, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat == nil {
		return nil, notFound(constants.ErrCodeSeatNotFound, seatID)
	}

	released, err := s.seats.Release(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if released {
		s.metrics.SeatsReleased("manual", 1)
		s.invalidateSeatMap(seat.ClassFlightID)
		logging.Info("Seat released", "seat_id", seatID, "class_flight_id", seat.ClassFlightID)
	}

	seat.IsAvailable = true
	seat.PassengerID = nil
	return seat, nil
}

// ReleaseAllForPassenger frees every seat in any class held by the passenger
// and returns how many were freed
func (s *SeatInventoryService) ReleaseAllForPassenger(ctx context.Context, passengerID string) (int, error) {
	var held []gormModels.Seat

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		passenger, err := s.passengers.WithTx(tx).GetByID(ctx, passengerID)
		if err != nil {
			return err
		}
		if passenger == nil {
			return notFound(constants.ErrCodePassengerNotFound, passengerID)
		}

		held, err = s.seats.WithTx(tx).ReleaseAllForPassenger(ctx, passengerID)
		return err
	})
	if err != nil {
		return 0, err
	}

	for _, seat := range held {
		s.invalidateSeatMap(seat.ClassFlightID)
	}
	s.metrics.SeatsReleased("passenger", len(held))
	if len(held) > 0 {
		logging.Info("Released all passenger seats", "passenger_id", passengerID, "count", len(held))
	}
	return len(held), nil
}

// AddSeats creates seat rows for a class. The pool may never exceed the
// class seat capacity.
func (s *SeatInventoryService) AddSeats(ctx context.Context, classFlightID string, seatNumbers []string) ([]gormModels.Seat, error) {
	numbers, err := normalizeSeatNumbers(seatNumbers)
	if err != nil {
		return nil, err
	}

	seats := make([]gormModels.Seat, 0, len(numbers))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// held until commit so concurrent adds see each other's seats
		class, err := s.classes.WithTx(tx).GetByIDForUpdate(ctx, classFlightID)
		if err != nil {
			return err
		}
		if class == nil {
			return notFound(constants.ErrCodeClassNotFound, classFlightID)
		}

		seatRepo := s.seats.WithTx(tx)
		existing, err := seatRepo.CountByClass(ctx, classFlightID)
		if err != nil {
			return err
		}
		if existing+len(numbers) > class.SeatCapacity {
			return newError(ErrCapacityExhausted, constants.ErrCodeSeatPoolFull,
				fmt.Sprintf("%d of %d seats exist, %d requested", existing, class.SeatCapacity, len(numbers)))
		}

		for _, n := range numbers {
			seats = append(seats, gormModels.Seat{
				ClassFlightID: classFlightID,
				SeatNumber:    n,
				IsAvailable:   true,
			})
		}
		if err := seatRepo.CreateBatch(ctx, seats); err != nil {
			if isDuplicate(err) {
				return newError(ErrAlreadyExists, constants.ErrCodeDuplicate, "seat number already exists in class")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSeatMap(classFlightID)
	logging.Info("Seats added", "class_flight_id", classFlightID, "count", len(seats))
	return seats, nil
}

// SeatMap lists every seat of a class with the derived availability count
func (s *SeatInventoryService) SeatMap(ctx context.Context, classFlightID string) (*dtos.SeatMapResponse, error) {
	class, err := s.classes.GetByID(ctx, classFlightID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, notFound(constants.ErrCodeClassNotFound, classFlightID)
	}

	seats, err := s.seats.ListByClass(ctx, classFlightID)
	if err != nil {
		return nil, err
	}

	available := 0
	for _, seat := range seats {
		if seat.IsAvailable {
			available++
		}
	}

	return &dtos.SeatMapResponse{
		ClassFlightID:  class.ID,
		ClassType:      class.ClassType,
		SeatCapacity:   class.SeatCapacity,
		AvailableSeats: available,
		Seats:          dtos.ToSeatResponses(seats),
	}, nil
}

// AvailableSeats recomputes a class's available count from seat rows
func (s *SeatInventoryService) AvailableSeats(ctx context.Context, classFlightID string) (int, error) {
	return s.seats.CountAvailable(ctx, classFlightID)
}

// SeatMapCacheKey is shared with the API layer and the event worker
func SeatMapCacheKey(classFlightID string) string {
	return constants.CachePrefixSeatMap.Key(classFlightID)
}

func (s *SeatInventoryService) invalidateSeatMap(classFlightID string) {
	if s.cache != nil {
		s.cache.Delete(SeatMapCacheKey(classFlightID))
	}
}

// GenerateSeatNumbers builds "1A", "1B", ... for rows fromRow..toRow
func GenerateSeatNumbers(fromRow, toRow int, letters string) ([]string, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if fromRow <= 0 || toRow < fromRow {
		return nil, invalidInput(constants.ErrCodeInvalidField, "row range must satisfy 0 < from_row <= to_row")
	}
	if letters == "" {
		return nil, invalidInput(constants.ErrCodeInvalidField, "seat letters are required")
	}

	numbers := make([]string, 0, (toRow-fromRow+1)*len(letters))
	for row := fromRow; row <= toRow; row++ {
		for _, l := range letters {
			if l < 'A' || l > 'Z' {
				return nil, invalidInput(constants.ErrCodeInvalidField, fmt.Sprintf("invalid seat letter %q", l))
			}
			numbers = append(numbers, fmt.Sprintf("%d%c", row, l))
		}
	}
	return numbers, nil
}

func normalizeSeatNumbers(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, invalidInput(constants.ErrCodeInvalidField, "at least one seat number is required")
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		n := common.NormalizeCode(r)
		if n == "" || len(n) > 8 {
			return nil, invalidInput(constants.ErrCodeInvalidField, fmt.Sprintf("invalid seat number %q", r))
		}
		if _, dup := seen[n]; dup {
			return nil, invalidInput(constants.ErrCodeInvalidField, "duplicate seat number "+n)
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}
