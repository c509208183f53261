package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/db"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var base = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time { return base.Add(time.Duration(hour) * time.Hour) }

// setupTestDB opens a migrated in-memory database on a single connection,
// so concurrent transactions run one after another
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*common.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *common.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db         *gorm.DB
	cache      *common.CacheService
	events     *recordingPublisher
	airlines   *AirlineService
	airplanes  *AirplaneService
	flights    *FlightService
	seats      *SeatInventoryService
	bookings   *BookingService
	passengers *PassengerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := setupTestDB(t)
	cache := common.NewCacheService(time.Minute, time.Minute)
	events := &recordingPublisher{}
	ids := NewIDGenerator()
	seats := NewSeatInventoryService(gdb, cache, nil, 3)

	f := &fixture{
		db:         gdb,
		cache:      cache,
		events:     events,
		airlines:   NewAirlineService(gdb),
		airplanes:  NewAirplaneService(gdb, ids, events, nil),
		flights:    NewFlightService(gdb, NewScheduleChecker(), ids, events, nil),
		seats:      seats,
		bookings:   NewBookingService(gdb, seats, ids, events, nil, 10, 3),
		passengers: NewPassengerService(gdb),
	}

	_, err := f.airlines.Create(context.Background(), &dtos.CreateAirlineRequest{ID: "GA", Name: "Garuda", Country: "ID"})
	require.NoError(t, err)
	return f
}

func (f *fixture) airplane(t *testing.T, capacity int) *gormModels.Airplane {
	t.Helper()
	a, err := f.airplanes.Create(context.Background(), &dtos.CreateAirplaneRequest{
		AirlineID:       "GA",
		Model:           "A320",
		SeatCapacity:    capacity,
		ManufactureYear: 2018,
	})
	require.NoError(t, err)
	return a
}

func flightReq(airplaneID string, dep, arr time.Time) *dtos.CreateFlightRequest {
	return &dtos.CreateFlightRequest{
		AirlineID:       "GA",
		AirplaneID:      airplaneID,
		OriginCode:      "CGK",
		DestinationCode: "DPS",
		DepartureTime:   dep,
		ArrivalTime:     arr,
	}
}

func (f *fixture) flight(t *testing.T, airplaneID string, depHour, arrHour int) *gormModels.Flight {
	t.Helper()
	fl, err := f.flights.Create(context.Background(), flightReq(airplaneID, at(depHour), at(arrHour)))
	require.NoError(t, err)
	return fl
}

func (f *fixture) class(t *testing.T, flightID, classType string, capacity int, price float64, seatNumbers ...string) *gormModels.ClassFlight {
	t.Helper()
	c, err := f.flights.CreateClassFlight(context.Background(), flightID, &dtos.CreateClassFlightRequest{
		ClassType:    classType,
		SeatCapacity: capacity,
		Price:        price,
	})
	require.NoError(t, err)
	if len(seatNumbers) > 0 {
		_, err := f.seats.AddSeats(context.Background(), c.ID, seatNumbers)
		require.NoError(t, err)
	}
	return c
}

func (f *fixture) passenger(t *testing.T, passport string) *gormModels.Passenger {
	t.Helper()
	p, err := f.passengers.Create(context.Background(), &dtos.CreatePassengerRequest{
		FullName:   "Passenger " + passport,
		BirthDate:  time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:     "F",
		IDPassport: passport,
	})
	require.NoError(t, err)
	return p
}

// bookable sets up one Scheduled flight with an economy class holding seats
func (f *fixture) bookable(t *testing.T, seatNumbers ...string) (*gormModels.Flight, *gormModels.ClassFlight) {
	t.Helper()
	plane := f.airplane(t, 180)
	fl := f.flight(t, plane.ID, 10, 12)
	c := f.class(t, fl.ID, "Economy", 150, 100, seatNumbers...)
	return fl, c
}

func bookingReq(fl *gormModels.Flight, c *gormModels.ClassFlight, passengerIDs ...string) *dtos.CreateBookingRequest {
	return &dtos.CreateBookingRequest{
		FlightID:       fl.ID,
		ClassFlightID:  c.ID,
		ContactEmail:   "ops@example.com",
		PassengerCount: len(passengerIDs),
		PassengerIDs:   passengerIDs,
	}
}

func requireEngineError(t *testing.T, err error, kind error, code string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	require.Equal(t, code, ErrorCode(err))
}

func countRows(t *testing.T, gdb *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := gdb.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// recordLockedReads notes the table of every query issued with a row lock.
// SQLite drops the FOR UPDATE clause when building SQL but the statement
// still carries it.
func recordLockedReads(t *testing.T, gdb *gorm.DB) func() []string {
	t.Helper()
	var (
		mu     sync.Mutex
		tables []string
	)
	err := gdb.Callback().Query().After("gorm:query").Register("test:record_locked_reads", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Clauses["FOR"]; ok {
			mu.Lock()
			tables = append(tables, tx.Statement.Table)
			mu.Unlock()
		}
	})
	require.NoError(t, err)
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), tables...)
	}
}
