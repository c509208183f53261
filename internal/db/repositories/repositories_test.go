package repositories

import (
	"context"
	"testing"
	"time"

	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var day = time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb, sqlx.NewDb(sqlDB, "sqlite3")
}

// seedFlight writes an airline, airplane, flight and one class directly
func seedFlight(t *testing.T, gdb *gorm.DB) (*gormModels.Flight, *gormModels.ClassFlight) {
	t.Helper()
	require.NoError(t, gdb.Create(&gormModels.Airline{ID: "GA", Name: "Garuda"}).Error)
	require.NoError(t, gdb.Create(&gormModels.Airplane{ID: "GA-ABC", AirlineID: "GA", Model: "A320", SeatCapacity: 100}).Error)

	flight := &gormModels.Flight{
		ID:              "GA-ABC-001",
		AirlineID:       "GA",
		AirplaneID:      "GA-ABC",
		OriginCode:      "CGK",
		DestinationCode: "DPS",
		DepartureTime:   day.Add(8 * time.Hour),
		ArrivalTime:     day.Add(10 * time.Hour),
		Status:          constants.FlightScheduled,
	}
	require.NoError(t, gdb.Create(flight).Error)

	class := &gormModels.ClassFlight{FlightID: flight.ID, ClassType: "Economy", SeatCapacity: 3, Price: 50}
	require.NoError(t, gdb.Create(class).Error)
	return flight, class
}

func TestSeatRepository_OrdersByRowNumber(t *testing.T) {
	gdb, _ := setupTestDB(t)
	_, class := seedFlight(t, gdb)
	repo := NewSeatRepository(gdb)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []gormModels.Seat{
		{ClassFlightID: class.ID, SeatNumber: "10A", IsAvailable: true},
		{ClassFlightID: class.ID, SeatNumber: "2B", IsAvailable: true},
		{ClassFlightID: class.ID, SeatNumber: "2A", IsAvailable: true},
	}))

	listed, err := repo.ListByClass(ctx, class.ID)
	require.NoError(t, err)
	numbers := make([]string, 0, len(listed))
	for _, s := range listed {
		numbers = append(numbers, s.SeatNumber)
	}
	assert.Equal(t, []string{"2A", "2B", "10A"}, numbers)
	assert.Equal(t, 10, listed[2].SeatRow)

	available, err := repo.ListAvailable(ctx, class.ID, 1)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "2A", available[0].SeatNumber)
}

func TestSeatRepository_GuardedUpdates(t *testing.T) {
	gdb, _ := setupTestDB(t)
	_, class := seedFlight(t, gdb)
	repo := NewSeatRepository(gdb)
	ctx := context.Background()

	seats := []gormModels.Seat{
		{ClassFlightID: class.ID, SeatNumber: "1B", IsAvailable: true},
		{ClassFlightID: class.ID, SeatNumber: "1A", IsAvailable: true},
	}
	require.NoError(t, repo.CreateBatch(ctx, seats))

	available, err := repo.ListAvailable(ctx, class.ID, 1)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "1A", available[0].SeatNumber)

	won, err := repo.MarkOccupied(ctx, available[0].ID, "pax-1")
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.MarkOccupied(ctx, available[0].ID, "pax-2")
	require.NoError(t, err)
	assert.False(t, won, "an occupied seat cannot be taken again")

	n, err := repo.CountAvailable(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	released, err := repo.ReleaseHeldBy(ctx, class.ID, "pax-2", []string{available[0].ID})
	require.NoError(t, err)
	assert.Zero(t, released)

	ok, err := repo.Release(ctx, available[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Release(ctx, available[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFlightRepository_StatusGuards(t *testing.T) {
	gdb, _ := setupTestDB(t)
	flight, _ := seedFlight(t, gdb)
	repo := NewFlightRepository(gdb)
	ctx := context.Background()

	ok, err := repo.UpdateStatus(ctx, flight.ID, constants.FlightDelayed, constants.FlightInFlight)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.UpdateStatus(ctx, flight.ID, constants.FlightScheduled, constants.FlightInFlight)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Cancel(ctx, flight.ID)
	require.NoError(t, err)
	assert.False(t, ok, "a flight in the air cannot be cancelled")

	active, err := repo.ListActiveForAirplane(ctx, "GA-ABC")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	ids, err := repo.ListIDsWithPrefix(ctx, "GA-ABC-")
	require.NoError(t, err)
	assert.Equal(t, []string{flight.ID}, ids)
}

func TestScheduleReportRepository_AirplaneSchedule(t *testing.T) {
	gdb, sdb := setupTestDB(t)
	flight, _ := seedFlight(t, gdb)
	repo := NewScheduleReportRepository(sdb)
	ctx := context.Background()

	entries, err := repo.AirplaneSchedule(ctx, "GA-ABC", day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, flight.ID, entries[0].FlightID)
	assert.Equal(t, constants.FlightScheduled, entries[0].Status)
	assert.True(t, entries[0].DepartureTime.Equal(flight.DepartureTime))

	entries, err = repo.AirplaneSchedule(ctx, "GA-ABC", day.Add(10*time.Hour), day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, entries, "a window starting at arrival does not overlap")
}

func TestScheduleReportRepository_FlightOccupancy(t *testing.T) {
	gdb, sdb := setupTestDB(t)
	flight, class := seedFlight(t, gdb)
	ctx := context.Background()

	pid := "pax-1"
	require.NoError(t, gdb.Create(&[]gormModels.Seat{
		{ClassFlightID: class.ID, SeatNumber: "1A", IsAvailable: false, PassengerID: &pid},
		{ClassFlightID: class.ID, SeatNumber: "1B", IsAvailable: true},
	}).Error)
	require.NoError(t, gdb.Create(&gormModels.ClassFlight{FlightID: flight.ID, ClassType: "Business", SeatCapacity: 2, Price: 200}).Error)

	rows, err := NewScheduleReportRepository(sdb).FlightOccupancy(ctx, flight.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Business", rows[0].ClassType)
	assert.Zero(t, rows[0].SeatRows)
	assert.Zero(t, rows[0].Occupied())

	assert.Equal(t, "Economy", rows[1].ClassType)
	assert.Equal(t, 2, rows[1].SeatRows)
	assert.Equal(t, 1, rows[1].AvailableSeats)
	assert.Equal(t, 1, rows[1].Occupied())
}
