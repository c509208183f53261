package jobs

import (
	"context"
	"testing"
	"time"

	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

func seedClass(t *testing.T, gdb *gorm.DB, flightID string, deleted bool, stored int, seats map[string]bool) string {
	t.Helper()

	dep := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	status := constants.FlightScheduled
	if deleted {
		status = constants.FlightCancelled
	}
	require.NoError(t, gdb.Create(&gormModels.Flight{
		ID:              flightID,
		AirlineID:       "GA",
		AirplaneID:      "GA-ABC",
		OriginCode:      "CGK",
		DestinationCode: "DPS",
		DepartureTime:   dep,
		ArrivalTime:     dep.Add(2 * time.Hour),
		Status:          status,
		IsDeleted:       deleted,
	}).Error)

	class := &gormModels.ClassFlight{FlightID: flightID, ClassType: "Economy", SeatCapacity: 10, AvailableSeats: stored, Price: 10}
	require.NoError(t, gdb.Create(class).Error)

	for number, available := range seats {
		require.NoError(t, gdb.Create(&gormModels.Seat{ClassFlightID: class.ID, SeatNumber: number, IsAvailable: available}).Error)
	}
	return class.ID
}

func storedAvailable(t *testing.T, gdb *gorm.DB, classID string) int {
	t.Helper()
	var class gormModels.ClassFlight
	require.NoError(t, gdb.First(&class, "id = ?", classID).Error)
	return class.AvailableSeats
}

func TestSeatCounterReconcileJob_FixesDrift(t *testing.T) {
	gdb := setupTestDB(t)

	drifted := seedClass(t, gdb, "GA-ABC-001", false, 7, map[string]bool{"1A": true, "1B": false, "1C": true})
	accurate := seedClass(t, gdb, "GA-ABC-002", false, 1, map[string]bool{"1A": true})
	cancelled := seedClass(t, gdb, "GA-ABC-003", true, 9, map[string]bool{"1A": true})

	job := NewSeatCounterReconcileJob(gdb, nil, 2)

	n, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, 2, storedAvailable(t, gdb, drifted))
	assert.Equal(t, 1, storedAvailable(t, gdb, accurate))
	assert.Equal(t, 9, storedAvailable(t, gdb, cancelled), "classes of cancelled flights are left alone")

	n, err = job.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeatCounterReconcileJob_RunScheduledStopsWithContext(t *testing.T) {
	gdb := setupTestDB(t)
	classID := seedClass(t, gdb, "GA-ABC-001", false, 0, map[string]bool{"1A": true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewSeatCounterReconcileJob(gdb, nil, 1).RunScheduled(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		var class gormModels.ClassFlight
		if err := gdb.First(&class, "id = ?", classID).Error; err != nil {
			return false
		}
		return class.AvailableSeats == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunScheduled did not stop")
	}
}
