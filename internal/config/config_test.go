package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEAT_ASSIGN_MAX_ATTEMPTS", "")
	t.Setenv("BOOKING_MAX_PASSENGERS", "")
	t.Setenv("SEAT_RECONCILE_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, 5, cfg.SeatAssignMaxAttempts)
	assert.Equal(t, 10, cfg.BookingMaxPassengers)
	assert.Equal(t, 5*time.Minute, cfg.SeatReconcileInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEAT_ASSIGN_MAX_ATTEMPTS", "8")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("PG_USER", "ops")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "6543")
	t.Setenv("PG_DB", "fleet")

	cfg := Load()

	assert.Equal(t, 8, cfg.SeatAssignMaxAttempts)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "postgres://ops:secret@db:6543/fleet?sslmode=disable", cfg.DSN())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("SEAT_ASSIGN_MAX_ATTEMPTS", "many")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 5, cfg.SeatAssignMaxAttempts)
	assert.False(t, cfg.RedisEnabled)
}
