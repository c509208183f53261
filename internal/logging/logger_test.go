package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := globalLogger
	globalLogger = zap.New(core).Sugar()
	t.Cleanup(func() { globalLogger = prev })

	Info("Booking created", "booking_id", "GA-ABC-001-CGK-DPS-001")
	Debug("Seat map cache miss", "class_flight_id", "c-1")
	Warn("Failed to publish booking event", "error", "redis down")
	Error("Booking event worker failed", "error", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	levels := []zapcore.Level{zapcore.InfoLevel, zapcore.DebugLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, level := range levels {
		assert.Equal(t, level, entries[i].Level)
	}
	assert.Equal(t, "Booking created", entries[0].Message)
	assert.Equal(t, "GA-ABC-001-CGK-DPS-001", entries[0].ContextMap()["booking_id"])
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestGetLoggerFallsBackWithoutInit(t *testing.T) {
	prev := globalLogger
	globalLogger = nil
	t.Cleanup(func() { globalLogger = prev })

	assert.NotNil(t, GetLogger())
}
