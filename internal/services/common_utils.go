package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/logging"

	"gorm.io/gorm"
)

// isDuplicate reports a unique or primary key violation
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func validateWindow(dep, arr time.Time) error {
	if dep.IsZero() || arr.IsZero() {
		return invalidInput(constants.ErrCodeInvalidTimeRange, "departure and arrival are required")
	}
	if !dep.Before(arr) {
		return invalidInput(constants.ErrCodeInvalidTimeRange, "")
	}
	return nil
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidInput(constants.ErrCodeInvalidField, name+" is required")
	}
	return nil
}

// maxAirportCodeLen matches the origin and destination columns
const maxAirportCodeLen = 8

func validateAirportCode(name, code string) error {
	if err := requireField(name, code); err != nil {
		return err
	}
	if len(common.NormalizeCode(code)) > maxAirportCodeLen {
		return invalidInput(constants.ErrCodeInvalidField, name+" longer than 8 characters")
	}
	return nil
}

// publishEvent hands an event to the publisher after commit. Failures are
// logged only; the committed change stands.
func publishEvent(ctx context.Context, publisher common.EventPublisher, event *common.BookingEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logging.Warn("Failed to publish booking event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err.Error(),
		)
	}
}
