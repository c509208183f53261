package workers

import (
	"context"
	"time"

	"airline-ops/flightcore/internal/logging"
)

type streamStats interface {
	PendingCount(ctx context.Context, groupName string) (int64, error)
	Trim(ctx context.Context, maxLen int64) error
}

// BookingStreamMonitor logs consumer lag and caps the stream length
type BookingStreamMonitor struct {
	stream       streamStats
	group        string
	maxLen       int64
	pendingAlert int64
}

func NewBookingStreamMonitor(stream streamStats, group string, maxLen int64) *BookingStreamMonitor {
	return &BookingStreamMonitor{stream: stream, group: group, maxLen: maxLen, pendingAlert: 1000}
}

func (m *BookingStreamMonitor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

func (m *BookingStreamMonitor) check(ctx context.Context) {
	pending, err := m.stream.PendingCount(ctx, m.group)
	if err != nil {
		// group not created yet
		pending = 0
	}
	if pending > m.pendingAlert {
		logging.Warn("Booking event stream backlog", "pending", pending)
	} else {
		logging.Debug("Booking event stream healthy", "pending", pending)
	}

	if m.maxLen > 0 {
		if err := m.stream.Trim(ctx, m.maxLen); err != nil {
			logging.Warn("Failed to trim booking event stream", "error", err)
		}
	}
}
