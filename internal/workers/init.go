package workers

import (
	"context"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/logging"

	"gorm.io/gorm"
)

type WorkersContainer struct {
	Events  *BookingEventWorker
	Monitor *BookingStreamMonitor
}

// InitWorkers starts this instance's stream consumers. Without Redis the
// in-memory cache is the only layer, services evict it directly, and there
// is nothing to start.
func InitWorkers(ctx context.Context, db *gorm.DB, cache *common.TieredCacheService, queue *common.RedisQueueService, instanceID string) *WorkersContainer {
	if queue == nil || cache == nil {
		return &WorkersContainer{}
	}

	group := constants.BookingEventGroupFor(instanceID)
	events := NewBookingEventWorker("seatmap-"+instanceID, group, db, queue, cache)
	monitor := NewBookingStreamMonitor(queue, group, 100000)

	go func() {
		if err := events.Start(ctx, 2); err != nil {
			logging.Error("Booking event worker failed", "error", err)
		}
	}()
	go monitor.Start(ctx, 30*time.Second)

	return &WorkersContainer{Events: events, Monitor: monitor}
}
