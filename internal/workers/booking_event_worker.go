package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/services"

	"gorm.io/gorm"
)

type eventStream interface {
	Consume(ctx context.Context, groupName, consumerName string, blockTime time.Duration) (*common.BookingEvent, string, error)
	Ack(ctx context.Context, groupName, messageID string) error
	CreateConsumerGroup(ctx context.Context, groupName string) error
	DestroyConsumerGroup(ctx context.Context, groupName string) error
}

// localEvictor drops this instance's copy of a cached entry
type localEvictor interface {
	EvictLocal(key string)
}

// BookingEventWorker evicts this instance's cached seat maps for the classes
// touched by committed booking and flight events. The instance that made
// the change already cleared the shared entry; every other instance keeps
// serving its local copy until the event arrives here.
type BookingEventWorker struct {
	workerID string
	group    string
	stream   eventStream
	local    localEvictor
	classes  *repositories.ClassFlightRepository
}

func NewBookingEventWorker(workerID, group string, db *gorm.DB, stream eventStream, local localEvictor) *BookingEventWorker {
	return &BookingEventWorker{
		workerID: workerID,
		group:    group,
		stream:   stream,
		local:    local,
		classes:  repositories.NewClassFlightRepository(db),
	}
}

// Start runs numWorkers consumers of the booking event stream until ctx ends
func (w *BookingEventWorker) Start(ctx context.Context, numWorkers int) error {
	if err := w.stream.CreateConsumerGroup(ctx, w.group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			w.consume(ctx, name)
		}(fmt.Sprintf("%s-%d", w.workerID, i))
	}

	wg.Wait()

	// the group belongs to this instance only
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.stream.DestroyConsumerGroup(cleanupCtx, w.group); err != nil {
		logging.Warn("Failed to remove consumer group", "group", w.group, "error", err)
	}

	logging.Info("Booking event workers stopped", "worker_id", w.workerID)
	return nil
}

func (w *BookingEventWorker) consume(ctx context.Context, consumerName string) {
	processed, failed := 0, 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("Booking event consumer shutting down", "consumer", consumerName, "processed", processed, "errors", failed)
			return
		default:
		}

		event, messageID, err := w.stream.Consume(ctx, w.group, consumerName, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logging.Warn("Failed to read booking event", "consumer", consumerName, "error", err)
			if messageID == "" {
				time.Sleep(time.Second)
				continue
			}
			// undecodable message; ack it so it is not redelivered forever
			failed++
		} else if event == nil {
			continue
		} else if err := w.Handle(ctx, event); err != nil {
			logging.Warn("Failed to handle booking event", "event_id", event.ID, "type", event.Type, "error", err)
			failed++
		} else {
			processed++
		}

		if err := w.stream.Ack(ctx, w.group, messageID); err != nil {
			logging.Warn("Failed to ack booking event", "message_id", messageID, "error", err)
		}
	}
}

// Handle evicts the local seat map entries an event may have invalidated
func (w *BookingEventWorker) Handle(ctx context.Context, event *common.BookingEvent) error {
	if w.local == nil {
		return nil
	}

	switch event.Type {
	case constants.EventFlightCancelled:
		classes, err := w.classes.ListByFlight(ctx, event.FlightID)
		if err != nil {
			return err
		}
		for _, c := range classes {
			w.local.EvictLocal(services.SeatMapCacheKey(c.ID))
		}
	default:
		if event.ClassFlightID != "" {
			w.local.EvictLocal(services.SeatMapCacheKey(event.ClassFlightID))
		}
	}
	return nil
}
