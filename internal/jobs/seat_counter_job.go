package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/metrics"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// SeatCounterReconcileJob rewrites the stored available_seats snapshot of
// every class on a live flight from the seats table
type SeatCounterReconcileJob struct {
	classes     *repositories.ClassFlightRepository
	seats       *repositories.SeatRepository
	metrics     *metrics.MetricsRegistry
	concurrency int
}

func NewSeatCounterReconcileJob(db *gorm.DB, metricsReg *metrics.MetricsRegistry, concurrency int) *SeatCounterReconcileJob {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &SeatCounterReconcileJob{
		classes:     repositories.NewClassFlightRepository(db),
		seats:       repositories.NewSeatRepository(db),
		metrics:     metricsReg,
		concurrency: concurrency,
	}
}

// Run reconciles once and returns how many classes had drifted
func (j *SeatCounterReconcileJob) Run(ctx context.Context) (int, error) {
	start := time.Now()

	ids, err := j.classes.ListIDsForOpenFlights(ctx)
	if err != nil {
		return 0, err
	}

	var drifted atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			changed, err := j.reconcileClass(gctx, id)
			if err != nil {
				return fmt.Errorf("class %s: %w", id, err)
			}
			if changed {
				drifted.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	n := int(drifted.Load())
	j.metrics.ReconcileRun(time.Since(start).Seconds(), n)
	if err != nil {
		return n, err
	}

	logging.Info("Seat counters reconciled", "classes", len(ids), "drifted", n, "duration", time.Since(start).String())
	return n, nil
}

func (j *SeatCounterReconcileJob) reconcileClass(ctx context.Context, id string) (bool, error) {
	class, err := j.classes.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if class == nil {
		return false, nil
	}

	available, err := j.seats.CountAvailable(ctx, id)
	if err != nil {
		return false, err
	}
	if available == class.AvailableSeats {
		return false, nil
	}

	logging.Debug("Seat counter drift", "class_flight_id", id, "stored", class.AvailableSeats, "actual", available)
	return true, j.classes.SetAvailableSeats(ctx, id, available)
}

// RunScheduled reconciles immediately and then on every tick until ctx ends
func (j *SeatCounterReconcileJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := j.Run(ctx); err != nil {
		logging.Error("Seat counter reconcile failed", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				logging.Error("Seat counter reconcile failed", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Seat counter reconcile shutting down")
			return
		}
	}
}
