package jobs

import (
	"context"

	"airline-ops/flightcore/internal/config"
	"airline-ops/flightcore/internal/metrics"

	"gorm.io/gorm"
)

type JobsContainer struct {
	SeatCounters *SeatCounterReconcileJob
}

// InitializeJobs starts every background job; they stop with ctx
func InitializeJobs(ctx context.Context, cfg *config.Config, db *gorm.DB, metricsReg *metrics.MetricsRegistry) *JobsContainer {
	seatCounters := NewSeatCounterReconcileJob(db, metricsReg, cfg.SeatReconcileWorkers)
	if cfg.SeatReconcileInterval > 0 {
		go seatCounters.RunScheduled(ctx, cfg.SeatReconcileInterval)
	}

	return &JobsContainer{SeatCounters: seatCounters}
}
