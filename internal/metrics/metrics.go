package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight core.
// Every helper is safe to call on a nil registry.
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Engine Metrics
	SeatAssignAttempts   *prometheus.CounterVec
	SeatAssignExhausted  prometheus.Counter
	SeatsReleasedTotal   *prometheus.CounterVec
	SchedulingConflicts  prometheus.Counter
	FlightOpsTotal       *prometheus.CounterVec
	BookingOpsTotal      *prometheus.CounterVec
	ReconcileJobDuration prometheus.Histogram
	ReconcileDriftTotal  prometheus.Counter
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightcore_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightcore_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed by method",
			},
			[]string{"method"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_cache_hits_total",
				Help: "Total cache hits by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_cache_misses_total",
				Help: "Total cache misses by cache key prefix",
			},
			[]string{"cache_key_pattern"},
		),

		// Engine Metrics
		SeatAssignAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_seat_assign_attempts_total",
				Help: "Conditional seat updates by outcome (won, lost, empty)",
			},
			[]string{"outcome"},
		),
		SeatAssignExhausted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightcore_seat_assign_exhausted_total",
				Help: "Seat assignments that ran out of retries",
			},
		),
		SeatsReleasedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_seats_released_total",
				Help: "Seats returned to the pool by reason",
			},
			[]string{"reason"},
		),
		SchedulingConflicts: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightcore_scheduling_conflicts_total",
				Help: "Flight writes rejected for overlapping an active flight",
			},
		),
		FlightOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_flight_operations_total",
				Help: "Flight lifecycle operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		BookingOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightcore_booking_operations_total",
				Help: "Booking lifecycle operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		ReconcileJobDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightcore_seat_reconcile_duration_seconds",
				Help:    "Seat counter reconcile run time in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		ReconcileDriftTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightcore_seat_counter_drift_total",
				Help: "Classes whose stored available seat count had drifted",
			},
		),
	}
}

func (m *MetricsRegistry) SeatAttempt(outcome string) {
	if m == nil {
		return
	}
	m.SeatAssignAttempts.WithLabelValues(outcome).Inc()
}

func (m *MetricsRegistry) SeatExhausted() {
	if m == nil {
		return
	}
	m.SeatAssignExhausted.Inc()
}

func (m *MetricsRegistry) SeatsReleased(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SeatsReleasedTotal.WithLabelValues(reason).Add(float64(n))
}

func (m *MetricsRegistry) SchedulingConflict() {
	if m == nil {
		return
	}
	m.SchedulingConflicts.Inc()
}

func (m *MetricsRegistry) FlightOp(operation string, err error) {
	if m == nil {
		return
	}
	m.FlightOpsTotal.WithLabelValues(operation, result(err)).Inc()
}

func (m *MetricsRegistry) BookingOp(operation string, err error) {
	if m == nil {
		return
	}
	m.BookingOpsTotal.WithLabelValues(operation, result(err)).Inc()
}

func (m *MetricsRegistry) CacheLookup(prefix string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(prefix).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(prefix).Inc()
}

func (m *MetricsRegistry) ReconcileRun(seconds float64, drifted int) {
	if m == nil {
		return
	}
	m.ReconcileJobDuration.Observe(seconds)
	m.ReconcileDriftTotal.Add(float64(drifted))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
