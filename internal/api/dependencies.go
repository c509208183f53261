package api

import (
	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/config"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/metrics"
	"airline-ops/flightcore/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	Reports *repositories.ScheduleReportRepository
}

type Services struct {
	Airlines   *services.AirlineService
	Airplanes  *services.AirplaneService
	Flights    *services.FlightService
	Seats      *services.SeatInventoryService
	Bookings   *services.BookingService
	Passengers *services.PassengerService
	Cache      common.CacheInterface
	Events     common.EventPublisher
}

type Dependencies struct {
	Config   *config.Config
	DB       *sqlx.DB
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	// Pinger is checked by the health endpoint when Redis is enabled
	Pinger common.Pinger
}

// InitDependencies wires repositories and services over the shared handles.
// cache and events pick the Redis or in-process implementations upstream.
func InitDependencies(
	cfg *config.Config,
	gormDB *gorm.DB,
	sqlxDB *sqlx.DB,
	cache common.CacheInterface,
	events common.EventPublisher,
	metricsReg *metrics.MetricsRegistry,
) (*Dependencies, error) {
	if events == nil {
		events = common.NoopEventPublisher{}
	}

	repos := &Repositories{
		Reports: repositories.NewScheduleReportRepository(sqlxDB),
	}

	ids := services.NewIDGenerator()
	checker := services.NewScheduleChecker()
	seats := services.NewSeatInventoryService(gormDB, cache, metricsReg, cfg.SeatAssignMaxAttempts)

	svcs := &Services{
		Airlines:   services.NewAirlineService(gormDB),
		Airplanes:  services.NewAirplaneService(gormDB, ids, events, metricsReg),
		Flights:    services.NewFlightService(gormDB, checker, ids, events, metricsReg),
		Seats:      seats,
		Bookings:   services.NewBookingService(gormDB, seats, ids, events, metricsReg, cfg.BookingMaxPassengers, cfg.BookingIDMaxAttempts),
		Passengers: services.NewPassengerService(gormDB),
		Cache:      cache,
		Events:     events,
	}

	return &Dependencies{
		Config:   cfg,
		DB:       sqlxDB,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
