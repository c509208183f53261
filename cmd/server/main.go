package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airline-ops/flightcore/internal/api"
	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/config"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db"
	"airline-ops/flightcore/internal/jobs"
	"airline-ops/flightcore/internal/logging"
	"airline-ops/flightcore/internal/metrics"
	"airline-ops/flightcore/internal/routes"
	"airline-ops/flightcore/internal/workers"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Flight Core API
// @version 1.0
// @description Flight scheduling and seat allocation engine.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flight core starting up",
		"environment", cfg.AppEnv,
		"version", api.Version,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitPostgres(cfg.DSN()); err != nil {
		logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	logging.Info("Connected to Postgres (sqlx)")

	gormDB, err := db.InitPostgresORM(cfg.DSN())
	if err != nil {
		logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
	}
	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("Failed to migrate schema", "error", err.Error())
	}

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)

	var (
		cache  common.CacheInterface
		events common.EventPublisher
		queue  *common.RedisQueueService
		tiered *common.TieredCacheService
		pinger common.Pinger
	)
	instanceID := uuid.NewString()[:8]
	if cfg.RedisEnabled {
		client := common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword)
		redisCache := common.NewRedisCacheService(client)
		tiered = common.NewTieredCacheService(common.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL), redisCache)
		queue = common.NewRedisQueueService(client, constants.BookingEventStream)
		cache, events, pinger = tiered, queue, redisCache
		logging.Info("Using Redis for cache and booking events", "addr", cfg.RedisAddr(), "instance", instanceID)
	} else {
		cache = common.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
		events = common.NoopEventPublisher{}
		logging.Info("Using in-memory cache; booking events disabled")
	}
	defer cache.Close()

	deps, err := api.InitDependencies(cfg, gormDB, db.DB, cache, events, metricsReg)
	if err != nil {
		logging.Fatal("Failed to initialize dependencies", "error", err.Error())
	}
	deps.Pinger = pinger

	jobs.InitializeJobs(ctx, cfg, gormDB, metricsReg)
	workers.InitWorkers(ctx, gormDB, tiered, queue, instanceID)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error("Graceful shutdown failed", "error", err.Error())
		}
	}()

	logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal("Server stopped", "error", err.Error())
	}
	logging.Info("Server stopped")
}
