package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the flight core service.
type Config struct {
	AppEnv   string
	HTTPAddr string

	PGHost     string
	PGPort     string
	PGUser     string
	PGDB       string
	PGPassword string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string

	StaffJWTSecret string

	SeatAssignMaxAttempts int
	BookingMaxPassengers  int
	BookingIDMaxAttempts  int
	SeatReconcileInterval time.Duration
	SeatReconcileWorkers  int
	CacheTTL              time.Duration
	RateLimitRPS          float64
	RateLimitBurst        int
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	// .env is optional; real deployments inject env vars directly
	_ = godotenv.Load()

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getEnv("PG_PORT", "5432"),
		PGUser:     getEnv("PG_USER", "flightcore"),
		PGDB:       getEnv("PG_DB", "flightcore"),
		PGPassword: getEnv("PG_PASSWORD", ""),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		StaffJWTSecret: getEnv("STAFF_JWT_SECRET", ""),

		SeatAssignMaxAttempts: getEnvAsInt("SEAT_ASSIGN_MAX_ATTEMPTS", 5),
		BookingMaxPassengers:  getEnvAsInt("BOOKING_MAX_PASSENGERS", 10),
		BookingIDMaxAttempts:  getEnvAsInt("BOOKING_ID_MAX_ATTEMPTS", 3),
		SeatReconcileInterval: getEnvAsDuration("SEAT_RECONCILE_INTERVAL", 5*time.Minute),
		SeatReconcileWorkers:  getEnvAsInt("SEAT_RECONCILE_CONCURRENCY", 4),
		CacheTTL:              getEnvAsDuration("CACHE_TTL", 30*time.Second),
		RateLimitRPS:          getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:        getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
}

// DSN renders the postgres connection string shared by GORM and sqlx.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}
