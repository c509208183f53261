package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// Version is stamped at build time with -ldflags "-X .../internal/api.Version=..."
var Version = "dev"

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server and its backing stores are reachable.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(db *sqlx.DB, redis common.Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)
		services["postgres"] = pingStatus("Postgres Connected", db.PingContext(ctx))
		if redis != nil {
			services["redis"] = pingStatus("Redis Connected", redis.Ping(ctx))
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   "ok",
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Version:  Version,
		}

		status := http.StatusOK
		if !resp.Healthy() {
			resp.Status = "down"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func pingStatus(okDetails string, err error) entities.ServiceStatus {
	if err != nil {
		return entities.ServiceStatus{Status: "down", Details: err.Error()}
	}
	return entities.ServiceStatus{Status: "ok", Details: okDetails}
}
