package entities

import "time"

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	UpSince  time.Time                `json:"up_since"`
	Uptime   string                   `json:"uptime"`
	Version  string                   `json:"version,omitempty"`
}

// Healthy reports whether every dependency is up
func (h HealthCheckResponse) Healthy() bool {
	for _, svc := range h.Services {
		if svc.Status != "ok" {
			return false
		}
	}
	return true
}
