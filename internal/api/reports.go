package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/models/entities"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

type occupancyReport struct {
	FlightID string                    `json:"flight_id"`
	Classes  []entities.ClassOccupancy `json:"classes"`
	Occupied int                       `json:"occupied"`
}

// FlightOccupancyHandler reports seat usage per class of a flight
func FlightOccupancyHandler(flights *services.FlightService, reports *repositories.ScheduleReportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		flightID := chi.URLParam(r, "id")

		if _, err := flights.Get(r.Context(), flightID); err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch flight")
			return
		}

		classes, err := reports.FlightOccupancy(r.Context(), flightID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to build occupancy report")
			return
		}

		report := occupancyReport{FlightID: flightID, Classes: classes}
		if report.Classes == nil {
			report.Classes = []entities.ClassOccupancy{}
		}
		for _, c := range classes {
			report.Occupied += c.Occupied()
		}
		respondOK(w, initTime, "Occupancy fetched", report)
	}
}
