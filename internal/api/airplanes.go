package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateAirplaneHandler godoc
// @Summary      Add an airplane to an airline's fleet
// @Description  The airplane id is generated as {airline_id}-XYZ.
// @Tags         Airplanes
// @Accept       json
// @Produce      json
// @Param        body  body      dtos.CreateAirplaneRequest  true  "Airplane"
// @Success      201   {object}  dtos.APIResponse
// @Failure      400,404,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/airplanes [post]
func CreateAirplaneHandler(svc *services.AirplaneService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateAirplaneRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		airplane, err := svc.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create airplane")
			return
		}
		respondCreated(w, initTime, "Airplane created", dtos.ToAirplaneResponse(airplane))
	}
}

func GetAirplaneHandler(svc *services.AirplaneService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airplane, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch airplane")
			return
		}
		respondOK(w, initTime, "Airplane fetched", dtos.ToAirplaneResponse(airplane))
	}
}

func ListAirplanesHandler(svc *services.AirplaneService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airlineID := r.URL.Query().Get("airline_id")
		if airlineID == "" {
			respondBadRequest(w, initTime, "airline_id query parameter is required")
			return
		}

		airplanes, err := svc.ListByAirline(r.Context(), airlineID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to list airplanes")
			return
		}

		out := make([]dtos.AirplaneResponse, 0, len(airplanes))
		for i := range airplanes {
			out = append(out, dtos.ToAirplaneResponse(&airplanes[i]))
		}
		respondOK(w, initTime, "Airplanes fetched", out)
	}
}

// DeleteAirplaneHandler godoc
// @Summary      Retire an airplane
// @Description  Cancels its Scheduled and Delayed flights in the same transaction.
// @Tags         Airplanes
// @Produce      json
// @Param        id   path      string  true  "Airplane ID"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/airplanes/{id} [delete]
func DeleteAirplaneHandler(svc *services.AirplaneService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := svc.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to delete airplane")
			return
		}
		respondOK(w, initTime, "Airplane deleted", resp)
	}
}

// AirplaneAvailabilityHandler answers whether the airplane is free for
// ?departure=..&arrival=.. (RFC3339), optionally ignoring exclude_flight_id
func AirplaneAvailabilityHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		dep, err := common.ParseTimeParam(q.Get("departure"))
		if err != nil {
			respondBadRequest(w, initTime, "departure: "+err.Error())
			return
		}
		arr, err := common.ParseTimeParam(q.Get("arrival"))
		if err != nil {
			respondBadRequest(w, initTime, "arrival: "+err.Error())
			return
		}

		resp, err := svc.CheckAvailability(r.Context(), chi.URLParam(r, "id"), dep, arr, q.Get("exclude_flight_id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to check availability")
			return
		}
		respondOK(w, initTime, "Availability checked", resp)
	}
}

// AirplaneScheduleHandler lists the airplane's flights overlapping
// ?from=..&to=.., defaulting to the next seven days
func AirplaneScheduleHandler(airplanes *services.AirplaneService, reports *repositories.ScheduleReportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		from := initTime.UTC()
		to := from.Add(7 * 24 * time.Hour)
		if v := q.Get("from"); v != "" {
			t, err := common.ParseTimeParam(v)
			if err != nil {
				respondBadRequest(w, initTime, "from: "+err.Error())
				return
			}
			from = t
		}
		if v := q.Get("to"); v != "" {
			t, err := common.ParseTimeParam(v)
			if err != nil {
				respondBadRequest(w, initTime, "to: "+err.Error())
				return
			}
			to = t
		}
		if !from.Before(to) {
			respondBadRequest(w, initTime, "from must be before to")
			return
		}

		airplaneID := chi.URLParam(r, "id")
		if _, err := airplanes.Get(r.Context(), airplaneID); err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch airplane")
			return
		}

		entries, err := reports.AirplaneSchedule(r.Context(), airplaneID, from, to)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch schedule")
			return
		}
		respondOK(w, initTime, "Schedule fetched", entries)
	}
}
