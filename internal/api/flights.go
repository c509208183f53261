package api

import (
	"net/http"
	"strconv"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/db/repositories"
	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateFlightHandler godoc
// @Summary      Schedule a flight
// @Description  Rejects windows overlapping another active flight of the same airplane.
// @Tags         Flights
// @Accept       json
// @Produce      json
// @Param        body  body      dtos.CreateFlightRequest  true  "Flight"
// @Success      201   {object}  dtos.APIResponse
// @Failure      400,404,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/flights [post]
func CreateFlightHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateFlightRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		flight, err := svc.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create flight")
			return
		}
		respondCreated(w, initTime, "Flight created", dtos.ToFlightResponse(flight))
	}
}

func UpdateFlightHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateFlightRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		flight, err := svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to update flight")
			return
		}
		respondOK(w, initTime, "Flight updated", dtos.ToFlightResponse(flight))
	}
}

// CancelFlightHandler godoc
// @Summary      Cancel a flight
// @Description  Only Scheduled or Delayed flights without Paid/Rescheduled bookings.
// @Tags         Flights
// @Produce      json
// @Param        id   path      string  true  "Flight ID"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/flights/{id} [delete]
func CancelFlightHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flight, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to cancel flight")
			return
		}
		respondOK(w, initTime, "Flight cancelled", dtos.ToFlightResponse(flight))
	}
}

func FlightStatusHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		flight, err := svc.TransitionStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to change flight status")
			return
		}
		respondOK(w, initTime, "Flight status changed", dtos.ToFlightResponse(flight))
	}
}

func GetFlightHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flight, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch flight")
			return
		}
		respondOK(w, initTime, "Flight fetched", dtos.ToFlightResponse(flight))
	}
}

// ListFlightsHandler filters on airplane_id, origin, destination, status,
// from, to (RFC3339) and limit
func ListFlightsHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		filter := repositories.FlightFilter{
			AirplaneID:      q.Get("airplane_id"),
			OriginCode:      q.Get("origin"),
			DestinationCode: q.Get("destination"),
			Status:          constants.FlightStatus(q.Get("status")),
		}
		if v := q.Get("from"); v != "" {
			t, err := common.ParseTimeParam(v)
			if err != nil {
				respondBadRequest(w, initTime, "from: "+err.Error())
				return
			}
			filter.DepartFrom = &t
		}
		if v := q.Get("to"); v != "" {
			t, err := common.ParseTimeParam(v)
			if err != nil {
				respondBadRequest(w, initTime, "to: "+err.Error())
				return
			}
			filter.DepartTo = &t
		}
		if v := q.Get("limit"); v != "" {
			limit, err := strconv.Atoi(v)
			if err != nil || limit <= 0 {
				respondBadRequest(w, initTime, "Invalid limit parameter")
				return
			}
			filter.Limit = limit
		}

		flights, err := svc.List(r.Context(), filter)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to list flights")
			return
		}
		respondOK(w, initTime, "Flights fetched", dtos.ToFlightResponses(flights))
	}
}
