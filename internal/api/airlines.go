package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateAirlineHandler godoc
// @Summary      Register an airline
// @Tags         Airlines
// @Accept       json
// @Produce      json
// @Param        body  body      dtos.CreateAirlineRequest  true  "Airline"
// @Success      201   {object}  dtos.APIResponse
// @Failure      400,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/airlines [post]
func CreateAirlineHandler(svc *services.AirlineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateAirlineRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		airline, err := svc.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create airline")
			return
		}
		respondCreated(w, initTime, "Airline created", dtos.ToAirlineResponse(airline))
	}
}

func ListAirlinesHandler(svc *services.AirlineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airlines, err := svc.List(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to list airlines")
			return
		}

		out := make([]dtos.AirlineResponse, 0, len(airlines))
		for i := range airlines {
			out = append(out, dtos.ToAirlineResponse(&airlines[i]))
		}
		respondOK(w, initTime, "Airlines fetched", out)
	}
}

func GetAirlineHandler(svc *services.AirlineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airline, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch airline")
			return
		}
		respondOK(w, initTime, "Airline fetched", dtos.ToAirlineResponse(airline))
	}
}

// DeleteAirlineHandler soft deletes an airline without active airplanes
func DeleteAirlineHandler(svc *services.AirlineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id := chi.URLParam(r, "id")
		if err := svc.Delete(r.Context(), id); err != nil {
			respondServiceError(w, initTime, err, "Failed to delete airline")
			return
		}
		respondOK(w, initTime, "Airline deleted", map[string]string{"id": id})
	}
}
