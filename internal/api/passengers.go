package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

func CreatePassengerHandler(svc *services.PassengerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreatePassengerRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		passenger, err := svc.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to register passenger")
			return
		}
		respondCreated(w, initTime, "Passenger registered", dtos.ToPassengerResponse(passenger))
	}
}

func GetPassengerHandler(svc *services.PassengerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		passenger, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch passenger")
			return
		}
		respondOK(w, initTime, "Passenger fetched", dtos.ToPassengerResponse(passenger))
	}
}
