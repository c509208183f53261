package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/metrics"
	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

func CreateClassFlightHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateClassFlightRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		class, err := svc.CreateClassFlight(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create class flight")
			return
		}
		respondCreated(w, initTime, "Class flight created", dtos.ToClassFlightResponse(class))
	}
}

func ListClassFlightsHandler(svc *services.FlightService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		classes, err := svc.ListClasses(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to list class flights")
			return
		}

		out := make([]dtos.ClassFlightResponse, 0, len(classes))
		for i := range classes {
			out = append(out, dtos.ToClassFlightResponse(&classes[i]))
		}
		respondOK(w, initTime, "Class flights fetched", out)
	}
}

// AddSeatsHandler godoc
// @Summary      Create seats for a class flight
// @Description  Takes explicit seat_numbers and/or a layout {from_row,to_row,letters}.
// @Tags         Seats
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Class flight ID"
// @Param        body  body      dtos.AddSeatsRequest  true  "Seats"
// @Success      201   {object}  dtos.APIResponse
// @Failure      400,404,409,500  {object}  dtos.APIResponse
// @Router       /api/v1/classes/{id}/seats [post]
func AddSeatsHandler(svc *services.SeatInventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AddSeatsRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		numbers := append([]string{}, req.SeatNumbers...)
		if req.Layout != nil {
			generated, err := services.GenerateSeatNumbers(req.Layout.FromRow, req.Layout.ToRow, req.Layout.Letters)
			if err != nil {
				respondServiceError(w, initTime, err, "Invalid seat layout")
				return
			}
			numbers = append(numbers, generated...)
		}

		seats, err := svc.AddSeats(r.Context(), chi.URLParam(r, "id"), numbers)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to add seats")
			return
		}
		respondCreated(w, initTime, "Seats added", dtos.ToSeatResponses(seats))
	}
}

// SeatMapHandler serves the class seat map through the cache. Any seat
// change in the class evicts the entry.
func SeatMapHandler(svc *services.SeatInventoryService, cache common.CacheInterface, ttl time.Duration, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		classID := chi.URLParam(r, "id")
		key := services.SeatMapCacheKey(classID)

		if cache != nil {
			if cached, ok := cache.Get(key); ok {
				metricsReg.CacheLookup(string(constants.CachePrefixSeatMap), true)
				respondOK(w, initTime, "Seat map fetched", cached)
				return
			}
			metricsReg.CacheLookup(string(constants.CachePrefixSeatMap), false)
		}

		seatMap, err := svc.SeatMap(r.Context(), classID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch seat map")
			return
		}
		if cache != nil {
			cache.Set(key, seatMap, ttl)
		}
		respondOK(w, initTime, "Seat map fetched", seatMap)
	}
}

func AssignSeatHandler(svc *services.SeatInventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignSeatRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}
		if req.PassengerID == "" {
			respondBadRequest(w, initTime, "passenger_id is required")
			return
		}

		seat, err := svc.AssignSeat(r.Context(), chi.URLParam(r, "id"), req.PassengerID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to assign seat")
			return
		}
		respondOK(w, initTime, "Seat assigned", dtos.ToSeatResponse(seat))
	}
}

func ReleaseSeatHandler(svc *services.SeatInventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		seat, err := svc.Release(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to release seat")
			return
		}
		respondOK(w, initTime, "Seat released", dtos.ToSeatResponse(seat))
	}
}

func ReleasePassengerSeatsHandler(svc *services.SeatInventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		passengerID := chi.URLParam(r, "id")

		released, err := svc.ReleaseAllForPassenger(r.Context(), passengerID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to release passenger seats")
			return
		}
		respondOK(w, initTime, "Passenger seats released", dtos.SeatReleaseResponse{
			PassengerID: passengerID,
			Released:    released,
		})
	}
}
