package api

import (
	"net/http"
	"time"

	"airline-ops/flightcore/internal/models/dtos"
	"airline-ops/flightcore/internal/services"

	"github.com/go-chi/chi/v5"
)

// CreateBookingHandler godoc
// @Summary      Book seats on a flight
// @Description  Assigns one seat per passenger from the chosen class. Either every passenger is seated or nothing is written.
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        body  body      dtos.CreateBookingRequest  true  "Booking"
// @Success      201   {object}  dtos.APIResponse
// @Failure      400,404,409,429,500  {object}  dtos.APIResponse
// @Router       /api/v1/bookings [post]
func CreateBookingHandler(svc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		booking, err := svc.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to create booking")
			return
		}
		respondCreated(w, initTime, "Booking created", dtos.ToBookingResponse(booking))
	}
}

func GetBookingHandler(svc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		booking, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to fetch booking")
			return
		}
		respondOK(w, initTime, "Booking fetched", dtos.ToBookingResponse(booking))
	}
}

func ListBookingsHandler(svc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		flightID := r.URL.Query().Get("flight_id")
		if flightID == "" {
			respondBadRequest(w, initTime, "flight_id query parameter is required")
			return
		}

		bookings, err := svc.ListByFlight(r.Context(), flightID)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to list bookings")
			return
		}

		out := make([]dtos.BookingResponse, 0, len(bookings))
		for i := range bookings {
			out = append(out, dtos.ToBookingResponse(&bookings[i]))
		}
		respondOK(w, initTime, "Bookings fetched", out)
	}
}

func UpdateBookingHandler(svc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			respondBadRequest(w, initTime, err.Error())
			return
		}

		booking, err := svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to update booking")
			return
		}
		respondOK(w, initTime, "Booking updated", dtos.ToBookingResponse(booking))
	}
}

// CancelBookingHandler cancels the booking and frees its seats
func CancelBookingHandler(svc *services.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		booking, err := svc.Cancel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "Failed to cancel booking")
			return
		}
		respondOK(w, initTime, "Booking cancelled", dtos.ToBookingResponse(booking))
	}
}
