package routes

import (
	"airline-ops/flightcore/internal/api"
	"airline-ops/flightcore/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes. Fleet and schedule
// management needs a staff token; the booking flow is public.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {
	svc := deps.Services
	cfg := deps.Config
	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		// Staff only
		v1.Group(func(staff chi.Router) {
			staff.Use(middleware.StaffAuthMiddleware(cfg.StaffJWTSecret))

			staff.Post("/airlines", api.CreateAirlineHandler(svc.Airlines))
			staff.Get("/airlines", api.ListAirlinesHandler(svc.Airlines))
			staff.Get("/airlines/{id}", api.GetAirlineHandler(svc.Airlines))
			staff.Delete("/airlines/{id}", api.DeleteAirlineHandler(svc.Airlines))

			staff.Post("/airplanes", api.CreateAirplaneHandler(svc.Airplanes))
			staff.Get("/airplanes", api.ListAirplanesHandler(svc.Airplanes))
			staff.Get("/airplanes/{id}", api.GetAirplaneHandler(svc.Airplanes))
			staff.Delete("/airplanes/{id}", api.DeleteAirplaneHandler(svc.Airplanes))
			staff.Get("/airplanes/{id}/availability", api.AirplaneAvailabilityHandler(svc.Flights))
			staff.Get("/airplanes/{id}/schedule", api.AirplaneScheduleHandler(svc.Airplanes, deps.Repo.Reports))

			staff.Post("/flights", api.CreateFlightHandler(svc.Flights))
			staff.Put("/flights/{id}", api.UpdateFlightHandler(svc.Flights))
			staff.Delete("/flights/{id}", api.CancelFlightHandler(svc.Flights))
			staff.Post("/flights/{id}/status", api.FlightStatusHandler(svc.Flights))
			staff.Post("/flights/{id}/classes", api.CreateClassFlightHandler(svc.Flights))
			staff.Get("/flights/{id}/occupancy", api.FlightOccupancyHandler(svc.Flights, deps.Repo.Reports))

			staff.Post("/classes/{id}/seats", api.AddSeatsHandler(svc.Seats))
			staff.Post("/classes/{id}/assign", api.AssignSeatHandler(svc.Seats))
			staff.Post("/seats/{id}/release", api.ReleaseSeatHandler(svc.Seats))
			staff.Post("/passengers/{id}/release-seats", api.ReleasePassengerSeatsHandler(svc.Seats))
		})

		// Booking facing
		v1.Get("/flights", api.ListFlightsHandler(svc.Flights))
		v1.Get("/flights/{id}", api.GetFlightHandler(svc.Flights))
		v1.Get("/flights/{id}/classes", api.ListClassFlightsHandler(svc.Flights))
		v1.Get("/classes/{id}/seats", api.SeatMapHandler(svc.Seats, svc.Cache, cfg.CacheTTL, deps.Metrics))

		v1.Post("/passengers", api.CreatePassengerHandler(svc.Passengers))
		v1.Get("/passengers/{id}", api.GetPassengerHandler(svc.Passengers))

		v1.With(limiter.Middleware).Post("/bookings", api.CreateBookingHandler(svc.Bookings))
		v1.Get("/bookings", api.ListBookingsHandler(svc.Bookings))
		v1.Get("/bookings/{id}", api.GetBookingHandler(svc.Bookings))
		v1.Put("/bookings/{id}", api.UpdateBookingHandler(svc.Bookings))
		v1.Delete("/bookings/{id}", api.CancelBookingHandler(svc.Bookings))
	})
}
