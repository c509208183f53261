package dtos

import gormModels "airline-ops/flightcore/internal/models/gorm"

func ToAirlineResponse(a *gormModels.Airline) AirlineResponse {
	return AirlineResponse{ID: a.ID, Name: a.Name, Country: a.Country, IsDeleted: a.IsDeleted}
}

func ToAirplaneResponse(a *gormModels.Airplane) AirplaneResponse {
	return AirplaneResponse{
		ID:              a.ID,
		AirlineID:       a.AirlineID,
		Model:           a.Model,
		SeatCapacity:    a.SeatCapacity,
		ManufactureYear: a.ManufactureYear,
		IsDeleted:       a.IsDeleted,
	}
}

func ToPassengerResponse(p *gormModels.Passenger) PassengerResponse {
	return PassengerResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		BirthDate:  p.BirthDate,
		Gender:     p.Gender,
		IDPassport: p.IDPassport,
	}
}

func ToFlightResponse(f *gormModels.Flight) FlightResponse {
	return FlightResponse{
		ID:               f.ID,
		AirlineID:        f.AirlineID,
		AirplaneID:       f.AirplaneID,
		OriginCode:       f.OriginCode,
		DestinationCode:  f.DestinationCode,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Terminal:         f.Terminal,
		Gate:             f.Gate,
		BaggageAllowance: f.BaggageAllowance,
		Status:           f.Status,
		IsDeleted:        f.IsDeleted,
	}
}

func ToFlightResponses(flights []gormModels.Flight) []FlightResponse {
	out := make([]FlightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, ToFlightResponse(&flights[i]))
	}
	return out
}

func ToClassFlightResponse(c *gormModels.ClassFlight) ClassFlightResponse {
	return ClassFlightResponse{
		ID:             c.ID,
		FlightID:       c.FlightID,
		ClassType:      c.ClassType,
		SeatCapacity:   c.SeatCapacity,
		AvailableSeats: c.AvailableSeats,
		Price:          c.Price,
	}
}

func ToSeatResponse(s *gormModels.Seat) SeatResponse {
	return SeatResponse{
		ID:            s.ID,
		ClassFlightID: s.ClassFlightID,
		SeatNumber:    s.SeatNumber,
		IsAvailable:   s.IsAvailable,
		PassengerID:   s.PassengerID,
	}
}

func ToSeatResponses(seats []gormModels.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for i := range seats {
		out = append(out, ToSeatResponse(&seats[i]))
	}
	return out
}

func ToBookingResponse(b *gormModels.Booking) BookingResponse {
	passengers := make([]BookingPassengerResponse, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, BookingPassengerResponse{
			PassengerID: p.PassengerID,
			SeatID:      p.SeatID,
			SeatNumber:  p.SeatNumber,
		})
	}

	return BookingResponse{
		ID:             b.ID,
		FlightID:       b.FlightID,
		ClassFlightID:  b.ClassFlightID,
		ContactEmail:   b.ContactEmail,
		ContactPhone:   b.ContactPhone,
		PassengerCount: b.PassengerCount,
		Status:         b.Status,
		TotalPrice:     b.TotalPrice,
		IsDeleted:      b.IsDeleted,
		Passengers:     passengers,
		CreatedAt:      b.CreatedAt,
	}
}
