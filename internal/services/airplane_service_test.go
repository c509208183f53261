package services

import (
	"context"
	"testing"

	"airline-ops/flightcore/internal/constants"
	"airline-ops/flightcore/internal/models/dtos"
	gormModels "airline-ops/flightcore/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirplaneCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plane := f.airplane(t, 180)
	assert.Regexp(t, `^GA-[A-Z]{3}$`, plane.ID)
	assert.Equal(t, "GA", plane.AirlineID)

	_, err := f.airplanes.Create(ctx, &dtos.CreateAirplaneRequest{AirlineID: "XX", Model: "B737", SeatCapacity: 100})
	requireEngineError(t, err, ErrNotFound, constants.ErrCodeAirlineNotFound)

	_, err = f.airplanes.Create(ctx, &dtos.CreateAirplaneRequest{AirlineID: "GA", Model: "B737", SeatCapacity: 0})
	requireEngineError(t, err, ErrInvalidInput, constants.ErrCodeInvalidField)

	listed, err := f.airplanes.ListByAirline(ctx, "ga")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, plane.ID, listed[0].ID)
}

func TestAirplaneDelete_CancelsUpcomingFlights(t *testing.T) {
	f := newFixture(t)
	plane := f.airplane(t, 180)
	first := f.flight(t, plane.ID, 10, 12)
	second := f.flight(t, plane.ID, 14, 16)
	c := f.class(t, first.ID, "Economy", 100, 90, "1A")
	ctx := context.Background()

	// an unpaid booking does not block
	_, err := f.bookings.Create(ctx, bookingReq(first, c, f.passenger(t, "AD1").ID))
	require.NoError(t, err)

	resp, err := f.airplanes.Delete(ctx, plane.ID)
	require.NoError(t, err)
	assert.Equal(t, plane.ID, resp.AirplaneID)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, resp.CancelledFlights)

	for _, id := range []string{first.ID, second.ID} {
		fl, err := f.flights.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, constants.FlightCancelled, fl.Status)
		assert.True(t, fl.IsDeleted)
	}

	stored, err := f.airplanes.Get(ctx, plane.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)
	assert.Contains(t, f.events.types(), constants.EventFlightCancelled)

	_, err = f.airplanes.Delete(ctx, plane.ID)
	requireEngineError(t, err, ErrNotFound, constants.ErrCodeAirplaneDeleted)

	_, err = f.flights.Create(ctx, flightReq(plane.ID, at(30), at(32)))
	require.Error(t, err)
}

func TestAirplaneDelete_BlockedByPaidBooking(t *testing.T) {
	f := newFixture(t)
	plane := f.airplane(t, 180)
	first := f.flight(t, plane.ID, 10, 12)
	second := f.flight(t, plane.ID, 14, 16)
	c := f.class(t, second.ID, "Economy", 100, 90, "1A")
	ctx := context.Background()

	paid := constants.BookingPaid
	req := bookingReq(second, c, f.passenger(t, "AD2").ID)
	req.Status = paid
	_, err := f.bookings.Create(ctx, req)
	require.NoError(t, err)

	_, err = f.airplanes.Delete(ctx, plane.ID)
	requireEngineError(t, err, ErrBlockedByDependents, constants.ErrCodeActiveBookings)

	for _, id := range []string{first.ID, second.ID} {
		fl, err := f.flights.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, constants.FlightScheduled, fl.Status)
		assert.False(t, fl.IsDeleted)
	}
	stored, err := f.airplanes.Get(ctx, plane.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsDeleted)
}

func TestAirplaneDelete_BlockedByFlightInTheAir(t *testing.T) {
	f := newFixture(t)
	plane := f.airplane(t, 180)
	fl := f.flight(t, plane.ID, 10, 12)
	ctx := context.Background()

	_, err := f.flights.TransitionStatus(ctx, fl.ID, constants.FlightInFlight)
	require.NoError(t, err)

	_, err = f.airplanes.Delete(ctx, plane.ID)
	requireEngineError(t, err, ErrBlockedByDependents, constants.ErrCodeAirplaneInFlight)

	_, err = f.airplanes.Delete(ctx, "GA-QQQ")
	requireEngineError(t, err, ErrNotFound, constants.ErrCodeAirplaneNotFound)
}

func TestAirlineDelete(t *testing.T) {
	f := newFixture(t)
	plane := f.airplane(t, 100)
	ctx := context.Background()

	err := f.airlines.Delete(ctx, "GA")
	requireEngineError(t, err, ErrBlockedByDependents, constants.ErrCodeActiveAirplanes)

	_, err = f.airplanes.Delete(ctx, plane.ID)
	require.NoError(t, err)

	require.NoError(t, f.airlines.Delete(ctx, "GA"))
	err = f.airlines.Delete(ctx, "GA")
	requireEngineError(t, err, ErrNotFound, constants.ErrCodeAirlineNotFound)

	_, err = f.airplanes.Create(ctx, &dtos.CreateAirplaneRequest{AirlineID: "GA", Model: "A320", SeatCapacity: 100})
	requireEngineError(t, err, ErrNotFound, constants.ErrCodeAirlineNotFound)
}

func TestAirlineCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	airline, err := f.airlines.Create(ctx, &dtos.CreateAirlineRequest{ID: " qz ", Name: "Indonesia AirAsia"})
	require.NoError(t, err)
	assert.Equal(t, "QZ", airline.ID)

	_, err = f.airlines.Create(ctx, &dtos.CreateAirlineRequest{ID: "GA", Name: "Again"})
	requireEngineError(t, err, ErrAlreadyExists, constants.ErrCodeDuplicate)

	_, err = f.airlines.Create(ctx, &dtos.CreateAirlineRequest{ID: "G-A", Name: "Dash"})
	requireEngineError(t, err, ErrInvalidInput, constants.ErrCodeInvalidField)

	all, err := f.airlines.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPassengerCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.passenger(t, "ab123")
	assert.Equal(t, "AB123", p.IDPassport)

	_, err := f.passengers.Create(ctx, &dtos.CreatePassengerRequest{FullName: "Copy", IDPassport: "AB123"})
	requireEngineError(t, err, ErrAlreadyExists, constants.ErrCodeDuplicate)

	_, err = f.passengers.Create(ctx, &dtos.CreatePassengerRequest{FullName: "", IDPassport: "Z9"})
	requireEngineError(t, err, ErrInvalidInput, constants.ErrCodeInvalidField)

	got, err := f.passengers.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.FullName, got.FullName)

	_, err = f.passengers.Get(ctx, "missing")
	requireEngineError(t, err, ErrNotFound, constants.ErrCodePassengerNotFound)

	assert.EqualValues(t, 1, countRows(t, f.db, &gormModels.Passenger{}, ""))
}
