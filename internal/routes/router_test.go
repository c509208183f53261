package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"airline-ops/flightcore/internal/api"
	"airline-ops/flightcore/internal/auth"
	"airline-ops/flightcore/internal/common"
	"airline-ops/flightcore/internal/config"
	"airline-ops/flightcore/internal/db"
	"airline-ops/flightcore/internal/models/dtos"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	cfg := &config.Config{
		StaffJWTSecret:        testSecret,
		SeatAssignMaxAttempts: 5,
		BookingMaxPassengers:  10,
		BookingIDMaxAttempts:  3,
		CacheTTL:              time.Minute,
		RateLimitRPS:          100,
		RateLimitBurst:        100,
	}
	deps, err := api.InitDependencies(cfg, gdb, sqlx.NewDb(sqlDB, "sqlite3"),
		common.NewCacheService(time.Minute, time.Minute), nil, nil)
	require.NoError(t, err)

	return RegisterRoutes(deps, time.Now())
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.IssueStaffToken(testSecret, "ops-1", auth.RoleScheduler, time.Hour)
	require.NoError(t, err)
	return token
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestStaffRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	code, env := call(t, h, http.MethodPost, "/api/v1/airlines", "", dtos.CreateAirlineRequest{ID: "GA", Name: "Garuda"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Code)

	code, _ = call(t, h, http.MethodPost, "/api/v1/airlines", "not-a-token", dtos.CreateAirlineRequest{ID: "GA", Name: "Garuda"})
	assert.Equal(t, http.StatusUnauthorized, code)

	// the booking side is public
	code, _ = call(t, h, http.MethodGet, "/api/v1/flights", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	h := newTestRouter(t)
	token := staffToken(t)

	code, _ := call(t, h, http.MethodPost, "/api/v1/airlines", token, dtos.CreateAirlineRequest{ID: "GA", Name: "Garuda", Country: "ID"})
	require.Equal(t, http.StatusCreated, code)

	code, env := call(t, h, http.MethodPost, "/api/v1/airplanes", token, dtos.CreateAirplaneRequest{AirlineID: "GA", Model: "A320", SeatCapacity: 180})
	require.Equal(t, http.StatusCreated, code)
	var plane dtos.AirplaneResponse
	decodeData(t, env, &plane)

	dep := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	flightReq := dtos.CreateFlightRequest{
		AirlineID:       "GA",
		AirplaneID:      plane.ID,
		OriginCode:      "CGK",
		DestinationCode: "DPS",
		DepartureTime:   dep,
		ArrivalTime:     dep.Add(2 * time.Hour),
	}
	code, env = call(t, h, http.MethodPost, "/api/v1/flights", token, flightReq)
	require.Equal(t, http.StatusCreated, code)
	var flight dtos.FlightResponse
	decodeData(t, env, &flight)
	assert.Equal(t, plane.ID+"-001", flight.ID)

	flightReq.DepartureTime = dep.Add(time.Hour)
	flightReq.ArrivalTime = dep.Add(3 * time.Hour)
	code, env = call(t, h, http.MethodPost, "/api/v1/flights", token, flightReq)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SCHEDULING_CONFLICT", env.Code)

	code, env = call(t, h, http.MethodPost, "/api/v1/flights/"+flight.ID+"/classes", token,
		dtos.CreateClassFlightRequest{ClassType: "Economy", SeatCapacity: 10, Price: 75})
	require.Equal(t, http.StatusCreated, code)
	var class dtos.ClassFlightResponse
	decodeData(t, env, &class)

	code, _ = call(t, h, http.MethodPost, "/api/v1/classes/"+class.ID+"/seats", token,
		dtos.AddSeatsRequest{Layout: &dtos.SeatLayout{FromRow: 1, ToRow: 1, Letters: "AB"}})
	require.Equal(t, http.StatusCreated, code)

	code, env = call(t, h, http.MethodPost, "/api/v1/passengers", "", dtos.CreatePassengerRequest{FullName: "Ayu", IDPassport: "X1"})
	require.Equal(t, http.StatusCreated, code)
	var pax dtos.PassengerResponse
	decodeData(t, env, &pax)

	code, env = call(t, h, http.MethodPost, "/api/v1/bookings", "", dtos.CreateBookingRequest{
		FlightID:       flight.ID,
		ClassFlightID:  class.ID,
		ContactEmail:   "ayu@example.com",
		PassengerCount: 1,
		PassengerIDs:   []string{pax.ID},
	})
	require.Equal(t, http.StatusCreated, code)
	var booking dtos.BookingResponse
	decodeData(t, env, &booking)
	assert.Equal(t, flight.ID+"-CGK-DPS-001", booking.ID)
	require.Len(t, booking.Passengers, 1)
	assert.Equal(t, "1A", booking.Passengers[0].SeatNumber)

	code, env = call(t, h, http.MethodGet, "/api/v1/classes/"+class.ID+"/seats", "", nil)
	require.Equal(t, http.StatusOK, code)
	var seatMap dtos.SeatMapResponse
	decodeData(t, env, &seatMap)
	assert.Equal(t, 1, seatMap.AvailableSeats)

	code, _ = call(t, h, http.MethodDelete, "/api/v1/flights/"+flight.ID, token, nil)
	assert.Equal(t, http.StatusOK, code, "an unpaid booking does not block cancellation")

	code, env = call(t, h, http.MethodPost, "/api/v1/bookings", "", dtos.CreateBookingRequest{
		FlightID:       flight.ID,
		ClassFlightID:  class.ID,
		ContactEmail:   "ayu@example.com",
		PassengerCount: 1,
		PassengerIDs:   []string{pax.ID},
	})
	assert.Equal(t, http.StatusNotFound, code, "cancelled flights are gone for booking")
	assert.Equal(t, "FLIGHT_NOT_FOUND", env.Code)

	code, env = call(t, h, http.MethodGet, "/api/v1/bookings/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "BOOKING_NOT_FOUND", env.Code)
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string                    `json:"status"`
		Services map[string]map[string]any `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Contains(t, body.Services, "postgres")
	assert.NotContains(t, body.Services, "redis")
}
