package constants

// Raw report queries run through sqlx; placeholders are rebound per driver.
const (
	AirplaneScheduleQuery = `
	SELECT id, origin_code, destination_code, departure_time, arrival_time, status
	FROM flights
	WHERE airplane_id = ? AND is_deleted = ? AND arrival_time > ? AND departure_time < ?
	ORDER BY departure_time ASC
	`

	FlightOccupancyQuery = `
	SELECT cf.id AS class_flight_id,
	       cf.class_type AS class_type,
	       cf.seat_capacity AS seat_capacity,
	       COUNT(s.id) AS seat_rows,
	       COALESCE(SUM(CASE WHEN s.is_available THEN 1 ELSE 0 END), 0) AS available_seats
	FROM class_flights cf
	LEFT JOIN seats s ON s.class_flight_id = cf.id
	WHERE cf.flight_id = ?
	GROUP BY cf.id, cf.class_type, cf.seat_capacity
	ORDER BY cf.class_type ASC
	`
)
