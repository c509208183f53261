package gorm

import (
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seat is a physical seat owned by a single class flight for its lifetime.
// IsAvailable and PassengerID change only through the assignment protocol.
type Seat struct {
	ID            string  `gorm:"column:id;primaryKey;size:36"`
	ClassFlightID string  `gorm:"column:class_flight_id;uniqueIndex:idx_seat_per_class;not null"`
	SeatNumber    string  `gorm:"column:seat_number;uniqueIndex:idx_seat_per_class;size:8;not null"`
	SeatRow       int     `gorm:"column:seat_row;not null;default:0"`
	IsAvailable   bool    `gorm:"column:is_available;not null"`
	PassengerID   *string `gorm:"column:passenger_id;index;size:36"`
}

func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.SeatRow = SeatRowOf(s.SeatNumber)
	return nil
}

// SeatRowOf reads the leading row number of a seat like "12C". Seats
// without one sort as row 0.
func SeatRowOf(seatNumber string) int {
	end := 0
	for end < len(seatNumber) && seatNumber[end] >= '0' && seatNumber[end] <= '9' {
		end++
	}
	row, err := strconv.Atoi(seatNumber[:end])
	if err != nil {
		return 0
	}
	return row
}
