package gorm

import (
	"airline-ops/flightcore/internal/constants"
	"time"
)

type Booking struct {
	ID             string                  `gorm:"column:id;primaryKey;size:64"`
	FlightID       string                  `gorm:"column:flight_id;index;not null"`
	ClassFlightID  string                  `gorm:"column:class_flight_id;index;not null"`
	ContactEmail   string                  `gorm:"column:contact_email;not null"`
	ContactPhone   string                  `gorm:"column:contact_phone"`
	PassengerCount int                     `gorm:"column:passenger_count;not null"`
	Status         constants.BookingStatus `gorm:"column:status;type:varchar(16);index;not null"`
	TotalPrice     float64                 `gorm:"column:total_price"`
	IsDeleted      bool                    `gorm:"column:is_deleted;default:false"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Passengers []BookingPassenger `gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// BookingPassenger links a booking to a passenger and the seat the
// passenger was given when the booking was created.
type BookingPassenger struct {
	BookingID   string `gorm:"column:booking_id;primaryKey;size:64"`
	PassengerID string `gorm:"column:passenger_id;primaryKey;size:36"`
	Position    int    `gorm:"column:position"`
	SeatID      string `gorm:"column:seat_id;size:36"`
	SeatNumber  string `gorm:"column:seat_number;size:8"`
}

func (BookingPassenger) TableName() string {
	return "booking_passengers"
}
