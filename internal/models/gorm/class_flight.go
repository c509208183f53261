package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassFlight is a fare class scoped to one flight. AvailableSeats is a
// stored snapshot only; reads recompute it from the seats table.
type ClassFlight struct {
	ID             string    `gorm:"column:id;primaryKey;size:36"`
	FlightID       string    `gorm:"column:flight_id;uniqueIndex:idx_class_per_flight;not null"`
	ClassType      string    `gorm:"column:class_type;uniqueIndex:idx_class_per_flight;not null"`
	SeatCapacity   int       `gorm:"column:seat_capacity;not null"`
	AvailableSeats int       `gorm:"column:available_seats"`
	Price          float64   `gorm:"column:price;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ClassFlight) TableName() string {
	return "class_flights"
}

func (c *ClassFlight) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
