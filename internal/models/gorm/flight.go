package gorm

import (
	"airline-ops/flightcore/internal/constants"
	"time"
)

type Flight struct {
	ID               string                 `gorm:"column:id;primaryKey;size:40"`
	AirlineID        string                 `gorm:"column:airline_id;index;not null"`
	AirplaneID       string                 `gorm:"column:airplane_id;index:idx_flights_airplane_window,priority:1;not null"`
	OriginCode       string                 `gorm:"column:origin_code;size:8;not null"`
	DestinationCode  string                 `gorm:"column:destination_code;size:8;not null"`
	DepartureTime    time.Time              `gorm:"column:departure_time;index:idx_flights_airplane_window,priority:2;not null"`
	ArrivalTime      time.Time              `gorm:"column:arrival_time;not null"`
	Terminal         string                 `gorm:"column:terminal"`
	Gate             string                 `gorm:"column:gate"`
	BaggageAllowance int                    `gorm:"column:baggage_allowance"`
	Status           constants.FlightStatus `gorm:"column:status;type:varchar(16);index;not null"`
	IsDeleted        bool                   `gorm:"column:is_deleted;default:false"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Flight) TableName() string {
	return "flights"
}
