package gorm

import "time"

// Airplane ids look like "{airlineId}-XYZ".
type Airplane struct {
	ID              string    `gorm:"column:id;primaryKey;size:16"`
	AirlineID       string    `gorm:"column:airline_id;index;not null"`
	Model           string    `gorm:"column:model;not null"`
	SeatCapacity    int       `gorm:"column:seat_capacity;not null"`
	ManufactureYear int       `gorm:"column:manufacture_year"`
	IsDeleted       bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Airplane) TableName() string {
	return "airplanes"
}
