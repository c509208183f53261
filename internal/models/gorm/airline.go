package gorm

import "time"

type Airline struct {
	ID        string    `gorm:"column:id;primaryKey;size:8"`
	Name      string    `gorm:"column:name;not null"`
	Country   string    `gorm:"column:country"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airline) TableName() string {
	return "airlines"
}
