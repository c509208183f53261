package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Passenger struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	FullName   string    `gorm:"column:full_name;not null"`
	BirthDate  time.Time `gorm:"column:birth_date"`
	Gender     string    `gorm:"column:gender;size:16"`
	IDPassport string    `gorm:"column:id_passport;uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Passenger) TableName() string {
	return "passengers"
}

func (p *Passenger) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
