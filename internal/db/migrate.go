package db

import (
	"fmt"

	gormModels "airline-ops/flightcore/internal/models/gorm"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&gormModels.Airline{},
		&gormModels.Airplane{},
		&gormModels.Flight{},
		&gormModels.ClassFlight{},
		&gormModels.Seat{},
		&gormModels.Passenger{},
		&gormModels.Booking{},
		&gormModels.BookingPassenger{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
