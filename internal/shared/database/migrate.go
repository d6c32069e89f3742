package database

import (
	"trainway/internal/bookings"
	"trainway/internal/catalog"
	"trainway/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&catalog.Train{},
		&catalog.Schedule{},
		&bookings.Booking{},
		&bookings.Payment{},
		&bookings.Passenger{},
	)
}
