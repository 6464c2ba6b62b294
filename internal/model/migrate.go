package model

import "gorm.io/gorm"

// AutoMigrate migrates all entities of the rental core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Car{},
		&Booking{},
	)
}
