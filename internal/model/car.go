package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CarStatus string

const (
	CarStatusActive      CarStatus = "active"
	CarStatusMaintenance CarStatus = "maintenance"
	CarStatusInactive    CarStatus = "inactive"
)

// ValidCarStatus reports whether s is one of the three allowed statuses.
func ValidCarStatus(s CarStatus) bool {
	switch s {
	case CarStatusActive, CarStatusMaintenance, CarStatusInactive:
		return true
	}
	return false
}

// cars
type Car struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Category string `gorm:"type:varchar(128)" json:"category"`
	Make     string `gorm:"type:varchar(128)" json:"make"`
	Model    string `gorm:"type:varchar(128)" json:"model"`
	Year     int    `gorm:"not null" json:"year"`
	FuelType string `gorm:"type:varchar(64)" json:"fuel_type"`

	Seats       int     `gorm:"not null" json:"seats"`
	Luggage     int     `gorm:"not null;default:0" json:"luggage"`
	PricePerDay float64 `gorm:"not null" json:"price_per_day"`

	Status CarStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`

	// Stored as JSON arrays of strings; never contain null/"null"/"" entries.
	Features datatypes.JSONSlice[string] `json:"features"`
	Images   datatypes.JSONSlice[string] `json:"images"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
