package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/model"
)

// newTestDB opens an in-memory sqlite database with a minimal
// sqlite-friendly schema for cars and bookings.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE cars (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			make TEXT,
			model TEXT,
			year INTEGER,
			fuel_type TEXT,
			seats INTEGER,
			luggage INTEGER,
			price_per_day REAL,
			status TEXT NOT NULL,
			features TEXT,
			images TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			trip_type TEXT NOT NULL,
			pickup_location TEXT,
			dropoff_location TEXT,
			pickup_date DATETIME,
			return_pickup_location TEXT,
			return_dropoff_location TEXT,
			return_date DATETIME,
			passengers INTEGER,
			car_id TEXT NOT NULL,
			full_name TEXT,
			email TEXT,
			phone TEXT,
			notes TEXT,
			status TEXT NOT NULL,
			total_price REAL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func seedCar(t *testing.T, db *gorm.DB, carMake, carModel string, pricePerDay float64) model.Car {
	t.Helper()

	car := model.Car{
		ID:          uuid.New(),
		Name:        carMake + " " + carModel,
		Make:        carMake,
		Model:       carModel,
		Year:        2022,
		Seats:       5,
		PricePerDay: pricePerDay,
		Status:      model.CarStatusActive,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func seedBooking(t *testing.T, db *gorm.DB, carID uuid.UUID, status model.BookingStatus, totalPrice float64, createdAt time.Time) model.Booking {
	t.Helper()

	booking := model.Booking{
		ID:             uuid.New(),
		TripType:       model.TripTypeOneWay,
		PickupLocation: "Airport",
		PickupDate:     createdAt.Add(24 * time.Hour),
		Passengers:     2,
		CarID:          carID,
		FullName:       "Jordan Smith",
		Email:          "jordan@example.com",
		Phone:          "+15550001111",
		Status:         status,
		TotalPrice:     totalPrice,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}
