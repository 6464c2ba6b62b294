package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripType string

const (
	TripTypeOneWay    TripType = "oneWay"
	TripTypeRoundTrip TripType = "roundTrip"
)

func ValidTripType(t TripType) bool {
	return t == TripTypeOneWay || t == TripTypeRoundTrip
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus reports whether s is one of the four allowed statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to target.
// pending may move to any of the other three; confirmed/completed/cancelled
// are terminal. A same-status update is an idempotent no-op and allowed.
// There is no way back to pending once left.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	return s == BookingStatusPending && target != BookingStatusPending
}

// bookings
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TripType TripType `gorm:"type:varchar(32);not null" json:"trip_type"`

	PickupLocation  string    `gorm:"type:varchar(255);not null" json:"pickup_location"`
	DropoffLocation string    `gorm:"type:varchar(255)" json:"dropoff_location"`
	PickupDate      time.Time `gorm:"type:timestamp with time zone;not null;index" json:"pickup_date"`

	// Populated iff TripType == roundTrip, otherwise all three stay nil.
	ReturnPickupLocation  *string    `gorm:"type:varchar(255)" json:"return_pickup_location,omitempty"`
	ReturnDropoffLocation *string    `gorm:"type:varchar(255)" json:"return_dropoff_location,omitempty"`
	ReturnDate            *time.Time `gorm:"type:timestamp with time zone" json:"return_date,omitempty"`

	Passengers int `gorm:"not null" json:"passengers"`

	CarID uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`

	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);not null" json:"email"`
	Phone    string `gorm:"type:varchar(64);not null" json:"phone"`
	Notes    string `gorm:"type:text" json:"notes"`

	Status     BookingStatus `gorm:"type:varchar(32);not null;default:'pending';index" json:"status"`
	TotalPrice float64       `gorm:"not null;default:0" json:"total_price"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	// RESTRICT keeps the database as the final authority on referential
	// integrity even if a service-level check races with a concurrent write.
	Car *Car `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"car,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
