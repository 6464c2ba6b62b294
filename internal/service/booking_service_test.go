package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
	"github.com/drivehub/rental-platform/internal/validate"
)

func validBookingPayload(carID string) validate.BookingPayload {
	return validate.BookingPayload{
		TripType:       null.StringFrom("oneWay"),
		PickupLocation: null.StringFrom("Airport"),
		PickupDate:     null.StringFrom("2025-06-01T10:00:00Z"),
		Passengers:     null.IntFrom(2),
		CarID:          null.StringFrom(carID),
		FullName:       null.StringFrom("Jordan Smith"),
		Email:          null.StringFrom("jordan@example.com"),
		Phone:          null.StringFrom("+15550001111"),
	}
}

func TestBookingService_CreateBooking_MissingCar(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	_, err := svc.CreateBooking(context.Background(), validBookingPayload(uuid.New().String()))
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	var count int64
	if err := db.Model(&model.Booking{}).Count(&count).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected nothing persisted, got %d bookings", count)
	}
}

func TestBookingService_CreateBooking_PendingAndPriced(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)

	booking, err := svc.CreateBooking(context.Background(), validBookingPayload(car.ID.String()))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != model.BookingStatusPending {
		t.Fatalf("expected pending, got %s", booking.Status)
	}
	// One-way trips bill a single day of the car's rate.
	if booking.TotalPrice != 50 {
		t.Fatalf("expected total price 50, got %v", booking.TotalPrice)
	}
	if booking.ReturnDate != nil {
		t.Fatalf("expected nil return date for one-way trip")
	}
}

func TestBookingService_CreateBooking_RoundTripPricing(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)

	payload := validBookingPayload(car.ID.String())
	payload.TripType = null.StringFrom("roundTrip")
	payload.ReturnPickupLocation = null.StringFrom("Downtown")
	payload.ReturnDropoffLocation = null.StringFrom("Airport")
	payload.ReturnDate = null.StringFrom("2025-06-04T10:00:00Z")

	booking, err := svc.CreateBooking(context.Background(), payload)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	// Three started days at 50 per day.
	if booking.TotalPrice != 150 {
		t.Fatalf("expected total price 150, got %v", booking.TotalPrice)
	}
	if booking.ReturnDate == nil {
		t.Fatalf("expected return date for round trip")
	}
}

func TestBookingService_CreateBooking_SuppliedPriceKept(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)

	payload := validBookingPayload(car.ID.String())
	payload.TotalPrice = null.FloatFrom(199)

	booking, err := svc.CreateBooking(context.Background(), payload)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalPrice != 199 {
		t.Fatalf("expected supplied price kept, got %v", booking.TotalPrice)
	}
}

func TestBookingService_UpdateStatus_InvalidValue(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)
	booking := seedBooking(t, db, car.ID, model.BookingStatusPending, 50, time.Now().UTC())

	_, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), "archived")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var stored model.Booking
	if err := db.First(&stored, "id = ?", booking.ID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if stored.Status != model.BookingStatusPending {
		t.Fatalf("expected status unchanged, got %s", stored.Status)
	}
}

func TestBookingService_UpdateStatus_Transition(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)
	booking := seedBooking(t, db, car.ID, model.BookingStatusPending, 50, time.Now().UTC())

	updated, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if updated.Status != model.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	// Same-status update is an idempotent no-op success.
	again, err := svc.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed")
	if err != nil {
		t.Fatalf("idempotent update: %v", err)
	}
	if again.Status != model.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", again.Status)
	}

	// Leaving a terminal status is rejected.
	_, err = svc.UpdateBookingStatus(context.Background(), booking.ID.String(), "completed")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError for terminal transition, got %v", err)
	}
}

func TestBookingService_UpdateStatus_MissingBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	_, err := svc.UpdateBookingStatus(context.Background(), uuid.New().String(), "confirmed")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBookingService_UpdateBooking_FieldCorrections(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)
	booking := seedBooking(t, db, car.ID, model.BookingStatusPending, 50, time.Now().UTC())

	name := "Alex Doe"
	updated, err := svc.UpdateBooking(context.Background(), booking.ID.String(), BookingPatch{FullName: &name})
	if err != nil {
		t.Fatalf("update booking: %v", err)
	}
	if updated.FullName != "Alex Doe" {
		t.Fatalf("expected corrected name, got %q", updated.FullName)
	}

	empty := ""
	_, err = svc.UpdateBooking(context.Background(), booking.ID.String(), BookingPatch{Email: &empty})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty email, got %v", err)
	}
}
