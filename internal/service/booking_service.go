package service

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
	"github.com/drivehub/rental-platform/internal/utils"
	"github.com/drivehub/rental-platform/internal/validate"
)

// BookingService drives the booking lifecycle: public creation and the
// administrative status transitions and field corrections.
type BookingService struct {
	cars     repository.CarRepository
	bookings repository.BookingRepository
	guard    *InventoryGuard
}

func NewBookingService(cars repository.CarRepository, bookings repository.BookingRepository) *BookingService {
	return &BookingService{
		cars:     cars,
		bookings: bookings,
		guard:    NewInventoryGuard(cars, bookings),
	}
}

// CreateBooking validates the payload, checks the referenced car exists
// and persists the booking in pending status. When no total price is
// supplied it is derived from the car's daily rate and the trip length.
func (s *BookingService) CreateBooking(ctx context.Context, payload validate.BookingPayload) (*model.Booking, error) {
	booking, err := validate.ValidateBooking(payload)
	if err != nil {
		return nil, err
	}

	if err := s.guard.AssertCarExists(ctx, booking.CarID); err != nil {
		return nil, err
	}

	if booking.TotalPrice == 0 {
		car, err := s.cars.GetByID(ctx, booking.CarID.String())
		if err != nil {
			return nil, apperr.NewPersistenceError("load car for pricing", err)
		}
		booking.TotalPrice = car.PricePerDay * float64(rentalDays(booking))
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperr.NewPersistenceError("create booking", err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	bookingID, err := parseID("booking_id", id)
	if err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, bookingID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("booking", id)
		}
		return nil, apperr.NewPersistenceError("get booking", err)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, status string, page, pageSize int) (utils.Page[model.Booking], error) {
	bookingStatus := model.BookingStatus(status)
	if status != "" && !model.ValidBookingStatus(bookingStatus) {
		return utils.Page[model.Booking]{}, apperr.NewValidationError().
			Addf("status", "must be one of pending, confirmed, completed, cancelled; got %q", status)
	}

	page, pageSize, offset := utils.NormalizePaging(page, pageSize)
	bookings, total, err := s.bookings.List(ctx, bookingStatus, pageSize, offset)
	if err != nil {
		return utils.Page[model.Booking]{}, apperr.NewPersistenceError("list bookings", err)
	}
	return utils.NewPage(bookings, page, pageSize, int(total)), nil
}

// UpdateBookingStatus applies the status machine. A same-status update is
// an idempotent no-op success; leaving a terminal status is rejected.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	newStatus, err := validate.ValidateBookingStatus(status)
	if err != nil {
		return nil, err
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == newStatus {
		return booking, nil
	}
	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, apperr.NewValidationError().
			Addf("status", "cannot transition from %s to %s", booking.Status, newStatus)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID.String(), newStatus); err != nil {
		return nil, apperr.NewPersistenceError("update booking status", err)
	}
	booking.Status = newStatus
	return booking, nil
}

// BookingPatch carries the admin-correctable contact and note fields.
type BookingPatch struct {
	FullName        *string `json:"full_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Notes           *string `json:"notes"`
	Passengers      *int    `json:"passengers"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
}

// UpdateBooking applies admin field corrections. Status changes go
// through UpdateBookingStatus only.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, p BookingPatch) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := apperr.NewValidationError()
	patch := map[string]any{}
	if p.FullName != nil {
		if *p.FullName == "" {
			verr.Add("full_name", "must not be empty")
		} else {
			patch["full_name"] = *p.FullName
		}
	}
	if p.Email != nil {
		if *p.Email == "" {
			verr.Add("email", "must not be empty")
		} else {
			patch["email"] = *p.Email
		}
	}
	if p.Phone != nil {
		if *p.Phone == "" {
			verr.Add("phone", "must not be empty")
		} else {
			patch["phone"] = *p.Phone
		}
	}
	if p.Notes != nil {
		patch["notes"] = *p.Notes
	}
	if p.Passengers != nil {
		if *p.Passengers <= 0 {
			verr.Add("passengers", "must be a positive number")
		} else {
			patch["passengers"] = *p.Passengers
		}
	}
	if p.PickupLocation != nil {
		if *p.PickupLocation == "" {
			verr.Add("pickup_location", "must not be empty")
		} else {
			patch["pickup_location"] = *p.PickupLocation
		}
	}
	if p.DropoffLocation != nil {
		patch["dropoff_location"] = *p.DropoffLocation
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if len(patch) > 0 {
		if err := s.bookings.UpdateByID(ctx, booking.ID.String(), patch); err != nil {
			return nil, apperr.NewPersistenceError("update booking", err)
		}
	}
	return s.GetBooking(ctx, booking.ID.String())
}

// rentalDays is the billable day count: one-way trips bill a single day,
// round trips bill each started day between pickup and return, minimum 1.
func rentalDays(b *model.Booking) int {
	if b.TripType != model.TripTypeRoundTrip || b.ReturnDate == nil {
		return 1
	}
	span := b.ReturnDate.Sub(b.PickupDate)
	if span <= 0 {
		return 1
	}
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
