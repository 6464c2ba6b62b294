// Package validate turns untyped inbound payloads into canonical models.
// It is the only place that accepts loosely-shaped input; everything
// downstream works with model.Car / model.Booking.
package validate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
	"gorm.io/datatypes"

	"github.com/drivehub/rental-platform/internal/adapter"
	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
)

// Timestamps are accepted as RFC3339 or as a bare date.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// CarPayload is the inbound car shape. null types distinguish an absent
// field from a zero value.
type CarPayload struct {
	Name        null.String        `json:"name"`
	Category    null.String        `json:"category"`
	Make        null.String        `json:"make"`
	Model       null.String        `json:"model"`
	Year        null.Int           `json:"year"`
	FuelType    null.String        `json:"fuel_type"`
	Seats       null.Int           `json:"seats"`
	Luggage     null.Int           `json:"luggage"`
	PricePerDay null.Float         `json:"price_per_day"`
	Status      null.String        `json:"status"`
	Features    adapter.StringList `json:"features"`
	Images      adapter.StringList `json:"images"`
}

// BookingPayload is the inbound booking shape. Dates arrive as raw strings
// so a parse failure can name the field and the offending value.
type BookingPayload struct {
	TripType              null.String `json:"trip_type"`
	PickupLocation        null.String `json:"pickup_location"`
	DropoffLocation       null.String `json:"dropoff_location"`
	PickupDate            null.String `json:"pickup_date"`
	ReturnPickupLocation  null.String `json:"return_pickup_location"`
	ReturnDropoffLocation null.String `json:"return_dropoff_location"`
	ReturnDate            null.String `json:"return_date"`
	Passengers            null.Int    `json:"passengers"`
	CarID                 null.String `json:"car_id"`
	FullName              null.String `json:"full_name"`
	Email                 null.String `json:"email"`
	Phone                 null.String `json:"phone"`
	Notes                 null.String `json:"notes"`
	TotalPrice            null.Float  `json:"total_price"`
}

// ValidateCar checks a create payload and produces a canonical Car.
// make, model, year and price_per_day are required; numeric fields must be
// non-negative; status defaults to active.
func ValidateCar(p CarPayload) (*model.Car, error) {
	verr := apperr.NewValidationError()

	if !p.Make.Valid || p.Make.String == "" {
		verr.Add("make", "is required")
	}
	if !p.Model.Valid || p.Model.String == "" {
		verr.Add("model", "is required")
	}
	if !p.Year.Valid {
		verr.Add("year", "is required")
	} else if p.Year.Int64 <= 0 {
		verr.Add("year", "must be a positive number")
	}
	if !p.PricePerDay.Valid {
		verr.Add("price_per_day", "is required")
	} else if p.PricePerDay.Float64 < 0 {
		verr.Add("price_per_day", "must not be negative")
	}
	if p.Seats.Valid && p.Seats.Int64 < 0 {
		verr.Add("seats", "must not be negative")
	}
	if p.Luggage.Valid && p.Luggage.Int64 < 0 {
		verr.Add("luggage", "must not be negative")
	}

	status := model.CarStatusActive
	if p.Status.Valid && p.Status.String != "" {
		status = model.CarStatus(p.Status.String)
		if !model.ValidCarStatus(status) {
			verr.Addf("status", "must be one of active, maintenance, inactive; got %q", p.Status.String)
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	name := p.Name.ValueOrZero()
	if name == "" {
		name = fmt.Sprintf("%s %s", p.Make.String, p.Model.String)
	}

	return &model.Car{
		Name:        name,
		Category:    p.Category.ValueOrZero(),
		Make:        p.Make.String,
		Model:       p.Model.String,
		Year:        int(p.Year.Int64),
		FuelType:    p.FuelType.ValueOrZero(),
		Seats:       int(p.Seats.ValueOrZero()),
		Luggage:     int(p.Luggage.ValueOrZero()),
		PricePerDay: p.PricePerDay.Float64,
		Status:      status,
		Features:    datatypes.JSONSlice[string](adapter.CleanStringList(p.Features)),
		Images:      datatypes.JSONSlice[string](adapter.CleanStringList(p.Images)),
	}, nil
}

// ValidateCarPatch checks an update payload where every field is optional
// and returns the column map to apply. Used by single and bulk updates.
func ValidateCarPatch(p CarPayload) (map[string]any, error) {
	verr := apperr.NewValidationError()
	patch := map[string]any{}

	if p.Name.Valid {
		patch["name"] = p.Name.String
	}
	if p.Category.Valid {
		patch["category"] = p.Category.String
	}
	if p.Make.Valid {
		if p.Make.String == "" {
			verr.Add("make", "must not be empty")
		} else {
			patch["make"] = p.Make.String
		}
	}
	if p.Model.Valid {
		if p.Model.String == "" {
			verr.Add("model", "must not be empty")
		} else {
			patch["model"] = p.Model.String
		}
	}
	if p.Year.Valid {
		if p.Year.Int64 <= 0 {
			verr.Add("year", "must be a positive number")
		} else {
			patch["year"] = p.Year.Int64
		}
	}
	if p.FuelType.Valid {
		patch["fuel_type"] = p.FuelType.String
	}
	if p.Seats.Valid {
		if p.Seats.Int64 < 0 {
			verr.Add("seats", "must not be negative")
		} else {
			patch["seats"] = p.Seats.Int64
		}
	}
	if p.Luggage.Valid {
		if p.Luggage.Int64 < 0 {
			verr.Add("luggage", "must not be negative")
		} else {
			patch["luggage"] = p.Luggage.Int64
		}
	}
	if p.PricePerDay.Valid {
		if p.PricePerDay.Float64 < 0 {
			verr.Add("price_per_day", "must not be negative")
		} else {
			patch["price_per_day"] = p.PricePerDay.Float64
		}
	}
	if p.Status.Valid {
		status := model.CarStatus(p.Status.String)
		if !model.ValidCarStatus(status) {
			verr.Addf("status", "must be one of active, maintenance, inactive; got %q", p.Status.String)
		} else {
			patch["status"] = status
		}
	}
	if p.Features != nil {
		patch["features"] = datatypes.JSONSlice[string](adapter.CleanStringList(p.Features))
	}
	if p.Images != nil {
		patch["images"] = datatypes.JSONSlice[string](adapter.CleanStringList(p.Images))
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return patch, nil
}

// ValidateBooking checks a create payload and produces a canonical Booking
// in pending status. For round trips the three return fields are required
// and the error lists exactly the missing ones; for one-way trips they
// must stay empty.
func ValidateBooking(p BookingPayload) (*model.Booking, error) {
	verr := apperr.NewValidationError()

	tripType := model.TripType(p.TripType.ValueOrZero())
	if !p.TripType.Valid || p.TripType.String == "" {
		verr.Add("trip_type", "is required")
	} else if !model.ValidTripType(tripType) {
		verr.Addf("trip_type", "must be oneWay or roundTrip; got %q", p.TripType.String)
	}
	if !p.PickupLocation.Valid || p.PickupLocation.String == "" {
		verr.Add("pickup_location", "is required")
	}
	if !p.CarID.Valid || p.CarID.String == "" {
		verr.Add("car_id", "is required")
	}
	if !p.FullName.Valid || p.FullName.String == "" {
		verr.Add("full_name", "is required")
	}
	if !p.Email.Valid || p.Email.String == "" {
		verr.Add("email", "is required")
	}
	if !p.Phone.Valid || p.Phone.String == "" {
		verr.Add("phone", "is required")
	}
	if p.Passengers.Valid && p.Passengers.Int64 <= 0 {
		verr.Add("passengers", "must be a positive number")
	}

	var pickupDate time.Time
	if !p.PickupDate.Valid || p.PickupDate.String == "" {
		verr.Add("pickup_date", "is required")
	} else {
		pickupDate = parseDate("pickup_date", p.PickupDate.String, verr)
	}

	var returnDate *time.Time
	switch tripType {
	case model.TripTypeRoundTrip:
		if !p.ReturnPickupLocation.Valid || p.ReturnPickupLocation.String == "" {
			verr.Add("return_pickup_location", "is required for round trips")
		}
		if !p.ReturnDropoffLocation.Valid || p.ReturnDropoffLocation.String == "" {
			verr.Add("return_dropoff_location", "is required for round trips")
		}
		if !p.ReturnDate.Valid || p.ReturnDate.String == "" {
			verr.Add("return_date", "is required for round trips")
		} else {
			rd := parseDate("return_date", p.ReturnDate.String, verr)
			returnDate = &rd
		}
	case model.TripTypeOneWay:
		if p.ReturnPickupLocation.Valid && p.ReturnPickupLocation.String != "" {
			verr.Add("return_pickup_location", "must be empty for one-way trips")
		}
		if p.ReturnDropoffLocation.Valid && p.ReturnDropoffLocation.String != "" {
			verr.Add("return_dropoff_location", "must be empty for one-way trips")
		}
		if p.ReturnDate.Valid && p.ReturnDate.String != "" {
			verr.Add("return_date", "must be empty for one-way trips")
		}
	}

	var carID uuid.UUID
	if p.CarID.Valid && p.CarID.String != "" {
		parsed, err := uuid.Parse(p.CarID.String)
		if err != nil {
			verr.Addf("car_id", "is not a valid id: %q", p.CarID.String)
		} else {
			carID = parsed
		}
	}

	if p.TotalPrice.Valid && p.TotalPrice.Float64 < 0 {
		verr.Add("total_price", "must not be negative")
	}

	if verr.HasErrors() {
		return nil, verr
	}

	passengers := int(p.Passengers.ValueOrZero())
	if passengers == 0 {
		passengers = 1
	}

	b := &model.Booking{
		TripType:        tripType,
		PickupLocation:  p.PickupLocation.String,
		DropoffLocation: p.DropoffLocation.ValueOrZero(),
		PickupDate:      pickupDate,
		ReturnDate:      returnDate,
		Passengers:      passengers,
		CarID:           carID,
		FullName:        p.FullName.String,
		Email:           p.Email.String,
		Phone:           p.Phone.String,
		Notes:           p.Notes.ValueOrZero(),
		Status:          model.BookingStatusPending,
		TotalPrice:      p.TotalPrice.ValueOrZero(),
	}
	if tripType == model.TripTypeRoundTrip {
		rpl := p.ReturnPickupLocation.String
		rdl := p.ReturnDropoffLocation.String
		b.ReturnPickupLocation = &rpl
		b.ReturnDropoffLocation = &rdl
	}
	return b, nil
}

// ValidateBookingStatus checks a status-only update value.
func ValidateBookingStatus(s string) (model.BookingStatus, error) {
	status := model.BookingStatus(s)
	if !model.ValidBookingStatus(status) {
		return "", apperr.NewValidationError().
			Addf("status", "must be one of pending, confirmed, completed, cancelled; got %q", s)
	}
	return status, nil
}

// ParseDate parses an RFC3339 or bare-date string, returning a
// field-level ValidationError naming the raw value on failure.
func ParseDate(field, raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperr.NewValidationError().Addf(field, "cannot be parsed as a date: %q", raw)
}

func parseDate(field, raw string, verr *apperr.ValidationError) time.Time {
	t, err := ParseDate(field, raw)
	if err != nil {
		verr.Addf(field, "cannot be parsed as a date: %q", raw)
		return time.Time{}
	}
	return t
}
