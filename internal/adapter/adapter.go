// Package adapter converts between the canonical Car/Booking models and
// the legacy flat wire shape the old API produced. The legacy shape is
// accepted as input only; writes always store the canonical form.
package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
	"gorm.io/datatypes"

	"github.com/drivehub/rental-platform/internal/model"
)

// Variant selects which serialization a codec speaks. The choice is made
// once at construction, not re-checked per call.
type Variant string

const (
	VariantCanonical Variant = "canonical"
	VariantLegacy    Variant = "legacy"
)

// LegacyCar is the old flat car shape: "price" instead of price_per_day,
// images/features possibly JSON-encoded strings.
type LegacyCar struct {
	ID       string      `json:"id,omitempty"`
	Name     null.String `json:"name"`
	Category null.String `json:"category"`
	Make     null.String `json:"make"`
	Model    null.String `json:"model"`
	Year     null.Int    `json:"year"`
	FuelType null.String `json:"fuel_type"`
	Seats    null.Int    `json:"seats"`
	Luggage  null.Int    `json:"luggage"`
	Price    null.Float  `json:"price"`
	Status   null.String `json:"status"`
	Features StringList  `json:"features"`
	Images   StringList  `json:"images"`
}

// LegacyBooking is the old flat booking shape: "customer" instead of
// full_name, "seats" instead of passengers, "price" instead of total_price.
type LegacyBooking struct {
	ID                    string      `json:"id,omitempty"`
	TripType              null.String `json:"trip_type"`
	PickupLocation        null.String `json:"pickup_location"`
	DropoffLocation       null.String `json:"dropoff_location"`
	PickupDate            null.Time   `json:"pickup_date"`
	ReturnPickupLocation  null.String `json:"return_pickup_location"`
	ReturnDropoffLocation null.String `json:"return_dropoff_location"`
	ReturnDate            null.Time   `json:"return_date"`
	Seats                 null.Int    `json:"seats"`
	CarID                 string      `json:"car_id"`
	Customer              null.String `json:"customer"`
	Email                 null.String `json:"email"`
	Phone                 null.String `json:"phone"`
	Notes                 null.String `json:"notes"`
	Status                null.String `json:"status"`
	Price                 null.Float  `json:"price"`
}

// ToCanonicalCar resolves the legacy aliases into the canonical model.
func ToCanonicalCar(lc LegacyCar) (model.Car, error) {
	var id uuid.UUID
	if lc.ID != "" {
		parsed, err := uuid.Parse(lc.ID)
		if err != nil {
			return model.Car{}, fmt.Errorf("legacy car id %q: %w", lc.ID, err)
		}
		id = parsed
	}

	status := model.CarStatus(lc.Status.ValueOrZero())
	if status == "" {
		status = model.CarStatusActive
	}

	return model.Car{
		ID:          id,
		Name:        lc.Name.ValueOrZero(),
		Category:    lc.Category.ValueOrZero(),
		Make:        lc.Make.ValueOrZero(),
		Model:       lc.Model.ValueOrZero(),
		Year:        int(lc.Year.ValueOrZero()),
		FuelType:    lc.FuelType.ValueOrZero(),
		Seats:       int(lc.Seats.ValueOrZero()),
		Luggage:     int(lc.Luggage.ValueOrZero()),
		PricePerDay: lc.Price.ValueOrZero(),
		Status:      status,
		Features:    datatypes.JSONSlice[string](CleanStringList(lc.Features)),
		Images:      datatypes.JSONSlice[string](CleanStringList(lc.Images)),
	}, nil
}

// FromCanonicalCar regenerates the legacy shape losslessly.
func FromCanonicalCar(c model.Car) LegacyCar {
	id := ""
	if c.ID != uuid.Nil {
		id = c.ID.String()
	}
	return LegacyCar{
		ID:       id,
		Name:     null.StringFrom(c.Name),
		Category: null.StringFrom(c.Category),
		Make:     null.StringFrom(c.Make),
		Model:    null.StringFrom(c.Model),
		Year:     null.IntFrom(int64(c.Year)),
		FuelType: null.StringFrom(c.FuelType),
		Seats:    null.IntFrom(int64(c.Seats)),
		Luggage:  null.IntFrom(int64(c.Luggage)),
		Price:    null.FloatFrom(c.PricePerDay),
		Status:   null.StringFrom(string(c.Status)),
		Features: CleanStringList(c.Features),
		Images:   CleanStringList(c.Images),
	}
}

// ToCanonicalBooking resolves customer/full_name, seats/passengers and
// price/total_price aliases into the canonical model.
func ToCanonicalBooking(lb LegacyBooking) (model.Booking, error) {
	var id uuid.UUID
	if lb.ID != "" {
		parsed, err := uuid.Parse(lb.ID)
		if err != nil {
			return model.Booking{}, fmt.Errorf("legacy booking id %q: %w", lb.ID, err)
		}
		id = parsed
	}

	var carID uuid.UUID
	if lb.CarID != "" {
		parsed, err := uuid.Parse(lb.CarID)
		if err != nil {
			return model.Booking{}, fmt.Errorf("legacy booking car_id %q: %w", lb.CarID, err)
		}
		carID = parsed
	}

	status := model.BookingStatus(lb.Status.ValueOrZero())
	if status == "" {
		status = model.BookingStatusPending
	}

	b := model.Booking{
		ID:              id,
		TripType:        model.TripType(lb.TripType.ValueOrZero()),
		PickupLocation:  lb.PickupLocation.ValueOrZero(),
		DropoffLocation: lb.DropoffLocation.ValueOrZero(),
		PickupDate:      lb.PickupDate.ValueOrZero(),
		Passengers:      int(lb.Seats.ValueOrZero()),
		CarID:           carID,
		FullName:        lb.Customer.ValueOrZero(),
		Email:           lb.Email.ValueOrZero(),
		Phone:           lb.Phone.ValueOrZero(),
		Notes:           lb.Notes.ValueOrZero(),
		Status:          status,
		TotalPrice:      lb.Price.ValueOrZero(),
	}

	// Return-leg fields only survive for round trips; a one-way booking
	// never keeps a partial mix.
	if b.TripType == model.TripTypeRoundTrip {
		if lb.ReturnPickupLocation.Valid {
			v := lb.ReturnPickupLocation.String
			b.ReturnPickupLocation = &v
		}
		if lb.ReturnDropoffLocation.Valid {
			v := lb.ReturnDropoffLocation.String
			b.ReturnDropoffLocation = &v
		}
		if lb.ReturnDate.Valid {
			v := lb.ReturnDate.Time
			b.ReturnDate = &v
		}
	}

	return b, nil
}

// FromCanonicalBooking regenerates the legacy shape losslessly.
func FromCanonicalBooking(b model.Booking) LegacyBooking {
	id := ""
	if b.ID != uuid.Nil {
		id = b.ID.String()
	}
	carID := ""
	if b.CarID != uuid.Nil {
		carID = b.CarID.String()
	}

	lb := LegacyBooking{
		ID:              id,
		TripType:        null.StringFrom(string(b.TripType)),
		PickupLocation:  null.StringFrom(b.PickupLocation),
		DropoffLocation: null.StringFrom(b.DropoffLocation),
		PickupDate:      null.TimeFrom(b.PickupDate),
		Seats:           null.IntFrom(int64(b.Passengers)),
		CarID:           carID,
		Customer:        null.StringFrom(b.FullName),
		Email:           null.StringFrom(b.Email),
		Phone:           null.StringFrom(b.Phone),
		Notes:           null.StringFrom(b.Notes),
		Status:          null.StringFrom(string(b.Status)),
		Price:           null.FloatFrom(b.TotalPrice),
	}

	if b.ReturnPickupLocation != nil {
		lb.ReturnPickupLocation = null.StringFrom(*b.ReturnPickupLocation)
	}
	if b.ReturnDropoffLocation != nil {
		lb.ReturnDropoffLocation = null.StringFrom(*b.ReturnDropoffLocation)
	}
	if b.ReturnDate != nil {
		lb.ReturnDate = null.TimeFrom(*b.ReturnDate)
	}

	return lb
}

// Codec serializes cars and bookings in one of the two wire variants.
// Handlers pick a codec at construction instead of branching per request.
type Codec struct {
	variant Variant
}

func NewCodec(v Variant) *Codec {
	if v != VariantLegacy {
		v = VariantCanonical
	}
	return &Codec{variant: v}
}

func (c *Codec) EncodeCar(car model.Car) ([]byte, error) {
	if c.variant == VariantLegacy {
		return json.Marshal(FromCanonicalCar(car))
	}
	car.Features = datatypes.JSONSlice[string](CleanStringList(car.Features))
	car.Images = datatypes.JSONSlice[string](CleanStringList(car.Images))
	return json.Marshal(car)
}

func (c *Codec) DecodeCar(data []byte) (model.Car, error) {
	if c.variant == VariantLegacy {
		var lc LegacyCar
		if err := json.Unmarshal(data, &lc); err != nil {
			return model.Car{}, err
		}
		return ToCanonicalCar(lc)
	}
	var car model.Car
	if err := json.Unmarshal(data, &car); err != nil {
		return model.Car{}, err
	}
	car.Features = datatypes.JSONSlice[string](CleanStringList(car.Features))
	car.Images = datatypes.JSONSlice[string](CleanStringList(car.Images))
	return car, nil
}

func (c *Codec) EncodeBooking(b model.Booking) ([]byte, error) {
	if c.variant == VariantLegacy {
		return json.Marshal(FromCanonicalBooking(b))
	}
	return json.Marshal(b)
}

func (c *Codec) DecodeBooking(data []byte) (model.Booking, error) {
	if c.variant == VariantLegacy {
		var lb LegacyBooking
		if err := json.Unmarshal(data, &lb); err != nil {
			return model.Booking{}, err
		}
		return ToCanonicalBooking(lb)
	}
	var b model.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}
