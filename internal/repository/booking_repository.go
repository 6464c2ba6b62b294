package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/model"
)

type BookingRepository interface {
	// Create a booking.
	Create(ctx context.Context, booking *model.Booking) error
	// Find a booking by ID, with the referenced car attached.
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// List bookings, optionally filtered by status ("" means all).
	List(ctx context.Context, status model.BookingStatus, limit, offset int) ([]model.Booking, int64, error)
	// Update the booking status.
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	// Apply a column patch to one booking (admin field corrections).
	UpdateByID(ctx context.Context, id string, patch map[string]any) error
	// IDs of the bookings referencing the given car.
	ListIDsByCarID(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error)
	// Subset of the given car IDs referenced by at least one booking.
	ReferencedCarIDs(ctx context.Context, carIDs []uuid.UUID) ([]uuid.UUID, error)
	// Bookings whose created_at falls into [from, to]; a nil bound is open.
	ListByCreatedRange(ctx context.Context, from, to *time.Time) ([]model.Booking, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).Preload("Car").First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) List(
	ctx context.Context,
	status model.BookingStatus,
	limit, offset int,
) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var bookings []model.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *GormBookingRepository) UpdateByID(ctx context.Context, id string, patch map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(patch).
		Error
}

func (r *GormBookingRepository) ListIDsByCarID(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("car_id = ?", carID).
		Order("created_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormBookingRepository) ReferencedCarIDs(ctx context.Context, carIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(carIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Distinct("car_id").
		Where("car_id IN ?", carIDs).
		Pluck("car_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormBookingRepository) ListByCreatedRange(ctx context.Context, from, to *time.Time) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).Model(&model.Booking{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var bookings []model.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
