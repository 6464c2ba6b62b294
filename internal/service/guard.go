package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/repository"
)

// InventoryGuard enforces referential consistency between cars and
// bookings: a booking may only reference an existing car, and a car
// referenced by any booking cannot be deleted.
type InventoryGuard struct {
	cars     repository.CarRepository
	bookings repository.BookingRepository
}

func NewInventoryGuard(cars repository.CarRepository, bookings repository.BookingRepository) *InventoryGuard {
	return &InventoryGuard{cars: cars, bookings: bookings}
}

// AssertCarExists fails with NotFoundError when the car is absent.
// Called before a booking may reference the car.
func (g *InventoryGuard) AssertCarExists(ctx context.Context, carID uuid.UUID) error {
	_, err := g.cars.GetByID(ctx, carID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFoundError("car", carID.String())
		}
		return apperr.NewPersistenceError("car lookup", err)
	}
	return nil
}

// AssertDeletable fails with ConflictError when at least one booking
// still references the car. The error lists the referencing booking ids
// so the caller knows exactly what blocks the delete.
func (g *InventoryGuard) AssertDeletable(ctx context.Context, carID uuid.UUID) error {
	refs, err := g.bookings.ListIDsByCarID(ctx, carID)
	if err != nil {
		return apperr.NewPersistenceError("booking reference check", err)
	}
	if len(refs) > 0 {
		blocking := make([]string, 0, len(refs))
		for _, id := range refs {
			blocking = append(blocking, id.String())
		}
		return apperr.NewConflictError("car is referenced by existing bookings and cannot be deleted", blocking...)
	}
	return nil
}

// PartitionDeletable splits the requested ID set into cars safe to delete
// and cars blocked by at least one referencing booking. It never fails
// the whole batch over blocked entries.
func (g *InventoryGuard) PartitionDeletable(ctx context.Context, carIDs []uuid.UUID) (deletable, blocked []uuid.UUID, err error) {
	if len(carIDs) == 0 {
		return []uuid.UUID{}, []uuid.UUID{}, nil
	}

	referenced, err := g.bookings.ReferencedCarIDs(ctx, carIDs)
	if err != nil {
		return nil, nil, apperr.NewPersistenceError("booking reference check", err)
	}

	blockedSet := make(map[uuid.UUID]struct{}, len(referenced))
	for _, id := range referenced {
		blockedSet[id] = struct{}{}
	}

	deletable = make([]uuid.UUID, 0, len(carIDs))
	blocked = make([]uuid.UUID, 0, len(referenced))
	for _, id := range carIDs {
		if _, ok := blockedSet[id]; ok {
			blocked = append(blocked, id)
		} else {
			deletable = append(deletable, id)
		}
	}
	return deletable, blocked, nil
}
