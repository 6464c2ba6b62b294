package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
	"github.com/drivehub/rental-platform/internal/utils"
	"github.com/drivehub/rental-platform/internal/validate"
)

// InventoryService owns the administrative car lifecycle: create, update,
// delete, and the partial-success bulk operations.
type InventoryService struct {
	db       *gorm.DB
	cars     repository.CarRepository
	bookings repository.BookingRepository
	guard    *InventoryGuard
}

func NewInventoryService(
	db *gorm.DB,
	cars repository.CarRepository,
	bookings repository.BookingRepository,
) *InventoryService {
	return &InventoryService{
		db:       db,
		cars:     cars,
		bookings: bookings,
		guard:    NewInventoryGuard(cars, bookings),
	}
}

// BulkDeleteResult is a partial-batch outcome: blocked cars are skipped
// and reported, never failing the whole request.
type BulkDeleteResult struct {
	Deleted      []model.Car `json:"deleted"`
	Skipped      []string    `json:"skipped"`
	DeletedCount int         `json:"deleted_count"`
	SkippedCount int         `json:"skipped_count"`
}

type BulkUpdateResult struct {
	Updated []model.Car `json:"updated"`
}

func (s *InventoryService) CreateCar(ctx context.Context, payload validate.CarPayload) (*model.Car, error) {
	car, err := validate.ValidateCar(payload)
	if err != nil {
		return nil, err
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, apperr.NewPersistenceError("create car", err)
	}
	return car, nil
}

func (s *InventoryService) GetCar(ctx context.Context, id string) (*model.Car, error) {
	carID, err := parseID("car_id", id)
	if err != nil {
		return nil, err
	}
	car, err := s.cars.GetByID(ctx, carID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFoundError("car", id)
		}
		return nil, apperr.NewPersistenceError("get car", err)
	}
	return car, nil
}

func (s *InventoryService) ListCars(ctx context.Context, status string, page, pageSize int) (utils.Page[model.Car], error) {
	carStatus := model.CarStatus(status)
	if status != "" && !model.ValidCarStatus(carStatus) {
		return utils.Page[model.Car]{}, apperr.NewValidationError().
			Addf("status", "must be one of active, maintenance, inactive; got %q", status)
	}

	page, pageSize, offset := utils.NormalizePaging(page, pageSize)
	cars, total, err := s.cars.List(ctx, carStatus, pageSize, offset)
	if err != nil {
		return utils.Page[model.Car]{}, apperr.NewPersistenceError("list cars", err)
	}
	return utils.NewPage(cars, page, pageSize, int(total)), nil
}

func (s *InventoryService) UpdateCar(ctx context.Context, id string, payload validate.CarPayload) (*model.Car, error) {
	carID, err := parseID("car_id", id)
	if err != nil {
		return nil, err
	}
	patch, err := validate.ValidateCarPatch(payload)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetCar(ctx, carID.String()); err != nil {
		return nil, err
	}

	if len(patch) > 0 {
		if err := s.cars.UpdateByID(ctx, carID.String(), patch); err != nil {
			return nil, apperr.NewPersistenceError("update car", err)
		}
	}
	return s.GetCar(ctx, carID.String())
}

// DeleteCar removes a car with no referencing bookings. The reference
// check and the delete run in one transaction, with the RESTRICT foreign
// key as the database-level backstop.
func (s *InventoryService) DeleteCar(ctx context.Context, id string) (*model.Car, error) {
	carID, err := parseID("car_id", id)
	if err != nil {
		return nil, err
	}

	car, err := s.GetCar(ctx, carID.String())
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guard := NewInventoryGuard(
			repository.NewGormCarRepository(tx),
			repository.NewGormBookingRepository(tx),
		)
		if err := guard.AssertDeletable(ctx, carID); err != nil {
			return err
		}
		return repository.NewGormCarRepository(tx).Delete(ctx, carID.String())
	})
	if err != nil {
		var pe *apperr.PersistenceError
		if apperr.IsConflict(err) || errors.As(err, &pe) {
			return nil, err
		}
		return nil, apperr.NewPersistenceError("delete car", err)
	}
	return car, nil
}

// BulkDeleteCars deletes every unreferenced car in the set and reports
// the blocked ones as skipped.
func (s *InventoryService) BulkDeleteCars(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	carIDs, err := parseIDs("car_ids", ids)
	if err != nil {
		return nil, err
	}

	result := &BulkDeleteResult{Deleted: []model.Car{}, Skipped: []string{}}
	if len(carIDs) == 0 {
		return result, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carRepo := repository.NewGormCarRepository(tx)
		guard := NewInventoryGuard(carRepo, repository.NewGormBookingRepository(tx))

		deletable, blocked, err := guard.PartitionDeletable(ctx, carIDs)
		if err != nil {
			return err
		}

		deleted, err := carRepo.ListByIDs(ctx, deletable)
		if err != nil {
			return apperr.NewPersistenceError("load deletable cars", err)
		}
		if _, err := carRepo.DeleteByIDs(ctx, deletable); err != nil {
			return apperr.NewPersistenceError("bulk delete cars", err)
		}

		result.Deleted = deleted
		for _, id := range blocked {
			result.Skipped = append(result.Skipped, id.String())
		}
		result.DeletedCount = len(deleted)
		result.SkippedCount = len(blocked)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkUpdateCars applies one validated patch to the whole ID set.
func (s *InventoryService) BulkUpdateCars(ctx context.Context, ids []string, payload validate.CarPayload) (*BulkUpdateResult, error) {
	carIDs, err := parseIDs("car_ids", ids)
	if err != nil {
		return nil, err
	}
	patch, err := validate.ValidateCarPatch(payload)
	if err != nil {
		return nil, err
	}

	if len(patch) > 0 {
		if _, err := s.cars.UpdateByIDs(ctx, carIDs, patch); err != nil {
			return nil, apperr.NewPersistenceError("bulk update cars", err)
		}
	}

	updated, err := s.cars.ListByIDs(ctx, carIDs)
	if err != nil {
		return nil, apperr.NewPersistenceError("load updated cars", err)
	}
	return &BulkUpdateResult{Updated: updated}, nil
}

func parseID(field, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperr.NewValidationError().Addf(field, "is not a valid id: %q", id)
	}
	return parsed, nil
}

func parseIDs(field string, ids []string) ([]uuid.UUID, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		p, err := parseID(field, id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}
