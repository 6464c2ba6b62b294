package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drivehub/rental-platform/internal/model"
)

type CarRepository interface {
	// Create a car.
	Create(ctx context.Context, car *model.Car) error
	// Find a car by ID.
	GetByID(ctx context.Context, id string) (*model.Car, error)
	// List cars, optionally filtered by status ("" means all).
	List(ctx context.Context, status model.CarStatus, limit, offset int) ([]model.Car, int64, error)
	// Fetch cars by ID set.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error)
	// Apply a column patch to one car.
	UpdateByID(ctx context.Context, id string, patch map[string]any) error
	// Apply a column patch to an ID set; returns affected rows.
	UpdateByIDs(ctx context.Context, ids []uuid.UUID, patch map[string]any) (int64, error)
	// Delete one car.
	Delete(ctx context.Context, id string) error
	// Delete an ID set; returns affected rows.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	// Count of all cars grouped by status.
	StatusCounts(ctx context.Context) (map[model.CarStatus]int64, error)
	// Total number of cars.
	Count(ctx context.Context) (int64, error)
}

type GormCarRepository struct {
	db *gorm.DB
}

func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

func (r *GormCarRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *GormCarRepository) GetByID(ctx context.Context, id string) (*model.Car, error) {
	var c model.Car
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCarRepository) List(
	ctx context.Context,
	status model.CarStatus,
	limit, offset int,
) ([]model.Car, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Car{})
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

	var cars []model.Car
	if err := q.Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

func (r *GormCarRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error) {
	if len(ids) == 0 {
		return []model.Car{}, nil
	}
	var cars []model.Car
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *GormCarRepository) UpdateByID(ctx context.Context, id string, patch map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&model.Car{}).
		Where("id = ?", id).
		Updates(patch).
		Error
}

func (r *GormCarRepository) UpdateByIDs(ctx context.Context, ids []uuid.UUID, patch map[string]any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Car{}).
		Where("id IN ?", ids).
		Updates(patch)
	return res.RowsAffected, res.Error
}

func (r *GormCarRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Car{}, "id = ?", id).Error
}

func (r *GormCarRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Car{})
	return res.RowsAffected, res.Error
}

func (r *GormCarRepository) StatusCounts(ctx context.Context) (map[model.CarStatus]int64, error) {
	var rows []struct {
		Status model.CarStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Car{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.CarStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormCarRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).Count(&total).Error
	return total, err
}
