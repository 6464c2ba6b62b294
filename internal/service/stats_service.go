package service

import (
	"context"
	"sort"
	"time"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
	"github.com/drivehub/rental-platform/internal/utils"
)

// DefaultStatsSpan is the reporting window used when no range is given.
const DefaultStatsSpan = 30 * 24 * time.Hour

// TopCarLimit caps the vehicle ranking length.
const TopCarLimit = 5

// TopCar is one row of the vehicle ranking, with make/model attached for
// display.
type TopCar struct {
	CarID string `json:"car_id"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Count int64  `json:"count"`
}

// Stats is the windowed operational summary for the dashboard.
type Stats struct {
	RangeStart *time.Time `json:"range_start,omitempty"`
	RangeEnd   *time.Time `json:"range_end,omitempty"`

	TotalBookings  int64                         `json:"total_bookings"`
	CountsByStatus map[model.BookingStatus]int64 `json:"counts_by_status"`
	Revenue        float64                       `json:"revenue"`
	TopCars        []TopCar                      `json:"top_cars"`

	TotalCars       int64                     `json:"total_cars"`
	CarStatusCounts map[model.CarStatus]int64 `json:"car_status_counts"`

	CompletionRate   float64 `json:"completion_rate"`
	CancellationRate float64 `json:"cancellation_rate"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}

// StatsService aggregates booking and car data into operational
// statistics over a created_at window.
type StatsService struct {
	cars     repository.CarRepository
	bookings repository.BookingRepository
	now      func() time.Time
}

func NewStatsService(cars repository.CarRepository, bookings repository.BookingRepository) *StatsService {
	return &StatsService{cars: cars, bookings: bookings, now: time.Now}
}

// ComputeStats aggregates over bookings created in [start, end]. With no
// bounds the window defaults to the last 30 days; a single given bound
// leaves the other side open.
func (s *StatsService) ComputeStats(ctx context.Context, start, end *time.Time) (*Stats, error) {
	rng, err := utils.ResolveRange(start, end, s.now().UTC(), DefaultStatsSpan)
	if err != nil {
		return nil, apperr.NewValidationError().Add("range", "end must not be before start")
	}

	bookings, err := s.bookings.ListByCreatedRange(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, apperr.NewPersistenceError("query bookings by range", err)
	}

	stats := &Stats{
		RangeStart:     rng.Start,
		RangeEnd:       rng.End,
		TotalBookings:  int64(len(bookings)),
		CountsByStatus: map[model.BookingStatus]int64{},
		TopCars:        []TopCar{},
	}

	perCar := map[string]int64{}
	var activeInRange int64
	for _, b := range bookings {
		stats.CountsByStatus[b.Status]++
		if b.Status == model.BookingStatusConfirmed || b.Status == model.BookingStatusCompleted {
			stats.Revenue += b.TotalPrice
		}
		if b.Status == model.BookingStatusPending || b.Status == model.BookingStatusConfirmed {
			activeInRange++
		}
		perCar[b.CarID.String()]++
	}

	topCars, err := s.rankCars(ctx, perCar)
	if err != nil {
		return nil, err
	}
	stats.TopCars = topCars

	carCounts, err := s.cars.StatusCounts(ctx)
	if err != nil {
		return nil, apperr.NewPersistenceError("car status counts", err)
	}
	stats.CarStatusCounts = carCounts

	totalCars, err := s.cars.Count(ctx)
	if err != nil {
		return nil, apperr.NewPersistenceError("count cars", err)
	}
	stats.TotalCars = totalCars

	if stats.TotalBookings > 0 {
		stats.CompletionRate = float64(stats.CountsByStatus[model.BookingStatusCompleted]) / float64(stats.TotalBookings) * 100
		stats.CancellationRate = float64(stats.CountsByStatus[model.BookingStatusCancelled]) / float64(stats.TotalBookings) * 100
	}
	if stats.TotalCars > 0 {
		stats.OccupancyRate = float64(activeInRange) / float64(stats.TotalCars) * 100
	}

	return stats, nil
}

// rankCars sorts cars by booking count descending, ties broken by
// ascending car id for determinism, and keeps the top five.
func (s *StatsService) rankCars(ctx context.Context, perCar map[string]int64) ([]TopCar, error) {
	ranking := make([]TopCar, 0, len(perCar))
	for id, count := range perCar {
		ranking = append(ranking, TopCar{CarID: id, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].CarID < ranking[j].CarID
	})
	if len(ranking) > TopCarLimit {
		ranking = ranking[:TopCarLimit]
	}

	ids, err := parseIDs("car_ids", topCarIDs(ranking))
	if err != nil {
		return nil, err
	}
	cars, err := s.cars.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.NewPersistenceError("load ranked cars", err)
	}

	byID := map[string]model.Car{}
	for _, c := range cars {
		byID[c.ID.String()] = c
	}
	for i := range ranking {
		if c, ok := byID[ranking[i].CarID]; ok {
			ranking[i].Make = c.Make
			ranking[i].Model = c.Model
		}
	}
	return ranking, nil
}

func topCarIDs(ranking []TopCar) []string {
	ids := make([]string, 0, len(ranking))
	for _, r := range ranking {
		ids = append(ids, r.CarID)
	}
	return ids
}
