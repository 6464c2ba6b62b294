package service

import (
	"context"
	"testing"
	"time"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
)

func TestStatsService_RatesAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	car := seedCar(t, db, "Toyota", "Corolla", 50)
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 4; i++ {
		seedBooking(t, db, car.ID, model.BookingStatusCompleted, 100, now.Add(-time.Duration(i)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		seedBooking(t, db, car.ID, model.BookingStatusCancelled, 100, now.Add(-time.Duration(i)*time.Hour))
	}
	for i := 0; i < 3; i++ {
		seedBooking(t, db, car.ID, model.BookingStatusPending, 100, now.Add(-time.Duration(i)*time.Hour))
	}

	start := now.Add(-24 * time.Hour)
	end := now.Add(time.Hour)
	stats, err := svc.ComputeStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}

	if stats.TotalBookings != 10 {
		t.Fatalf("expected 10 bookings, got %d", stats.TotalBookings)
	}
	if stats.CountsByStatus[model.BookingStatusCompleted] != 4 {
		t.Fatalf("expected 4 completed, got %d", stats.CountsByStatus[model.BookingStatusCompleted])
	}
	if stats.CountsByStatus[model.BookingStatusCancelled] != 3 {
		t.Fatalf("expected 3 cancelled, got %d", stats.CountsByStatus[model.BookingStatusCancelled])
	}
	if stats.CountsByStatus[model.BookingStatusPending] != 3 {
		t.Fatalf("expected 3 pending, got %d", stats.CountsByStatus[model.BookingStatusPending])
	}
	if _, ok := stats.CountsByStatus[model.BookingStatusConfirmed]; ok {
		t.Fatalf("expected zero-count statuses omitted")
	}

	if stats.CompletionRate != 40 {
		t.Fatalf("expected completion rate 40, got %v", stats.CompletionRate)
	}
	if stats.CancellationRate != 30 {
		t.Fatalf("expected cancellation rate 30, got %v", stats.CancellationRate)
	}

	// Revenue counts confirmed and completed only: 4 x 100.
	if stats.Revenue != 400 {
		t.Fatalf("expected revenue 400, got %v", stats.Revenue)
	}
}

func TestStatsService_EmptyWindowZeroRates(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	stats, err := svc.ComputeStats(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.CompletionRate != 0 || stats.CancellationRate != 0 || stats.OccupancyRate != 0 {
		t.Fatalf("expected all rates 0 with empty data, got %v/%v/%v",
			stats.CompletionRate, stats.CancellationRate, stats.OccupancyRate)
	}
	if stats.TotalBookings != 0 {
		t.Fatalf("expected no bookings, got %d", stats.TotalBookings)
	}
}

func TestStatsService_TopCarsRanking(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	now := time.Now().UTC().Truncate(time.Second)

	// Seven cars with descending booking counts 7..1; only five may rank.
	cars := make([]model.Car, 7)
	for i := range cars {
		cars[i] = seedCar(t, db, "Make", "Model", 40)
		for j := 0; j < 7-i; j++ {
			seedBooking(t, db, cars[i].ID, model.BookingStatusConfirmed, 40, now)
		}
	}

	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	stats, err := svc.ComputeStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}

	if len(stats.TopCars) != 5 {
		t.Fatalf("expected top 5, got %d", len(stats.TopCars))
	}
	for i := 1; i < len(stats.TopCars); i++ {
		if stats.TopCars[i].Count > stats.TopCars[i-1].Count {
			t.Fatalf("expected descending counts, got %v", stats.TopCars)
		}
	}
	if stats.TopCars[0].Count != 7 {
		t.Fatalf("expected leader with 7 bookings, got %d", stats.TopCars[0].Count)
	}
	if stats.TopCars[0].Make != "Make" || stats.TopCars[0].Model != "Model" {
		t.Fatalf("expected make/model attached, got %+v", stats.TopCars[0])
	}
}

func TestStatsService_TopCarsTieBreak(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	now := time.Now().UTC().Truncate(time.Second)

	carA := seedCar(t, db, "Toyota", "Yaris", 30)
	carB := seedCar(t, db, "Ford", "Focus", 35)
	seedBooking(t, db, carA.ID, model.BookingStatusConfirmed, 30, now)
	seedBooking(t, db, carB.ID, model.BookingStatusConfirmed, 35, now)

	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	stats, err := svc.ComputeStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}

	if len(stats.TopCars) != 2 {
		t.Fatalf("expected 2 ranked cars, got %d", len(stats.TopCars))
	}
	// Equal counts break ties by ascending car id.
	if stats.TopCars[0].CarID > stats.TopCars[1].CarID {
		t.Fatalf("expected ascending id tie-break, got %v", stats.TopCars)
	}
}

func TestStatsService_DefaultRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	fixedNow := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	car := seedCar(t, db, "Toyota", "Corolla", 50)
	seedBooking(t, db, car.ID, model.BookingStatusConfirmed, 50, fixedNow.Add(-24*time.Hour))
	seedBooking(t, db, car.ID, model.BookingStatusConfirmed, 50, fixedNow.Add(-40*24*time.Hour))

	stats, err := svc.ComputeStats(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	// The 40-day-old booking falls outside the default 30-day window.
	if stats.TotalBookings != 1 {
		t.Fatalf("expected 1 booking in default window, got %d", stats.TotalBookings)
	}
}

func TestStatsService_OpenEndedRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	now := time.Now().UTC().Truncate(time.Second)
	car := seedCar(t, db, "Toyota", "Corolla", 50)
	seedBooking(t, db, car.ID, model.BookingStatusConfirmed, 50, now.Add(-60*24*time.Hour))
	seedBooking(t, db, car.ID, model.BookingStatusConfirmed, 50, now)

	// Only an end bound: the start side stays open, old bookings included.
	end := now.Add(time.Hour)
	stats, err := svc.ComputeStats(context.Background(), nil, &end)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.TotalBookings != 2 {
		t.Fatalf("expected 2 bookings with open start, got %d", stats.TotalBookings)
	}
}

func TestStatsService_InvalidRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	now := time.Now().UTC()
	start := now
	end := now.Add(-time.Hour)
	_, err := svc.ComputeStats(context.Background(), &start, &end)
	if !apperr.IsValidation(err) {
		t.Fatalf("expected ValidationError for reversed range, got %v", err)
	}
}

func TestStatsService_OccupancyRate(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(repository.NewGormCarRepository(db), repository.NewGormBookingRepository(db))

	now := time.Now().UTC().Truncate(time.Second)
	carA := seedCar(t, db, "Toyota", "Yaris", 30)
	seedCar(t, db, "Ford", "Focus", 35)

	// One open booking over two cars: 50% occupancy.
	seedBooking(t, db, carA.ID, model.BookingStatusConfirmed, 30, now)

	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	stats, err := svc.ComputeStats(context.Background(), &start, &end)
	if err != nil {
		t.Fatalf("compute stats: %v", err)
	}
	if stats.OccupancyRate != 50 {
		t.Fatalf("expected occupancy 50, got %v", stats.OccupancyRate)
	}
	if stats.TotalCars != 2 {
		t.Fatalf("expected 2 cars, got %d", stats.TotalCars)
	}
	if stats.CarStatusCounts[model.CarStatusActive] != 2 {
		t.Fatalf("expected 2 active cars, got %d", stats.CarStatusCounts[model.CarStatusActive])
	}
}
