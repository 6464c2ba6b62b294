package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/drivehub/rental-platform/internal/apperr"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
)

// ReportService builds the downloadable booking report for the back
// office: one sheet of bookings in the window, one stats summary sheet.
type ReportService struct {
	bookings repository.BookingRepository
	stats    *StatsService
}

func NewReportService(bookings repository.BookingRepository, stats *StatsService) *ReportService {
	return &ReportService{bookings: bookings, stats: stats}
}

// BuildBookingsReport assembles the xlsx workbook for the given window.
// Range defaulting matches ComputeStats.
func (s *ReportService) BuildBookingsReport(ctx context.Context, start, end *time.Time) (*xlsx.File, error) {
	stats, err := s.stats.ComputeStats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListByCreatedRange(ctx, stats.RangeStart, stats.RangeEnd)
	if err != nil {
		return nil, apperr.NewPersistenceError("query bookings for report", err)
	}

	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Bookings")
	if err != nil {
		return nil, fmt.Errorf("add bookings sheet: %w", err)
	}

	headers := []string{
		"ID", "TripType", "Status", "Customer", "Email", "Phone",
		"PickupLocation", "PickupDate", "ReturnDate", "Passengers",
		"CarID", "TotalPrice", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, b := range bookings {
		row := sheet.AddRow()
		row.AddCell().SetValue(b.ID.String())
		row.AddCell().SetValue(string(b.TripType))
		row.AddCell().SetValue(string(b.Status))
		row.AddCell().SetValue(b.FullName)
		row.AddCell().SetValue(b.Email)
		row.AddCell().SetValue(b.Phone)
		row.AddCell().SetValue(b.PickupLocation)
		row.AddCell().SetValue(b.PickupDate.Format("2006-01-02 15:04:05"))
		if b.ReturnDate != nil {
			row.AddCell().SetValue(b.ReturnDate.Format("2006-01-02 15:04:05"))
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(b.Passengers)
		row.AddCell().SetValue(b.CarID.String())
		row.AddCell().SetValue(b.TotalPrice)
		row.AddCell().SetValue(b.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	summary, err := file.AddSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}

	addSummaryRow(summary, "Total bookings", stats.TotalBookings)
	for _, status := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
	} {
		if n, ok := stats.CountsByStatus[status]; ok {
			addSummaryRow(summary, fmt.Sprintf("Bookings %s", status), n)
		}
	}
	addSummaryRow(summary, "Revenue", stats.Revenue)
	addSummaryRow(summary, "Total cars", stats.TotalCars)
	addSummaryRow(summary, "Completion rate %", stats.CompletionRate)
	addSummaryRow(summary, "Cancellation rate %", stats.CancellationRate)
	addSummaryRow(summary, "Occupancy rate %", stats.OccupancyRate)

	return file, nil
}

func addSummaryRow(sheet *xlsx.Sheet, label string, value any) {
	row := sheet.AddRow()
	row.AddCell().SetValue(label)
	row.AddCell().SetValue(value)
}
