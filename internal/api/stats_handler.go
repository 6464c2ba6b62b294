package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-platform/internal/service"
	"github.com/drivehub/rental-platform/internal/validate"
)

type StatsHandler struct {
	stats   *service.StatsService
	reports *service.ReportService
}

func NewStatsHandler(stats *service.StatsService, reports *service.ReportService) *StatsHandler {
	return &StatsHandler{stats: stats, reports: reports}
}

func (h *StatsHandler) Get(c *gin.Context) {
	start, end, err := rangeParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	stats, err := h.stats.ComputeStats(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) ExportBookings(c *gin.Context) {
	start, end, err := rangeParams(c)
	if err != nil {
		writeError(c, err)
		return
	}

	file, err := h.reports.BuildBookingsReport(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=bookings.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write report"})
	}
}

func rangeParams(c *gin.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := validate.ParseDate("start", raw)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := validate.ParseDate("end", raw)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}
