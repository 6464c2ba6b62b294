package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/drivehub/rental-platform/internal/adapter"
	"github.com/drivehub/rental-platform/internal/service"
)

// NewRouter wires the thin HTTP surface over the core services. The wire
// variant for single-entity reads is fixed at construction.
func NewRouter(
	inventory *service.InventoryService,
	bookings *service.BookingService,
	stats *service.StatsService,
	reports *service.ReportService,
	variant adapter.Variant,
) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	codec := adapter.NewCodec(variant)
	carHandler := NewCarHandler(inventory, codec)
	bookingHandler := NewBookingHandler(bookings, codec)
	statsHandler := NewStatsHandler(stats, reports)

	// Public booking flow.
	r.GET("/cars", carHandler.List)
	r.GET("/cars/:id", carHandler.Get)
	r.POST("/bookings", bookingHandler.Create)

	// Administrative back office.
	admin := r.Group("/admin")
	{
		admin.POST("/cars", carHandler.Create)
		admin.PUT("/cars/:id", carHandler.Update)
		admin.DELETE("/cars/:id", carHandler.Delete)
		admin.POST("/cars/bulk-delete", carHandler.BulkDelete)
		admin.POST("/cars/bulk-update", carHandler.BulkUpdate)

		admin.GET("/bookings", bookingHandler.List)
		admin.GET("/bookings/:id", bookingHandler.Get)
		admin.PATCH("/bookings/:id", bookingHandler.Update)
		admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

		admin.GET("/stats", statsHandler.Get)
		admin.GET("/reports/bookings.xlsx", statsHandler.ExportBookings)
	}

	return r
}
