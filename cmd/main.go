package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drivehub/rental-platform/internal/adapter"
	"github.com/drivehub/rental-platform/internal/api"
	"github.com/drivehub/rental-platform/internal/config"
	"github.com/drivehub/rental-platform/internal/db"
	"github.com/drivehub/rental-platform/internal/model"
	"github.com/drivehub/rental-platform/internal/repository"
	"github.com/drivehub/rental-platform/internal/service"
)

func main() {
	// 1. Load config from env (.env honored in dev).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Connect to the database through GORM.
	gormDB, err := db.NewGormDB(cfg.DB)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Migrate models.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Repositories (GORM implementations).
	carRepo := repository.NewGormCarRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)

	// 5. Core services.
	inventorySvc := service.NewInventoryService(gormDB, carRepo, bookingRepo)
	bookingSvc := service.NewBookingService(carRepo, bookingRepo)
	statsSvc := service.NewStatsService(carRepo, bookingRepo)
	reportSvc := service.NewReportService(bookingRepo, statsSvc)

	// 6. HTTP router.
	router := api.NewRouter(inventorySvc, bookingSvc, statsSvc, reportSvc, adapter.Variant(cfg.APIVariant))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	log.Printf("rental core listening on %s", cfg.HTTPAddr)

	// 7. Run the server in a goroutine.
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Graceful shutdown on signal.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
