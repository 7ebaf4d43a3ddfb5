package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetrent/scheduling-service/config"
	"github.com/fleetrent/scheduling-service/internal/handler"
	"github.com/fleetrent/scheduling-service/internal/middleware"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"github.com/fleetrent/scheduling-service/internal/scheduler"
	"github.com/fleetrent/scheduling-service/internal/service"
	"github.com/fleetrent/scheduling-service/pkg/database"
	"github.com/fleetrent/scheduling-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notification sink: best-effort. A missing broker degrades reminders to
	// status-only, it does not stop the service.
	var notifier service.Notifier
	if publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL); err != nil {
		log.Printf("[RabbitMQ] unavailable, reminders will not be published: %v", err)
	} else {
		notifier = publisher
		defer publisher.Close()
	}

	// Repositories
	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	pricingRepo := repository.NewPricingRepository(db)

	// Services
	bookingSvc := service.NewBookingService(db, bookingRepo, maintenanceRepo)
	pricingSvc := service.NewPricingService(db, pricingRepo, bookingRepo, maintenanceRepo)
	vehicleSvc := service.NewVehicleService(db, vehicleRepo, pricingRepo)
	maintenanceSvc := service.NewMaintenanceService(db, maintenanceRepo, vehicleRepo, notifier, cfg.ReminderDaysBefore)

	// Maintenance lifecycle scans
	sched, err := scheduler.New(maintenanceSvc, cfg.ScanIntervalMinutes)
	if err != nil {
		log.Fatalf("failed to build scheduler: %v", err)
	}
	sched.Start()

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "scheduling-service"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewVehicleHandler(vehicleSvc).RegisterRoutes(e)
	handler.NewPricingHandler(pricingSvc).RegisterRoutes(e)
	handler.NewMaintenanceHandler(maintenanceSvc).RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Scheduling Service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	// Let in-flight scheduler ticks finish before closing the database.
	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
