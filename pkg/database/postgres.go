package database

import (
	"log"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Vehicle{},
		&models.VehiclePricingRule{},
		&models.Booking{},
		&models.Maintenance{},
		&models.MaintenanceLog{},
		&models.VehicleStatusLog{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one live open-ended rule per vehicle
	// (the current price).
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_pricing_open_ended
		ON vehicle_pricing_rules (vehicle_id)
		WHERE expiry_date = '9999-12-31 23:59:59+00' AND deleted_at IS NULL
	`)

	return db
}
