package repository

import (
	"context"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/gorm"
)

type VehicleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Vehicle, error)
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	ExistsByLicensePlate(ctx context.Context, tx *gorm.DB, plate, excludeID string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	CreateStatusLog(ctx context.Context, tx *gorm.DB, log *models.VehicleStatusLog) error
	FindStatusLogs(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error {
	return conn(r.db, tx).WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := conn(r.db, tx).WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) ExistsByLicensePlate(ctx context.Context, tx *gorm.DB, plate, excludeID string) (bool, error) {
	var count int64
	q := conn(r.db, tx).WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("license_plate = ?", plate)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *vehicleRepository) Update(ctx context.Context, tx *gorm.DB, vehicle *models.Vehicle) error {
	return conn(r.db, tx).WithContext(ctx).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(r.db, tx).WithContext(ctx).Select("PricingRules", "Bookings", "Maintenances", "StatusLogs").
		Delete(&models.Vehicle{ID: id}).Error
}

func (r *vehicleRepository) CreateStatusLog(ctx context.Context, tx *gorm.DB, log *models.VehicleStatusLog) error {
	return conn(r.db, tx).WithContext(ctx).Create(log).Error
}

func (r *vehicleRepository) FindStatusLogs(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error) {
	var logs []models.VehicleStatusLog
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("changed_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
