package repository

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *models.Maintenance) error
	FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Maintenance, error)
	FindAll(ctx context.Context) ([]models.Maintenance, error)
	FindActiveByVehicle(ctx context.Context, tx *gorm.DB, vehicleID string) ([]models.Maintenance, error)
	FindScheduledBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]models.Maintenance, error)
	FindByStatusInDay(ctx context.Context, tx *gorm.DB, status models.MaintenanceStatus, dayStart, dayEnd time.Time) ([]models.Maintenance, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.MaintenanceStatus) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	CreateLog(ctx context.Context, tx *gorm.DB, log *models.MaintenanceLog) error
	FindLogs(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error)
	DeleteLogs(ctx context.Context, tx *gorm.DB, maintenanceID string) error
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, tx *gorm.DB, m *models.Maintenance) error {
	return conn(r.db, tx).WithContext(ctx).Create(m).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Maintenance, error) {
	var m models.Maintenance
	if err := conn(r.db, tx).WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) FindAll(ctx context.Context) ([]models.Maintenance, error) {
	var ms []models.Maintenance
	if err := r.db.WithContext(ctx).Order("scheduled_date ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// FindActiveByVehicle returns the vehicle's non-FINISHED maintenances.
func (r *maintenanceRepository) FindActiveByVehicle(ctx context.Context, tx *gorm.DB, vehicleID string) ([]models.Maintenance, error) {
	var ms []models.Maintenance
	err := conn(r.db, tx).WithContext(ctx).
		Where("vehicle_id = ? AND status <> ?", vehicleID, models.MaintenanceFinished).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// FindScheduledBetween returns SCHEDULED maintenances with a scheduled date
// in the inclusive range [from, to] — the reminder window.
func (r *maintenanceRepository) FindScheduledBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]models.Maintenance, error) {
	var ms []models.Maintenance
	err := conn(r.db, tx).WithContext(ctx).
		Where("status = ? AND scheduled_date >= ? AND scheduled_date <= ?", models.MaintenanceScheduled, from, to).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// FindByStatusInDay selects by status and a half-open day window
// [dayStart, dayEnd) so the scheduled_date index stays usable.
func (r *maintenanceRepository) FindByStatusInDay(ctx context.Context, tx *gorm.DB, status models.MaintenanceStatus, dayStart, dayEnd time.Time) ([]models.Maintenance, error) {
	var ms []models.Maintenance
	err := conn(r.db, tx).WithContext(ctx).
		Where("status = ? AND scheduled_date >= ? AND scheduled_date < ?", status, dayStart, dayEnd).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *maintenanceRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.MaintenanceStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Maintenance{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *maintenanceRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&models.Maintenance{}, "id = ?", id).Error
}

func (r *maintenanceRepository) CreateLog(ctx context.Context, tx *gorm.DB, log *models.MaintenanceLog) error {
	return conn(r.db, tx).WithContext(ctx).Create(log).Error
}

func (r *maintenanceRepository) FindLogs(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error) {
	var logs []models.MaintenanceLog
	err := r.db.WithContext(ctx).
		Where("maintenance_id = ?", maintenanceID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *maintenanceRepository) DeleteLogs(ctx context.Context, tx *gorm.DB, maintenanceID string) error {
	return conn(r.db, tx).WithContext(ctx).
		Delete(&models.MaintenanceLog{}, "maintenance_id = ?", maintenanceID).Error
}
