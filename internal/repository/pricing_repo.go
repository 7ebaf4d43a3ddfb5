package repository

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/gorm"
)

type PricingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, rule *models.VehiclePricingRule) error
	CreateBatch(ctx context.Context, tx *gorm.DB, rules []models.VehiclePricingRule) error
	FindDatedByVehicle(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error)
	FindOpenEnded(ctx context.Context, tx *gorm.DB, vehicleID string) (*models.VehiclePricingRule, error)
	DeleteDated(ctx context.Context, tx *gorm.DB, vehicleID string) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uint, now time.Time) error
}

type pricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) Create(ctx context.Context, tx *gorm.DB, rule *models.VehiclePricingRule) error {
	return conn(r.db, tx).WithContext(ctx).Create(rule).Error
}

func (r *pricingRepository) CreateBatch(ctx context.Context, tx *gorm.DB, rules []models.VehiclePricingRule) error {
	if len(rules) == 0 {
		return nil
	}
	return conn(r.db, tx).WithContext(ctx).Create(&rules).Error
}

// FindDatedByVehicle returns the vehicle's non-deleted dated override rules,
// excluding the open-ended current-price rule.
func (r *pricingRepository) FindDatedByVehicle(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error) {
	var rules []models.VehiclePricingRule
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND expiry_date <> ? AND deleted_at IS NULL", vehicleID, models.OpenEndedExpiry).
		Order("effective_date ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *pricingRepository) FindOpenEnded(ctx context.Context, tx *gorm.DB, vehicleID string) (*models.VehiclePricingRule, error) {
	var rule models.VehiclePricingRule
	err := conn(r.db, tx).WithContext(ctx).
		Where("vehicle_id = ? AND expiry_date = ? AND deleted_at IS NULL", vehicleID, models.OpenEndedExpiry).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteDated removes every dated rule for the vehicle. The open-ended rule
// is never touched here.
func (r *pricingRepository) DeleteDated(ctx context.Context, tx *gorm.DB, vehicleID string) error {
	return conn(r.db, tx).WithContext(ctx).
		Where("vehicle_id = ? AND expiry_date <> ?", vehicleID, models.OpenEndedExpiry).
		Delete(&models.VehiclePricingRule{}).Error
}

func (r *pricingRepository) SoftDelete(ctx context.Context, tx *gorm.DB, id uint, now time.Time) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.VehiclePricingRule{}).
		Where("id = ?", id).
		Update("deleted_at", now).Error
}
