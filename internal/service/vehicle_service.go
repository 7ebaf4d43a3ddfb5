package service

import (
	"context"
	"errors"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateVehicleInput struct {
	CompanyID       string
	LicensePlate    string
	Brand           string
	YearManufacture *int
	Mileage         *int
	PurchaseDate    *time.Time
	PricePerDay     float64
}

type UpdateVehicleInput struct {
	CompanyID       string
	LicensePlate    string
	Brand           string
	YearManufacture *int
	Mileage         *int
	PurchaseDate    *time.Time
	Status          models.VehicleStatus
	PricePerDay     float64
	ActorID         string
}

type VehicleService interface {
	CreateVehicle(ctx context.Context, in CreateVehicleInput) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, in UpdateVehicleInput) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	StatusLogs(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error)
}

type vehicleService struct {
	db       *gorm.DB
	vehicles repository.VehicleRepository
	pricing  repository.PricingRepository
	now      func() time.Time
}

func NewVehicleService(db *gorm.DB, vehicles repository.VehicleRepository, pricing repository.PricingRepository) VehicleService {
	return &vehicleService{db: db, vehicles: vehicles, pricing: pricing, now: time.Now}
}

// CreateVehicle persists the vehicle together with its open-ended pricing
// rule: the single rule per vehicle carrying the current price.
func (s *vehicleService) CreateVehicle(ctx context.Context, in CreateVehicleInput) (*models.Vehicle, error) {
	if in.LicensePlate == "" || in.CompanyID == "" || in.Brand == "" {
		return nil, apperr.Validation("license_plate, company_id and brand are required")
	}
	if in.PricePerDay <= 0 {
		return nil, apperr.Validation("price per day must be greater than 0")
	}

	vehicle := &models.Vehicle{
		ID:              uuid.NewString(),
		CompanyID:       in.CompanyID,
		LicensePlate:    in.LicensePlate,
		Brand:           in.Brand,
		YearManufacture: in.YearManufacture,
		Mileage:         in.Mileage,
		PurchaseDate:    in.PurchaseDate,
		Status:          models.VehicleAvailable,
	}

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.vehicles.ExistsByLicensePlate(ctx, tx, in.LicensePlate, "")
		if err != nil {
			return apperr.Storage(err, "failed to check license plate")
		}
		if taken {
			return apperr.Conflict("license plate is already in use")
		}

		if err := s.vehicles.Create(ctx, tx, vehicle); err != nil {
			return apperr.Storage(err, "failed to create vehicle")
		}

		rule := &models.VehiclePricingRule{
			VehicleID:         vehicle.ID,
			PricePerDay:       in.PricePerDay,
			HolidayMultiplier: 1.0,
			ExpiryDate:        models.OpenEndedExpiry,
		}
		if err := s.pricing.Create(ctx, tx, rule); err != nil {
			return apperr.Storage(err, "failed to create pricing rule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle returns the vehicle with its current open-ended pricing rule
// attached.
func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("vehicle not found")
		}
		return nil, apperr.Storage(err, "failed to load vehicle")
	}

	if current, err := s.pricing.FindOpenEnded(ctx, nil, id); err == nil {
		vehicle.PricingRules = []models.VehiclePricingRule{*current}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Storage(err, "failed to load pricing rule")
	}
	return vehicle, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := s.vehicles.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list vehicles")
	}
	return vehicles, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, in UpdateVehicleInput) (*models.Vehicle, error) {
	if in.LicensePlate == "" || in.CompanyID == "" || in.Brand == "" {
		return nil, apperr.Validation("license_plate, company_id and brand are required")
	}
	if in.PricePerDay <= 0 {
		return nil, apperr.Validation("price per day must be greater than 0")
	}

	var vehicle *models.Vehicle
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		v, err := s.vehicles.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vehicle not found")
			}
			return apperr.Storage(err, "failed to load vehicle")
		}

		taken, err := s.vehicles.ExistsByLicensePlate(ctx, tx, in.LicensePlate, id)
		if err != nil {
			return apperr.Storage(err, "failed to check license plate")
		}
		if taken {
			return apperr.Conflict("license plate is already in use")
		}

		now := s.now()
		if in.Status != "" && in.Status != v.Status {
			if in.ActorID == "" {
				return apperr.Validation("actor_id is required when changing status")
			}
			if err := applyVehicleTransition(ctx, tx, s.vehicles, v, in.Status, in.ActorID, now); err != nil {
				return err
			}
		}

		v.CompanyID = in.CompanyID
		v.LicensePlate = in.LicensePlate
		v.Brand = in.Brand
		v.YearManufacture = in.YearManufacture
		v.Mileage = in.Mileage
		v.PurchaseDate = in.PurchaseDate
		v.UpdatedAt = now

		if err := s.vehicles.Update(ctx, tx, v); err != nil {
			return apperr.Storage(err, "failed to update vehicle")
		}

		// A price change supersedes the open-ended rule: soft-delete the old
		// one and insert a fresh open-ended rule, so the vehicle keeps
		// exactly one live current-price rule.
		current, err := s.pricing.FindOpenEnded(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("current pricing rule not found")
			}
			return apperr.Storage(err, "failed to load pricing rule")
		}
		if current.PricePerDay != in.PricePerDay {
			if err := s.pricing.SoftDelete(ctx, tx, current.ID, now); err != nil {
				return apperr.Storage(err, "failed to supersede pricing rule")
			}
			replacement := &models.VehiclePricingRule{
				VehicleID:         id,
				PricePerDay:       in.PricePerDay,
				HolidayMultiplier: current.HolidayMultiplier,
				ExpiryDate:        models.OpenEndedExpiry,
			}
			if err := s.pricing.Create(ctx, tx, replacement); err != nil {
				return apperr.Storage(err, "failed to create pricing rule")
			}
		}

		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id string) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		v, err := s.vehicles.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vehicle not found")
			}
			return apperr.Storage(err, "failed to load vehicle")
		}
		if v.Status == models.VehicleRented {
			return apperr.Conflict("cannot delete a vehicle that is currently rented")
		}
		if err := s.vehicles.Delete(ctx, tx, id); err != nil {
			return apperr.Storage(err, "failed to delete vehicle")
		}
		return nil
	})
}

func (s *vehicleService) StatusLogs(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error) {
	logs, err := s.vehicles.FindStatusLogs(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list status logs")
	}
	return logs, nil
}
