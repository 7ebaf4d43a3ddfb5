package service

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"github.com/fleetrent/scheduling-service/internal/timewindow"
	"gorm.io/gorm"
)

type PricingRuleInput struct {
	PricePerDay       float64
	HolidayMultiplier float64
	EffectiveDate     time.Time
	ExpiryDate        time.Time
}

type PricingService interface {
	ReplaceRules(ctx context.Context, vehicleID string, rules []PricingRuleInput) ([]models.VehiclePricingRule, error)
	GetActiveRules(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error)
}

type pricingService struct {
	db           *gorm.DB
	pricing      repository.PricingRepository
	bookings     repository.BookingRepository
	maintenances repository.MaintenanceRepository
}

func NewPricingService(db *gorm.DB, pricing repository.PricingRepository, bookings repository.BookingRepository, maintenances repository.MaintenanceRepository) PricingService {
	return &pricingService{db: db, pricing: pricing, bookings: bookings, maintenances: maintenances}
}

// ReplaceRules atomically swaps the vehicle's dated pricing rules for the
// submitted set. Any validation failure leaves the persisted set untouched.
// The open-ended current-price rule is never affected.
func (s *pricingService) ReplaceRules(ctx context.Context, vehicleID string, rules []PricingRuleInput) ([]models.VehiclePricingRule, error) {
	if vehicleID == "" {
		return nil, apperr.Validation("vehicle_id is required")
	}

	windows := make([]timewindow.Window, len(rules))
	for i, r := range rules {
		if r.EffectiveDate.After(r.ExpiryDate) {
			return nil, apperr.Validation("effective date must be earlier than or equal to expiry date")
		}
		windows[i] = timewindow.Window{Start: r.EffectiveDate, End: r.ExpiryDate}
	}

	// Pairwise check within the request. Sharing an endpoint is a conflict
	// even where a plain interval test would pass.
	for i := range windows {
		for j := i + 1; j < len(windows); j++ {
			if timewindow.StrictConflict(windows[i], windows[j]) {
				return nil, apperr.Conflict("the date range overlaps another rule in the request")
			}
		}
	}

	created := make([]models.VehiclePricingRule, len(rules))
	for i, r := range rules {
		multiplier := r.HolidayMultiplier
		if multiplier == 0 {
			multiplier = 1.0
		}
		created[i] = models.VehiclePricingRule{
			VehicleID:         vehicleID,
			PricePerDay:       r.PricePerDay,
			HolidayMultiplier: multiplier,
			EffectiveDate:     r.EffectiveDate,
			ExpiryDate:        r.ExpiryDate,
		}
	}

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		active, err := s.maintenances.FindActiveByVehicle(ctx, tx, vehicleID)
		if err != nil {
			return apperr.Storage(err, "failed to check maintenance schedule")
		}

		for _, r := range rules {
			conflict, err := s.bookings.HasOverlapping(ctx, tx, vehicleID, r.EffectiveDate, r.ExpiryDate)
			if err != nil {
				return apperr.Storage(err, "failed to check existing bookings")
			}
			if conflict {
				return apperr.Conflict("the date range overlaps existing bookings for this vehicle")
			}

			effDay := timewindow.Truncate(r.EffectiveDate)
			expDay := timewindow.Truncate(r.ExpiryDate)
			for _, m := range active {
				day := timewindow.Truncate(m.ScheduledDate)
				if !day.Before(effDay) && !day.After(expDay) {
					return apperr.Conflict("the date range overlaps the vehicle's maintenance schedule")
				}
			}
		}

		// All rules passed all checks: replace the dated set as one unit.
		if err := s.pricing.DeleteDated(ctx, tx, vehicleID); err != nil {
			return apperr.Storage(err, "failed to remove previous pricing rules")
		}
		if err := s.pricing.CreateBatch(ctx, tx, created); err != nil {
			return apperr.Storage(err, "failed to insert pricing rules")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *pricingService) GetActiveRules(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error) {
	if vehicleID == "" {
		return nil, apperr.Validation("vehicle_id is required")
	}
	rules, err := s.pricing.FindDatedByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list pricing rules")
	}
	return rules, nil
}
