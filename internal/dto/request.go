package dto

import (
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
)

type CreateBookingRequest struct {
	VehicleID     string    `json:"vehicle_id"`
	UserID        string    `json:"user_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	TotalPrice    float64   `json:"total_price"`
}

type UpdateBookingRequest struct {
	TotalPrice float64 `json:"total_price"`
}

type PricingRuleRequest struct {
	PricePerDay       float64   `json:"price_per_day"`
	HolidayMultiplier float64   `json:"holiday_multiplier"`
	EffectiveDate     time.Time `json:"effective_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
}

type VehicleRequest struct {
	CompanyID       string               `json:"company_id"`
	LicensePlate    string               `json:"license_plate"`
	Brand           string               `json:"brand"`
	YearManufacture *int                 `json:"year_manufacture,omitempty"`
	Mileage         *int                 `json:"mileage,omitempty"`
	PurchaseDate    *time.Time           `json:"purchase_date,omitempty"`
	Status          models.VehicleStatus `json:"status,omitempty"`
	PricePerDay     float64              `json:"price_per_day"`
	ActorID         string               `json:"actor_id,omitempty"`
}

type CreateMaintenanceRequest struct {
	VehicleID     string    `json:"vehicle_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

type CreateMaintenanceLogRequest struct {
	Action    string `json:"action"`
	Note      string `json:"note"`
	CreatedBy string `json:"created_by"`
}
