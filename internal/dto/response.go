package dto

import (
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	VehicleID     string               `json:"vehicle_id"`
	UserID        string               `json:"user_id"`
	StartDatetime time.Time            `json:"start_datetime"`
	EndDatetime   time.Time            `json:"end_datetime"`
	TotalPrice    float64              `json:"total_price"`
	Status        models.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

type PricingRuleResponse struct {
	ID                uint      `json:"id"`
	VehicleID         string    `json:"vehicle_id"`
	PricePerDay       float64   `json:"price_per_day"`
	HolidayMultiplier float64   `json:"holiday_multiplier"`
	EffectiveDate     time.Time `json:"effective_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		VehicleID:     b.VehicleID,
		UserID:        b.UserID,
		StartDatetime: b.StartDatetime,
		EndDatetime:   b.EndDatetime,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func ToPricingRuleResponse(r *models.VehiclePricingRule) PricingRuleResponse {
	return PricingRuleResponse{
		ID:                r.ID,
		VehicleID:         r.VehicleID,
		PricePerDay:       r.PricePerDay,
		HolidayMultiplier: r.HolidayMultiplier,
		EffectiveDate:     r.EffectiveDate,
		ExpiryDate:        r.ExpiryDate,
	}
}
