package models

import "time"

// OpenEndedExpiry marks the single per-vehicle rule that carries the current
// price. It is created with the vehicle and only ever superseded, never
// touched by the bulk replace of dated rules.
var OpenEndedExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

type VehiclePricingRule struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	VehicleID         string     `gorm:"index;size:36;not null" json:"vehicle_id"`
	PricePerDay       float64    `gorm:"not null" json:"price_per_day"`
	HolidayMultiplier float64    `gorm:"not null;default:1.0" json:"holiday_multiplier"`
	EffectiveDate     time.Time  `json:"effective_date"`
	ExpiryDate        time.Time  `gorm:"index" json:"expiry_date"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// OpenEnded reports whether the rule is the vehicle's current-price rule.
func (r *VehiclePricingRule) OpenEnded() bool {
	return r.ExpiryDate.Equal(OpenEndedExpiry)
}
