package models

import "time"

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleRented      VehicleStatus = "RENTED"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

// SystemActorID attributes status changes made by the background scheduler
// rather than a human operator.
const SystemActorID = "e2f47008-b82a-4a44-adbb-705e9a069137"

// vehicleTransitions is the closed set of allowed status changes. A
// same-status "transition" is a no-op and never reaches this table.
var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleAvailable:   {VehicleRented, VehicleMaintenance},
	VehicleRented:      {VehicleAvailable, VehicleMaintenance},
	VehicleMaintenance: {VehicleAvailable},
}

// CanTransitionVehicle reports whether from -> to is an allowed vehicle
// status change.
func CanTransitionVehicle(from, to VehicleStatus) bool {
	for _, s := range vehicleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Vehicle struct {
	ID              string        `gorm:"primaryKey;size:36" json:"id"`
	CompanyID       string        `gorm:"index;size:36;not null" json:"company_id"`
	LicensePlate    string        `gorm:"size:20;uniqueIndex;not null" json:"license_plate"`
	Brand           string        `gorm:"size:50" json:"brand"`
	YearManufacture *int          `json:"year_manufacture,omitempty"`
	Mileage         *int          `json:"mileage,omitempty"`
	PurchaseDate    *time.Time    `json:"purchase_date,omitempty"`
	Status          VehicleStatus `gorm:"type:varchar(20);index;not null;default:'AVAILABLE'" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	PricingRules []VehiclePricingRule `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"pricing_rules,omitempty"`
	Bookings     []Booking            `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Maintenances []Maintenance        `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"maintenances,omitempty"`
	StatusLogs   []VehicleStatusLog   `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"status_logs,omitempty"`
}

// VehicleStatusLog is an append-only audit row: one per status change, never
// mutated after insertion.
type VehicleStatusLog struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	VehicleID string        `gorm:"index;size:36;not null" json:"vehicle_id"`
	OldStatus VehicleStatus `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus VehicleStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy string        `gorm:"size:36;not null" json:"changed_by"`
	ChangedAt time.Time     `gorm:"not null" json:"changed_at"`
}
