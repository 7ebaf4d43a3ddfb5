package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking reserves a vehicle for the half-open window
// [StartDatetime, EndDatetime).
type Booking struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	VehicleID     string        `gorm:"index;size:36;not null" json:"vehicle_id"`
	UserID        string        `gorm:"index;size:36;not null" json:"user_id"`
	StartDatetime time.Time     `gorm:"not null" json:"start_datetime"`
	EndDatetime   time.Time     `gorm:"not null" json:"end_datetime"`
	TotalPrice    float64       `gorm:"not null" json:"total_price"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
