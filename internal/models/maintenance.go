package models

import "time"

type MaintenanceStatus string

const (
	MaintenanceScheduled    MaintenanceStatus = "SCHEDULED"
	MaintenanceReminderSent MaintenanceStatus = "REMINDER_SENT"
	MaintenanceInProgress   MaintenanceStatus = "IN_PROGRESS"
	MaintenanceFinished     MaintenanceStatus = "FINISHED"
)

// maintenanceTransitions only ever advances: SCHEDULED may branch to
// REMINDER_SENT or IN_PROGRESS, everything converges on FINISHED.
var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceScheduled:    {MaintenanceReminderSent, MaintenanceInProgress},
	MaintenanceReminderSent: {MaintenanceInProgress},
	MaintenanceInProgress:   {MaintenanceFinished},
	MaintenanceFinished:     {},
}

// CanAdvanceMaintenance reports whether from -> to is a legal (forward-only)
// maintenance status change.
func CanAdvanceMaintenance(from, to MaintenanceStatus) bool {
	for _, s := range maintenanceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Active reports whether s still blocks bookings and pricing windows.
func (s MaintenanceStatus) Active() bool {
	return s != MaintenanceFinished
}

type Maintenance struct {
	ID            string            `gorm:"primaryKey;size:36" json:"id"`
	VehicleID     string            `gorm:"index;size:36;not null" json:"vehicle_id"`
	Title         string            `gorm:"size:100;not null" json:"title"`
	Description   string            `gorm:"size:255" json:"description"`
	ScheduledDate time.Time         `gorm:"index;not null" json:"scheduled_date"`
	Status        MaintenanceStatus `gorm:"type:varchar(20);index;not null;default:'SCHEDULED'" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Vehicle *Vehicle         `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Logs    []MaintenanceLog `gorm:"foreignKey:MaintenanceID;constraint:OnDelete:CASCADE" json:"logs,omitempty"`
}

// MaintenanceLog is an append-only action/note record attributed to an actor.
type MaintenanceLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MaintenanceID string    `gorm:"index;size:36;not null" json:"maintenance_id"`
	Action        string    `gorm:"size:100" json:"action"`
	Note          string    `gorm:"size:255" json:"note"`
	CreatedBy     string    `gorm:"size:36;not null" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}
