package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"github.com/fleetrent/scheduling-service/internal/timewindow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateMaintenanceInput struct {
	VehicleID     string
	Title         string
	Description   string
	ScheduledDate time.Time
}

type AddMaintenanceLogInput struct {
	MaintenanceID string
	Action        string
	Note          string
	CreatedBy     string
}

// MaintenanceReminderEvent is the payload published to the notification sink
// for each maintenance entering REMINDER_SENT.
type MaintenanceReminderEvent struct {
	MaintenanceID string    `json:"maintenance_id"`
	VehicleID     string    `json:"vehicle_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Message       string    `json:"message"`
}

type MaintenanceService interface {
	CreateMaintenance(ctx context.Context, in CreateMaintenanceInput) (*models.Maintenance, error)
	GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error)
	ListMaintenances(ctx context.Context) ([]models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id string) error
	AddLog(ctx context.Context, in AddMaintenanceLogInput) (*models.MaintenanceLog, error)
	ListLogs(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error)

	// The three scheduler scans. Each returns the number of rows processed.
	ScanReminders(ctx context.Context) (int, error)
	PromoteDue(ctx context.Context) (int, error)
	AutoFinish(ctx context.Context) (int, error)
}

type maintenanceService struct {
	db           *gorm.DB
	maintenances repository.MaintenanceRepository
	vehicles     repository.VehicleRepository
	notifier     Notifier
	reminderDays int
	now          func() time.Time
}

// NewMaintenanceService builds the maintenance manager. A nil notifier skips
// publishing (reminders still advance status).
func NewMaintenanceService(db *gorm.DB, maintenances repository.MaintenanceRepository, vehicles repository.VehicleRepository, notifier Notifier, reminderDays int) MaintenanceService {
	if reminderDays < 0 {
		reminderDays = 0
	}
	return &maintenanceService{
		db:           db,
		maintenances: maintenances,
		vehicles:     vehicles,
		notifier:     notifier,
		reminderDays: reminderDays,
		now:          time.Now,
	}
}

func (s *maintenanceService) CreateMaintenance(ctx context.Context, in CreateMaintenanceInput) (*models.Maintenance, error) {
	if in.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.VehicleID == "" {
		return nil, apperr.Validation("vehicle_id is required")
	}
	if in.ScheduledDate.Before(s.now()) {
		return nil, apperr.Validation("scheduled date must not be in the past")
	}

	m := &models.Maintenance{
		ID:            uuid.NewString(),
		VehicleID:     in.VehicleID,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledDate: in.ScheduledDate,
		Status:        models.MaintenanceScheduled,
	}
	if err := s.maintenances.Create(ctx, nil, m); err != nil {
		return nil, apperr.Storage(err, "failed to create maintenance")
	}
	return m, nil
}

func (s *maintenanceService) GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error) {
	m, err := s.maintenances.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("maintenance not found")
		}
		return nil, apperr.Storage(err, "failed to load maintenance")
	}
	return m, nil
}

func (s *maintenanceService) ListMaintenances(ctx context.Context) ([]models.Maintenance, error) {
	ms, err := s.maintenances.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list maintenances")
	}
	return ms, nil
}

// DeleteMaintenance removes the record and its logs in one transaction.
func (s *maintenanceService) DeleteMaintenance(ctx context.Context, id string) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.maintenances.FindByID(ctx, tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("maintenance not found")
			}
			return apperr.Storage(err, "failed to load maintenance")
		}
		if err := s.maintenances.DeleteLogs(ctx, tx, id); err != nil {
			return apperr.Storage(err, "failed to delete maintenance logs")
		}
		if err := s.maintenances.Delete(ctx, tx, id); err != nil {
			return apperr.Storage(err, "failed to delete maintenance")
		}
		return nil
	})
}

func (s *maintenanceService) AddLog(ctx context.Context, in AddMaintenanceLogInput) (*models.MaintenanceLog, error) {
	if in.MaintenanceID == "" {
		return nil, apperr.Validation("maintenance_id is required")
	}
	if in.CreatedBy == "" {
		return nil, apperr.Validation("created_by is required")
	}
	if _, err := s.maintenances.FindByID(ctx, nil, in.MaintenanceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("maintenance not found")
		}
		return nil, apperr.Storage(err, "failed to load maintenance")
	}

	entry := &models.MaintenanceLog{
		MaintenanceID: in.MaintenanceID,
		Action:        in.Action,
		Note:          in.Note,
		CreatedBy:     in.CreatedBy,
	}
	if err := s.maintenances.CreateLog(ctx, nil, entry); err != nil {
		return nil, apperr.Storage(err, "failed to create maintenance log")
	}
	return entry, nil
}

func (s *maintenanceService) ListLogs(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error) {
	logs, err := s.maintenances.FindLogs(ctx, maintenanceID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list maintenance logs")
	}
	return logs, nil
}

// ScanReminders marks SCHEDULED maintenances due within the reminder window
// as REMINDER_SENT, then emits one notification per record. The status flip
// commits before any notification goes out, so a re-run cannot re-notify.
func (s *maintenanceService) ScanReminders(ctx context.Context) (int, error) {
	now := s.now()
	windowEnd := now.AddDate(0, 0, s.reminderDays)

	var due []models.Maintenance
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		ms, err := s.maintenances.FindScheduledBetween(ctx, tx, now, windowEnd)
		if err != nil {
			return apperr.Storage(err, "failed to scan for upcoming maintenances")
		}
		for _, m := range ms {
			if !models.CanAdvanceMaintenance(m.Status, models.MaintenanceReminderSent) {
				continue
			}
			if err := s.maintenances.UpdateStatus(ctx, tx, m.ID, models.MaintenanceReminderSent); err != nil {
				return apperr.Storage(err, "failed to mark reminder sent")
			}
			due = append(due, m)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, m := range due {
		s.publishReminder(ctx, m)
	}
	return len(due), nil
}

func (s *maintenanceService) publishReminder(ctx context.Context, m models.Maintenance) {
	if s.notifier == nil {
		return
	}

	plate := m.VehicleID
	companyID := ""
	if v, err := s.vehicles.FindByID(ctx, nil, m.VehicleID); err == nil {
		plate = v.LicensePlate
		companyID = v.CompanyID
	}

	event := MaintenanceReminderEvent{
		MaintenanceID: m.ID,
		VehicleID:     m.VehicleID,
		ScheduledDate: m.ScheduledDate,
		Message:       fmt.Sprintf("Vehicle %s is due for maintenance on %s (company %s)", plate, m.ScheduledDate.Format(time.RFC3339), companyID),
	}
	if err := s.notifier.Publish("maintenance.reminder", event); err != nil {
		log.Printf("[MaintenanceReminder] failed to publish reminder for %s: %v", m.ID, err)
	}
}

// PromoteDue moves today's SCHEDULED maintenances to IN_PROGRESS and puts
// their vehicles into MAINTENANCE. Each row commits in its own transaction;
// one bad row does not block the rest of the tick.
func (s *maintenanceService) PromoteDue(ctx context.Context) (int, error) {
	today := timewindow.Day(s.now())
	ms, err := s.maintenances.FindByStatusInDay(ctx, nil, models.MaintenanceScheduled, today.Start, today.End)
	if err != nil {
		return 0, apperr.Storage(err, "failed to scan for due maintenances")
	}

	processed := 0
	for _, m := range ms {
		if err := s.promoteOne(ctx, m); err != nil {
			log.Printf("[MaintenanceDue] maintenance %s: %v", m.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *maintenanceService) promoteOne(ctx context.Context, m models.Maintenance) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if !models.CanAdvanceMaintenance(m.Status, models.MaintenanceInProgress) {
			return apperr.Conflict("maintenance %s cannot advance from %s to IN_PROGRESS", m.ID, m.Status)
		}

		v, err := s.vehicles.FindByID(ctx, tx, m.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vehicle %s not found", m.VehicleID)
			}
			return apperr.Storage(err, "failed to load vehicle")
		}

		if v.Status != models.VehicleMaintenance {
			if err := applyVehicleTransition(ctx, tx, s.vehicles, v, models.VehicleMaintenance, models.SystemActorID, s.now()); err != nil {
				return err
			}
			if err := s.vehicles.Update(ctx, tx, v); err != nil {
				return apperr.Storage(err, "failed to update vehicle")
			}
		}

		if err := s.maintenances.UpdateStatus(ctx, tx, m.ID, models.MaintenanceInProgress); err != nil {
			return apperr.Storage(err, "failed to mark maintenance in progress")
		}
		return nil
	})
}

// AutoFinish closes out IN_PROGRESS maintenances scheduled yesterday and
// returns their vehicles to AVAILABLE.
func (s *maintenanceService) AutoFinish(ctx context.Context) (int, error) {
	yesterday := timewindow.Day(s.now().AddDate(0, 0, -1))
	ms, err := s.maintenances.FindByStatusInDay(ctx, nil, models.MaintenanceInProgress, yesterday.Start, yesterday.End)
	if err != nil {
		return 0, apperr.Storage(err, "failed to scan for finished maintenances")
	}

	processed := 0
	for _, m := range ms {
		if err := s.finishOne(ctx, m); err != nil {
			log.Printf("[MaintenanceAutoFinish] maintenance %s: %v", m.ID, err)
			continue
		}
		log.Printf("[MaintenanceAutoFinish] maintenance %s marked FINISHED (scheduled %s)", m.ID, m.ScheduledDate.Format(time.RFC3339))
		processed++
	}
	return processed, nil
}

func (s *maintenanceService) finishOne(ctx context.Context, m models.Maintenance) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if !models.CanAdvanceMaintenance(m.Status, models.MaintenanceFinished) {
			return apperr.Conflict("maintenance %s cannot advance from %s to FINISHED", m.ID, m.Status)
		}

		v, err := s.vehicles.FindByID(ctx, tx, m.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vehicle %s not found", m.VehicleID)
			}
			return apperr.Storage(err, "failed to load vehicle")
		}

		if err := applyVehicleTransition(ctx, tx, s.vehicles, v, models.VehicleAvailable, models.SystemActorID, s.now()); err != nil {
			return err
		}
		if err := s.vehicles.Update(ctx, tx, v); err != nil {
			return apperr.Storage(err, "failed to update vehicle")
		}

		if err := s.maintenances.UpdateStatus(ctx, tx, m.ID, models.MaintenanceFinished); err != nil {
			return apperr.Storage(err, "failed to mark maintenance finished")
		}
		return nil
	})
}
