package service

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"gorm.io/gorm"
)

// Notifier is the outbound notification sink. Fire-and-forget: callers log a
// failed publish and move on, delivery is not guaranteed.
type Notifier interface {
	Publish(routingKey string, payload any) error
}

// inTx runs fn inside a database transaction. A nil db runs fn directly with
// a nil tx — unit tests exercise services against mock repositories without
// a database.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// applyVehicleTransition moves a vehicle to a new status, appending exactly
// one audit row. A same-status call is a no-op. The caller persists the
// mutated vehicle inside the same transaction.
func applyVehicleTransition(ctx context.Context, tx *gorm.DB, vehicles repository.VehicleRepository, v *models.Vehicle, to models.VehicleStatus, actorID string, now time.Time) error {
	if v.Status == to {
		return nil
	}
	if !models.CanTransitionVehicle(v.Status, to) {
		return apperr.Conflict("vehicle %s cannot change status from %s to %s", v.ID, v.Status, to)
	}

	logRow := &models.VehicleStatusLog{
		VehicleID: v.ID,
		OldStatus: v.Status,
		NewStatus: to,
		ChangedBy: actorID,
		ChangedAt: now,
	}
	if err := vehicles.CreateStatusLog(ctx, tx, logRow); err != nil {
		return apperr.Storage(err, "failed to record vehicle status change")
	}

	v.Status = to
	v.UpdatedAt = now
	return nil
}
