package service

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/gorm"
)

// Func-field mocks for the repository interfaces. Unset funcs return zero
// values so each test only wires what it exercises. Services run with a nil
// *gorm.DB, so transactions collapse to direct calls.

type mockBookingRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	findByIDFn      func(ctx context.Context, id string) (*models.Booking, error)
	findAllFn       func(ctx context.Context) ([]models.Booking, error)
	findByVehicleFn func(ctx context.Context, vehicleID string) ([]models.Booking, error)
	hasOverlapFn    func(ctx context.Context, tx *gorm.DB, vehicleID string, start, end time.Time) (bool, error)
	updateFn        func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	deleteFn        func(ctx context.Context, tx *gorm.DB, id string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, tx, b)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if m.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}

func (m *mockBookingRepo) FindByVehicleID(ctx context.Context, vehicleID string) ([]models.Booking, error) {
	if m.findByVehicleFn == nil {
		return nil, nil
	}
	return m.findByVehicleFn(ctx, vehicleID)
}

func (m *mockBookingRepo) HasOverlapping(ctx context.Context, tx *gorm.DB, vehicleID string, start, end time.Time) (bool, error) {
	if m.hasOverlapFn == nil {
		return false, nil
	}
	return m.hasOverlapFn(ctx, tx, vehicleID, start, end)
}

func (m *mockBookingRepo) Update(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, tx, b)
}

func (m *mockBookingRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, tx, id)
}

type mockMaintenanceRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, m *models.Maintenance) error
	findByIDFn          func(ctx context.Context, id string) (*models.Maintenance, error)
	findAllFn           func(ctx context.Context) ([]models.Maintenance, error)
	findActiveFn        func(ctx context.Context, vehicleID string) ([]models.Maintenance, error)
	findScheduledFn     func(ctx context.Context, from, to time.Time) ([]models.Maintenance, error)
	findByStatusInDayFn func(ctx context.Context, status models.MaintenanceStatus, dayStart, dayEnd time.Time) ([]models.Maintenance, error)
	updateStatusFn      func(ctx context.Context, id string, status models.MaintenanceStatus) error
	deleteFn            func(ctx context.Context, id string) error
	createLogFn         func(ctx context.Context, log *models.MaintenanceLog) error
	findLogsFn          func(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error)
	deleteLogsFn        func(ctx context.Context, maintenanceID string) error
}

func (m *mockMaintenanceRepo) Create(ctx context.Context, tx *gorm.DB, mt *models.Maintenance) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, tx, mt)
}

func (m *mockMaintenanceRepo) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Maintenance, error) {
	if m.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockMaintenanceRepo) FindAll(ctx context.Context) ([]models.Maintenance, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}

func (m *mockMaintenanceRepo) FindActiveByVehicle(ctx context.Context, tx *gorm.DB, vehicleID string) ([]models.Maintenance, error) {
	if m.findActiveFn == nil {
		return nil, nil
	}
	return m.findActiveFn(ctx, vehicleID)
}

func (m *mockMaintenanceRepo) FindScheduledBetween(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]models.Maintenance, error) {
	if m.findScheduledFn == nil {
		return nil, nil
	}
	return m.findScheduledFn(ctx, from, to)
}

func (m *mockMaintenanceRepo) FindByStatusInDay(ctx context.Context, tx *gorm.DB, status models.MaintenanceStatus, dayStart, dayEnd time.Time) ([]models.Maintenance, error) {
	if m.findByStatusInDayFn == nil {
		return nil, nil
	}
	return m.findByStatusInDayFn(ctx, status, dayStart, dayEnd)
}

func (m *mockMaintenanceRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.MaintenanceStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockMaintenanceRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockMaintenanceRepo) CreateLog(ctx context.Context, tx *gorm.DB, log *models.MaintenanceLog) error {
	if m.createLogFn == nil {
		return nil
	}
	return m.createLogFn(ctx, log)
}

func (m *mockMaintenanceRepo) FindLogs(ctx context.Context, maintenanceID string) ([]models.MaintenanceLog, error) {
	if m.findLogsFn == nil {
		return nil, nil
	}
	return m.findLogsFn(ctx, maintenanceID)
}

func (m *mockMaintenanceRepo) DeleteLogs(ctx context.Context, tx *gorm.DB, maintenanceID string) error {
	if m.deleteLogsFn == nil {
		return nil
	}
	return m.deleteLogsFn(ctx, maintenanceID)
}

type mockVehicleRepo struct {
	createFn          func(ctx context.Context, tx *gorm.DB, v *models.Vehicle) error
	findByIDFn        func(ctx context.Context, id string) (*models.Vehicle, error)
	findAllFn         func(ctx context.Context) ([]models.Vehicle, error)
	existsByPlateFn   func(ctx context.Context, plate, excludeID string) (bool, error)
	updateFn          func(ctx context.Context, tx *gorm.DB, v *models.Vehicle) error
	deleteFn          func(ctx context.Context, id string) error
	createStatusLogFn func(ctx context.Context, log *models.VehicleStatusLog) error
	findStatusLogsFn  func(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error)
}

func (m *mockVehicleRepo) Create(ctx context.Context, tx *gorm.DB, v *models.Vehicle) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, tx, v)
}

func (m *mockVehicleRepo) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Vehicle, error) {
	if m.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockVehicleRepo) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}

func (m *mockVehicleRepo) ExistsByLicensePlate(ctx context.Context, tx *gorm.DB, plate, excludeID string) (bool, error) {
	if m.existsByPlateFn == nil {
		return false, nil
	}
	return m.existsByPlateFn(ctx, plate, excludeID)
}

func (m *mockVehicleRepo) Update(ctx context.Context, tx *gorm.DB, v *models.Vehicle) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, tx, v)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockVehicleRepo) CreateStatusLog(ctx context.Context, tx *gorm.DB, log *models.VehicleStatusLog) error {
	if m.createStatusLogFn == nil {
		return nil
	}
	return m.createStatusLogFn(ctx, log)
}

func (m *mockVehicleRepo) FindStatusLogs(ctx context.Context, vehicleID string) ([]models.VehicleStatusLog, error) {
	if m.findStatusLogsFn == nil {
		return nil, nil
	}
	return m.findStatusLogsFn(ctx, vehicleID)
}

type mockPricingRepo struct {
	createFn        func(ctx context.Context, rule *models.VehiclePricingRule) error
	createBatchFn   func(ctx context.Context, rules []models.VehiclePricingRule) error
	findDatedFn     func(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error)
	findOpenEndedFn func(ctx context.Context, vehicleID string) (*models.VehiclePricingRule, error)
	deleteDatedFn   func(ctx context.Context, vehicleID string) error
	softDeleteFn    func(ctx context.Context, id uint, now time.Time) error
}

func (m *mockPricingRepo) Create(ctx context.Context, tx *gorm.DB, rule *models.VehiclePricingRule) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, rule)
}

func (m *mockPricingRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rules []models.VehiclePricingRule) error {
	if m.createBatchFn == nil {
		return nil
	}
	return m.createBatchFn(ctx, rules)
}

func (m *mockPricingRepo) FindDatedByVehicle(ctx context.Context, vehicleID string) ([]models.VehiclePricingRule, error) {
	if m.findDatedFn == nil {
		return nil, nil
	}
	return m.findDatedFn(ctx, vehicleID)
}

func (m *mockPricingRepo) FindOpenEnded(ctx context.Context, tx *gorm.DB, vehicleID string) (*models.VehiclePricingRule, error) {
	if m.findOpenEndedFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.findOpenEndedFn(ctx, vehicleID)
}

func (m *mockPricingRepo) DeleteDated(ctx context.Context, tx *gorm.DB, vehicleID string) error {
	if m.deleteDatedFn == nil {
		return nil
	}
	return m.deleteDatedFn(ctx, vehicleID)
}

func (m *mockPricingRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uint, now time.Time) error {
	if m.softDeleteFn == nil {
		return nil
	}
	return m.softDeleteFn(ctx, id, now)
}

type mockNotifier struct {
	published []string
	payloads  []any
	err       error
}

func (m *mockNotifier) Publish(routingKey string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, routingKey)
	m.payloads = append(m.payloads, payload)
	return nil
}
