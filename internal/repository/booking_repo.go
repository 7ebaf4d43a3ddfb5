package repository

import (
	"context"
	"time"

	"github.com/fleetrent/scheduling-service/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByVehicleID(ctx context.Context, vehicleID string) ([]models.Booking, error)
	HasOverlapping(ctx context.Context, tx *gorm.DB, vehicleID string, start, end time.Time) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return conn(r.db, tx).WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).Order("start_datetime ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByVehicleID(ctx context.Context, vehicleID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_datetime ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// HasOverlapping reports whether any booking for the vehicle intersects the
// half-open window [start, end). Boundary-touching bookings do not count.
func (r *bookingRepository) HasOverlapping(ctx context.Context, tx *gorm.DB, vehicleID string, start, end time.Time) (bool, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("vehicle_id = ? AND start_datetime < ? AND end_datetime > ?", vehicleID, end, start).
		Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return conn(r.db, tx).WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return conn(r.db, tx).WithContext(ctx).Delete(&models.Booking{}, "id = ?", id).Error
}
