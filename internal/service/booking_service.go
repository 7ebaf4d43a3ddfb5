package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/repository"
	"github.com/fleetrent/scheduling-service/internal/timewindow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	VehicleID  string
	UserID     string
	Start      time.Time
	End        time.Time
	TotalPrice float64
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBookingPrice(ctx context.Context, id string, totalPrice float64) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	BookedDates(ctx context.Context, vehicleID string) ([]string, error)
}

type bookingService struct {
	db           *gorm.DB
	bookings     repository.BookingRepository
	maintenances repository.MaintenanceRepository
}

func NewBookingService(db *gorm.DB, bookings repository.BookingRepository, maintenances repository.MaintenanceRepository) BookingService {
	return &bookingService{db: db, bookings: bookings, maintenances: maintenances}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.VehicleID == "" || in.UserID == "" {
		return nil, apperr.Validation("vehicle_id and user_id are required")
	}
	if !in.Start.Before(in.End) {
		return nil, apperr.Validation("start must be before end")
	}
	if in.TotalPrice <= 0 {
		return nil, apperr.Validation("total price must be greater than 0")
	}

	window := timewindow.Window{Start: in.Start, End: in.End}
	booking := &models.Booking{
		ID:            uuid.NewString(),
		VehicleID:     in.VehicleID,
		UserID:        in.UserID,
		StartDatetime: in.Start,
		EndDatetime:   in.End,
		TotalPrice:    in.TotalPrice,
		Status:        models.BookingPending,
	}

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		// 1. Active maintenance blocks the booking. The scheduled date counts
		// as a full-day window.
		active, err := s.maintenances.FindActiveByVehicle(ctx, tx, in.VehicleID)
		if err != nil {
			return apperr.Storage(err, "failed to check maintenance schedule")
		}
		for _, m := range active {
			if timewindow.Overlaps(window, timewindow.Day(m.ScheduledDate)) {
				return apperr.Conflict("the booking window overlaps the vehicle's maintenance schedule")
			}
		}

		// 2. Half-open overlap against existing bookings; boundary-touching
		// bookings are allowed.
		overlapping, err := s.bookings.HasOverlapping(ctx, tx, in.VehicleID, in.Start, in.End)
		if err != nil {
			return apperr.Storage(err, "failed to check existing bookings")
		}
		if overlapping {
			return apperr.Conflict("the booking window overlaps another booking for this vehicle")
		}

		if err := s.bookings.Create(ctx, tx, booking); err != nil {
			return apperr.Storage(err, "failed to create booking")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Storage(err, "failed to load booking")
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list bookings")
	}
	return bookings, nil
}

func (s *bookingService) UpdateBookingPrice(ctx context.Context, id string, totalPrice float64) (*models.Booking, error) {
	if totalPrice < 0 {
		return nil, apperr.Validation("total price must not be negative")
	}

	var booking *models.Booking
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		b, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("booking not found")
			}
			return apperr.Storage(err, "failed to load booking")
		}
		b.TotalPrice = totalPrice
		if err := s.bookings.Update(ctx, tx, b); err != nil {
			return apperr.Storage(err, "failed to update booking")
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// DeleteBooking removes the booking unconditionally; there is deliberately no
// guard against deleting a booking that covers an active rental window.
func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.bookings.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("booking not found")
			}
			return apperr.Storage(err, "failed to load booking")
		}
		if err := s.bookings.Delete(ctx, tx, id); err != nil {
			return apperr.Storage(err, "failed to delete booking")
		}
		return nil
	})
}

// BookedDates returns the sorted unique calendar days (yyyy-mm-dd) covered by
// any booking for the vehicle.
func (s *bookingService) BookedDates(ctx context.Context, vehicleID string) ([]string, error) {
	if vehicleID == "" {
		return nil, apperr.Validation("vehicle_id is required")
	}
	bookings, err := s.bookings.FindByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Storage(err, "failed to list bookings")
	}

	seen := make(map[string]struct{})
	for _, b := range bookings {
		startDay := timewindow.Truncate(b.StartDatetime)
		endDay := timewindow.Truncate(b.EndDatetime)
		for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
			seen[day.Format("2006-01-02")] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}
