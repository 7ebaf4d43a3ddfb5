package service

import (
	"context"
	"testing"
	"time"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/fleetrent/scheduling-service/internal/models"
	"github.com/fleetrent/scheduling-service/internal/timewindow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// overlapAgainst simulates the repository overlap query against a fixed set
// of stored bookings, using the same half-open semantics.
func overlapAgainst(existing ...timewindow.Window) func(context.Context, *gorm.DB, string, time.Time, time.Time) (bool, error) {
	return func(_ context.Context, _ *gorm.DB, _ string, start, end time.Time) (bool, error) {
		candidate := timewindow.Window{Start: start, End: end}
		for _, w := range existing {
			if timewindow.Overlaps(w, candidate) {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestCreateBooking_OverlapRejectedBoundaryAccepted(t *testing.T) {
	// Vehicle already booked for [2024-06-01T10:00, 2024-06-03T10:00).
	existing := timewindow.Window{Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-03T10:00:00Z")}

	var created []*models.Booking
	bookings := &mockBookingRepo{
		hasOverlapFn: overlapAgainst(existing),
		createFn: func(_ context.Context, _ *gorm.DB, b *models.Booking) error {
			created = append(created, b)
			return nil
		},
	}
	svc := NewBookingService(nil, bookings, &mockMaintenanceRepo{})

	// One hour of overlap: rejected.
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID:  "veh-1",
		UserID:     "user-1",
		Start:      dt("2024-06-03T09:00:00Z"),
		End:        dt("2024-06-05T10:00:00Z"),
		TotalPrice: 300,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.ClassConflict, apperr.ClassOf(err))
	assert.Empty(t, created)

	// Boundary touch (end == start): accepted.
	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID:  "veh-1",
		UserID:     "user-1",
		Start:      dt("2024-06-03T10:00:00Z"),
		End:        dt("2024-06-05T10:00:00Z"),
		TotalPrice: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.NotEmpty(t, booking.ID)
	assert.Len(t, created, 1)
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := NewBookingService(nil, &mockBookingRepo{}, &mockMaintenanceRepo{})

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-05T10:00:00Z"), End: dt("2024-06-01T10:00:00Z"),
		TotalPrice: 100,
	})
	assert.Equal(t, apperr.ClassValidation, apperr.ClassOf(err))

	// start == end is empty, also invalid.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-01T10:00:00Z"),
		TotalPrice: 100,
	})
	assert.Equal(t, apperr.ClassValidation, apperr.ClassOf(err))

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-02T10:00:00Z"),
		TotalPrice: 0,
	})
	assert.Equal(t, apperr.ClassValidation, apperr.ClassOf(err))

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-02T10:00:00Z"), TotalPrice: 100,
	})
	assert.Equal(t, apperr.ClassValidation, apperr.ClassOf(err))
}

func TestCreateBooking_MaintenanceConflict(t *testing.T) {
	maintenances := &mockMaintenanceRepo{
		findActiveFn: func(_ context.Context, _ string) ([]models.Maintenance, error) {
			return []models.Maintenance{
				{ID: "mnt-1", VehicleID: "veh-1", ScheduledDate: dt("2024-06-02T08:00:00Z"), Status: models.MaintenanceScheduled},
			}, nil
		},
	}
	svc := NewBookingService(nil, &mockBookingRepo{}, maintenances)

	// The maintenance day 2024-06-02 sits inside the booking window.
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-03T10:00:00Z"),
		TotalPrice: 200,
	})
	assert.Equal(t, apperr.ClassConflict, apperr.ClassOf(err))

	// Booking that ends before the maintenance day starts is fine.
	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-02T00:00:00Z"),
		TotalPrice: 200,
	})
	assert.NoError(t, err)
}

func TestCreateBooking_FinishedMaintenanceIgnored(t *testing.T) {
	// The repository only returns active maintenances; a FINISHED row never
	// reaches the validator. Represented here by an empty active set.
	maintenances := &mockMaintenanceRepo{
		findActiveFn: func(_ context.Context, _ string) ([]models.Maintenance, error) {
			return nil, nil
		},
	}
	svc := NewBookingService(nil, &mockBookingRepo{}, maintenances)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID: "veh-1", UserID: "user-1",
		Start: dt("2024-06-01T10:00:00Z"), End: dt("2024-06-03T10:00:00Z"),
		TotalPrice: 200,
	})
	assert.NoError(t, err)
}

func TestUpdateBookingPrice(t *testing.T) {
	stored := &models.Booking{ID: "bk-1", VehicleID: "veh-1", TotalPrice: 100}
	var saved *models.Booking
	bookings := &mockBookingRepo{
		findByIDFn: func(_ context.Context, id string) (*models.Booking, error) {
			if id == "bk-1" {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		updateFn: func(_ context.Context, _ *gorm.DB, b *models.Booking) error {
			saved = b
			return nil
		},
	}
	svc := NewBookingService(nil, bookings, &mockMaintenanceRepo{})

	booking, err := svc.UpdateBookingPrice(context.Background(), "bk-1", 250)
	require.NoError(t, err)
	assert.Equal(t, 250.0, booking.TotalPrice)
	require.NotNil(t, saved)
	assert.Equal(t, 250.0, saved.TotalPrice)

	_, err = svc.UpdateBookingPrice(context.Background(), "missing", 250)
	assert.Equal(t, apperr.ClassNotFound, apperr.ClassOf(err))

	_, err = svc.UpdateBookingPrice(context.Background(), "bk-1", -1)
	assert.Equal(t, apperr.ClassValidation, apperr.ClassOf(err))
}

func TestDeleteBooking(t *testing.T) {
	deleted := ""
	bookings := &mockBookingRepo{
		findByIDFn: func(_ context.Context, id string) (*models.Booking, error) {
			if id == "bk-1" {
				return &models.Booking{ID: "bk-1"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(_ context.Context, _ *gorm.DB, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewBookingService(nil, bookings, &mockMaintenanceRepo{})

	require.NoError(t, svc.DeleteBooking(context.Background(), "bk-1"))
	assert.Equal(t, "bk-1", deleted)

	err := svc.DeleteBooking(context.Background(), "missing")
	assert.Equal(t, apperr.ClassNotFound, apperr.ClassOf(err))
}

func TestBookedDates(t *testing.T) {
	bookings := &mockBookingRepo{
		findByVehicleFn: func(_ context.Context, _ string) ([]models.Booking, error) {
			return []models.Booking{
				{StartDatetime: dt("2024-06-01T10:00:00Z"), EndDatetime: dt("2024-06-03T10:00:00Z")},
				{StartDatetime: dt("2024-06-03T10:00:00Z"), EndDatetime: dt("2024-06-04T10:00:00Z")},
			}, nil
		},
	}
	svc := NewBookingService(nil, bookings, &mockMaintenanceRepo{})

	dates, err := svc.BookedDates(context.Background(), "veh-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04"}, dates)
}
