package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/POS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/POS-ReservationService/pkg/ptr"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	lastFilter   domain.ReservationFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	out := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if filter.CustomerID != nil && res.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func stored(id, customerID int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		ServiceID:       1,
		CustomerID:      customerID,
		Date:            time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Haircut",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func TestGetByID_OwnerOnly(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		7: stored(7, 100, domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)

	// Чужое бронирование недоступно
	_, err = svc.GetByID(context.Background(), 7, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{reservations: map[int64]*domain.Reservation{}}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 7, 100)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetCustomerReservations_IncludesCancelled(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: stored(1, 100, domain.StatusConfirmed),
		2: stored(2, 100, domain.StatusCancelled),
		3: stored(3, 200, domain.StatusConfirmed),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	// История включает отмененные
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestGetCustomerReservations_StatusFilter(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{
		1: stored(1, 100, domain.StatusConfirmed),
		2: stored(2, 100, domain.StatusCancelled),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("cancelled"),
	})

	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "cancelled", resp.Reservations[0].Status)
}

func TestGetCustomerReservations_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeRepo{reservations: map[int64]*domain.Reservation{}}, nopLogger{})

	_, err := svc.GetCustomerReservations(context.Background(), &models.GetCustomerReservationsRequest{
		CustomerID: 100,
		Status:     ptr.Ptr("done"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
