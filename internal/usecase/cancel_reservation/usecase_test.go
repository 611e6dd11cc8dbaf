package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/POS-ReservationService/pkg/keymutex"
	"github.com/m04kA/POS-ReservationService/pkg/ptr"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	cancelled    map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reservations: make(map[int64]*domain.Reservation),
		cancelled:    make(map[int64]string),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = domain.StatusCancelled
	res.CancellationReason = &reason
	f.cancelled[id] = reason
	return nil
}

func storedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              7,
		ServiceID:       1,
		CustomerID:      100,
		EmployeeID:      ptr.Ptr(int64(10)),
		Date:            time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeRepo) *UseCase {
	return NewUseCase(repo, keymutex.New(), inlineTxManager{}, nopLogger{})
}

func TestExecute_CancelsReservation(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations[7] = storedReservation()
	uc := newTestUseCase(repo)

	err := uc.Execute(context.Background(), &Request{ReservationID: 7, RequesterID: 100, Reason: "client request"})

	require.NoError(t, err)
	assert.Equal(t, "client request", repo.cancelled[7])
	assert.Equal(t, domain.StatusCancelled, repo.reservations[7].Status)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())

	err := uc.Execute(context.Background(), &Request{ReservationID: 7, RequesterID: 100})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_RejectsForeignReservation(t *testing.T) {
	// Клиент может отменять только своё бронирование
	repo := newFakeRepo()
	repo.reservations[7] = storedReservation()
	uc := newTestUseCase(repo)

	err := uc.Execute(context.Background(), &Request{ReservationID: 7, RequesterID: 200})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestExecute_SecondCancelIsRejected(t *testing.T) {
	// Повторная отмена - конфликт состояния, а не идемпотентный успех
	repo := newFakeRepo()
	repo.reservations[7] = storedReservation()
	uc := newTestUseCase(repo)

	require.NoError(t, uc.Execute(context.Background(), &Request{ReservationID: 7, RequesterID: 100}))

	err := uc.Execute(context.Background(), &Request{ReservationID: 7, RequesterID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeRepo())

	err := uc.Execute(context.Background(), &Request{ReservationID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
