package modify_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/POS-ReservationService/pkg/keymutex"
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
	updated      *domain.Reservation
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (f *fakeRepo) UpdateTime(_ context.Context, id int64, res *domain.Reservation) error {
	if _, ok := f.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	clone := *res
	f.reservations[id] = &clone
	f.updated = &clone
	return nil
}

// recordingChecker запоминает последний запрос проверки
type recordingChecker struct {
	violation *domain.RuleViolation
	err       error
	lastReq   *availability.CheckRequest
}

func (c *recordingChecker) Check(_ context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error) {
	c.lastReq = req
	return c.violation, c.err
}

func storedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              7,
		ServiceID:       1,
		CustomerID:      100,
		Date:            time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *fakeRepo, checker *recordingChecker) *UseCase {
	return NewUseCase(repo, checker, keymutex.New(), inlineTxManager{}, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		ReservationID: 7,
		RequesterID:   100,
		NewDate:       time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC),
		NewStartTime:  types.TimeString("14:00"),
	}
}

func TestExecute_MovesReservation(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: storedReservation()}}
	checker := &recordingChecker{}
	uc := newTestUseCase(repo, checker)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusModified), resp.Status)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusModified, repo.updated.Status)
}

func TestExecute_ExcludesOwnInterval(t *testing.T) {
	// Собственный интервал исключается из проверки пересечений:
	// перенос на время, пересекающееся с самим собой, допустим
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: storedReservation()}}
	checker := &recordingChecker{}
	uc := newTestUseCase(repo, checker)

	req := validRequest()
	req.NewDate = time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	req.NewStartTime = types.TimeString("10:30")

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, checker.lastReq)
	require.NotNil(t, checker.lastReq.ExcludeReservationID)
	assert.Equal(t, int64(7), *checker.lastReq.ExcludeReservationID)
}

func TestExecute_RuleViolation(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: storedReservation()}}
	checker := &recordingChecker{violation: &domain.RuleViolation{TimeOverlap: true}}
	uc := newTestUseCase(repo, checker)

	_, err := uc.Execute(context.Background(), validRequest())

	var violationErr *RuleViolationError
	require.ErrorAs(t, err, &violationErr)
	assert.True(t, violationErr.Violation.TimeOverlap)
	assert.Nil(t, repo.updated)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{}}
	uc := newTestUseCase(repo, &recordingChecker{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_RejectsForeignReservation(t *testing.T) {
	// Клиент может переносить только своё бронирование
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: storedReservation()}}
	uc := newTestUseCase(repo, &recordingChecker{})

	req := validRequest()
	req.RequesterID = 200

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.updated)
}

func TestExecute_RejectsCancelledReservation(t *testing.T) {
	cancelled := storedReservation()
	cancelled.Status = domain.StatusCancelled

	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: cancelled}}
	uc := newTestUseCase(repo, &recordingChecker{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_CheckerHardErrors(t *testing.T) {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{7: storedReservation()}}
	checker := &recordingChecker{err: availability.ErrServiceNotFound}
	uc := newTestUseCase(repo, checker)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
