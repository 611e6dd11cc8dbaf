package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

// fakeChecker отвечает нарушением для перечисленных времен начала
type fakeChecker struct {
	busy map[types.TimeString]bool
	err  error
}

func (f *fakeChecker) Check(_ context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.busy[types.NewTimeString(req.StartAt)] {
		return &domain.RuleViolation{TimeOverlap: true}, nil
	}
	return nil, nil
}

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase(checker *fakeChecker) *UseCase {
	grid := Grid{
		Hours:              availability.NewHourWindow(9, 17),
		GranularityMinutes: 60,
		MinNoticeMinutes:   60,
		AdvanceBookingDays: 30,
	}
	return NewUseCase(checker, grid, nopLogger{}).WithTimeProvider(&fixedTime{now: testNow})
}

func TestExecute_FullGridForFutureDate(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 8) // 09:00 .. 16:00 при шаге 60 минут

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("16:00"), resp.Slots[len(resp.Slots)-1].StartTime)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1].EndTime)

	// Слоты строго по возрастанию времени начала
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.IsBefore(resp.Slots[i].StartTime))
	}
}

func TestExecute_HidesBookedSlots(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{
		busy: map[types.TimeString]bool{"10:00": true, "14:00": true},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)
	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("10:00"), slot.StartTime)
		assert.NotEqual(t, types.TimeString("14:00"), slot.StartTime)
	}
}

func TestExecute_FullyBookedDayIsEmptyList(t *testing.T) {
	busy := make(map[types.TimeString]bool)
	for hour := 9; hour < 17; hour++ {
		ts, err := types.NewTimeStringFromMinutes(hour * 60)
		require.NoError(t, err)
		busy[ts] = true
	}

	uc := newTestUseCase(&fakeChecker{busy: busy})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	// now = 12:00, уведомление 60 минут: сегодняшние точки раньше 13:00 скрыты
	uc := newTestUseCase(&fakeChecker{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      testNow,
	})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("13:00"), resp.Slots[0].StartTime)
}

func TestExecute_PastDateReturnsEmptyNotError(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      testNow.AddDate(0, 0, 31),
	})

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_CheckFailurePropagates(t *testing.T) {
	// Отказ проверки - ошибка операции, слот не скрывается молча
	uc := newTestUseCase(&fakeChecker{err: assert.AnError})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_MissingDate(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeChecker{err: availability.ErrServiceNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 999,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
