package confirm_reservation

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
	"github.com/m04kA/POS-ReservationService/pkg/keymutex"
	"github.com/m04kA/POS-ReservationService/pkg/ptr"
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

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCatalog struct {
	services map[int64]*catalog.Service
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*catalog.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

// memoryRepo потокобезопасное in-memory хранилище бронирований
type memoryRepo struct {
	mu       sync.Mutex
	sequence int64
	stored   []*domain.Reservation
}

func (r *memoryRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	created := *res
	created.ID = r.sequence
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.stored = append(r.stored, &created)
	return &created, nil
}

// hasOverlap реализует полуоткрытое пересечение интервалов по данным репозитория
func (r *memoryRepo) hasOverlap(q domain.OverlapQuery) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range r.stored {
		if !res.IsCommitted() {
			continue
		}
		if res.Date.Format(domain.DateFormat) != q.Date.Format(domain.DateFormat) {
			continue
		}
		if q.ExcludeReservationID != nil && res.ID == *q.ExcludeReservationID {
			continue
		}
		sameResource := res.ServiceID == q.ServiceID ||
			(q.EmployeeID != nil && res.EmployeeID != nil && *res.EmployeeID == *q.EmployeeID)
		if !sameResource {
			continue
		}
		end, err := res.EndTime()
		if err != nil {
			continue
		}
		if res.StartTime.IsBefore(q.End) && q.Start.IsBefore(end) {
			return true
		}
	}
	return false
}

// repoBackedChecker реальная проверка пересечений поверх in-memory репозитория
type repoBackedChecker struct {
	repo    *memoryRepo
	catalog *fakeCatalog
	now     time.Time
}

func (c *repoBackedChecker) Check(ctx context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error) {
	service, err := c.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, availability.ErrServiceNotFound
	}

	violation := &domain.RuleViolation{}
	if req.StartAt.Before(c.now) {
		violation.TimeInPast = true
	}

	start := types.NewTimeString(req.StartAt)
	end, err := start.AddMinutes(service.DurationMinutes)
	if err != nil {
		violation.OutsideBusinessHours = true
		return violation, nil
	}

	if c.repo.hasOverlap(domain.OverlapQuery{
		Date:                 req.StartAt,
		Start:                start,
		End:                  end,
		ServiceID:            req.ServiceID,
		EmployeeID:           req.EmployeeID,
		ExcludeReservationID: req.ExcludeReservationID,
	}) {
		violation.TimeOverlap = true
	}

	if violation.Any() {
		return violation, nil
	}
	return nil, nil
}

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func newTestEnv() (*UseCase, *memoryRepo) {
	repo := &memoryRepo{}
	cat := &fakeCatalog{
		services: map[int64]*catalog.Service{
			1: {ID: 1, Name: "Haircut", DurationMinutes: 60, Price: ptr.Ptr(25.0)},
		},
	}
	checker := &repoBackedChecker{repo: repo, catalog: cat, now: testNow}

	uc := NewUseCase(
		repo,
		checker,
		cat,
		keymutex.New(),
		inlineTxManager{},
		Limits{AdvanceBookingDays: 30, MinNoticeMinutes: 60},
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: testNow})

	return uc, repo
}

func validRequest() *Request {
	return &Request{
		ServiceID:  1,
		CustomerID: 100,
		Date:       time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	uc, repo := newTestEnv()

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 25.0, resp.ServicePrice)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, repo.stored, 1)
}

func TestExecute_RejectsOverlap(t *testing.T) {
	uc, repo := newTestEnv()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Та же услуга, пересекающийся интервал
	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	_, err = uc.Execute(context.Background(), req)

	var violationErr *RuleViolationError
	require.ErrorAs(t, err, &violationErr)
	assert.True(t, violationErr.Violation.TimeOverlap)
	assert.Len(t, repo.stored, 1)
}

func TestExecute_BoundaryTouchIsNotOverlap(t *testing.T) {
	uc, repo := newTestEnv()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Конец 11:00 текущего бронирования касается начала нового
	req := validRequest()
	req.StartTime = types.TimeString("11:00")

	_, err = uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, repo.stored, 2)
}

func TestExecute_ConcurrentConfirmSameSlot(t *testing.T) {
	// Два конкурентных подтверждения одного и того же слота:
	// пройти должно ровно одно
	uc, repo := newTestEnv()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var violationErr *RuleViolationError
		require.ErrorAs(t, err, &violationErr)
		assert.True(t, violationErr.Violation.TimeOverlap)
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.stored, 1)
}

func TestExecute_TooLateToBook(t *testing.T) {
	uc, _ := newTestEnv()

	// Сегодня в 12:30 при минимальном уведомлении 60 минут
	req := validRequest()
	req.Date = testNow
	req.StartTime = types.TimeString("12:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	uc, _ := newTestEnv()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, 31)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _ := newTestEnv()

	req := validRequest()
	req.ServiceID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestEnv()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty time", func(r *Request) { r.StartTime = "" }},
		{"bad time format", func(r *Request) { r.StartTime = "10am" }},
		{"notes too long", func(r *Request) { r.Notes = ptr.Ptr(strings.Repeat("x", domain.MaxNotesLength+1)) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RandomSequenceNeverOverlaps(t *testing.T) {
	// Случайная последовательность подтверждений: независимо от исходов
	// сохраненные бронирования попарно не пересекаются
	uc, repo := newTestEnv()
	rng := rand.New(rand.NewSource(42))

	dates := []time.Time{
		time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC),
	}

	for i := 0; i < 200; i++ {
		minutes := 9*60 + 30*rng.Intn(16) // 09:00 .. 16:30 с шагом 30 минут
		start, err := types.NewTimeStringFromMinutes(minutes)
		require.NoError(t, err)

		req := validRequest()
		req.Date = dates[rng.Intn(len(dates))]
		req.StartTime = start

		_, err = uc.Execute(context.Background(), req)
		if err != nil {
			var violationErr *RuleViolationError
			require.ErrorAs(t, err, &violationErr)
		}
	}

	require.NotEmpty(t, repo.stored)
	for i, a := range repo.stored {
		endA, err := a.EndTime()
		require.NoError(t, err)
		for _, b := range repo.stored[i+1:] {
			if !a.Date.Equal(b.Date) {
				continue
			}
			endB, err := b.EndTime()
			require.NoError(t, err)
			overlaps := a.StartTime.IsBefore(endB) && b.StartTime.IsBefore(endA)
			assert.False(t, overlaps, "reservations %d and %d overlap", a.ID, b.ID)
		}
	}
}
