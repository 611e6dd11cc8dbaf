package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
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

type fakeCatalog struct {
	services  map[int64]*catalog.Service
	employees map[int64]*catalog.Employee
	err       error
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*catalog.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	svc, ok := f.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalog) GetEmployee(_ context.Context, id int64) (*catalog.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	emp, ok := f.employees[id]
	if !ok {
		return nil, catalog.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeSchedule struct {
	withinShift bool
	timeOff     bool
	err         error
}

func (f *fakeSchedule) IsWithinShift(context.Context, int64, time.Time, types.TimeString, types.TimeString) (bool, error) {
	return f.withinShift, f.err
}

func (f *fakeSchedule) HasTimeOff(context.Context, int64, time.Time, types.TimeString, types.TimeString) (bool, error) {
	return f.timeOff, f.err
}

type fakeOverlaps struct {
	overlapping bool
	err         error
	lastQuery   domain.OverlapQuery
}

func (f *fakeOverlaps) HasOverlapping(_ context.Context, q domain.OverlapQuery) (bool, error) {
	f.lastQuery = q
	return f.overlapping, f.err
}

// now = 2026-09-15 12:00 локального времени, окно работы 09:00-17:00
var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func newTestChecker(cat *fakeCatalog, sched *fakeSchedule, overlaps *fakeOverlaps) *Checker {
	return NewChecker(cat, sched, overlaps, NewHourWindow(9, 17), nopLogger{}).
		WithTimeProvider(&fixedTime{now: testNow})
}

func defaultCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[int64]*catalog.Service{
			1: {ID: 1, Name: "Haircut", DurationMinutes: 60},
		},
		employees: map[int64]*catalog.Employee{
			10: {ID: 10, Name: "Anna", Active: true},
		},
	}
}

func TestCheck_Available(t *testing.T) {
	checker := newTestChecker(defaultCatalog(), &fakeSchedule{withinShift: true}, &fakeOverlaps{})

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID: 1,
		StartAt:   time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Nil(t, violation)
}

func TestCheck_AccumulatesAllViolations(t *testing.T) {
	// Кандидат в прошлом, вне рабочих часов, с пересечением и занятым
	// сотрудником - все четыре флага должны быть взведены одновременно
	checker := newTestChecker(
		defaultCatalog(),
		&fakeSchedule{withinShift: false},
		&fakeOverlaps{overlapping: true},
	)

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID:  1,
		StartAt:    time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC),
		EmployeeID: ptr.Ptr(int64(10)),
	})

	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.True(t, violation.TimeInPast)
	assert.True(t, violation.OutsideBusinessHours)
	assert.True(t, violation.TimeOverlap)
	assert.True(t, violation.EmployeeUnavailable)
	assert.Equal(t,
		[]string{"time_in_past", "outside_business_hours", "time_overlap", "employee_unavailable"},
		violation.Reasons())
}

func TestCheck_BusinessHoursBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		hour    int
		outside bool
	}{
		{name: "at open", hour: 9, outside: false},
		{name: "before open", hour: 8, outside: true},
		{name: "last hour", hour: 15, outside: false},
		{name: "at close", hour: 17, outside: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := newTestChecker(defaultCatalog(), &fakeSchedule{withinShift: true}, &fakeOverlaps{})

			violation, err := checker.Check(context.Background(), &CheckRequest{
				ServiceID: 1,
				StartAt:   time.Date(2026, 9, 16, tc.hour, 0, 0, 0, time.UTC),
			})

			require.NoError(t, err)
			if tc.outside {
				require.NotNil(t, violation)
				assert.True(t, violation.OutsideBusinessHours)
			} else {
				assert.Nil(t, violation)
			}
		})
	}
}

func TestCheck_IntervalOverflowsDay(t *testing.T) {
	cat := defaultCatalog()
	cat.services[1].DurationMinutes = 90

	checker := newTestChecker(cat, &fakeSchedule{withinShift: true}, &fakeOverlaps{})

	// 23:30 + 90 минут уходит за полночь
	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID: 1,
		StartAt:   time.Date(2026, 9, 16, 23, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.True(t, violation.OutsideBusinessHours)
}

func TestCheck_LastSlotBeforeMidnight(t *testing.T) {
	// Окно до конца суток: интервал последнего слота заканчивается в 24:00
	// и проходит проверку пересечений без ошибки
	cat := defaultCatalog()
	cat.services[1].DurationMinutes = 30

	overlaps := &fakeOverlaps{}
	checker := NewChecker(cat, &fakeSchedule{withinShift: true}, overlaps, NewHourWindow(9, 24), nopLogger{}).
		WithTimeProvider(&fixedTime{now: testNow})

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID: 1,
		StartAt:   time.Date(2026, 9, 16, 23, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Nil(t, violation)
	assert.Equal(t, types.TimeString("23:30"), overlaps.lastQuery.Start)
	assert.Equal(t, types.EndOfDay, overlaps.lastQuery.End)
}

func TestCheck_PassesIntervalToOverlapLookup(t *testing.T) {
	overlaps := &fakeOverlaps{}
	checker := newTestChecker(defaultCatalog(), &fakeSchedule{withinShift: true}, overlaps)

	excludeID := int64(42)
	_, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID:            1,
		StartAt:              time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
		ExcludeReservationID: &excludeID,
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00"), overlaps.lastQuery.Start)
	assert.Equal(t, types.TimeString("11:00"), overlaps.lastQuery.End)
	assert.Equal(t, int64(1), overlaps.lastQuery.ServiceID)
	require.NotNil(t, overlaps.lastQuery.ExcludeReservationID)
	assert.Equal(t, excludeID, *overlaps.lastQuery.ExcludeReservationID)
}

func TestCheck_ServiceNotFound(t *testing.T) {
	checker := newTestChecker(defaultCatalog(), &fakeSchedule{}, &fakeOverlaps{})

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID: 999,
		StartAt:   time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, violation)
}

func TestCheck_EmployeeHardErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		checker := newTestChecker(defaultCatalog(), &fakeSchedule{withinShift: true}, &fakeOverlaps{})

		_, err := checker.Check(context.Background(), &CheckRequest{
			ServiceID:  1,
			StartAt:    time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
			EmployeeID: ptr.Ptr(int64(999)),
		})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		cat := defaultCatalog()
		cat.employees[10].Active = false

		checker := newTestChecker(cat, &fakeSchedule{withinShift: true}, &fakeOverlaps{})

		_, err := checker.Check(context.Background(), &CheckRequest{
			ServiceID:  1,
			StartAt:    time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
			EmployeeID: ptr.Ptr(int64(10)),
		})
		assert.ErrorIs(t, err, ErrEmployeeInactive)
	})
}

func TestCheck_EmployeeTimeOff(t *testing.T) {
	checker := newTestChecker(
		defaultCatalog(),
		&fakeSchedule{withinShift: true, timeOff: true},
		&fakeOverlaps{},
	)

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID:  1,
		StartAt:    time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
		EmployeeID: ptr.Ptr(int64(10)),
	})

	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.True(t, violation.EmployeeUnavailable)
	assert.False(t, violation.TimeOverlap)
}

func TestCheck_LookupFailureIsErrorNotUnavailable(t *testing.T) {
	// Отказ хранилища не должен маскироваться под "слот занят"
	checker := newTestChecker(
		defaultCatalog(),
		&fakeSchedule{withinShift: true},
		&fakeOverlaps{err: assert.AnError},
	)

	violation, err := checker.Check(context.Background(), &CheckRequest{
		ServiceID: 1,
		StartAt:   time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, violation)
}
