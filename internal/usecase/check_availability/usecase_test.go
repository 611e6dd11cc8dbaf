package check_availability

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

type stubChecker struct {
	violation *domain.RuleViolation
	err       error
}

func (s *stubChecker) Check(context.Context, *availability.CheckRequest) (*domain.RuleViolation, error) {
	return s.violation, s.err
}

func validRequest() *Request {
	return &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func TestExecute_Available(t *testing.T) {
	uc := NewUseCase(&stubChecker{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Nil(t, resp.Violation)
}

func TestExecute_UnavailableCarriesAllReasons(t *testing.T) {
	uc := NewUseCase(&stubChecker{
		violation: &domain.RuleViolation{TimeInPast: true, TimeOverlap: true},
	}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.NotNil(t, resp.Violation)
	assert.Equal(t, []string{"time_in_past", "time_overlap"}, resp.Violation.Reasons())
}

func TestExecute_HardErrors(t *testing.T) {
	cases := []struct {
		name       string
		checkerErr error
		wantErr    error
	}{
		{"service not found", availability.ErrServiceNotFound, ErrServiceNotFound},
		{"employee not found", availability.ErrEmployeeNotFound, ErrEmployeeNotFound},
		{"employee inactive", availability.ErrEmployeeInactive, ErrEmployeeInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewUseCase(&stubChecker{err: tc.checkerErr}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&stubChecker{}, nopLogger{})

	req := validRequest()
	req.StartTime = "later"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
