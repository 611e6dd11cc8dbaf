// Package check_availability exposes the availability decision to callers
// without committing anything: either "available" or the complete set of
// violated rules for the candidate.
package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// AvailabilityChecker интерфейс проверки доступности кандидата
type AvailabilityChecker interface {
	Check(ctx context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("check_availability: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не существует
	ErrEmployeeNotFound = errors.New("check_availability: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник деактивирован
	ErrEmployeeInactive = errors.New("check_availability: employee is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)

// Request модель запроса на проверку доступности
type Request struct {
	ServiceID  int64            // ID услуги
	EmployeeID *int64           // ID сотрудника (опционально)
	Date       time.Time        // Дата кандидата
	StartTime  types.TimeString // Время начала кандидата
}

// Response модель ответа проверки доступности
type Response struct {
	Available bool                  // Кандидат доступен
	Violation *domain.RuleViolation // Полный набор нарушенных правил (nil при успехе)
}

// UseCase use case проверки доступности
type UseCase struct {
	checker AvailabilityChecker
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(checker AvailabilityChecker, logger Logger) *UseCase {
	return &UseCase{checker: checker, logger: logger}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	startAt, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	violation, err := uc.checker.Check(ctx, &availability.CheckRequest{
		ServiceID:  req.ServiceID,
		StartAt:    startAt,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, availability.ErrEmployeeNotFound):
			return nil, ErrEmployeeNotFound
		case errors.Is(err, availability.ErrEmployeeInactive):
			return nil, ErrEmployeeInactive
		default:
			uc.logger.Error("CheckAvailability: check failed: %v", err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
	}

	if violation != nil {
		uc.logger.Info("CheckAvailability: service=%d unavailable: %v", req.ServiceID, violation.Reasons())
		return &Response{Available: false, Violation: violation}, nil
	}

	return &Response{Available: true}, nil
}
