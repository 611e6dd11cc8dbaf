package confirm_reservation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/POS-ReservationService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("confirm_reservation: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не существует
	ErrEmployeeNotFound = errors.New("confirm_reservation: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник деактивирован
	ErrEmployeeInactive = errors.New("confirm_reservation: employee is not active")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("confirm_reservation: date is too far in the future")

	// ErrTooLateToBook возвращается, когда нарушен minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("confirm_reservation: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_reservation: internal error")
)

// RuleViolationError несет полный набор нарушенных правил. Вызывающий
// получает все причины отказа за один запрос, а не первую найденную.
type RuleViolationError struct {
	Violation *domain.RuleViolation
}

// Error возвращает список нарушенных правил
func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("confirm_reservation: rule violation: %s", strings.Join(e.Violation.Reasons(), ", "))
}
