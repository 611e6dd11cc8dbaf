package modify_reservation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/POS-ReservationService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("modify_reservation: reservation not found")

	// ErrAlreadyCancelled возвращается при попытке перенести отмененное
	// бронирование - недопустимый переход состояния, а не NotFound
	ErrAlreadyCancelled = errors.New("modify_reservation: reservation is already cancelled")

	// ErrAccessDenied возвращается при попытке перенести чужое бронирование
	ErrAccessDenied = errors.New("modify_reservation: access denied")

	// ErrServiceNotFound возвращается, когда услуга бронирования исчезла из каталога
	ErrServiceNotFound = errors.New("modify_reservation: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не существует
	ErrEmployeeNotFound = errors.New("modify_reservation: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник деактивирован
	ErrEmployeeInactive = errors.New("modify_reservation: employee is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)

// RuleViolationError несет полный набор нарушенных правил для нового времени
type RuleViolationError struct {
	Violation *domain.RuleViolation
}

// Error возвращает список нарушенных правил
func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("modify_reservation: rule violation: %s", strings.Join(e.Violation.Reasons(), ", "))
}
