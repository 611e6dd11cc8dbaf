package domain

import (
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// OverlapQuery describes a candidate interval checked against committed
// reservations. Intervals are half-open: [Start, End) and [a, b) overlap
// iff a < End and Start < b.
type OverlapQuery struct {
	Date  time.Time
	Start types.TimeString
	End   types.TimeString

	// ServiceID всегда задан - проверка на уровне услуги выполняется
	// для любого кандидата
	ServiceID int64

	// EmployeeID расширяет проверку на календарь сотрудника
	EmployeeID *int64

	// ExcludeReservationID исключает собственный интервал бронирования
	// при переносе - бронирование не конфликтует само с собой
	ExcludeReservationID *int64
}
