package domain

import (
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusModified  ReservationStatus = "modified"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a committed time interval for a service,
// optionally assigned to an employee
type Reservation struct {
	ID         int64
	ServiceID  int64
	CustomerID int64
	EmployeeID *int64 // nil = нет закрепленного сотрудника

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the computed end of the reserved interval
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// IsCommitted returns true if the reservation counts toward overlap checks
func (r *Reservation) IsCommitted() bool {
	return r.Status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeModified returns true if the reservation may transition to Modified
func (r *Reservation) CanBeModified() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed || r.Status == StatusModified
}

// CanBeCancelled returns true if the reservation may transition to Cancelled
func (r *Reservation) CanBeCancelled() bool {
	return !r.IsCancelled()
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	ServiceID       *int64     // Фильтр по услуге (опционально)
	EmployeeID      *int64     // Фильтр по сотруднику (опционально)
	CustomerID      *int64     // Фильтр по клиенту (опционально)
	Date            *time.Time // Конкретная дата (опционально)
	Status          *ReservationStatus
	IncludeInactive bool // Включать ли отмененные бронирования
}
