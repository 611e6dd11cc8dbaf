package modify_reservation

import (
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID int64            // ID бронирования
	RequesterID   int64            // ID клиента, выполняющего перенос
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64            // ID бронирования
	ServiceID       int64            // ID услуги
	CustomerID      int64            // ID клиента
	EmployeeID      *int64           // ID сотрудника (если закреплен)
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус после переноса (modified)
	UpdatedAt       time.Time        // Время обновления
}
