package confirm_reservation

import (
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	ServiceID  int64            // ID услуги
	CustomerID int64            // ID клиента
	EmployeeID *int64           // ID сотрудника (опционально, иначе сотрудник услуги по умолчанию)
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ServiceID       int64            // ID услуги
	CustomerID      int64            // ID клиента
	EmployeeID      *int64           // ID сотрудника (если закреплен)
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
