package get_available_slots

import (
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов.
// Длина слота равна шагу сетки, а не длительности услуги.
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	ServiceID int64             // ID услуги
	Slots     []domain.TimeSlot // Доступные слоты по возрастанию времени начала
}
