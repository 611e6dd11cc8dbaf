package availability

import (
	"context"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// CatalogClient интерфейс клиента для CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
	GetEmployee(ctx context.Context, employeeID int64) (*catalog.Employee, error)
}

// ScheduleProvider интерфейс расписания сотрудников: рабочие окна и отгулы
type ScheduleProvider interface {
	// HasTimeOff проверяет, пересекается ли отгул сотрудника с интервалом
	HasTimeOff(ctx context.Context, employeeID int64, date time.Time, start, end types.TimeString) (bool, error)
	// IsWithinShift проверяет, что интервал попадает в рабочее окно сотрудника.
	// Сотрудник без настроенного расписания считается работающим всегда.
	IsWithinShift(ctx context.Context, employeeID int64, date time.Time, start, end types.TimeString) (bool, error)
}

// OverlapLookup интерфейс проверки пересечений с committed бронированиями
type OverlapLookup interface {
	HasOverlapping(ctx context.Context, q domain.OverlapQuery) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
