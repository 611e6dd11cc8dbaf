package confirm_reservation

import (
	"context"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// AvailabilityChecker интерфейс проверки доступности кандидата
type AvailabilityChecker interface {
	Check(ctx context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error)
}

// CatalogClient интерфейс клиента для CatalogService
type CatalogClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalog.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResourceLocker эксклюзивная секция по ключу ресурса (сотрудник или услуга).
// Держится на всём протяжении проверки и записи - два конкурентных
// подтверждения пересекающихся интервалов не могут пройти оба.
type ResourceLocker interface {
	Lock(key string)
	Unlock(key string)
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
