package modify_reservation

import (
	"context"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateTime(ctx context.Context, id int64, res *domain.Reservation) error
}

// AvailabilityChecker интерфейс проверки доступности кандидата
type AvailabilityChecker interface {
	Check(ctx context.Context, req *availability.CheckRequest) (*domain.RuleViolation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResourceLocker эксклюзивная секция по ключу ресурса
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
