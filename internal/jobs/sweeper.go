// Package jobs contains background maintenance tasks.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ExpirePending(ctx context.Context, ttlMinutes int) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper переводит зависшие pending бронирования в cancelled по
// расписанию, освобождая их интервалы для новых бронирований.
// Pending записи создают внешние писатели через DEFAULT 'pending' в схеме;
// usecases этого сервиса пишут сразу confirmed.
type Sweeper struct {
	repo       ReservationRepository
	ttlMinutes int
	schedule   string
	cron       *cron.Cron
	logger     Logger
}

// NewSweeper создает новый sweeper. schedule - cron выражение.
func NewSweeper(repo ReservationRepository, ttlMinutes int, schedule string, logger Logger) *Sweeper {
	return &Sweeper{
		repo:       repo,
		ttlMinutes: ttlMinutes,
		schedule:   schedule,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start запускает расписание. Возвращает ошибку при некорректном cron выражении.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Sweeper started with schedule %q, ttl=%dm", s.schedule, s.ttlMinutes)
	return nil
}

// Stop останавливает расписание и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := s.repo.ExpirePending(ctx, s.ttlMinutes)
	if err != nil {
		s.logger.Error("Sweeper: failed to expire pending reservations: %v", err)
		return
	}

	if expired > 0 {
		s.logger.Info("Sweeper: expired %d stale pending reservations", expired)
	}
}
