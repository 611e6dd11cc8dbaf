package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	"github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// CheckRequest кандидат на бронирование
type CheckRequest struct {
	ServiceID int64
	StartAt   time.Time
	// EmployeeID включает проверки календаря и расписания сотрудника
	EmployeeID *int64
	// ExcludeReservationID исключает интервал собственного бронирования
	// из проверки пересечений (используется при переносе)
	ExcludeReservationID *int64
}

// Checker композиция политики рабочих часов, расписания сотрудников и
// проверки пересечений в одно решение доступен/недоступен/почему.
//
// Результат Check:
//   - nil, nil          - кандидат доступен
//   - violation, nil    - недоступен, violation содержит ВСЕ нарушенные
//     правила сразу, а не первое найденное
//   - nil, err          - проверку выполнить не удалось; никогда не
//     интерпретируется как "недоступен"
type Checker struct {
	catalog      CatalogClient
	schedule     ScheduleProvider
	overlaps     OverlapLookup
	hours        BusinessHoursPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(
	catalogClient CatalogClient,
	schedule ScheduleProvider,
	overlaps OverlapLookup,
	hours BusinessHoursPolicy,
	logger Logger,
) *Checker {
	return &Checker{
		catalog:      catalogClient,
		schedule:     schedule,
		overlaps:     overlaps,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (c *Checker) WithTimeProvider(tp TimeProvider) *Checker {
	c.timeProvider = tp
	return c
}

// Check проверяет кандидата по всем бизнес-правилам, накапливая мягкие
// нарушения в один RuleViolation. Жесткие ошибки (услуга или сотрудник
// не существуют) прерывают проверку сразу.
func (c *Checker) Check(ctx context.Context, req *CheckRequest) (*domain.RuleViolation, error) {
	// 1. Разрешаем услугу - без нее диагностика невозможна
	service, err := c.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			c.logger.Warn("Check: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		c.logger.Error("Check: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	violation := &domain.RuleViolation{}
	now := c.timeProvider.Now()

	// 2. Время в прошлом и рабочие часы - независимые флаги
	if req.StartAt.Before(now) {
		violation.TimeInPast = true
		c.logger.Info("Check: service=%d time=%s is in the past", req.ServiceID, req.StartAt.Format(time.RFC3339))
	}
	if !c.hours.IsWithinBusinessHours(req.StartAt) {
		violation.OutsideBusinessHours = true
		c.logger.Info("Check: service=%d time=%s is outside business hours", req.ServiceID, req.StartAt.Format(time.RFC3339))
	}

	// 3. Интервал кандидата: [start, start + duration)
	start := types.NewTimeString(req.StartAt)
	end, err := start.AddMinutes(service.DurationMinutes)
	if err != nil {
		// Интервал выходит за пределы суток - за рамками рабочих часов
		violation.OutsideBusinessHours = true
		c.logger.Info("Check: service=%d interval from %s overflows the day", req.ServiceID, start)
		return violation, nil
	}

	// 4. Пересечения с committed бронированиями: по услуге всегда,
	// по сотруднику дополнительно, если он указан
	overlapping, err := c.overlaps.HasOverlapping(ctx, domain.OverlapQuery{
		Date:                 req.StartAt,
		Start:                start,
		End:                  end,
		ServiceID:            req.ServiceID,
		EmployeeID:           req.EmployeeID,
		ExcludeReservationID: req.ExcludeReservationID,
	})
	if err != nil {
		c.logger.Error("Check: overlap lookup failed for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: overlap lookup failed: %v", ErrInternal, err)
	}
	if overlapping {
		violation.TimeOverlap = true
		c.logger.Info("Check: service=%d interval %s-%s overlaps a committed reservation", req.ServiceID, start, end)
	}

	// 5. Проверки сотрудника
	if req.EmployeeID != nil {
		if err := c.checkEmployee(ctx, *req.EmployeeID, req.StartAt, start, end, violation); err != nil {
			return nil, err
		}
	}

	if violation.Any() {
		return violation, nil
	}

	c.logger.Info("Check: service=%d time=%s is available", req.ServiceID, req.StartAt.Format(time.RFC3339))
	return nil, nil
}

// checkEmployee валидирует сотрудника и накапливает флаг его недоступности.
// Несуществующий или неактивный сотрудник - жесткая ошибка запроса,
// в отличие от легитимного состояния "занят".
func (c *Checker) checkEmployee(
	ctx context.Context,
	employeeID int64,
	startAt time.Time,
	start, end types.TimeString,
	violation *domain.RuleViolation,
) error {
	employee, err := c.catalog.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, catalog.ErrEmployeeNotFound) {
			c.logger.Warn("Check: employee id=%d not found", employeeID)
			return ErrEmployeeNotFound
		}
		c.logger.Error("Check: failed to get employee id=%d: %v", employeeID, err)
		return fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.Active {
		c.logger.Warn("Check: employee id=%d is not active", employeeID)
		return ErrEmployeeInactive
	}

	withinShift, err := c.schedule.IsWithinShift(ctx, employeeID, startAt, start, end)
	if err != nil {
		c.logger.Error("Check: shift lookup failed for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: shift lookup failed: %v", ErrInternal, err)
	}
	if !withinShift {
		violation.EmployeeUnavailable = true
		c.logger.Info("Check: employee=%d is outside working window for %s-%s", employeeID, start, end)
		return nil
	}

	timeOff, err := c.schedule.HasTimeOff(ctx, employeeID, startAt, start, end)
	if err != nil {
		c.logger.Error("Check: time-off lookup failed for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: time-off lookup failed: %v", ErrInternal, err)
	}
	if timeOff {
		violation.EmployeeUnavailable = true
		c.logger.Info("Check: employee=%d has time off overlapping %s-%s", employeeID, start, end)
	}

	return nil
}
