package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
)

// Grid параметры сетки слотов из конфигурации
type Grid struct {
	Hours              availability.HourWindow
	GranularityMinutes int
	MinNoticeMinutes   int
	AdvanceBookingDays int // 0 = без ограничений
}

// UseCase use case получения доступных слотов на день.
//
// Каждая точка сетки проверяется на уровне услуги, без сотрудника -
// выбор сотрудника в базовом сценарии откладывается до подтверждения.
// Слот скрывается, только когда занят таймлайн самой услуги.
type UseCase struct {
	checker      AvailabilityChecker
	grid         Grid
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(checker AvailabilityChecker, grid Grid, logger Logger) *UseCase {
	return &UseCase{
		checker:      checker,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	now := uc.timeProvider.Now()

	// 2. Прошедшая дата - пустой список, не ошибка
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 3. Ограничение advanceBookingDays
	if err := uc.validateAdvanceLimit(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Генерируем сетку и фильтруем по минимальному уведомлению
	points, err := gridPoints(uc.grid.Hours.OpenTime(), uc.grid.Hours.CloseTime(), uc.grid.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build slot grid: %v", ErrInternal, err)
	}

	points, err = filterByNotice(points, req.Date, now, uc.grid.MinNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to filter slot grid: %v", ErrInternal, err)
	}

	// 5. Прогоняем каждую точку через проверку доступности.
	// Ошибка проверки - ошибка всей операции, а не "слот занят".
	slots := make([]domain.TimeSlot, 0, len(points))
	for _, point := range points {
		startAt, atErr := point.At(req.Date)
		if atErr != nil {
			return nil, fmt.Errorf("%w: invalid grid point %s: %v", ErrInternal, point, atErr)
		}

		violation, checkErr := uc.checker.Check(ctx, &availability.CheckRequest{
			ServiceID: req.ServiceID,
			StartAt:   startAt,
		})
		if checkErr != nil {
			if errors.Is(checkErr, availability.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: check failed for %s: %v", point, checkErr)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, checkErr)
		}
		if violation != nil {
			continue
		}

		slotEnd, endErr := point.AddMinutes(uc.grid.GranularityMinutes)
		if endErr != nil {
			return nil, fmt.Errorf("%w: invalid grid point %s: %v", ErrInternal, point, endErr)
		}

		slots = append(slots, domain.TimeSlot{
			StartTime:       point,
			EndTime:         slotEnd,
			DurationMinutes: uc.grid.GranularityMinutes,
			Available:       true,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d of %d grid points available for service=%d, date=%s",
		len(slots), len(points), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		Slots:     []domain.TimeSlot{},
	}
}

func (uc *UseCase) validateAdvanceLimit(date, now time.Time) error {
	if uc.grid.AdvanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, uc.grid.AdvanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.grid.AdvanceBookingDays)
	}

	return nil
}
