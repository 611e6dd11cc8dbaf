package confirm_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	catalogClient "github.com/m04kA/POS-ReservationService/internal/integrations/catalog"
)

// Limits ограничения бронирования из конфигурации
type Limits struct {
	AdvanceBookingDays int // 0 = без ограничений
	MinNoticeMinutes   int // 0 = без ограничений
}

// UseCase use case подтверждения бронирования.
//
// Решение о доступности и запись, которую оно разрешает, должны быть
// эффективно атомарны per-resource: проверка и INSERT выполняются под
// эксклюзивной блокировкой ключа ресурса и внутри сериализуемой
// транзакции. Голый check-then-write без этого - гонка, а не упрощение.
type UseCase struct {
	reservationRepo ReservationRepository
	checker         AvailabilityChecker
	catalog         CatalogClient
	locks           ResourceLocker
	txManager       TransactionManager
	limits          Limits
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	checker AvailabilityChecker,
	catalog CatalogClient,
	locks ResourceLocker,
	txManager TransactionManager,
	limits Limits,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		checker:         checker,
		catalog:         catalog,
		locks:           locks,
		txManager:       txManager,
		limits:          limits,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmReservation: service=%d, customer=%d, date=%s, time=%s",
		req.ServiceID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Услуга нужна до проверки - длительность, цена и сотрудник по умолчанию
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ConfirmReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ConfirmReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Сотрудник: явный из запроса или сотрудник услуги по умолчанию
	employeeID := req.EmployeeID
	if employeeID == nil {
		employeeID = service.DefaultEmployeeID
	}

	// 4. Ограничения конфигурации
	if err := validateAdvanceLimit(req.Date, now, uc.limits.AdvanceBookingDays); err != nil {
		uc.logger.Warn("ConfirmReservation: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, uc.limits.MinNoticeMinutes); err != nil {
		uc.logger.Warn("ConfirmReservation: notice validation failed: %v", err)
		return nil, err
	}

	startAt, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	// 5. Эксклюзивная секция по ключу ресурса на проверку и запись
	key := resourceKey(req.ServiceID, employeeID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	var result *domain.Reservation

	// 6. Проверка и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		violation, checkErr := uc.checker.Check(txCtx, &availability.CheckRequest{
			ServiceID:  req.ServiceID,
			StartAt:    startAt,
			EmployeeID: employeeID,
		})
		if checkErr != nil {
			return mapCheckerError(checkErr)
		}
		if violation != nil {
			uc.logger.Warn("ConfirmReservation: rejected, rules violated: %v", violation.Reasons())
			return &RuleViolationError{Violation: violation}
		}

		reservation := &domain.Reservation{
			ServiceID:       req.ServiceID,
			CustomerID:      req.CustomerID,
			EmployeeID:      employeeID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			Notes:           req.Notes,
		}

		created, createErr := uc.reservationRepo.Create(txCtx, reservation)
		if createErr != nil {
			uc.logger.Error("ConfirmReservation: failed to create reservation: %v", createErr)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, createErr)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		CustomerID:      result.CustomerID,
		EmployeeID:      result.EmployeeID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resourceKey ключ блокировки: календарь сотрудника, если он закреплен,
// иначе таймлайн услуги
func resourceKey(serviceID int64, employeeID *int64) string {
	if employeeID != nil {
		return fmt.Sprintf("employee:%d", *employeeID)
	}
	return fmt.Sprintf("service:%d", serviceID)
}

// mapCheckerError транслирует жесткие ошибки проверки в ошибки usecase
func mapCheckerError(err error) error {
	switch {
	case errors.Is(err, availability.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, availability.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, availability.ErrEmployeeInactive):
		return ErrEmployeeInactive
	default:
		return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}
}

// servicePrice извлекает цену из услуги.
// Если цена не указана (nil), возвращает 0.0
func servicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
