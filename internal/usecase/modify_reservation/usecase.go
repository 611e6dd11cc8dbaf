package modify_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/POS-ReservationService/internal/availability"
	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case переноса бронирования на новое время.
//
// Новый интервал проверяется с исключением собственного текущего
// интервала - бронирование не конфликтует само с собой, сдвиг на
// пересекающееся с собой время допустим.
type UseCase struct {
	reservationRepo ReservationRepository
	checker         AvailabilityChecker
	locks           ResourceLocker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	checker AvailabilityChecker,
	locks ResourceLocker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: repo,
		checker:         checker,
		locks:           locks,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ModifyReservation: id=%d, newDate=%s, newTime=%s",
		req.ReservationID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ModifyReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Предварительная загрузка - нужен ключ ресурса до захвата блокировки
	current, err := uc.loadReservation(ctx, req.ReservationID, req.RequesterID)
	if err != nil {
		return nil, err
	}

	key := resourceKey(current.ServiceID, current.EmployeeID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	startAt, err := req.NewStartTime.At(req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	var result *domain.Reservation

	// 3. Перечитываем под блокировкой, проверяем и пишем в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, loadErr := uc.loadReservation(txCtx, req.ReservationID, req.RequesterID)
		if loadErr != nil {
			return loadErr
		}

		violation, checkErr := uc.checker.Check(txCtx, &availability.CheckRequest{
			ServiceID:            reservation.ServiceID,
			StartAt:              startAt,
			EmployeeID:           reservation.EmployeeID,
			ExcludeReservationID: &reservation.ID,
		})
		if checkErr != nil {
			return mapCheckerError(checkErr)
		}
		if violation != nil {
			uc.logger.Warn("ModifyReservation: id=%d rejected, rules violated: %v",
				req.ReservationID, violation.Reasons())
			return &RuleViolationError{Violation: violation}
		}

		reservation.Date = req.NewDate
		reservation.StartTime = req.NewStartTime
		reservation.Status = domain.StatusModified

		if updateErr := uc.reservationRepo.UpdateTime(txCtx, reservation.ID, reservation); updateErr != nil {
			if errors.Is(updateErr, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("ModifyReservation: failed to update reservation id=%d: %v", reservation.ID, updateErr)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, updateErr)
		}

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ModifyReservation: successfully moved reservation id=%d to %s %s",
		result.ID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	return &Response{
		ID:              result.ID,
		ServiceID:       result.ServiceID,
		CustomerID:      result.CustomerID,
		EmployeeID:      result.EmployeeID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		UpdatedAt:       uc.timeProvider.Now(),
	}, nil
}

// loadReservation загружает бронирование, отличая отсутствие от
// недопустимого состояния. Клиент может переносить только своё бронирование.
func (uc *UseCase) loadReservation(ctx context.Context, id, requesterID int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ModifyReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ModifyReservation: failed to load reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to load reservation: %v", ErrInternal, err)
	}

	if reservation.CustomerID != requesterID {
		uc.logger.Warn("ModifyReservation: access denied for customer=%d to reservation id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeModified() {
		uc.logger.Warn("ModifyReservation: reservation id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	return reservation, nil
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

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
