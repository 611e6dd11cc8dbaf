package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
)

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64  // ID бронирования
	RequesterID   int64  // ID клиента, выполняющего отмену
	Reason        string // Причина отмены
}

// UseCase use case отмены бронирования.
// Отмена освобождает интервал: cancelled бронирования не учитываются
// в проверках пересечений. Запись сохраняется как история.
type UseCase struct {
	reservationRepo ReservationRepository
	locks           ResourceLocker
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	locks ResourceLocker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: repo,
		locks:           locks,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelReservation: id=%d", req.ReservationID)

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	// Предварительная загрузка - ключ ресурса до захвата блокировки
	current, err := uc.loadReservation(ctx, req.ReservationID, req.RequesterID)
	if err != nil {
		return err
	}

	key := resourceKey(current.ServiceID, current.EmployeeID)
	uc.locks.Lock(key)
	defer uc.locks.Unlock(key)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Перечитываем под блокировкой: состояние могло измениться
		reservation, loadErr := uc.loadReservation(txCtx, req.ReservationID, req.RequesterID)
		if loadErr != nil {
			return loadErr
		}

		if cancelErr := uc.reservationRepo.Cancel(txCtx, reservation.ID, req.Reason); cancelErr != nil {
			if errors.Is(cancelErr, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", reservation.ID, cancelErr)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, cancelErr)
		}

		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d", req.ReservationID)
	return nil
}

// loadReservation загружает бронирование, отклоняя повторную отмену.
// Клиент может отменять только своё бронирование.
func (uc *UseCase) loadReservation(ctx context.Context, id, requesterID int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to load reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to load reservation: %v", ErrInternal, err)
	}

	if reservation.CustomerID != requesterID {
		uc.logger.Warn("CancelReservation: access denied for customer=%d to reservation id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		uc.logger.Warn("CancelReservation: reservation id=%d is already cancelled", id)
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
