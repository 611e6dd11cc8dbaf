package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/POS-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/POS-ReservationService/internal/service/reservations/models"
)

// Service read-side сервис бронирований: карточка и история.
// Записи проходят только через lifecycle usecases, сервис их не мутирует.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: repo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент может видеть только своё бронирование.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for customer=%d", id, requesterID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.CustomerID != requesterID {
		s.logger.Warn("GetByID: access denied for customer=%d to reservation id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetCustomerReservations получает историю бронирований клиента.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerReservations(ctx context.Context, req *models.GetCustomerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerReservations: fetching reservations for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	filter := domain.ReservationFilter{
		CustomerID:      &req.CustomerID,
		IncludeInactive: true, // История включает отмененные
	}

	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerReservations: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerReservations: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerReservations: successfully fetched %d reservations for customer=%d",
		len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}
