package models

import (
	"errors"
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// GetCustomerReservationsRequest запрос истории бронирований клиента
type GetCustomerReservationsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64    `json:"id"`
	ServiceID       int64    `json:"serviceId"`
	CustomerID      int64    `json:"customerId"`
	EmployeeID      *int64   `json:"employeeId,omitempty"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	ServiceName     string   `json:"serviceName"`
	ServicePrice    float64  `json:"servicePrice"`
	Notes           *string  `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt     *string  `json:"cancelledAt,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              r.ID,
		ServiceID:       r.ServiceID,
		CustomerID:      r.CustomerID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		ServiceName:     r.ServiceName,
		ServicePrice:    r.ServicePrice,
		Notes:           r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}

	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{
		Reservations: items,
		Total:        len(items),
	}
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusModified, domain.StatusCancelled:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
