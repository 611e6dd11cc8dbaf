package cancel_reservation

import (
	cancelReservation "github.com/m04kA/POS-ReservationService/internal/usecase/cancel_reservation"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelReservationRequest) ToUseCaseRequest(reservationID, requesterID int64) *cancelReservation.Request {
	return &cancelReservation.Request{
		ReservationID: reservationID,
		RequesterID:   requesterID,
		Reason:        r.Reason,
	}
}
