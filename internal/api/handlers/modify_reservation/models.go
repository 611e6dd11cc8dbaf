package modify_reservation

import (
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	modifyReservation "github.com/m04kA/POS-ReservationService/internal/usecase/modify_reservation"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// ModifyReservationRequest HTTP request model
type ModifyReservationRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-16"
	NewStartTime string `json:"newStartTime"` // "14:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	CustomerID      int64  `json:"customerId"`
	EmployeeID      *int64 `json:"employeeId,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ViolationResponse HTTP response с полным набором нарушенных правил
type ViolationResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ModifyReservationRequest) ToUseCaseRequest(reservationID, requesterID int64) (*modifyReservation.Request, error) {
	// Парсим дату
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &modifyReservation.Request{
		ReservationID: reservationID,
		RequesterID:   requesterID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *modifyReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		CustomerID:      resp.CustomerID,
		EmployeeID:      resp.EmployeeID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
