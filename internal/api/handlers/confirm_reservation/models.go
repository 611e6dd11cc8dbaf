package confirm_reservation

import (
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	confirmReservation "github.com/m04kA/POS-ReservationService/internal/usecase/confirm_reservation"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// ConfirmReservationRequest HTTP request model
type ConfirmReservationRequest struct {
	ServiceID  int64   `json:"serviceId"`
	CustomerID int64   `json:"customerId"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Date       string  `json:"date"`      // "2026-09-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	CustomerID      int64   `json:"customerId"`
	EmployeeID      *int64  `json:"employeeId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ViolationResponse HTTP response с полным набором нарушенных правил
type ViolationResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmReservationRequest) ToUseCaseRequest() (*confirmReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &confirmReservation.Request{
		ServiceID:  r.ServiceID,
		CustomerID: r.CustomerID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		CustomerID:      resp.CustomerID,
		EmployeeID:      resp.EmployeeID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
