package check_availability

import (
	"time"

	"github.com/m04kA/POS-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/POS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	ServiceID  int64  `json:"serviceId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	Date       string `json:"date"`      // "2026-09-15"
	StartTime  string `json:"startTime"` // "10:00"
}

// CheckAvailabilityResponse HTTP response model.
// При отказе violations содержит полный набор нарушенных правил.
type CheckAvailabilityResponse struct {
	Available  bool     `json:"available"`
	Violations []string `json:"violations,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
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

	return &checkAvailability.Request{
		ServiceID:  r.ServiceID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{Available: resp.Available}
	if resp.Violation != nil {
		out.Violations = resp.Violation.Reasons()
	}
	return out
}
