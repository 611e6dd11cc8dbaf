package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/POS-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/POS-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные входные данные"
	msgServiceNotFound    = "услуга не найдена"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgEmployeeInactive   = "сотрудник не активен"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /availability/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("POST /availability/check - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkAvailability.ErrEmployeeNotFound):
			h.logger.Warn("POST /availability/check - Employee not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, checkAvailability.ErrEmployeeInactive):
			h.logger.Warn("POST /availability/check - Employee inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgEmployeeInactive)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/check - Invalid input: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability/check - Failed to check availability: service_id=%d, error=%v",
				req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/check - Checked: service_id=%d, date=%s, time=%s, available=%t",
		req.ServiceID, req.Date, req.StartTime, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
