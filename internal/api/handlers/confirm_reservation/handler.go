package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/POS-ReservationService/internal/api/handlers"
	confirmReservation "github.com/m04kA/POS-ReservationService/internal/usecase/confirm_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные входные данные"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgEmployeeInactive   = "сотрудник не активен"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
)

type Handler struct {
	useCase ConfirmReservationUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Нарушение правил доступности - отдаем полный набор причин
		var violationErr *confirmReservation.RuleViolationError
		if errors.As(err, &violationErr) {
			h.logger.Warn("POST /reservations - Slot not available: customer_id=%d, service_id=%d, violations=%v",
				req.CustomerID, req.ServiceID, violationErr.Violation.Reasons())
			handlers.RespondJSON(w, http.StatusConflict, &ViolationResponse{
				Error:      msgSlotNotAvailable,
				Violations: violationErr.Violation.Reasons(),
			})
			return
		}

		switch {
		case errors.Is(err, confirmReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, confirmReservation.ErrEmployeeNotFound):
			h.logger.Warn("POST /reservations - Employee not found: customer_id=%d, service_id=%d", req.CustomerID, req.ServiceID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, confirmReservation.ErrEmployeeInactive):
			h.logger.Warn("POST /reservations - Employee inactive: customer_id=%d, service_id=%d", req.CustomerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgEmployeeInactive)

		case errors.Is(err, confirmReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: customer_id=%d, service_id=%d", req.CustomerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, confirmReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: customer_id=%d, service_id=%d", req.CustomerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, confirmReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d, service_id=%d, error=%v",
				req.CustomerID, req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to confirm reservation: customer_id=%d, service_id=%d, error=%v",
				req.CustomerID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation confirmed: reservation_id=%d, customer_id=%d, service_id=%d",
		result.ID, req.CustomerID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
