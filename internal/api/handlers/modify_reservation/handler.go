package modify_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/POS-ReservationService/internal/api/handlers"
	"github.com/m04kA/POS-ReservationService/internal/api/middleware"
	modifyReservation "github.com/m04kA/POS-ReservationService/internal/usecase/modify_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput         = "некорректные входные данные"
	msgNotFound             = "бронирование не найдено"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgAlreadyCancelled     = "бронирование уже отменено"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgServiceNotFound      = "услуга не найдена"
	msgEmployeeNotFound     = "сотрудник не найден"
	msgEmployeeInactive     = "сотрудник не активен"
)

type Handler struct {
	useCase ModifyReservationUseCase
	logger  Logger
}

func NewHandler(useCase ModifyReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req ModifyReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case
	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Нарушение правил доступности - отдаем полный набор причин
		var violationErr *modifyReservation.RuleViolationError
		if errors.As(err, &violationErr) {
			h.logger.Warn("PATCH /reservations/{id} - Slot not available: reservation_id=%d, violations=%v",
				reservationID, violationErr.Violation.Reasons())
			handlers.RespondJSON(w, http.StatusConflict, &ViolationResponse{
				Error:      msgSlotNotAvailable,
				Violations: violationErr.Violation.Reasons(),
			})
			return
		}

		switch {
		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id} - Access denied: user_id=%d, reservation_id=%d", userID, reservationID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, modifyReservation.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /reservations/{id} - Already cancelled: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, modifyReservation.ErrServiceNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Service not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, modifyReservation.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Employee not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, modifyReservation.ErrEmployeeInactive):
			h.logger.Warn("PATCH /reservations/{id} - Employee inactive: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgEmployeeInactive)

		case errors.Is(err, modifyReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id} - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to modify reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /reservations/{id} - Reservation modified: reservation_id=%d, new_date=%s, new_time=%s",
		result.ID, req.NewDate, req.NewStartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
