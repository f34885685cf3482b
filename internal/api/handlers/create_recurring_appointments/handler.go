package create_recurring_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	createRecurring "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_recurring_appointments"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDates        = "некорректный формат дат, ожидаются startAt в ISO 8601 и until в YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgScheduleNotFound    = "расписание провайдера не найдено"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotOwned     = "услуга принадлежит другому провайдеру"
	msgDateInPast          = "время начала серии уже прошло"
	msgSeriesConflict      = "серия не создана: часть дат конфликтует с расписанием"
	msgOutsideAvailability = "запрашиваемое время вне рабочих часов провайдера"
	msgDoubleBooked        = "запрашиваемое время уже занято"
)

type Handler struct {
	useCase CreateRecurringAppointmentsUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringAppointmentsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments/recurring - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликты серии отдаём все разом: клиент должен видеть каждую
		// проблемную дату, а не узнавать о них по одной
		var batch *scheduling.BatchConflictError
		if errors.As(err, &batch) {
			h.logger.Warn("POST /appointments/recurring - Series conflicts: client_id=%d, provider_id=%d, conflicts=%d",
				clientID, req.ProviderID, len(batch.Conflicts))
			handlers.RespondBatchConflict(w, msgSeriesConflict, batch)
			return
		}

		var conflict *scheduling.Conflict
		if errors.As(err, &conflict) {
			message := msgDoubleBooked
			if conflict.Reason == scheduling.ReasonOutsideAvailability {
				message = msgOutsideAvailability
			}
			h.logger.Warn("POST /appointments/recurring - Booking conflict: client_id=%d, provider_id=%d, reason=%s",
				clientID, req.ProviderID, conflict.Reason)
			handlers.RespondBookingConflict(w, message, conflict)
			return
		}

		switch {
		case errors.Is(err, createRecurring.ErrScheduleNotFound):
			h.logger.Warn("POST /appointments/recurring - Schedule not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createRecurring.ErrServiceNotFound):
			h.logger.Warn("POST /appointments/recurring - Service not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createRecurring.ErrServiceNotOwned):
			h.logger.Warn("POST /appointments/recurring - Service not owned: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgServiceNotOwned)

		case errors.Is(err, createRecurring.ErrDateInPast):
			h.logger.Warn("POST /appointments/recurring - Start in past: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createRecurring.ErrInvalidInput):
			h.logger.Warn("POST /appointments/recurring - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments/recurring - Failed to create series: client_id=%d, provider_id=%d, error=%v",
				clientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/recurring - Series created successfully: series_id=%s, appointments=%d, client_id=%d",
		result.SeriesID, len(result.Occurrences), clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
