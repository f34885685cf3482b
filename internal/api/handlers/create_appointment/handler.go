package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
	createAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат времени начала, ожидается ISO 8601"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgScheduleNotFound    = "расписание провайдера не найдено"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceNotOwned     = "услуга принадлежит другому провайдеру"
	msgDateInPast          = "время начала записи уже прошло"
	msgOutsideAvailability = "запрашиваемое время вне рабочих часов провайдера"
	msgDoubleBooked        = "запрашиваемое время уже занято"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт бронирования отдаём с деталями: причиной и, по возможности,
		// ближайшим свободным интервалом либо конфликтующим диапазоном
		var conflict *scheduling.Conflict
		if errors.As(err, &conflict) {
			message := msgDoubleBooked
			if conflict.Reason == scheduling.ReasonOutsideAvailability {
				message = msgOutsideAvailability
			}
			h.logger.Warn("POST /appointments - Booking conflict: client_id=%d, provider_id=%d, reason=%s",
				clientID, req.ProviderID, conflict.Reason)
			handlers.RespondBookingConflict(w, message, conflict)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrScheduleNotFound):
			h.logger.Warn("POST /appointments - Schedule not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotOwned):
			h.logger.Warn("POST /appointments - Service not owned: provider_id=%d", req.ProviderID)
			handlers.RespondBadRequest(w, msgServiceNotOwned)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Start in past: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, provider_id=%d, error=%v",
				clientID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, provider_id=%d",
		result.ID, clientID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
