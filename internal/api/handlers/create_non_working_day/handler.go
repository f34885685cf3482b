package create_non_working_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDate       = "некорректная дата, ожидается формат YYYY-MM-DD"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "нерабочие дни может изменять только владелец расписания"
	msgAlreadyExists     = "нерабочий день на эту дату уже существует"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/non-working-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /providers/{id}/non-working-days - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != providerID {
		h.logger.Warn("POST /providers/{id}/non-working-days - Access denied: provider_id=%d, user_id=%d",
			providerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req CreateNonWorkingDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/non-working-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateNonWorkingDay(r.Context(), req.ToServiceRequest(providerID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNonWorkingDayExists):
			h.logger.Warn("POST /providers/{id}/non-working-days - Duplicate date: provider_id=%d, date=%s",
				providerID, req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /providers/{id}/non-working-days - Invalid input: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("POST /providers/{id}/non-working-days - Failed to create non-working day: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/{id}/non-working-days - Non-working day created: provider_id=%d, date=%s",
		providerID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
