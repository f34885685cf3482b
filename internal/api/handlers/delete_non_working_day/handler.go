package delete_non_working_day

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
	msgInvalidDayID      = "некорректный ID нерабочего дня"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "нерабочие дни может изменять только владелец расписания"
	msgDayNotFound       = "нерабочий день не найден"
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

// Handle DELETE /api/v1/providers/{providerId}/non-working-days/{dayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/non-working-days/{dayId} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	dayID, err := strconv.ParseInt(vars["dayId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/non-working-days/{dayId} - Invalid day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if userID != providerID {
		h.logger.Warn("DELETE /providers/{id}/non-working-days/{dayId} - Access denied: provider_id=%d, user_id=%d",
			providerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.DeleteNonWorkingDay(r.Context(), providerID, dayID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrNonWorkingDayNotFound):
			h.logger.Warn("DELETE /providers/{id}/non-working-days/{dayId} - Not found: provider_id=%d, day_id=%d",
				providerID, dayID)
			handlers.RespondNotFound(w, msgDayNotFound)
		default:
			h.logger.Error("DELETE /providers/{id}/non-working-days/{dayId} - Failed to delete non-working day: provider_id=%d, day_id=%d, error=%v",
				providerID, dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /providers/{id}/non-working-days/{dayId} - Non-working day deleted: provider_id=%d, day_id=%d",
		providerID, dayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
