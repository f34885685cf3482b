package list_non_working_days

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidQuery      = "некорректные параметры запроса, ожидаются даты в формате YYYY-MM-DD"
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

// Handle GET /api/v1/providers/{providerId}/non-working-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/non-working-days - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	req := &models.ListNonWorkingDaysRequest{UserID: providerID}

	query := r.URL.Query()
	if v := query.Get("from"); v != "" {
		from, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/non-working-days - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/non-working-days - Invalid to date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.To = &to
	}

	result, err := h.service.ListNonWorkingDays(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /providers/{id}/non-working-days - Failed to list non-working days: provider_id=%d, error=%v",
			providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/non-working-days - Fetched %d non-working days: provider_id=%d",
		len(result.NonWorkingDays), providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
