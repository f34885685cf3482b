package get_provider_appointments

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/appointments/models"
)

// parseQuery собирает запрос сервиса из query-параметров
// Поддерживаются фильтры from, to (YYYY-MM-DD), clientId, status, includeInactive
func parseQuery(userID, providerID int64, query url.Values) (*models.GetProviderAppointmentsRequest, error) {
	req := &models.GetProviderAppointmentsRequest{
		UserID:     userID,
		ProviderID: providerID,
	}

	if v := query.Get("from"); v != "" {
		from, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.ParseInLocation(domain.DateFormat, v, time.UTC)
		if err != nil {
			return nil, err
		}
		// Верхняя граница дня включается в выборку
		toEnd := to.AddDate(0, 0, 1)
		req.To = &toEnd
	}

	if v := query.Get("clientId"); v != "" {
		clientID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ClientID = &clientID
	}

	if v := query.Get("status"); v != "" {
		status := v
		req.Status = &status
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
