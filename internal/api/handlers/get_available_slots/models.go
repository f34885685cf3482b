package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// SlotDTO один доступный слот
type SlotDTO struct {
	StartAt string `json:"startAt"` // ISO 8601, UTC
	EndAt   string `json:"endAt"`   // ISO 8601, UTC
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID      int64     `json:"providerId"`
	Timezone        string    `json:"timezone"`
	DurationMinutes int       `json:"durationMinutes"`
	Slots           []SlotDTO `json:"slots"`
}

// parseQuery собирает запрос use case из query-параметров
func parseQuery(providerID int64, query url.Values) (*getAvailableSlots.Request, error) {
	from, err := time.ParseInLocation(domain.DateFormat, query.Get("from"), time.UTC)
	if err != nil {
		return nil, err
	}

	to, err := time.ParseInLocation(domain.DateFormat, query.Get("to"), time.UTC)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		ProviderID: providerID,
		From:       from,
		To:         to,
	}

	if v := query.Get("durationMinutes"); v != "" {
		duration, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = duration
	}

	if v := query.Get("stepMinutes"); v != "" {
		step, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.StepMinutes = step
	}

	if v := query.Get("serviceId"); v != "" {
		serviceID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		ProviderID:      resp.ProviderID,
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotDTO, len(resp.Slots)),
	}
	for i, slot := range resp.Slots {
		out.Slots[i] = SlotDTO{
			StartAt: slot.StartAt.Format(time.RFC3339),
			EndAt:   slot.EndAt.Format(time.RFC3339),
		}
	}
	return out
}
