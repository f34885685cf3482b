package create_recurring_appointments

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createRecurring "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_recurring_appointments"
)

// CreateRecurringRequest HTTP request model
type CreateRecurringRequest struct {
	ProviderID      int64   `json:"providerId"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	StartAt         string  `json:"startAt"` // ISO 8601, начало первой записи
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Weekdays        []int   `json:"weekdays"` // 0 = воскресенье ... 6 = суббота
	Until           string  `json:"until"`    // "2025-12-31", последняя дата серии
	Notes           *string `json:"notes,omitempty"`
}

// OccurrenceDTO одна запись серии
type OccurrenceDTO struct {
	ID      int64  `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// RecurringResponse HTTP response model
type RecurringResponse struct {
	SeriesID    string          `json:"seriesId"`
	ProviderID  int64           `json:"providerId"`
	ClientID    int64           `json:"clientId"`
	Status      string          `json:"status"`
	Occurrences []OccurrenceDTO `json:"occurrences"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringRequest) ToUseCaseRequest(clientID int64) (*createRecurring.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	until, err := time.ParseInLocation(domain.DateFormat, r.Until, time.UTC)
	if err != nil {
		return nil, err
	}

	return &createRecurring.Request{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		StartAt:         startAt.UTC(),
		DurationMinutes: r.DurationMinutes,
		Weekdays:        r.Weekdays,
		Until:           until,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringResponse {
	out := &RecurringResponse{
		SeriesID:    resp.SeriesID,
		ProviderID:  resp.ProviderID,
		ClientID:    resp.ClientID,
		Status:      resp.Status,
		Occurrences: make([]OccurrenceDTO, len(resp.Occurrences)),
	}
	for i, occ := range resp.Occurrences {
		out.Occurrences[i] = OccurrenceDTO{
			ID:      occ.ID,
			StartAt: occ.StartAt.Format(time.RFC3339),
			EndAt:   occ.EndAt.Format(time.RFC3339),
		}
	}
	return out
}
