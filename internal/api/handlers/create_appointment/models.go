package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProviderID      int64   `json:"providerId"`
	ServiceID       *int64  `json:"serviceId,omitempty"`
	StartAt         string  `json:"startAt"` // ISO 8601, например "2025-11-03T10:00:00Z"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64    `json:"id"`
	ProviderID   int64    `json:"providerId"`
	ClientID     *int64   `json:"clientId,omitempty"`
	ServiceID    *int64   `json:"serviceId,omitempty"`
	StartAt      string   `json:"startAt"`
	EndAt        string   `json:"endAt"`
	Status       string   `json:"status"`
	ServiceTitle *string  `json:"serviceTitle,omitempty"`
	PriceCharged *float64 `json:"priceCharged,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:        clientID,
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		StartAt:         startAt.UTC(),
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		ProviderID:   resp.ProviderID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		StartAt:      resp.StartAt.Format(time.RFC3339),
		EndAt:        resp.EndAt.Format(time.RFC3339),
		Status:       resp.Status,
		ServiceTitle: resp.ServiceTitle,
		PriceCharged: resp.PriceCharged,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
