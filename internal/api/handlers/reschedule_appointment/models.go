package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/m04kA/SMC-ScheduleService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	StartAt string `json:"startAt"` // ISO 8601, новое время начала
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
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(userID, appointmentID int64) (*rescheduleAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		StartAt:       startAt.UTC(),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
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
