package notifyservice

import "time"

// Event типы событий, отправляемых в NotifyService
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventSeriesCreated          = "appointment.series_created"
)

// AppointmentEvent уведомление об изменении записи
type AppointmentEvent struct {
	Event         string    `json:"event"`
	AppointmentID int64     `json:"appointment_id"`
	SeriesID      *string   `json:"series_id,omitempty"`
	ProviderID    int64     `json:"provider_id"`
	ClientID      *int64    `json:"client_id,omitempty"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	ServiceTitle  *string   `json:"service_title,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// SeriesEvent уведомление о созданной серии записей
type SeriesEvent struct {
	Event       string             `json:"event"`
	SeriesID    string             `json:"series_id"`
	ProviderID  int64              `json:"provider_id"`
	ClientID    *int64             `json:"client_id,omitempty"`
	Occurrences []AppointmentEvent `json:"occurrences"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
