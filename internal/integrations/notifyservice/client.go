package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// AppointmentCreated отправляет уведомление о созданной записи
func (c *Client) AppointmentCreated(ctx context.Context, appointment *domain.Appointment) error {
	return c.sendEvent(ctx, appointmentEvent(EventAppointmentCreated, appointment, nil))
}

// AppointmentRescheduled отправляет уведомление о перенесённой записи
func (c *Client) AppointmentRescheduled(ctx context.Context, appointment *domain.Appointment) error {
	return c.sendEvent(ctx, appointmentEvent(EventAppointmentRescheduled, appointment, nil))
}

// AppointmentCancelled отправляет уведомление об отменённой записи
func (c *Client) AppointmentCancelled(ctx context.Context, appointment *domain.Appointment, reason string) error {
	return c.sendEvent(ctx, appointmentEvent(EventAppointmentCancelled, appointment, &reason))
}

// SeriesCreated отправляет уведомление о созданной серии записей
func (c *Client) SeriesCreated(ctx context.Context, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	first := appointments[0]
	event := SeriesEvent{
		Event:       EventSeriesCreated,
		ProviderID:  first.ProviderID,
		ClientID:    first.ClientID,
		Occurrences: make([]AppointmentEvent, len(appointments)),
		OccurredAt:  time.Now().UTC(),
	}
	if first.SeriesID != nil {
		event.SeriesID = first.SeriesID.String()
	}
	for i, appointment := range appointments {
		event.Occurrences[i] = appointmentEvent(EventAppointmentCreated, appointment, nil)
	}

	return c.post(ctx, event)
}

// sendEvent отправляет одно событие записи
func (c *Client) sendEvent(ctx context.Context, event AppointmentEvent) error {
	return c.post(ctx, event)
}

// post выполняет POST запрос к NotifyService
// Любая ошибка транспорта превращается в ErrServiceDegraded:
// уведомления не критичны для основного потока
func (c *Client) post(ctx context.Context, payload interface{}) error {
	url := fmt.Sprintf("%s/internal/notifications/events", c.baseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("NotifyService unavailable, applying graceful degradation: %v", err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Error("NotifyService returned status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}
}

// appointmentEvent собирает событие из domain модели
func appointmentEvent(eventType string, appointment *domain.Appointment, reason *string) AppointmentEvent {
	event := AppointmentEvent{
		Event:         eventType,
		AppointmentID: appointment.ID,
		ProviderID:    appointment.ProviderID,
		ClientID:      appointment.ClientID,
		StartAt:       appointment.StartAt,
		EndAt:         appointment.EndAt,
		ServiceTitle:  appointment.ServiceTitle,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	if appointment.SeriesID != nil {
		seriesStr := appointment.SeriesID.String()
		event.SeriesID = &seriesStr
	}
	return event
}
