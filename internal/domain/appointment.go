package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInProcess AppointmentStatus = "in_process"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked time range in a provider's schedule
type Appointment struct {
	ID         int64
	ProviderID int64
	ClientID   *int64
	ServiceID  *int64

	// SeriesID groups instances created by one recurring booking request
	SeriesID *uuid.UUID

	StartAt time.Time // UTC
	EndAt   time.Time // UTC
	Status  AppointmentStatus

	// Denormalized data for history
	ServiceTitle *string
	PriceCharged *float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the occupied time range
func (a *Appointment) Interval() TimeInterval {
	return TimeInterval{Start: a.StartAt, End: a.EndAt}
}

// IsActive returns true if the appointment occupies its time range.
// Only cancelled appointments free their slot; in_process counts as busy.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed || a.Status == StatusInProcess
}

// CanBeRescheduled returns true if the appointment interval can be changed
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusConfirmed
}

// ValidStatusTransition reports whether a status change is allowed.
// Cancelled is terminal; cancellation itself goes through Cancel, not here.
func ValidStatusTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusConfirmed:
		return to == StatusInProcess
	case StatusInProcess:
		return to == StatusConfirmed
	default:
		return false
	}
}

// ProviderAppointmentsFilter фильтр для выборки записей провайдера
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (опционально)
	To              *time.Time         // Конец периода (опционально)
	ClientID        *int64             // Фильтр по клиенту (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
