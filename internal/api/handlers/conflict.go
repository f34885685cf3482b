package handlers

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/scheduling"
)

// IntervalDTO интервал времени в ответе API
type IntervalDTO struct {
	StartAt string `json:"startAt"` // ISO 8601, UTC
	EndAt   string `json:"endAt"`   // ISO 8601, UTC
}

// ConflictResponse тело ответа 409 с деталями конфликта бронирования
type ConflictResponse struct {
	Code        int          `json:"code"`
	Message     string       `json:"message"`
	Reason      string       `json:"reason"` // outside_availability или double_booked
	Conflicting *IntervalDTO `json:"conflicting,omitempty"`
	NearestOpen *IntervalDTO `json:"nearestOpen,omitempty"`
}

// DateConflictDTO конфликт одной даты серии
type DateConflictDTO struct {
	Date        string       `json:"date"` // локальная дата провайдера, YYYY-MM-DD
	Reason      string       `json:"reason"`
	Conflicting *IntervalDTO `json:"conflicting,omitempty"`
	NearestOpen *IntervalDTO `json:"nearestOpen,omitempty"`
}

// BatchConflictResponse тело ответа 409 при конфликтах серии
// Серия не создаётся, если конфликтует хотя бы одна дата
type BatchConflictResponse struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Conflicts []DateConflictDTO `json:"conflicts"`
}

// RespondBookingConflict отправляет 409 с деталями конфликта
func RespondBookingConflict(w http.ResponseWriter, message string, conflict *scheduling.Conflict) {
	RespondJSON(w, http.StatusConflict, ConflictResponse{
		Code:        http.StatusConflict,
		Message:     message,
		Reason:      string(conflict.Reason),
		Conflicting: intervalDTO(conflict.Conflicting),
		NearestOpen: intervalDTO(conflict.NearestOpen),
	})
}

// RespondBatchConflict отправляет 409 со списком конфликтов серии
func RespondBatchConflict(w http.ResponseWriter, message string, batch *scheduling.BatchConflictError) {
	conflicts := make([]DateConflictDTO, len(batch.Conflicts))
	for i, dc := range batch.Conflicts {
		conflicts[i] = DateConflictDTO{
			Date:        dc.Date.Format(domain.DateFormat),
			Reason:      string(dc.Conflict.Reason),
			Conflicting: intervalDTO(dc.Conflict.Conflicting),
			NearestOpen: intervalDTO(dc.Conflict.NearestOpen),
		}
	}

	RespondJSON(w, http.StatusConflict, BatchConflictResponse{
		Code:      http.StatusConflict,
		Message:   message,
		Conflicts: conflicts,
	})
}

func intervalDTO(iv *domain.TimeInterval) *IntervalDTO {
	if iv == nil {
		return nil
	}
	return &IntervalDTO{
		StartAt: iv.Start.Format(time.RFC3339),
		EndAt:   iv.End.Format(time.RFC3339),
	}
}
