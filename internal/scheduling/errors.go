package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

var (
	// ErrOutsideAvailability возвращается, когда интервал выходит за рабочие часы,
	// попадает в перерыв или на нерабочий день
	ErrOutsideAvailability = errors.New("scheduling: interval is outside provider availability")

	// ErrDoubleBooked возвращается при пересечении с существующей активной записью
	ErrDoubleBooked = errors.New("scheduling: interval overlaps an existing appointment")

	// ErrRecurrenceBatchConflict возвращается, когда хотя бы один экземпляр серии
	// не прошёл валидацию; ни один экземпляр при этом не создаётся
	ErrRecurrenceBatchConflict = errors.New("scheduling: recurrence batch has conflicts")

	// ErrInvalidRecurrence возвращается при некорректных параметрах серии
	ErrInvalidRecurrence = errors.New("scheduling: invalid recurrence parameters")
)

// ConflictReason причина отказа Conflict Guard
type ConflictReason string

const (
	ReasonOutsideAvailability ConflictReason = "outside_availability"
	ReasonDoubleBooked        ConflictReason = "double_booked"
)

// Conflict типизированная ошибка валидации бронирования
// Для double_booked содержит диапазон конфликтующей записи (без её id,
// чтобы не раскрывать чужие данные), для outside_availability - ближайший
// открытый интервал, если он есть
type Conflict struct {
	Reason      ConflictReason
	Proposed    domain.TimeInterval
	Conflicting *domain.TimeInterval
	NearestOpen *domain.TimeInterval
}

// Error реализует error
func (c *Conflict) Error() string {
	switch c.Reason {
	case ReasonDoubleBooked:
		if c.Conflicting != nil {
			return fmt.Sprintf("%v: conflicts with %s", ErrDoubleBooked, c.Conflicting)
		}
		return ErrDoubleBooked.Error()
	case ReasonOutsideAvailability:
		if c.NearestOpen != nil {
			return fmt.Sprintf("%v: nearest open interval %s", ErrOutsideAvailability, c.NearestOpen)
		}
		return ErrOutsideAvailability.Error()
	default:
		return fmt.Sprintf("scheduling: conflict %s", c.Reason)
	}
}

// Unwrap позволяет проверять причину через errors.Is
func (c *Conflict) Unwrap() error {
	switch c.Reason {
	case ReasonDoubleBooked:
		return ErrDoubleBooked
	case ReasonOutsideAvailability:
		return ErrOutsideAvailability
	default:
		return nil
	}
}

// DateConflict конфликт одного экземпляра серии
type DateConflict struct {
	Date     time.Time // дата экземпляра (локальная дата провайдера)
	Conflict *Conflict
}

// BatchConflictError список конфликтов по датам при валидации серии
type BatchConflictError struct {
	Conflicts []DateConflict
}

// Error реализует error
func (e *BatchConflictError) Error() string {
	dates := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		dates[i] = c.Date.Format(domain.DateFormat)
	}
	return fmt.Sprintf("%v: %s", ErrRecurrenceBatchConflict, strings.Join(dates, ", "))
}

// Unwrap позволяет проверять ошибку через errors.Is
func (e *BatchConflictError) Unwrap() error {
	return ErrRecurrenceBatchConflict
}
