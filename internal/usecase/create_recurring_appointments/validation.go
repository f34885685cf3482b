package create_recurring_appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.Until.IsZero() {
		return fmt.Errorf("%w: until is required", ErrInvalidInput)
	}

	if len(req.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}

	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
	}

	// Длительность либо приходит явно, либо берётся из услуги
	if req.DurationMinutes == nil && req.ServiceID == nil {
		return fmt.Errorf("%w: either durationMinutes or serviceID is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return err
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}

// validateDuration проверяет, что длительность записи в допустимых пределах
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}

// validateNotInPast проверяет, что серия начинается в будущем
func validateNotInPast(startAt, now time.Time) error {
	if startAt.Before(now) {
		return ErrDateInPast
	}
	return nil
}

// toWeekdaySet конвертирует список дней недели в множество
func toWeekdaySet(weekdays []int) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		set[time.Weekday(wd)] = true
	}
	return set
}
