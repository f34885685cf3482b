package reschedule_appointment

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	return nil
}

// validateNotInPast проверяет, что новое время начала в будущем
func validateNotInPast(startAt, now time.Time) error {
	if startAt.Before(now) {
		return ErrDateInPast
	}
	return nil
}
