package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	// Диапазон ограничен, чтобы не строить расписание на год вперёд
	if req.To.Sub(req.From) > time.Duration(domain.MaxSlotsRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range may not exceed %d days", ErrRangeTooLarge, domain.MaxSlotsRangeDays)
	}

	// Длительность либо приходит явно, либо берётся из услуги
	if req.ServiceID == nil {
		if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.StepMinutes < 0 {
		return fmt.Errorf("%w: stepMinutes must not be negative", ErrInvalidInput)
	}

	return nil
}
