package scheduling

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ValidateBooking проверяет предлагаемый интервал записи.
// Проверки выполняются по порядку с остановкой на первой ошибке:
//  1. интервал корректен (start < end), иначе domain.ErrInvalidInterval
//  2. интервал целиком лежит в открытом интервале доступности,
//     иначе *Conflict с причиной outside_availability
//  3. интервал не пересекает занятые интервалы леджера,
//     иначе *Conflict с причиной double_booked
//
// Это оптимистичная предпроверка для быстрого отказа; финальную гарантию
// от гонок даёт exclusion constraint в хранилище, срабатывающий на коммите.
func ValidateBooking(availability *Availability, ledger *Ledger, proposed domain.TimeInterval) error {
	if err := proposed.Validate(); err != nil {
		return err
	}

	open, err := availability.OpenIntervals(proposed.Start.In(availability.Location()))
	if err != nil {
		return err
	}

	if !containedInAny(open, proposed) {
		conflict := &Conflict{
			Reason:   ReasonOutsideAvailability,
			Proposed: proposed,
		}
		if nearest, ok := nearestOpenInterval(open, proposed); ok {
			conflict.NearestOpen = &nearest
		}
		return conflict
	}

	if busy, ok := ledger.FirstOverlap(proposed); ok {
		return &Conflict{
			Reason:      ReasonDoubleBooked,
			Proposed:    proposed,
			Conflicting: &busy,
		}
	}

	return nil
}

func containedInAny(open []domain.TimeInterval, proposed domain.TimeInterval) bool {
	for _, iv := range open {
		if iv.Contains(proposed) {
			return true
		}
	}
	return false
}

// nearestOpenInterval возвращает открытый интервал, ближайший к предложенному
// по расстоянию между началами
func nearestOpenInterval(open []domain.TimeInterval, proposed domain.TimeInterval) (domain.TimeInterval, bool) {
	if len(open) == 0 {
		return domain.TimeInterval{}, false
	}

	nearest := open[0]
	best := absDuration(proposed.Start.Sub(nearest.Start))
	for _, iv := range open[1:] {
		if d := absDuration(proposed.Start.Sub(iv.Start)); d < best {
			nearest = iv
			best = d
		}
	}
	return nearest, true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
