package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// errInvalidSlotParams возвращается при некорректных параметрах запроса слотов
var errInvalidSlotParams = fmt.Errorf("scheduling: invalid slot parameters")

// ResolveSlots вычисляет доступные для бронирования слоты на диапазон дат
// [from, to] включительно (календарные даты в зоне провайдера).
//
// По каждой дате: открытые интервалы доступности минус занятые интервалы
// леджера; внутри каждого остатка генерируются слоты длительностью
// durationMinutes с шагом stepMinutes. Шаг 0 означает шаг равный длительности
// (слоты без перекрытий). Результат хронологически упорядочен.
func ResolveSlots(
	availability *Availability,
	ledger *Ledger,
	from time.Time,
	to time.Time,
	durationMinutes int,
	stepMinutes int,
) ([]domain.TimeInterval, error) {
	if err := validateSlotParams(from, to, durationMinutes, stepMinutes); err != nil {
		return nil, err
	}

	if stepMinutes == 0 {
		stepMinutes = durationMinutes
	}
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute

	loc := availability.Location()
	fromDate := anchorDate(from, loc)
	toDate := anchorDate(to, loc)

	slots := make([]domain.TimeInterval, 0)

	for date := fromDate; !date.After(toDate); date = date.AddDate(0, 0, 1) {
		open, err := availability.OpenIntervals(date)
		if err != nil {
			return nil, err
		}

		for _, iv := range open {
			free, err := domain.Subtract(iv, ledger.BusyWithin(iv))
			if err != nil {
				return nil, err
			}

			for _, residual := range free {
				// Остаток короче длительности услуги не даёт ни одного слота
				for start := residual.Start; !start.Add(duration).After(residual.End); start = start.Add(step) {
					slots = append(slots, domain.TimeInterval{Start: start, End: start.Add(duration)})
				}
			}
		}
	}

	return slots, nil
}

func validateSlotParams(from, to time.Time, durationMinutes, stepMinutes int) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: date range is required", errInvalidSlotParams)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: range end before start", errInvalidSlotParams)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", errInvalidSlotParams)
	}
	if stepMinutes < 0 {
		return fmt.Errorf("%w: step must not be negative", errInvalidSlotParams)
	}
	return nil
}

// dateOnly обнуляет время, оставляя календарную дату в той же зоне
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// anchorDate трактует компоненты Y/M/D времени t как календарную дату в зоне
// loc, не конвертируя сам инстант. Дата запроса не зависит от того, в какой
// зоне она была распарсена
func anchorDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
