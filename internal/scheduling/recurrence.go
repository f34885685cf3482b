package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ExpandSeries разворачивает повторяющуюся запись в конкретные интервалы.
//
// Для каждой даты от даты начала base до until включительно, чей день недели
// входит в weekdays, создаётся интервал с тем же локальным временем начала
// и той же длительностью, что у base. Время суток сохраняется в зоне loc,
// поэтому при переходе на летнее/зимнее время слоты не съезжают.
func ExpandSeries(
	base domain.TimeInterval,
	weekdays map[time.Weekday]bool,
	until time.Time,
	loc *time.Location,
) ([]domain.TimeInterval, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("%w: at least one weekday is required", ErrInvalidRecurrence)
	}

	localStart := base.Start.In(loc)
	startDate := dateOnly(localStart)
	untilDate := anchorDate(until, loc)

	if untilDate.Before(startDate) {
		return nil, fmt.Errorf("%w: until date is before series start", ErrInvalidRecurrence)
	}
	if untilDate.Sub(startDate) > domain.MaxRecurrenceSpanDays*24*time.Hour {
		return nil, fmt.Errorf("%w: series longer than %d days", ErrInvalidRecurrence, domain.MaxRecurrenceSpanDays)
	}

	hour, minute := localStart.Hour(), localStart.Minute()
	duration := base.Duration()

	instances := make([]domain.TimeInterval, 0)
	for date := startDate; !date.After(untilDate); date = date.AddDate(0, 0, 1) {
		if !weekdays[date.Weekday()] {
			continue
		}
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
		instances = append(instances, domain.TimeInterval{
			Start: start.UTC(),
			End:   start.Add(duration).UTC(),
		})
	}

	return instances, nil
}

// ValidateSeries прогоняет каждый экземпляр серии через ValidateBooking,
// собирая ВСЕ конфликты, а не только первый.
//
// Политика - всё или ничего: при любом конфликте возвращается
// *BatchConflictError со списком дат и причин, и ни один экземпляр не должен
// быть создан. Частичное создание серии с "дырами" запрещено.
func ValidateSeries(availability *Availability, ledger *Ledger, instances []domain.TimeInterval) error {
	loc := availability.Location()
	conflicts := make([]DateConflict, 0)

	for _, instance := range instances {
		err := ValidateBooking(availability, ledger, instance)
		if err == nil {
			continue
		}

		conflict, ok := err.(*Conflict)
		if !ok {
			// не конфликт, а ошибка данных - отдаём сразу
			return err
		}

		conflicts = append(conflicts, DateConflict{
			Date:     dateOnly(instance.Start.In(loc)),
			Conflict: conflict,
		})
	}

	if len(conflicts) > 0 {
		return &BatchConflictError{Conflicts: conflicts}
	}

	return nil
}
