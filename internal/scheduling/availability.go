package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Availability модель доступности провайдера: недельное расписание плюс
// исключения-нерабочие дни, свёрнутые в открытые интервалы по датам.
//
// Экземпляр строится на один запрос; memo действует только в его пределах —
// межзапросного кеширования нет, данные могут меняться между запросами.
type Availability struct {
	week       *domain.WeeklySchedule
	loc        *time.Location
	nonWorking map[string]struct{}
	memo       map[string][]domain.TimeInterval
}

// NewAvailability строит модель доступности из недельного расписания
// и списка нерабочих дней провайдера
func NewAvailability(week *domain.WeeklySchedule, nonWorkingDays []*domain.NonWorkingDay) (*Availability, error) {
	if err := week.Validate(); err != nil {
		return nil, err
	}
	loc, err := week.Location()
	if err != nil {
		return nil, err
	}

	nonWorking := make(map[string]struct{}, len(nonWorkingDays))
	for _, d := range nonWorkingDays {
		nonWorking[d.Date.Format(domain.DateFormat)] = struct{}{}
	}

	return &Availability{
		week:       week,
		loc:        loc,
		nonWorking: nonWorking,
		memo:       make(map[string][]domain.TimeInterval),
	}, nil
}

// Location возвращает зону провайдера
func (a *Availability) Location() *time.Location {
	return a.loc
}

// OpenIntervals возвращает упорядоченные открытые интервалы на указанную
// календарную дату (в зоне провайдера). Пустой список означает нерабочий день.
// Границы интервалов - UTC-моменты; вся дальнейшая арифметика идёт в UTC.
func (a *Availability) OpenIntervals(date time.Time) ([]domain.TimeInterval, error) {
	key := date.In(a.loc).Format(domain.DateFormat)
	if cached, ok := a.memo[key]; ok {
		return cached, nil
	}

	intervals, err := a.buildOpenIntervals(date.In(a.loc))
	if err != nil {
		return nil, err
	}

	a.memo[key] = intervals
	return intervals, nil
}

func (a *Availability) buildOpenIntervals(localDate time.Time) ([]domain.TimeInterval, error) {
	// Исключение-нерабочий день перекрывает недельное расписание целиком
	if _, blocked := a.nonWorking[localDate.Format(domain.DateFormat)]; blocked {
		return []domain.TimeInterval{}, nil
	}

	day := a.week.Day(localDate.Weekday())
	if !day.IsWorkingDay {
		return []domain.TimeInterval{}, nil
	}

	start, err := day.StartTime.At(localDate, a.loc)
	if err != nil {
		return nil, fmt.Errorf("resolve day start: %w", err)
	}
	end, err := day.EndTime.At(localDate, a.loc)
	if err != nil {
		return nil, fmt.Errorf("resolve day end: %w", err)
	}

	workday, err := domain.NewTimeInterval(start, end)
	if err != nil {
		return nil, err
	}

	if !day.HasBreak() {
		return []domain.TimeInterval{workday}, nil
	}

	breakStart, err := day.BreakStart.At(localDate, a.loc)
	if err != nil {
		return nil, fmt.Errorf("resolve break start: %w", err)
	}
	breakEnd, err := day.BreakEnd.At(localDate, a.loc)
	if err != nil {
		return nil, fmt.Errorf("resolve break end: %w", err)
	}

	breakWindow, err := domain.NewTimeInterval(breakStart, breakEnd)
	if err != nil {
		return nil, err
	}

	return domain.Subtract(workday, []domain.TimeInterval{breakWindow})
}
