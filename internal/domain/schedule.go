package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrInvalidSchedule is returned when a day schedule violates its invariants
	ErrInvalidSchedule = errors.New("invalid day schedule")

	// ErrInvalidTimezone is returned for an unknown IANA timezone name
	ErrInvalidTimezone = errors.New("invalid timezone")
)

// DaySchedule describes working hours for one day of week.
// A day record is always replaced whole; individual time fields are never
// merged from partial updates.
type DaySchedule struct {
	Weekday      time.Weekday
	IsWorkingDay bool
	StartTime    types.TimeString
	EndTime      types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
}

// Validate checks the day schedule invariants:
// start < end for working days, and start <= breakStart < breakEnd <= end
// when a break window is present
func (d *DaySchedule) Validate() error {
	if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, d.Weekday)
	}

	if !d.IsWorkingDay {
		return nil
	}

	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidSchedule, err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidSchedule, err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSchedule, d.StartTime, d.EndTime)
	}

	if (d.BreakStart == nil) != (d.BreakEnd == nil) {
		return fmt.Errorf("%w: break window must set both start and end", ErrInvalidSchedule)
	}
	if d.BreakStart == nil {
		return nil
	}

	if err := d.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
	}
	if err := d.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
	}
	if d.BreakStart.IsBefore(d.StartTime) {
		return fmt.Errorf("%w: break start %s before working day start %s", ErrInvalidSchedule, *d.BreakStart, d.StartTime)
	}
	if !d.BreakStart.IsBefore(*d.BreakEnd) {
		return fmt.Errorf("%w: break start %s must be before break end %s", ErrInvalidSchedule, *d.BreakStart, *d.BreakEnd)
	}
	if d.EndTime.IsBefore(*d.BreakEnd) {
		return fmt.Errorf("%w: break end %s after working day end %s", ErrInvalidSchedule, *d.BreakEnd, d.EndTime)
	}

	return nil
}

// HasBreak returns true if the day has a break window
func (d *DaySchedule) HasBreak() bool {
	return d.IsWorkingDay && d.BreakStart != nil && d.BreakEnd != nil
}

// WeeklySchedule is a provider's full week of working hours.
// Times of day are interpreted in the provider's IANA timezone.
type WeeklySchedule struct {
	UserID   int64
	Timezone string
	Days     [7]DaySchedule // indexed by time.Weekday
}

// Validate checks every day record and the timezone name
func (w *WeeklySchedule) Validate() error {
	if _, err := w.Location(); err != nil {
		return err
	}
	for i := range w.Days {
		if w.Days[i].Weekday != time.Weekday(i) {
			return fmt.Errorf("%w: day at index %d has weekday %d", ErrInvalidSchedule, i, w.Days[i].Weekday)
		}
		if err := w.Days[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Location resolves the provider's timezone, defaulting to UTC when unset
func (w *WeeklySchedule) Location() (*time.Location, error) {
	if w.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, w.Timezone)
	}
	return loc, nil
}

// Day returns the schedule record for the given weekday
func (w *WeeklySchedule) Day(weekday time.Weekday) DaySchedule {
	return w.Days[int(weekday)]
}

// NonWorkingDay is a full-day exception overriding the weekly schedule
// for one calendar date
type NonWorkingDay struct {
	ID          int64
	UserID      int64
	Date        time.Time // calendar date, time part ignored
	Description string
	CreatedAt   time.Time
}
