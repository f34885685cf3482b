package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func TestAvailability_WorkingDayWithBreak(t *testing.T) {
	av := mustAvailability(testWeek(), nil)

	open, err := av.OpenIntervals(monday(0, 0))
	require.NoError(t, err)

	assert.Equal(t, []domain.TimeInterval{
		{Start: monday(9, 0), End: monday(13, 0)},
		{Start: monday(14, 0), End: monday(17, 0)},
	}, open)
}

func TestAvailability_IntervalsSortedAndDisjoint(t *testing.T) {
	av := mustAvailability(testWeek(), nil)

	open, err := av.OpenIntervals(monday(0, 0))
	require.NoError(t, err)

	for i := 1; i < len(open); i++ {
		assert.True(t, open[i-1].End.Before(open[i].Start) || open[i-1].End.Equal(open[i].Start),
			"intervals must be ordered")
		assert.False(t, open[i-1].Overlaps(open[i]), "intervals must not overlap")
	}
}

func TestAvailability_NonWorkingWeekday(t *testing.T) {
	av := mustAvailability(testWeek(), nil)

	// 2025-11-02 воскресенье
	sunday := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	open, err := av.OpenIntervals(sunday)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAvailability_NonWorkingDayOverridesSchedule(t *testing.T) {
	// 2024-12-25 среда - по недельному расписанию рабочий день
	christmas := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	exceptions := []*domain.NonWorkingDay{
		{UserID: 42, Date: christmas, Description: "Christmas"},
	}
	av := mustAvailability(testWeek(), exceptions)

	open, err := av.OpenIntervals(christmas)
	require.NoError(t, err)
	assert.Empty(t, open)

	// Та же среда неделей раньше остаётся рабочей
	regularWednesday := christmas.AddDate(0, 0, -7)
	open, err = av.OpenIntervals(regularWednesday)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestAvailability_NoBreak(t *testing.T) {
	week := testWeek()
	week.Days[int(time.Monday)].BreakStart = nil
	week.Days[int(time.Monday)].BreakEnd = nil
	av := mustAvailability(week, nil)

	open, err := av.OpenIntervals(monday(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeInterval{
		{Start: monday(9, 0), End: monday(17, 0)},
	}, open)
}

func TestNewAvailability_InvalidSchedule(t *testing.T) {
	week := testWeek()
	week.Days[int(time.Monday)].EndTime = "08:00" // конец раньше начала

	_, err := NewAvailability(week, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestNewAvailability_InvalidTimezone(t *testing.T) {
	week := testWeek()
	week.Timezone = "Mars/Olympus"

	_, err := NewAvailability(week, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}

func TestAvailability_MemoReturnsSameResult(t *testing.T) {
	av := mustAvailability(testWeek(), nil)

	first, err := av.OpenIntervals(monday(0, 0))
	require.NoError(t, err)
	second, err := av.OpenIntervals(monday(0, 0))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailability_LocalTimezoneBoundaries(t *testing.T) {
	week := testWeek()
	week.Timezone = "Europe/Moscow" // UTC+3, без переходов

	av := mustAvailability(week, nil)

	open, err := av.OpenIntervals(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, open, 2)

	// 09:00 по Москве = 06:00 UTC
	assert.True(t, open[0].Start.Equal(time.Date(2025, 11, 3, 6, 0, 0, 0, time.UTC)))
}
