package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Рабочие часы 09:00-17:00, перерыв 13:00-14:00, без записей, услуга 60 минут,
// шаг 60 минут: слоты 09,10,11,12,14,15,16
func TestResolveSlots_FullDayHourSlots(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	want := []domain.TimeInterval{
		{Start: monday(9, 0), End: monday(10, 0)},
		{Start: monday(10, 0), End: monday(11, 0)},
		{Start: monday(11, 0), End: monday(12, 0)},
		{Start: monday(12, 0), End: monday(13, 0)},
		{Start: monday(14, 0), End: monday(15, 0)},
		{Start: monday(15, 0), End: monday(16, 0)},
		{Start: monday(16, 0), End: monday(17, 0)},
	}
	assert.Equal(t, want, slots)
}

func TestResolveSlots_StepDefaultsToDuration(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	withZeroStep, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 0)
	require.NoError(t, err)
	withExplicitStep, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	assert.Equal(t, withExplicitStep, withZeroStep)
}

func TestResolveSlots_FinerStep(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 30)
	require.NoError(t, err)

	// Утренний блок 09:00-13:00: старты 09:00..12:00 с шагом 30 минут
	assert.Equal(t, monday(9, 0), slots[0].Start)
	assert.Equal(t, monday(9, 30), slots[1].Start)

	// Ни один слот не залезает в перерыв
	breakWindow := domain.TimeInterval{Start: monday(13, 0), End: monday(14, 0)}
	for _, s := range slots {
		assert.False(t, s.Overlaps(breakWindow), "slot %s overlaps the break", s)
	}
}

func TestResolveSlots_BusyIntervalsExcluded(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}, nil)

	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.Overlaps(domain.TimeInterval{Start: monday(10, 0), End: monday(11, 0)}))
	}
	// 09:00 и 11:00 остаются доступны
	assert.Equal(t, monday(9, 0), slots[0].Start)
	assert.Equal(t, monday(11, 0), slots[1].Start)
}

// Остаток, длина которого точно равна длительности услуги, даёт ровно один слот
func TestResolveSlots_ExactFitResidual(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(9, 0), monday(12, 0), domain.StatusConfirmed),
	}, nil)

	// Остаток утреннего блока: 12:00-13:00, длительность 60 минут
	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, domain.TimeInterval{Start: monday(12, 0), End: monday(13, 0)}, slots[0])
}

// Остаток короче длительности услуги не даёт слотов
func TestResolveSlots_ResidualTooShort(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(9, 0), monday(12, 30), domain.StatusConfirmed),
	}, nil)

	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	// Первый доступный слот - после перерыва, остаток 12:30-13:00 пропущен
	require.NotEmpty(t, slots)
	assert.Equal(t, monday(14, 0), slots[0].Start)
}

func TestResolveSlots_Idempotent(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}, nil)

	first, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)
	second, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 60, 60)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveSlots_MultiDayRangeChronological(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	tuesday := monday(0, 0).AddDate(0, 0, 1)
	slots, err := ResolveSlots(av, ledger, monday(0, 0), tuesday, 60, 60)
	require.NoError(t, err)

	assert.Len(t, slots, 14)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start), "slots must be chronological")
	}
}

// Каждый выданный слот проходит проверку Conflict Guard
func TestResolveSlots_RoundTripWithValidateBooking(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
		appointment(2, monday(15, 30), monday(16, 0), domain.StatusInProcess),
	}, nil)

	slots, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 30, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.NoError(t, ValidateBooking(av, ledger, s), "resolved slot %s must validate", s)
	}
}

// Дата запроса - календарная дата провайдера независимо от зоны,
// в которой её распарсил хендлер
func TestResolveSlots_NegativeOffsetZoneKeepsRequestedDate(t *testing.T) {
	week := testWeek()
	week.Timezone = "America/New_York"
	av := mustAvailability(week, nil)
	ledger := NewLedger(nil, nil)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Вторник 2025-11-04, полночь UTC: так хендлер парсит from/to
	day := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	slots, err := ResolveSlots(av, ledger, day, day, 60, 60)
	require.NoError(t, err)
	require.Len(t, slots, 7)

	for _, s := range slots {
		assert.Equal(t, "2025-11-04", s.Start.In(loc).Format(domain.DateFormat),
			"slot %s is outside the requested local date", s)
	}
	// 09:00 Нью-Йорка (EST) = 14:00 UTC
	assert.True(t, slots[0].Start.Equal(time.Date(2025, 11, 4, 14, 0, 0, 0, time.UTC)))
}

func TestResolveSlots_InvalidParams(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	_, err := ResolveSlots(av, ledger, monday(0, 0), monday(0, 0), 0, 0)
	assert.Error(t, err)

	_, err = ResolveSlots(av, ledger, monday(0, 0).AddDate(0, 0, 1), monday(0, 0), 60, 0)
	assert.Error(t, err)
}
