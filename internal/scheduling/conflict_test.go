package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Существующая запись 10:00-11:00; запрос 10:30-11:30 отклоняется
// с конфликтующим диапазоном 10:00-11:00
func TestValidateBooking_DoubleBooked(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(10, 30), End: monday(11, 30)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDoubleBooked)

	var conflict *Conflict
	require.True(t, errors.As(err, &conflict))
	require.NotNil(t, conflict.Conflicting)
	assert.Equal(t, monday(10, 0), conflict.Conflicting.Start)
	assert.Equal(t, monday(11, 0), conflict.Conflicting.End)
}

func TestValidateBooking_CancelledDoesNotBlock(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusCancelled),
	}, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(10, 30), End: monday(11, 30)})
	assert.NoError(t, err)
}

func TestValidateBooking_InProcessBlocks(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusInProcess),
	}, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(10, 0), End: monday(10, 30)})
	assert.ErrorIs(t, err, ErrDoubleBooked)
}

func TestValidateBooking_ExcludedAppointmentIgnored(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	appts := []*domain.Appointment{
		appointment(7, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}

	// Перенос записи id=7 на пересекающееся с ней же время допустим
	ledger := NewLedger(appts, ptrInt64(7))
	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(10, 30), End: monday(11, 30)})
	assert.NoError(t, err)
}

func TestValidateBooking_OutsideWorkingHours(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(7, 0), End: monday(8, 0)})
	require.ErrorIs(t, err, ErrOutsideAvailability)

	var conflict *Conflict
	require.True(t, errors.As(err, &conflict))
	require.NotNil(t, conflict.NearestOpen)
	assert.Equal(t, monday(9, 0), conflict.NearestOpen.Start)
}

func TestValidateBooking_InsideBreak(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	// Интервал частично попадает в перерыв 13:00-14:00
	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(12, 30), End: monday(13, 30)})
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestValidateBooking_NonWorkingDay(t *testing.T) {
	exceptions := []*domain.NonWorkingDay{
		{UserID: 42, Date: monday(0, 0), Description: "holiday"},
	}
	av := mustAvailability(testWeek(), exceptions)
	ledger := NewLedger(nil, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(10, 0), End: monday(11, 0)})
	require.ErrorIs(t, err, ErrOutsideAvailability)

	// Открытых интервалов в этот день нет - ближайший не сообщается
	var conflict *Conflict
	require.True(t, errors.As(err, &conflict))
	assert.Nil(t, conflict.NearestOpen)
}

func TestValidateBooking_InvalidInterval(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger(nil, nil)

	err := ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(11, 0), End: monday(10, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestValidateBooking_BoundarySlots(t *testing.T) {
	av := mustAvailability(testWeek(), nil)
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}, nil)

	// Граничащие интервалы не считаются пересечением
	assert.NoError(t, ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(9, 0), End: monday(10, 0)}))
	assert.NoError(t, ValidateBooking(av, ledger, domain.TimeInterval{Start: monday(11, 0), End: monday(12, 0)}))
}

func ptrInt64(v int64) *int64 {
	return &v
}
