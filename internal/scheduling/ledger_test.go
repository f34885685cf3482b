package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func TestNewLedger_MergesOverlappingAndAdjacent(t *testing.T) {
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
		appointment(2, monday(10, 30), monday(11, 30), domain.StatusInProcess),
		appointment(3, monday(11, 30), monday(12, 0), domain.StatusConfirmed), // смежная
		appointment(4, monday(15, 0), monday(16, 0), domain.StatusConfirmed),
	}, nil)

	busy := ledger.BusyIntervals()
	require.Len(t, busy, 2)
	assert.Equal(t, domain.TimeInterval{Start: monday(10, 0), End: monday(12, 0)}, busy[0])
	assert.Equal(t, domain.TimeInterval{Start: monday(15, 0), End: monday(16, 0)}, busy[1])
}

func TestNewLedger_SkipsCancelled(t *testing.T) {
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusCancelled),
		appointment(2, monday(14, 0), monday(15, 0), domain.StatusConfirmed),
	}, nil)

	busy := ledger.BusyIntervals()
	require.Len(t, busy, 1)
	assert.Equal(t, monday(14, 0), busy[0].Start)
}

func TestNewLedger_ExcludesGivenID(t *testing.T) {
	ledger := NewLedger([]*domain.Appointment{
		appointment(5, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
		appointment(6, monday(14, 0), monday(15, 0), domain.StatusConfirmed),
	}, ptrInt64(5))

	busy := ledger.BusyIntervals()
	require.Len(t, busy, 1)
	assert.Equal(t, monday(14, 0), busy[0].Start)
}

func TestLedger_BusyWithin(t *testing.T) {
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
		appointment(2, monday(15, 0), monday(16, 0), domain.StatusConfirmed),
	}, nil)

	morning := domain.TimeInterval{Start: monday(9, 0), End: monday(13, 0)}
	got := ledger.BusyWithin(morning)
	require.Len(t, got, 1)
	assert.Equal(t, monday(10, 0), got[0].Start)
}

func TestLedger_FirstOverlap(t *testing.T) {
	ledger := NewLedger([]*domain.Appointment{
		appointment(1, monday(10, 0), monday(11, 0), domain.StatusConfirmed),
	}, nil)

	_, ok := ledger.FirstOverlap(domain.TimeInterval{Start: monday(11, 0), End: monday(12, 0)})
	assert.False(t, ok, "touching intervals do not overlap")

	busy, ok := ledger.FirstOverlap(domain.TimeInterval{Start: monday(10, 59), End: monday(12, 0)})
	require.True(t, ok)
	assert.Equal(t, monday(10, 0), busy.Start)
}
