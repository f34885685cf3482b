package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(hour, min int) time.Time {
	return time.Date(2025, 11, 3, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) TimeInterval {
	return TimeInterval{Start: utc(startHour, startMin), End: utc(endHour, endMin)}
}

func TestNewTimeInterval_Invalid(t *testing.T) {
	_, err := NewTimeInterval(utc(10, 0), utc(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(utc(11, 0), utc(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeInterval
		want bool
	}{
		{"partial overlap", iv(10, 0, 11, 0), iv(10, 30, 11, 30), true},
		{"contained", iv(10, 0, 12, 0), iv(10, 30, 11, 0), true},
		{"identical", iv(10, 0, 11, 0), iv(10, 0, 11, 0), true},
		{"touching end-start", iv(10, 0, 11, 0), iv(11, 0, 12, 0), false},
		{"touching start-end", iv(11, 0, 12, 0), iv(10, 0, 11, 0), false},
		{"disjoint", iv(9, 0, 10, 0), iv(14, 0, 15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntersect(t *testing.T) {
	got, ok := Intersect(iv(10, 0, 12, 0), iv(11, 0, 13, 0))
	require.True(t, ok)
	assert.Equal(t, iv(11, 0, 12, 0), got)

	_, ok = Intersect(iv(10, 0, 11, 0), iv(11, 0, 12, 0))
	assert.False(t, ok)
}

func TestSubtract_EmptyOccluders(t *testing.T) {
	a := iv(9, 0, 17, 0)

	got, err := Subtract(a, nil)
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{a}, got)
}

func TestSubtract_Self(t *testing.T) {
	a := iv(9, 0, 17, 0)

	got, err := Subtract(a, []TimeInterval{a})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSubtract_MiddleOccluder(t *testing.T) {
	got, err := Subtract(iv(9, 0, 17, 0), []TimeInterval{iv(13, 0, 14, 0)})
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{iv(9, 0, 13, 0), iv(14, 0, 17, 0)}, got)
}

func TestSubtract_UnsortedOverlappingOccluders(t *testing.T) {
	occluders := []TimeInterval{
		iv(15, 0, 16, 0),
		iv(10, 0, 11, 30),
		iv(11, 0, 12, 0), // overlaps the previous occluder
	}

	got, err := Subtract(iv(9, 0, 17, 0), occluders)
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{
		iv(9, 0, 10, 0),
		iv(12, 0, 15, 0),
		iv(16, 0, 17, 0),
	}, got)
}

func TestSubtract_OccluderCoversStart(t *testing.T) {
	got, err := Subtract(iv(9, 0, 17, 0), []TimeInterval{iv(8, 0, 10, 0)})
	require.NoError(t, err)
	assert.Equal(t, []TimeInterval{iv(10, 0, 17, 0)}, got)
}

func TestSubtract_InvalidInterval(t *testing.T) {
	_, err := Subtract(TimeInterval{Start: utc(17, 0), End: utc(9, 0)}, nil)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Subtract(iv(9, 0, 17, 0), []TimeInterval{{Start: utc(12, 0), End: utc(11, 0)}})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestMergeIntervals(t *testing.T) {
	got := MergeIntervals([]TimeInterval{
		iv(14, 0, 15, 0),
		iv(9, 0, 10, 0),
		iv(9, 30, 11, 0),
		iv(11, 0, 12, 0), // adjacent to the previous, must coalesce
	})

	assert.Equal(t, []TimeInterval{iv(9, 0, 12, 0), iv(14, 0, 15, 0)}, got)
}

func TestSortIntervals_TiesByEnd(t *testing.T) {
	intervals := []TimeInterval{
		iv(9, 0, 12, 0),
		iv(9, 0, 10, 0),
	}
	SortIntervals(intervals)

	assert.Equal(t, []TimeInterval{iv(9, 0, 10, 0), iv(9, 0, 12, 0)}, intervals)
}
