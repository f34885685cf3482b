package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidInterval is returned for malformed intervals (start >= end)
var ErrInvalidInterval = errors.New("invalid interval: start must be before end")

// TimeInterval is a half-open time range [Start, End) with UTC instants.
// Conversion to a provider's local zone happens only at the formatting
// boundary, never inside interval arithmetic.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds a validated interval
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	iv := TimeInterval{Start: start.UTC(), End: end.UTC()}
	if err := iv.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return iv, nil
}

// Validate checks the start < end invariant
func (iv TimeInterval) Validate() error {
	if !iv.Start.Before(iv.End) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// Duration returns the interval length
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals truly overlap.
// Touching intervals ([9,10) and [10,11)) do not overlap.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely within iv
func (iv TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// String formats the interval for logs and error messages
func (iv TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Intersect returns the common part of two intervals, if any
func Intersect(a, b TimeInterval) (TimeInterval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !start.Before(end) {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

// SortIntervals orders intervals by start ascending, ties broken by end ascending
func SortIntervals(intervals []TimeInterval) {
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})
}

// MergeIntervals sorts the input and coalesces overlapping and adjacent
// intervals, returning a new slice of pairwise disjoint, ordered intervals
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return []TimeInterval{}
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	SortIntervals(sorted)

	merged := []TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		// adjacent intervals are coalesced too
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// Subtract removes each occluding interval from a, returning zero or more
// residual intervals in chronological order. Occluders are merged first, so
// overlapping occluders are handled correctly.
func Subtract(a TimeInterval, occluders []TimeInterval) ([]TimeInterval, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	for _, occ := range occluders {
		if err := occ.Validate(); err != nil {
			return nil, err
		}
	}

	residuals := []TimeInterval{}
	cursor := a.Start

	for _, occ := range MergeIntervals(occluders) {
		if !occ.Overlaps(a) {
			continue
		}
		if occ.Start.After(cursor) {
			residuals = append(residuals, TimeInterval{Start: cursor, End: occ.Start})
		}
		if occ.End.After(cursor) {
			cursor = occ.End
		}
	}

	if cursor.Before(a.End) {
		residuals = append(residuals, TimeInterval{Start: cursor, End: a.End})
	}

	return residuals, nil
}
