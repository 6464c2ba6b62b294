package utils

import (
	"errors"
	"time"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is a created_at window for reporting queries. A nil bound
// means the range is open on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ResolveRange fills in reporting defaults:
//   - neither bound given: [now-defaultSpan, now];
//   - exactly one bound given: the other side stays open;
//   - both given with end before start: ErrInvalidDateRange.
func ResolveRange(start, end *time.Time, now time.Time, defaultSpan time.Duration) (DateRange, error) {
	if start == nil && end == nil {
		e := now
		s := now.Add(-defaultSpan)
		return DateRange{Start: &s, End: &e}, nil
	}

	if start != nil && end != nil && end.Before(*start) {
		return DateRange{}, ErrInvalidDateRange
	}

	return DateRange{Start: start, End: end}, nil
}
