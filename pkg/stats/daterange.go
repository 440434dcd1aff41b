package stats

import (
	"fmt"
	"time"

	"github.com/ghstats/ghstats/pkg/errors"
)

const day = 24 * time.Hour

// DateRange is an inclusive range of whole UTC days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates start and end to their UTC day and validates that
// start is not after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if err := errors.ValidateDateRange(r.Start, r.End); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD dates. An empty end means today.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := errors.ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e := time.Now()
	if end != "" {
		if e, err = errors.ParseDate(end); err != nil {
			return DateRange{}, err
		}
	}
	return NewDateRange(s, e)
}

// Contains reports whether t falls on one of the range's days. The end day
// is included in full: 2024-12-18T15:00Z is inside a range ending on
// 2024-12-18, where a comparison against the end date's midnight would
// exclude it.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End.Add(day))
}

// Days returns the number of days in the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start)/day) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(errors.DateLayout), r.End.Format(errors.DateLayout))
}

// Day returns midnight UTC of t's UTC date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarStart returns April 1 of now's year, or of the previous year
// before April.
func CalendarStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}
	return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
}

// FilterByDate keeps the items whose timestamp lies in r, in their original
// order. Items with a zero timestamp are dropped.
func FilterByDate[T any](items []T, r DateRange, at func(T) time.Time) []T {
	var out []T
	for _, it := range items {
		t := at(it)
		if t.IsZero() || !r.Contains(t) {
			continue
		}
		out = append(out, it)
	}
	return out
}
