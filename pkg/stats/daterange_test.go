package stats

import (
	"testing"
	"time"

	"github.com/ghstats/ghstats/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("ParseDateRange(%q, %q) error: %v", start, end, err)
	}
	return r
}

func TestDateRangeContains(t *testing.T) {
	r := mustRange(t, "2024-04-01", "2024-12-18")

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"day before start", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), false},
		{"start midnight", date(2024, 4, 1), true},
		{"inside", time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC), true},
		{"last day afternoon", time.Date(2024, 12, 18, 15, 0, 0, 0, time.UTC), true},
		{"last day evening", time.Date(2024, 12, 18, 23, 59, 59, 0, time.UTC), true},
		{"midnight after end", date(2024, 12, 19), false},
		{"other zone same instant", time.Date(2024, 12, 19, 1, 0, 0, 0, time.FixedZone("CAT", 2*3600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantDays   int
		wantCode   errors.Code
	}{
		{"single day", "2024-04-01", "2024-04-01", 1, ""},
		{"leap year span", "2024-01-01", "2024-12-31", 366, ""},
		{"reversed", "2024-12-18", "2024-04-01", 0, errors.ErrCodeInvalidDateRange},
		{"bad start", "04/01/2024", "2024-12-18", 0, errors.ErrCodeInvalidDateRange},
		{"bad end", "2024-04-01", "tomorrow", 0, errors.ErrCodeInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Days() != tt.wantDays {
				t.Errorf("Days() = %d, want %d", r.Days(), tt.wantDays)
			}
		})
	}
}

func TestParseDateRangeOpenEnd(t *testing.T) {
	r := mustRange(t, "2024-04-01", "")
	if !r.End.Equal(Day(time.Now())) {
		t.Errorf("End = %v, want today", r.End)
	}
}

func TestFilterByDate(t *testing.T) {
	type repo struct {
		name      string
		updatedAt time.Time
	}
	repos := []repo{
		{"march", time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)},
		{"april", time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)},
		{"december", time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)},
		{"late", time.Date(2024, 12, 19, 10, 0, 0, 0, time.UTC)},
		{"never", time.Time{}},
	}

	got := FilterByDate(repos, mustRange(t, "2024-04-01", "2024-12-18"), func(r repo) time.Time { return r.updatedAt })

	if len(got) != 2 || got[0].name != "april" || got[1].name != "december" {
		t.Errorf("FilterByDate() = %v, want [april december]", got)
	}
}

func TestCalendarStart(t *testing.T) {
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{date(2025, 3, 31), date(2024, 4, 1)},
		{date(2025, 4, 1), date(2025, 4, 1)},
		{date(2025, 10, 16), date(2025, 4, 1)},
		{date(2025, 1, 1), date(2024, 4, 1)},
	}
	for _, tt := range tests {
		if got := CalendarStart(tt.now); !got.Equal(tt.want) {
			t.Errorf("CalendarStart(%s) = %s, want %s", tt.now.Format("2006-01-02"), got, tt.want)
		}
	}
}
