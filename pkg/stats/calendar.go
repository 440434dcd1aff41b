package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/ghstats/ghstats/pkg/integrations/github"
)

// Weekdays are the grid's row labels, Monday first.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthLabel marks the first column of a month.
type MonthLabel struct {
	Column int
	Text   string
}

// CalendarGrid is a contribution calendar laid out for a heatmap. Each
// column holds seven counts indexed by weekday (Monday is 0).
type CalendarGrid struct {
	Columns [][7]int
	Spacer  []bool
	Labels  []MonthLabel
	Total   int
	Max     int
	Start   time.Time
	End     time.Time
}

// XLabels returns one label per column: the month text on a month's first
// column and "" everywhere else.
func (g *CalendarGrid) XLabels() []string {
	out := make([]string, len(g.Columns))
	for _, l := range g.Labels {
		out[l.Column] = l.Text
	}
	return out
}

// BuildCalendarGrid groups days into columns of seven days counted from the
// earliest date. A column belongs to the month of its first day; a zero
// spacer column is inserted whenever that month changes. January labels
// carry the year.
func BuildCalendarGrid(days []github.CalendarDay) *CalendarGrid {
	g := &CalendarGrid{}
	if len(days) == 0 {
		return g
	}

	sorted := make([]github.CalendarDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	first := Day(sorted[0].Date)
	g.Start = first
	g.End = Day(sorted[len(sorted)-1].Date)

	type week struct {
		values [7]int
		month  time.Month
		year   int
	}
	var weeks []*week
	byID := make(map[int]*week)
	for _, d := range sorted {
		date := Day(d.Date)
		id := int(date.Sub(first)/day) / 7
		w, ok := byID[id]
		if !ok {
			w = &week{month: date.Month(), year: date.Year()}
			byID[id] = w
			weeks = append(weeks, w)
		}
		w.values[weekdayRow(date)] += d.Count
		g.Total += d.Count
		if d.Count > g.Max {
			g.Max = d.Count
		}
	}

	var current time.Month
	for i, w := range weeks {
		if i > 0 && w.month != current {
			g.Columns = append(g.Columns, [7]int{})
			g.Spacer = append(g.Spacer, true)
		}
		g.Columns = append(g.Columns, w.values)
		g.Spacer = append(g.Spacer, false)
		if i == 0 || w.month != current {
			current = w.month
			text := w.month.String()
			if w.month == time.January {
				text += "\n" + strconv.Itoa(w.year)
			}
			g.Labels = append(g.Labels, MonthLabel{Column: len(g.Columns) - 1, Text: text})
		}
	}
	return g
}

// weekdayRow maps Monday to 0 and Sunday to 6.
func weekdayRow(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
