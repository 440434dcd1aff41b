package github

import (
	"encoding/json"
	"fmt"
	"time"

	gh "github.com/google/go-github/v74/github"
)

// WeeklyChange is one row of /stats/code_frequency: the lines added and
// deleted during the week starting at Week. Deletions are stored as a
// positive count.
type WeeklyChange struct {
	Week      time.Time `json:"week"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

// UnmarshalJSON decodes GitHub's [unix_week, additions, -deletions] triple.
func (w *WeeklyChange) UnmarshalJSON(data []byte) error {
	var row []int64
	if err := json.Unmarshal(data, &row); err == nil {
		if len(row) != 3 {
			return fmt.Errorf("code frequency row has %d columns, want 3", len(row))
		}
		w.Week = time.Unix(row[0], 0).UTC()
		w.Additions = int(row[1])
		w.Deletions = int(absInt64(row[2]))
		return nil
	}

	// Cached form written by MarshalJSON's default encoding.
	type plain WeeklyChange
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*w = WeeklyChange(p)
	return nil
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Project is a classic user project.
type Project struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Body      string       `json:"body"`
	State     string       `json:"state"`
	HTMLURL   string       `json:"html_url"`
	CreatedAt gh.Timestamp `json:"created_at"`
	UpdatedAt gh.Timestamp `json:"updated_at"`
}

// CalendarDay is one cell of the contribution calendar.
type CalendarDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Calendar is a user's contribution calendar over a date range.
type Calendar struct {
	Login string        `json:"login"`
	From  time.Time     `json:"from"`
	To    time.Time     `json:"to"`
	Total int           `json:"total"`
	Days  []CalendarDay `json:"days"`
}
