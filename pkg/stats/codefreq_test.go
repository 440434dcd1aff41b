package stats

import (
	"testing"

	"github.com/ghstats/ghstats/pkg/integrations/github"
)

func TestCombineCodeFrequency(t *testing.T) {
	series := []RepoWeeks{
		{Repo: "alpha", Weeks: []github.WeeklyChange{
			{Week: date(2024, 4, 14), Additions: 50, Deletions: 20},
			{Week: date(2024, 4, 7), Additions: 100, Deletions: 10},
		}},
		{Repo: "beta", Weeks: []github.WeeklyChange{
			{Week: date(2024, 3, 31), Additions: 999, Deletions: 999},
			{Week: date(2024, 4, 14), Additions: 30, Deletions: 5},
			{Week: date(2024, 4, 21), Additions: 0, Deletions: 40},
		}},
		{Repo: "gamma", Weeks: []github.WeeklyChange{
			{Week: date(2025, 1, 5), Additions: 7, Deletions: 1},
		}},
	}

	cf := CombineCodeFrequency(series, mustRange(t, "2024-04-01", "2024-12-18"))

	want := []WeekPoint{
		{Week: date(2024, 4, 7), Additions: 100, Deletions: 10, Net: 90, Cumulative: 90},
		{Week: date(2024, 4, 14), Additions: 80, Deletions: 25, Net: 55, Cumulative: 145},
		{Week: date(2024, 4, 21), Additions: 0, Deletions: 40, Net: -40, Cumulative: 105},
	}
	if len(cf.Weeks) != len(want) {
		t.Fatalf("Weeks = %d, want %d", len(cf.Weeks), len(want))
	}
	for i, w := range want {
		got := cf.Weeks[i]
		if !got.Week.Equal(w.Week) || got.Additions != w.Additions || got.Deletions != w.Deletions ||
			got.Net != w.Net || got.Cumulative != w.Cumulative {
			t.Errorf("Weeks[%d] = %+v, want %+v", i, got, w)
		}
	}

	if cf.Additions != 180 || cf.Deletions != 75 || cf.Lines() != 105 {
		t.Errorf("totals = +%d -%d lines %d, want +180 -75 lines 105", cf.Additions, cf.Deletions, cf.Lines())
	}
	if cf.AvgWeeklyAdditions() != 60 || cf.AvgWeeklyDeletions() != 25 {
		t.Errorf("averages = %v / %v, want 60 / 25", cf.AvgWeeklyAdditions(), cf.AvgWeeklyDeletions())
	}

	if len(cf.Repos) != 2 {
		t.Fatalf("Repos = %+v, want alpha and beta only", cf.Repos)
	}
	if r := cf.Repos[0]; r.Repo != "alpha" || r.Additions != 150 || r.Deletions != 30 || r.Net() != 120 {
		t.Errorf("Repos[0] = %+v", r)
	}
	if r := cf.Repos[1]; r.Repo != "beta" || r.Weeks != 2 || r.Additions != 30 || r.Deletions != 45 || r.Net() != -15 {
		t.Errorf("Repos[1] = %+v", r)
	}
}

func TestCombineCodeFrequencyEmpty(t *testing.T) {
	cf := CombineCodeFrequency(nil, mustRange(t, "2024-04-01", "2024-12-18"))
	if !cf.Empty() || cf.Lines() != 0 || cf.AvgWeeklyAdditions() != 0 {
		t.Errorf("empty combination = %+v", cf)
	}
}
