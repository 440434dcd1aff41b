package stats

import (
	"sort"
	"time"

	"github.com/ghstats/ghstats/pkg/integrations/github"
)

// RepoWeeks is the code frequency series of one repository.
type RepoWeeks struct {
	Repo  string
	Weeks []github.WeeklyChange
}

// WeekPoint is one combined week across all repositories.
type WeekPoint struct {
	Week       time.Time
	Additions  int
	Deletions  int
	Net        int
	Cumulative int
}

// RepoTotals sums one repository's weeks inside the range.
type RepoTotals struct {
	Repo      string
	Weeks     int
	Additions int
	Deletions int
}

// Net is additions minus deletions.
func (t RepoTotals) Net() int { return t.Additions - t.Deletions }

// CodeFrequency is the combined code frequency of several repositories.
type CodeFrequency struct {
	Range     DateRange
	Weeks     []WeekPoint
	Repos     []RepoTotals
	Additions int
	Deletions int
}

// Empty reports whether no repository had a week inside the range.
func (c *CodeFrequency) Empty() bool { return len(c.Weeks) == 0 }

// Lines is the net line count at the end of the range.
func (c *CodeFrequency) Lines() int {
	if c.Empty() {
		return 0
	}
	return c.Weeks[len(c.Weeks)-1].Cumulative
}

// AvgWeeklyAdditions is the mean of the combined weekly additions.
func (c *CodeFrequency) AvgWeeklyAdditions() float64 { return mean(c.Additions, len(c.Weeks)) }

// AvgWeeklyDeletions is the mean of the combined weekly deletions.
func (c *CodeFrequency) AvgWeeklyDeletions() float64 { return mean(c.Deletions, len(c.Weeks)) }

// CombineCodeFrequency filters every series to r, sums weeks shared by
// several repositories and computes the running cumulative line count.
// Repositories without a week in range are left out of Repos.
func CombineCodeFrequency(series []RepoWeeks, r DateRange) *CodeFrequency {
	out := &CodeFrequency{Range: r}
	byWeek := make(map[int64]*WeekPoint)

	for _, s := range series {
		weeks := FilterByDate(s.Weeks, r, func(w github.WeeklyChange) time.Time { return w.Week })
		if len(weeks) == 0 {
			continue
		}
		totals := RepoTotals{Repo: s.Repo, Weeks: len(weeks)}
		for _, w := range weeks {
			totals.Additions += w.Additions
			totals.Deletions += w.Deletions

			p, ok := byWeek[w.Week.Unix()]
			if !ok {
				p = &WeekPoint{Week: w.Week.UTC()}
				byWeek[w.Week.Unix()] = p
			}
			p.Additions += w.Additions
			p.Deletions += w.Deletions
		}
		out.Repos = append(out.Repos, totals)
	}

	out.Weeks = make([]WeekPoint, 0, len(byWeek))
	for _, p := range byWeek {
		out.Weeks = append(out.Weeks, *p)
	}
	sort.Slice(out.Weeks, func(i, j int) bool { return out.Weeks[i].Week.Before(out.Weeks[j].Week) })

	cumulative := 0
	for i := range out.Weeks {
		w := &out.Weeks[i]
		w.Net = w.Additions - w.Deletions
		cumulative += w.Net
		w.Cumulative = cumulative
		out.Additions += w.Additions
		out.Deletions += w.Deletions
	}
	return out
}

func mean(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
