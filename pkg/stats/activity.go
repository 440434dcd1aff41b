package stats

import "time"

// DefaultActivityDays is the trailing window of the activity report.
const DefaultActivityDays = 30

// RepoActivity counts one repository's work inside the window.
type RepoActivity struct {
	Repo         string
	Commits      int
	PullRequests int
	Reviews      int
	Skipped      bool
}

// Activity is the totals over every repository for a trailing window.
type Activity struct {
	Since        time.Time
	Days         int
	Repos        []RepoActivity
	Commits      int
	PullRequests int
	Reviews      int
}

// WindowStart returns the instant days before now.
func WindowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * day)
}

// ActivityTotals sums per-repository counts. Skipped repositories are kept
// in Repos but contribute nothing.
func ActivityTotals(repos []RepoActivity, since time.Time, days int) *Activity {
	a := &Activity{Since: since, Days: days, Repos: repos}
	for _, r := range repos {
		if r.Skipped {
			continue
		}
		a.Commits += r.Commits
		a.PullRequests += r.PullRequests
		a.Reviews += r.Reviews
	}
	return a
}

// CommitsPerDay is the average number of commits per day in the window.
func (a *Activity) CommitsPerDay() float64 { return mean(a.Commits, a.Days) }

// PullRequestsPerDay is the average number of pull requests per day.
func (a *Activity) PullRequestsPerDay() float64 { return mean(a.PullRequests, a.Days) }

// ReviewsPerDay is the average number of reviews per day.
func (a *Activity) ReviewsPerDay() float64 { return mean(a.Reviews, a.Days) }
