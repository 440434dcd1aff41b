package report

import (
	"context"

	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/stats"
)

// CalendarReport is a contribution calendar and its heatmap layout.
type CalendarReport struct {
	Meta
	Calendar *github.Calendar
	Grid     *stats.CalendarGrid
}

// DefaultCalendarRange runs from [stats.CalendarStart] to today.
func (r *Runner) DefaultCalendarRange() stats.DateRange {
	now := r.now()
	return stats.DateRange{Start: stats.CalendarStart(now), End: stats.Day(now)}
}

// Calendar fetches the contribution calendar of user (the authenticated
// user when empty) over rng.
func (r *Runner) Calendar(ctx context.Context, user string, rng stats.DateRange) (*CalendarReport, error) {
	rn := r.start(ctx, "heatmap")
	defer rn.stop(ctx, r.now)

	login, err := r.login(ctx, user)
	if err != nil {
		return nil, err
	}
	rn.logger.Info("fetching contribution calendar", "user", login, "range", rng)

	cal, err := r.GitHub.ContributionCalendar(ctx, login, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	rn.ok()

	return &CalendarReport{
		Calendar: cal,
		Grid:     stats.BuildCalendarGrid(cal.Days),
		Meta:     rn.finish(ctx, r.now()),
	}, nil
}
