package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/report"
	"github.com/ghstats/ghstats/pkg/stats"
)

func (c *CLI) activityCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show profile counters and recent per-repository activity",
		Long: `Show the profile counters of the authenticated user, then count commits,
pull requests opened and reviews on those pull requests per repository over
the last --days days.`,
		Example: `  ghstats activity
  ghstats activity --days 90`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runActivity(cmd.Context(), days)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "window size in days (default report.activity_days)")

	return cmd
}

func daysOverride(days int) func(*config.Config) {
	return func(cfg *config.Config) {
		if days > 0 {
			cfg.Report.ActivityDays = days
		}
	}
}

func (c *CLI) runActivity(ctx context.Context, days int) error {
	env, err := c.openReport(ctx, daysOverride(days))
	if err != nil {
		return err
	}
	defer env.close()

	var rep *report.ActivityReport
	err = withSpinner(ctx, "Collecting activity...", func() error {
		rep, err = env.runner.Activity(ctx, env.cfg.Report.ActivityDays)
		return err
	})
	if err != nil {
		return err
	}

	printRunSummary(rep.Meta)
	if rep.Profile != nil {
		printNewline()
		printProfile(rep.Profile)
	}
	printNewline()
	printActivity(rep.Activity)
	return rep.Meta.Err()
}

func printProfile(p *github.Profile) {
	title := "@" + p.Login
	if p.Name != "" {
		title += " (" + p.Name + ")"
	}
	printTitle(title)
	printKeyValue("Public repositories", formatInt(p.PublicRepos))
	printKeyValue("Followers", formatInt(p.Followers))
	printKeyValue("Following", formatInt(p.Following))
	printKeyValue("Starred", formatInt(p.Starred))
	printKeyValue("Organizations", formatInt(p.Orgs))
	printKeyValue("Issues", formatInt(p.Issues))
	printKeyValue("Gists", formatInt(p.Gists))
	if !p.CreatedAt.IsZero() {
		printKeyValue("Member since", p.CreatedAt.Format("Jan 2, 2006"))
	}
}

func printActivity(a *stats.Activity) {
	printTitle(fmt.Sprintf("Activity over the last %d days (since %s)", a.Days, a.Since.Format("2006-01-02")))

	rows := make([][]string, 0, len(a.Repos)+1)
	for _, r := range a.Repos {
		if r.Skipped {
			rows = append(rows, []string{r.Repo, "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{r.Repo, formatInt(r.Commits), formatInt(r.PullRequests), formatInt(r.Reviews)})
	}
	rows = append(rows, []string{"total", formatInt(a.Commits), formatInt(a.PullRequests), formatInt(a.Reviews)})
	printTable([]string{"Repository", "Commits", "Pull requests", "Reviews"}, rows)

	printKeyValue("Commits per day", formatFloat(a.CommitsPerDay()))
	printKeyValue("Pull requests per day", formatFloat(a.PullRequestsPerDay()))
	printKeyValue("Reviews per day", formatFloat(a.ReviewsPerDay()))
}
