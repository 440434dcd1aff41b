package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/pkg/report"
	"github.com/ghstats/ghstats/pkg/stats"
)

func (c *CLI) reviewsCommand() *cobra.Command {
	var opts rangeFlags

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Count reviews on every pull request",
		Long: `Walk every pull request of every repository and count its reviews.

All reviews are counted unless a date range is given with --start/--end or
report.start/report.end, in which case only reviews submitted inside it
count.`,
		Example: `  ghstats reviews
  ghstats reviews --start 2025-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReviews(cmd.Context(), &opts)
		},
	}

	opts.register(cmd)

	return cmd
}

func (c *CLI) runReviews(ctx context.Context, opts *rangeFlags) error {
	env, err := c.openReport(ctx, opts.apply)
	if err != nil {
		return err
	}
	defer env.close()

	var rng *stats.DateRange
	if env.cfg.Report.Start != "" || env.cfg.Report.End != "" {
		rng = &env.rng
	}

	var rep *report.ReviewsReport
	err = withSpinner(ctx, "Counting reviews...", func() error {
		rep, err = env.runner.Reviews(ctx, rng)
		return err
	})
	if err != nil {
		return err
	}

	printRunSummary(rep.Meta)
	printNewline()
	title := "Reviews, all time"
	if rep.Range != nil {
		title = "Reviews submitted " + rep.Range.String()
	}
	printTitle(title)

	rows := make([][]string, 0, len(rep.Repos)+1)
	for _, r := range rep.Repos {
		rows = append(rows, []string{r.Repo, formatInt(r.PullRequests), formatInt(r.Reviews)})
	}
	rows = append(rows, []string{"total", "", formatInt(rep.Total)})
	printTable([]string{"Repository", "Pull requests", "Reviews"}, rows)
	return rep.Meta.Err()
}
