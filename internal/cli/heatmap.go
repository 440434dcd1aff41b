package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/report"
)

type heatmapOpts struct {
	rangeFlags
	user string
	out  string
}

func (c *CLI) heatmapCommand() *cobra.Command {
	var opts heatmapOpts

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Chart the contribution calendar as a heatmap",
		Long: `Fetch the contribution calendar over GraphQL and write a weekday by week
heatmap with a spacer column between months.

The range defaults to April 1 of the current season through today.`,
		Example: `  ghstats heatmap
  ghstats heatmap --user octocat --start 2024-01-01 --out charts/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHeatmap(cmd.Context(), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "GitHub login (default github.user or the token's user)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default output.dir)")

	return cmd
}

func (c *CLI) runHeatmap(ctx context.Context, opts *heatmapOpts) error {
	env, err := c.openReport(ctx, opts.apply, func(cfg *config.Config) {
		if opts.user != "" {
			cfg.GitHub.User = opts.user
		}
		if opts.out != "" {
			cfg.Output.Dir = opts.out
		}
	})
	if err != nil {
		return err
	}
	defer env.close()

	var rep *report.CalendarReport
	err = withSpinner(ctx, "Fetching contribution calendar...", func() error {
		rep, err = env.runner.Calendar(ctx, env.cfg.GitHub.User, env.rng)
		return err
	})
	if err != nil {
		return err
	}

	printRunSummary(rep.Meta)
	printNewline()
	printTitle("Contributions of @" + rep.Calendar.Login)
	printKeyValue("Range", env.rng.String())
	printKeyValue("Total contributions", formatInt(rep.Calendar.Total))
	printKeyValue("Busiest day", formatInt(rep.Grid.Max))

	path, err := render.WriteHTML(env.cfg.Output.Dir, render.HeatmapFile, render.Heatmap(rep.Grid, rep.Calendar.Login, chartOptions(env.cfg)...))
	if err != nil {
		return err
	}
	printNewline()
	printSuccess("Wrote heatmap")
	printFile(path)
	return nil
}
