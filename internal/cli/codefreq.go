package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/report"
)

type codefreqOpts struct {
	rangeFlags
	out string
}

func (c *CLI) codefreqCommand() *cobra.Command {
	var opts codefreqOpts

	cmd := &cobra.Command{
		Use:   "codefreq [owner/repo ...]",
		Short: "Chart weekly additions and deletions",
		Long: `Fetch weekly code frequency for each repository, combine the weeks inside
the date range and write three HTML charts: total lines, cumulative growth
and additions vs deletions.

Repositories default to report.repos, then to every repository of the
organization (github.org) or the authenticated user. Bare names use the
organization or user as owner. Empty repositories are skipped.`,
		Example: `  ghstats codefreq octocat/hello-world --start 2024-04-01
  ghstats codefreq api web --out charts/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCodefreq(cmd.Context(), args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default output.dir)")

	return cmd
}

func (c *CLI) runCodefreq(ctx context.Context, args []string, opts *codefreqOpts) error {
	env, err := c.openReport(ctx, opts.apply, func(cfg *config.Config) {
		if opts.out != "" {
			cfg.Output.Dir = opts.out
		}
	})
	if err != nil {
		return err
	}
	defer env.close()

	refs := args
	if len(refs) == 0 {
		refs = env.cfg.Report.Repos
	}
	repos, err := c.resolveRepos(ctx, env, refs)
	if err != nil {
		return err
	}

	var rep *report.CodeFrequencyReport
	err = withSpinner(ctx, "Fetching code frequency...", func() error {
		rep, err = env.runner.CodeFrequency(ctx, repos, env.rng)
		return err
	})
	if err != nil {
		return err
	}

	printRunSummary(rep.Meta)
	if rep.Empty() {
		printWarning("No code changes between %s", env.rng)
		return rep.Meta.Err()
	}

	printNewline()
	printTitle("Code frequency " + env.rng.String())
	rows := make([][]string, 0, len(rep.CodeFrequency.Repos)+1)
	for _, r := range rep.CodeFrequency.Repos {
		rows = append(rows, []string{r.Repo, fmt.Sprint(r.Weeks), formatInt(r.Additions), formatInt(r.Deletions), formatInt(r.Net())})
	}
	rows = append(rows, []string{"total", fmt.Sprint(len(rep.Weeks)), formatInt(rep.Additions), formatInt(rep.Deletions), formatInt(rep.Lines())})
	printTable([]string{"Repository", "Weeks", "Additions", "Deletions", "Net"}, rows)

	printKeyValue("Avg weekly additions", formatFloat(rep.AvgWeeklyAdditions()))
	printKeyValue("Avg weekly deletions", formatFloat(rep.AvgWeeklyDeletions()))

	paths, err := render.WriteAll(env.cfg.Output.Dir, render.CodeFrequencyCharts(rep.CodeFrequency, chartOptions(env.cfg)...))
	if err != nil {
		return err
	}
	printNewline()
	printSuccess("Wrote %d charts", len(paths))
	for _, p := range paths {
		printFile(p)
	}
	return rep.Meta.Err()
}

// resolveRepos parses repository references. Bare names take the
// organization, the configured user or the authenticated user as owner.
// No references means every repository of the account.
func (c *CLI) resolveRepos(ctx context.Context, env *reportEnv, refs []string) ([]report.Repo, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	owner := env.cfg.GitHub.Org
	if owner == "" {
		owner = env.cfg.GitHub.User
	}
	if owner == "" {
		u, err := env.runner.GitHub.User(ctx)
		if err != nil {
			return nil, err
		}
		owner = u.GetLogin()
	}
	return report.ParseRepos(refs, owner)
}
