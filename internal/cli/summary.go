package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/report"
)

type summaryOpts struct {
	rangeFlags
	user       string
	nameFilter string
}

func (c *CLI) summaryCommand() *cobra.Command {
	var opts summaryOpts

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize repositories, projects, reviews and open pull requests",
		Long: `Count the repositories updated inside the date range, classic projects,
reviews done and open pull requests authored by the user.

--name-filter lists the in-range repositories whose name contains the
given text.`,
		Example: `  ghstats summary --start 2024-04-01 --end 2025-03-31
  ghstats summary --user octocat --name-filter api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSummary(cmd.Context(), &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.user, "user", "u", "", "GitHub login (default github.user or the token's user)")
	cmd.Flags().StringVar(&opts.nameFilter, "name-filter", "", "list in-range repositories whose name contains this text")

	return cmd
}

func (c *CLI) runSummary(ctx context.Context, opts *summaryOpts) error {
	env, err := c.openReport(ctx, opts.apply, func(cfg *config.Config) {
		if opts.user != "" {
			cfg.GitHub.User = opts.user
		}
		if opts.nameFilter != "" {
			cfg.Report.NameFilter = opts.nameFilter
		}
	})
	if err != nil {
		return err
	}
	defer env.close()

	var rep *report.SummaryReport
	err = withSpinner(ctx, "Collecting summary...", func() error {
		rep, err = env.runner.Summary(ctx, env.cfg.GitHub.User, env.rng, env.cfg.Report.NameFilter)
		return err
	})
	if err != nil {
		return err
	}

	printRunSummary(rep.Meta)
	printNewline()
	printTitle(fmt.Sprintf("Summary for @%s, %s", rep.User, rep.Range))
	printKeyValue("Repositories", formatInt(rep.Repos))
	printKeyValue("Updated in range", formatInt(len(rep.ReposInRange)))
	printKeyValue("Projects", formatInt(rep.Projects))
	printKeyValue("Reviews", searchCount(rep.Reviews))
	printKeyValue("Open pull requests", searchCount(rep.OpenPRs))

	if rep.NameFilter != "" {
		printNewline()
		if len(rep.NameMatches) == 0 {
			printInfo("No repositories in range match %q", rep.NameFilter)
		} else {
			printInfo("Repositories matching %q: %s", rep.NameFilter, strings.Join(rep.NameMatches, ", "))
		}
	}
	return rep.Meta.Err()
}

func searchCount(s report.SearchCount) string {
	return fmt.Sprintf("%s total, %s updated in range", formatInt(s.Total), formatInt(s.InRange))
}
