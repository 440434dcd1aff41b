package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/internal/dashboard"
	"github.com/ghstats/ghstats/pkg/report"
)

func (c *CLI) dashboardCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the skills and projects dashboard",
		Long: `Serve an HTML dashboard built from the [dashboard] section of the config
file: metric tiles, skill categories, a skills radar, project complexity and
timeline, and the skill distribution.

With a GitHub token configured, the contribution heatmap is added.`,
		Example: `  ghstats dashboard
  ghstats dashboard --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDashboard(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default dashboard.addr)")

	return cmd
}

func (c *CLI) runDashboard(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig(func(cfg *config.Config) {
		if addr != "" {
			cfg.Dashboard.Addr = addr
		}
	})
	if err != nil {
		return err
	}

	opts := dashboard.Options{
		Content: cfg.Dashboard.Dashboard,
		Logger:  loggerFromContext(ctx).WithPrefix("dashboard"),
		Charts:  chartOptions(cfg),
	}
	if cfg.HasToken() {
		runner, closeFn, err := c.newRunner(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		opts.Calendar = func(ctx context.Context) (*report.CalendarReport, error) {
			rng, err := cfg.Range(time.Now())
			if err != nil {
				return nil, err
			}
			return runner.Calendar(ctx, cfg.GitHub.User, rng)
		}
	} else {
		printInfo("No GitHub token configured, the contribution heatmap is disabled")
	}

	printSuccess("Dashboard on http://%s", displayAddr(cfg.Dashboard.Addr))
	return dashboard.New(opts).ListenAndServe(ctx, cfg.Dashboard.Addr)
}

// displayAddr turns ":8501" into "localhost:8501".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
