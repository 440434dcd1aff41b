package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/report"
	"github.com/ghstats/ghstats/pkg/stats"
)

// reportEnv is what a report command needs once configuration is loaded.
type reportEnv struct {
	cfg    *config.Config
	runner *report.Runner
	rng    stats.DateRange
	close  func()
}

// openReport loads configuration, resolves the date range and builds a
// runner. The caller must call env.close.
func (c *CLI) openReport(ctx context.Context, overrides ...func(*config.Config)) (*reportEnv, error) {
	cfg, err := c.loadConfig(overrides...)
	if err != nil {
		return nil, err
	}
	rng, err := cfg.Range(time.Now())
	if err != nil {
		return nil, err
	}
	runner, closeFn, err := c.newRunner(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &reportEnv{cfg: cfg, runner: runner, rng: rng, close: closeFn}, nil
}

// chartOptions applies the output settings to every chart.
func chartOptions(cfg *config.Config) []render.Option {
	var opts []render.Option
	if cfg.Output.AssetsHost != "" {
		opts = append(opts, render.WithAssetsHost(cfg.Output.AssetsHost))
	}
	if cfg.Output.Background != "" {
		opts = append(opts, render.WithBackground(cfg.Output.Background))
	}
	return opts
}

// withSpinner runs fn behind a spinner. At debug level the spinner is left
// out so log lines stay readable, and the elapsed time is logged instead.
func withSpinner(ctx context.Context, message string, fn func() error) error {
	if logger := loggerFromContext(ctx); logger.GetLevel() <= log.DebugLevel {
		prog := newProgress(logger)
		err := fn()
		prog.done(strings.TrimSuffix(message, "..."))
		return err
	}
	s := newSpinnerWithContext(ctx, message)
	s.Start()
	defer s.Stop()
	return fn()
}
