// Package cli implements the ghstats command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ghstats/ghstats/internal/config"
	"github.com/ghstats/ghstats/pkg/buildinfo"
	"github.com/ghstats/ghstats/pkg/cache"
	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/httputil"
	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/report"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFile    string
	noCache    bool
	refresh    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ghstats reports GitHub contribution statistics",
		Long: `ghstats collects contribution statistics from the GitHub API: code
frequency, activity, reviews and the contribution calendar. Reports are
printed as tables or written as interactive HTML charts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&c.envFile, "env-file", "", "dotenv file (default .env)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVar(&c.refresh, "refresh", false, "ignore cached responses and fetch again")

	root.AddCommand(c.codefreqCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.activityCommand())
	root.AddCommand(c.reviewsCommand())
	root.AddCommand(c.heatmapCommand())
	root.AddCommand(c.dashboardCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// rangeFlags are the --start/--end overrides shared by report commands.
type rangeFlags struct {
	start, end string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "start date YYYY-MM-DD (default April 1 of the current season)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date YYYY-MM-DD (default today)")
}

func (f *rangeFlags) apply(cfg *config.Config) {
	if f.start != "" {
		cfg.Report.Start = f.start
	}
	if f.end != "" {
		cfg.Report.End = f.end
	}
}

// loadConfig loads and validates the configuration after applying
// command-line overrides.
func (c *CLI) loadConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(c.configPath, c.envFile)
	if err != nil {
		return nil, err
	}
	if c.noCache {
		cfg.Cache.Backend = config.CacheNone
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.Logger.Debug("configuration loaded", "config", c.configPath, "cache", cfg.Cache.Backend, "org", cfg.GitHub.Org)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newCache opens the configured cache backend. Without a usable cache
// directory the file backend degrades to no caching, with a warning.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.RedisPrefix,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			loggerFromContext(ctx).Warn("caching disabled: no cache directory", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newClient creates a GitHub client over the configured cache. The caller
// closes the returned cache.
func (c *CLI) newClient(ctx context.Context, cfg *config.Config) (*github.Client, cache.Cache, error) {
	if !cfg.HasToken() {
		return nil, nil, errors.New(errors.ErrCodeUnauthorized,
			"no GitHub token: set GITHUB_TOKEN or github.token in %s", config.DefaultPath())
	}
	store, err := newCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	client := github.NewClient(cfg.GitHub.Token, store, github.Options{
		BaseURL:    cfg.GitHub.BaseURL,
		GraphQLURL: cfg.GitHub.GraphQLURL,
		CacheTTL:   cfg.Cache.TTL,
		Refresh:    c.refresh,
		Fetcher: []httputil.Option{
			httputil.WithPolicy(cfg.Policy()),
			httputil.WithLogger(c.Logger),
		},
	})
	return client, store, nil
}

// newRunner creates a report runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*report.Runner, func(), error) {
	client, store, err := c.newClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			c.Logger.Debug("close cache", "error", err)
		}
	}
	return report.NewRunner(client, cfg.GitHub.Org, c.Logger), closeFn, nil
}
