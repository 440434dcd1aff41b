// Package config loads ghstats configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults
//  2. the TOML file (~/.config/ghstats/config.toml or --config)
//  3. a .env file in the working directory
//  4. environment variables
//  5. command-line flags (applied by the CLI)
//
// The GitHub token is only ever read from configuration. [Config.String]
// redacts it along with the Redis password.
package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ghstats/ghstats/pkg/cache"
	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/httputil"
	"github.com/ghstats/ghstats/pkg/integrations"
	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/stats"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

const redacted = "[redacted]"

// Config is the complete ghstats configuration.
type Config struct {
	GitHub    GitHubConfig    `toml:"github"`
	Report    ReportConfig    `toml:"report"`
	Cache     CacheConfig     `toml:"cache"`
	Retry     RetryConfig     `toml:"retry"`
	Output    OutputConfig    `toml:"output"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// GitHubConfig selects the account and API endpoints.
type GitHubConfig struct {
	Token      string `toml:"token"`
	User       string `toml:"user"`
	Org        string `toml:"org"`
	BaseURL    string `toml:"base_url"`
	GraphQLURL string `toml:"graphql_url"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	Start        string   `toml:"start"` // YYYY-MM-DD; April 1 rule when empty
	End          string   `toml:"end"`   // YYYY-MM-DD; today when empty
	Repos        []string `toml:"repos"`
	NameFilter   string   `toml:"name_filter"`
	ActivityDays int      `toml:"activity_days"`
}

// CacheConfig selects and configures the response cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	RedisPrefix   string        `toml:"redis_prefix"`
}

// RetryConfig is the fetch retry policy.
type RetryConfig struct {
	MaxAttempts int           `toml:"max_attempts"`
	Delay       time.Duration `toml:"delay"`
}

// OutputConfig controls where charts are written and how they load.
// AssetsHost serves the echarts scripts instead of the public CDN.
type OutputConfig struct {
	Dir        string `toml:"dir"`
	AssetsHost string `toml:"assets_host"`
	Background string `toml:"background"`
}

// DashboardConfig is the dashboard server address and content.
type DashboardConfig struct {
	Addr string `toml:"addr"`
	render.Dashboard
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GitHub: GitHubConfig{BaseURL: github.DefaultBaseURL},
		Report: ReportConfig{ActivityDays: stats.DefaultActivityDays},
		Cache: CacheConfig{
			Backend:     CacheFile,
			TTL:         integrations.DefaultCacheTTL,
			RedisPrefix: cache.DefaultRedisPrefix,
		},
		Retry: RetryConfig{
			MaxAttempts: httputil.DefaultMaxAttempts,
			Delay:       httputil.DefaultDelay,
		},
		Output:    OutputConfig{Dir: "charts"},
		Dashboard: DashboardConfig{Addr: ":8501"},
	}
}

// Load builds the configuration from defaults, the TOML file at path (the
// default path when empty), the .env file at envFile (".env" when empty)
// and the process environment. A missing default file is not an error; a
// missing explicit one is.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := readDotenv(envFile)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(chainLookup(os.LookupEnv, mapLookup(dotenv)))

	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		var perr toml.ParseError
		if stderrors.As(err, &perr) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s:\n%s", path, perr.ErrorWithPosition())
		}
		if stderrors.Is(err, fs.ErrNotExist) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the configuration for contradictions and bad values.
func (c *Config) Validate() error {
	if c.GitHub.User != "" {
		if err := errors.ValidateLogin(c.GitHub.User); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "github.user")
		}
	}
	if c.GitHub.Org != "" {
		if err := errors.ValidateLogin(c.GitHub.Org); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "github.org")
		}
	}
	if err := errors.ValidateURL(c.GitHub.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "github.base_url")
	}
	if c.GitHub.GraphQLURL != "" {
		if err := errors.ValidateURL(c.GitHub.GraphQLURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "github.graphql_url")
		}
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be %q, %q or %q, got %q",
			CacheFile, CacheRedis, CacheNone, c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}

	if c.Retry.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "retry.max_attempts must be at least 1")
	}
	if c.Retry.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "retry.delay cannot be negative")
	}
	if c.Report.ActivityDays < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "report.activity_days must be at least 1")
	}
	if c.Report.Start != "" || c.Report.End != "" {
		if _, err := c.Range(time.Now()); err != nil {
			return err
		}
	}
	return nil
}

// Policy returns the fetch retry policy.
func (c *Config) Policy() httputil.Policy {
	return httputil.Policy{MaxAttempts: c.Retry.MaxAttempts, Delay: c.Retry.Delay}
}

// Range returns the report date range. An empty start uses
// [stats.CalendarStart]; an empty end uses today.
func (c *Config) Range(now time.Time) (stats.DateRange, error) {
	start := stats.CalendarStart(now)
	if c.Report.Start != "" {
		s, err := errors.ParseDate(c.Report.Start)
		if err != nil {
			return stats.DateRange{}, err
		}
		start = s
	}
	end := now
	if c.Report.End != "" {
		e, err := errors.ParseDate(c.Report.End)
		if err != nil {
			return stats.DateRange{}, err
		}
		end = e
	}
	return stats.NewDateRange(start, end)
}

// HasToken reports whether a GitHub token is configured.
func (c *Config) HasToken() bool { return c.GitHub.Token != "" }

// String renders the configuration as TOML with secrets redacted.
func (c Config) String() string {
	if c.GitHub.Token != "" {
		c.GitHub.Token = redacted
	}
	if c.Cache.RedisPassword != "" {
		c.Cache.RedisPassword = redacted
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "config: " + err.Error()
	}
	return buf.String()
}
