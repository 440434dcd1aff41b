package config

import (
	stderrors "errors"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ghstats/ghstats/pkg/errors"
)

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

func mapLookup(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// chainLookup returns the first source that has key.
func chainLookup(sources ...lookupFunc) lookupFunc {
	return func(key string) (string, bool) {
		for _, src := range sources {
			if v, ok := src(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// readDotenv parses a .env file without touching the process environment.
// A missing file yields no values.
func readDotenv(path string) (map[string]string, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return m, nil
}

// applyEnv overrides c with the GHSTATS_* variables and GITHUB_TOKEN.
// Malformed numbers and durations are ignored and keep the prior value.
func (c *Config) applyEnv(lookup lookupFunc) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				*dst = d
			}
		}
	}

	str("GH_TOKEN", &c.GitHub.Token)
	str("GITHUB_TOKEN", &c.GitHub.Token)
	str("GHSTATS_USER", &c.GitHub.User)
	str("GHSTATS_ORG", &c.GitHub.Org)
	str("GHSTATS_BASE_URL", &c.GitHub.BaseURL)
	str("GHSTATS_GRAPHQL_URL", &c.GitHub.GraphQLURL)

	str("GHSTATS_START", &c.Report.Start)
	str("GHSTATS_END", &c.Report.End)
	str("GHSTATS_NAME_FILTER", &c.Report.NameFilter)
	num("GHSTATS_ACTIVITY_DAYS", &c.Report.ActivityDays)
	if v, ok := lookup("GHSTATS_REPOS"); ok && v != "" {
		c.Report.Repos = splitList(v)
	}

	str("GHSTATS_CACHE", &c.Cache.Backend)
	str("GHSTATS_CACHE_DIR", &c.Cache.Dir)
	dur("GHSTATS_CACHE_TTL", &c.Cache.TTL)
	str("GHSTATS_REDIS_ADDR", &c.Cache.RedisAddr)
	str("GHSTATS_REDIS_PASSWORD", &c.Cache.RedisPassword)
	num("GHSTATS_REDIS_DB", &c.Cache.RedisDB)

	num("GHSTATS_RETRY_ATTEMPTS", &c.Retry.MaxAttempts)
	dur("GHSTATS_RETRY_DELAY", &c.Retry.Delay)

	str("GHSTATS_OUT", &c.Output.Dir)
	str("GHSTATS_ASSETS_HOST", &c.Output.AssetsHost)
	str("GHSTATS_DASHBOARD_ADDR", &c.Dashboard.Addr)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
