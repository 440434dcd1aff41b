// Package cache stores raw GitHub API responses between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under ~/.cache/ghstats (CLI default)
//   - [RedisCache]: a shared Redis instance, useful when the dashboard and
//     the CLI run on different hosts
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer] so that every caller builds them the same way.
// Only successful responses are cached; pending statistics and failures are
// always fetched again.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey identifies a REST response, typically by request URL.
	HTTPKey(namespace, key string) string

	// CalendarKey identifies a contribution calendar for a login and range.
	CalendarKey(login string, from, to time.Time) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CalendarKey hashes the login and the day bounds of the range.
func (DefaultKeyer) CalendarKey(login string, from, to time.Time) string {
	return hashKey("calendar", login, from.UTC().Format(time.DateOnly), to.UTC().Format(time.DateOnly))
}
