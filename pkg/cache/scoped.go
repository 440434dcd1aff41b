package cache

import "time"

// ScopedKeyer prefixes every key produced by an inner [Keyer]. Responses
// fetched with different tokens see different private repositories, so the
// client scopes keys by a fingerprint of the token (never the token itself).
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), TokenScope(token))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey generates a prefixed key for REST responses.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// CalendarKey generates a prefixed key for contribution calendars.
func (k *ScopedKeyer) CalendarKey(login string, from, to time.Time) string {
	return k.prefix + k.inner.CalendarKey(login, from, to)
}

// TokenScope returns the key prefix for a token: a short hash, so the token
// never reaches disk or Redis. An empty token yields "anon:".
func TokenScope(token string) string {
	if token == "" {
		return "anon:"
	}
	return "token:" + Hash([]byte(token))[:12] + ":"
}
