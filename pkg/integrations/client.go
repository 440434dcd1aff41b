package integrations

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ghstats/ghstats/pkg/cache"
	"github.com/ghstats/ghstats/pkg/httputil"
	"github.com/ghstats/ghstats/pkg/observability"
)

// Client provides shared HTTP functionality for API clients: default
// headers, the retrying fetcher and response caching.
type Client struct {
	fetcher   *httputil.Fetcher
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
}

// NewClient creates a Client. Headers are applied to all requests made
// through it; pass nil if none are needed. A nil cache disables caching.
// Options configure the underlying [httputil.Fetcher].
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...httputil.Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		fetcher:   httputil.NewFetcher(opts...),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
	}
}

// SetKeyer replaces the cache keyer, typically with a [cache.ScopedKeyer].
func (c *Client) SetKeyer(k cache.Keyer) {
	if k != nil {
		c.keyer = k
	}
}

// Keyer returns the cache keyer.
func (c *Client) Keyer() cache.Keyer { return c.keyer }

// Fetcher returns the underlying fetcher.
func (c *Client) Fetcher() *httputil.Fetcher { return c.fetcher }

// Request builds a request for url carrying the client's default headers.
func (c *Client) Request(url string) httputil.Request {
	return httputil.NewRequest(url, c.headers)
}

// Fetch performs req under the fetcher's default policy, serving it from
// the cache when possible. See [Client.FetchWith].
func (c *Client) Fetch(ctx context.Context, req httputil.Request, refresh bool) httputil.Outcome {
	return c.FetchWith(ctx, req, c.fetcher.Policy(), refresh)
}

// FetchWith performs req under policy p. Unless refresh is set, a cached
// body is returned as a Success outcome with zero attempts. Only successful
// outcomes are stored.
func (c *Client) FetchWith(ctx context.Context, req httputil.Request, p httputil.Policy, refresh bool) httputil.Outcome {
	key := c.keyer.HTTPKey(c.namespace, req.URL())
	if !refresh {
		if body, ok := c.lookup(ctx, key); ok {
			return httputil.Outcome{State: httputil.StateSuccess, Status: 200, Body: body, URL: req.URL()}
		}
	}

	out := c.fetcher.FetchWith(ctx, req, p)
	if out.OK() {
		c.store(ctx, key, out.Body)
	}
	return out
}

// Cached retrieves a JSON value from cache or executes fetch and caches the
// result. If refresh is true, the cache is bypassed and fetch is always
// called. The fetch function should populate v; on success, v is stored.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if body, ok := c.lookup(ctx, key); ok && json.Unmarshal(body, v) == nil {
			return nil
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if body, err := json.Marshal(v); err == nil {
		c.store(ctx, key, body)
	}
	return nil
}

// Get performs a GET request and JSON-decodes a successful response into v.
// Skipped and failed outcomes are returned as errors.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs a GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	req := c.Request(url)
	for k, val := range headers {
		req = req.WithHeader(k, val)
	}
	return c.Fetch(ctx, req, false).Decode(v)
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, c.namespace)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, c.namespace)
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, c.namespace, len(body))
	}
}

// FetchAll pages through req with [httputil.FetchAll] and caches the
// combined list under one key. An incomplete listing is never cached.
func FetchAll[T any](ctx context.Context, c *Client, req httputil.Request, opts httputil.PageOptions, refresh bool) ([]T, httputil.Outcome) {
	key := c.keyer.HTTPKey(c.namespace, "all:"+req.URL())
	if !refresh {
		if body, ok := c.lookup(ctx, key); ok {
			var items []T
			if json.Unmarshal(body, &items) == nil {
				return items, httputil.Outcome{State: httputil.StateSuccess, Status: 200, URL: req.URL()}
			}
		}
	}

	items, out := httputil.FetchAll[T](ctx, c.fetcher, req, opts)
	if out.OK() {
		if body, err := json.Marshal(items); err == nil {
			c.store(ctx, key, body)
		}
	}
	return items, out
}
