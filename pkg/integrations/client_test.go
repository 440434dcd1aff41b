package integrations

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghstats/ghstats/pkg/cache"
	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/httputil"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newTestClient(t *testing.T, server *httptest.Server, c cache.Cache, headers map[string]string) *Client {
	t.Helper()
	return NewClient(c, "test", time.Hour, headers,
		httputil.WithHTTPClient(server.Client()),
		httputil.WithSleeper(httputil.SleeperFunc(noSleep)),
		httputil.WithLogger(log.New(io.Discard)),
	)
}

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test", time.Hour, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.fetcher == nil {
		t.Error("NewClient() fetcher is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
	if client.Fetcher().Policy() != httputil.DefaultPolicy() {
		t.Errorf("Policy() = %+v, want default", client.Fetcher().Policy())
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if _, ok := client.cache.(*cache.NullCache); !ok {
		t.Errorf("cache = %T, want *cache.NullCache", client.cache)
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := newTestClient(t, server, nil, nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var receivedDefault, receivedOverride string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedDefault = r.Header.Get("X-Default")
		receivedOverride = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, server, nil, map[string]string{"X-Default": "default", "X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if receivedDefault != "default" {
		t.Errorf("default header = %q, want %q", receivedDefault, "default")
	}
	if receivedOverride != "overridden" {
		t.Errorf("override header = %q, want %q", receivedOverride, "overridden")
	}
}

func TestClientGet404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server, nil, nil)

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestClientGet500Exhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server, nil, nil)

	var resp map[string]string
	err := client.Get(context.Background(), server.URL, &resp)
	if !errors.Is(err, errors.ErrCodeServer) {
		t.Errorf("Get() error = %v, want %s", err, errors.ErrCodeServer)
	}
	if calls.Load() != httputil.DefaultMaxAttempts {
		t.Errorf("requests = %d, want %d", calls.Load(), httputil.DefaultMaxAttempts)
	}
}

func TestClientFetchUsesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	client := newTestClient(t, server, c, nil)
	ctx := context.Background()

	for range 3 {
		if out := client.Fetch(ctx, client.Request(server.URL+"/user"), false); !out.OK() {
			t.Fatalf("Fetch() = %v", out)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("requests = %d, want 1 (cached)", calls.Load())
	}

	client.Fetch(ctx, client.Request(server.URL+"/user"), true)
	if calls.Load() != 2 {
		t.Errorf("requests = %d, want 2 after refresh", calls.Load())
	}
}

func TestClientFetchDoesNotCachePending(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	client := newTestClient(t, server, c, nil)
	ctx := context.Background()
	p := httputil.Policy{MaxAttempts: 2}

	client.FetchWith(ctx, client.Request(server.URL), p, false)
	client.FetchWith(ctx, client.Request(server.URL), p, false)
	if calls.Load() != 4 {
		t.Errorf("requests = %d, want 4 (nothing cached)", calls.Load())
	}
}

func TestFetchAllCachesListing(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(`[{"id":1},{"id":2}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	client := newTestClient(t, server, c, nil)
	ctx := context.Background()

	type item struct {
		ID int `json:"id"`
	}
	for range 2 {
		items, out := FetchAll[item](ctx, client, client.Request(server.URL), httputil.PageOptions{}, false)
		if !out.OK() || len(items) != 2 {
			t.Fatalf("FetchAll() = %d items, %v", len(items), out)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("requests = %d, want 2 (two pages, then cached)", calls.Load())
	}
}

func TestFetchAllDoesNotCacheTruncatedListing(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	c, _ := cache.NewFileCache(t.TempDir())
	client := newTestClient(t, server, c, nil)
	ctx := context.Background()
	opts := httputil.PageOptions{MaxPages: 2}

	for range 2 {
		items, out := FetchAll[map[string]int](ctx, client, client.Request(server.URL), opts, false)
		if len(items) != 2 {
			t.Errorf("items = %d, want 2", len(items))
		}
		if !errors.Is(out.Err(), errors.ErrCodeTruncated) {
			t.Fatalf("FetchAll() outcome = %v, want TRUNCATED", out)
		}
	}
	if calls.Load() != 4 {
		t.Errorf("requests = %d, want 4 (nothing cached)", calls.Load())
	}
}

func TestClientCached(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	client := NewClient(c, "test", time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			v.Value = "fetched"
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "calendar:k", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	var second testData
	if err := client.Cached(context.Background(), "calendar:k", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}

	var third testData
	client.Cached(context.Background(), "calendar:k", true, &third, fetch(&third))
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2 after refresh", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)

	var value string
	err := client.Cached(context.Background(), "k", false, &value, func() error {
		return errors.New(errors.ErrCodeNotFound, "no such user")
	})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Cached() error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://api.github.com", []string{"repos", "octocat", "hello"}, "https://api.github.com/repos/octocat/hello"},
		{"https://api.github.com/", []string{"user"}, "https://api.github.com/user"},
		{"https://ghe.example.com/api/v3", []string{"repos", "o", "a b"}, "https://ghe.example.com/api/v3/repos/o/a%20b"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("JoinURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}
