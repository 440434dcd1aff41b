package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghstats/ghstats/pkg/errors"
)

// recordingSleeper counts waits instead of sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
	return ctx.Err()
}

func (s *recordingSleeper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sleeps)
}

// roundTripFunc lets tests answer requests without a network.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(r *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}

func newTestFetcher(t *testing.T, client *http.Client, sleeper Sleeper) *Fetcher {
	t.Helper()
	return NewFetcher(
		WithHTTPClient(client),
		WithPolicy(Policy{MaxAttempts: 5, Delay: 4 * time.Second}),
		WithSleeper(sleeper),
		WithLogger(log.New(io.Discard)),
	)
}

func TestFetchPendingThenSuccess(t *testing.T) {
	for _, pending := range []int{0, 1, 3, 4} {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if int(calls.Add(1)) <= pending {
				w.WriteHeader(http.StatusAccepted)
				w.Write([]byte("{}"))
				return
			}
			w.Write([]byte(`[[1700000000, 10, -3]]`))
		}))

		sleeper := &recordingSleeper{}
		f := newTestFetcher(t, server.Client(), sleeper)
		out := f.Fetch(context.Background(), NewRequest(server.URL+"/stats/code_frequency", nil))
		server.Close()

		if !out.OK() {
			t.Fatalf("pending=%d: outcome = %v, want success", pending, out)
		}
		var rows [][3]int64
		if err := out.Decode(&rows); err != nil {
			t.Fatalf("pending=%d: Decode() error: %v", pending, err)
		}
		if len(rows) != 1 || rows[0][1] != 10 {
			t.Errorf("pending=%d: rows = %v", pending, rows)
		}
		if got := int(calls.Load()); got != pending+1 {
			t.Errorf("pending=%d: requests = %d, want %d", pending, got, pending+1)
		}
		if got := sleeper.count(); got != pending {
			t.Errorf("pending=%d: sleeps = %d, want %d", pending, got, pending)
		}
		for _, d := range sleeper.sleeps {
			if d != 4*time.Second {
				t.Errorf("pending=%d: sleep = %v, want constant 4s", pending, d)
			}
		}
		if out.Attempts != pending+1 {
			t.Errorf("pending=%d: Attempts = %d, want %d", pending, out.Attempts, pending+1)
		}
	}
}

func TestFetchAlwaysPending(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(context.Background(), NewRequest(server.URL, nil))

	if out.State != StateFailure || out.Kind != KindStillComputing {
		t.Fatalf("outcome = %v, want failure(still_computing)", out)
	}
	if got := calls.Load(); got != 5 {
		t.Errorf("requests = %d, want 5", got)
	}
	if got := sleeper.count(); got != 4 {
		t.Errorf("sleeps = %d, want 4", got)
	}
	if err := out.Err(); !errors.Is(err, errors.ErrCodeStatsPending) {
		t.Errorf("Err() = %v, want code %s", err, errors.ErrCodeStatsPending)
	}
}

func TestFetchEmptyRepositorySkipped(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Git Repository is empty.","documentation_url":"https://docs.github.com"}`))
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(context.Background(), NewRequest(server.URL, nil))

	if !out.Skipped() {
		t.Fatalf("outcome = %v, want skipped", out)
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v, want nil for skipped", out.Err())
	}
	if calls.Load() != 1 || sleeper.count() != 0 {
		t.Errorf("requests = %d, sleeps = %d; want 1, 0", calls.Load(), sleeper.count())
	}
}

func TestFetchOtherConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Merge conflict"}`))
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(context.Background(), NewRequest(server.URL, nil))

	if out.State != StateFailure || out.Kind != KindConflict {
		t.Fatalf("outcome = %v, want failure(conflict)", out)
	}
	if out.Reason != "Merge conflict" {
		t.Errorf("Reason = %q, want API message", out.Reason)
	}
	if !errors.Is(out.Err(), errors.ErrCodeConflict) {
		t.Errorf("Err() = %v, want code %s", out.Err(), errors.ErrCodeConflict)
	}
	if sleeper.count() != 0 {
		t.Errorf("sleeps = %d, want 0", sleeper.count())
	}
}

func TestFetchNotFoundFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(context.Background(), NewRequest(server.URL, nil))

	if out.Kind != KindNotFound {
		t.Fatalf("outcome = %v, want failure(not_found)", out)
	}
	if calls.Load() != 1 || sleeper.count() != 0 {
		t.Errorf("requests = %d, sleeps = %d; want 1, 0", calls.Load(), sleeper.count())
	}
	if !errors.Is(out.Err(), errors.ErrCodeNotFound) {
		t.Errorf("Err() = %v, want code %s", out.Err(), errors.ErrCodeNotFound)
	}
}

func TestFetchTransportErrorThenSuccess(t *testing.T) {
	var calls int
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return nil, stderrors.New("remote error: tls: handshake failure")
		}
		return jsonResponse(r, http.StatusOK, `{"login":"octocat"}`), nil
	})}

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, client, sleeper)
	out := f.Fetch(context.Background(), NewRequest("https://api.github.com/user", nil))

	if !out.OK() {
		t.Fatalf("outcome = %v, want success", out)
	}
	if calls != 2 || sleeper.count() != 1 {
		t.Errorf("requests = %d, sleeps = %d; want 2, 1", calls, sleeper.count())
	}
}

func TestFetchTransportErrorExhausted(t *testing.T) {
	var calls int
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return nil, stderrors.New("connection reset by peer")
	})}

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, client, sleeper)
	out := f.Fetch(context.Background(), NewRequest("https://api.github.com/user", nil))

	if out.Kind != KindNetwork {
		t.Fatalf("outcome = %v, want failure(network)", out)
	}
	if calls != 5 || sleeper.count() != 4 {
		t.Errorf("requests = %d, sleeps = %d; want 5, 4", calls, sleeper.count())
	}
	if out.Cause == nil || !strings.Contains(out.Cause.Error(), "connection reset") {
		t.Errorf("Cause = %v, want last transport error", out.Cause)
	}
	if !errors.Is(out.Err(), errors.ErrCodeNetwork) {
		t.Errorf("Err() = %v, want code %s", out.Err(), errors.ErrCodeNetwork)
	}
}

func TestFetchServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	sleeper := &recordingSleeper{}
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(context.Background(), NewRequest(server.URL, nil))

	if !out.OK() {
		t.Fatalf("outcome = %v, want success", out)
	}
	if calls.Load() != 3 || sleeper.count() != 2 {
		t.Errorf("requests = %d, sleeps = %d; want 3, 2", calls.Load(), sleeper.count())
	}
}

func TestFetchCanceledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sleeper := SleeperFunc(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})
	f := newTestFetcher(t, server.Client(), sleeper)
	out := f.Fetch(ctx, NewRequest(server.URL, nil))

	if out.Kind != KindCanceled {
		t.Fatalf("outcome = %v, want failure(canceled)", out)
	}
	if out.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", out.Attempts)
	}
	if !errors.Is(out.Err(), errors.ErrCodeCanceled) {
		t.Errorf("Err() = %v, want code %s", out.Err(), errors.ErrCodeCanceled)
	}
}

func TestFetchSendsHeadersAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("since"); got != "2024-04-01T00:00:00Z" {
			t.Errorf("since = %q", got)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.Client(), &recordingSleeper{})
	req := NewRequest(server.URL, map[string]string{"Authorization": "Bearer test-token"}).
		WithQuery("since", "2024-04-01T00:00:00Z")
	if out := f.Fetch(context.Background(), req); !out.OK() {
		t.Fatalf("outcome = %v, want success", out)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    http.Header
		body      string
		wantState State
		wantKind  Kind
		wantRetry bool
	}{
		{"ok", 200, nil, `{}`, StateSuccess, KindNone, false},
		{"accepted", 202, nil, ``, StatePending, KindNone, true},
		{"no content", 204, nil, ``, StateSkipped, KindNone, false},
		{"empty repo", 409, nil, `{"message":"Git Repository is empty."}`, StateSkipped, KindNone, false},
		{"conflict", 409, nil, `{"message":"other"}`, StateFailure, KindConflict, false},
		{"bad request", 400, nil, ``, StateFailure, KindClient, false},
		{"unauthorized", 401, nil, `{"message":"Bad credentials"}`, StateFailure, KindUnauthorized, false},
		{"forbidden", 403, nil, ``, StateFailure, KindForbidden, false},
		{"rate limit exhausted", 403, http.Header{"X-Ratelimit-Remaining": {"0"}}, ``, StateFailure, KindRateLimited, false},
		{"not found", 404, nil, ``, StateFailure, KindNotFound, false},
		{"request timeout", 408, nil, ``, StateFailure, KindTimeout, true},
		{"gone", 410, nil, ``, StateFailure, KindClient, false},
		{"unprocessable", 422, nil, ``, StateFailure, KindClient, false},
		{"too many requests", 429, http.Header{"Retry-After": {"30"}}, ``, StateFailure, KindRateLimited, true},
		{"server error", 500, nil, ``, StateFailure, KindServer, true},
		{"unavailable", 503, nil, ``, StateFailure, KindServer, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Classify(tt.status, tt.header, []byte(tt.body))
			if o.State != tt.wantState {
				t.Errorf("State = %v, want %v", o.State, tt.wantState)
			}
			if o.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", o.Kind, tt.wantKind)
			}
			if o.Retryable() != tt.wantRetry {
				t.Errorf("Retryable() = %v, want %v", o.Retryable(), tt.wantRetry)
			}
		})
	}
}

func TestClassifyRetryAfter(t *testing.T) {
	o := Classify(http.StatusTooManyRequests, http.Header{"Retry-After": {"30"}}, nil)
	if o.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", o.RetryAfter)
	}

	var rl *errors.RateLimitedError
	if !stderrors.As(o.Err(), &rl) {
		t.Fatalf("Err() = %v, want *RateLimitedError in chain", o.Err())
	}
	if rl.RetryAfter != 30*time.Second {
		t.Errorf("RateLimitedError.RetryAfter = %v, want 30s", rl.RetryAfter)
	}
}

func TestOutcomeDecodeFailure(t *testing.T) {
	o := Outcome{State: StateSuccess, Body: []byte(`not json`), URL: "https://api.github.com/user"}
	var v map[string]any
	if err := o.Decode(&v); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("Decode() error = %v, want code %s", err, errors.ErrCodeDecode)
	}

	skipped := Outcome{State: StateSkipped, Reason: "empty repository"}
	if err := skipped.Decode(&v); err == nil {
		t.Error("Decode() on skipped outcome should fail")
	}
}
