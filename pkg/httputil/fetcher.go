package httputil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ghstats/ghstats/pkg/observability"
)

const (
	httpTimeout         = 30 * time.Second
	tlsHandshakeTimeout = 10 * time.Second

	// maxBodySize caps how much of a response is buffered. The largest
	// GitHub payloads (100 repositories per page) stay well below this.
	maxBodySize = 32 << 20

	// emptyRepoMessage is the text GitHub returns with 409 for repositories
	// that have no commits yet.
	emptyRepoMessage = "Git Repository is empty"
)

var errRetry = stderrors.New("retry")

// NewHTTPClient creates the HTTP client used for GitHub requests, with an
// overall request timeout and a bounded TLS handshake.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSHandshakeTimeout = tlsHandshakeTimeout
	return &http.Client{Timeout: httpTimeout, Transport: transport}
}

// Fetcher issues GET requests and classifies every response into an
// [Outcome], retrying pending and transient results under a [Policy].
type Fetcher struct {
	http    *http.Client
	policy  Policy
	sleeper Sleeper
	logger  *log.Logger
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.http = c
		}
	}
}

// WithPolicy sets the default retry policy used by [Fetcher.Fetch].
func WithPolicy(p Policy) Option {
	return func(f *Fetcher) { f.policy = p.normalize() }
}

// WithSleeper replaces the wait between attempts. Tests use this to observe
// retries without sleeping.
func WithSleeper(s Sleeper) Option {
	return func(f *Fetcher) {
		if s != nil {
			f.sleeper = s
		}
	}
}

// WithLogger sets the logger used for retry progress.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a Fetcher. Without options it uses [NewHTTPClient],
// [DefaultPolicy], [ContextSleeper] and the default charm logger.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		http:    NewHTTPClient(),
		policy:  DefaultPolicy(),
		sleeper: ContextSleeper,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Policy returns the fetcher's default retry policy.
func (f *Fetcher) Policy() Policy { return f.policy }

// Sleeper returns the wait used between attempts, so that other retry loops
// sharing this fetcher's policy also share its sleeper.
func (f *Fetcher) Sleeper() Sleeper { return f.sleeper }

// Fetch performs req under the fetcher's default policy.
func (f *Fetcher) Fetch(ctx context.Context, req Request) Outcome {
	return f.FetchWith(ctx, req, f.policy)
}

// FetchWith performs req, retrying pending and transient outcomes up to
// p.MaxAttempts times with a constant p.Delay between attempts.
//
// Success, Skipped and non-transient failures return immediately. When
// attempts run out the last observed failure is returned; an unresolved 202
// becomes a failure of kind [KindStillComputing]. Cancellation yields
// [KindCanceled].
func (f *Fetcher) FetchWith(ctx context.Context, req Request, p Policy) Outcome {
	p = p.normalize()
	target := req.URL()
	host, path := splitURL(target)

	var last Outcome
	err := RetryWith(ctx, p, f.sleeper, func(attempt int) error {
		last = f.Attempt(ctx, req)
		last.Attempts = attempt
		if !last.Retryable() {
			return nil
		}
		if attempt < p.MaxAttempts {
			f.logRetry(last, p)
			observability.HTTP().OnRetry(ctx, host, path, attempt, p.Delay, last.retryReason())
		}
		return &RetryableError{Err: errRetry}
	})

	switch {
	case err == nil:
		return last
	case !isRetryable(err):
		return Outcome{
			State:    StateFailure,
			Kind:     KindCanceled,
			Reason:   "canceled",
			Cause:    err,
			URL:      target,
			Attempts: last.Attempts,
		}
	case last.State == StatePending:
		last.State = StateFailure
		last.Kind = KindStillComputing
		last.Reason = "statistics still computing"
	}

	f.logger.Debug("giving up", "url", target, "attempts", last.Attempts, "outcome", last)
	return last
}

func (f *Fetcher) logRetry(o Outcome, p Policy) {
	if o.State == StatePending {
		f.logger.Info("statistics still computing, retrying",
			"url", o.URL, "attempt", o.Attempts, "max", p.MaxAttempts, "delay", p.Delay)
		return
	}
	f.logger.Warn("transient failure, retrying",
		"url", o.URL, "attempt", o.Attempts, "max", p.MaxAttempts, "kind", o.Kind, "status", o.Status, "err", o.Cause)
}

// Attempt issues req exactly once and classifies the result. It never
// sleeps and never retries.
func (f *Fetcher) Attempt(ctx context.Context, req Request) Outcome {
	target := req.URL()
	host, path := splitURL(target)
	hooks := observability.HTTP()

	httpReq, err := req.build(ctx)
	if err != nil {
		return Outcome{State: StateFailure, Kind: KindClient, Reason: "invalid request", Cause: err, URL: target, Attempts: 1}
	}

	hooks.OnRequest(ctx, http.MethodGet, host, path)
	start := time.Now()
	resp, err := f.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return transportFailure(ctx, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return transportFailure(ctx, target, err)
	}

	o := Classify(resp.StatusCode, resp.Header, body)
	o.URL = target
	o.Attempts = 1
	return o
}

// Classify maps an HTTP response onto an [Outcome]:
//
//   - 200 and other 2xx: Success
//   - 202: Pending, with the Retry-After hint if present
//   - 204: Skipped (GitHub's answer for statistics of empty repositories)
//   - 409 "Git Repository is empty": Skipped
//   - 408, 5xx: transient failure
//   - 429, and 403 with an exhausted rate limit: rate_limited
//   - any other status: immediate failure
func Classify(status int, header http.Header, body []byte) Outcome {
	o := Outcome{Status: status, Header: header}

	switch {
	case status == http.StatusAccepted:
		o.State = StatePending
		o.RetryAfter = retryAfter(header)
		return o
	case status == http.StatusNoContent:
		o.State = StateSkipped
		o.Reason = "no content"
		return o
	case status >= 200 && status < 300:
		o.State = StateSuccess
		o.Body = body
		return o
	}

	o.State = StateFailure
	o.Reason = apiMessage(body)

	switch {
	case status == http.StatusConflict:
		if strings.Contains(o.Reason, emptyRepoMessage) {
			o.State = StateSkipped
			o.Reason = "empty repository"
			o.Body = body
			return o
		}
		o.Kind = KindConflict
	case status == http.StatusUnauthorized:
		o.Kind = KindUnauthorized
	case status == http.StatusForbidden:
		if header.Get("X-RateLimit-Remaining") == "0" || header.Get("Retry-After") != "" {
			o.Kind = KindRateLimited
			o.RetryAfter = retryAfter(header)
		} else {
			o.Kind = KindForbidden
		}
	case status == http.StatusNotFound:
		o.Kind = KindNotFound
	case status == http.StatusRequestTimeout:
		o.Kind = KindTimeout
	case status == http.StatusTooManyRequests:
		o.Kind = KindRateLimited
		o.RetryAfter = retryAfter(header)
	case status >= 500:
		o.Kind = KindServer
	default:
		o.Kind = KindClient
	}
	if o.Reason == "" {
		o.Reason = http.StatusText(status)
	}
	return o
}

// Retryable reports whether another attempt could produce a different
// outcome. Pending results and transient failures qualify; 429 does too,
// while a 403 rate limit does not since the reset is typically far away.
func (o Outcome) Retryable() bool {
	switch o.State {
	case StatePending:
		return true
	case StateFailure:
		return o.Kind.Transient() || o.Status == http.StatusTooManyRequests
	}
	return false
}

func (o Outcome) retryReason() string {
	if o.State == StatePending {
		return string(KindStillComputing)
	}
	return string(o.Kind)
}

func transportFailure(ctx context.Context, target string, err error) Outcome {
	o := Outcome{State: StateFailure, Kind: KindNetwork, Cause: err, URL: target, Attempts: 1, Reason: "request failed"}
	var netErr net.Error
	switch {
	case ctx.Err() != nil:
		o.Kind = KindCanceled
		o.Reason = "canceled"
		o.Cause = ctx.Err()
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.As(err, &netErr) && netErr.Timeout():
		o.Kind = KindTimeout
		o.Reason = "request timed out"
	}
	return o
}

// apiMessage extracts GitHub's {"message": "..."} error text.
func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	return payload.Message
}

// retryAfter reads Retry-After (seconds) or X-RateLimit-Reset (unix time).
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			if d := time.Until(time.Unix(unix, 0)); d > 0 {
				return d
			}
		}
	}
	return 0
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
