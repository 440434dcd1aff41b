package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults used by the GitHub statistics endpoints. GitHub usually finishes
// computing a statistic within a few seconds, so five tries four seconds apart
// cover the common case without stalling a report for long.
const (
	DefaultMaxAttempts = 5
	DefaultDelay       = 4 * time.Second
)

// Policy bounds how often an operation is attempted and how long to wait
// between attempts. The delay is constant: no growth, no jitter.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy returns the policy used when a call site configures nothing.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

// normalize clamps nonsensical values so that at least one attempt is made.
func (p Policy) normalize() Policy {
	p.MaxAttempts = max(p.MaxAttempts, 1)
	p.Delay = max(p.Delay, 0)
	return p
}

// Sleeper waits between attempts. Implementations must return early with
// ctx.Err() when ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the [Sleeper] interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// ContextSleeper sleeps on a timer and aborts as soon as the context is done.
var ContextSleeper Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
})

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses, pending
// statistics) with this type so that [Retry] knows to attempt the operation
// again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry executes fn up to attempts times, waiting delay between attempts.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return RetryWith(ctx, Policy{MaxAttempts: attempts, Delay: delay}, nil, func(int) error {
		return fn()
	})
}

// RetryWith is [Retry] with an explicit policy and sleeper. fn receives the
// 1-based attempt number. A nil sleeper uses [ContextSleeper].
//
// The sleeper runs only between attempts: an operation that succeeds on
// attempt k+1 has slept exactly k times.
func RetryWith(ctx context.Context, p Policy, s Sleeper, fn func(attempt int) error) error {
	p = p.normalize()
	if s == nil {
		s = ContextSleeper
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(attempt); lastErr == nil {
			return nil
		} else if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.MaxAttempts {
			if err := s.Sleep(ctx, p.Delay); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
