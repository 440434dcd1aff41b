package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ghstats/ghstats/pkg/errors"
)

// State is the coarse classification of a fetch attempt.
type State int

const (
	// StateFailure is a terminal error; see [Outcome.Kind].
	StateFailure State = iota
	// StateSuccess carries a usable 200 payload.
	StateSuccess
	// StatePending means the server accepted the request but is still
	// computing the result (HTTP 202).
	StatePending
	// StateSkipped means the resource exists but has nothing to report,
	// such as an empty repository. It is neither a success nor an error.
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StatePending:
		return "pending"
	case StateSkipped:
		return "skipped"
	default:
		return "failure"
	}
}

// Kind names why an attempt failed.
type Kind string

const (
	KindNone           Kind = ""
	KindStillComputing Kind = "still_computing"
	KindNetwork        Kind = "network"
	KindTimeout        Kind = "timeout"
	KindServer         Kind = "server"
	KindRateLimited    Kind = "rate_limited"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindClient         Kind = "client"
	KindDecode         Kind = "decode"
	KindTruncated      Kind = "truncated"
	KindCanceled       Kind = "canceled"
)

// Transient reports whether a failure of this kind is worth another attempt.
func (k Kind) Transient() bool {
	switch k {
	case KindStillComputing, KindNetwork, KindTimeout, KindServer:
		return true
	}
	return false
}

// Code maps the kind onto the error code surfaced to callers.
func (k Kind) Code() errors.Code {
	switch k {
	case KindStillComputing:
		return errors.ErrCodeStatsPending
	case KindNetwork:
		return errors.ErrCodeNetwork
	case KindTimeout:
		return errors.ErrCodeTimeout
	case KindServer:
		return errors.ErrCodeServer
	case KindRateLimited:
		return errors.ErrCodeRateLimited
	case KindUnauthorized:
		return errors.ErrCodeUnauthorized
	case KindForbidden:
		return errors.ErrCodeForbidden
	case KindNotFound:
		return errors.ErrCodeNotFound
	case KindConflict:
		return errors.ErrCodeConflict
	case KindClient:
		return errors.ErrCodeClientError
	case KindDecode:
		return errors.ErrCodeDecode
	case KindTruncated:
		return errors.ErrCodeTruncated
	case KindCanceled:
		return errors.ErrCodeCanceled
	}
	return errors.ErrCodeInternal
}

// Outcome is the classified result of one or more attempts at a [Request].
//
// A single attempt produces exactly one Outcome. The fetch loop returns the
// last one, with Attempts set to the number of requests issued.
type Outcome struct {
	State  State
	Status int         // HTTP status; 0 when no response was received
	Body   []byte      // Raw response body for Success and Skipped
	Header http.Header // Response headers, nil when no response was received

	// RetryAfter is the server's hint for when to ask again, parsed from
	// Retry-After or X-RateLimit-Reset. Zero when absent.
	RetryAfter time.Duration

	Kind   Kind   // Failure kind; KindNone unless State is StateFailure
	Reason string // Human-readable detail for Skipped and Failure
	Cause  error  // Last transport or decode error, if any

	URL      string
	Attempts int
}

// OK reports whether the outcome carries a usable payload.
func (o Outcome) OK() bool { return o.State == StateSuccess }

// Skipped reports whether the resource was deliberately not processed.
func (o Outcome) Skipped() bool { return o.State == StateSkipped }

// Decode unmarshals the JSON payload of a successful outcome into v.
func (o Outcome) Decode(v any) error {
	if o.State != StateSuccess {
		if err := o.Err(); err != nil {
			return err
		}
		return errors.New(errors.ErrCodeInternal, "no payload to decode (%s)", o.State)
	}
	if err := json.Unmarshal(o.Body, v); err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "decode %s", o.URL)
	}
	return nil
}

// Err converts a failure into a coded error. Success and Skipped return nil.
// A pending outcome that was never resolved reports still-computing.
func (o Outcome) Err() error {
	switch o.State {
	case StateSuccess, StateSkipped:
		return nil
	case StatePending:
		return errors.New(errors.ErrCodeStatsPending, "%s still computing after %d attempts", o.URL, o.Attempts)
	}

	if o.Kind == KindRateLimited {
		return errors.Wrap(errors.ErrCodeRateLimited,
			&errors.RateLimitedError{RetryAfter: o.RetryAfter, Message: o.Reason},
			"GET %s", o.URL)
	}
	msg := o.describe()
	if o.Cause != nil {
		return errors.Wrap(o.Kind.Code(), o.Cause, "%s", msg)
	}
	return errors.New(o.Kind.Code(), "%s", msg)
}

func (o Outcome) describe() string {
	msg := fmt.Sprintf("GET %s", o.URL)
	if o.Status != 0 {
		msg += fmt.Sprintf(": status %d", o.Status)
	}
	if o.Reason != "" {
		msg += ": " + o.Reason
	}
	if o.Attempts > 1 {
		msg += fmt.Sprintf(" (after %d attempts)", o.Attempts)
	}
	return msg
}

func (o Outcome) String() string {
	switch o.State {
	case StateFailure:
		return fmt.Sprintf("failure(%s)", o.Kind)
	case StateSkipped:
		return fmt.Sprintf("skipped(%s)", o.Reason)
	}
	return o.State.String()
}
