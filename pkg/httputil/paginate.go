package httputil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghstats/ghstats/pkg/errors"
)

const (
	// DefaultPerPage is GitHub's maximum page size.
	DefaultPerPage = 100

	// DefaultMaxPages stops a listing that never returns an empty page.
	DefaultMaxPages = 100
)

// PageOptions controls [FetchAll].
type PageOptions struct {
	PerPage  int // Items per page; 0 means DefaultPerPage
	MaxPages int // Page cap; 0 means DefaultMaxPages
}

func (o PageOptions) normalize() PageOptions {
	if o.PerPage <= 0 {
		o.PerPage = DefaultPerPage
	}
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	return o
}

// FetchAll requests page=1,2,… of req until a page decodes to an empty JSON
// array, accumulating items in order. Each page goes through f.Fetch, so
// pages are retried under the fetcher's policy.
//
// A page that does not succeed stops the loop: the items gathered so far are
// returned together with that page's outcome (which may be Skipped, for
// example when listing commits of an empty repository). Reaching MaxPages
// without seeing an empty page is a KindTruncated failure: the items are
// returned but the listing is known to be incomplete.
func FetchAll[T any](ctx context.Context, f *Fetcher, req Request, opts PageOptions) ([]T, Outcome) {
	opts = opts.normalize()

	var items []T
	var out Outcome
	for page := 1; page <= opts.MaxPages; page++ {
		out = f.Fetch(ctx, req.WithPage(page, opts.PerPage))
		if !out.OK() {
			return items, out
		}

		var batch []T
		if err := json.Unmarshal(out.Body, &batch); err != nil {
			return items, Outcome{
				State:    StateFailure,
				Status:   out.Status,
				Kind:     KindDecode,
				Reason:   "page is not a JSON array",
				Cause:    errors.Wrap(errors.ErrCodeDecode, err, "page %d", page),
				URL:      out.URL,
				Attempts: out.Attempts,
			}
		}
		if len(batch) == 0 {
			return items, out
		}
		items = append(items, batch...)
	}

	f.logger.Warn("page limit reached", "url", req.URL(), "pages", opts.MaxPages, "items", len(items))
	return items, Outcome{
		State:    StateFailure,
		Status:   out.Status,
		Header:   out.Header,
		Kind:     KindTruncated,
		Reason:   fmt.Sprintf("stopped after %d pages", opts.MaxPages),
		URL:      req.URL(),
		Attempts: out.Attempts,
	}
}
