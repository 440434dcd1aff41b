package httputil

import (
	"context"
	"maps"
	"net/http"
	"net/url"
	"strconv"
)

// Request describes a GET against a JSON API. It is a value type: the
// constructor copies its inputs and every With* method returns a new Request,
// so a Request can be shared between goroutines and reused across attempts.
type Request struct {
	url    string
	header http.Header
	query  url.Values
}

// NewRequest builds a Request for rawURL with the given headers. Query
// parameters already present in rawURL are kept; parameters added with
// [Request.WithQuery] are merged on top.
func NewRequest(rawURL string, header map[string]string) Request {
	h := make(http.Header, len(header))
	for k, v := range header {
		h.Set(k, v)
	}
	return Request{url: rawURL, header: h, query: url.Values{}}
}

// WithQuery returns a copy of r with query parameter key set to value.
func (r Request) WithQuery(key, value string) Request {
	out := r.clone()
	out.query.Set(key, value)
	return out
}

// WithHeader returns a copy of r with header key set to value.
func (r Request) WithHeader(key, value string) Request {
	out := r.clone()
	out.header.Set(key, value)
	return out
}

// WithPage returns a copy of r asking for the given page of perPage items.
func (r Request) WithPage(page, perPage int) Request {
	return r.WithQuery("page", strconv.Itoa(page)).WithQuery("per_page", strconv.Itoa(perPage))
}

// URL returns the target URL with all query parameters applied.
// If the base URL cannot be parsed it is returned unchanged.
func (r Request) URL() string {
	if len(r.query) == 0 {
		return r.url
	}
	u, err := url.Parse(r.url)
	if err != nil {
		return r.url
	}
	q := u.Query()
	for k, vs := range r.query {
		q[k] = append([]string(nil), vs...)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Header returns a copy of the request headers.
func (r Request) Header() http.Header {
	return r.header.Clone()
}

// Query returns a copy of the query parameters added with WithQuery.
func (r Request) Query() url.Values {
	out := make(url.Values, len(r.query))
	for k, vs := range r.query {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

func (r Request) clone() Request {
	h := r.header.Clone()
	if h == nil {
		h = http.Header{}
	}
	return Request{url: r.url, header: h, query: r.Query()}
}

func (r Request) build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(), nil)
	if err != nil {
		return nil, err
	}
	maps.Copy(req.Header, r.header.Clone())
	return req, nil
}
