package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ghstats/ghstats/pkg/httputil"
)

// DefaultCacheTTL is how long API responses stay cached.
const DefaultCacheTTL = 24 * time.Hour

// NewHTTPClient creates the HTTP client shared by the REST and GraphQL
// clients. See [httputil.NewHTTPClient].
func NewHTTPClient() *http.Client {
	return httputil.NewHTTPClient()
}

// JoinURL appends path segments to base, escaping each segment.
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
