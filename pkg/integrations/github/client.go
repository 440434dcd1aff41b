package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/ghstats/ghstats/pkg/buildinfo"
	"github.com/ghstats/ghstats/pkg/cache"
	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/httputil"
	"github.com/ghstats/ghstats/pkg/integrations"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// APIVersion pins the REST API version sent with every request.
	APIVersion = "2022-11-28"

	cacheNamespace = "github"
)

// ErrEmptyRepository marks a repository that has no commits. Callers
// treat it as a skip, not a failure.
var ErrEmptyRepository = stderrors.New("repository is empty")

// Options configures a [Client].
type Options struct {
	BaseURL    string        // REST base URL; DefaultBaseURL when empty
	GraphQLURL string        // GraphQL endpoint; BaseURL + "/graphql" when empty
	CacheTTL   time.Duration // integrations.DefaultCacheTTL when zero
	Refresh    bool          // bypass cached responses and overwrite them

	// HTTPClient is the base client for both REST and GraphQL.
	HTTPClient *http.Client

	// Fetcher options (policy, sleeper, logger) for REST calls.
	Fetcher []httputil.Option
}

// Client provides typed access to the GitHub REST and GraphQL APIs.
type Client struct {
	*integrations.Client
	baseURL string
	gql     *githubv4.Client
	refresh bool
}

// NewClient creates a GitHub client. An empty token sends unauthenticated
// requests, which GitHub limits to 60 per hour and which cannot see private
// repositories or the /user endpoints. A nil cache disables caching.
func NewClient(token string, c cache.Cache, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	if opts.GraphQLURL == "" {
		opts.GraphQLURL = opts.BaseURL + "/graphql"
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = integrations.DefaultCacheTTL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = integrations.NewHTTPClient()
	}

	fetcherOpts := append([]httputil.Option{httputil.WithHTTPClient(opts.HTTPClient)}, opts.Fetcher...)
	base := integrations.NewClient(c, cacheNamespace, opts.CacheTTL, Headers(token), fetcherOpts...)
	base.SetKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), cache.TokenScope(token)))

	return &Client{
		Client:  base,
		baseURL: opts.BaseURL,
		gql:     githubv4.NewEnterpriseClient(opts.GraphQLURL, graphQLHTTPClient(token, opts.HTTPClient)),
		refresh: opts.Refresh,
	}
}

// Headers returns the request headers for REST calls. The token is only
// ever placed in the Authorization header.
func Headers(token string) map[string]string {
	h := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": APIVersion,
		"User-Agent":           buildinfo.UserAgent(),
	}
	if token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// graphQLHTTPClient wraps base with an oauth2 static token source.
func graphQLHTTPClient(token string, base *http.Client) *http.Client {
	if token == "" {
		return base
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = base.Timeout
	return hc
}

// BaseURL returns the REST base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(segments ...string) string {
	return integrations.JoinURL(c.baseURL, segments...)
}

// get fetches one resource and decodes it into v. An empty-repository
// outcome becomes [ErrEmptyRepository].
func (c *Client) get(ctx context.Context, req httputil.Request, v any) error {
	out := c.Fetch(ctx, req, c.refresh)
	if out.Skipped() {
		return ErrEmptyRepository
	}
	return out.Decode(v)
}

// list fetches every page of req.
func list[T any](ctx context.Context, c *Client, req httputil.Request) ([]T, error) {
	items, out := integrations.FetchAll[T](ctx, c.Client, req, httputil.PageOptions{}, c.refresh)
	if out.Skipped() {
		return items, ErrEmptyRepository
	}
	if err := out.Err(); err != nil {
		return items, err
	}
	return items, nil
}

// count returns the number of items in a paginated listing.
func (c *Client) count(ctx context.Context, req httputil.Request) (int, error) {
	items, err := list[json.RawMessage](ctx, c, req)
	return len(items), err
}

// requireRepo validates an owner/name pair before it is put into a URL.
func requireRepo(owner, name string) error {
	if err := errors.ValidateLogin(owner); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRepo, err, "invalid owner %q", owner)
	}
	return errors.ValidateRepoName(name)
}
