package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/ghstats/ghstats/pkg/errors"
)

// User returns the authenticated user.
func (c *Client) User(ctx context.Context) (*gh.User, error) {
	var u gh.User
	if err := c.get(ctx, c.Request(c.url("user")), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListRepos returns every repository the authenticated user can access,
// most recently updated first.
func (c *Client) ListRepos(ctx context.Context) ([]*gh.Repository, error) {
	req := c.Request(c.url("user", "repos")).WithQuery("sort", "updated")
	return list[*gh.Repository](ctx, c, req)
}

// ListOrgRepos returns every repository of an organization.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]*gh.Repository, error) {
	if err := errors.ValidateLogin(org); err != nil {
		return nil, err
	}
	req := c.Request(c.url("orgs", org, "repos")).WithQuery("sort", "updated")
	return list[*gh.Repository](ctx, c, req)
}

// Repos returns the organization's repositories when org is set, otherwise
// the authenticated user's.
func (c *Client) Repos(ctx context.Context, org string) ([]*gh.Repository, error) {
	if org != "" {
		return c.ListOrgRepos(ctx, org)
	}
	return c.ListRepos(ctx)
}

// CountStarred returns how many repositories the user has starred.
func (c *Client) CountStarred(ctx context.Context) (int, error) {
	return c.count(ctx, c.Request(c.url("user", "starred")))
}

// CountOrgs returns how many organizations the user belongs to.
func (c *Client) CountOrgs(ctx context.Context) (int, error) {
	return c.count(ctx, c.Request(c.url("user", "orgs")))
}

// CountIssues returns how many issues and pull requests the user created,
// open or closed, across all repositories.
func (c *Client) CountIssues(ctx context.Context) (int, error) {
	req := c.Request(c.url("issues")).WithQuery("filter", "created").WithQuery("state", "all")
	return c.count(ctx, req)
}

// CountGists returns how many gists the user owns.
func (c *Client) CountGists(ctx context.Context) (int, error) {
	return c.count(ctx, c.Request(c.url("gists")))
}

// ListProjects returns the user's classic projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	return list[Project](ctx, c, c.Request(c.url("user", "projects")))
}

// Profile aggregates the counters shown at the top of the activity report.
type Profile struct {
	Login       string
	Name        string
	PublicRepos int
	Followers   int
	Following   int
	Starred     int
	Orgs        int
	Issues      int
	Gists       int
	CreatedAt   time.Time
}

// Profile fetches the user and every profile counter. A failing counter is
// returned in errs and left at zero; only a failing /user call is fatal.
func (c *Client) Profile(ctx context.Context) (*Profile, map[string]error, error) {
	u, err := c.User(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := &Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
	}

	errs := map[string]error{}
	counters := []struct {
		name  string
		dst   *int
		count func(context.Context) (int, error)
	}{
		{"starred", &p.Starred, c.CountStarred},
		{"orgs", &p.Orgs, c.CountOrgs},
		{"issues", &p.Issues, c.CountIssues},
		{"gists", &p.Gists, c.CountGists},
	}
	for _, ctr := range counters {
		n, err := ctr.count(ctx)
		if err != nil {
			errs[ctr.name] = err
			continue
		}
		*ctr.dst = n
	}
	return p, errs, nil
}
