package github

import (
	"context"
	"strconv"

	gh "github.com/google/go-github/v74/github"
)

// ListPulls returns every pull request of a repository, open and closed,
// newest first.
func (c *Client) ListPulls(ctx context.Context, owner, name string) ([]*gh.PullRequest, error) {
	if err := requireRepo(owner, name); err != nil {
		return nil, err
	}
	req := c.Request(c.url("repos", owner, name, "pulls")).
		WithQuery("state", "all").
		WithQuery("sort", "created").
		WithQuery("direction", "desc")
	return list[*gh.PullRequest](ctx, c, req)
}

// ListReviews returns the reviews submitted on one pull request.
func (c *Client) ListReviews(ctx context.Context, owner, name string, number int) ([]*gh.PullRequestReview, error) {
	if err := requireRepo(owner, name); err != nil {
		return nil, err
	}
	req := c.Request(c.url("repos", owner, name, "pulls", strconv.Itoa(number), "reviews"))
	return list[*gh.PullRequestReview](ctx, c, req)
}

// SearchIssues runs an issue search and returns the first page of results
// together with the total match count. Qualifiers such as
// "reviewed-by:octocat" or "author:octocat type:pr state:open" go in query.
func (c *Client) SearchIssues(ctx context.Context, query string) (*gh.IssuesSearchResult, error) {
	req := c.Request(c.url("search", "issues")).
		WithQuery("q", query).
		WithQuery("per_page", "100")
	var res gh.IssuesSearchResult
	if err := c.get(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
