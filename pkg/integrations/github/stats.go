package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sort"
	"time"
)

// CodeFrequency returns the weekly additions and deletions of a repository,
// oldest week first. GitHub answers 202 until the statistic is computed;
// the fetcher retries those. An empty repository yields [ErrEmptyRepository].
func (c *Client) CodeFrequency(ctx context.Context, owner, name string) ([]WeeklyChange, error) {
	if err := requireRepo(owner, name); err != nil {
		return nil, err
	}
	var weeks []WeeklyChange
	if err := c.get(ctx, c.Request(c.url("repos", owner, name, "stats", "code_frequency")), &weeks); err != nil {
		return nil, err
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week.Before(weeks[j].Week) })
	return weeks, nil
}

// CountCommitsSince counts commits on the default branch since the given
// time. An empty repository counts zero commits and reports
// [ErrEmptyRepository] so the caller can note the skip.
func (c *Client) CountCommitsSince(ctx context.Context, owner, name string, since time.Time) (int, error) {
	if err := requireRepo(owner, name); err != nil {
		return 0, err
	}
	req := c.Request(c.url("repos", owner, name, "commits")).
		WithQuery("since", since.UTC().Format(time.RFC3339))
	items, err := list[json.RawMessage](ctx, c, req)
	if stderrors.Is(err, ErrEmptyRepository) {
		return 0, err
	}
	return len(items), err
}
