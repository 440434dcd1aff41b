package report

import (
	"context"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/ghstats/ghstats/pkg/stats"
)

// SearchCount is an issue search total plus the matches updated in range.
type SearchCount struct {
	Query   string
	Total   int
	InRange int
}

// SummaryReport is a user's work over a date range.
type SummaryReport struct {
	Meta
	User  string
	Range stats.DateRange

	Repos        int
	ReposInRange []*gh.Repository

	// NameFilter matches are taken from ReposInRange.
	NameFilter  string
	NameMatches []string

	Projects int
	Reviews  SearchCount
	OpenPRs  SearchCount
}

// Summary counts repositories updated in rng, projects, reviews done and
// open pull requests. Each section fails independently.
func (r *Runner) Summary(ctx context.Context, user string, rng stats.DateRange, nameFilter string) (*SummaryReport, error) {
	rn := r.start(ctx, "summary")
	defer rn.stop(ctx, r.now)

	login, err := r.login(ctx, user)
	if err != nil {
		return nil, err
	}
	rep := &SummaryReport{User: login, Range: rng, NameFilter: nameFilter}

	repos, err := r.GitHub.Repos(ctx, r.Org)
	if rn.record(ctx, "repositories", err) {
		rn.ok()
		rep.Repos = len(repos)
		rep.ReposInRange = stats.FilterByDate(repos, rng, func(repo *gh.Repository) time.Time {
			return repo.GetUpdatedAt().Time
		})
		if nameFilter != "" {
			for _, repo := range rep.ReposInRange {
				if strings.Contains(repo.GetName(), nameFilter) {
					rep.NameMatches = append(rep.NameMatches, repo.GetName())
				}
			}
		}
	}

	if err := canceled(ctx, rn.meta.Report); err != nil {
		return nil, err
	}
	projects, err := r.GitHub.ListProjects(ctx)
	if rn.record(ctx, "projects", err) {
		rn.ok()
		rep.Projects = len(projects)
	}

	searches := []struct {
		item string
		dst  *SearchCount
		q    string
	}{
		{"reviews", &rep.Reviews, "reviewed-by:" + login},
		{"open pull requests", &rep.OpenPRs, "author:" + login + " type:pr state:open"},
	}
	for _, s := range searches {
		if err := canceled(ctx, rn.meta.Report); err != nil {
			return nil, err
		}
		res, err := r.GitHub.SearchIssues(ctx, s.q)
		if !rn.record(ctx, s.item, err) {
			continue
		}
		rn.ok()
		inRange := stats.FilterByDate(res.Issues, rng, func(i *gh.Issue) time.Time {
			return i.GetUpdatedAt().Time
		})
		*s.dst = SearchCount{Query: s.q, Total: res.GetTotal(), InRange: len(inRange)}
	}

	rep.Meta = rn.finish(ctx, r.now())
	return rep, nil
}
