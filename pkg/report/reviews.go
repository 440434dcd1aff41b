package report

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/ghstats/ghstats/pkg/stats"
)

// RepoReviews counts the reviews on one repository's pull requests.
type RepoReviews struct {
	Repo         string
	PullRequests int
	Reviews      int
}

// ReviewsReport counts every review on every pull request.
type ReviewsReport struct {
	Meta
	Range *stats.DateRange
	Repos []RepoReviews
	Total int
}

// Reviews walks every pull request of every repository and counts its
// reviews. A non-nil rng keeps only reviews submitted inside it. A
// repository whose review listings all failed is left out of the report.
func (r *Runner) Reviews(ctx context.Context, rng *stats.DateRange) (*ReviewsReport, error) {
	rn := r.start(ctx, "reviews")
	defer rn.stop(ctx, r.now)

	repos, err := r.Repos(ctx)
	if err != nil {
		return nil, err
	}

	rep := &ReviewsReport{Range: rng}
	for _, repo := range repos {
		if err := canceled(ctx, rn.meta.Report); err != nil {
			return nil, err
		}
		rn.logger.Info("fetching reviews", "repo", repo)
		pulls, err := r.GitHub.ListPulls(ctx, repo.Owner, repo.Name)
		if !rn.record(ctx, repo.String(), err) {
			continue
		}

		rr := RepoReviews{Repo: repo.String(), PullRequests: len(pulls)}
		fetched := len(pulls) == 0
		for _, pr := range pulls {
			if err := canceled(ctx, rn.meta.Report); err != nil {
				return nil, err
			}
			reviews, err := r.GitHub.ListReviews(ctx, repo.Owner, repo.Name, pr.GetNumber())
			if !rn.record(ctx, fmt.Sprintf("%s#%d", repo, pr.GetNumber()), err) {
				continue
			}
			fetched = true
			if rng != nil {
				reviews = stats.FilterByDate(reviews, *rng, func(rv *gh.PullRequestReview) time.Time {
					return rv.GetSubmittedAt().Time
				})
			}
			rr.Reviews += len(reviews)
		}
		if !fetched {
			continue
		}
		rn.ok()
		rep.Total += rr.Reviews
		rep.Repos = append(rep.Repos, rr)
	}

	rep.Meta = rn.finish(ctx, r.now())
	return rep, nil
}
