package report

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/ghstats/ghstats/pkg/integrations/github"
	"github.com/ghstats/ghstats/pkg/stats"
)

// ActivityReport is the profile plus per-repository work in a trailing
// window.
type ActivityReport struct {
	Meta
	Profile *github.Profile
	*stats.Activity
}

// Activity counts commits, pull requests opened and the reviews on those
// pull requests over the last days days, per repository. Empty
// repositories are skipped entirely.
func (r *Runner) Activity(ctx context.Context, days int) (*ActivityReport, error) {
	if days <= 0 {
		days = stats.DefaultActivityDays
	}
	rn := r.start(ctx, "activity")
	defer rn.stop(ctx, r.now)
	since := stats.WindowStart(r.now(), days)

	profile, errs, err := r.GitHub.Profile(ctx)
	if err != nil {
		return nil, err
	}
	rn.failMap("profile:", errs)

	repos, err := r.Repos(ctx)
	if err != nil {
		return nil, err
	}

	var activity []stats.RepoActivity
	for _, repo := range repos {
		if err := canceled(ctx, rn.meta.Report); err != nil {
			return nil, err
		}
		a, err := r.repoActivity(ctx, rn, repo, since)
		if !rn.record(ctx, repo.String(), err) {
			if a != nil {
				activity = append(activity, *a)
			}
			continue
		}
		rn.ok()
		activity = append(activity, *a)
	}

	return &ActivityReport{
		Profile:  profile,
		Activity: stats.ActivityTotals(activity, since, days),
		Meta:     rn.finish(ctx, r.now()),
	}, nil
}

// RepoActivity is [Runner.Activity] for a single repository, without the
// profile.
func (r *Runner) RepoActivity(ctx context.Context, repo Repo, days int) (*ActivityReport, error) {
	if days <= 0 {
		days = stats.DefaultActivityDays
	}
	rn := r.start(ctx, "repo-activity")
	defer rn.stop(ctx, r.now)
	since := stats.WindowStart(r.now(), days)

	a, err := r.repoActivity(ctx, rn, repo, since)
	if rn.record(ctx, repo.String(), err) {
		rn.ok()
	}
	var activity []stats.RepoActivity
	if a != nil {
		activity = append(activity, *a)
	}

	meta := rn.finish(ctx, r.now())
	return &ActivityReport{
		Activity: stats.ActivityTotals(activity, since, days),
		Meta:     meta,
	}, meta.Err()
}

func (r *Runner) repoActivity(ctx context.Context, rn *run, repo Repo, since time.Time) (*stats.RepoActivity, error) {
	a := &stats.RepoActivity{Repo: repo.Name}

	commits, err := r.GitHub.CountCommitsSince(ctx, repo.Owner, repo.Name, since)
	if err != nil {
		if stderrors.Is(err, github.ErrEmptyRepository) {
			a.Skipped = true
			return a, err
		}
		return nil, fmt.Errorf("commits: %w", err)
	}
	a.Commits = commits

	pulls, err := r.GitHub.ListPulls(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("pull requests: %w", err)
	}
	for _, pr := range pulls {
		if pr.GetCreatedAt().Before(since) {
			continue
		}
		a.PullRequests++
		reviews, err := r.GitHub.ListReviews(ctx, repo.Owner, repo.Name, pr.GetNumber())
		if err != nil {
			rn.fail(fmt.Sprintf("%s#%d reviews", repo, pr.GetNumber()), err)
			continue
		}
		a.Reviews += len(reviews)
	}
	return a, nil
}
