package report

import (
	"context"

	"github.com/ghstats/ghstats/pkg/stats"
)

// CodeFrequencyReport combines the weekly code frequency of several
// repositories.
type CodeFrequencyReport struct {
	Meta
	Repos []Repo
	*stats.CodeFrequency
}

// CodeFrequency fetches /stats/code_frequency for each repository and
// combines the weeks inside rng. An empty repos lists every repository.
func (r *Runner) CodeFrequency(ctx context.Context, repos []Repo, rng stats.DateRange) (*CodeFrequencyReport, error) {
	rn := r.start(ctx, "codefreq")
	defer rn.stop(ctx, r.now)

	if len(repos) == 0 {
		var err error
		if repos, err = r.Repos(ctx); err != nil {
			return nil, err
		}
	}

	var series []stats.RepoWeeks
	for _, repo := range repos {
		if err := canceled(ctx, rn.meta.Report); err != nil {
			return nil, err
		}
		rn.logger.Info("fetching statistics", "repo", repo)
		weeks, err := r.GitHub.CodeFrequency(ctx, repo.Owner, repo.Name)
		if !rn.record(ctx, repo.String(), err) {
			continue
		}
		rn.ok()
		series = append(series, stats.RepoWeeks{Repo: repo.Name, Weeks: weeks})
	}

	return &CodeFrequencyReport{
		Repos:         repos,
		CodeFrequency: stats.CombineCodeFrequency(series, rng),
		Meta:          rn.finish(ctx, r.now()),
	}, nil
}
