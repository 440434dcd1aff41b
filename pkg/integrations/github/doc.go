// Package github provides typed access to the GitHub REST and GraphQL APIs
// for contribution statistics.
//
// # Overview
//
// [Client] embeds [integrations.Client], so every REST call goes through the
// retrying fetcher and the response cache. Models are the go-github types
// ([gh.Repository], [gh.PullRequest], [gh.PullRequestReview],
// [gh.IssuesSearchResult], [gh.User]) decoded from the fetched JSON.
//
// # Usage
//
//	client := github.NewClient(token, cache, github.Options{})
//
//	repos, err := client.ListRepos(ctx)
//	weeks, err := client.CodeFrequency(ctx, "octocat", "hello-world")
//	if errors.Is(err, github.ErrEmptyRepository) {
//	    // nothing to report for this repository
//	}
//
// # Asynchronous statistics
//
// /stats/code_frequency answers 202 Accepted while GitHub computes the data.
// The fetcher retries with a constant delay (5 attempts, 4 seconds apart by
// default) and reports STATS_PENDING if the statistic never becomes ready.
//
// # Contribution calendar
//
// [Client.ContributionCalendar] queries
// user.contributionsCollection.contributionCalendar over GraphQL with an
// oauth2 token source. It requires a token.
//
// # Authentication
//
// A personal access token is sent as a Bearer token. It is never logged and
// never used in cache keys: keys are scoped by [cache.TokenScope].
//
// [gh.Repository]: https://pkg.go.dev/github.com/google/go-github/v74/github#Repository
// [gh.PullRequest]: https://pkg.go.dev/github.com/google/go-github/v74/github#PullRequest
// [gh.PullRequestReview]: https://pkg.go.dev/github.com/google/go-github/v74/github#PullRequestReview
// [gh.IssuesSearchResult]: https://pkg.go.dev/github.com/google/go-github/v74/github#IssuesSearchResult
// [gh.User]: https://pkg.go.dev/github.com/google/go-github/v74/github#User
// [cache.TokenScope]: github.com/ghstats/ghstats/pkg/cache.TokenScope
package github
