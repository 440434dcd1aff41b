// Package report runs the contribution reports end to end.
//
// A [Runner] fetches from GitHub, computes statistics with pkg/stats and
// returns a typed report. Every report carries a [Meta] with a run ID and
// the per-item outcome:
//
//   - Items that succeed count toward Meta.Succeeded.
//   - Empty repositories are skipped: logged, listed in Meta.Skipped, never
//     an error.
//   - Any other per-item error is recorded in Meta.Failures and the run
//     continues with the next item.
//
// [Meta.Err] is non-nil only when items failed and none succeeded, so a
// command exits non-zero only if it produced nothing.
//
// # Reports
//
//   - [Runner.CodeFrequency]: weekly additions and deletions across repositories
//   - [Runner.Summary]: repositories, projects, reviews and open pull requests in a date range
//   - [Runner.Activity]: profile counters and per-repository activity in a trailing window
//   - [Runner.Reviews]: every review on every pull request
//   - [Runner.Calendar]: the contribution calendar and its heatmap grid
//
// Report progress is published through [observability.ReportHooks].
//
// [observability.ReportHooks]: github.com/ghstats/ghstats/pkg/observability.ReportHooks
package report
