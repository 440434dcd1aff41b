// Package pkg holds the ghstats libraries.
//
// # Overview
//
// ghstats collects contribution statistics from the GitHub API and renders
// them as tables and interactive charts. The packages layer as follows:
//
//	[integrations/github]   typed REST and GraphQL endpoints
//	         ↓
//	[integrations]          shared client: headers, cache, retrying fetch
//	         ↓
//	[httputil]              RetriableFetcher, outcomes, pagination
//
//	[report]                runs reports over many repositories,
//	                        skipping and collecting per-item failures
//	[stats]                 pure aggregation: date ranges, code frequency,
//	                        activity, calendar grid
//	[render]                go-echarts charts and the dashboard page
//
// Supporting packages:
//
//   - [cache]: file, Redis and null response caches
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for HTTP, cache and report events
//   - [buildinfo]: version information set via ldflags
//
// # Quick Start
//
//	client := github.NewClient(token, cache.NewNullCache(), github.Options{})
//	runner := report.NewRunner(client, "", nil)
//
//	rng, _ := stats.ParseDateRange("2024-04-01", "")
//	rep, err := runner.CodeFrequency(ctx, nil, rng)
//	if err != nil {
//	    return err
//	}
//	for _, c := range render.CodeFrequencyCharts(rep.CodeFrequency) {
//	    render.WriteHTML("charts", c.Name, c.Renderer)
//	}
//
// [integrations/github]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/integrations/github
// [integrations]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/integrations
// [httputil]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/httputil
// [report]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/report
// [stats]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/stats
// [render]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/render
// [cache]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/cache
// [errors]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/errors
// [observability]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/ghstats/ghstats/pkg/buildinfo
package pkg
