// Package stats turns raw GitHub data into contribution statistics.
//
// Everything here is pure computation over values already fetched by
// [github.Client]: no I/O, no logging. Reports in pkg/report feed the
// results to the console and to pkg/render.
//
// # Date ranges
//
// A [DateRange] covers whole days in UTC. [DateRange.Contains] accepts any
// instant from the start of the first day up to, but excluding, midnight
// after the last day:
//
//	r, _ := stats.ParseDateRange("2024-04-01", "2024-12-18")
//	r.Contains(time.Date(2024, 12, 18, 23, 0, 0, 0, time.UTC)) // true
//
// # Code frequency
//
// [CombineCodeFrequency] merges the weekly series of several repositories:
// weeks are filtered to the range, summed per week, sorted, and given a
// running cumulative line count.
//
// # Contribution calendar
//
// [BuildCalendarGrid] lays calendar days out as a weekday-by-week grid
// (Monday is row 0) with an empty spacer column at every month change,
// ready for a heatmap.
//
// [github.Client]: github.com/ghstats/ghstats/pkg/integrations/github.Client
package stats
