// Package render turns statistics into interactive HTML charts.
//
// # Overview
//
// Charts are built with go-echarts and rendered as standalone HTML files
// (or written straight to an http.ResponseWriter by the dashboard):
//
//   - [CodeFrequencyCharts]: total lines, cumulative growth and additions
//     versus deletions for a combined code frequency series
//   - [Heatmap]: the contribution calendar, Monday to Sunday rows, one
//     column per week with a gap between months
//   - [DashboardPage]: skills radar, project complexity, skill distribution
//     and, when available, the contribution heatmap
//
// Every builder takes [Option] values for the page title and size:
//
//	charts := render.CodeFrequencyCharts(cf, render.WithSize("1200px", "600px"))
//	paths, err := render.WriteAll(outDir, charts)
package render
