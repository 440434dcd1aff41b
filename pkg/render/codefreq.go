package render

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/stats"
)

// File names of the code frequency charts.
const (
	TotalLinesFile         = "total_lines.html"
	CumulativeGrowthFile   = "cumulative_growth.html"
	AdditionsDeletionsFile = "additions_deletions.html"
)

// CodeFrequencyCharts returns the three code frequency charts.
func CodeFrequencyCharts(cf *stats.CodeFrequency, options ...Option) []Chart {
	return []Chart{
		{Name: TotalLinesFile, Renderer: TotalLines(cf, options...)},
		{Name: CumulativeGrowthFile, Renderer: CumulativeGrowth(cf, options...)},
		{Name: AdditionsDeletionsFile, Renderer: AdditionsDeletions(cf, options...)},
	}
}

func weekLabels(cf *stats.CodeFrequency) []string {
	labels := make([]string, len(cf.Weeks))
	for i, w := range cf.Weeks {
		labels[i] = w.Week.Format(errors.DateLayout)
	}
	return labels
}

func cumulativeData(cf *stats.CodeFrequency) []opts.LineData {
	data := make([]opts.LineData, len(cf.Weeks))
	for i, w := range cf.Weeks {
		data[i] = opts.LineData{Value: w.Cumulative, Symbol: "none"}
	}
	return data
}

func subtitle(cf *stats.CodeFrequency) string {
	return fmt.Sprintf("%d repositories, %s", len(cf.Repos), cf.Range)
}

func lineBase(title string, cf *stats.CodeFrequency, s settings, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle(cf)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	line.SetXAxis(weekLabels(cf))
	return line
}

// TotalLines plots the cumulative net line count per week.
func TotalLines(cf *stats.CodeFrequency, options ...Option) *charts.Line {
	line := lineBase("Total Lines of Code Over Time", cf, defaults(options), "Lines of Code")
	line.AddSeries("Lines of Code", cumulativeData(cf),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "blue"}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
	)
	return line
}

// CumulativeGrowth plots the same series as a filled area.
func CumulativeGrowth(cf *stats.CodeFrequency, options ...Option) *charts.Line {
	line := lineBase("Cumulative Code Growth", cf, defaults(options), "Cumulative Lines of Code")
	line.AddSeries("Cumulative Lines", cumulativeData(cf),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "green"}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: "red", Opacity: 0.3}),
	)
	return line
}

// AdditionsDeletions plots weekly additions against deletions.
func AdditionsDeletions(cf *stats.CodeFrequency, options ...Option) *charts.Bar {
	s := defaults(options)
	adds := make([]opts.BarData, len(cf.Weeks))
	dels := make([]opts.BarData, len(cf.Weeks))
	for i, w := range cf.Weeks {
		adds[i] = opts.BarData{Value: w.Additions}
		dels[i] = opts.BarData{Value: -w.Deletions}
	}

	title := "Weekly Code Additions vs Deletions"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle(cf)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines of Code"}),
	)
	bar.SetXAxis(weekLabels(cf)).
		AddSeries("Additions", adds, charts.WithItemStyleOpts(opts.ItemStyle{Color: "green", Opacity: 0.6})).
		AddSeries("Deletions", dels, charts.WithItemStyleOpts(opts.ItemStyle{Color: "red", Opacity: 0.6}))
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "lines"}))
	return bar
}
