package render

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ghstats/ghstats/pkg/stats"
)

// HeatmapFile is the file name of the contribution heatmap.
const HeatmapFile = "contributions_heatmap.html"

// heatmapColors runs from the lightest to the darkest red.
var heatmapColors = []string{
	"rgb(255,245,245)",
	"rgb(254,224,210)",
	"rgb(252,187,161)",
	"rgb(252,146,114)",
	"rgb(251,106,74)",
	"rgb(203,24,29)",
}

// Heatmap renders a contribution calendar grid. Spacer columns stay blank.
func Heatmap(grid *stats.CalendarGrid, login string, options ...Option) *charts.HeatMap {
	s := defaults(append([]Option{WithSize("1200px", "300px")}, options...))

	var data []opts.HeatMapData
	for x, col := range grid.Columns {
		for y, v := range col {
			var value any = v
			if grid.Spacer[x] {
				value = "-"
			}
			data = append(data, opts.HeatMapData{Value: [3]any{x, y, value}})
		}
	}

	top := grid.Max
	if top == 0 {
		top = 1
	}

	title := "GitHub Contributions Heatmap for " + login
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Total Contributions: %d", grid.Total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Data:      grid.XLabels(),
			AxisLabel: &opts.AxisLabel{Show: true, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category",
			Data: stats.Weekdays[:],
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(top),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)
	hm.SetXAxis(grid.XLabels()).AddSeries("contributions", data,
		charts.WithItemStyleOpts(opts.ItemStyle{BorderColor: "#fff"}),
	)
	return hm
}
