package render

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/stats"
)

// Metric is a headline number on the dashboard.
type Metric struct {
	Label string `toml:"label" json:"label"`
	Value string `toml:"value" json:"value"`
}

// SkillCategory groups skills under a proficiency score out of 100.
type SkillCategory struct {
	Name        string   `toml:"name" json:"name"`
	Skills      []string `toml:"skills" json:"skills"`
	Proficiency int      `toml:"proficiency" json:"proficiency"`
}

// Project is one entry of the project timeline.
type Project struct {
	Name       string `toml:"name" json:"name"`
	Complexity int    `toml:"complexity" json:"complexity"`
	Start      string `toml:"start" json:"start"` // YYYY-MM-DD
	Days       int    `toml:"days" json:"days"`
}

// Span returns the project's start and end dates.
func (p Project) Span() (start, end time.Time, err error) {
	start, err = errors.ParseDate(p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, p.Days), nil
}

// Share is one slice of the skill distribution.
type Share struct {
	Name    string  `toml:"name" json:"name"`
	Percent float64 `toml:"percent" json:"percent"`
}

// Dashboard is the content shown by the dashboard server.
type Dashboard struct {
	Title        string          `toml:"title" json:"title"`
	Subtitle     string          `toml:"subtitle" json:"subtitle"`
	Metrics      []Metric        `toml:"metrics" json:"metrics"`
	Skills       []SkillCategory `toml:"skills" json:"skills"`
	Projects     []Project       `toml:"projects" json:"projects"`
	Distribution []Share         `toml:"distribution" json:"distribution"`
}

// Category returns the skill category called name, or the first category
// when name is empty or unknown.
func (d Dashboard) Category(name string) (SkillCategory, bool) {
	for _, c := range d.Skills {
		if c.Name == name {
			return c, true
		}
	}
	if len(d.Skills) > 0 {
		return d.Skills[0], true
	}
	return SkillCategory{}, false
}

// SkillsRadar plots proficiency per skill category on a 0..100 scale.
func SkillsRadar(d Dashboard, options ...Option) *charts.Radar {
	s := defaults(append([]Option{WithSize("600px", "450px")}, options...))

	indicators := make([]*opts.Indicator, len(d.Skills))
	values := make([]float32, len(d.Skills))
	for i, c := range d.Skills {
		indicators[i] = &opts.Indicator{Name: c.Name, Max: 100}
		values[i] = float32(c.Proficiency)
	}

	title := "Skills Proficiency"
	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator: indicators,
			Shape:     "polygon",
			SplitArea: &opts.SplitArea{Show: true},
		}),
	)
	radar.AddSeries("Skills Proficiency", []opts.RadarData{{Name: "Proficiency", Value: values}},
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d62728"}),
	)
	return radar
}

// ProjectComplexity plots the complexity of each project in order.
func ProjectComplexity(d Dashboard, options ...Option) *charts.Bar {
	s := defaults(append([]Option{WithSize("900px", "450px")}, options...))

	names := make([]string, len(d.Projects))
	data := make([]opts.BarData, len(d.Projects))
	top := 1
	for i, p := range d.Projects {
		names[i] = p.Name
		data[i] = opts.BarData{Value: p.Complexity}
		if p.Complexity > top {
			top = p.Complexity
		}
	}

	title := "Project Complexity Progression"
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: true, Interval: "0", Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Complexity"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: false,
			Min:        0,
			Max:        float32(top),
			InRange:    &opts.VisualMapInRange{Color: []string{"#fcbba1", "#cb181d"}},
		}),
	)
	bar.SetXAxis(names).AddSeries("Complexity", data)
	return bar
}

// SkillDistribution plots the share of each skill category.
func SkillDistribution(d Dashboard, options ...Option) *charts.Pie {
	s := defaults(append([]Option{WithSize("600px", "450px")}, options...))

	data := make([]opts.PieData, len(d.Distribution))
	for i, sh := range d.Distribution {
		data[i] = opts.PieData{Name: sh.Name, Value: sh.Percent}
	}

	title := "Skill Category Distribution"
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(s.init(title)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}: {d}%"}),
	)
	pie.AddSeries("Distribution", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"35%", "70%"}}),
	)
	return pie
}

// DashboardPage collects the dashboard charts on one page. grid may be nil
// when no contribution calendar is available.
func DashboardPage(d Dashboard, grid *stats.CalendarGrid, login string, options ...Option) *components.Page {
	page := components.NewPage()
	page.PageTitle = d.Title
	if s := defaults(options); s.assetsHost != "" {
		page.AssetsHost = s.assetsHost
	}
	page.SetLayout(components.PageFlexLayout)

	if len(d.Skills) > 0 {
		page.AddCharts(SkillsRadar(d, options...))
	}
	if len(d.Projects) > 0 {
		page.AddCharts(ProjectComplexity(d, options...))
	}
	if len(d.Distribution) > 0 {
		page.AddCharts(SkillDistribution(d, options...))
	}
	if grid != nil && len(grid.Columns) > 0 {
		page.AddCharts(Heatmap(grid, login, options...))
	}
	return page
}
