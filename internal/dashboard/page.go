package dashboard

import (
	"html/template"

	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/render"
	"github.com/ghstats/ghstats/pkg/report"
	"github.com/ghstats/ghstats/pkg/stats"
)

type timelineRow struct {
	Name       string
	Complexity int
	Start      string
	End        string
}

type pageData struct {
	render.Dashboard
	Selected render.SkillCategory
	Timeline []timelineRow
}

func newPageData(d render.Dashboard, category string) (pageData, error) {
	data := pageData{Dashboard: d}
	data.Selected, _ = d.Category(category)
	for _, p := range d.Projects {
		start, end, err := p.Span()
		if err != nil {
			return pageData{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "project %q", p.Name)
		}
		data.Timeline = append(data.Timeline, timelineRow{
			Name:       p.Name,
			Complexity: p.Complexity,
			Start:      start.Format(errors.DateLayout),
			End:        end.Format(errors.DateLayout),
		})
	}
	return data, nil
}

func gridOf(rep *report.CalendarReport) *stats.CalendarGrid {
	if rep == nil {
		return nil
	}
	return rep.Grid
}

func loginOf(rep *report.CalendarReport) string {
	if rep == nil || rep.Calendar == nil {
		return ""
	}
	return rep.Calendar.Login
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; color: #222; display: flex; }
aside { width: 260px; padding: 1.5rem; background: #fff0f0; min-height: 100vh; box-sizing: border-box; }
main { flex: 1; padding: 1.5rem 2rem; }
h1, h2, h3 { color: #cb181d; }
.tiles { display: flex; gap: 1rem; margin: 1rem 0 2rem; }
.tile { flex: 1; border: 1px solid #fcbba1; border-radius: 6px; padding: 1rem; }
.tile .value { font-size: 2rem; font-weight: 600; }
.skills { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
table { border-collapse: collapse; width: 100%; }
td, th { border-bottom: 1px solid #eee; padding: .4rem .6rem; text-align: left; }
iframe { border: 0; width: 100%; height: 1500px; }
</style>
</head>
<body>
<aside>
<h2>Filters</h2>
<form method="get" action="/">
<label for="category">Select Skill Category</label>
<select id="category" name="category" onchange="this.form.submit()">
{{- range .Skills}}
<option value="{{.Name}}"{{if eq .Name $.Selected.Name}} selected{{end}}>{{.Name}}</option>
{{- end}}
</select>
<noscript><button type="submit">Apply</button></noscript>
</form>
{{- if .Selected.Name}}
<p>Skills in selected category:</p>
<ul>{{range .Selected.Skills}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
</aside>
<main>
<h1>{{.Title}}</h1>
{{- if .Subtitle}}<h3>{{.Subtitle}}</h3>{{end}}
<div class="tiles">
{{- range .Metrics}}
<div class="tile"><div>{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{- end}}
</div>
<iframe src="/charts" title="charts"></iframe>
<h2>Detailed Skills</h2>
<div class="skills">
{{- range .Skills}}
<div><h3>{{.Name}}</h3><ul>{{range .Skills}}<li>{{.}}</li>{{end}}</ul></div>
{{- end}}
</div>
{{- if .Timeline}}
<h2>Project Timeline</h2>
<table>
<tr><th>Project</th><th>Complexity</th><th>Start</th><th>End</th></tr>
{{- range .Timeline}}
<tr><td>{{.Name}}</td><td>{{.Complexity}}</td><td>{{.Start}}</td><td>{{.End}}</td></tr>
{{- end}}
</table>
{{- end}}
</main>
</body>
</html>
`))
