package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/boy-johnny/fraud-data/models"
	"github.com/boy-johnny/fraud-data/utils"
)

// HTMLFile is the name of the page written into the output directory.
const HTMLFile = "report.html"

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"half": func(v float64) float64 { return v / 2 },
	"add":  func(a, b float64) float64 { return a + b },
	"sub":  func(a, b float64) float64 { return a - b },
}).Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<title>LINE ID 詐騙通報分析</title>
<style>
  body { font-family: {{.FontFamily}}; margin: 24px; background: #fff; color: #222; }
  figure { margin: 0 0 32px 0; display: inline-block; }
  .grid line { stroke: #ddd; }
  .axis { stroke: #444; }
  .series { fill: none; stroke: #1f77b4; stroke-width: 2; }
  .marker { fill: #1f77b4; }
  .bar { fill: skyblue; }
  text { font-size: 12px; }
  .title { font-size: 16px; font-weight: bold; }
</style>
</head>
<body>
<p>run {{.RunID}} · {{.Total}} reports · {{.Dropped}} dropped</p>
{{range .Charts}}
{{- $c := .}}
<figure id="{{.ID}}">
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <text class="title" x="{{half .Width}}" y="28" text-anchor="middle">{{.Title}}</text>
  <g class="grid">
  {{- range .Ticks}}
    <line x1="{{$c.Left}}" x2="{{$c.Right}}" y1="{{.Y}}" y2="{{.Y}}"></line>
  {{- end}}
  </g>
  {{- range .Ticks}}
  <text x="{{sub $c.Left 8}}" y="{{add .Y 4}}" text-anchor="end">{{.Label}}</text>
  {{- end}}
  <line class="axis" x1="{{.Left}}" x2="{{.Left}}" y1="{{.Top}}" y2="{{.Bottom}}"></line>
  <line class="axis" x1="{{.Left}}" x2="{{.Right}}" y1="{{.Bottom}}" y2="{{.Bottom}}"></line>
  {{- if .Empty}}
  <text x="{{half .Width}}" y="{{half .Height}}" text-anchor="middle">no data</text>
  {{- end}}
  {{- if .Polyline}}
  <polyline class="series" points="{{.Polyline}}"></polyline>
  {{- end}}
  {{- range .Points}}
  <circle class="marker" cx="{{.X}}" cy="{{.Y}}" r="4"><title>{{.Label}}: {{.Count}}</title></circle>
  {{- if $c.RotateLabels}}
  <text x="{{.X}}" y="{{add $c.Bottom 14}}" text-anchor="end" transform="rotate(-45 {{.X}} {{add $c.Bottom 14}})">{{.Label}}</text>
  {{- else}}
  <text x="{{.X}}" y="{{add $c.Bottom 18}}" text-anchor="middle">{{.Label}}</text>
  {{- end}}
  {{- end}}
  {{- range .Bars}}
  <rect class="bar" x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}"><title>{{.Label}}: {{.Count}}</title></rect>
  <text x="{{add .X (half .W)}}" y="{{add $c.Bottom 18}}" text-anchor="middle">{{.Label}}</text>
  {{- end}}
  <text x="{{half (add .Left .Right)}}" y="{{sub .Height 12}}" text-anchor="middle">{{.XLabel}}</text>
  <text x="18" y="{{half (add .Top .Bottom)}}" text-anchor="middle" transform="rotate(-90 18 {{half (add .Top .Bottom)}})">{{.YLabel}}</text>
</svg>
</figure>
{{end}}
</body>
</html>
`))

type page struct {
	RunID      string
	Total      int
	Dropped    int
	FontFamily template.CSS
	Charts     []chart
}

// HTMLRenderer writes a self-contained page with an SVG line chart of monthly
// counts and an SVG bar chart of weekly counts.
type HTMLRenderer struct {
	logger     *utils.Logger
	fontFamily string
}

func NewHTMLRenderer(logger *utils.Logger, fontFamily string) *HTMLRenderer {
	return &HTMLRenderer{logger: logger, fontFamily: fontFamily}
}

// Render writes HTMLFile into dir and returns its path.
func (r *HTMLRenderer) Render(a *models.Analysis, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("render: create output dir: %w", err)
	}

	path := filepath.Join(dir, HTMLFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("render: create %q: %w", path, err)
	}
	defer f.Close()

	p := page{
		RunID:      a.RunID,
		Total:      len(a.Reports),
		Dropped:    a.Dropped,
		FontFamily: template.CSS(r.fontFamily),
		Charts: []chart{
			lineChart(a.Monthly, 1500, 700),
			barChart(a.Weekly, 1000, 600),
		},
	}
	if err := pageTmpl.Execute(f, p); err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("render: close %q: %w", path, err)
	}

	r.logger.Info("[render] Charts page written to %s", path)
	return path, nil
}
