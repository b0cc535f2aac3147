package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

// DefaultPageTitle heads the HTML page.
const DefaultPageTitle = "Bipartisan Index"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
{{- range .Sessions}}
<section id="session-{{.SessionNo}}">
<h3>{{.Description}}&nbsp;{{if .SenateURL}}<a href="{{.SenateURL}}">#</a>{{end}}{{if .HouseURL}}<a href="{{.HouseURL}}">#</a>{{end}}</h3>
{{- range .Charts}}
<div class="chart">{{.}}</div>
{{- end}}
</section>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title    string
	CSS      template.CSS
	Sessions []pageSession
}

type pageSession struct {
	SessionNo   int
	Description string
	SenateURL   string
	HouseURL    string
	Charts      []template.HTML
}

// PageOption configures [RenderPage].
type PageOption func(*pageRenderer)

type pageRenderer struct {
	title   string
	svgOpts []SVGOption
}

// WithTitle sets the document title.
func WithTitle(title string) PageOption { return func(r *pageRenderer) { r.title = title } }

// WithPageSVGOptions passes options through to every chart.
func WithPageSVGOptions(opts ...SVGOption) PageOption {
	return func(r *pageRenderer) { r.svgOpts = opts }
}

// RenderPage draws every session of ds in order: a heading with links to the
// source pages, then the senate chart and the house chart when present.
func RenderPage(ds congress.Dataset, opts ...PageOption) ([]byte, error) {
	r := pageRenderer{title: DefaultPageTitle}
	for _, opt := range opts {
		opt(&r)
	}
	svg := newSVGRenderer(r.svgOpts...)

	data := pageData{
		Title:    r.title,
		CSS:      pageCSS(svg.style),
		Sessions: make([]pageSession, 0, len(ds)),
	}
	for i := range ds {
		s := &ds[i]
		ps := pageSession{
			SessionNo:   s.SessionNo,
			Description: s.Description(),
			SenateURL:   s.SenateURL,
			HouseURL:    s.HouseURL,
		}
		for _, c := range s.Chambers() {
			out, err := RenderSVG(s, c, r.svgOpts...)
			if err != nil {
				return nil, err
			}
			ps.Charts = append(ps.Charts, template.HTML(out))
		}
		data.Sessions = append(data.Sessions, ps)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func pageCSS(s styles.Style) template.CSS {
	return template.CSS(fmt.Sprintf(`
body { background: %s; color: %s; margin: 0; width: 100%%; font-family: sans-serif; }
h3 { color: %s; margin: 16px 0 10px 10px; }
h3 a { color: inherit; margin-right: 4px; }
.chart { margin-bottom: 2px; }
.chart svg { display: block; width: 100%%; height: auto; }
`, s.Background(), s.Text(), s.Text()))
}
