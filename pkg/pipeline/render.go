package pipeline

import (
	"fmt"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/render/sink"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

// RenderChart renders one target in a single-chart format.
func RenderChart(t Target, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = sink.RenderSVG(t.Session, t.Chamber, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(t.Session, t.Chamber, sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		data, err = sink.RenderPDF(t.Session, t.Chamber, svgOpts...)
	case FormatJSON:
		data, err = sink.RenderJSON(t.Session, t.Chamber)
	default:
		return nil, fmt.Errorf("unsupported chart format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// RenderPage renders the HTML page for ds.
func RenderPage(ds congress.Dataset, opts Options) ([]byte, error) {
	data, err := sink.RenderPage(ds, sink.WithPageSVGOptions(buildSVGOptions(opts)...))
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return data, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithSize(opts.Width, opts.Height)}
	if st, ok := styles.Lookup(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(st))
	}
	return svgOpts
}
