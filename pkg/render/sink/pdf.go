package sink

import (
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/render"
)

// RenderPDF renders the chart as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(s *congress.Session, c congress.Chamber, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(s, c, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
