package sink

import (
	"bytes"
	"fmt"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 400
)

const (
	panelTop     = 10.0
	panelGap     = 10.0
	panelHeight  = 22.0
	panelPadX    = 10.0
	badgeSize    = 10.5
	charWidth    = 7.2
	textBaseline = panelTop + 16
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	width   float64
	height  float64
	infoBox bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithoutInfoBox() SVGOption          { return func(r *svgRenderer) { r.infoBox = false } }

// WithSize sets the chart size. Non-positive values keep the defaults.
func WithSize(width, height int) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 {
			r.width = float64(width)
		}
		if height > 0 {
			r.height = float64(height)
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:   styles.Dark,
		width:   DefaultWidth,
		height:  DefaultHeight,
		infoBox: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// chamberScores returns the scores for c or a CHAMBER_NOT_SCORED error.
func chamberScores(s *congress.Session, c congress.Chamber) ([]congress.Score, error) {
	scores, ok := s.Scores(c)
	if !ok {
		return nil, errors.New(errors.ErrCodeChamberNotScored, "%s has no %s scores", s.Description(), c)
	}
	return scores, nil
}

// RenderSVG draws the bar chart for one chamber of s.
func RenderSVG(s *congress.Session, c congress.Chamber, opts ...SVGOption) ([]byte, error) {
	scores, err := chamberScores(s, c)
	if err != nil {
		return nil, err
	}
	r := newSVGRenderer(opts...)

	agg := chart.Aggregate(scores, s.StartYear)
	geom := chart.Bars(scores, agg, r.width)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, "  <title>%s %s</title>\n", styles.EscapeXML(s.Description()), c.Title())
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		r.width, r.height, r.style.Background())

	for i, b := range geom.Bars {
		renderBar(&buf, r, b, scores[i])
	}
	if geom.ZeroLineX >= 0 {
		renderZeroLine(&buf, r, geom.ZeroLineX)
	}
	if r.infoBox {
		renderInfoBox(&buf, r, InfoPanels(c, agg))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderBar(buf *bytes.Buffer, r svgRenderer, b chart.Bar, s congress.Score) {
	fmt.Fprintf(buf, `  <rect class="bar" x="%.2f" y="0" width="%.2f" height="%.1f" fill="%s">`,
		b.X, b.Width, r.height, r.style.PartyColor(b.Party))
	fmt.Fprintf(buf, "<title>%d. %s (%s-%s) %.3f</title></rect>\n",
		s.Number, styles.EscapeXML(s.FullName()), styles.EscapeXML(s.State), s.Party, s.Score)
}

func renderZeroLine(buf *bytes.Buffer, r svgRenderer, x float64) {
	mid := x + chart.ZeroLineWidth/2
	fmt.Fprintf(buf, `  <line class="zero" x1="%.2f" y1="0" x2="%.2f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="4 4" opacity="0.6"/>`+"\n",
		mid, mid, r.height, r.style.Text())
}

func renderInfoBox(buf *bytes.Buffer, r svgRenderer, panels []Panel) {
	x := panelGap
	for _, p := range panels {
		w := panelWidth(p)
		fmt.Fprintf(buf, `  <rect class="panel" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2"/>`+"\n",
			x, panelTop, w, panelHeight)

		cx := x + panelPadX
		for _, seg := range p {
			if seg.Badge != "" {
				fmt.Fprintf(buf, `  <rect class="badge" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s"/>`+"\n",
					cx, textBaseline-badgeSize, badgeSize, badgeSize, r.style.PartyColor(seg.Badge))
				cx += badgeSize
				continue
			}
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" xml:space="preserve">%s</text>`+"\n",
				cx, textBaseline, styles.EscapeXML(seg.Text))
			cx += float64(len(seg.Text)) * charWidth
		}
		x += w + panelGap
	}
}

func panelWidth(p Panel) float64 {
	w := 2 * panelPadX
	for _, seg := range p {
		if seg.Badge != "" {
			w += badgeSize
		} else {
			w += float64(len(seg.Text)) * charWidth
		}
	}
	return w
}
