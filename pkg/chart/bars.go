package chart

import (
	"math"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

const (
	// ZeroLineWidth is the horizontal slot reserved after the boundary bar.
	ZeroLineWidth = 10.0
	// BarGap is the margin to the right of every bar.
	BarGap = 1.0
)

// Bar is the pixel geometry of one record.
type Bar struct {
	Index    int
	X        float64
	Width    float64
	Party    congress.Party
	Score    float64
	Boundary bool
}

// Geometry is a full chart row laid out for a container width.
type Geometry struct {
	Bars      []Bar
	DataSpace float64 // width left for bars after gaps and the zero-line slot
	ZeroLineX float64 // left edge of the zero-line slot; -1 when there is none
}

// Bars lays out scores left to right in a container availableWidth pixels
// wide. Each bar is followed by BarGap pixels, and the boundary bar is
// followed by the zero-line slot. A negative or non-finite width is treated
// as zero, which collapses every bar.
func Bars(scores []congress.Score, agg Aggregates, availableWidth float64) Geometry {
	if math.IsNaN(availableWidth) || math.IsInf(availableWidth, 0) || availableWidth < 0 {
		availableWidth = 0
	}
	dataSpace := math.Max(0, availableWidth-float64(len(scores))*BarGap-ZeroLineWidth)

	entries := Layout(scores, agg.ScoreSpace)
	g := Geometry{
		Bars:      make([]Bar, len(scores)),
		DataSpace: dataSpace,
		ZeroLineX: -1,
	}

	x := 0.0
	for i, s := range scores {
		w := entries[i].Fraction * dataSpace
		g.Bars[i] = Bar{
			Index:    i,
			X:        x,
			Width:    w,
			Party:    s.Party,
			Score:    s.Score,
			Boundary: entries[i].Boundary,
		}
		x += w + BarGap
		if entries[i].Boundary {
			g.ZeroLineX = x
			x += ZeroLineWidth
		}
	}
	return g
}

// Extent returns the right edge of the last laid out element.
func (g Geometry) Extent() float64 {
	if len(g.Bars) == 0 {
		return 0
	}
	last := g.Bars[len(g.Bars)-1]
	end := last.X + last.Width + BarGap
	if last.Boundary {
		end += ZeroLineWidth
	}
	return end
}
