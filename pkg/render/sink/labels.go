package sink

import (
	"fmt"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

// Segment is a piece of an info panel: text or a party badge.
type Segment struct {
	Text  string
	Badge congress.Party
}

// Panel is one box of the chart's info box.
type Panel []Segment

// String returns the panel as plain text, badges spelled as party codes.
func (p Panel) String() string {
	var s string
	for _, seg := range p {
		if seg.Badge != "" {
			s += string(seg.Badge)
			continue
		}
		s += seg.Text
	}
	return s
}

// InfoPanels builds the three info box panels for a chamber.
func InfoPanels(c congress.Chamber, agg chart.Aggregates) []Panel {
	sums := Panel{{Text: "Aggregate Scores: "}}
	for i, p := range congress.Parties {
		text := fmt.Sprintf(" %.2f", agg.Sum(p))
		if i < len(congress.Parties)-1 {
			text += " "
		}
		sums = append(sums, Segment{Badge: p}, Segment{Text: text})
	}

	return []Panel{
		{{Text: c.Title()}},
		{
			{Text: "Majority: "},
			{Badge: agg.Majority},
			{Text: fmt.Sprintf(" (%s)", agg.Distribution())},
		},
		sums,
	}
}

// InfoLabels returns the info panels as plain text, e.g.
// ["Senate", "Majority: D (2 - 1)", "Aggregate Scores: D -4.00 R 2.00"].
func InfoLabels(c congress.Chamber, agg chart.Aggregates) []string {
	panels := InfoPanels(c, agg)
	out := make([]string, len(panels))
	for i, p := range panels {
		out[i] = p.String()
	}
	return out
}
