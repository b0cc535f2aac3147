package sink

import (
	"encoding/json"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

// Chart is the JSON form of one chamber's chart.
type Chart struct {
	SessionNo   int              `json:"sessionNo"`
	Description string           `json:"description"`
	Chamber     congress.Chamber `json:"chamber"`
	StartYear   int              `json:"startYear"`
	EndYear     *int             `json:"endYear"`
	SourceURL   string           `json:"sourceUrl,omitempty"`
	Aggregate   chart.Aggregates `json:"aggregate"`
	Labels      []string         `json:"labels"`
	Entries     []Entry          `json:"entries"`
}

// Entry is a member record with its layout.
type Entry struct {
	congress.Score
	Fraction float64 `json:"fraction"`
	Boundary bool    `json:"boundary"`
}

// BuildChart computes the aggregate and layout for one chamber of s.
func BuildChart(s *congress.Session, c congress.Chamber) (*Chart, error) {
	scores, err := chamberScores(s, c)
	if err != nil {
		return nil, err
	}
	agg := chart.Aggregate(scores, s.StartYear)
	layout := chart.Layout(scores, agg.ScoreSpace)

	entries := make([]Entry, len(scores))
	for i, sc := range scores {
		entries[i] = Entry{Score: sc, Fraction: layout[i].Fraction, Boundary: layout[i].Boundary}
	}
	return &Chart{
		SessionNo:   s.SessionNo,
		Description: s.Description(),
		Chamber:     c,
		StartYear:   s.StartYear,
		EndYear:     s.EndYear,
		SourceURL:   s.URL(c),
		Aggregate:   agg,
		Labels:      InfoLabels(c, agg),
		Entries:     entries,
	}, nil
}

// RenderJSON encodes [BuildChart]'s result with two-space indentation.
func RenderJSON(s *congress.Session, c congress.Chamber) ([]byte, error) {
	ch, err := BuildChart(s, c)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(ch, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
