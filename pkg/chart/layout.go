package chart

import (
	"math"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

// Entry is the layout of a single record.
type Entry struct {
	Fraction float64 `json:"fraction"` // share of the chart width, in [0,1]
	Boundary bool    `json:"boundary"` // zero line follows this bar
}

// Layout maps each record to its share of totalMagnitude and marks the first
// strictly negative score as the zero-line boundary. The result has the same
// length and order as scores. A zero totalMagnitude yields all-zero fractions.
func Layout(scores []congress.Score, totalMagnitude float64) []Entry {
	entries := make([]Entry, len(scores))
	passed := false
	for i, s := range scores {
		if totalMagnitude != 0 {
			entries[i].Fraction = math.Abs(s.Score) / totalMagnitude
		}
		if !passed && s.Score < 0 {
			entries[i].Boundary = true
			passed = true
		}
	}
	return entries
}

// BoundaryIndex returns the index of the flagged entry, or -1.
func BoundaryIndex(entries []Entry) int {
	for i, e := range entries {
		if e.Boundary {
			return i
		}
	}
	return -1
}

// IsDescending reports whether scores are ordered from highest to lowest.
// Only then does the boundary mark the true sign change.
func IsDescending(scores []congress.Score) bool {
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			return false
		}
	}
	return true
}
