package chart

import (
	"fmt"
	"math"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

// Aggregates summarises one chamber of one session.
type Aggregates struct {
	ScoreSpace float64        `json:"scoreSpace"` // sum of |score|
	DCount     int            `json:"dCount"`
	RCount     int            `json:"rCount"`
	DSum       float64        `json:"dSum"`
	RSum       float64        `json:"rSum"`
	Majority   congress.Party `json:"majority"`
}

// Aggregate computes per-party counts and sums, the total absolute score,
// and the majority party. contextYear is only consulted to break a tie in
// member counts. Any record not marked Republican counts as Democrat.
func Aggregate(scores []congress.Score, contextYear int) Aggregates {
	var a Aggregates
	for _, s := range scores {
		a.ScoreSpace += math.Abs(s.Score)
		if s.Party == congress.Republican {
			a.RCount++
			a.RSum += s.Score
		} else {
			a.DCount++
			a.DSum += s.Score
		}
	}

	switch {
	case a.DCount > a.RCount:
		a.Majority = congress.Democrat
	case a.RCount > a.DCount:
		a.Majority = congress.Republican
	default:
		a.Majority = congress.ExecutiveParty(contextYear)
	}
	return a
}

// Count returns the member count for p.
func (a Aggregates) Count(p congress.Party) int {
	if p == congress.Republican {
		return a.RCount
	}
	return a.DCount
}

// Sum returns the summed score for p.
func (a Aggregates) Sum(p congress.Party) float64 {
	if p == congress.Republican {
		return a.RSum
	}
	return a.DSum
}

// Total returns the number of scored members.
func (a Aggregates) Total() int { return a.DCount + a.RCount }

// IsDegenerate reports whether the chamber has no magnitude to distribute.
func (a Aggregates) IsDegenerate() bool { return a.ScoreSpace == 0 }

// Distribution returns the seat split with the majority first, e.g. "51 - 49".
func (a Aggregates) Distribution() string {
	return fmt.Sprintf("%d - %d", a.Count(a.Majority), a.Count(a.Majority.Opposite()))
}
