package scrape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

const (
	// GroupSize is the number of cells per member group in a row.
	GroupSize = 13
	// usedCells are number, first, last, state, party, score.
	usedCells = 6
)

// RowError describes a member group that could not be parsed.
type RowError struct {
	Row   int
	Group int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d group %d: %v", e.Row, e.Group, e.Err)
}

// ParseTable converts table rows into scores. The first row is a header.
// Each row is read in 13-cell groups; an incomplete trailing group is
// ignored. Groups with an unknown party or an unparsable number or score are
// skipped and reported in the returned slice.
func ParseTable(t Table) ([]congress.Score, []RowError) {
	scores := []congress.Score{}
	var skipped []RowError

	for r := 1; r < len(t); r++ {
		row := t[r]
		for g, i := 0, 0; i+GroupSize <= len(row); g, i = g+1, i+GroupSize {
			s, err := parseGroup(row[i : i+usedCells])
			if err != nil {
				skipped = append(skipped, RowError{Row: r, Group: g, Err: err})
				continue
			}
			scores = append(scores, s)
		}
	}
	return scores, skipped
}

func parseGroup(cells []string) (congress.Score, error) {
	number, err := strconv.Atoi(strings.TrimSuffix(cells[0], "."))
	if err != nil {
		return congress.Score{}, fmt.Errorf("rank %q: %w", cells[0], err)
	}
	party, err := congress.ParseParty(strings.ToUpper(cells[4]))
	if err != nil {
		return congress.Score{}, err
	}
	score, err := strconv.ParseFloat(cells[5], 64)
	if err != nil {
		return congress.Score{}, fmt.Errorf("score %q: %w", cells[5], err)
	}
	return congress.Score{
		Number:    number,
		FirstName: cells[1],
		LastName:  cells[2],
		State:     cells[3],
		Party:     party,
		Score:     score,
	}, nil
}
