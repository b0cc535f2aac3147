package congress

import (
	"fmt"
	"strings"

	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

// Validate checks the structural invariants of a dataset: positive session
// numbers, a start year on every session, end years not before start years,
// and party codes limited to R and D. All problems are reported together.
//
// Validate does not check score ordering; see the chart package for how
// unsorted chambers are drawn.
func Validate(ds Dataset) error {
	var problems []string
	seen := make(map[int]bool, len(ds))

	for i := range ds {
		s := &ds[i]
		where := fmt.Sprintf("session[%d]", i)
		if s.SessionNo <= 0 {
			problems = append(problems, fmt.Sprintf("%s: session number must be positive", where))
		} else {
			where = fmt.Sprintf("session %d", s.SessionNo)
			if seen[s.SessionNo] {
				problems = append(problems, fmt.Sprintf("%s: duplicate session number", where))
			}
			seen[s.SessionNo] = true
		}
		if s.StartYear == 0 {
			problems = append(problems, fmt.Sprintf("%s: missing start year", where))
		}
		if s.EndYear != nil && *s.EndYear < s.StartYear {
			problems = append(problems, fmt.Sprintf("%s: end year %d before start year %d", where, *s.EndYear, s.StartYear))
		}
		for _, c := range Chambers {
			scores, _ := s.Scores(c)
			for j, sc := range scores {
				if !sc.Party.Valid() {
					problems = append(problems, fmt.Sprintf("%s %s[%d]: invalid party %q", where, c, j, sc.Party))
				}
			}
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidDataset, "%s", strings.Join(problems, "; "))
	}
	return nil
}
