package pipeline

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/store"
)

// Load returns opts.Dataset if set, otherwise reads opts.Input through the
// matching store backend. The dataset is validated either way.
func Load(ctx context.Context, opts Options) (congress.Dataset, error) {
	ds := opts.Dataset
	if ds == nil {
		st, err := store.Open(ctx, opts.Input)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		if ds, err = st.Load(ctx); err != nil {
			return nil, err
		}
	}
	if err := congress.Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Target is one chamber of one session to render.
type Target struct {
	Session *congress.Session
	Chamber congress.Chamber
}

// Selection is the part of a dataset a run draws.
type Selection struct {
	// Dataset holds copies of the selected sessions with unselected
	// chambers removed.
	Dataset congress.Dataset
	Targets []Target
}

// Select picks the sessions and chambers named by opts. Asking for a
// single session that does not exist is SESSION_NOT_FOUND; asking for a
// chamber that session does not score is CHAMBER_NOT_SCORED. Without a
// session number, sessions lacking a chamber are skipped silently.
func Select(ds congress.Dataset, opts Options) (Selection, error) {
	var sel Selection
	if opts.SessionNo != 0 {
		s, ok := ds.Find(opts.SessionNo)
		if !ok {
			return sel, errors.New(errors.ErrCodeSessionNotFound, "session %d not found", opts.SessionNo)
		}
		ds = congress.Dataset{*s}
	}

	chambers := opts.Chambers
	if len(chambers) == 0 {
		chambers = congress.Chambers
	}

	sel.Dataset = make(congress.Dataset, 0, len(ds))
	for _, s := range ds {
		if !slices.Contains(chambers, congress.Senate) {
			s.SenateScores = nil
		}
		if !slices.Contains(chambers, congress.House) {
			s.HouseScores = nil
		}
		sel.Dataset = append(sel.Dataset, s)
	}

	for i := range sel.Dataset {
		s := &sel.Dataset[i]
		for _, c := range chambers {
			if _, ok := s.Scores(c); !ok {
				if opts.SessionNo != 0 && len(opts.Chambers) == 1 {
					return Selection{}, errors.New(errors.ErrCodeChamberNotScored,
						"%s has no %s scores", s.Description(), c)
				}
				continue
			}
			sel.Targets = append(sel.Targets, Target{Session: s, Chamber: c})
		}
	}
	return sel, nil
}

// Summarize computes the chart summary of every target. Chambers whose
// scores are not in descending order are reported at debug level: their
// zero line is still placed before the first negative score.
func Summarize(targets []Target, logger *log.Logger) []Chart {
	charts := make([]Chart, 0, len(targets))
	for _, t := range targets {
		scores, _ := t.Session.Scores(t.Chamber)
		c := Chart{
			SessionNo:   t.Session.SessionNo,
			Description: t.Session.Description(),
			Chamber:     t.Chamber,
			Aggregate:   chart.Aggregate(scores, t.Session.StartYear),
			Members:     len(scores),
			Descending:  chart.IsDescending(scores),
		}
		if !c.Descending && logger != nil {
			logger.Debug("scores not in descending order", "session", c.SessionNo, "chamber", c.Chamber)
		}
		charts = append(charts, c)
	}
	return charts
}
