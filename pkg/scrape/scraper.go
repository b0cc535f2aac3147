package scrape

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/httputil"
	"github.com/bipartisan-index/bipartisan/pkg/observability"
)

// Fetcher retrieves a page body. [httputil.Client] implements it.
type Fetcher interface {
	FetchText(ctx context.Context, url string, refresh bool) (string, error)
}

// Scraper walks a catalog and assembles a dataset.
type Scraper struct {
	fetcher  Fetcher
	catalog  Catalog
	logger   *log.Logger
	refresh  bool
	progress func(url string)
}

// Option configures a [Scraper].
type Option func(*Scraper)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRefresh bypasses cached pages.
func WithRefresh(refresh bool) Option {
	return func(s *Scraper) { s.refresh = refresh }
}

// WithProgress calls fn with each URL before it is fetched.
func WithProgress(fn func(url string)) Option {
	return func(s *Scraper) { s.progress = fn }
}

// New creates a Scraper for catalog.
func New(fetcher Fetcher, catalog Catalog, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		catalog: catalog,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one scrape run.
type Result struct {
	RunID     string
	Dataset   congress.Dataset
	Pages     int
	Skipped   int
	StartedAt time.Time
	Duration  time.Duration
}

// Run fetches every page in the catalog. Per-session sources come first in
// catalog order, followed by the historic tables. Any page failure aborts
// the run; malformed member rows are skipped with a warning.
func (s *Scraper) Run(ctx context.Context) (_ *Result, err error) {
	res := &Result{
		RunID:     uuid.NewString(),
		Dataset:   congress.Dataset{},
		StartedAt: time.Now(),
	}
	logger := s.logger.With("run", res.RunID)
	hooks := observability.Pipeline()
	hooks.OnScrapeStart(ctx, res.RunID)
	defer func() {
		res.Duration = time.Since(res.StartedAt)
		hooks.OnScrapeComplete(ctx, res.RunID, len(res.Dataset), res.Duration, err)
	}()

	logger.Info("scrape started", "sessions", len(s.catalog.Sessions), "historic", len(s.catalog.Historic))

	for _, src := range s.catalog.Sessions {
		session, err := s.scrapeSession(ctx, logger, src, res)
		if err != nil {
			return nil, err
		}
		res.Dataset = append(res.Dataset, session)
	}

	for _, h := range s.catalog.Historic {
		sessions, err := s.scrapeHistoric(ctx, logger, h, res)
		if err != nil {
			return nil, err
		}
		res.Dataset = append(res.Dataset, sessions...)
	}

	logger.Info("scrape finished", "sessions", len(res.Dataset), "pages", res.Pages, "skipped", res.Skipped)
	return res, nil
}

func (s *Scraper) scrapeSession(ctx context.Context, logger *log.Logger, src Source, res *Result) (congress.Session, error) {
	session := congress.Session{
		SessionNo: src.SessionNo,
		StartYear: src.StartYear,
		SenateURL: s.catalog.PageURL(src.SenateSlug),
		HouseURL:  s.catalog.PageURL(src.HouseSlug),
	}
	if src.EndYear != 0 {
		session.EndYear = congress.Year(src.EndYear)
	}

	var err error
	if session.SenateURL != "" {
		if session.SenateScores, err = s.scrapePage(ctx, logger, session.SenateURL, res); err != nil {
			return session, err
		}
	}
	if session.HouseURL != "" {
		if session.HouseScores, err = s.scrapePage(ctx, logger, session.HouseURL, res); err != nil {
			return session, err
		}
	}
	logger.Debug("session scraped", "session", src.SessionNo,
		"senate", len(session.SenateScores), "house", len(session.HouseScores))
	return session, nil
}

func (s *Scraper) scrapePage(ctx context.Context, logger *log.Logger, url string, res *Result) ([]congress.Score, error) {
	html, err := s.fetch(ctx, url, res)
	if err != nil {
		return nil, err
	}
	table, err := ExtractTable(html)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScrapeFailed, err, "failed to scrape data for %s", url)
	}
	return s.parse(logger, url, table, res), nil
}

func (s *Scraper) scrapeHistoric(ctx context.Context, logger *log.Logger, h HistoricSource, res *Result) (congress.Dataset, error) {
	url := s.catalog.PageURL(h.Slug)
	html, err := s.fetch(ctx, url, res)
	if err != nil {
		return nil, err
	}
	tables, err := ExtractTables(html)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScrapeFailed, err, "failed to scrape data for %s", url)
	}
	if len(tables) == 0 {
		return nil, errors.Wrap(errors.ErrCodeScrapeFailed, ErrNoTable, "failed to scrape data for %s", url)
	}

	out := make(congress.Dataset, 0, len(tables))
	for i, t := range tables {
		no, start, end := h.Session(i)
		out = append(out, congress.Session{
			SessionNo:    no,
			StartYear:    start,
			EndYear:      congress.Year(end),
			SenateScores: s.parse(logger, url, t, res),
			SenateURL:    url,
		})
	}
	logger.Debug("historic page scraped", "url", url, "tables", len(tables))
	return out, nil
}

func (s *Scraper) fetch(ctx context.Context, url string, res *Result) (string, error) {
	s.logger.Debug("fetching", "url", url)
	if s.progress != nil {
		s.progress(url)
	}
	html, err := s.fetcher.FetchText(ctx, url, s.refresh)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrap(codeFor(err), err, "fetch %s", url)
	}
	res.Pages++
	return html, nil
}

func (s *Scraper) parse(logger *log.Logger, url string, t Table, res *Result) []congress.Score {
	scores, skipped := ParseTable(t)
	for _, e := range skipped {
		logger.Warn("skipping member row", "url", url, "row", e.Row, "group", e.Group, "err", e.Err)
	}
	res.Skipped += len(skipped)
	return scores
}

func codeFor(err error) errors.Code {
	if stderrors.Is(err, httputil.ErrNotFound) {
		return errors.ErrCodeNotFound
	}
	return errors.ErrCodeNetwork
}
