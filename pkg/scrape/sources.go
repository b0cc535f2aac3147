package scrape

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is the site the default catalog points at.
const DefaultBaseURL = "https://www.thelugarcenter.org/"

// Source describes one Congress with a page per chamber.
type Source struct {
	SessionNo  int    `toml:"number"`
	StartYear  int    `toml:"start_year"`
	EndYear    int    `toml:"end_year"` // 0 while the Congress is in progress
	SenateSlug string `toml:"senate"`
	HouseSlug  string `toml:"house"`
}

// HistoricSource describes a page with one senate table per Congress, newest
// first.
type HistoricSource struct {
	Slug           string `toml:"slug"`
	FirstSessionNo int    `toml:"first_session"`
	FirstEndYear   int    `toml:"first_end_year"`
}

// Catalog is the full list of pages to scrape.
type Catalog struct {
	BaseURL  string           `toml:"base_url"`
	Sessions []Source         `toml:"session"`
	Historic []HistoricSource `toml:"historic"`
}

// DefaultCatalog returns the built-in page list.
func DefaultCatalog() Catalog {
	return Catalog{
		BaseURL: DefaultBaseURL,
		Sessions: []Source{
			{SessionNo: 118, StartYear: 2023, SenateSlug: "ourwork-85.html", HouseSlug: "ourwork-86.html"},
			{SessionNo: 117, StartYear: 2021, EndYear: 2022, SenateSlug: "ourwork-84.html", HouseSlug: "ourwork-83.html"},
			{SessionNo: 116, StartYear: 2019, EndYear: 2020, SenateSlug: "ourwork-80.html", HouseSlug: "ourwork-79.html"},
			{SessionNo: 115, StartYear: 2017, EndYear: 2018, SenateSlug: "ourwork-69.html", HouseSlug: "ourwork-68.html"},
			{SessionNo: 114, StartYear: 2015, EndYear: 2016, SenateSlug: "ourwork-54.html", HouseSlug: "ourwork-53.html"},
			{SessionNo: 113, StartYear: 2013, EndYear: 2014, SenateSlug: "ourwork-41.html", HouseSlug: "ourwork-40.html"},
		},
		Historic: []HistoricSource{
			{Slug: "ourwork-47.html", FirstSessionNo: 112, FirstEndYear: 2012},
		},
	}
}

// LoadCatalog reads a TOML catalog. A missing base_url falls back to
// [DefaultBaseURL].
func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every entry can be resolved to a URL.
func (c Catalog) Validate() error {
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if len(c.Sessions) == 0 && len(c.Historic) == 0 {
		return errors.New("no sources")
	}
	for _, s := range c.Sessions {
		switch {
		case s.SessionNo <= 0:
			return fmt.Errorf("session number %d must be positive", s.SessionNo)
		case s.StartYear == 0:
			return fmt.Errorf("session %d: start_year is required", s.SessionNo)
		case s.EndYear != 0 && s.EndYear < s.StartYear:
			return fmt.Errorf("session %d: end_year %d before start_year %d", s.SessionNo, s.EndYear, s.StartYear)
		case s.SenateSlug == "" && s.HouseSlug == "":
			return fmt.Errorf("session %d: needs a senate or house page", s.SessionNo)
		}
	}
	for _, h := range c.Historic {
		if h.Slug == "" || h.FirstSessionNo <= 0 || h.FirstEndYear == 0 {
			return fmt.Errorf("historic source %q is incomplete", h.Slug)
		}
	}
	return nil
}

// WithBaseURL returns a copy of c pointing at base.
func (c Catalog) WithBaseURL(base string) Catalog {
	c.BaseURL = base
	return c
}

// PageURL joins the base URL and a slug.
func (c Catalog) PageURL(slug string) string {
	if slug == "" {
		return ""
	}
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + strings.TrimPrefix(slug, "/")
}

// Session returns the table-th Congress on a historic page, counting from 0.
func (h HistoricSource) Session(table int) (sessionNo, startYear, endYear int) {
	endYear = h.FirstEndYear - 2*table
	return h.FirstSessionNo - table, endYear - 1, endYear
}
