// Package pipeline provides the load → select → render pipeline shared by
// the CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read the dataset from a store URI, or take one already in memory
//  2. Select: pick sessions and chambers to draw
//  3. Render: produce artifacts per session × chamber × format, concurrently,
//     consulting the artifact cache first
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "data/sessions.json",
//	    SessionNo: 117,
//	    Formats:   []string{"svg", "json"},
//	})
//	svg := result.Artifacts["117-senate.svg"]
//
// The "html" format renders one page for the whole selection and is stored
// under [PageArtifact].
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bipartisan-index/bipartisan/pkg/cache"
	"github.com/bipartisan-index/bipartisan/pkg/chart"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/render/sink"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

const (
	// DefaultInput is where the collector writes the dataset.
	DefaultInput = "data/sessions.json"

	DefaultWidth  = sink.DefaultWidth
	DefaultHeight = sink.DefaultHeight
	DefaultStyle  = "dark"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHTML = "html"
)

// PageArtifact is the artifact name of the HTML page.
const PageArtifact = "index.html"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatHTML: true,
}

// Options configures a pipeline run.
type Options struct {
	Input     string             `json:"input,omitempty"`
	SessionNo int                `json:"session,omitempty"` // 0 selects every session
	Chambers  []congress.Chamber `json:"chambers,omitempty"`
	Width     int                `json:"width,omitempty"`
	Height    int                `json:"height,omitempty"`
	Formats   []string           `json:"formats,omitempty"`
	Style     string             `json:"style,omitempty"`

	// Dataset, when set, is used instead of loading Input.
	Dataset     congress.Dataset `json:"-"`
	Logger      *log.Logger      `json:"-"`
	Concurrency int              `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Charts summarises every selected session × chamber in dataset order.
	Charts []Chart

	// Artifacts holds rendered outputs keyed by [ArtifactName].
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Chart is the computed summary of one chamber.
type Chart struct {
	SessionNo   int
	Description string
	Chamber     congress.Chamber
	Aggregate   chart.Aggregates
	Members     int
	Descending  bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sessions   int
	Charts     int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo counts artifact cache lookups.
type CacheInfo struct {
	Hits   int
	Misses int
}

// RenderHit reports whether every artifact came from the cache.
func (c CacheInfo) RenderHit() bool { return c.Misses == 0 && c.Hits > 0 }

// ArtifactName returns the artifact key for one chart, e.g. "117-senate.svg".
func ArtifactName(sessionNo int, c congress.Chamber, format string) string {
	if format == FormatHTML {
		return PageArtifact
	}
	return fmt.Sprintf("%d-%s.%s", sessionNo, c, format)
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if _, ok := styles.Lookup(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Dataset == nil {
		o.Input = DefaultInput
	}
	if o.SessionNo < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "session number must be positive, got %d", o.SessionNo)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must not be negative: %dx%d", o.Width, o.Height)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	for _, c := range o.Chambers {
		if !c.Valid() {
			return errors.New(errors.ErrCodeInvalidChamber, "unknown chamber %q", c)
		}
	}
	if len(o.Chambers) == 0 {
		o.Chambers = congress.Chambers
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(sessionNo int, c congress.Chamber, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		SessionNo: sessionNo,
		Chamber:   string(c),
		Format:    format,
		Style:     o.Style,
		Width:     o.Width,
		Height:    o.Height,
	}
}
