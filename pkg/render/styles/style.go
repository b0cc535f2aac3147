// Package styles defines the color schemes charts are drawn with.
package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
)

// Style controls how a chart is painted.
type Style interface {
	Name() string
	Background() string
	PartyColor(p congress.Party) string
	Text() string
	Panel() string
	PanelBorder() string
	// RenderDefs writes the SVG <style> block shared by all elements.
	RenderDefs(buf *bytes.Buffer)
}

// Palette is a Style built from fixed colors.
type Palette struct {
	ID         string
	Bg         string
	Republican string
	Democrat   string
	Fg         string
	PanelFill  string
	Border     string
	Font       string
}

func (p Palette) Name() string        { return p.ID }
func (p Palette) Background() string  { return p.Bg }
func (p Palette) Text() string        { return p.Fg }
func (p Palette) Panel() string       { return p.PanelFill }
func (p Palette) PanelBorder() string { return p.Border }

// PartyColor returns red for Republicans and blue for everyone else.
func (p Palette) PartyColor(party congress.Party) string {
	if party == congress.Republican {
		return p.Republican
	}
	return p.Democrat
}

func (p Palette) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>\n")
	fmt.Fprintf(buf, "    text { font-family: %s; font-size: 13px; fill: %s; }\n", p.Font, p.Fg)
	fmt.Fprintf(buf, "    .panel { fill: %s; stroke: %s; stroke-width: 1; }\n", p.PanelFill, p.Border)
	fmt.Fprintf(buf, "    .badge { stroke: %s; stroke-width: 1; }\n", p.Fg)
	fmt.Fprintf(buf, "    .bar:hover { opacity: 0.8; }\n")
	fmt.Fprintf(buf, "  </style>\n")
}

const defaultFont = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif"

// Dark is the default scheme: party bars on black.
var Dark Style = Palette{
	ID:         "dark",
	Bg:         "#1a1a1a",
	Republican: "#e53935",
	Democrat:   "#1e88e5",
	Fg:         "#ffffff",
	PanelFill:  "#000000",
	Border:     "rgba(255, 255, 255, .2)",
	Font:       defaultFont,
}

// Light is a print-friendly scheme.
var Light Style = Palette{
	ID:         "light",
	Bg:         "#ffffff",
	Republican: "#c62828",
	Democrat:   "#1565c0",
	Fg:         "#111111",
	PanelFill:  "#f5f5f5",
	Border:     "rgba(0, 0, 0, .2)",
	Font:       defaultFont,
}

var registry = map[string]Style{
	"dark":  Dark,
	"light": Light,
}

// Lookup returns the style registered under name (case-insensitive).
func Lookup(name string) (Style, bool) {
	s, ok := registry[strings.ToLower(name)]
	return s, ok
}

// Names lists registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EscapeXML escapes s for use in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
