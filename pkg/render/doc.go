// Package render holds the presentation layer for bipartisanship charts.
//
// # Overview
//
//   - Format conversion from SVG to PDF/PNG ([ToPDF], [ToPNG])
//   - Visual styles (in [styles] subpackage)
//   - Output formats: SVG, HTML page, JSON, PNG, PDF (in [sink] subpackage)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert from librsvg:
//
//	svg, err := sink.RenderSVG(session, congress.Senate)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// Install it with `brew install librsvg` (macOS) or
// `apt install librsvg2-bin` (Debian/Ubuntu).
//
// [styles]: github.com/bipartisan-index/bipartisan/pkg/render/styles
// [sink]: github.com/bipartisan-index/bipartisan/pkg/render/sink
package render
