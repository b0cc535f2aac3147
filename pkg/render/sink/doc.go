// Package sink renders one chamber of one session, or a whole dataset, into
// an output format.
//
//   - SVG: a single bar chart ([RenderSVG])
//   - HTML: every session with its charts on one page ([RenderPage])
//   - JSON: aggregates and layout entries for other tools ([RenderJSON])
//   - PDF/PNG: the SVG converted via rsvg-convert ([RenderPDF], [RenderPNG])
//
// # Chart anatomy
//
// Bars run left to right in the order the scores are stored, each as tall as
// the chart and as wide as its share of the chamber's total absolute score.
// A 10px slot after the first negative score marks zero. An info box in the
// top-left corner shows three panels:
//
//	Senate | Majority: ■ (51 - 49) | Aggregate Scores: ■ 12.34 ■ -5.67
//
// The squares are party color badges; the aggregate panel always lists the
// Democratic sum first.
//
// Basic usage:
//
//	svg, err := sink.RenderSVG(session, congress.Senate,
//	    sink.WithStyle(styles.Light),
//	    sink.WithSize(1200, 400),
//	)
package sink
