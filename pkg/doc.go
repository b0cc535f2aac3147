// Package pkg provides the libraries behind the Bipartisan Index charts.
//
// # Overview
//
// The index charts per-member bipartisanship scores for each Congress as
// proportional bar charts, one per chamber. The pkg directory is organized
// by stage:
//
//  1. Domain: [congress] records and [chart] arithmetic
//  2. Collection: [scrape] over [httputil], persisted by [store]
//  3. Presentation: [render], [render/styles] and [render/sink]
//  4. Orchestration: [pipeline] with the [cache] layer
//  5. Ambient: [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Score pages (HTML)
//	         ↓
//	    [scrape] package (extract tables, parse member rows)
//	         ↓
//	    [store] package (JSON file, SQLite or MongoDB)
//	         ↓
//	    [chart] package (aggregates, layout fractions, bar geometry)
//	         ↓
//	    [render/sink] package (SVG, HTML, JSON, PNG, PDF)
//
// # Quick Start
//
//	ds, _ := congress.ImportJSON("data/sessions.json")
//	s, _ := ds.Find(117)
//	svg, _ := sink.RenderSVG(s, congress.Senate, sink.WithStyle(styles.Light))
//
// Or through the pipeline, which adds validation and caching:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:   "data/sessions.json",
//	    Formats: []string{"svg", "html"},
//	})
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/chart/...      # Specific package
//	go test -run Example ./...   # Examples only
//
// [congress]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/congress
// [chart]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/chart
// [scrape]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/scrape
// [httputil]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/httputil
// [store]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/store
// [render]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/render
// [render/styles]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/render/styles
// [render/sink]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/cache
// [config]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/config
// [errors]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/bipartisan-index/bipartisan/pkg/buildinfo
package pkg
