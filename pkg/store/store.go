// Package store persists the scraped dataset.
//
// The canonical form is the JSON data file ([FileStore]). Deployments that
// share one dataset between several servers can keep it in MongoDB
// ([MongoStore]) or a SQLite database ([SQLiteStore]) instead. [Open] picks
// the backend from a URI:
//
//	data/sessions.json            JSON file
//	file:///srv/sessions.json     JSON file
//	sqlite://data/bipartisan.db   SQLite
//	mongodb://localhost/bipartisan MongoDB, database from the path
//
// Every backend preserves session order and the difference between an
// absent chamber and a chamber with no scores.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
)

// Meta describes the scrape run that produced a dataset.
type Meta struct {
	RunID     string    `json:"run_id" bson:"_id"`
	ScrapedAt time.Time `json:"scraped_at" bson:"scraped_at"`
	Source    string    `json:"source" bson:"source"`
	Sessions  int       `json:"sessions" bson:"sessions"`
	Skipped   int       `json:"skipped" bson:"skipped"`
}

// Store loads and saves a whole dataset.
type Store interface {
	// Load returns the stored dataset in its saved order.
	Load(ctx context.Context) (congress.Dataset, error)
	// Save replaces the stored dataset.
	Save(ctx context.Context, ds congress.Dataset, meta Meta) error
	Close() error
}

// Open returns the backend for uri.
func Open(ctx context.Context, uri string) (Store, error) {
	switch {
	case uri == "":
		return nil, errors.New(errors.ErrCodeInvalidConfig, "empty store location")
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return NewMongoStore(ctx, uri)
	case strings.HasPrefix(uri, "sqlite://"):
		return NewSQLiteStore(strings.TrimPrefix(uri, "sqlite://"))
	case strings.HasPrefix(uri, "file://"):
		return NewFileStore(strings.TrimPrefix(uri, "file://")), nil
	case strings.Contains(uri, "://"):
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported store scheme: %s", uri)
	default:
		return NewFileStore(uri), nil
	}
}
