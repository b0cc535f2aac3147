// Package cache stores rendered chart artifacts between runs.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: sharded JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching (--no-cache)
//
// Keys come from a [Keyer] so every backend agrees on their shape. An
// artifact key hashes the chamber's scores together with every render
// option, so a re-scrape that changes a single score misses the cache.
package cache

import (
	"context"
	"time"
)

// Default TTLs by entry kind.
const (
	TTLPage     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render options that affect an artifact's bytes.
type ArtifactKeyOpts struct {
	SessionNo int    `json:"session"`
	Chamber   string `json:"chamber"`
	Format    string `json:"format"`
	Style     string `json:"style"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(scoresHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey generates a key for a rendered chart.
func (DefaultKeyer) ArtifactKey(scoresHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", scoresHash, opts)
}
