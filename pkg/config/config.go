// Package config holds the settings shared by the CLI commands and the
// HTTP server.
//
// Values are layered, lowest precedence first:
//
//  1. defaults ([New])
//  2. a YAML file named by --config or $BIPARTISAN_CONFIG
//  3. environment variables prefixed BIPARTISAN_ (BIPARTISAN_CACHE_TTL=1h)
//  4. command-line flags, passed to [Load] as overrides
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bipartisan-index/bipartisan/pkg/cache"
)

// AppName names the cache directory and the env prefix.
const AppName = "bipartisan"

// Config contains process configuration.
type Config struct {
	// LogLevel is debug, info, warn or error.
	LogLevel string `koanf:"log_level"`

	// DataPath is the dataset file the collector writes and the renderer reads.
	DataPath string `koanf:"data_path"`

	// Store, when set, is a store URI (sqlite://, mongodb://) used instead
	// of DataPath.
	Store string `koanf:"store"`

	// BaseURL overrides the host the collector scrapes.
	BaseURL string `koanf:"base_url"`

	// Sources is an optional TOML catalog of scoring pages.
	Sources string `koanf:"sources"`

	// CacheDir holds HTTP and artifact caches. Empty means the XDG default.
	CacheDir string `koanf:"cache_dir"`

	// CacheTTL bounds the age of cached pages.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RedisAddr, when set, moves the artifact cache to Redis.
	RedisAddr string `koanf:"redis_addr"`

	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`

	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
	Style  string `koanf:"style"`

	// ScrapeSchedule is a cron expression for periodic re-scrapes by the
	// server. Empty disables them.
	ScrapeSchedule string `koanf:"scrape_schedule"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		DataPath: "data/sessions.json",
		CacheTTL: cache.TTLPage,
		Addr:     ":8080",
		Width:    1200,
		Height:   400,
		Style:    "dark",
	}
}

// StoreURI returns Store if set, otherwise DataPath.
func (c *Config) StoreURI() string {
	if c.Store != "" {
		return c.Store
	}
	return c.DataPath
}

// ResolveCacheDir returns CacheDir, or ~/.cache/bipartisan (honouring
// XDG_CACHE_HOME) when it is empty.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/bipartisan/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
