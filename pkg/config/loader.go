package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"

	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/render/styles"
)

const (
	// EnvPrefix prefixes every environment variable the loader reads.
	EnvPrefix = "BIPARTISAN_"

	// EnvConfig names the YAML file to load when no path is given.
	EnvConfig = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, the YAML file at path (or
// $BIPARTISAN_CONFIG when path is empty), environment variables and
// finally overrides, keyed like the koanf tags (e.g. "width").
func Load(path string, overrides map[string]any) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
		}
	}

	// BIPARTISAN_CACHE_TTL -> cache_ttl; underscores are kept to match tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load environment")
	}
	// the file path itself is not a setting
	k.Delete("config")

	for key, v := range overrides {
		if err := k.Set(key, v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "set %s", key)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New(errors.ErrCodeInvalidConfig, "addr must not be empty")
	case c.StoreURI() == "":
		return errors.New(errors.ErrCodeInvalidConfig, "data_path or store must be set")
	case c.Width < 0 || c.Height < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must not be negative")
	case c.CacheTTL < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must not be negative")
	}
	if _, ok := styles.Lookup(c.Style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", c.Style)
	}
	if c.ScrapeSchedule != "" {
		if _, err := cron.ParseStandard(c.ScrapeSchedule); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scrape_schedule %q", c.ScrapeSchedule)
		}
	}
	return nil
}
