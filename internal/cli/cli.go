package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/pkg/buildinfo"
	"github.com/bipartisan-index/bipartisan/pkg/cache"
	"github.com/bipartisan-index/bipartisan/pkg/config"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// flagKeys maps command-line flags onto config keys. A flag only
// overrides the config file and environment when it was set explicitly.
var flagKeys = map[string]string{
	"base-url":        "base_url",
	"sources":         "sources",
	"store":           "store",
	"cache-dir":       "cache_dir",
	"redis":           "redis_addr",
	"addr":            "addr",
	"width":           "width",
	"height":          "height",
	"style":           "style",
	"scrape-schedule": "scrape_schedule",
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bipartisan charts congressional bipartisanship scores",
		Long: `Bipartisan collects per-member bipartisanship scores for each Congress and
draws them as proportional bar charts, one per chamber.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (YAML), default $"+config.EnvConfig)
	root.PersistentFlags().String("store", "", "dataset location: file path, sqlite:// or mongodb:// URI")
	root.PersistentFlags().String("cache-dir", "", "cache directory (default ~/.cache/"+appName+")")
	root.PersistentFlags().String("redis", "", "Redis address or URL for the artifact cache")

	root.AddCommand(c.scrapeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig layers explicitly set flags over the config file and env.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	overrides := make(map[string]any)
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	cfg, err := config.Load(c.configPath, overrides)
	if err != nil {
		return err
	}
	c.Config = cfg
	if !c.verbose {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			c.SetLogLevel(level)
		}
	}
	c.Logger.Debug("config loaded", "store", cfg.StoreURI(), "style", cfg.Style)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Keys are scoped by
// version so a new renderer never serves artifacts drawn by an old one.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, c.Config.RedisAddr, appName+":")
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.Config.ResolveCacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(filepath.Join(dir, "artifacts"))
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// baseOptions returns pipeline options from the loaded config.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Input:  c.Config.StoreURI(),
		Width:  c.Config.Width,
		Height: c.Config.Height,
		Style:  c.Config.Style,
		Logger: c.Logger,
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseChambers turns the --chamber flag into a filter. Empty selects both.
func parseChambers(s string) ([]congress.Chamber, error) {
	if s == "" {
		return nil, nil
	}
	c, err := congress.ParseChamber(strings.ToLower(s))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChamber, err, "invalid --chamber %q", s)
	}
	return []congress.Chamber{c}, nil
}
