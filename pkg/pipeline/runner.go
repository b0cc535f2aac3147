package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bipartisan-index/bipartisan/pkg/cache"
	"github.com/bipartisan-index/bipartisan/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → select → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	loadStart := time.Now()
	ds, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	sel, err := Select(ds, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Sessions = len(sel.Dataset)
	result.Stats.Charts = len(sel.Targets)
	result.Charts = Summarize(sel.Targets, opts.Logger)

	r.Logger.Info("loaded dataset",
		"sessions", result.Stats.Sessions,
		"charts", result.Stats.Charts,
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts, info, err := r.RenderWithCacheInfo(ctx, sel, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, len(artifacts), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"artifacts", len(artifacts),
		"cached", info.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every target of sel in every format, at most
// opts.Concurrency at a time. Each artifact is looked up in the cache
// first; the key hashes the session content together with the options
// that shape the output.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sel Selection, opts Options) (map[string][]byte, CacheInfo, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, CacheInfo{}, err
	}

	var (
		mu        sync.Mutex
		info      CacheInfo
		artifacts = make(map[string][]byte)
	)
	put := func(name string, data []byte, hit bool) {
		mu.Lock()
		defer mu.Unlock()
		artifacts[name] = data
		if hit {
			info.Hits++
		} else {
			info.Misses++
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, format := range opts.Formats {
		if format == FormatHTML {
			g.Go(func() error {
				data, hit, err := r.cached(gctx, sel.Dataset, opts.ArtifactKeyOpts(opts.SessionNo, "", format), func() ([]byte, error) {
					return RenderPage(sel.Dataset, opts)
				})
				if err != nil {
					return err
				}
				put(PageArtifact, data, hit)
				return nil
			})
			continue
		}
		for _, t := range sel.Targets {
			g.Go(func() error {
				key := opts.ArtifactKeyOpts(t.Session.SessionNo, t.Chamber, format)
				data, hit, err := r.cached(gctx, t.Session, key, func() ([]byte, error) {
					return RenderChart(t, format, opts)
				})
				if err != nil {
					return err
				}
				put(ArtifactName(t.Session.SessionNo, t.Chamber, format), data, hit)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, CacheInfo{}, err
	}
	return artifacts, info, nil
}

// RenderTarget renders a single chart through the cache.
func (r *Runner) RenderTarget(ctx context.Context, t Target, format string, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	data, _, err := r.cached(ctx, t.Session, opts.ArtifactKeyOpts(t.Session.SessionNo, t.Chamber, format), func() ([]byte, error) {
		return RenderChart(t, format, opts)
	})
	return data, err
}

func (r *Runner) cached(ctx context.Context, content any, opts cache.ArtifactKeyOpts, render func() ([]byte, error)) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	hash, err := cache.HashJSON(content)
	if err != nil {
		return nil, false, fmt.Errorf("hash content: %w", err)
	}
	key := r.Keyer.ArtifactKey(hash, opts)
	cacheHooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		cacheHooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, "artifact")

	data, err := render()
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", opts.Format, "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
