package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/internal/server"
	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve charts over HTTP",
		Long: `Serve the chart page, per-chamber charts and the session API over HTTP.

With --scrape-schedule (a 5-field cron expression) the server re-scrapes on
that schedule, saves the result to the store and swaps it in without a
restart. Prometheus metrics are exposed at /metrics.`,
		Example: `  # Serve data/sessions.json on :8080
  bipartisan serve

  # Re-scrape nightly into SQLite, cache artifacts in Redis
  bipartisan serve --store sqlite://data/sessions.db --redis localhost:6379 --scrape-schedule "0 3 * * *"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := c.Config.StoreURI()
			if len(args) == 1 {
				uri = args[0]
			}
			return c.runServe(cmd.Context(), uri, noCache)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("scrape-schedule", "", "cron schedule for background scrapes")
	cmd.Flags().Int("width", pipeline.DefaultWidth, "default chart width in pixels")
	cmd.Flags().Int("height", pipeline.DefaultHeight, "default chart height in pixels")
	cmd.Flags().String("style", pipeline.DefaultStyle, "default visual style")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page and artifact caches")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, uri string, noCache bool) error {
	cfg := c.Config
	schedule := cfg.ScrapeSchedule

	opts := c.baseOptions()
	opts.Input = uri
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	ds, err := pipeline.Load(ctx, opts)
	switch {
	case err == nil:
	case schedule != "" && errors.Is(err, errors.ErrCodeFileNotFound):
		printWarning("No dataset at %s yet, serving empty until the first scrape", uri)
		ds = congress.Dataset{}
	default:
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	metrics := server.NewMetrics()
	metrics.Install()

	srv := server.New(ds,
		server.WithRunner(runner),
		server.WithLogger(c.Logger),
		server.WithMetrics(metrics),
		server.WithRenderOptions(pipeline.Options{
			Width:  cfg.Width,
			Height: cfg.Height,
			Style:  cfg.Style,
		}),
	)

	if schedule != "" {
		refresh := func(ctx context.Context) (congress.Dataset, error) {
			res, catalog, err := c.collect(ctx, true, noCache, nil)
			if err != nil {
				return nil, err
			}
			if err := c.save(ctx, uri, res, catalog); err != nil {
				return nil, err
			}
			return res.Dataset, nil
		}
		sched, err := server.NewScheduler(schedule, srv, refresh, c.Logger)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		defer sched.Stop()
		if len(ds) == 0 {
			go sched.RunOnce(ctx)
		}
		printKeyValue("Next scrape", sched.Next().Format("2006-01-02 15:04"))
	}

	printKeyValue("Sessions", fmt.Sprintf("%d", len(ds)))
	printKeyValue("Store", uri)
	printKeyValue("Listening", cfg.Addr)
	return srv.ListenAndServe(ctx, cfg.Addr)
}
