package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/pkg/httputil"
	"github.com/bipartisan-index/bipartisan/pkg/scrape"
	"github.com/bipartisan-index/bipartisan/pkg/store"
)

// scrapeCommand creates the scrape command for collecting scores.
func (c *CLI) scrapeCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Collect bipartisanship scores into the dataset store",
		Long: `Collect per-member bipartisanship scores for every Congress in the source
catalog and save them to the configured store.

Pages are cached on disk, so re-running is cheap. Use --refresh to fetch
everything again.`,
		Example: `  # Scrape into data/sessions.json
  bipartisan scrape

  # Scrape into a scratch file, refetching every page
  bipartisan scrape -o /tmp/sessions.json --refresh

  # Scrape into SQLite with a custom catalog
  bipartisan scrape --store sqlite://data/sessions.db --sources sources.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScrape(cmd.Context(), output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "dataset destination (default: the configured store)")
	cmd.Flags().String("sources", "", "TOML source catalog (default: built-in)")
	cmd.Flags().String("base-url", "", "override the catalog base URL")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the page cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache entirely")

	return cmd
}

func (c *CLI) runScrape(ctx context.Context, output string, refresh, noCache bool) error {
	spinner := newSpinnerWithContext(ctx, "Fetching score pages...")
	spinner.Start()
	prog := newProgress(c.Logger)

	res, catalog, err := c.collect(ctx, refresh, noCache, func(url string) {
		spinner.SetMessage("Fetching " + url)
	})
	if err != nil {
		spinner.StopWithError("Scrape failed")
		return err
	}
	spinner.Stop()

	dest := c.Config.StoreURI()
	if output != "" {
		dest = output
	}
	if err := c.save(ctx, dest, res, catalog); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Scraped %d pages", res.Pages))
	printSuccess("Collected %d sessions", len(res.Dataset))
	if res.Skipped > 0 {
		printWarning("Skipped %d malformed rows", res.Skipped)
	}
	printFile(dest)
	printNextStep("Render charts", appName+" render -f svg,html")
	return nil
}

// collect loads the catalog and runs one scrape.
func (c *CLI) collect(ctx context.Context, refresh, noCache bool, progress func(string)) (*scrape.Result, scrape.Catalog, error) {
	catalog := scrape.DefaultCatalog()
	if c.Config.Sources != "" {
		var err error
		if catalog, err = scrape.LoadCatalog(c.Config.Sources); err != nil {
			return nil, catalog, err
		}
	}
	if c.Config.BaseURL != "" {
		catalog = catalog.WithBaseURL(c.Config.BaseURL)
	}
	if err := catalog.Validate(); err != nil {
		return nil, catalog, err
	}

	var pages *httputil.Cache
	if !noCache {
		dir, err := c.Config.ResolveCacheDir()
		if err != nil {
			return nil, catalog, fmt.Errorf("get cache dir: %w", err)
		}
		if pages, err = httputil.NewCache(filepath.Join(dir, "http"), c.Config.CacheTTL); err != nil {
			return nil, catalog, err
		}
	}

	opts := []scrape.Option{
		scrape.WithLogger(loggerFromContext(ctx)),
		scrape.WithRefresh(refresh),
	}
	if progress != nil {
		opts = append(opts, scrape.WithProgress(progress))
	}

	res, err := scrape.New(httputil.NewClient(pages), catalog, opts...).Run(ctx)
	if err != nil {
		return nil, catalog, err
	}
	return res, catalog, nil
}

// save writes a scrape result to the store at uri.
func (c *CLI) save(ctx context.Context, uri string, res *scrape.Result, catalog scrape.Catalog) error {
	st, err := store.Open(ctx, uri)
	if err != nil {
		return err
	}
	defer st.Close()

	meta := store.Meta{
		RunID:     res.RunID,
		ScrapedAt: res.StartedAt,
		Source:    catalog.BaseURL,
		Sessions:  len(res.Dataset),
		Skipped:   res.Skipped,
	}
	if err := st.Save(ctx, res.Dataset, meta); err != nil {
		return fmt.Errorf("save %s: %w", uri, err)
	}
	c.Logger.Debug("dataset saved", "store", uri, "run", res.RunID)
	return nil
}
