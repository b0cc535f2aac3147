package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

// renderOpts holds the render command's own flags. Size and style flags
// are read through the config.
type renderOpts struct {
	output  string
	formats string
	session int
	chamber string
	noCache bool
}

// renderCommand creates the render command for generating charts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render score charts from a dataset",
		Long: `Render one bar chart per session and chamber.

The dataset defaults to the configured store. Output files are named
<session>-<chamber>.<format>; the html format writes a single index.html
with every selected session.`,
		Example: `  # SVG charts for every session
  bipartisan render

  # The 117th Senate as PNG, light style
  bipartisan render --session 117 --chamber senate -f png --style light

  # Static page from a SQLite store
  bipartisan render sqlite://data/sessions.db -f html -o site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "charts", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: svg, png, pdf, json, html (comma-separated)")
	cmd.Flags().IntVar(&opts.session, "session", 0, "render only this session number")
	cmd.Flags().StringVar(&opts.chamber, "chamber", "", "render only this chamber: senate or house")
	cmd.Flags().Int("width", pipeline.DefaultWidth, "chart width in pixels")
	cmd.Flags().Int("height", pipeline.DefaultHeight, "chart height in pixels")
	cmd.Flags().String("style", pipeline.DefaultStyle, "visual style: dark or light")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	opts := c.baseOptions()
	if input != "" {
		opts.Input = input
	}
	opts.SessionNo = ro.session
	opts.Formats = parseFormats(ro.formats)

	chambers, err := parseChambers(ro.chamber)
	if err != nil {
		return err
	}
	opts.Chambers = chambers

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(ro.output, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d charts", result.Stats.Charts))

	printSuccess("Rendered %d sessions", result.Stats.Sessions)
	printStats(result.Stats.Charts, len(paths), result.CacheInfo.RenderHit())
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each artifact under dir and returns the paths in
// name order.
func writeArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, artifacts[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
