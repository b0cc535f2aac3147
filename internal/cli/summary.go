package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

// summaryCommand prints aggregates without rendering anything.
func (c *CLI) summaryCommand() *cobra.Command {
	var (
		session int
		chamber string
	)

	cmd := &cobra.Command{
		Use:   "summary [dataset]",
		Short: "Print per-chamber aggregates as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if len(args) == 1 {
				opts.Input = args[0]
			}
			opts.SessionNo = session
			chambers, err := parseChambers(chamber)
			if err != nil {
				return err
			}
			opts.Chambers = chambers
			return c.runSummary(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().IntVar(&session, "session", 0, "only this session number")
	cmd.Flags().StringVar(&chamber, "chamber", "", "only this chamber: senate or house")
	return cmd
}

func (c *CLI) runSummary(ctx context.Context, w io.Writer, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	ds, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	sel, err := pipeline.Select(ds, opts)
	if err != nil {
		return err
	}
	charts := pipeline.Summarize(sel.Targets, c.Logger)
	fmt.Fprintln(w, summaryTable(charts))
	return nil
}

// summaryTable renders one row per chart. Rows for charts whose scores are
// not sorted descending are marked, since their zero line may be misplaced.
func summaryTable(charts []pipeline.Chart) string {
	rows := make([][]string, 0, len(charts))
	for _, ch := range charts {
		agg := ch.Aggregate
		order := ""
		if !ch.Descending {
			order = "!"
		}
		rows = append(rows, []string{
			ch.Description,
			ch.Chamber.Title(),
			strconv.Itoa(ch.Members),
			string(agg.Majority),
			agg.Distribution(),
			fmt.Sprintf("%.2f", agg.DSum),
			fmt.Sprintf("%.2f", agg.RSum),
			fmt.Sprintf("%.2f", agg.ScoreSpace),
			order,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Session", "Chamber", "Members", "Majority", "Split", "D Sum", "R Sum", "Space", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(charts) {
				return base
			}
			switch col {
			case 3:
				return base.Inherit(partyStyle(charts[row].Aggregate.Majority))
			case 5:
				return base.Inherit(partyStyle(congress.Democrat))
			case 6:
				return base.Inherit(partyStyle(congress.Republican))
			case 8:
				return base.Inherit(StyleWarning)
			}
			return base
		})

	return t.Render()
}
