package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

// browseCommand opens the interactive session browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dataset]",
		Short: "Browse sessions and their charts in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			ds, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewSessionBrowserModel(ds), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
