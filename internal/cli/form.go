package cli

import (
	"fmt"

	"github.com/Vero970/ProjFit/internal/form"
	"github.com/Vero970/ProjFit/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFormCmd(looker form.Looker) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive intake form",
		Long: `Opens the terminal form.

Controls:
  Tab      - Next field
  Enter    - Calculate
  Esc      - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model := tui.NewModel(cmd.Context(), looker, nil)
			p := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("form failed: %w", err)
			}
			return nil
		},
	}
}
