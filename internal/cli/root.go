package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "crfstudio" command. Running it
// without a subcommand starts the builder TUI; non-interactive
// subcommands are registered for scripting.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "crfstudio",
		Short:        "Clinical form schema builder",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.AddCommand(
		newStudiesCmd(app),
		newExportCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the builder requires an interactive terminal; see 'crfstudio --help' for scriptable commands")
	}

	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
