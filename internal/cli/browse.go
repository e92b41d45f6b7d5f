package cli

import (
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdx-cli/tdx/internal/ui"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	Aliases: []string{"b"},
	Short:   "Browse tasks interactively",
	RunE:    runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	browser := ui.NewBrowser(&rt.cfg, rt.tasks, rt.save)
	p := tea.NewProgram(browser, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
