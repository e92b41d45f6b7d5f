package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/task"
	"github.com/tdx-cli/tdx/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history UID",
	Short: "Show the event history of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	uid, err := task.ParseUID(args[0])
	if err != nil {
		return err
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	t, err := rt.tasks.Get(uid)
	if err != nil {
		return err
	}

	renderer := ui.NewRenderer(&rt.cfg)
	fmt.Print(renderer.History(uid, t.History()))
	return nil
}
