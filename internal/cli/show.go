package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/task"
	"github.com/tdx-cli/tdx/internal/ui"
)

var showCmd = &cobra.Command{
	Use:     "show UID",
	Aliases: []string{"s"},
	Short:   "Show the details of a task, notes included",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
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

	snap, err := t.Snapshot(time.Now())
	if err != nil {
		return err
	}

	renderer := ui.NewRenderer(&rt.cfg)
	fmt.Print(renderer.Show(snap))
	return nil
}
