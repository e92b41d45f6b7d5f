package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/task"
)

var todoCmd = &cobra.Command{
	Use:   "todo UID",
	Short: "Mark a task as todo",
	Args:  cobra.ExactArgs(1),
	RunE:  statusRun(task.StatusTodo),
}

var startCmd = &cobra.Command{
	Use:   "start UID",
	Short: "Mark a task as started",
	Args:  cobra.ExactArgs(1),
	RunE:  statusRun(task.StatusWip),
}

var doneCmd = &cobra.Command{
	Use:   "done UID",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  statusRun(task.StatusDone),
}

var cancelCmd = &cobra.Command{
	Use:   "cancel UID",
	Short: "Mark a task as cancelled",
	Args:  cobra.ExactArgs(1),
	RunE:  statusRun(task.StatusCancelled),
}

func statusRun(status task.Status) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
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

		// Re-applying the current status is a no-op unless the
		// configuration asks for the event to be recorded anyway.
		if snap.Status == status && !rt.cfg.RecordSelfTransitions {
			fmt.Printf("task %s is already %s\n", uid, rt.cfg.StatusAlias(status))
			return nil
		}

		rt.tasks.Append(uid, task.StatusChanged{Time: time.Now(), Status: status})
		if err := rt.save(); err != nil {
			return err
		}

		return printTask(rt, uid)
	}
}
