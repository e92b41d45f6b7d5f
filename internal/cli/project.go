package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/task"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"proj"},
	Short:   "Manipulate projects",
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename CURRENT NEW",
	Short: "Rename a project across every task that carries it",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

func init() {
	projectCmd.AddCommand(projectRenameCmd)
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	current, next := args[0], args[1]

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	now := time.Now()
	count := 0
	for _, t := range rt.tasks.All() {
		snap, err := t.Snapshot(now)
		if err != nil {
			return err
		}
		if snap.Project == current {
			t.Append(task.ProjectChanged{Time: now, Project: next})
			count++
		}
	}

	if count == 0 {
		fmt.Println("no task for this project")
		return nil
	}

	if err := rt.save(); err != nil {
		return err
	}

	fmt.Printf("updated %d tasks\n", count)
	return nil
}
