// Package cli wires the tdx commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/config"
	"github.com/tdx-cli/tdx/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "tdx",
	Short:         "A task / todo / note management tool",
	Long:          "tdx captures short task records, moves them through a status lifecycle,\nattaches projects, priorities, tags and Markdown notes, and lists the result.",
	RunE:          runList, // default action lists active tasks
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(browseCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// runtime bundles what every command needs: the configuration, the open
// database and the loaded task collection.
type runtime struct {
	cfg   config.Config
	db    *store.DB
	tasks *store.Store
}

// openRuntime loads the configuration and the full task collection. The
// collection is loaded once per invocation; mutating commands save it back
// once at the end.
func openRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path, err := store.DefaultPath()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, db: db, tasks: store.Load(tasks)}, nil
}

func (r *runtime) save() error {
	return r.db.SaveTasks(r.tasks.All())
}

func (r *runtime) close() {
	r.db.Close()
}
