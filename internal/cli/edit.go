package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/metadata"
	"github.com/tdx-cli/tdx/internal/task"
)

var editCmd = &cobra.Command{
	Use:     "edit UID [content]",
	Aliases: []string{"ed", "e"},
	Short:   "Change a task's name or metadata",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	uid, err := task.ParseUID(args[0])
	if err != nil {
		return err
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	tokens := metadata.Tokenize(args[1:]...)
	if err := metadata.Validate(tokens); err != nil {
		return err
	}

	if _, err := rt.tasks.Get(uid); err != nil {
		return err
	}

	// Each metadata marker becomes its own event; a non-empty leftover text
	// renames the task. All appends happen before the single save below, so
	// the command is atomic on disk.
	now := time.Now()
	var added []string
	for _, tok := range tokens {
		switch tok.Kind {
		case metadata.KindProject:
			rt.tasks.Append(uid, task.ProjectChanged{Time: now, Project: tok.Value})
		case metadata.KindPriority:
			rt.tasks.Append(uid, task.PriorityChanged{Time: now, Priority: tok.Priority})
		case metadata.KindTag:
			added = append(added, tok.Value)
		}
	}
	if len(added) > 0 {
		rt.tasks.Append(uid, task.TagsChanged{Time: now, Added: added})
	}

	if name := metadata.FreeText(tokens); name != "" {
		rt.tasks.Append(uid, task.NameChanged{Time: now, Name: name})
	}

	if err := rt.save(); err != nil {
		return err
	}

	return printTask(rt, uid)
}
