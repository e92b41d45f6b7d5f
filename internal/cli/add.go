package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/editor"
	"github.com/tdx-cli/tdx/internal/listing"
	"github.com/tdx-cli/tdx/internal/metadata"
	"github.com/tdx-cli/tdx/internal/query"
	"github.com/tdx-cli/tdx/internal/task"
	"github.com/tdx-cli/tdx/internal/ui"
)

var addCmd = &cobra.Command{
	Use:     "add [content]",
	Aliases: []string{"a"},
	Short:   "Add a task; metadata markers in the content apply directly",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().Bool("start", false, "Create the task already started (WIP)")
	addCmd.Flags().Bool("done", false, "Create the task already finished (DONE)")
	addCmd.Flags().BoolP("note", "n", false, "Open the editor to log a note right after creating")
}

func runAdd(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	tokens := metadata.Tokenize(args...)
	if err := metadata.Validate(tokens); err != nil {
		return err
	}

	name := metadata.FreeText(tokens)
	if name == "" {
		return fmt.Errorf("cannot create a task without a description")
	}

	now := time.Now()
	created := task.Created{Time: now, Name: name}
	for _, tok := range tokens {
		switch tok.Kind {
		case metadata.KindProject:
			created.Project = tok.Value
		case metadata.KindPriority:
			created.Priority = tok.Priority
			created.HasPriority = true
		case metadata.KindTag:
			created.Tags = append(created.Tags, tok.Value)
		}
	}

	uid, _ := rt.tasks.Create(created)

	start, _ := cmd.Flags().GetBool("start")
	done, _ := cmd.Flags().GetBool("done")
	if start {
		rt.tasks.Append(uid, task.StatusChanged{Time: now, Status: task.StatusWip})
	} else if done {
		rt.tasks.Append(uid, task.StatusChanged{Time: now, Status: task.StatusDone})
	}

	withNote, _ := cmd.Flags().GetBool("note")
	if withNote {
		text, err := editor.EditNote(&rt.cfg, nil, "", false)
		if errors.Is(err, editor.ErrAborted) {
			fmt.Println(err)
		} else if err != nil {
			return err
		} else if _, err := rt.tasks.AddNote(uid, text, time.Now()); err != nil {
			return err
		}
	}

	if err := rt.save(); err != nil {
		return err
	}

	return printTask(rt, uid)
}

// printTask lists a single task, the same way the listing does.
func printTask(rt *runtime, uid task.UID) error {
	t, err := rt.tasks.Get(uid)
	if err != nil {
		return err
	}

	filter, err := query.Compile(nil, query.StatusFlags{All: true}, rt.cfg.CaseSensitive)
	if err != nil {
		return err
	}

	rows, err := listing.Build([]*task.Task{t}, filter, time.Now())
	if err != nil {
		return err
	}

	renderer := ui.NewRenderer(&rt.cfg)
	fmt.Print(renderer.Table(rows))
	return nil
}
