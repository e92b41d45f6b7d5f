package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/editor"
	"github.com/tdx-cli/tdx/internal/store"
	"github.com/tdx-cli/tdx/internal/task"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Add and edit task notes",
}

var noteAddCmd = &cobra.Command{
	Use:     "add UID",
	Aliases: []string{"a"},
	Short:   "Write a new note for a task in your editor",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteAdd,
}

var noteEditCmd = &cobra.Command{
	Use:     "edit UID NOTE_UID",
	Aliases: []string{"ed", "e"},
	Short:   "Rework an existing note in your editor",
	Args:    cobra.ExactArgs(2),
	RunE:    runNoteEdit,
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteEditCmd)

	noteAddCmd.Flags().Bool("no-history", false, "Do not prefill the editor with previous notes")
	noteEditCmd.Flags().Bool("no-history", false, "Do not prefill the editor with previous notes")
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
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

	noHistory, _ := cmd.Flags().GetBool("no-history")
	withHistory := !noHistory && rt.cfg.NoteHistory

	text, err := editor.EditNote(&rt.cfg, snap.Notes, "\n", withHistory)
	if errors.Is(err, editor.ErrAborted) {
		fmt.Println(err)
		return nil
	}
	if err != nil {
		return err
	}

	noteUID, err := rt.tasks.AddNote(uid, text, time.Now())
	if err != nil {
		return err
	}

	if err := rt.save(); err != nil {
		return err
	}

	fmt.Printf("note %s added to task %s\n", noteUID, uid)
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	uid, err := task.ParseUID(args[0])
	if err != nil {
		return err
	}
	noteUID, err := task.ParseNoteUID(args[1])
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

	note, ok := snap.Note(noteUID)
	if !ok {
		return &store.NotFoundError{TaskUID: uid, NoteUID: noteUID}
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	withHistory := !noHistory && rt.cfg.NoteHistory

	text, err := editor.EditNote(&rt.cfg, snap.Notes, note.Text, withHistory)
	if errors.Is(err, editor.ErrAborted) {
		fmt.Println(err)
		return nil
	}
	if err != nil {
		return err
	}

	if err := rt.tasks.EditNote(uid, noteUID, text, time.Now()); err != nil {
		return err
	}

	if err := rt.save(); err != nil {
		return err
	}

	fmt.Printf("note %s of task %s updated\n", noteUID, uid)
	return nil
}
