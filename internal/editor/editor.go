// Package editor spawns the user's interactive editor to write or rework a
// task note.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/tdx-cli/tdx/internal/config"
	"github.com/tdx-cli/tdx/internal/task"
)

var (
	// ErrAborted means the editor returned empty content; the command
	// treats it as "nothing to record", not a failure.
	ErrAborted = errors.New("empty note; nothing recorded")

	// ErrNoEditor means neither $EDITOR nor the configuration names a
	// usable editor.
	ErrNoEditor = errors.New("no interactive editor; set $EDITOR or the editor configuration key")
)

// historyMarker separates the read-only note history from the content the
// user writes below it.
const historyMarker = "---------------------- >8 ----------------------\n"

// EditNote opens the editor on a temp file prefilled with `prefill` and,
// when withHistory is set, the task's previous notes above a marker line.
// It returns the text the user wrote: everything below the marker when a
// history was shown, the whole file otherwise. Empty content (after
// trimming) yields ErrAborted.
func EditNote(cfg *config.Config, notes []task.Note, prefill string, withHistory bool) (string, error) {
	content := prefill
	if withHistory {
		var b strings.Builder
		for _, note := range notes {
			fmt.Fprintf(&b, "> Note #%d, on %s", note.UID, formatDate(note.CreatedAt))
			if note.EditedAt.After(note.CreatedAt) {
				fmt.Fprintf(&b, ", edited on %s", formatDate(note.EditedAt))
			}
			b.WriteString("\n")
			b.WriteString(note.Text)
			b.WriteString("\n\n")
		}
		b.WriteString("> Above are the previously recorded notes; they are not part of the new one.\n")
		b.WriteString("> Write your note below the following line. Do not remove it!\n")
		b.WriteString(historyMarker)
		b.WriteString(prefill)
		content = b.String()
	}

	edited, err := open(cfg, "NOTE.md", content)
	if err != nil {
		return "", err
	}

	if withHistory {
		idx := strings.Index(edited, historyMarker)
		if idx < 0 {
			return "", errors.New("the note history marker was removed; note discarded")
		}
		edited = edited[idx+len(historyMarker):]
	}

	if strings.TrimSpace(edited) == "" {
		return "", ErrAborted
	}
	return edited, nil
}

// open writes content to a temp file, runs the resolved editor on it and
// returns the file's content afterwards.
func open(cfg *config.Config, name, content string) (string, error) {
	editor, err := resolve(cfg)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "tdx-note-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s: %w", editor, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}

// resolve picks $EDITOR first, then the configured editor.
func resolve(cfg *config.Config) (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	if cfg.Editor != "" {
		return cfg.Editor, nil
	}
	return "", ErrNoEditor
}

func formatDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 at 15:04")
}
