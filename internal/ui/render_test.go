package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdx-cli/tdx/internal/config"
	"github.com/tdx-cli/tdx/internal/listing"
	"github.com/tdx-cli/tdx/internal/task"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{time.Minute, "1min"},
		{90 * time.Second, "1min"},
		{59 * time.Minute, "59min"},
		{time.Hour, "1h"},
		{23 * time.Hour, "23h"},
		{24 * time.Hour, "1d"},
		{13 * 24 * time.Hour, "13d"},
		{14 * 24 * time.Hour, "2w"},
		{27 * 24 * time.Hour, "3w"},
		{28 * 24 * time.Hour, "1mth"},
		{70 * 24 * time.Hour, "2mth"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestTableEmptyRows(t *testing.T) {
	cfg := config.Default()
	r := NewRenderer(&cfg)
	assert.Equal(t, "", r.Table(nil))
}

func TestTableHidesEmptyOptionalColumns(t *testing.T) {
	cfg := config.Default()
	r := NewRenderer(&cfg)

	rows := []listing.Row{{
		UID:    1,
		Age:    time.Hour,
		Status: task.StatusTodo,
		Name:   "bare task",
	}}

	out := r.Table(rows)
	assert.Contains(t, out, cfg.UIDColName)
	assert.Contains(t, out, "bare task")
	assert.NotContains(t, out, cfg.ProjectColName)
	assert.NotContains(t, out, cfg.TagsColName)
	assert.NotContains(t, out, cfg.NotesColName)
}

func TestTableShowsPopulatedColumns(t *testing.T) {
	cfg := config.Default()
	r := NewRenderer(&cfg)

	rows := []listing.Row{{
		UID:         2,
		Age:         2 * time.Hour,
		Spent:       30 * time.Minute,
		Priority:    task.PriorityHigh,
		PrioritySet: true,
		Project:     "alpha",
		Tags:        []string{"bug", "urgent"},
		Status:      task.StatusWip,
		Name:        "fix the crash",
		Notes:       2,
	}}

	out := r.Table(rows)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "bug, urgent")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "30min")
	assert.Contains(t, out, cfg.WipAlias)
	assert.Contains(t, out, "fix the crash")
}

func TestTableCapsDescriptionLines(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDescriptionLines = 1
	r := NewRenderer(&cfg)

	long := strings.Repeat("reconsider the billing pipeline ", 8)
	rows := []listing.Row{{
		UID:    1,
		Age:    time.Hour,
		Status: task.StatusTodo,
		Name:   strings.TrimSpace(long),
	}}

	out := r.Table(rows)
	// Header line plus exactly one description line.
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, out, "…")
}

func TestWrapWords(t *testing.T) {
	lines := wrapWords("one two three four", 16)
	assert.Equal(t, []string{"one two three", "four"}, lines)

	assert.Empty(t, wrapWords("", 40))
}

func TestShowIncludesNotes(t *testing.T) {
	cfg := config.Default()
	r := NewRenderer(&cfg)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tk, err := task.New(4, []task.Event{task.Created{Time: created, Name: "with notes"}})
	require.NoError(t, err)
	tk.Append(task.NoteAdded{Time: created.Add(time.Minute), NoteUID: 1, Text: "remember the changelog"})

	snap, err := tk.Snapshot(created.Add(time.Hour))
	require.NoError(t, err)

	out := r.Show(snap)
	assert.Contains(t, out, "with notes")
	assert.Contains(t, out, "remember the changelog")
	assert.Contains(t, out, "Note #")
}

func TestHistoryOneLinePerEvent(t *testing.T) {
	cfg := config.Default()
	r := NewRenderer(&cfg)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []task.Event{
		task.Created{Time: created, Name: "x"},
		task.StatusChanged{Time: created.Add(time.Minute), Status: task.StatusWip},
		task.TagsChanged{Time: created.Add(2 * time.Minute), Added: []string{"bug"}},
	}

	out := r.History(4, events)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "status changed to")
	assert.Contains(t, out, "+#bug")
}
