package task

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidHistory reports a history that cannot be projected: it is empty
// or its first event is not Created. This is a persistence defect, not a
// user error.
var ErrInvalidHistory = errors.New("invalid task history")

// UID identifies a task. UIDs are positive, assigned in increasing order and
// never reused.
type UID uint32

// ParseUID parses a task UID from its decimal CLI representation.
func ParseUID(s string) (UID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid task UID %q", s)
	}
	return UID(n), nil
}

func (u UID) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// NoteUID identifies a note within a single task. Note UIDs start at 1 and
// increase in creation order.
type NoteUID uint32

// ParseNoteUID parses a note UID from its decimal CLI representation.
func ParseNoteUID(s string) (NoteUID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid note UID %q", s)
	}
	return NoteUID(n), nil
}

func (u NoteUID) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// Status is the lifecycle state of a task. Transitioning from any status to
// any other is legal.
type Status int

const (
	StatusTodo Status = iota
	StatusWip
	StatusDone
	StatusCancelled
)

// Active reports whether the status counts as active (Todo or Wip).
func (s Status) Active() bool {
	return s == StatusTodo || s == StatusWip
}

// Terminal reports whether the status is terminal (Done or Cancelled).
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "todo"
	case StatusWip:
		return "wip"
	case StatusDone:
		return "done"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Priority of a task, ordered Low < Medium < High < Critical.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// Note is a Markdown note attached to a task.
type Note struct {
	UID       NoteUID
	Text      string
	CreatedAt time.Time
	EditedAt  time.Time
}

// Task is a UID plus an append-only event history. The history is the sole
// source of truth; every user-visible field is a projection over it.
type Task struct {
	uid     UID
	history []Event
}

// New constructs a task from a persisted history. The first event must be
// Created.
func New(uid UID, history []Event) (*Task, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("task %d: %w: empty history", uid, ErrInvalidHistory)
	}
	if _, ok := history[0].(Created); !ok {
		return nil, fmt.Errorf("task %d: %w: first event is not Created", uid, ErrInvalidHistory)
	}
	return &Task{uid: uid, history: history}, nil
}

// UID returns the task identifier.
func (t *Task) UID() UID {
	return t.uid
}

// History returns the event log in chronological order. Callers must not
// mutate the returned slice.
func (t *Task) History() []Event {
	return t.history
}

// Append records a new event at the end of the history. Existing events are
// never rewritten.
func (t *Task) Append(ev Event) {
	t.history = append(t.history, ev)
}
