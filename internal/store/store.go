// Package store holds the in-memory task collection and its SQLite
// persistence boundary.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/tdx-cli/tdx/internal/task"
)

// ErrNotFound is matched by lookup errors for unknown task or note UIDs.
var ErrNotFound = errors.New("not found")

// NotFoundError reports the concrete UID that could not be resolved. It
// satisfies errors.Is(err, ErrNotFound).
type NotFoundError struct {
	TaskUID task.UID
	NoteUID task.NoteUID // zero when the task itself is missing
}

func (e *NotFoundError) Error() string {
	if e.NoteUID != 0 {
		return fmt.Sprintf("task %s has no note %s", e.TaskUID, e.NoteUID)
	}
	return fmt.Sprintf("no task with UID %s", e.TaskUID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Store is the in-memory task collection, keyed by UID. It performs no
// domain validation beyond existence checks and never persists on its own;
// the CLI layer saves explicitly through a DB.
type Store struct {
	tasks map[task.UID]*task.Task
	order []task.UID
}

// New returns an empty store.
func New() *Store {
	return &Store{tasks: map[task.UID]*task.Task{}}
}

// Load builds a store from persisted tasks, preserving their UIDs. Tasks
// are expected in UID order.
func Load(tasks []*task.Task) *Store {
	s := New()
	for _, t := range tasks {
		s.tasks[t.UID()] = t
		s.order = append(s.order, t.UID())
	}
	return s
}

// Get returns the task with the given UID.
func (s *Store) Get(uid task.UID) (*task.Task, error) {
	t, ok := s.tasks[uid]
	if !ok {
		return nil, &NotFoundError{TaskUID: uid}
	}
	return t, nil
}

// Create allocates the next UID (max existing + 1, or 1 when empty) and
// registers a task seeded with the given Created event.
func (s *Store) Create(created task.Created) (task.UID, *task.Task) {
	uid := s.nextUID()
	t, _ := task.New(uid, []task.Event{created})
	s.tasks[uid] = t
	s.order = append(s.order, uid)
	return uid, t
}

func (s *Store) nextUID() task.UID {
	var max task.UID
	for uid := range s.tasks {
		if uid > max {
			max = uid
		}
	}
	return max + 1
}

// Append records an event on an existing task. The store checks existence
// only; domain validation is the caller's responsibility.
func (s *Store) Append(uid task.UID, ev task.Event) error {
	t, ok := s.tasks[uid]
	if !ok {
		return &NotFoundError{TaskUID: uid}
	}
	t.Append(ev)
	return nil
}

// AddNote appends a NoteAdded event, allocating the next per-task note UID
// (1-based, creation order, never reused).
func (s *Store) AddNote(uid task.UID, text string, at time.Time) (task.NoteUID, error) {
	t, ok := s.tasks[uid]
	if !ok {
		return 0, &NotFoundError{TaskUID: uid}
	}

	var max task.NoteUID
	for _, ev := range t.History() {
		if added, ok := ev.(task.NoteAdded); ok && added.NoteUID > max {
			max = added.NoteUID
		}
	}

	noteUID := max + 1
	t.Append(task.NoteAdded{Time: at, NoteUID: noteUID, Text: text})
	return noteUID, nil
}

// EditNote appends a NoteEdited event for an existing note.
func (s *Store) EditNote(uid task.UID, noteUID task.NoteUID, text string, at time.Time) error {
	t, ok := s.tasks[uid]
	if !ok {
		return &NotFoundError{TaskUID: uid}
	}

	exists := false
	for _, ev := range t.History() {
		if added, ok := ev.(task.NoteAdded); ok && added.NoteUID == noteUID {
			exists = true
			break
		}
	}
	if !exists {
		return &NotFoundError{TaskUID: uid, NoteUID: noteUID}
	}

	t.Append(task.NoteEdited{Time: at, NoteUID: noteUID, Text: text})
	return nil
}

// All returns every task in insertion (UID) order. The result is not sorted
// by any display criterion; that is the listing pipeline's job.
func (s *Store) All() []*task.Task {
	out := make([]*task.Task, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, s.tasks[uid])
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}
