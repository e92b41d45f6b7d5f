package task

import (
	"fmt"
	"sort"
	"time"
)

// Snapshot is the projected, user-visible state of a task at a given
// instant. It is a value; projecting never mutates the history.
type Snapshot struct {
	UID      UID
	Name     string
	Project  string // empty means no project
	Priority Priority
	// PrioritySet reports whether any event set the priority explicitly.
	// The Priority field defaults to PriorityLow otherwise.
	PrioritySet bool
	Tags        []string // sorted
	Status      Status
	Notes       []Note
	CreatedAt   time.Time

	// Age is now minus CreatedAt.
	Age time.Duration
	// ActiveDuration is the accumulated wall-clock time spent in Wip. For a
	// task currently Wip it includes the open interval up to now.
	ActiveDuration time.Duration
	// CompletionDuration is ActiveDuration frozen at the most recent
	// terminal transition. Only meaningful when Completed is true.
	CompletionDuration time.Duration
	Completed          bool
}

// Snapshot folds the event history left-to-right and returns the state as
// of now. It fails with ErrInvalidHistory when the history is empty or does
// not start with Created.
func (t *Task) Snapshot(now time.Time) (Snapshot, error) {
	if len(t.history) == 0 {
		return Snapshot{}, fmt.Errorf("task %d: %w: empty history", t.uid, ErrInvalidHistory)
	}

	created, ok := t.history[0].(Created)
	if !ok {
		return Snapshot{}, fmt.Errorf("task %d: %w: first event is not Created", t.uid, ErrInvalidHistory)
	}

	s := Snapshot{
		UID:         t.uid,
		Name:        created.Name,
		Project:     created.Project,
		Priority:    created.Priority,
		PrioritySet: created.HasPriority,
		Status:      StatusTodo,
		CreatedAt:   created.Time,
	}

	tags := make(map[string]struct{}, len(created.Tags))
	for _, tag := range created.Tags {
		tags[tag] = struct{}{}
	}

	// wipSince is the start of the currently open Wip interval, if any.
	var wipSince *time.Time

	for _, ev := range t.history[1:] {
		switch e := ev.(type) {
		case Created:
			// A second Created never happens in a well-formed history;
			// treat it like a rename to stay total.
			s.Name = e.Name
		case NameChanged:
			s.Name = e.Name
		case ProjectChanged:
			s.Project = e.Project
		case PriorityChanged:
			s.Priority = e.Priority
			s.PrioritySet = true
		case TagsChanged:
			for _, tag := range e.Added {
				tags[tag] = struct{}{}
			}
			for _, tag := range e.Removed {
				delete(tags, tag)
			}
		case StatusChanged:
			if wipSince != nil && e.Status != StatusWip {
				s.ActiveDuration += e.Time.Sub(*wipSince)
				wipSince = nil
			}
			if wipSince == nil && e.Status == StatusWip {
				at := e.Time
				wipSince = &at
			}
			if e.Status.Terminal() {
				s.CompletionDuration = s.ActiveDuration
				s.Completed = true
			}
			s.Status = e.Status
		case NoteAdded:
			s.Notes = append(s.Notes, Note{
				UID:       e.NoteUID,
				Text:      e.Text,
				CreatedAt: e.Time,
				EditedAt:  e.Time,
			})
		case NoteEdited:
			for i := range s.Notes {
				if s.Notes[i].UID == e.NoteUID {
					s.Notes[i].Text = e.Text
					s.Notes[i].EditedAt = e.Time
					break
				}
			}
		}
	}

	if wipSince != nil {
		s.ActiveDuration += now.Sub(*wipSince)
	}

	s.Age = now.Sub(s.CreatedAt)

	s.Tags = make([]string, 0, len(tags))
	for tag := range tags {
		s.Tags = append(s.Tags, tag)
	}
	sort.Strings(s.Tags)

	return s, nil
}

// HasTag reports whether the snapshot carries the given tag.
func (s *Snapshot) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Note returns the note with the given UID, if present.
func (s *Snapshot) Note(uid NoteUID) (Note, bool) {
	for _, n := range s.Notes {
		if n.UID == uid {
			return n, true
		}
	}
	return Note{}, false
}
