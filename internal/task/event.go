package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is one entry of a task history. The set of variants is closed: the
// projector switches exhaustively over them, so adding a variant is a
// compile-time exercise.
type Event interface {
	// At returns the moment the event was recorded.
	At() time.Time
	isEvent()
}

// Created seeds a task: its description, optional project, priority and
// initial tags. It is always the first event of a history.
type Created struct {
	Time        time.Time
	Name        string
	Project     string // empty means no project
	Priority    Priority
	HasPriority bool // whether the priority was set explicitly
	Tags        []string
}

// NameChanged replaces the task description.
type NameChanged struct {
	Time time.Time
	Name string
}

// ProjectChanged replaces the task project; an empty project clears it.
type ProjectChanged struct {
	Time    time.Time
	Project string
}

// PriorityChanged replaces the task priority.
type PriorityChanged struct {
	Time     time.Time
	Priority Priority
}

// TagsChanged adds then removes tags. A tag present in both sets ends up
// absent.
type TagsChanged struct {
	Time    time.Time
	Added   []string
	Removed []string
}

// StatusChanged moves the task to a new lifecycle status.
type StatusChanged struct {
	Time   time.Time
	Status Status
}

// NoteAdded attaches a new note with a per-task UID.
type NoteAdded struct {
	Time    time.Time
	NoteUID NoteUID
	Text    string
}

// NoteEdited replaces the text of an existing note.
type NoteEdited struct {
	Time    time.Time
	NoteUID NoteUID
	Text    string
}

func (e Created) At() time.Time         { return e.Time }
func (e NameChanged) At() time.Time     { return e.Time }
func (e ProjectChanged) At() time.Time  { return e.Time }
func (e PriorityChanged) At() time.Time { return e.Time }
func (e TagsChanged) At() time.Time     { return e.Time }
func (e StatusChanged) At() time.Time   { return e.Time }
func (e NoteAdded) At() time.Time       { return e.Time }
func (e NoteEdited) At() time.Time      { return e.Time }

func (Created) isEvent()         {}
func (NameChanged) isEvent()     {}
func (ProjectChanged) isEvent()  {}
func (PriorityChanged) isEvent() {}
func (TagsChanged) isEvent()     {}
func (StatusChanged) isEvent()   {}
func (NoteAdded) isEvent()       {}
func (NoteEdited) isEvent()      {}

// Event kinds used in the serialized envelope.
const (
	kindCreated         = "created"
	kindNameChanged     = "name_changed"
	kindProjectChanged  = "project_changed"
	kindPriorityChanged = "priority_changed"
	kindTagsChanged     = "tags_changed"
	kindStatusChanged   = "status_changed"
	kindNoteAdded       = "note_added"
	kindNoteEdited      = "note_edited"
)

// envelope is the wire form of an event: a kind tag plus the union of all
// variant fields.
type envelope struct {
	Kind        string    `json:"kind"`
	At          time.Time `json:"at"`
	Name        string    `json:"name,omitempty"`
	Project     string    `json:"project,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	HasPriority bool      `json:"has_priority,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Added       []string  `json:"added,omitempty"`
	Removed     []string  `json:"removed,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	NoteUID     NoteUID   `json:"note_uid,omitempty"`
	Text        string    `json:"text,omitempty"`
}

// MarshalEvent serializes an event to its JSON envelope.
func MarshalEvent(ev Event) ([]byte, error) {
	var env envelope
	env.At = ev.At()

	switch e := ev.(type) {
	case Created:
		env.Kind = kindCreated
		env.Name = e.Name
		env.Project = e.Project
		p := e.Priority
		env.Priority = &p
		env.HasPriority = e.HasPriority
		env.Tags = e.Tags
	case NameChanged:
		env.Kind = kindNameChanged
		env.Name = e.Name
	case ProjectChanged:
		env.Kind = kindProjectChanged
		env.Project = e.Project
	case PriorityChanged:
		env.Kind = kindPriorityChanged
		p := e.Priority
		env.Priority = &p
	case TagsChanged:
		env.Kind = kindTagsChanged
		env.Added = e.Added
		env.Removed = e.Removed
	case StatusChanged:
		env.Kind = kindStatusChanged
		s := e.Status
		env.Status = &s
	case NoteAdded:
		env.Kind = kindNoteAdded
		env.NoteUID = e.NoteUID
		env.Text = e.Text
	case NoteEdited:
		env.Kind = kindNoteEdited
		env.NoteUID = e.NoteUID
		env.Text = e.Text
	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}

	return json.Marshal(env)
}

// UnmarshalEvent deserializes an event from its JSON envelope.
func UnmarshalEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Kind {
	case kindCreated:
		ev := Created{
			Time:        env.At,
			Name:        env.Name,
			Project:     env.Project,
			HasPriority: env.HasPriority,
			Tags:        env.Tags,
		}
		if env.Priority != nil {
			ev.Priority = *env.Priority
		}
		return ev, nil
	case kindNameChanged:
		return NameChanged{Time: env.At, Name: env.Name}, nil
	case kindProjectChanged:
		return ProjectChanged{Time: env.At, Project: env.Project}, nil
	case kindPriorityChanged:
		ev := PriorityChanged{Time: env.At}
		if env.Priority != nil {
			ev.Priority = *env.Priority
		}
		return ev, nil
	case kindTagsChanged:
		return TagsChanged{Time: env.At, Added: env.Added, Removed: env.Removed}, nil
	case kindStatusChanged:
		ev := StatusChanged{Time: env.At}
		if env.Status != nil {
			ev.Status = *env.Status
		}
		return ev, nil
	case kindNoteAdded:
		return NoteAdded{Time: env.At, NoteUID: env.NoteUID, Text: env.Text}, nil
	case kindNoteEdited:
		return NoteEdited{Time: env.At, NoteUID: env.NoteUID, Text: env.Text}, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", env.Kind)
}
