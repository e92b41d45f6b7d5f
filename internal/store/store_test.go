package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdx-cli/tdx/internal/task"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func created(name string) task.Created {
	return task.Created{Time: epoch, Name: name}
}

func TestCreateAllocatesSequentialUIDs(t *testing.T) {
	s := New()

	first, _ := s.Create(created("a"))
	second, _ := s.Create(created("b"))
	third, _ := s.Create(created("c"))

	assert.Equal(t, task.UID(1), first)
	assert.Equal(t, task.UID(2), second)
	assert.Equal(t, task.UID(3), third)
	assert.Equal(t, 3, s.Len())
}

func TestCreateContinuesFromLoadedMax(t *testing.T) {
	t7, err := task.New(7, []task.Event{created("seven")})
	require.NoError(t, err)
	t3, err := task.New(3, []task.Event{created("three")})
	require.NoError(t, err)

	s := Load([]*task.Task{t3, t7})

	uid, _ := s.Create(created("next"))
	assert.Equal(t, task.UID(8), uid)
}

func TestGetUnknownUID(t *testing.T) {
	s := New()

	_, err := s.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, task.UID(42), nf.TaskUID)
	assert.Zero(t, nf.NoteUID)
}

func TestAppendRecordsEvent(t *testing.T) {
	s := New()
	uid, _ := s.Create(created("a"))

	err := s.Append(uid, task.StatusChanged{Time: epoch.Add(time.Minute), Status: task.StatusWip})
	require.NoError(t, err)

	tk, err := s.Get(uid)
	require.NoError(t, err)
	assert.Len(t, tk.History(), 2)

	err = s.Append(99, task.StatusChanged{Time: epoch, Status: task.StatusWip})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddNoteAllocatesPerTaskUIDs(t *testing.T) {
	s := New()
	uid, _ := s.Create(created("a"))
	other, _ := s.Create(created("b"))

	n1, err := s.AddNote(uid, "first", epoch)
	require.NoError(t, err)
	n2, err := s.AddNote(uid, "second", epoch.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, task.NoteUID(1), n1)
	assert.Equal(t, task.NoteUID(2), n2)

	// Numbering is per task, not global.
	n, err := s.AddNote(other, "elsewhere", epoch)
	require.NoError(t, err)
	assert.Equal(t, task.NoteUID(1), n)
}

func TestEditNoteValidatesExistence(t *testing.T) {
	s := New()
	uid, _ := s.Create(created("a"))
	noteUID, err := s.AddNote(uid, "draft", epoch)
	require.NoError(t, err)

	require.NoError(t, s.EditNote(uid, noteUID, "final", epoch.Add(time.Minute)))

	err = s.EditNote(uid, 9, "nope", epoch)
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, task.NoteUID(9), nf.NoteUID)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	s := New()
	s.Create(created("a"))
	s.Create(created("b"))
	s.Create(created("c"))

	var uids []task.UID
	for _, tk := range s.All() {
		uids = append(uids, tk.UID())
	}
	assert.Equal(t, []task.UID{1, 2, 3}, uids)
}
