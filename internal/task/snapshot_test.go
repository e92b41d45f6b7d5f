package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return epoch.Add(d)
}

func newTask(t *testing.T, history ...Event) *Task {
	t.Helper()
	tk, err := New(1, history)
	require.NoError(t, err)
	return tk
}

func TestNewRejectsInvalidHistory(t *testing.T) {
	_, err := New(1, nil)
	assert.ErrorIs(t, err, ErrInvalidHistory)

	_, err = New(1, []Event{NameChanged{Time: epoch, Name: "nope"}})
	assert.ErrorIs(t, err, ErrInvalidHistory)
}

func TestSnapshotSeedsFromCreated(t *testing.T) {
	tk := newTask(t, Created{
		Time:        epoch,
		Name:        "write the report",
		Project:     "alpha",
		Priority:    PriorityHigh,
		HasPriority: true,
		Tags:        []string{"doc", "urgent"},
	})

	snap, err := tk.Snapshot(at(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, UID(1), snap.UID)
	assert.Equal(t, "write the report", snap.Name)
	assert.Equal(t, "alpha", snap.Project)
	assert.Equal(t, PriorityHigh, snap.Priority)
	assert.True(t, snap.PrioritySet)
	assert.Equal(t, []string{"doc", "urgent"}, snap.Tags)
	assert.Equal(t, StatusTodo, snap.Status)
	assert.Equal(t, time.Hour, snap.Age)
	assert.Zero(t, snap.ActiveDuration)
	assert.False(t, snap.Completed)
}

func TestSnapshotDefaultsPriorityToLow(t *testing.T) {
	tk := newTask(t, Created{Time: epoch, Name: "plain"})

	snap, err := tk.Snapshot(at(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, PriorityLow, snap.Priority)
	assert.False(t, snap.PrioritySet)
}

func TestSnapshotIsDeterministic(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x", Tags: []string{"a"}},
		StatusChanged{Time: at(time.Minute), Status: StatusWip},
		TagsChanged{Time: at(2 * time.Minute), Added: []string{"b"}},
	)

	now := at(10 * time.Minute)
	first, err := tk.Snapshot(now)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := tk.Snapshot(now)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestActiveDurationAccumulatesOnlyWhileWip(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		StatusChanged{Time: at(10 * time.Minute), Status: StatusWip},
		StatusChanged{Time: at(25 * time.Minute), Status: StatusTodo},
		StatusChanged{Time: at(40 * time.Minute), Status: StatusWip},
	)

	// Two closed/open intervals: 15min closed, plus 20min live.
	snap, err := tk.Snapshot(at(60 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 35*time.Minute, snap.ActiveDuration)
}

func TestActiveDurationIsMonotonicWhileWip(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		StatusChanged{Time: at(time.Minute), Status: StatusWip},
	)

	t1, err := tk.Snapshot(at(10 * time.Minute))
	require.NoError(t, err)
	t2, err := tk.Snapshot(at(20 * time.Minute))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, t2.ActiveDuration, t1.ActiveDuration)
}

func TestCompletionDurationFreezes(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		StatusChanged{Time: at(0), Status: StatusWip},
		StatusChanged{Time: at(30 * time.Minute), Status: StatusDone},
	)

	snap, err := tk.Snapshot(at(5 * time.Hour))
	require.NoError(t, err)
	assert.True(t, snap.Completed)
	assert.Equal(t, 30*time.Minute, snap.CompletionDuration)
	assert.Equal(t, 30*time.Minute, snap.ActiveDuration)

	// Much later the frozen value is unchanged.
	later, err := tk.Snapshot(at(100 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, later.CompletionDuration)
}

func TestStatusRoundTripKeepsCompletionDuration(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		StatusChanged{Time: at(0), Status: StatusWip},
		StatusChanged{Time: at(30 * time.Minute), Status: StatusDone},
		StatusChanged{Time: at(2 * time.Hour), Status: StatusTodo},
	)

	snap, err := tk.Snapshot(at(3 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, snap.Status)
	assert.True(t, snap.Completed)
	assert.Equal(t, 30*time.Minute, snap.CompletionDuration)
}

func TestTagsChangedAppliesAddedThenRemoved(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x", Tags: []string{"keep"}},
		TagsChanged{Time: at(time.Minute), Added: []string{"both"}, Removed: []string{"both"}},
	)

	snap, err := tk.Snapshot(at(2 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, snap.Tags)
}

func TestTagAddIsIdempotent(t *testing.T) {
	once := newTask(t,
		Created{Time: epoch, Name: "x"},
		TagsChanged{Time: at(time.Minute), Added: []string{"x"}},
	)
	twice := newTask(t,
		Created{Time: epoch, Name: "x"},
		TagsChanged{Time: at(time.Minute), Added: []string{"x"}},
		TagsChanged{Time: at(2 * time.Minute), Added: []string{"x"}},
	)

	now := at(time.Hour)
	a, err := once.Snapshot(now)
	require.NoError(t, err)
	b, err := twice.Snapshot(now)
	require.NoError(t, err)

	assert.Equal(t, a.Tags, b.Tags)
}

func TestSelfTransitionDoesNotReopenInterval(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		StatusChanged{Time: at(0), Status: StatusWip},
		StatusChanged{Time: at(10 * time.Minute), Status: StatusWip},
	)

	snap, err := tk.Snapshot(at(30 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, snap.ActiveDuration)
}

func TestFieldChangesOverwrite(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "old", Project: "alpha"},
		NameChanged{Time: at(time.Minute), Name: "new"},
		ProjectChanged{Time: at(2 * time.Minute), Project: "beta"},
		PriorityChanged{Time: at(3 * time.Minute), Priority: PriorityCritical},
	)

	snap, err := tk.Snapshot(at(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "new", snap.Name)
	assert.Equal(t, "beta", snap.Project)
	assert.Equal(t, PriorityCritical, snap.Priority)
	assert.True(t, snap.PrioritySet)
}

func TestNoteProjection(t *testing.T) {
	tk := newTask(t,
		Created{Time: epoch, Name: "x"},
		NoteAdded{Time: at(time.Minute), NoteUID: 1, Text: "first"},
		NoteAdded{Time: at(2 * time.Minute), NoteUID: 2, Text: "second"},
		NoteAdded{Time: at(3 * time.Minute), NoteUID: 3, Text: "third"},
		NoteEdited{Time: at(4 * time.Minute), NoteUID: 2, Text: "second, reworked"},
	)

	snap, err := tk.Snapshot(at(time.Hour))
	require.NoError(t, err)
	require.Len(t, snap.Notes, 3)

	assert.Equal(t, NoteUID(1), snap.Notes[0].UID)
	assert.Equal(t, "first", snap.Notes[0].Text)
	assert.Equal(t, NoteUID(2), snap.Notes[1].UID)
	assert.Equal(t, "second, reworked", snap.Notes[1].Text)
	assert.True(t, snap.Notes[1].EditedAt.After(snap.Notes[1].CreatedAt))
	assert.Equal(t, NoteUID(3), snap.Notes[2].UID)
	assert.Equal(t, "third", snap.Notes[2].Text)
}

func TestEventCodecRoundTrip(t *testing.T) {
	events := []Event{
		Created{Time: epoch, Name: "x", Project: "p", Priority: PriorityHigh, HasPriority: true, Tags: []string{"a"}},
		NameChanged{Time: at(time.Minute), Name: "y"},
		ProjectChanged{Time: at(2 * time.Minute), Project: "q"},
		PriorityChanged{Time: at(3 * time.Minute), Priority: PriorityMedium},
		TagsChanged{Time: at(4 * time.Minute), Added: []string{"b"}, Removed: []string{"a"}},
		StatusChanged{Time: at(5 * time.Minute), Status: StatusCancelled},
		NoteAdded{Time: at(6 * time.Minute), NoteUID: 1, Text: "note"},
		NoteEdited{Time: at(7 * time.Minute), NoteUID: 1, Text: "edited"},
	}

	for _, ev := range events {
		data, err := MarshalEvent(ev)
		require.NoError(t, err)

		back, err := UnmarshalEvent(data)
		require.NoError(t, err)
		assert.Equal(t, ev, back)
	}
}
