package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdx-cli/tdx/internal/task"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "tdx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	s := New()
	uid, _ := s.Create(task.Created{
		Time:        epoch,
		Name:        "ship the release",
		Project:     "alpha",
		Priority:    task.PriorityHigh,
		HasPriority: true,
		Tags:        []string{"release"},
	})
	require.NoError(t, s.Append(uid, task.StatusChanged{Time: epoch.Add(time.Minute), Status: task.StatusWip}))
	_, err := s.AddNote(uid, "remember the changelog", epoch.Add(2*time.Minute))
	require.NoError(t, err)

	s.Create(task.Created{Time: epoch.Add(time.Hour), Name: "second task"})

	require.NoError(t, db.SaveTasks(s.All()))

	loaded, err := db.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, task.UID(1), loaded[0].UID())
	assert.Equal(t, task.UID(2), loaded[1].UID())
	assert.Equal(t, s.All()[0].History(), loaded[0].History())
	assert.Equal(t, s.All()[1].History(), loaded[1].History())
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	db := openTestDB(t)

	s := New()
	s.Create(task.Created{Time: epoch, Name: "a"})
	s.Create(task.Created{Time: epoch, Name: "b"})
	require.NoError(t, db.SaveTasks(s.All()))

	// Saving a smaller collection drops what is no longer present.
	require.NoError(t, db.SaveTasks(s.All()[:1]))

	loaded, err := db.LoadTasks()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, task.UID(1), loaded[0].UID())
}

func TestLoadEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	loaded, err := db.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDefaultPathHonorsOverride(t *testing.T) {
	t.Setenv("TDX_DB_PATH", "/tmp/custom.db")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}

func TestDefaultPathUsesXDGDataHome(t *testing.T) {
	t.Setenv("TDX_DB_PATH", "")
	t.Setenv("XDG_DATA_HOME", "/data")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "tdx", "tdx.db"), path)
}
