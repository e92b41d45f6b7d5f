package store

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tdx-cli/tdx/internal/task"
)

//go:embed schema.sql
var schema string

// DB wraps the SQLite connection holding the persisted event log.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// DefaultPath returns the database location, honoring TDX_DB_PATH and the
// XDG data directory with a home fallback.
func DefaultPath() (string, error) {
	if path := os.Getenv("TDX_DB_PATH"); path != "" {
		return path, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "tdx", "tdx.db"), nil
}

// LoadTasks reconstructs every task, each with its full event history in
// recorded order. UIDs and note UIDs are preserved exactly.
func (db *DB) LoadTasks() ([]*task.Task, error) {
	rows, err := db.Query(`
		SELECT task_uid, payload FROM events
		ORDER BY task_uid ASC, seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		tasks   []*task.Task
		current task.UID
		history []task.Event
	)

	flush := func() error {
		if len(history) == 0 {
			return nil
		}
		t, err := task.New(current, history)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
		history = nil
		return nil
	}

	for rows.Next() {
		var (
			uid     int64
			payload string
		)
		if err := rows.Scan(&uid, &payload); err != nil {
			return nil, err
		}

		if task.UID(uid) != current {
			if err := flush(); err != nil {
				return nil, err
			}
			current = task.UID(uid)
		}

		ev, err := task.UnmarshalEvent([]byte(payload))
		if err != nil {
			return nil, err
		}
		history = append(history, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// SaveTasks replaces the persisted collection with the given one in a
// single transaction. Persistence is whole-collection replace, never
// incremental.
func (db *DB) SaveTasks(tasks []*task.Task) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return err
	}

	for _, t := range tasks {
		if _, err := tx.Exec("INSERT INTO tasks (uid) VALUES (?)", int64(t.UID())); err != nil {
			return err
		}

		for seq, ev := range t.History() {
			payload, err := task.MarshalEvent(ev)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`
				INSERT INTO events (task_uid, seq, payload) VALUES (?, ?, ?)
			`, int64(t.UID()), seq, string(payload)); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
