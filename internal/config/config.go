// Package config loads the tdx configuration file and its defaults.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tdx-cli/tdx/internal/task"
)

// Config holds user-tunable behavior. Every field has a sensible default;
// the file may set any subset.
type Config struct {
	// Display aliases for the four statuses. Cosmetic only.
	TodoAlias      string `yaml:"todo_alias"`
	WipAlias       string `yaml:"wip_alias"`
	DoneAlias      string `yaml:"done_alias"`
	CancelledAlias string `yaml:"cancelled_alias"`

	// Column names for listings.
	UIDColName         string `yaml:"uid_col_name"`
	AgeColName         string `yaml:"age_col_name"`
	SpentColName       string `yaml:"spent_col_name"`
	PrioColName        string `yaml:"prio_col_name"`
	ProjectColName     string `yaml:"project_col_name"`
	TagsColName        string `yaml:"tags_col_name"`
	NotesColName       string `yaml:"notes_col_name"`
	StatusColName      string `yaml:"status_col_name"`
	DescriptionColName string `yaml:"description_col_name"`

	// CaseSensitive makes free-text search case-sensitive by default. The
	// --case-sensitive listing flag forces sensitivity on regardless.
	CaseSensitive bool `yaml:"case_sensitive"`

	// RecordSelfTransitions appends a StatusChanged event even when the new
	// status equals the current one. Off, such commands are no-ops.
	RecordSelfTransitions bool `yaml:"record_self_transitions"`

	// NoteHistory prefills the note editor with the task's previous notes.
	NoteHistory bool `yaml:"note_history"`

	// Editor is the fallback command when $EDITOR is unset.
	Editor string `yaml:"editor"`

	DisplayEmptyCols    bool `yaml:"display_empty_cols"`
	MaxDescriptionLines int  `yaml:"max_description_lines"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TodoAlias:           "TODO",
		WipAlias:            "WIP",
		DoneAlias:           "DONE",
		CancelledAlias:      "CANCELLED",
		UIDColName:          "UID",
		AgeColName:          "Age",
		SpentColName:        "Spent",
		PrioColName:         "Prio",
		ProjectColName:      "Project",
		TagsColName:         "Tags",
		NotesColName:        "Notes",
		StatusColName:       "Status",
		DescriptionColName:  "Description",
		NoteHistory:         true,
		MaxDescriptionLines: 2,
	}
}

// Load reads the configuration file if present, otherwise returns the
// defaults. TDX_CONFIG overrides the file location, TDX_EDITOR the editor.
func Load() (Config, error) {
	cfg := Default()

	path := getEnv("TDX_CONFIG", "")
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Editor = getEnv("TDX_EDITOR", c.Editor)
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tdx"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tdx"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// StatusAlias returns the display alias for a status. Aliases never change
// the underlying four-state enum.
func (c *Config) StatusAlias(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return c.TodoAlias
	case task.StatusWip:
		return c.WipAlias
	case task.StatusDone:
		return c.DoneAlias
	case task.StatusCancelled:
		return c.CancelledAlias
	}
	return s.String()
}
