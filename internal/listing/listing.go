// Package listing turns the task collection into the ordered, filtered row
// set a renderer displays.
package listing

import (
	"sort"
	"time"

	"github.com/tdx-cli/tdx/internal/query"
	"github.com/tdx-cli/tdx/internal/task"
)

// Row carries the display fields of one matching task. Rendering is the
// ui package's concern; the pipeline only supplies values in sorted order.
type Row struct {
	UID   task.UID
	Age   time.Duration
	Spent time.Duration
	// SpentStale marks historical spent time on a task that is not
	// currently Wip; renderers grey it out.
	SpentStale  bool
	Priority    task.Priority
	PrioritySet bool
	Project     string
	Tags        []string
	Status      task.Status
	Name        string
	Notes       int
}

// Build projects every task at a single instant, applies the filter, sorts
// the matches and emits rows. An empty result is zero rows, not an error.
func Build(tasks []*task.Task, f *query.Filter, now time.Time) ([]Row, error) {
	var matched []task.Snapshot

	for _, t := range tasks {
		snap, err := t.Snapshot(now)
		if err != nil {
			return nil, err
		}
		if f.Matches(snap) {
			matched = append(matched, snap)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return less(matched[i], matched[j])
	})

	rows := make([]Row, 0, len(matched))
	for _, s := range matched {
		spent := s.ActiveDuration
		if s.Completed && s.Status.Terminal() {
			spent = s.CompletionDuration
		}
		rows = append(rows, Row{
			UID:         s.UID,
			Age:         s.Age,
			Spent:       spent,
			SpentStale:  s.Status != task.StatusWip && spent > 0,
			Priority:    s.Priority,
			PrioritySet: s.PrioritySet,
			Project:     s.Project,
			Tags:        s.Tags,
			Status:      s.Status,
			Name:        s.Name,
			Notes:       len(s.Notes),
		})
	}

	return rows, nil
}

// less implements the composite listing order: priority descending, older
// tasks first, Wip before Todo and Cancelled before Done, then UID as the
// final tie-break so the order is total.
func less(a, b task.Snapshot) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
		return ra < rb
	}
	return a.UID < b.UID
}

func statusRank(s task.Status) int {
	switch s {
	case task.StatusWip:
		return 0
	case task.StatusTodo:
		return 1
	case task.StatusCancelled:
		return 2
	case task.StatusDone:
		return 3
	}
	return 4
}
