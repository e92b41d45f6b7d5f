// Package query compiles listing input — metadata tokens plus status flags —
// into a predicate over projected task state.
package query

import (
	"strings"

	"github.com/tdx-cli/tdx/internal/metadata"
	"github.com/tdx-cli/tdx/internal/task"
)

// StatusFlags mirrors the listing command's boolean status switches. Flags
// are additive; All selects every status.
type StatusFlags struct {
	Todo      bool
	Wip       bool
	Done      bool
	Cancelled bool
	All       bool
}

// Filter is a compiled listing predicate.
type Filter struct {
	statuses map[task.Status]bool

	project    string
	hasProject bool

	priority    task.Priority
	hasPriority bool

	tags []string

	terms         []string
	caseSensitive bool
}

// Compile validates the tokens and builds a filter. When no status flag is
// given the filter selects active tasks only (Todo and Wip). More than one
// project or priority token fails with an error matching
// metadata.ErrAmbiguousMetadata before anything touches the store.
func Compile(tokens []metadata.Token, flags StatusFlags, caseSensitive bool) (*Filter, error) {
	if err := metadata.Validate(tokens); err != nil {
		return nil, err
	}

	f := &Filter{
		statuses:      map[task.Status]bool{},
		caseSensitive: caseSensitive,
	}

	if flags.All {
		flags.Todo = true
		flags.Wip = true
		flags.Done = true
		flags.Cancelled = true
	} else if !flags.Todo && !flags.Wip && !flags.Done && !flags.Cancelled {
		flags.Todo = true
		flags.Wip = true
	}
	f.statuses[task.StatusTodo] = flags.Todo
	f.statuses[task.StatusWip] = flags.Wip
	f.statuses[task.StatusDone] = flags.Done
	f.statuses[task.StatusCancelled] = flags.Cancelled

	seen := map[string]bool{}
	for _, tok := range tokens {
		switch tok.Kind {
		case metadata.KindProject:
			f.project = tok.Value
			f.hasProject = true
		case metadata.KindPriority:
			f.priority = tok.Priority
			f.hasPriority = true
		case metadata.KindTag:
			f.tags = append(f.tags, tok.Value)
		case metadata.KindWord:
			term := tok.Value
			if !caseSensitive {
				term = strings.ToLower(term)
			}
			if !seen[term] {
				seen[term] = true
				f.terms = append(f.terms, term)
			}
		}
	}

	return f, nil
}

// Matches reports whether a projected task satisfies every condition of the
// filter: status membership, project equality, priority equality, tag
// superset and name term containment.
func (f *Filter) Matches(s task.Snapshot) bool {
	if !f.statuses[s.Status] {
		return false
	}

	if f.hasProject && s.Project != f.project {
		return false
	}

	if f.hasPriority && s.Priority != f.priority {
		return false
	}

	for _, tag := range f.tags {
		if !s.HasTag(tag) {
			return false
		}
	}

	name := s.Name
	if !f.caseSensitive {
		name = strings.ToLower(name)
	}
	for _, term := range f.terms {
		if !strings.Contains(name, term) {
			return false
		}
	}

	return true
}

// Terms returns the deduplicated free-text search terms.
func (f *Filter) Terms() []string {
	return f.terms
}
