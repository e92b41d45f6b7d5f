// Package ui renders listings, task details and histories, and hosts the
// interactive browser.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tdx-cli/tdx/internal/config"
	"github.com/tdx-cli/tdx/internal/listing"
	"github.com/tdx-cli/tdx/internal/task"
	"github.com/tdx-cli/tdx/internal/ui/styles"
)

// Renderer formats rows and task details for the terminal.
type Renderer struct {
	cfg    *config.Config
	styles *styles.Styles
}

// NewRenderer creates a renderer bound to the configuration.
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg, styles: styles.NewStyles()}
}

// FormatDuration renders a duration in the shortest human unit: 5s, 3min,
// 2h, 4d, 3w, 2mth.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dmin", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 14*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 28*24*time.Hour:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	default:
		return fmt.Sprintf("%dmth", int(d.Hours()/(24*7))/4)
	}
}

// tableColumns captures which optional columns carry data and how wide each
// column must be.
type tableColumns struct {
	uid, age, spent, prio, project, tags, notes, status int

	hasSpent, hasPrio, hasProject, hasTags, hasNotes bool
}

// indent is the width taken by everything left of the description column.
func (c tableColumns) indent() int {
	w := 2 + c.uid + c.age
	if c.hasSpent {
		w += 1 + c.spent
	}
	if c.hasPrio {
		w += 1 + c.prio
	}
	if c.hasProject {
		w += 1 + c.project
	}
	if c.hasTags {
		w += 1 + c.tags
	}
	if c.hasNotes {
		w += 1 + c.notes
	}
	w += 1 + c.status
	return w
}

// Table renders the listing rows under a header line. Optional columns
// (spent, priority, project, tags, notes) are hidden when no row carries
// data, unless display_empty_cols is set.
func (r *Renderer) Table(rows []listing.Row) string {
	if len(rows) == 0 {
		return ""
	}

	cols := r.measure(rows)

	var b strings.Builder
	r.writeHeader(&b, cols)
	for _, row := range rows {
		r.writeRow(&b, cols, row)
	}
	return b.String()
}

func (r *Renderer) measure(rows []listing.Row) tableColumns {
	cfg := r.cfg
	cols := tableColumns{
		uid:    lipgloss.Width(cfg.UIDColName),
		age:    lipgloss.Width(cfg.AgeColName),
		spent:  lipgloss.Width(cfg.SpentColName),
		prio:   lipgloss.Width(cfg.PrioColName),
		status: lipgloss.Width(cfg.StatusColName),

		project: lipgloss.Width(cfg.ProjectColName),
		tags:    lipgloss.Width(cfg.TagsColName),
		notes:   lipgloss.Width(cfg.NotesColName),
	}

	for _, row := range rows {
		cols.uid = max(cols.uid, len(row.UID.String()))
		cols.age = max(cols.age, len(FormatDuration(row.Age)))
		cols.status = max(cols.status, lipgloss.Width(cfg.StatusAlias(row.Status)))
		cols.project = max(cols.project, lipgloss.Width(row.Project))
		cols.tags = max(cols.tags, lipgloss.Width(strings.Join(row.Tags, ", ")))

		if row.Spent > 0 {
			cols.hasSpent = true
			cols.spent = max(cols.spent, len(FormatDuration(row.Spent)))
		}
		if row.PrioritySet {
			cols.hasPrio = true
		}
		if row.Project != "" {
			cols.hasProject = true
		}
		if len(row.Tags) > 0 {
			cols.hasTags = true
		}
		if row.Notes > 0 {
			cols.hasNotes = true
			cols.notes = max(cols.notes, len(fmt.Sprintf("%d", row.Notes)))
		}
	}

	if cfg.DisplayEmptyCols {
		cols.hasSpent = true
		cols.hasPrio = true
		cols.hasProject = true
		cols.hasTags = true
		cols.hasNotes = true
	}
	return cols
}

func (r *Renderer) writeHeader(b *strings.Builder, cols tableColumns) {
	cfg, hdr := r.cfg, r.styles.Header

	cell(b, hdr.Render(cfg.UIDColName), lipgloss.Width(cfg.UIDColName), cols.uid)
	cell(b, hdr.Render(cfg.AgeColName), lipgloss.Width(cfg.AgeColName), cols.age)
	if cols.hasSpent {
		cell(b, hdr.Render(cfg.SpentColName), lipgloss.Width(cfg.SpentColName), cols.spent)
	}
	if cols.hasPrio {
		cell(b, hdr.Render(cfg.PrioColName), lipgloss.Width(cfg.PrioColName), cols.prio)
	}
	if cols.hasProject {
		cell(b, hdr.Render(cfg.ProjectColName), lipgloss.Width(cfg.ProjectColName), cols.project)
	}
	if cols.hasTags {
		cell(b, hdr.Render(cfg.TagsColName), lipgloss.Width(cfg.TagsColName), cols.tags)
	}
	if cols.hasNotes {
		cell(b, hdr.Render(cfg.NotesColName), lipgloss.Width(cfg.NotesColName), cols.notes)
	}
	cell(b, hdr.Render(cfg.StatusColName), lipgloss.Width(cfg.StatusColName), cols.status)
	b.WriteString(" ")
	b.WriteString(hdr.Render(cfg.DescriptionColName))
	b.WriteString("\n")
}

func (r *Renderer) writeRow(b *strings.Builder, cols tableColumns, row listing.Row) {
	uid := row.UID.String()
	cell(b, r.styles.UID.Render(uid), len(uid), cols.uid)

	age := FormatDuration(row.Age)
	cell(b, age, len(age), cols.age)

	if cols.hasSpent {
		spent := ""
		if row.Spent > 0 {
			spent = FormatDuration(row.Spent)
		}
		style := r.styles.SpentLive
		if row.SpentStale {
			style = r.styles.SpentStale
		}
		cell(b, style.Render(spent), len(spent), cols.spent)
	}

	if cols.hasPrio {
		prio := ""
		var styled string
		if row.PrioritySet {
			prio = priorityLabel(row.Priority)
			styled = r.priorityStyle(row.Priority).Render(prio)
		}
		cell(b, styled, len(prio), cols.prio)
	}

	if cols.hasProject {
		cell(b, r.styles.Project.Render(row.Project), lipgloss.Width(row.Project), cols.project)
	}

	if cols.hasTags {
		tags := strings.Join(row.Tags, ", ")
		cell(b, r.styles.Tag.Render(tags), lipgloss.Width(tags), cols.tags)
	}

	if cols.hasNotes {
		n := ""
		if row.Notes > 0 {
			n = fmt.Sprintf("%d", row.Notes)
		}
		cell(b, r.styles.Notes.Render(n), len(n), cols.notes)
	}

	alias := r.cfg.StatusAlias(row.Status)
	cell(b, r.statusStyle(row.Status).Render(alias), lipgloss.Width(alias), cols.status)

	r.writeDescription(b, cols.indent(), row)
}

// writeDescription wraps the task name against a conventional 80-column
// terminal, capped at max_description_lines with a trailing ellipsis.
// Continuation lines are indented under the description column.
func (r *Renderer) writeDescription(b *strings.Builder, indent int, row listing.Row) {
	lines := wrapWords(row.Name, 79-indent)
	if maxLines := r.cfg.MaxDescriptionLines; maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "…"
	}
	if len(lines) == 0 {
		b.WriteString("\n")
		return
	}

	style := r.descriptionStyle(row.Status)
	for i, line := range lines {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", indent))
		}
		b.WriteString(" ")
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
}

// wrapWords greedily packs words into lines of at most width cells. A word
// longer than the width gets a line of its own rather than being cut.
func wrapWords(s string, width int) []string {
	if width < 16 {
		width = 16
	}

	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case lipgloss.Width(line)+1+lipgloss.Width(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// cell writes a styled value left-padded to the column width. Padding is
// computed from the plain width so ANSI codes do not skew alignment.
func cell(b *strings.Builder, styled string, plainWidth, colWidth int) {
	b.WriteString(" ")
	b.WriteString(styled)
	if plainWidth < colWidth {
		b.WriteString(strings.Repeat(" ", colWidth-plainWidth))
	}
}

func priorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityLow:
		return "LOW"
	case task.PriorityMedium:
		return "MED"
	case task.PriorityHigh:
		return "HIGH"
	case task.PriorityCritical:
		return "CRIT"
	}
	return "?"
}

func (r *Renderer) priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityMedium:
		return r.styles.PrioMedium
	case task.PriorityHigh:
		return r.styles.PrioHigh
	case task.PriorityCritical:
		return r.styles.PrioCritical
	}
	return r.styles.PrioLow
}

func (r *Renderer) statusStyle(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusWip:
		return r.styles.StatusWip
	case task.StatusDone:
		return r.styles.StatusDone
	case task.StatusCancelled:
		return r.styles.StatusCancelled
	}
	return r.styles.StatusTodo
}

func (r *Renderer) descriptionStyle(s task.Status) lipgloss.Style {
	if s.Terminal() {
		return r.styles.Dim
	}
	return lipgloss.NewStyle()
}

// Show renders the full detail view of one task, notes included.
func (r *Renderer) Show(s task.Snapshot) string {
	var b strings.Builder
	hdr := r.styles.Header

	fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.DescriptionColName), s.Name)
	fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.UIDColName), s.UID)
	fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.AgeColName), FormatDuration(s.Age))

	spent := s.ActiveDuration
	if s.Completed && s.Status.Terminal() {
		spent = s.CompletionDuration
	}
	if spent == 0 {
		fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.SpentColName), r.styles.Dim.Render("not started yet"))
	} else {
		fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.SpentColName), FormatDuration(spent))
	}

	if s.PrioritySet {
		fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.PrioColName),
			r.priorityStyle(s.Priority).Render(priorityLabel(s.Priority)))
	}
	if s.Project != "" {
		fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.ProjectColName), r.styles.Project.Render(s.Project))
	}
	if len(s.Tags) > 0 {
		tagged := make([]string, len(s.Tags))
		for i, tag := range s.Tags {
			tagged[i] = r.styles.Tag.Render("#" + tag)
		}
		fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.TagsColName), strings.Join(tagged, ", "))
	}
	fmt.Fprintf(&b, " %s: %s\n", hdr.Render(r.cfg.StatusColName),
		r.statusStyle(s.Status).Render(r.cfg.StatusAlias(s.Status)))

	for _, note := range s.Notes {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s%s%s", r.styles.Dim.Render(" Note #"), r.styles.Notes.Render(note.UID.String()),
			r.styles.Dim.Render(", on "+formatDate(note.CreatedAt)))
		if note.EditedAt.After(note.CreatedAt) {
			b.WriteString(r.styles.Dim.Render(", edited on " + formatDate(note.EditedAt)))
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(note.Text))
		b.WriteString("\n")
	}

	return b.String()
}

// History renders the raw event log of one task, one line per event.
func (r *Renderer) History(uid task.UID, events []task.Event) string {
	var b strings.Builder

	for _, ev := range events {
		fmt.Fprintf(&b, "%s: ", r.styles.Notes.Render(formatDate(ev.At())))

		switch e := ev.(type) {
		case task.Created:
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("task created with UID"), uid)
		case task.NameChanged:
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("renamed to"), e.Name)
		case task.ProjectChanged:
			if e.Project == "" {
				b.WriteString(r.styles.Dim.Render("project cleared"))
			} else {
				fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("project set to"), r.styles.Project.Render(e.Project))
			}
		case task.PriorityChanged:
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("priority set to"),
				r.priorityStyle(e.Priority).Render(priorityLabel(e.Priority)))
		case task.TagsChanged:
			var parts []string
			for _, tag := range e.Added {
				parts = append(parts, r.styles.Tag.Render("+#"+tag))
			}
			for _, tag := range e.Removed {
				parts = append(parts, r.styles.Dim.Render("-#"+tag))
			}
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("tags changed"), strings.Join(parts, " "))
		case task.StatusChanged:
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("status changed to"),
				r.statusStyle(e.Status).Render(r.cfg.StatusAlias(e.Status)))
		case task.NoteAdded:
			fmt.Fprintf(&b, "%s %s", r.styles.Dim.Render("note added"), firstLine(e.Text))
		case task.NoteEdited:
			fmt.Fprintf(&b, "%s %s %s", r.styles.Dim.Render("note"), e.NoteUID.String(),
				r.styles.Dim.Render("updated"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}

func formatDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006 at 15:04")
}
