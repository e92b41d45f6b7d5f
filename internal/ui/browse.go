package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tdx-cli/tdx/internal/config"
	"github.com/tdx-cli/tdx/internal/listing"
	"github.com/tdx-cli/tdx/internal/metadata"
	"github.com/tdx-cli/tdx/internal/query"
	"github.com/tdx-cli/tdx/internal/store"
	"github.com/tdx-cli/tdx/internal/task"
	"github.com/tdx-cli/tdx/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	All    key.Binding
	Todo   key.Binding
	Start  key.Binding
	Done   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Search: key.NewBinding(key.WithKeys("/")),
		All:    key.NewBinding(key.WithKeys("a")),
		Todo:   key.NewBinding(key.WithKeys("t")),
		Start:  key.NewBinding(key.WithKeys("s")),
		Done:   key.NewBinding(key.WithKeys("d")),
		Cancel: key.NewBinding(key.WithKeys("x")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// Browser is the interactive task list: live filtering plus status-change
// keys. Every mutation appends an event and saves the whole collection.
type Browser struct {
	cfg    *config.Config
	tasks  *store.Store
	save   func() error
	styles *styles.Styles
	keys   keyMap

	rows    []listing.Row
	cursor  int
	scrollY int
	width   int
	height  int

	searchInput textinput.Model
	searching   bool
	showAll     bool

	err error
}

// NewBrowser creates the interactive browser. The save function persists
// the store after a mutation.
func NewBrowser(cfg *config.Config, tasks *store.Store, save func() error) *Browser {
	search := textinput.New()
	search.Placeholder = "@project +h #tag words..."
	search.CharLimit = 100

	return &Browser{
		cfg:         cfg,
		tasks:       tasks,
		save:        save,
		styles:      styles.NewStyles(),
		keys:        defaultKeyMap(),
		searchInput: search,
	}
}

type rowsLoadedMsg struct {
	rows []listing.Row
}

func (b *Browser) loadRows() tea.Msg {
	tokens := metadata.Tokenize(b.searchInput.Value())
	filter, err := query.Compile(tokens, query.StatusFlags{All: b.showAll}, b.cfg.CaseSensitive)
	if err != nil {
		return err
	}

	rows, err := listing.Build(b.tasks.All(), filter, time.Now())
	if err != nil {
		return err
	}
	return rowsLoadedMsg{rows: rows}
}

// Init initializes the browser
func (b *Browser) Init() tea.Cmd {
	return b.loadRows
}

// Update handles messages
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case rowsLoadedMsg:
		b.rows = msg.rows
		b.cursor = clamp(b.cursor, 0, max(0, len(b.rows)-1))
		return b, nil

	case error:
		b.err = msg
		return b, nil

	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateList(msg)
	}

	return b, nil
}

func (b *Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		b.searching = false
		b.searchInput.Blur()
		return b, b.loadRows
	}

	var cmd tea.Cmd
	b.searchInput, cmd = b.searchInput.Update(msg)
	return b, tea.Batch(cmd, b.loadRows)
}

func (b *Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit

	case key.Matches(msg, b.keys.Up):
		b.cursor = clamp(b.cursor-1, 0, max(0, len(b.rows)-1))

	case key.Matches(msg, b.keys.Down):
		b.cursor = clamp(b.cursor+1, 0, max(0, len(b.rows)-1))

	case key.Matches(msg, b.keys.Search):
		b.searching = true
		b.searchInput.Focus()
		return b, textinput.Blink

	case key.Matches(msg, b.keys.All):
		b.showAll = !b.showAll
		return b, b.loadRows

	case key.Matches(msg, b.keys.Todo):
		return b, b.changeStatus(task.StatusTodo)
	case key.Matches(msg, b.keys.Start):
		return b, b.changeStatus(task.StatusWip)
	case key.Matches(msg, b.keys.Done):
		return b, b.changeStatus(task.StatusDone)
	case key.Matches(msg, b.keys.Cancel):
		return b, b.changeStatus(task.StatusCancelled)
	}

	return b, nil
}

func (b *Browser) changeStatus(status task.Status) tea.Cmd {
	if b.cursor >= len(b.rows) {
		return nil
	}
	row := b.rows[b.cursor]

	if row.Status == status && !b.cfg.RecordSelfTransitions {
		return nil
	}

	return func() tea.Msg {
		if err := b.tasks.Append(row.UID, task.StatusChanged{Time: time.Now(), Status: status}); err != nil {
			return err
		}
		if err := b.save(); err != nil {
			return err
		}
		return b.loadRows()
	}
}

// View renders the browser
func (b *Browser) View() string {
	var v strings.Builder

	title := " tdx"
	if b.showAll {
		title += " — all tasks"
	} else {
		title += " — active tasks"
	}
	v.WriteString(b.styles.Header.Render(title))
	v.WriteString("\n")

	if b.searching || b.searchInput.Value() != "" {
		v.WriteString(" filter: ")
		v.WriteString(b.searchInput.View())
		v.WriteString("\n")
	}
	v.WriteString("\n")

	if b.err != nil {
		v.WriteString(b.styles.Dim.Render(" " + b.err.Error()))
		v.WriteString("\n")
		return v.String()
	}

	visible := max(1, b.height-6)
	if b.cursor < b.scrollY {
		b.scrollY = b.cursor
	}
	if b.cursor >= b.scrollY+visible {
		b.scrollY = b.cursor - visible + 1
	}

	for i := b.scrollY; i < len(b.rows) && i < b.scrollY+visible; i++ {
		line := b.rowLine(b.rows[i])
		if i == b.cursor && !b.searching {
			v.WriteString(b.styles.ListSelected.Render(line))
		} else {
			v.WriteString(line)
		}
		v.WriteString("\n")
	}

	if len(b.rows) == 0 {
		v.WriteString(b.styles.Dim.Render(" no matching tasks"))
		v.WriteString("\n")
	}

	v.WriteString(b.styles.Help.Render(b.helpLine()))
	return v.String()
}

// rowLine builds one unstyled list line so the selection highlight can wrap
// it without nesting escape codes.
func (b *Browser) rowLine(row listing.Row) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("%4s", row.UID))
	parts = append(parts, fmt.Sprintf("%-9s", b.cfg.StatusAlias(row.Status)))
	if row.PrioritySet {
		parts = append(parts, fmt.Sprintf("%-4s", priorityLabel(row.Priority)))
	}
	parts = append(parts, row.Name)
	if row.Project != "" {
		parts = append(parts, "@"+row.Project)
	}
	for _, tag := range row.Tags {
		parts = append(parts, "#"+tag)
	}
	if row.Notes > 0 {
		parts = append(parts, fmt.Sprintf("[%d]", row.Notes))
	}

	return " " + strings.Join(parts, " ")
}

func (b *Browser) helpLine() string {
	s := b.styles
	pairs := [][2]string{
		{"j/k", "move"},
		{"/", "filter"},
		{"a", "all"},
		{"t/s/d/x", "todo/start/done/cancel"},
		{"q", "quit"},
	}

	var parts []string
	for _, p := range pairs {
		parts = append(parts, s.HelpKey.Render(p[0])+" "+s.HelpDesc.Render(p[1]))
	}
	return strings.Join(parts, "  ")
}
