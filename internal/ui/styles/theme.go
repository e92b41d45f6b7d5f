package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme used by listings and the browser.
type Theme struct {
	Name string

	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Selection lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Selection: lipgloss.Color("#33467c"),
}

// Current holds the active theme
var Current = TokyoNight

// Styles holds the pre-computed lipgloss styles.
type Styles struct {
	Header lipgloss.Style
	Dim    lipgloss.Style

	UID     lipgloss.Style
	Project lipgloss.Style
	Tag     lipgloss.Style
	Notes   lipgloss.Style

	SpentLive  lipgloss.Style
	SpentStale lipgloss.Style

	StatusTodo      lipgloss.Style
	StatusWip       lipgloss.Style
	StatusDone      lipgloss.Style
	StatusCancelled lipgloss.Style

	PrioLow      lipgloss.Style
	PrioMedium   lipgloss.Style
	PrioHigh     lipgloss.Style
	PrioCritical lipgloss.Style

	ListSelected lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Underline(true),

		Dim: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		UID: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Project: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Tag: lipgloss.NewStyle().
			Foreground(t.Warning),

		Notes: lipgloss.NewStyle().
			Foreground(t.Primary).
			Italic(true),

		SpentLive: lipgloss.NewStyle().
			Foreground(t.Primary),

		SpentStale: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusTodo: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		StatusWip: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		StatusDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusCancelled: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		PrioLow: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		PrioMedium: lipgloss.NewStyle().
			Foreground(t.Accent),

		PrioHigh: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		PrioCritical: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),
	}
}
