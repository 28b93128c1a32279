package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/autiplay/internal/state"
)

// Theme defines colors for one of the two palettes.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	SurfaceAlt string

	// Selection
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Per-section accent, keyed by view id.
	ViewColors map[string]string
}

// ThemeFor returns the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}

// ViewColor returns the accent of v, falling back to Accent.
func (t Theme) ViewColor(v state.View) string {
	if c := t.ViewColors[v.ID()]; c != "" {
		return c
	}
	return t.Accent
}

// Styles returns lipgloss styles for this theme built on r. A nil renderer
// uses the default one.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Text: r.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: r.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: r.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: r.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: r.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: r.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: r.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: r.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: r.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: r.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 2),

		FocusCard: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 2),

		renderer: r,
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Logo      lipgloss.Style
	Selected  lipgloss.Style
	Card      lipgloss.Style
	FocusCard lipgloss.Style

	renderer *lipgloss.Renderer
}

// Color returns a foreground style for an arbitrary color.
func (s Styles) Color(c string) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(c))
}

// Badge returns a filled label style in color c.
func (s Styles) Badge(c, text string) lipgloss.Style {
	return s.renderer.NewStyle().
		Foreground(lipgloss.Color(text)).
		Background(lipgloss.Color(c)).
		Bold(true).
		Padding(0, 1)
}

func lightTheme() Theme {
	// Soft pastel palette with low-contrast backgrounds and calm accents.
	return Theme{
		Name: "Light",

		Background: "#fdfbf7",
		Surface:    "#f3eee6",
		SurfaceAlt: "#e9e3d8",

		SelectionBg:   "#cfe3f7",
		SelectionText: "#243447",

		Border:      "#d6cfc2",
		BorderFocus: "#6a9fd4",

		Text:    "#2f3a45",
		Muted:   "#6b7580",
		Faint:   "#98a0a8",
		Accent:  "#5b8fc7",
		Success: "#4f9a6a",
		Warning: "#c48a2c",
		Danger:  "#c0616b",
		Info:    "#4a9aa5",

		ViewColors: map[string]string{
			"home":     "#5b8fc7",
			"routine":  "#4f9a6a",
			"emotions": "#c48a2c",
			"calm":     "#8a76c2",
		},
	}
}

func darkTheme() Theme {
	// Muted dark palette; avoids pure black and saturated colors.
	return Theme{
		Name: "Dark",

		Background: "#1c2128",
		Surface:    "#242b33",
		SurfaceAlt: "#2d3540",

		SelectionBg:   "#34506b",
		SelectionText: "#e6edf3",

		Border:      "#3b4654",
		BorderFocus: "#7fb0e0",

		Text:    "#dfe5eb",
		Muted:   "#9aa5b1",
		Faint:   "#6e7a87",
		Accent:  "#7fb0e0",
		Success: "#7cc49a",
		Warning: "#e0b867",
		Danger:  "#e08a92",
		Info:    "#73c2cc",

		ViewColors: map[string]string{
			"home":     "#7fb0e0",
			"routine":  "#7cc49a",
			"emotions": "#e0b867",
			"calm":     "#b3a1e6",
		},
	}
}
