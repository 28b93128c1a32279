package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// helpModel returns the help component colored with the active theme.
func (m Model) helpModel(showAll bool) help.Model {
	th := m.theme()
	r := m.renderer

	h := m.help
	h.ShowAll = showAll
	h.Styles.ShortKey = r.NewStyle().Foreground(lipgloss.Color(th.Warning))
	h.Styles.ShortDesc = r.NewStyle().Foreground(lipgloss.Color(th.Muted))
	h.Styles.ShortSeparator = r.NewStyle().Foreground(lipgloss.Color(th.Faint))
	h.Styles.FullKey = r.NewStyle().Foreground(lipgloss.Color(th.Warning))
	h.Styles.FullDesc = r.NewStyle().Foreground(lipgloss.Color(th.Text))
	h.Styles.FullSeparator = r.NewStyle().Foreground(lipgloss.Color(th.Faint))
	h.Styles.Ellipsis = r.NewStyle().Foreground(lipgloss.Color(th.Faint))
	return h
}

// renderFooter renders the short help line for the active view.
func (m Model) renderFooter() string {
	keys := viewKeys{keys: m.keys, view: m.state.Snapshot().View}
	return m.styles().Footer.Render(m.helpModel(false).View(keys))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.styles()
	th := m.theme()
	keys := viewKeys{keys: m.keys, view: m.state.Snapshot().View}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.helpModel(true).View(keys))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))

	modal := m.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.Accent)).
		Padding(1, 2)

	return m.renderer.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
	)
}
