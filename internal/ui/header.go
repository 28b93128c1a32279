package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/autiplay/internal/state"
)

var tabLabels = map[state.View]string{
	state.ViewHome:     "🏠 Home",
	state.ViewRoutine:  "📋 Routine",
	state.ViewEmotions: "😊 Feelings",
	state.ViewCalm:     "🌈 Calm",
}

// renderHeader renders the product name, the section tabs and the theme
// indicator on one bar.
func (m Model) renderHeader() string {
	styles := m.styles()
	th := m.theme()
	snap := m.state.Snapshot()

	tabs := make([]string, 0, len(state.Views()))
	for _, v := range state.Views() {
		label := tabLabels[v]
		if m.compact() {
			// Emoji only
			label = strings.Fields(label)[0]
		}
		if v == snap.View {
			tabs = append(tabs, styles.Badge(th.ViewColor(v), th.Background).Render(label))
			continue
		}
		tabs = append(tabs, styles.MutedText.Background(lipgloss.Color(th.Surface)).Padding(0, 1).Render(label))
	}

	left := styles.Logo.Background(lipgloss.Color(th.Surface)).Render("AutiPlay") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	mode := "☀️ Light"
	if snap.Dark {
		mode = "🌙 Dark"
	}
	right := styles.MutedText.Background(lipgloss.Color(th.Surface)).Render(fmt.Sprintf("%s (T)", mode))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return styles.Header.Width(m.width).Render(bar)
}
