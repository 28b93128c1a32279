package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/autiplay/internal/emotion"
	"github.com/five82/autiplay/internal/state"
)

type menuItem struct {
	view  state.View
	emoji string
	title string
	blurb string
}

var homeMenu = []menuItem{
	{state.ViewRoutine, "📅", "Daily Routine", "Visual schedule for daily tasks"},
	{state.ViewEmotions, "🎭", "Emotion Game", "Learn about feelings"},
	{state.ViewCalm, "🌙", "Calm Room", "Relax and breathe"},
}

// handleHomeKey processes keyboard input for the home menu.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.homeCursor < len(homeMenu)-1 {
			m.homeCursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m.navigate(homeMenu[m.homeCursor].view)
	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(homeMenu) {
			m.homeCursor = idx
			return m.navigate(homeMenu[idx].view)
		}
	}
	return m, nil
}

// renderHome renders the greeting and the section menu.
func (m Model) renderHome() string {
	styles := m.styles()
	th := m.theme()

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("Hello! 👋 What would you like to do?"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Pick a section with the number keys or j/k and enter."))
	b.WriteString("\n\n")

	for i, item := range homeMenu {
		color := th.ViewColor(item.view)
		title := styles.Color(color).Bold(true).Render(fmt.Sprintf("%d  %s %s", i+1, item.emoji, item.title))
		body := title + "\n" + styles.MutedText.Render("   "+item.blurb)

		card := styles.Card
		if i == m.homeCursor {
			card = styles.FocusCard.BorderForeground(lipgloss.Color(color))
		}
		b.WriteString(card.Width(m.cardWidth()).Render(body))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHomeSummary(styles))
	return b.String()
}

// renderHomeSummary shows today's progress at a glance.
func (m Model) renderHomeSummary(styles Styles) string {
	done, total := m.checklist.Progress()
	parts := []string{
		styles.Text.Render(fmt.Sprintf("Routine %d/%d", done, total)),
		styles.Text.Render(fmt.Sprintf("Feelings score %d", m.quiz.Score())),
	}
	if m.quiz.Attempts() > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d%% correct", emotion.Accuracy(m.quiz.Score(), m.quiz.Attempts()))))
	}
	return strings.Join(parts, styles.FaintText.Render("  ·  "))
}
