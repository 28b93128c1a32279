package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// contentWidth is the usable body width for the current terminal.
func (m Model) contentWidth() int {
	w := m.width - 2
	if w > LayoutMaxContentWidth {
		w = LayoutMaxContentWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// cardWidth is the width passed to a card style; the border adds two columns.
func (m Model) cardWidth() int {
	return m.contentWidth() - 2
}

func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

// slide shifts content right while a view transition is running.
func (m Model) slide(content string) string {
	remaining := transitionFrames - m.transitionFrame
	if remaining <= 0 || m.compact() {
		return content
	}
	pad := strings.Repeat(" ", remaining*2)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// center places content in the middle of a line of the body width.
func (m Model) center(content string) string {
	return m.renderer.PlaceHorizontal(m.contentWidth(), lipgloss.Center, content)
}
