package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/autiplay/internal/routine"
	"github.com/five82/autiplay/internal/state"
)

var confettiPieces = []string{"🎉", "🎊", "✨", "⭐", "🌟", "🎈"}

// handleRoutineKey processes keyboard input for the routine checklist.
func (m Model) handleRoutineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.checklist.Tasks()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.routineCursor > 0 {
			m.routineCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.routineCursor < len(tasks)-1 {
			m.routineCursor++
		}
	case key.Matches(msg, m.keys.Complete):
		if m.routineCursor < 0 || m.routineCursor >= len(tasks) {
			return m, nil
		}
		return m.completeTask(tasks[m.routineCursor].ID)
	case key.Matches(msg, m.keys.ResetRoutine):
		m.logSaveError("routine", m.checklist.ResetAll())
		m.celebrating = ""
		m.confettiSeq++
		m.routineCursor = 0
	}
	return m, nil
}

// completeTask marks id done and starts the celebration.
func (m Model) completeTask(id string) (tea.Model, tea.Cmd) {
	changed, err := m.checklist.Toggle(id)
	m.logSaveError("routine", err)
	if !changed {
		return m, nil
	}

	done, total := m.checklist.Progress()
	m.logger.Info("task completed", "task", id, "done", done, "total", total, "profile", m.profile)

	m.celebrating = id
	m.confettiSeq++
	m.routineCursor = m.firstOpenTask()
	return m, afterCmd(ConfettiDuration, confettiDoneMsg{seq: m.confettiSeq})
}

// firstOpenTask returns the index of the first incomplete task, or the
// current cursor when everything is done.
func (m Model) firstOpenTask() int {
	for i, t := range m.checklist.Tasks() {
		if !t.Completed {
			return i
		}
	}
	return m.routineCursor
}

// renderRoutine renders the checklist with its progress bar.
func (m Model) renderRoutine() string {
	styles := m.styles()
	th := m.theme()
	accent := th.ViewColor(state.ViewRoutine)

	var b strings.Builder
	if m.celebrating != "" {
		b.WriteString(m.renderConfetti())
		b.WriteString("\n")
	}

	b.WriteString(styles.Color(accent).Bold(true).Render("📝 Daily Routine"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Complete your tasks and celebrate your progress!"))
	b.WriteString("\n\n")

	done, total := m.checklist.Progress()
	b.WriteString(styles.Text.Render(fmt.Sprintf("Progress: %d/%d", done, total)))
	b.WriteString("  ")
	b.WriteString(m.progressBar(accent))
	b.WriteString("\n")
	if m.checklist.AllDone() {
		b.WriteString(styles.SuccessText.Render("🎉 All done! Amazing work!"))
	} else {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d tasks left", m.checklist.Remaining())))
	}
	b.WriteString("\n\n")

	for i, task := range m.checklist.Tasks() {
		b.WriteString(m.renderTask(styles, accent, i, task))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("You're doing great! 🌟"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Every completed task is a step toward success!"))
	return b.String()
}

func (m Model) renderTask(styles Styles, accent string, idx int, task routine.Task) string {
	check := styles.FaintText.Render("○")
	titleStyle := styles.Text.Bold(true)
	descStyle := styles.MutedText
	if task.Completed {
		check = styles.SuccessText.Render("✔")
		titleStyle = styles.SuccessText
		descStyle = styles.Color(m.theme().Success)
	}

	icon := task.Emoji
	if task.ID == m.celebrating {
		icon = styles.Badge(accent, m.theme().Background).Render(task.Emoji)
	}

	line := fmt.Sprintf("%s %s %s", check, icon, titleStyle.Render(task.Title))
	if !m.compact() {
		line += "  " + descStyle.Render(task.Description)
	}

	if idx == m.routineCursor {
		return styles.Selected.Render("›") + " " + line
	}
	return "  " + line
}

// progressBar renders a static bar for the current completion fraction.
func (m Model) progressBar(color string) string {
	width := ProgressBarWidth
	if m.compact() {
		width = m.contentWidth() / 2
	}
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = m.theme().Border
	return bar.ViewAs(m.checklist.Fraction())
}

// renderConfetti draws a row of celebration pieces, laid out per completion.
func (m Model) renderConfetti() string {
	rng := rand.New(rand.NewPCG(uint64(m.confettiSeq), 0x9e3779b97f4a7c15))
	width := m.contentWidth() / 2
	var b strings.Builder
	for i := 0; i < width; i++ {
		if rng.IntN(3) == 0 {
			b.WriteString(confettiPieces[rng.IntN(len(confettiPieces))])
		} else {
			b.WriteString(" ")
		}
	}
	return m.renderer.NewStyle().MaxWidth(m.contentWidth()).Render(b.String())
}
