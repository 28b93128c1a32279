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

// handleEmotionKey processes keyboard input for the feelings game.
func (m Model) handleEmotionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Answer):
		return m.answer(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Up):
		if m.quizCursor > 0 {
			m.quizCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.quizCursor < emotion.OptionCount-1 {
			m.quizCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.answer(m.quizCursor)
	case key.Matches(msg, m.keys.NewQuestion):
		if m.quiz.Phase() == emotion.PhaseCorrect {
			return m, nil
		}
		m.quiz.NewQuestion()
		m.quizCursor = 0
	case key.Matches(msg, m.keys.ResetStats):
		m.logSaveError("emotion counters", m.quiz.ResetStats())
		m.quizCursor = 0
		m.quizCelebrating = false
	}
	return m, nil
}

// answer submits option idx and schedules the feedback timers.
func (m Model) answer(idx int) (tea.Model, tea.Cmd) {
	out, err := m.quiz.AnswerIndex(idx)
	m.logSaveError("emotion counters", err)
	if out.Ignored {
		return m, nil
	}
	m.quizCursor = idx

	m.logger.Debug("quiz answered",
		"correct", out.Correct,
		"score", m.quiz.Score(),
		"attempts", m.quiz.Attempts(),
		"profile", m.profile,
	)

	if out.Correct {
		m.quizCelebrating = true
		return m, tea.Batch(
			afterCmd(emotion.CelebrationDuration, celebrationDoneMsg{round: out.Round}),
			afterCmd(emotion.AdvanceDelay, advanceMsg{round: out.Round}),
		)
	}
	return m, afterCmd(emotion.IncorrectDuration, feedbackDoneMsg{seq: out.Seq})
}

// renderEmotions renders the target face, the stats and the answer options.
func (m Model) renderEmotions() string {
	styles := m.styles()
	th := m.theme()
	accent := th.ViewColor(state.ViewEmotions)
	target := m.quiz.Target()

	var b strings.Builder
	b.WriteString(styles.Color(accent).Bold(true).Render("💗 Emotion Recognition"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Match the face to the correct emotion"))
	b.WriteString("\n\n")

	b.WriteString(m.renderQuizStats(styles, th))
	b.WriteString("\n\n")

	face := target.Emoji + "\n\n" + styles.Text.Bold(true).Render(fmt.Sprintf("Find the %s face!", target.Name))
	if exp := m.quiz.Explanation(); exp != "" {
		face += "\n" + styles.MutedText.Render(exp)
	}
	b.WriteString(styles.Card.BorderForeground(lipgloss.Color(accent)).Align(lipgloss.Center).Width(m.cardWidth()).Render(face))
	b.WriteString("\n\n")

	switch m.quiz.Phase() {
	case emotion.PhaseCorrect:
		line := "Great job! That's correct!"
		if m.quizCelebrating {
			line = "🎉 " + line + " 🌟"
		}
		b.WriteString(styles.SuccessText.Render(line))
	case emotion.PhaseIncorrect:
		b.WriteString(styles.DangerText.Render("💭 Try again! You can do it!"))
	default:
		b.WriteString(styles.FaintText.Render("Press 1-4 to pick a face."))
	}
	b.WriteString("\n\n")

	for i, opt := range m.quiz.Options() {
		b.WriteString(m.renderOption(styles, th, i, opt))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderQuizStats(styles Styles, th Theme) string {
	score, attempts := m.quiz.Score(), m.quiz.Attempts()
	stat := func(value, label, color string) string {
		return styles.Color(color).Bold(true).Render(value) + " " + styles.MutedText.Render(label)
	}
	return strings.Join([]string{
		stat(fmt.Sprintf("%d", score), "Correct", th.Success),
		stat(fmt.Sprintf("%d", attempts), "Attempts", th.Accent),
		stat(fmt.Sprintf("%d%%", emotion.Accuracy(score, attempts)), "Success", th.ViewColor(state.ViewCalm)),
	}, styles.FaintText.Render("   ·   "))
}

func (m Model) renderOption(styles Styles, th Theme, idx int, opt emotion.Emotion) string {
	label := fmt.Sprintf("%d  %s %s", idx+1, opt.Emoji, opt.Name)
	phase := m.quiz.Phase()
	target := m.quiz.Target()

	style := styles.Text
	switch {
	case phase == emotion.PhaseCorrect && opt.Name == target.Name:
		style = styles.SuccessText
		label += "  ✔"
	case phase == emotion.PhaseIncorrect && opt.Name == target.Name:
		// Hint ring around the right answer.
		style = styles.Color(th.Success)
	case phase == emotion.PhaseIncorrect && opt.Name == m.quiz.Picked():
		style = styles.DangerText
		label += "  ✗"
	}

	if idx == m.quizCursor && phase != emotion.PhaseCorrect {
		return styles.Selected.Render("›") + " " + style.Render(label)
	}
	return "  " + style.Render(label)
}
