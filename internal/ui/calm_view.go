package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/autiplay/internal/audio"
	"github.com/five82/autiplay/internal/calm"
	"github.com/five82/autiplay/internal/state"
)

// Circle radii, in rows, at the bottom and top of a breath.
const (
	breathMinRadius = 2
	breathMaxRadius = 5
)

var calmMessages = []struct{ emoji, title, message string }{
	{"🌸", "You are safe", "This is your peaceful space where you can relax and feel calm."},
	{"⭐", "You are doing great", "Take your time and remember that every feeling is okay."},
}

// handleCalmKey processes keyboard input for the calm room.
func (m Model) handleCalmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Breathing):
		m.breathSeq++
		if !m.room.ToggleBreathing() {
			return m, nil
		}
		m.breathStart = m.now()
		m.breathNow = m.breathStart
		return m, breathTickCmd(m.breathSeq)
	case key.Matches(msg, m.keys.SoundNone):
		m.room.SelectSound(audio.None)
	case key.Matches(msg, m.keys.SoundRain):
		return m.selectSound(audio.Rain)
	case key.Matches(msg, m.keys.SoundOcean):
		return m.selectSound(audio.Ocean)
	case key.Matches(msg, m.keys.SoundForest):
		return m.selectSound(audio.Forest)
	case key.Matches(msg, m.keys.Pause):
		m.room.TogglePlayback()
	}
	return m, nil
}

// selectSound switches the ambient sound and watches the new track so the
// view learns when its player exits.
func (m Model) selectSound(s audio.Sound) (tea.Model, tea.Cmd) {
	m.room.SelectSound(s)
	return m, watchTrackCmd(m.ctx, m.room.TrackDone())
}

// renderCalm renders the breathing circle, the sound picker and the calming
// messages.
func (m Model) renderCalm() string {
	styles := m.styles()
	th := m.theme()
	accent := th.ViewColor(state.ViewCalm)

	var b strings.Builder
	b.WriteString(styles.Color(accent).Bold(true).Render("🌈 Calm Room"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Take a deep breath and relax"))
	b.WriteString("\n\n")

	b.WriteString(m.renderBreathing(styles, accent))
	b.WriteString("\n\n")
	b.WriteString(m.renderSounds(styles, th, accent))
	b.WriteString("\n\n")

	cards := make([]string, 0, len(calmMessages))
	for _, msg := range calmMessages {
		body := styles.Text.Bold(true).Render(msg.emoji+" "+msg.title) + "\n" + styles.MutedText.Render(msg.message)
		cards = append(cards, styles.Card.Width(m.cardWidth()).Render(body))
	}
	b.WriteString(strings.Join(cards, "\n"))
	return b.String()
}

func (m Model) renderBreathing(styles Styles, accent string) string {
	if !m.room.Breathing() {
		circle := drawCircle(breathMinRadius+1, "😌")
		return m.center(styles.Color(accent).Render(circle)) + "\n" +
			m.center(styles.FaintText.Render("Press b to start breathing"))
	}

	phase, scale := calm.BreathAt(m.breathNow.Sub(m.breathStart))
	// Ease the radius so the circle lingers at the ends of a breath.
	eased := (1 - math.Cos(scale*math.Pi)) / 2
	radius := breathMinRadius + int(math.Round(eased*float64(breathMaxRadius-breathMinRadius)))

	circle := drawCircle(radius, "🌬️")
	return m.center(styles.Color(accent).Render(circle)) + "\n" +
		m.center(styles.InfoText.Bold(true).Render(phase.Prompt()))
}

func (m Model) renderSounds(styles Styles, th Theme, accent string) string {
	selected := m.room.Selected()
	chips := make([]string, 0, len(audio.Sounds()))
	for i, s := range audio.Sounds() {
		label := s.Emoji() + " " + s.Label()
		prefix := string(rune('0' + i))
		if s == selected {
			chips = append(chips, styles.Badge(accent, th.Background).Render(prefix+" "+label))
			continue
		}
		chips = append(chips, styles.MutedText.Padding(0, 1).Render(prefix+" "+label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, chips...)

	status := "Choose a sound"
	switch {
	case m.room.Playing():
		status = "▶ Playing " + selected.Label() + " · space to pause"
	case m.room.HasTrack():
		status = "⏸ Paused · space to play"
	case selected != audio.None:
		status = selected.Label() + " is not available"
	}
	return row + "\n" + styles.FaintText.Render(status)
}

// drawCircle renders a filled circle of the given radius in rows, with
// label in the middle row.
func drawCircle(radius int, label string) string {
	if radius < 1 {
		radius = 1
	}
	// Terminal cells are about twice as tall as wide.
	width := radius * 4
	lines := make([]string, 0, radius*2+1)
	for y := -radius; y <= radius; y++ {
		half := int(math.Round(math.Sqrt(float64(radius*radius-y*y)) * 2))
		pad := strings.Repeat(" ", width/2-half)
		if y == 0 {
			inner := half*2 - 2
			if inner < 2 {
				inner = 2
			}
			side := (inner - 2) / 2
			lines = append(lines, pad+"●"+strings.Repeat("●", side)+label+strings.Repeat("●", inner-2-side)+"●")
			continue
		}
		lines = append(lines, pad+strings.Repeat("●", half*2))
	}
	return strings.Join(lines, "\n")
}
