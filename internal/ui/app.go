package ui

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/autiplay/internal/audio"
	"github.com/five82/autiplay/internal/calm"
	"github.com/five82/autiplay/internal/emotion"
	"github.com/five82/autiplay/internal/routine"
	"github.com/five82/autiplay/internal/state"
)

// Storage is the per-profile key-value space the views persist into.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	State    *state.Store
	Storage  Storage
	Player   audio.Player
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
	Rand     *rand.Rand
	Profile  string
	Now      func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	logger   *log.Logger
	renderer *lipgloss.Renderer
	profile  string
	now      func() time.Time
	keys     keyMap
	help     help.Model

	// Shell state
	state  *state.Store
	width  int
	height int
	ready  bool

	// Help overlay
	showHelp bool

	// Slide-in after a view switch
	transitionSeq   int
	transitionFrame int

	// Home
	homeCursor int

	// Routine
	checklist     *routine.Checklist
	routineCursor int
	celebrating   string
	confettiSeq   int

	// Emotions
	quiz            *emotion.Quiz
	quizCursor      int
	quizCelebrating bool

	// Calm
	room        *calm.Room
	breathSeq   int
	breathStart time.Time
	breathNow   time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	store := opts.State
	if store == nil {
		store = state.New(false)
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		ctx:       ctx,
		logger:    logger,
		renderer:  renderer,
		profile:   opts.Profile,
		now:       now,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		state:     store,
		checklist: routine.Load(opts.Storage),
		quiz:      emotion.New(opts.Storage, opts.Rand),
		room:      calm.New(ctx, opts.Player, logger),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case transitionMsg:
		if msg.seq != m.transitionSeq || m.transitionFrame >= transitionFrames {
			return m, nil
		}
		m.transitionFrame++
		if m.transitionFrame < transitionFrames {
			return m, transitionCmd(m.transitionSeq)
		}
		return m, nil

	case confettiDoneMsg:
		if msg.seq == m.confettiSeq {
			m.celebrating = ""
		}
		return m, nil

	case celebrationDoneMsg:
		if msg.round == m.quiz.Round() {
			m.quizCelebrating = false
		}
		return m, nil

	case advanceMsg:
		if m.quiz.Advance(msg.round) {
			m.quizCursor = 0
			m.quizCelebrating = false
		}
		return m, nil

	case feedbackDoneMsg:
		m.quiz.ClearFeedback(msg.seq)
		return m, nil

	case trackEndedMsg:
		if m.room.Refresh() {
			m.logger.Debug("ambient sound slot cleared", "profile", m.profile)
		}
		return m, nil

	case breathTickMsg:
		if msg.seq != m.breathSeq || !m.room.Breathing() {
			return m, nil
		}
		m.breathNow = msg.at
		return m, breathTickCmd(m.breathSeq)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// Close releases the calm room's audio. It is safe to call more than once.
func (m Model) Close() {
	m.room.Close()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp && !key.Matches(msg, m.keys.Quit) {
		// Any other key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.room.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		dark := m.state.ToggleTheme()
		m.logger.Debug("theme toggled", "dark", dark)
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		prev := m.state.Snapshot().View
		return m.switched(prev, m.state.Next(1))

	case key.Matches(msg, m.keys.ShiftTab):
		prev := m.state.Snapshot().View
		return m.switched(prev, m.state.Next(-1))

	case key.Matches(msg, m.keys.Escape):
		return m.navigate(state.ViewHome)
	}

	// View-specific keys
	switch m.state.Snapshot().View {
	case state.ViewRoutine:
		return m.handleRoutineKey(msg)
	case state.ViewEmotions:
		return m.handleEmotionKey(msg)
	case state.ViewCalm:
		return m.handleCalmKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

// navigate makes v active. Leaving a view discards its transient effects;
// leaving the calm room releases its audio.
func (m Model) navigate(v state.View) (Model, tea.Cmd) {
	prev := m.state.Snapshot().View
	return m.switched(prev, m.state.Show(v))
}

// switched runs the side effects of a view switch that already happened in
// the store.
func (m Model) switched(prev, next state.View) (Model, tea.Cmd) {
	if prev != next {
		m.leave(prev)
		m.enter(next)
		m.logger.Debug("view changed", "from", prev, "to", next)
	}

	m.transitionSeq++
	m.transitionFrame = 0
	return m, transitionCmd(m.transitionSeq)
}

func (m *Model) leave(v state.View) {
	switch v {
	case state.ViewRoutine:
		m.celebrating = ""
		m.confettiSeq++
	case state.ViewEmotions:
		m.quizCelebrating = false
	case state.ViewCalm:
		m.room.Close()
		m.breathSeq++
	}
}

func (m *Model) enter(v state.View) {
	switch v {
	case state.ViewEmotions:
		m.quiz.NewQuestion()
		m.quizCursor = 0
	case state.ViewRoutine:
		m.routineCursor = m.firstOpenTask()
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.slide(m.renderContent()))
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the body of the active view.
func (m Model) renderContent() string {
	switch m.state.Snapshot().View {
	case state.ViewRoutine:
		return m.renderRoutine()
	case state.ViewEmotions:
		return m.renderEmotions()
	case state.ViewCalm:
		return m.renderCalm()
	default:
		return m.renderHome()
	}
}

func (m Model) styles() Styles {
	return ThemeFor(m.state.Snapshot().Dark).Styles(m.renderer)
}

func (m Model) theme() Theme {
	return ThemeFor(m.state.Snapshot().Dark)
}

// logSaveError reports a failed write; in-memory state stays authoritative.
func (m Model) logSaveError(what string, err error) {
	if err != nil {
		m.logger.Error("save failed", "what", what, "profile", m.profile, "err", err)
	}
}

// Messages

var transitionFrames = int(TransitionDuration / TransitionFrame)

type transitionMsg struct{ seq int }

type confettiDoneMsg struct{ seq int }

type celebrationDoneMsg struct{ round int }

type advanceMsg struct{ round int }

type feedbackDoneMsg struct{ seq int }

// trackEndedMsg reports that a track handed to the calm room has ended.
type trackEndedMsg struct{}

type breathTickMsg struct {
	seq int
	at  time.Time
}

// Commands

func afterCmd(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func transitionCmd(seq int) tea.Cmd {
	return afterCmd(TransitionFrame, transitionMsg{seq: seq})
}

func breathTickCmd(seq int) tea.Cmd {
	return tea.Tick(BreathFrame, func(t time.Time) tea.Msg {
		return breathTickMsg{seq: seq, at: t}
	})
}

// watchTrackCmd waits for the track behind done to end.
func watchTrackCmd(ctx context.Context, done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-done:
			return trackEndedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
