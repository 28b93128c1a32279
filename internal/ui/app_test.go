package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/autiplay/internal/audio"
	"github.com/five82/autiplay/internal/emotion"
	"github.com/five82/autiplay/internal/routine"
	"github.com/five82/autiplay/internal/state"
	"github.com/five82/autiplay/internal/storage"
)

type fixture struct {
	model  Model
	player *audio.Silent
	mem    *storage.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{player: audio.NewSilent(), mem: storage.NewMemory()}
	f.model = New(Options{
		Storage: f.mem,
		Player:  f.player,
		Rand:    rand.New(rand.NewPCG(3, 4)),
		Profile: "test",
	})
	f.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return f
}

// send feeds msgs through Update and returns the last command.
func (f *fixture) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = f.model.Update(msg)
		f.model = next.(Model)
	}
	return cmd
}

func (f *fixture) view() state.View {
	return f.model.state.Snapshot().View
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace    = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestNavigation_HomeMenuAndGlobalKeys(t *testing.T) {
	f := newFixture(t)
	if f.view() != state.ViewHome {
		t.Fatalf("initial view = %v, want home", f.view())
	}

	f.send(runes("2"))
	if f.view() != state.ViewEmotions {
		t.Fatalf("view after 2 = %v, want emotions", f.view())
	}

	f.send(keyEsc)
	if f.view() != state.ViewHome {
		t.Fatalf("view after esc = %v, want home", f.view())
	}

	f.send(runes("j"), runes("j"), keyEnter)
	if f.view() != state.ViewCalm {
		t.Fatalf("view after j j enter = %v, want calm", f.view())
	}

	f.send(keyTab)
	if f.view() != state.ViewHome {
		t.Fatalf("tab from calm = %v, want home (wrap)", f.view())
	}
	f.send(keyShiftTab)
	if f.view() != state.ViewCalm {
		t.Fatalf("shift+tab from home = %v, want calm", f.view())
	}
}

func TestNavigation_StartsTransition(t *testing.T) {
	f := newFixture(t)
	cmd := f.send(keyTab)
	if cmd == nil {
		t.Fatalf("view switch returned no command")
	}
	seq := f.model.transitionSeq
	for i := 0; i < transitionFrames+2; i++ {
		f.send(transitionMsg{seq: seq})
	}
	if f.model.transitionFrame != transitionFrames {
		t.Fatalf("transitionFrame = %d, want %d", f.model.transitionFrame, transitionFrames)
	}
	f.send(transitionMsg{seq: seq - 1})
	if f.model.transitionFrame != transitionFrames {
		t.Fatalf("stale transition tick changed the frame")
	}
}

func TestThemeToggle(t *testing.T) {
	f := newFixture(t)
	before := f.model.View()
	f.send(runes("T"))
	if !f.model.state.Snapshot().Dark {
		t.Fatalf("Dark = false after T")
	}
	if f.model.View() == before {
		t.Fatalf("View() unchanged after theme toggle")
	}
	if !strings.Contains(f.model.View(), "Dark") {
		t.Fatalf("header does not show the dark indicator")
	}
	f.send(runes("T"))
	if f.model.state.Snapshot().Dark {
		t.Fatalf("Dark = true after second T")
	}
}

func TestRoutine_CompleteCelebratesAndPersists(t *testing.T) {
	f := newFixture(t)
	f.send(runes("1"))
	if f.view() != state.ViewRoutine {
		t.Fatalf("view = %v, want routine", f.view())
	}

	cmd := f.send(keySpace)
	if cmd == nil {
		t.Fatalf("completing a task returned no command")
	}
	if done, total := f.model.checklist.Progress(); done != 1 || total != 8 {
		t.Fatalf("Progress() = %d/%d, want 1/8", done, total)
	}
	if f.model.celebrating != "1" {
		t.Fatalf("celebrating = %q, want 1", f.model.celebrating)
	}
	if f.model.routineCursor != 1 {
		t.Fatalf("routineCursor = %d, want 1 (next open task)", f.model.routineCursor)
	}
	if !strings.Contains(f.model.View(), "7 tasks left") {
		t.Fatalf("view does not show remaining tasks")
	}
	if v, ok, _ := f.mem.Get(routine.StorageKey); !ok || !strings.Contains(v, `"completed":true`) {
		t.Fatalf("routine not persisted: %q", v)
	}

	seq := f.model.confettiSeq
	f.send(confettiDoneMsg{seq: seq - 1})
	if f.model.celebrating == "" {
		t.Fatalf("stale confetti tick ended the celebration")
	}
	f.send(confettiDoneMsg{seq: seq})
	if f.model.celebrating != "" {
		t.Fatalf("celebrating = %q after confetti done", f.model.celebrating)
	}
}

func TestRoutine_CompletedTaskIsNoop(t *testing.T) {
	f := newFixture(t)
	f.send(runes("1"), keySpace)
	f.send(runes("k"))
	if cmd := f.send(keySpace); cmd != nil {
		t.Fatalf("completing a done task returned a command")
	}
	if done, _ := f.model.checklist.Progress(); done != 1 {
		t.Fatalf("done = %d, want 1", done)
	}
}

func TestRoutine_Reset(t *testing.T) {
	f := newFixture(t)
	f.send(runes("1"))
	for i := 0; i < 8; i++ {
		f.send(keySpace)
	}
	if !f.model.checklist.AllDone() {
		t.Fatalf("AllDone() = false after eight completions")
	}
	if !strings.Contains(f.model.View(), "All done! Amazing work!") {
		t.Fatalf("view does not show the all-done message")
	}
	f.send(runes("R"))
	if done, _ := f.model.checklist.Progress(); done != 0 {
		t.Fatalf("done = %d after reset, want 0", done)
	}
}

func targetIndex(t *testing.T, q *emotion.Quiz) int {
	t.Helper()
	for i, o := range q.Options() {
		if o.Name == q.Target().Name {
			return i
		}
	}
	t.Fatalf("target not among options")
	return -1
}

func TestEmotions_CorrectAnswerAdvancesAfterDelay(t *testing.T) {
	f := newFixture(t)
	f.send(runes("2"))
	round := f.model.quiz.Round()

	idx := targetIndex(t, f.model.quiz)
	if cmd := f.send(runes(strconv.Itoa(idx + 1))); cmd == nil {
		t.Fatalf("correct answer returned no command")
	}
	if f.model.quiz.Phase() != emotion.PhaseCorrect || !f.model.quizCelebrating {
		t.Fatalf("phase=%v celebrating=%v, want correct and celebrating", f.model.quiz.Phase(), f.model.quizCelebrating)
	}
	if f.model.quiz.Score() != 1 || f.model.quiz.Attempts() != 1 {
		t.Fatalf("score/attempts = %d/%d, want 1/1", f.model.quiz.Score(), f.model.quiz.Attempts())
	}
	if !strings.Contains(f.model.View(), f.model.quiz.Target().Description) {
		t.Fatalf("explanation not shown after correct answer")
	}

	// Locked while revealing.
	f.send(runes(strconv.Itoa((idx+1)%4 + 1)))
	if f.model.quiz.Attempts() != 1 {
		t.Fatalf("answer accepted while locked")
	}

	f.send(celebrationDoneMsg{round: round})
	if f.model.quizCelebrating {
		t.Fatalf("celebration still showing after its timer")
	}
	f.send(advanceMsg{round: round})
	if f.model.quiz.Round() != round+1 || f.model.quiz.Phase() != emotion.PhaseAwaiting {
		t.Fatalf("round=%d phase=%v, want %d awaiting", f.model.quiz.Round(), f.model.quiz.Phase(), round+1)
	}
	if s, a := emotion.ReadCounters(f.mem); s != 1 || a != 1 {
		t.Fatalf("persisted counters = %d/%d, want 1/1", s, a)
	}
}

func TestEmotions_LeavingCancelsPendingAdvance(t *testing.T) {
	f := newFixture(t)
	f.send(runes("2"))
	round := f.model.quiz.Round()
	f.send(runes(strconv.Itoa(targetIndex(t, f.model.quiz) + 1)))

	f.send(keyEsc, runes("2"))
	after := f.model.quiz.Round()
	f.send(advanceMsg{round: round})
	if f.model.quiz.Round() != after {
		t.Fatalf("stale advance dealt another question")
	}
}

func TestEmotions_IncorrectShowsFeedbackThenClears(t *testing.T) {
	f := newFixture(t)
	f.send(runes("2"))
	idx := targetIndex(t, f.model.quiz)
	wrong := (idx + 1) % 4
	target := f.model.quiz.Target()

	f.send(runes(strconv.Itoa(wrong + 1)))
	if f.model.quiz.Phase() != emotion.PhaseIncorrect {
		t.Fatalf("phase = %v, want showing-incorrect", f.model.quiz.Phase())
	}
	if !strings.Contains(f.model.View(), "Try again!") {
		t.Fatalf("view does not show the try-again message")
	}

	seq := f.model.quiz.Attempts() // one answer so far, seq matches
	f.send(feedbackDoneMsg{seq: seq})
	if f.model.quiz.Phase() != emotion.PhaseAwaiting || f.model.quiz.Target() != target {
		t.Fatalf("after feedback phase=%v target=%v, want awaiting and same target", f.model.quiz.Phase(), f.model.quiz.Target())
	}
}

func TestCalm_SoundSlotAndTeardown(t *testing.T) {
	f := newFixture(t)
	f.send(runes("3"))
	if f.view() != state.ViewCalm {
		t.Fatalf("view = %v, want calm", f.view())
	}

	f.send(runes("r"), runes("r"), runes("2"), runes("f"))
	if f.player.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", f.player.Live())
	}
	if got := f.player.Opened(); len(got) != 4 {
		t.Fatalf("opened %v, want four tracks", got)
	}

	f.send(keySpace)
	if f.model.room.Playing() {
		t.Fatalf("space did not pause")
	}
	f.send(keySpace)
	if !f.model.room.Playing() {
		t.Fatalf("space did not resume")
	}

	f.send(keyEsc)
	if f.player.Live() != 0 {
		t.Fatalf("Live() = %d after leaving calm, want 0", f.player.Live())
	}
}

func TestCalm_BreathingTicks(t *testing.T) {
	f := newFixture(t)
	f.send(runes("3"))
	if cmd := f.send(runes("b")); cmd == nil {
		t.Fatalf("starting breathing returned no tick")
	}
	if !strings.Contains(f.model.View(), "Breathe in...") {
		t.Fatalf("view does not show the inhale prompt")
	}
	seq := f.model.breathSeq
	start := f.model.breathStart
	if cmd := f.send(breathTickMsg{seq: seq, at: start.Add(4 * 1e9)}); cmd == nil {
		t.Fatalf("breath tick did not reschedule")
	}
	if !strings.Contains(f.model.View(), "breathe out") {
		t.Fatalf("view does not show the exhale prompt")
	}

	f.send(runes("b"))
	if cmd := f.send(breathTickMsg{seq: seq, at: start}); cmd != nil {
		t.Fatalf("tick after stopping breathing rescheduled")
	}
}

func TestQuit_ReleasesAudio(t *testing.T) {
	f := newFixture(t)
	f.send(runes("3"), runes("o"))
	cmd := f.send(runes("q"))
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not produce tea.QuitMsg")
	}
	if f.player.Live() != 0 {
		t.Fatalf("Live() = %d after quit, want 0", f.player.Live())
	}
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t)
	f.send(runes("?"))
	if !f.model.showHelp || !strings.Contains(f.model.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	f.send(runes("2"))
	if f.model.showHelp || f.view() != state.ViewHome {
		t.Fatalf("closing key should only close help")
	}
}

func TestView_RendersEverySection(t *testing.T) {
	f := newFixture(t)
	want := map[string]string{
		"":  "What would you like to do?",
		"1": "Daily Routine",
		"2": "Emotion Recognition",
		"3": "Calm Room",
	}
	for _, jump := range []string{"", "1", "2", "3"} {
		f.send(keyEsc)
		if jump != "" {
			f.send(runes(jump))
		}
		out := f.model.View()
		if !strings.Contains(out, "AutiPlay") || !strings.Contains(out, want[jump]) {
			t.Fatalf("view after %q missing %q", jump, want[jump])
		}
	}
}

// endablePlayer hands out tracks whose end the test controls.
type endablePlayer struct {
	tracks []*endableTrack
}

func (p *endablePlayer) Open(_ context.Context, s audio.Sound) (audio.Track, error) {
	t := &endableTrack{sound: s, done: make(chan struct{})}
	p.tracks = append(p.tracks, t)
	return t, nil
}

type endableTrack struct {
	sound audio.Sound
	done  chan struct{}
	ended bool
}

func (t *endableTrack) Sound() audio.Sound { return t.sound }
func (t *endableTrack) Pause() error       { return nil }
func (t *endableTrack) Resume() error      { return nil }
func (t *endableTrack) Stop() error {
	t.end()
	return nil
}
func (t *endableTrack) Done() <-chan struct{} { return t.done }
func (t *endableTrack) Err() error            { return errors.New("player exited: exit status 1") }

func (t *endableTrack) end() {
	if !t.ended {
		t.ended = true
		close(t.done)
	}
}

func TestCalm_PlayerExitClearsPlaying(t *testing.T) {
	player := &endablePlayer{}
	f := &fixture{player: audio.NewSilent(), mem: storage.NewMemory()}
	f.model = New(Options{Storage: f.mem, Player: player, Rand: rand.New(rand.NewPCG(3, 4))})
	f.send(tea.WindowSizeMsg{Width: 100, Height: 40}, runes("3"))

	watch := f.send(runes("r"))
	if watch == nil {
		t.Fatalf("selecting rain returned no watch command")
	}
	if !strings.Contains(f.model.View(), "Playing Rain") {
		t.Fatalf("view does not show rain playing")
	}

	player.tracks[0].end()
	msg := watch()
	if _, ok := msg.(trackEndedMsg); !ok {
		t.Fatalf("watch command returned %T, want trackEndedMsg", msg)
	}
	f.send(msg)
	if f.model.room.Playing() || f.model.room.HasTrack() {
		t.Fatalf("room still holds an exited track")
	}
	if !strings.Contains(f.model.View(), "Rain is not available") {
		t.Fatalf("view does not report the stopped sound")
	}
}

func TestHelpOverlay_QuitKeyStillQuits(t *testing.T) {
	f := newFixture(t)
	f.send(runes("3"), runes("o"), runes("?"))

	cmd := f.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c with help open returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c with help open did not quit")
	}
	if f.player.Live() != 0 {
		t.Fatalf("Live() = %d after quit, want 0", f.player.Live())
	}
}

func TestHome_ListsSections(t *testing.T) {
	f := newFixture(t)
	out := f.model.View()
	for _, want := range []string{
		"Daily Routine", "Visual schedule for daily tasks",
		"Emotion Game", "Learn about feelings",
		"Calm Room", "Relax and breathe",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("home view missing %q", want)
		}
	}
}
