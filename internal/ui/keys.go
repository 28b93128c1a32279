package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/autiplay/internal/state"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	Tab         key.Binding
	ShiftTab    key.Binding
	Escape      key.Binding

	// Lists
	Up   key.Binding
	Down key.Binding

	// Home
	Open key.Binding
	Jump key.Binding

	// Routine
	Complete     key.Binding
	ResetRoutine key.Binding

	// Emotions
	Answer      key.Binding
	Confirm     key.Binding
	NewQuestion key.Binding
	ResetStats  key.Binding

	// Calm
	Breathing   key.Binding
	SoundNone   key.Binding
	SoundRain   key.Binding
	SoundOcean  key.Binding
	SoundForest key.Binding
	Pause       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Light/dark"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next section"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous section"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Home"),
		),

		// Lists
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),

		// Home
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "Go to section"),
		),

		// Routine
		Complete: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "Done!"),
		),
		ResetRoutine: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Start over"),
		),

		// Emotions
		Answer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Pick answer"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Pick selected"),
		),
		NewQuestion: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New face"),
		),
		ResetStats: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reset score"),
		),

		// Calm
		Breathing: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Breathing"),
		),
		SoundNone: key.NewBinding(
			key.WithKeys("0", "n"),
			key.WithHelp("0/n", "Silence"),
		),
		SoundRain: key.NewBinding(
			key.WithKeys("1", "r"),
			key.WithHelp("1/r", "Rain"),
		),
		SoundOcean: key.NewBinding(
			key.WithKeys("2", "o"),
			key.WithHelp("2/o", "Ocean"),
		),
		SoundForest: key.NewBinding(
			key.WithKeys("3", "f"),
			key.WithHelp("3/f", "Forest"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Pause/play"),
		),
	}
}

// viewKeys adapts the key map to bubbles/help for the active view.
type viewKeys struct {
	keys keyMap
	view state.View
}

// ShortHelp returns key bindings for the short help view.
func (v viewKeys) ShortHelp() []key.Binding {
	k := v.keys
	switch v.view {
	case state.ViewRoutine:
		return []key.Binding{k.Complete, k.ResetRoutine, k.Escape, k.Help}
	case state.ViewEmotions:
		return []key.Binding{k.Answer, k.NewQuestion, k.Escape, k.Help}
	case state.ViewCalm:
		return []key.Binding{k.Breathing, k.SoundRain, k.Pause, k.Escape, k.Help}
	default:
		return []key.Binding{k.Jump, k.Open, k.Tab, k.Help, k.Quit}
	}
}

// FullHelp returns key bindings for the full help view.
func (v viewKeys) FullHelp() [][]key.Binding {
	k := v.keys
	general := []key.Binding{k.Tab, k.ShiftTab, k.Escape, k.ToggleTheme, k.Help, k.Quit}
	switch v.view {
	case state.ViewRoutine:
		return [][]key.Binding{{k.Up, k.Down, k.Complete, k.ResetRoutine}, general}
	case state.ViewEmotions:
		return [][]key.Binding{{k.Answer, k.Up, k.Down, k.Confirm}, {k.NewQuestion, k.ResetStats}, general}
	case state.ViewCalm:
		return [][]key.Binding{{k.Breathing, k.Pause}, {k.SoundNone, k.SoundRain, k.SoundOcean, k.SoundForest}, general}
	default:
		return [][]key.Binding{{k.Up, k.Down, k.Open, k.Jump}, general}
	}
}
