// Package ui provides the terminal user interface for AutiPlay.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. A header bar carries the product name,
// one tab per section and the light/dark indicator; the body renders the
// active section; a footer shows the bubbles/help short help for it.
//
// # Package Structure
//
//   - app.go: Model, Update loop, view switching, messages and Run
//   - header.go: header bar with section tabs and the theme indicator
//   - help.go: footer help and the full help overlay
//   - home_view.go: greeting and section menu
//   - routine_view.go: daily routine checklist, progress bar and confetti
//   - emotion_view.go: emotion matching game
//   - calm_view.go: breathing circle and ambient sound picker
//   - theme.go, keys.go, layout.go, style_helpers.go: styling and bindings
//
// # State
//
// Theme and active section live in a state.Store shared by every view. Each
// section owns its own state: a routine.Checklist, an emotion.Quiz and a
// calm.Room. Timed effects (confetti, quiz feedback, breathing animation,
// slide-in) are tea.Tick commands whose messages carry a sequence or round
// number, and Update drops any message whose tag is no longer current.
//
// Leaving the calm room closes it, which stops its ambient sound. Quitting
// does the same.
//
// # Styling
//
// Styles are built from a lipgloss.Renderer so that each SSH session renders
// with its own terminal's color profile.
package ui
