// Package state holds the shell state shared by every Autiplay view.
//
// # Overview
//
// A Store carries two values: the dark-theme flag and the active view. Each
// has exactly one mutation entry point:
//
//   - ToggleTheme flips the theme
//   - Navigate (and its helpers Show and Next) switches the view
//
// Views receive the Store explicitly from the UI root and only read it through
// Snapshot. Nothing in the package is global; an SSH server creates one Store
// per session.
//
// # Navigation Semantics
//
// Navigate replaces the active view synchronously. There is no history stack
// and no guard: unknown identifiers resolve to the home view. Every switch,
// including a switch to the already active view, increments
// Snapshot.Transitions so the UI can restart its slide-in effect.
//
// # Concurrency Model
//
// A Store belongs to the Bubble Tea update loop of one session and is not
// locked. Theme state is never persisted.
package state
