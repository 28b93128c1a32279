package state

import "strings"

// View identifies one of the top-level screens.
type View int

const (
	ViewHome View = iota
	ViewRoutine
	ViewEmotions
	ViewCalm
)

var viewIDs = []string{"home", "routine", "emotions", "calm"}

// Views lists every view in navigation order.
func Views() []View {
	return []View{ViewHome, ViewRoutine, ViewEmotions, ViewCalm}
}

// ID returns the identifier used by Navigate.
func (v View) ID() string {
	if v < 0 || int(v) >= len(viewIDs) {
		return viewIDs[ViewHome]
	}
	return viewIDs[v]
}

func (v View) String() string {
	return v.ID()
}

// ParseView resolves an identifier; unknown identifiers resolve to ViewHome.
func ParseView(id string) View {
	id = strings.ToLower(strings.TrimSpace(id))
	for i, candidate := range viewIDs {
		if candidate == id {
			return View(i)
		}
	}
	return ViewHome
}

// Snapshot is the shell state every view reads.
type Snapshot struct {
	Dark bool
	View View
	// Transitions counts view switches; the UI keys its slide-in effect on it.
	Transitions int
}

// Store holds the theme flag and the active view of one session.
// It is owned by the session's update loop and is not safe for concurrent use.
type Store struct {
	snapshot Snapshot
}

// New returns a Store on the home view.
func New(dark bool) *Store {
	return &Store{snapshot: Snapshot{Dark: dark, View: ViewHome}}
}

// ToggleTheme flips the dark flag and returns the new value.
func (s *Store) ToggleTheme() bool {
	s.snapshot.Dark = !s.snapshot.Dark
	return s.snapshot.Dark
}

// Navigate makes id the active view and returns the resolved view.
func (s *Store) Navigate(id string) View {
	return s.Show(ParseView(id))
}

// Show makes v the active view. Out-of-range views resolve to ViewHome.
func (s *Store) Show(v View) View {
	if v < 0 || int(v) >= len(viewIDs) {
		v = ViewHome
	}
	s.snapshot.View = v
	s.snapshot.Transitions++
	return v
}

// Next moves to the following view, wrapping around. delta may be negative.
func (s *Store) Next(delta int) View {
	n := len(viewIDs)
	idx := ((int(s.snapshot.View)+delta)%n + n) % n
	return s.Show(View(idx))
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return s.snapshot
}
