package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 70

	// LayoutMaxContentWidth caps the body width on wide terminals.
	LayoutMaxContentWidth = 72

	// ProgressBarWidth is the routine progress bar width outside compact mode.
	ProgressBarWidth = 40
)

// Timing constants.
const (
	// ConfettiDuration is how long the routine celebration stays visible.
	ConfettiDuration = 2500 * time.Millisecond

	// TransitionDuration is the length of the slide-in after a view switch.
	TransitionDuration = 240 * time.Millisecond

	// TransitionFrame is the interval between slide-in frames.
	TransitionFrame = 40 * time.Millisecond

	// BreathFrame is the redraw interval of the breathing circle.
	BreathFrame = 100 * time.Millisecond
)
