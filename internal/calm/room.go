// Package calm holds the calm room state: breathing guidance and one
// ambient sound slot.
package calm

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/autiplay/internal/audio"
)

// BreathCycle is one full inhale and exhale.
const BreathCycle = 6 * time.Second

// Room owns at most one live track. Every transition stops and drops the
// current track before another one is opened.
type Room struct {
	ctx    context.Context
	player audio.Player
	logger *log.Logger

	track     audio.Track
	selected  audio.Sound
	playing   bool
	breathing bool
}

// New returns an idle room. ctx bounds the lifetime of opened tracks.
func New(ctx context.Context, player audio.Player, logger *log.Logger) *Room {
	if ctx == nil {
		ctx = context.Background()
	}
	if player == nil {
		player = audio.NewSilent()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Room{ctx: ctx, player: player, logger: logger}
}

// SelectSound switches the ambient sound. The current track is always
// released first, even when s is already selected. A failed start is logged
// and leaves the room silent.
func (r *Room) SelectSound(s audio.Sound) {
	r.release()
	r.selected = s
	if s == audio.None {
		return
	}

	track, err := r.player.Open(r.ctx, s)
	if err != nil {
		level := log.WarnLevel
		if errors.Is(err, context.Canceled) {
			level = log.DebugLevel
		}
		r.logger.Log(level, "ambient sound failed to start", "sound", s, "err", err)
		return
	}
	r.track = track
	r.playing = true
	r.logger.Debug("ambient sound started", "sound", s)
}

// TogglePlayback pauses or resumes the current track. Without a track it
// does nothing.
func (r *Room) TogglePlayback() {
	if r.reap() || r.track == nil {
		return
	}
	if r.playing {
		if err := r.track.Pause(); err != nil {
			r.logger.Warn("ambient sound failed to pause", "sound", r.selected, "err", err)
		}
		r.playing = false
		return
	}
	if err := r.track.Resume(); err != nil {
		r.logger.Warn("ambient sound failed to resume", "sound", r.selected, "err", err)
		return
	}
	r.playing = true
}

// ToggleBreathing flips breathing guidance and returns the new value.
func (r *Room) ToggleBreathing() bool {
	r.breathing = !r.breathing
	return r.breathing
}

// Close stops the current track and turns breathing off.
func (r *Room) Close() {
	r.release()
	r.breathing = false
}

// Selected returns the chosen sound, None when silent.
func (r *Room) Selected() audio.Sound { return r.selected }

// Playing reports whether a track is audible.
func (r *Room) Playing() bool {
	r.reap()
	return r.playing
}

// HasTrack reports whether a track is held, paused or not.
func (r *Room) HasTrack() bool {
	r.reap()
	return r.track != nil
}

// TrackDone returns the channel closed when the held track ends, nil when
// no track is held.
func (r *Room) TrackDone() <-chan struct{} {
	if r.track == nil {
		return nil
	}
	return r.track.Done()
}

// Refresh drops the held track if its player has exited and reports whether
// it did.
func (r *Room) Refresh() bool {
	return r.reap()
}

// Breathing reports whether breathing guidance is on.
func (r *Room) Breathing() bool { return r.breathing }

// reap releases a track whose player ended without being stopped. The
// failure is logged and the room falls silent.
func (r *Room) reap() bool {
	if r.track == nil {
		return false
	}
	select {
	case <-r.track.Done():
	default:
		return false
	}
	track := r.track
	r.track = nil
	r.playing = false
	r.logger.Warn("ambient sound stopped unexpectedly", "sound", track.Sound(), "err", track.Err())
	_ = track.Stop()
	return true
}

func (r *Room) release() {
	r.playing = false
	if r.track == nil {
		return
	}
	track := r.track
	r.track = nil
	if err := track.Stop(); err != nil {
		r.logger.Warn("ambient sound failed to stop", "sound", track.Sound(), "err", err)
	}
}

// Phase is the breathing step at a point in the cycle.
type Phase int

const (
	Inhale Phase = iota
	Exhale
)

// Prompt is the text shown for the phase.
func (p Phase) Prompt() string {
	if p == Exhale {
		return "...and breathe out"
	}
	return "Breathe in..."
}

// BreathAt returns the phase and the circle scale in [0,1] for elapsed time
// since breathing started. The circle grows during the inhale half and
// shrinks during the exhale half.
func BreathAt(elapsed time.Duration) (Phase, float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	half := BreathCycle / 2
	pos := elapsed % BreathCycle
	if pos < half {
		return Inhale, float64(pos) / float64(half)
	}
	return Exhale, 1 - float64(pos-half)/float64(half)
}
