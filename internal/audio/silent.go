package audio

import (
	"context"
	"fmt"
	"sync"
)

// Silent is a Player that produces no sound. It tracks the tracks it hands
// out so callers can check how many are still alive.
type Silent struct {
	mu     sync.Mutex
	live   int
	opened []Sound
}

// NewSilent returns an empty silent player.
func NewSilent() *Silent {
	return &Silent{}
}

// Open returns a silent track for s.
func (p *Silent) Open(_ context.Context, s Sound) (Track, error) {
	if s == None || s.String() == "unknown" {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSound, s)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.live++
	p.opened = append(p.opened, s)
	return &silentTrack{player: p, sound: s, done: make(chan struct{})}, nil
}

// Live reports how many opened tracks have not been stopped.
func (p *Silent) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Opened lists every sound opened so far, oldest first.
func (p *Silent) Opened() []Sound {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Sound, len(p.opened))
	copy(out, p.opened)
	return out
}

type silentTrack struct {
	player  *Silent
	sound   Sound
	done    chan struct{}
	paused  bool
	stopped bool
}

func (t *silentTrack) Sound() Sound { return t.sound }

func (t *silentTrack) Done() <-chan struct{} { return t.done }

func (t *silentTrack) Err() error { return nil }

func (t *silentTrack) Pause() error {
	t.paused = true
	return nil
}

func (t *silentTrack) Resume() error {
	t.paused = false
	return nil
}

func (t *silentTrack) Stop() error {
	if t.stopped {
		return nil
	}
	t.stopped = true
	close(t.done)
	t.player.mu.Lock()
	t.player.live--
	t.player.mu.Unlock()
	return nil
}
