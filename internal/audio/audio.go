// Package audio plays looping ambient sounds.
//
// A Player hands out Tracks. Each Track is already playing when Open returns
// and keeps looping until Stop. Callers own the Track and must Stop it; the
// calm room keeps at most one alive.
package audio

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNoPlayer means no supported player command is installed.
	ErrNoPlayer = errors.New("no audio player found")
	// ErrSoundMissing means the sound file does not exist.
	ErrSoundMissing = errors.New("sound file missing")
	// ErrUnknownSound is returned for Sound values without a file.
	ErrUnknownSound = errors.New("unknown sound")
)

// Sound names an ambient track.
type Sound int

const (
	None Sound = iota
	Rain
	Ocean
	Forest
)

var soundNames = []string{"none", "rain", "ocean", "forest"}

// Sounds lists every selectable sound, None first.
func Sounds() []Sound {
	return []Sound{None, Rain, Ocean, Forest}
}

func (s Sound) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return "unknown"
	}
	return soundNames[s]
}

// Label is the display name.
func (s Sound) Label() string {
	switch s {
	case Rain:
		return "Rain"
	case Ocean:
		return "Ocean"
	case Forest:
		return "Forest"
	case None:
		return "Silence"
	default:
		return "Unknown"
	}
}

// Emoji is the icon shown next to the label.
func (s Sound) Emoji() string {
	switch s {
	case Rain:
		return "🌧️"
	case Ocean:
		return "🌊"
	case Forest:
		return "🌲"
	default:
		return "🔇"
	}
}

// ParseSound resolves a sound name; unknown names resolve to None.
func ParseSound(name string) Sound {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range soundNames {
		if candidate == name {
			return Sound(i)
		}
	}
	return None
}

// Track is one playing sound.
type Track interface {
	Sound() Sound
	Pause() error
	Resume() error
	// Stop ends playback and releases the track. It is safe to call twice.
	Stop() error
	// Done is closed once playback has ended, by Stop or because the
	// player exited on its own.
	Done() <-chan struct{}
	// Err reports why playback ended. Only valid after Done is closed.
	Err() error
}

// Player starts looping tracks.
type Player interface {
	Open(ctx context.Context, s Sound) (Track, error)
}
