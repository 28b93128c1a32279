package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestParseSound(t *testing.T) {
	cases := map[string]Sound{
		"rain":    Rain,
		" Ocean ": Ocean,
		"FOREST":  Forest,
		"none":    None,
		"thunder": None,
		"":        None,
	}
	for in, want := range cases {
		if got := ParseSound(in); got != want {
			t.Fatalf("ParseSound(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSoundNames(t *testing.T) {
	for _, s := range Sounds() {
		if ParseSound(s.String()) != s {
			t.Fatalf("ParseSound(%q) did not round trip", s)
		}
		if s.Label() == "" || s.Emoji() == "" {
			t.Fatalf("sound %v missing label or emoji", s)
		}
	}
	if Sound(42).String() != "unknown" {
		t.Fatalf("Sound(42).String() = %q, want unknown", Sound(42).String())
	}
}

func TestSilent_TracksLiveCount(t *testing.T) {
	p := NewSilent()
	rain, err := p.Open(context.Background(), Rain)
	if err != nil {
		t.Fatalf("Open(rain) returned error: %v", err)
	}
	if _, err := p.Open(context.Background(), Ocean); err != nil {
		t.Fatalf("Open(ocean) returned error: %v", err)
	}
	if p.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", p.Live())
	}
	_ = rain.Stop()
	_ = rain.Stop()
	if p.Live() != 1 {
		t.Fatalf("Live() = %d after double stop, want 1", p.Live())
	}
	if got := p.Opened(); len(got) != 2 || got[0] != Rain || got[1] != Ocean {
		t.Fatalf("Opened() = %v, want [rain ocean]", got)
	}
}

func TestSilent_RejectsNone(t *testing.T) {
	if _, err := NewSilent().Open(context.Background(), None); !errors.Is(err, ErrUnknownSound) {
		t.Fatalf("Open(None) error = %v, want ErrUnknownSound", err)
	}
}

func TestProcessPlayer_MissingFile(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessPlayer(nil, func(s Sound) string {
		return filepath.Join(dir, s.String()+".mp3")
	})
	if _, err := p.Open(context.Background(), Rain); !errors.Is(err, ErrSoundMissing) {
		t.Fatalf("Open error = %v, want ErrSoundMissing", err)
	}
}

func TestProcessPlayer_NoPlayerInstalled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rain.mp3")
	if err := os.WriteFile(path, []byte("id3"), 0o644); err != nil {
		t.Fatalf("write sound: %v", err)
	}
	p := NewProcessPlayer(nil, func(Sound) string { return path })
	p.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if _, err := p.Open(context.Background(), Rain); !errors.Is(err, ErrNoPlayer) {
		t.Fatalf("Open error = %v, want ErrNoPlayer", err)
	}
}

func TestProcessPlayer_ConfiguredCommand(t *testing.T) {
	p := NewProcessPlayer([]string{"play", "-q"}, nil)
	p.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	argv, err := p.commandFor("/tmp/rain.mp3")
	if err != nil {
		t.Fatalf("commandFor returned error: %v", err)
	}
	want := []string{"play", "-q", "/tmp/rain.mp3"}
	if len(argv) != len(want) {
		t.Fatalf("argv = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("argv = %v, want %v", argv, want)
		}
	}
}

func TestProcessPlayer_FallsBackThroughDefaults(t *testing.T) {
	p := NewProcessPlayer(nil, nil)
	p.lookPath = func(name string) (string, error) {
		if name == "ffplay" {
			return "/usr/bin/ffplay", nil
		}
		return "", errors.New("not found")
	}
	argv, err := p.commandFor("/tmp/ocean.mp3")
	if err != nil {
		t.Fatalf("commandFor returned error: %v", err)
	}
	if argv[0] != "ffplay" || argv[len(argv)-1] != "/tmp/ocean.mp3" {
		t.Fatalf("argv = %v, want ffplay ... /tmp/ocean.mp3", argv)
	}
}

func TestProcessPlayer_StopEndsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sleep")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "forest.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write sound: %v", err)
	}
	// The file lands in $1, which the script ignores.
	p := NewProcessPlayer([]string{"sh", "-c", "exec sleep 30", "player"}, func(Sound) string { return path })
	track, err := p.Open(context.Background(), Forest)
	if err != nil {
		if errors.Is(err, ErrNoPlayer) {
			t.Skip("sh not available")
		}
		t.Fatalf("Open returned error: %v", err)
	}
	if err := track.Pause(); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if err := track.Resume(); err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if err := track.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if err := track.Stop(); err != nil {
		t.Fatalf("second Stop returned error: %v", err)
	}
	if err := track.Pause(); err == nil {
		t.Fatalf("Pause after Stop returned nil error")
	}
}

func TestProcessPlayer_DoneWhenPlayerExits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	path := filepath.Join(t.TempDir(), "rain.mp3")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write sound: %v", err)
	}
	p := NewProcessPlayer([]string{"sh", "-c", "exit 3", "player"}, func(Sound) string { return path })
	track, err := p.Open(context.Background(), Rain)
	if err != nil {
		if errors.Is(err, ErrNoPlayer) {
			t.Skip("sh not available")
		}
		t.Fatalf("Open returned error: %v", err)
	}
	defer track.Stop()

	select {
	case <-track.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("Done not closed after the player exited")
	}
	if track.Err() == nil {
		t.Fatalf("Err() = nil, want the exit status")
	}
	if err := track.Resume(); err == nil {
		t.Fatalf("Resume after exit returned nil error")
	}
}

func TestSilent_DoneClosedByStop(t *testing.T) {
	track, err := NewSilent().Open(context.Background(), Ocean)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	select {
	case <-track.Done():
		t.Fatalf("Done closed before Stop")
	default:
	}
	_ = track.Stop()
	select {
	case <-track.Done():
	default:
		t.Fatalf("Done still open after Stop")
	}
	if track.Err() != nil {
		t.Fatalf("Err() = %v, want nil", track.Err())
	}
}
