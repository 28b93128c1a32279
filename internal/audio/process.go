package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// defaultCommands are tried in order; the sound file is appended.
var defaultCommands = [][]string{
	{"mpv", "--no-video", "--really-quiet", "--loop=inf"},
	{"ffplay", "-nodisp", "-loglevel", "quiet", "-loop", "0"},
	{"cvlc", "--quiet", "--loop"},
}

// ProcessPlayer plays sounds by running an external player.
type ProcessPlayer struct {
	command  []string
	resolve  func(Sound) string
	lookPath func(string) (string, error)
}

// NewProcessPlayer returns a player that runs command (or the first installed
// default player when command is empty) with the file resolve returns.
func NewProcessPlayer(command []string, resolve func(Sound) string) *ProcessPlayer {
	return &ProcessPlayer{command: command, resolve: resolve, lookPath: exec.LookPath}
}

// Open starts looping s.
func (p *ProcessPlayer) Open(ctx context.Context, s Sound) (Track, error) {
	if s == None || s.String() == "unknown" {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSound, s)
	}
	path := p.resolve(s)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSoundMissing, path)
		}
		return nil, fmt.Errorf("stat sound: %w", err)
	}

	argv, err := p.commandFor(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	t := &processTrack{sound: s, cmd: cmd, done: make(chan struct{})}
	go func() {
		t.waitErr = cmd.Wait()
		close(t.done)
	}()
	return t, nil
}

func (p *ProcessPlayer) commandFor(path string) ([]string, error) {
	candidates := defaultCommands
	if len(p.command) > 0 {
		candidates = [][]string{p.command}
	}
	for _, c := range candidates {
		if _, err := p.lookPath(c[0]); err != nil {
			continue
		}
		argv := make([]string, 0, len(c)+1)
		argv = append(argv, c...)
		return append(argv, path), nil
	}
	return nil, ErrNoPlayer
}

type processTrack struct {
	sound   Sound
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error

	mu      sync.Mutex
	stopped bool
}

func (t *processTrack) Sound() Sound { return t.sound }

func (t *processTrack) Done() <-chan struct{} { return t.done }

func (t *processTrack) Err() error {
	select {
	case <-t.done:
	default:
		return nil
	}
	if t.waitErr == nil {
		return errors.New("player exited")
	}
	return fmt.Errorf("player exited: %w", t.waitErr)
}

func (t *processTrack) Pause() error {
	return t.signal(pauseProcess)
}

func (t *processTrack) Resume() error {
	return t.signal(resumeProcess)
}

func (t *processTrack) signal(fn func(*os.Process) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return errors.New("track stopped")
	}
	select {
	case <-t.done:
		return fmt.Errorf("player exited: %v", t.waitErr)
	default:
	}
	return fn(t.cmd.Process)
}

func (t *processTrack) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return nil
	}
	t.stopped = true
	if err := t.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill player: %w", err)
	}
	<-t.done
	return nil
}
