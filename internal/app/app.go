package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/autiplay/internal/audio"
	"github.com/five82/autiplay/internal/config"
	"github.com/five82/autiplay/internal/emotion"
	"github.com/five82/autiplay/internal/routine"
	"github.com/five82/autiplay/internal/server"
	"github.com/five82/autiplay/internal/state"
	"github.com/five82/autiplay/internal/storage"
	"github.com/five82/autiplay/internal/ui"
)

// Reset scopes accepted by Env.Reset.
const (
	ScopeRoutine  = "routine"
	ScopeEmotions = "emotions"
	ScopeAll      = "all"
)

// Options configure the AutiPlay application. Empty fields keep the values
// from the config file.
type Options struct {
	ConfigPath string
	Profile    string
	Theme      string

	// LogStderr mirrors the log file to stderr. The local TUI owns the
	// terminal, so only the SSH server sets it.
	LogStderr bool
}

// Env is the opened configuration, logger and database shared by every
// entry point.
type Env struct {
	Config config.Config
	Logger *log.Logger
	Store  *storage.Store

	logFile io.Closer
}

// Open loads the config, applies overrides and opens the log and database.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if profile := strings.TrimSpace(opts.Profile); profile != "" {
		cfg.Profile = profile
	}
	if theme := strings.ToLower(strings.TrimSpace(opts.Theme)); theme != "" {
		if theme != config.ThemeLight && theme != config.ThemeDark {
			return nil, fmt.Errorf("theme must be %q or %q, got %q", config.ThemeLight, config.ThemeDark, opts.Theme)
		}
		cfg.Theme = theme
	}

	var extra []io.Writer
	if opts.LogStderr {
		extra = append(extra, os.Stderr)
	}
	logger, logFile, err := NewLogger(cfg, extra...)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	return &Env{Config: cfg, Logger: logger, Store: store, logFile: logFile}, nil
}

// Close releases the database and the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	return errors.Join(e.Store.Close(), e.logFile.Close())
}

// Bucket is the key space of the configured profile.
func (e *Env) Bucket() *storage.Bucket {
	return e.Store.Profile(e.Config.Profile)
}

// NewLogger opens the configured log file in append mode and returns a
// logger writing to it and to any extra writers.
func NewLogger(cfg config.Config, extra ...io.Writer) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = f
	if len(extra) > 0 {
		w = io.MultiWriter(append([]io.Writer{f}, extra...)...)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "autiplay",
		Level:           level,
	})
	return logger, f, nil
}

// Run boots the local TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.LogStderr = false
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	cfg := env.Config
	player := audio.NewProcessPlayer(cfg.Player, func(s audio.Sound) string {
		return cfg.SoundPath(s.String())
	})

	env.Logger.Info("autiplay starting", "profile", cfg.Profile, "theme", cfg.Theme, "db", cfg.DBPath)
	err = ui.Run(ui.Options{
		Context: ctx,
		State:   state.New(cfg.Dark()),
		Storage: env.Bucket(),
		Player:  player,
		Logger:  env.Logger.With("profile", cfg.Profile),
		Profile: cfg.Profile,
	})
	if err != nil {
		env.Logger.Error("ui exited", "error", err)
		return err
	}
	env.Logger.Info("autiplay stopped")
	return nil
}

// Serve hosts the TUI over SSH until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	opts.LogStderr = true
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	buckets := server.StorageFunc(func(profile string) ui.Storage {
		return env.Store.Profile(profile)
	})
	rt, err := server.New(server.Options{
		Config:  env.Config,
		Storage: buckets,
		Logger:  env.Logger,
	})
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}

// Report summarises the saved progress of one profile.
type Report struct {
	Profile  string
	Done     int
	Total    int
	Score    int
	Attempts int
	Accuracy int
}

// Progress reads the saved checklist and quiz counters of the profile.
func (e *Env) Progress() Report {
	bucket := e.Bucket()
	done, total := routine.Load(bucket).Progress()
	score, attempts := emotion.ReadCounters(bucket)
	return Report{
		Profile:  e.Config.Profile,
		Done:     done,
		Total:    total,
		Score:    score,
		Attempts: attempts,
		Accuracy: emotion.Accuracy(score, attempts),
	}
}

// Reset clears the saved progress of the profile for scope.
func (e *Env) Reset(scope string) error {
	var keys []string
	switch strings.ToLower(strings.TrimSpace(scope)) {
	case ScopeRoutine:
		keys = []string{routine.StorageKey}
	case ScopeEmotions:
		keys = []string{emotion.ScoreKey, emotion.AttemptsKey}
	case ScopeAll, "":
		keys = []string{routine.StorageKey, emotion.ScoreKey, emotion.AttemptsKey}
	default:
		return fmt.Errorf("unknown reset scope %q (want %s, %s or %s)", scope, ScopeRoutine, ScopeEmotions, ScopeAll)
	}
	if err := e.Bucket().Delete(keys...); err != nil {
		return fmt.Errorf("reset %s: %w", scope, err)
	}
	e.Logger.Info("progress reset", "profile", e.Config.Profile, "scope", scope)
	return nil
}
