// Package server hosts the AutiPlay UI over SSH. Every connection gets its
// own session state, keyed to the SSH user name as profile, and a silent
// audio player.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/five82/autiplay/internal/audio"
	"github.com/five82/autiplay/internal/config"
	"github.com/five82/autiplay/internal/state"
	"github.com/five82/autiplay/internal/ui"
)

const guestProfile = "guest"

type contextKey string

const sessionContextKey contextKey = "autiplay-session"

// Storage hands out the key-value space of one profile.
type Storage interface {
	Bucket(profile string) ui.Storage
}

// StorageFunc adapts a function to Storage.
type StorageFunc func(profile string) ui.Storage

// Bucket calls f.
func (f StorageFunc) Bucket(profile string) ui.Storage { return f(profile) }

// Options configure the SSH runtime.
type Options struct {
	Config  config.Config
	Storage Storage
	Logger  *log.Logger
}

// Runtime wires config, middleware and the wish server as a testable unit.
type Runtime struct {
	cfg     config.Config
	storage Storage
	logger  *log.Logger
	server  *ssh.Server
	active  atomic.Int64
}

// New builds the server without listening.
func New(opts Options) (*Runtime, error) {
	if opts.Storage == nil {
		return nil, errors.New("server: storage is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg := opts.Config
	if dir := filepath.Dir(cfg.SSH.HostKeyPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create host key dir: %w", err)
		}
	}

	r := &Runtime{cfg: cfg, storage: opts.Storage, logger: logger}
	address := net.JoinHostPort(cfg.SSH.Host, strconv.Itoa(cfg.SSH.Port))

	// The last middleware runs first.
	srv, err := wish.NewServer(
		wish.WithAddress(address),
		wish.WithHostKeyPath(cfg.SSH.HostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(
			bm.Middleware(r.teaHandler),
			activeterm.Middleware(),
			r.sessionTracking(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("init ssh server: %w", err)
	}
	r.server = srv
	return r, nil
}

// Address is the configured listen address.
func (r *Runtime) Address() string {
	return r.server.Addr
}

// Active reports the number of open sessions.
func (r *Runtime) Active() int {
	return int(r.active.Load())
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = r.server.Shutdown(shutdownCtx)
	}()

	r.logger.Info("ssh server starting",
		"address", r.Address(),
		"host_key_path", r.cfg.SSH.HostKeyPath,
		"idle_timeout", r.cfg.SSH.IdleTimeout,
		"max_sessions", r.cfg.SSH.MaxSessions,
	)
	err := r.server.ListenAndServe()
	if err == nil || errors.Is(err, ssh.ErrServerClosed) {
		r.logger.Info("ssh server stopped")
		return nil
	}
	return fmt.Errorf("ssh server: %w", err)
}

// session tracks teardown hooks of one connection.
type session struct {
	id string

	mu      sync.Mutex
	closers []func()
}

func (s *session) onClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, fn)
}

func (s *session) close() {
	s.mu.Lock()
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()
	for _, fn := range closers {
		fn()
	}
}

// sessionTracking tags the connection with an id, enforces the session limit,
// logs the session lifetime and runs its teardown hooks once the program has
// exited.
func (r *Runtime) sessionTracking() wish.Middleware {
	limit := int64(r.cfg.SSH.MaxSessions)
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			active := r.active.Add(1)
			if limit > 0 && active > limit {
				r.active.Add(-1)
				r.logger.Warn("session rejected", "user", s.User(), "remote", s.RemoteAddr().String(), "limit", limit)
				_, _ = s.Write([]byte("server busy, try again later\n"))
				_ = s.Exit(1)
				return
			}

			sess := &session{id: uuid.NewString()}
			s.Context().SetValue(sessionContextKey, sess)
			start := time.Now()
			r.logger.Info("session started",
				"session", sess.id,
				"user", s.User(),
				"remote", s.RemoteAddr().String(),
				"active", active,
			)

			defer func() {
				sess.close()
				active := r.active.Add(-1)
				r.logger.Info("session ended",
					"session", sess.id,
					"user", s.User(),
					"duration", time.Since(start).Round(time.Second),
					"active", active,
				)
			}()
			next(s)
		}
	}
}

// teaHandler builds the UI model for one session.
func (r *Runtime) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	profile := profileName(s.User())
	logger := r.logger.With("user", profile)

	sess, _ := s.Context().Value(sessionContextKey).(*session)
	if sess != nil {
		logger = logger.With("session", sess.id)
	}

	m := ui.New(ui.Options{
		Context:  s.Context(),
		State:    state.New(r.cfg.Dark()),
		Storage:  r.storage.Bucket(profile),
		Player:   audio.NewSilent(),
		Logger:   logger,
		Renderer: bm.MakeRenderer(s),
		Profile:  profile,
	})
	if sess != nil {
		sess.onClose(m.Close)
	}
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// profileName maps an SSH user to a storage profile.
func profileName(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return guestProfile
	}
	return user
}
