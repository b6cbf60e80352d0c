package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-reflex/internal/audio"
	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/metrics"
	"github.com/vovakirdan/tui-reflex/internal/reflex"
	"github.com/vovakirdan/tui-reflex/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.reflex/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// MetricsAddress, when set, serves Prometheus metrics at /metrics.
	MetricsAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Seed is the cue seed of every session when FixedSeed is set.
	// Otherwise each session is seeded from the clock.
	Seed      int64
	FixedSeed bool

	// Reflex is the trainer configuration shared by all sessions.
	Reflex config.ReflexConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.reflex/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Reflex:      config.DefaultReflexConfig(),
	}
}

type recorderKey struct{}

// SSHServer wraps a Wish SSH server running one training session per connection.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	http    *http.Server
	store   *storage.Store
	metrics *metrics.Manager
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "reflex-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		metrics: metrics.NewManager(),
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".reflex", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", srv.metrics.Handler())
		srv.http = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// teaHandler creates a training session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	runtime := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     s.config.sessionSeed(),
	}

	sessionID := uuid.NewString()
	recorder := NewRecorder(sessionID, s.logger.With("user", sshSession.User(), "seed", runtime.Seed), s.metrics, s.store)
	sshSession.Context().SetValue(recorderKey{}, recorder)

	// Audio cannot reach a remote terminal, so the cue is always drawn.
	game := reflex.New(
		reflex.WithInterval(s.config.Reflex.Timing.CueInterval),
		reflex.WithPresenter(audio.Nop{}),
		reflex.WithObserver(recorder),
		reflex.WithCueHint(true),
		reflex.WithBest(bestScore(s.store, s.logger)),
	)

	model := NewModel(game, runtime, Options{
		Keys:         NewKeyMap(s.config.Reflex.Keys),
		MaxTickDelta: s.config.Reflex.Timing.MaxTickDelta,
		Recorder:     recorder,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionSeed returns the cue seed for a new session.
func (c SSHServerConfig) sessionSeed() int64 {
	if c.FixedSeed {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// bestScore returns the stored high score, or 0 without a store.
func bestScore(store *storage.Store, logger *log.Logger) int {
	if store == nil {
		return 0
	}
	best, err := store.HighScore(reflex.GameID)
	if err != nil {
		logger.Warn("could not read high score", "error", err)
		return 0
	}
	return best
}

// loggingMiddleware logs SSH session events, tracks active sessions and
// saves the score of sessions that end without the quit key.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		s.metrics.SessionStarted()

		next(sshSession)

		if rec, ok := sshSession.Context().Value(recorderKey{}).(*Recorder); ok {
			rec.Finish()
		}
		s.metrics.SessionEnded()
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	if s.http != nil {
		s.logger.Info("serving metrics", "address", s.config.MetricsAddress)
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
