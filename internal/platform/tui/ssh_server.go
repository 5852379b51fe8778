package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gridloop/internal/config"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/registry"
	"github.com/vovakirdan/gridloop/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridloop/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// DefaultSim runs when the client names no simulation
	// (ssh -p 23235 host maze picks one).
	DefaultSim string

	// Settings configure every session's engine.
	Settings config.Settings

	// Log receives server logs. Defaults to stderr.
	Log io.Writer
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		DefaultSim:  "movement",
		Settings:    config.DefaultSettings(),
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own engine on a
// Session host.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions sync.Map // session ID -> *sessionRun
	active   sync.WaitGroup
}

// sessionRun is the engine serving one SSH session.
type sessionRun struct {
	engine *engine.Engine
	simID  string
	user   string
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	w := cfg.Log
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridloop-ssh",
		Level:           cfg.Settings.Level(),
	})

	if !registry.Exists(cfg.DefaultSim) {
		return nil, fmt.Errorf("unknown default simulation %q", cfg.DefaultSim)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".gridloop", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds an engine for the session and hands its model to Wish.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	simID := s.simFor(sshSession.Command())
	renderer := NewRenderer(bubbletea.MakeRenderer(sshSession))

	run, host, err := s.newRun(simID, sshSession.User(), pty.Window.Width, pty.Window.Height, renderer)
	if err != nil {
		s.logger.Warn("cannot start session", "user", sshSession.User(), "sim", simID, "error", err)
		wish.Errorln(sshSession, err)
		return nil, nil
	}
	s.sessions.Store(sshSession.Context().SessionID(), run)

	return host.Model(), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// simFor picks the simulation named by the SSH command, or the default.
func (s *SSHServer) simFor(command []string) string {
	if len(command) > 0 && command[0] != "" {
		return command[0]
	}
	return s.config.DefaultSim
}

// newRun builds and starts an engine on a Session host. Starting only
// registers the frame callback; the session's program drives it.
func (s *SSHServer) newRun(simID, user string, cols, rows int, renderer *Renderer) (*sessionRun, *Session, error) {
	settings := s.config.Settings

	sim, err := registry.Create(simID, settings.SimOptions(simID, time.Now().UnixNano()))
	if err != nil {
		return nil, nil, err
	}

	host := NewSession(cols, rows, renderer, settings.TickRate())
	host.SetHoldWindow(settings.HoldWindow())

	b := engine.New(sim, sim.Title()).
		WithHost(host).
		WithLogger(s.logger.With("user", user, "sim", simID))
	sim.Configure(b)
	if err := settings.Apply(b); err != nil {
		return nil, nil, err
	}

	e, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	if err := e.Start(); err != nil {
		return nil, nil, err
	}

	return &sessionRun{engine: e, simID: simID, user: user}, host, nil
}

// finish closes the session's engine and records the run. It runs after
// the session's program has exited.
func (s *SSHServer) finish(sessionID string) {
	v, ok := s.sessions.LoadAndDelete(sessionID)
	if !ok {
		return
	}
	run := v.(*sessionRun)

	if err := run.engine.Close(); err != nil {
		s.logger.Warn("engine close failed", "error", err)
	}
	if s.store == nil || run.engine.Ticks() == 0 {
		return
	}
	if _, err := s.store.SaveRun(storage.Run{
		SimID:    run.simID,
		Host:     "ssh",
		Ticks:    run.engine.Ticks(),
		Duration: run.engine.Elapsed(),
	}); err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}

// loggingMiddleware logs SSH session events and finalizes the session's run.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.active.Add(1)
		defer s.active.Done()

		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.finish(sshSession.Context().SessionID())
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Sessions still open when the grace
// period ends are disconnected; each one's middleware records its run
// before the store is closed.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("sessions still open, disconnecting")
		err = s.server.Close()
	}

	done := make(chan struct{})
	go func() {
		s.active.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.logger.Warn("sessions did not finish in time")
	}

	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
