package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.breakoutish/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every session starts from.
	Game config.BreakoutConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultBreakoutConfig(),
	}
}

// SSHServer hosts one game session per SSH connection. All sessions share
// the ledger.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64 // Connected players
}

// NewSSHServer creates an SSH server recording rounds into store, which may
// be nil.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "breakoutish-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".breakoutish", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
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
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "breakoutish needs a terminal: connect with ssh -t")
		return nil, nil
	}

	player := "ssh:" + sshSession.User()
	session, err := NewSession(s.config.Game, SessionOptions{
		Player: player,
		Cols:   pty.Window.Width,
		Rows:   pty.Window.Height,
		Store:  s.store,
		Logger: s.logger,
	})
	if err != nil {
		s.logger.Warn("cannot start session", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, "terminal too small to play: "+err.Error())
		return nil, nil
	}

	// The goroutine must not outlive the connection.
	go func() {
		<-sshSession.Context().Done()
		summary := session.Stop()
		s.logger.Info("session summary",
			"player", summary.Player,
			"score", summary.Score,
			"lives", summary.Lives,
			"best", summary.Best,
			"steps", summary.Steps,
		)
	}()

	return NewModel(session, pty.Window.Width, s.config.Game.Loop.FPS), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs connects and disconnects with the number of
// players online.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("player connected",
			"player", "ssh:"+sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"online", s.active.Add(1),
		)
		next(sshSession)
		s.logger.Info("player left",
			"player", "ssh:"+sshSession.User(),
			"played", time.Since(start).Round(time.Second),
			"online", s.active.Add(-1),
		)
	}
}

// logLedger reports the rounds recorded so far.
func (s *SSHServer) logLedger() {
	if s.store == nil {
		return
	}
	stats, err := s.store.Stats()
	if err != nil {
		s.logger.Warn("could not read ledger", "error", err)
		return
	}
	s.logger.Info("ledger",
		"rounds", stats.Runs,
		"game_overs", stats.GameOvers,
		"level_clears", stats.LevelClears,
		"high_score", stats.HighScore,
	)
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server",
		"address", s.config.Address,
		"tick_rate", s.config.Game.Loop.TickRate,
		"fps", s.config.Game.Loop.FPS,
	)
	s.logLedger()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...", "online", s.active.Load())
	s.logLedger()
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The ledger belongs to the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
