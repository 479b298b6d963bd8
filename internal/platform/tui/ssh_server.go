package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// sessionEventBuffer is the per-session coordinator event buffer.
const sessionEventBuffer = 64

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.rps/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// LobbyTimeout is how long an unjoined lobby stays open.
	LobbyTimeout time.Duration

	// BestOf is the online match length.
	BestOf int

	// DefaultVariant preselects the menu entry for remote players.
	DefaultVariant string
}

// SSHServerConfigFromSettings builds the server config from the user settings.
func SSHServerConfigFromSettings(s *config.Settings) SSHServerConfig {
	return SSHServerConfig{
		Address:        s.Server.SSHAddr,
		HostKeyPath:    s.Server.HostKey,
		IdleTimeout:    s.Server.IdleTimeout,
		LobbyTimeout:   s.Server.LobbyTimeout,
		BestOf:         s.Server.BestOf,
		DefaultVariant: s.DefaultVariant,
	}
}

// SSHServer wraps a Wish SSH server. All sessions share one coordinator so
// remote players can meet in online matches.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, in which case
// nothing is persisted. The coordinator starts immediately.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rps-ssh",
		})
	}

	// Resolve host key path
	hostKeyPath, err := config.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".rps", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	coordinator := multiplayer.NewCoordinator(multiplayer.CoordinatorConfig{
		LobbyTimeout: cfg.LobbyTimeout,
		BestOf:       cfg.BestOf,
	}, multiplayer.NewSessionRegistry())
	coordinator.SetLogger(logger.WithPrefix("coordinator"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		coordinator: coordinator,
		logger:      logger,
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	coordinator.Start()
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	settings := config.Default()
	settings.Player.ID = "ssh:" + user
	if err := settings.SetPlayerName(user); err != nil {
		settings.Player.Name = ""
	}
	settings.DefaultVariant = s.config.DefaultVariant
	if s.config.BestOf > 0 {
		settings.Server.BestOf = s.config.BestOf
	}

	// Register with the coordinator for online play
	session := multiplayer.NewChannelSession(multiplayer.NewSessionID(), settings.DisplayName(), sessionEventBuffer)
	s.coordinator.Sessions().Register(session)
	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: session.ID()})
		s.coordinator.Sessions().Unregister(session.ID())
		session.Close()
	}()

	// Create runtime config from PTY size
	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	model := NewSessionModel(cfg, SessionOptions{
		Store:       s.store,
		Settings:    settings,
		Coordinator: s.coordinator,
		Session:     session,
		Bell:        sshSession,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Serve accepts connections until ctx is cancelled, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting SSH server", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err, ok := <-errCh:
		s.coordinator.Stop()
		if ok {
			return err
		}
		return nil
	}
}

// Shutdown gracefully stops the server and the coordinator.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	return err
}

// Coordinator returns the shared online coordinator.
func (s *SSHServer) Coordinator() *multiplayer.Coordinator {
	return s.coordinator
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
