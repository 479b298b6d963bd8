package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-rps/internal/platform/httpapi"
	"github.com/vovakirdan/tui-rps/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the HTTP API",
	Long: `Start an SSH server where every connection gets its own menu, and a
JSON HTTP API over the same database.

Players connected over SSH can host a lobby and share its six-character code,
or join a lobby by code, to play best-of matches against each other. Scores
are stored per server (everyone shares the leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rps/host_key

Pass an empty address to disable a listener.

Examples:
  rps serve                       # SSH on :23234, HTTP on :8080
  rps serve --ssh :2222           # Listen on port 2222
  rps serve --http ""             # SSH only
  rps serve --host-key ./host_key # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: from settings)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default: from settings)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default: from settings)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		settings.Server.SSHAddr = flagSSHAddr
	}
	if flags.Changed("http") {
		settings.Server.HTTPAddr = flagHTTPAddr
	}
	if flags.Changed("host-key") {
		settings.Server.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		settings.Server.IdleTimeout = flagIdleTimeout
	}
	if settings.Server.SSHAddr == "" && settings.Server.HTTPAddr == "" {
		return fmt.Errorf("nothing to serve: both --ssh and --http are empty")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rps",
	})

	store := openStoreOrWarn(settings)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	var sshServer *tui.SSHServer
	if settings.Server.SSHAddr != "" {
		sshServer, err = tui.NewSSHServer(tui.SSHServerConfigFromSettings(settings), store, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(settings.Server.SSHAddr))
		g.Go(func() error { return sshServer.Serve(ctx) })
	}

	if settings.Server.HTTPAddr != "" {
		opts := httpapi.Options{
			Store:  store,
			Logger: logger.WithPrefix("http"),
			Seed:   flagSeed,
		}
		if sshServer != nil {
			opts.Coordinator = sshServer.Coordinator()
		}
		api := httpapi.NewServer(opts)
		g.Go(func() error { return api.ListenAndServe(ctx, settings.Server.HTTPAddr) })
	}

	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
