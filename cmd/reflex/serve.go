package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
)

var (
	flagSSHAddr         string
	flagHostKey         string
	flagMetricsAddr     string
	flagIdleTimeout     int
	flagServeDifficulty string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reflex SSH server",
	Long: `Start an SSH server that allows users to connect and train.

Each SSH connection gets its own session with its own cue sequence.
Sound cannot be sent over SSH, so cues are always shown on screen.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.reflex/host_key

Examples:
  reflex serve                           # Listen on :23234 with auto-generated key
  reflex serve --ssh :2222               # Listen on port 2222
  reflex serve --metrics :9090           # Expose Prometheus metrics at :9090/metrics
  reflex serve --db ./scores.db          # Use specific database
  reflex serve --seed 7                  # Every session replays the same cues

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address to serve Prometheus metrics on (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeDifficulty, "difficulty", "", "Difficulty preset for all sessions: easy, normal, hard")
}

func runServe(cmd *cobra.Command, _ []string) error {
	reflexCfg, err := loadConfig(flagServeDifficulty)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "reflex-ssh")
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.MetricsAddress = flagMetricsAddr
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Seed, cfg.FixedSeed = resolveSeed(cmd)
	cfg.Reflex = reflexCfg

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting reflex SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
