package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridloop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagDefaultSim  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gridloop SSH server",
	Long: `Start an SSH server that runs a simulation for every connection.

Each SSH session gets its own engine, sized to the client's terminal.
The simulation is taken from the SSH command, falling back to --sim.
Runs are recorded in the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridloop/host_key

Examples:
  gridloop serve                           # Listen on :23235 with auto-generated key
  gridloop serve --ssh :2222               # Listen on port 2222
  gridloop serve --sim maze                # Serve the maze by default
  gridloop serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235
  ssh localhost -p 23235 maze`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagDefaultSim, "sim", "movement", "Simulation for sessions that name none")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		DefaultSim:  flagDefaultSim,
		Settings:    settings,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting gridloop SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("server: %v", err)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
