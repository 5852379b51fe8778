// gridloop runs grid simulations on the gridloop engine in a terminal, a
// window, over SSH or headless.
//
// Usage:
//
//	gridloop list              - List available simulations
//	gridloop play <sim>        - Run a simulation
//	gridloop serve             - Start SSH server for remote play
//	gridloop runs [sim]        - Show recent runs
//
// Global flags:
//
//	--config <path>    - Settings file (default search: ~/.gridloop, ./configs)
//	--fps <rate>       - Override the cooperative hosts' tick rate
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.gridloop/runs.db)
//	--debug            - Panic on programmer errors inside a tick
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/vovakirdan/gridloop/internal/config"
	"github.com/vovakirdan/gridloop/internal/storage"

	// Import simulations to register them
	_ "github.com/vovakirdan/gridloop/internal/sims/maze"
	_ "github.com/vovakirdan/gridloop/internal/sims/movement"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagDebug    bool
	flagLogLevel string

	// settings are loaded before any subcommand runs.
	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal("%v", err)
	}
	atexit.Exit(0)
}

var rootCmd = &cobra.Command{
	Use:   "gridloop",
	Short: "gridloop - real-time grid simulations",
	Long: `gridloop runs small real-time simulations on a fixed grid of points.
Each frame drains input, advances the simulation by the elapsed time and
redraws it.

Available commands:
  list     - Show all available simulations
  play     - Run a simulation in the terminal, a window or headless
  serve    - Start SSH server for remote play
  runs     - View recent runs

Examples:
  gridloop list
  gridloop play maze
  gridloop play movement --host raw
  gridloop play maze --host headless --ticks 800
  gridloop serve --ssh :2222
  gridloop runs maze`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate for terminal and window hosts (0 = from settings)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from settings, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Panic on programmer errors inside a tick")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (default from settings)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings = cfg
	return nil
}

// newLogger creates the CLI logger. Hosts that draw on the terminal get a
// log file instead of stderr.
func newLogger(toFile bool) *log.Logger {
	var w io.Writer = os.Stderr
	if toFile {
		if f, err := openLogFile(); err == nil {
			atexit.Register(func() { f.Close() })
			w = f
		} else {
			w = io.Discard
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridloop",
		Level:           settings.Level(),
	})
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".gridloop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "gridloop.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// fatal prints an error and exits through atexit so the terminal is
// restored and log files are closed.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	atexit.Exit(1)
}
