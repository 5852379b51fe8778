package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/vovakirdan/gridloop/internal/clock"
	"github.com/vovakirdan/gridloop/internal/engine"
	"github.com/vovakirdan/gridloop/internal/platform/headless"
	"github.com/vovakirdan/gridloop/internal/platform/tui"
	"github.com/vovakirdan/gridloop/internal/platform/window"
	"github.com/vovakirdan/gridloop/internal/registry"
	"github.com/vovakirdan/gridloop/internal/storage"
)

// DefaultHeadlessTicks bounds headless runs started without --ticks.
const DefaultHeadlessTicks = 600

var (
	flagHost          string
	flagTicks         uint64
	flagWidth         int
	flagHeight        int
	flagDisplayWidth  int
	flagDisplayHeight int
)

var playCmd = &cobra.Command{
	Use:   "play <sim>",
	Short: "Run a simulation",
	Long: `Run the specified simulation until it quits, Escape is pressed or
--ticks frames have run.

Hosts:
  term      - Bubble Tea program; the program schedules frames (default)
  raw       - raw terminal mode; the engine runs its own paced loop
  headless  - in-memory display with a simulated clock
  window    - desktop window (binary built with -tags ebiten)

Controls:
  Arrows/WASD  - Move (movement)
  R            - Regenerate (maze)
  Esc          - Quit
  Ctrl+C       - Quit (twice to force)

Examples:
  gridloop play movement
  gridloop play maze --width 60 --height 30
  gridloop play maze --host raw --seed 42
  gridloop play maze --host headless --ticks 800`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHost, "host", "term", "Host: term, raw, headless, window")
	playCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = until quit)")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Simulation width (0 = from settings)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Simulation height (0 = from settings)")
	playCmd.Flags().IntVar(&flagDisplayWidth, "display-width", 800, "Headless display width in pixels")
	playCmd.Flags().IntVar(&flagDisplayHeight, "display-height", 600, "Headless display height in pixels")
}

func runPlay(cmd *cobra.Command, args []string) {
	simID := args[0]

	if !registry.Exists(simID) {
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", simID)
		fmt.Fprintln(os.Stderr, "Run 'gridloop list' to see available simulations.")
		atexit.Exit(1)
	}

	opts := settings.SimOptions(simID, flagSeed)
	if flagWidth > 0 {
		opts.Width = flagWidth
	}
	if flagHeight > 0 {
		opts.Height = flagHeight
	}
	sim, err := registry.Create(simID, opts)
	if err != nil {
		fatal("%v", err)
	}

	logger := newLogger(flagHost == "term" || flagHost == "raw")

	b := engine.New(sim, sim.Title()).WithLogger(logger)
	ticks := flagTicks
	switch flagHost {
	case "term":
		host, err := tui.NewProgram(settings.TickRate())
		if err != nil {
			fatal("%v", err)
		}
		host.SetHoldWindow(settings.HoldWindow())
		b.WithHost(host).WithDriver(limit(engine.CallbackDriver{Host: host}, ticks))

	case "raw":
		host, err := tui.NewRaw(os.Stdin, os.Stdout)
		if err != nil {
			fatal("%v", err)
		}
		host.SetHoldWindow(settings.HoldWindow())
		b.WithHost(host).WithDriver(limit(engine.NativeDriver{Pace: settings.Pace()}, ticks))

	case "headless":
		// Frames run back to back; the clock advances by the pace so
		// deltas match a paced run.
		host := headless.New(flagDisplayWidth, flagDisplayHeight)
		clk := clock.NewManual()
		if ticks == 0 {
			ticks = DefaultHeadlessTicks
		}
		b.WithHost(host).
			WithClock(clk).
			WithDriver(limit(engine.NativeDriver{Pace: settings.Pace(), Sleep: clk.Advance}, ticks))

	case "window":
		host, err := window.New(settings.TickRate())
		if err != nil {
			fatal("%v", err)
		}
		b.WithHost(host).WithDriver(limit(engine.CallbackDriver{Host: host}, ticks))

	default:
		fatal("unknown host %q (term, raw, headless, window)", flagHost)
	}

	sim.Configure(b)
	if err := settings.Apply(b); err != nil {
		fatal("%v", err)
	}

	e, err := b.Build()
	if err != nil {
		fatal("%v", err)
	}

	started := time.Now()
	runErr := e.Start()
	if err := e.Close(); err != nil {
		logger.Warn("close failed", "error", err)
	}
	if runErr != nil {
		fatal("%v", runErr)
	}

	run := storage.Run{
		SimID:    simID,
		Host:     flagHost,
		Ticks:    e.Ticks(),
		Duration: e.Elapsed(),
	}
	saveRun(logger, run)

	if flagHost == "headless" {
		fmt.Printf("%s: %d ticks, %v simulated (%v wall)\n",
			simID, run.Ticks, run.Duration, time.Since(started).Round(time.Millisecond))
	}
}

func limit(d engine.Driver, ticks uint64) engine.Driver {
	if ticks == 0 {
		return d
	}
	return engine.Limit(d, ticks)
}

// saveRun records the run. History is best effort.
func saveRun(logger *log.Logger, run storage.Run) {
	if run.Ticks == 0 {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(run); err != nil {
		logger.Warn("could not save run", "error", err)
	}
}
