package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridloop/internal/platform/tui"
	"github.com/vovakirdan/gridloop/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsClear  bool
	flagRunsBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [sim]",
	Short: "Show recent runs",
	Long: `Shows the most recent runs, optionally for one simulation.

Examples:
  gridloop runs
  gridloop runs maze --limit 20
  gridloop runs maze --clear
  gridloop runs --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the history instead of showing it")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse the history interactively")
}

func runRuns(cmd *cobra.Command, args []string) {
	simID := ""
	if len(args) == 1 {
		simID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("%v", err)
	}

	// fatal skips deferred calls, so the store is closed first.
	err = showRuns(store, simID, os.Stdout)
	store.Close()
	if err != nil {
		fatal("%v", err)
	}
}

// showRuns clears, browses or prints the history according to the flags.
func showRuns(store *storage.Store, simID string, w io.Writer) error {
	if flagRunsClear {
		if err := store.ClearRuns(simID); err != nil {
			return err
		}
		fmt.Fprintln(w, "Run history cleared.")
		return nil
	}

	if flagRunsBrowse {
		width, height := 80, 24
		if tw, th, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = tw, th
		}
		return tui.RunHistory(store, simID, width, height)
	}

	runs, err := store.RecentRuns(simID, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-20s  %-10s  %-8s  %8s  %10s  %6s  %s\n", "ID", "Sim", "Host", "Ticks", "Duration", "FPS", "When")
	fmt.Fprintf(w, "  %-20s  %-10s  %-8s  %8s  %10s  %6s  %s\n", "--", "---", "----", "-----", "--------", "---", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-20s  %-10s  %-8s  %8d  %10s  %6.1f  %s\n",
			r.ID, r.SimID, r.Host, r.Ticks,
			r.Duration.Round(time.Millisecond), r.FPS(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
