package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridloop/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available simulations",
	Long:  `Shows a list of all simulations registered with gridloop.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	sims := registry.List()

	if len(sims) == 0 {
		fmt.Println("No simulations available.")
		return
	}

	fmt.Println("Available simulations:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sims {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range sims {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'gridloop play <id>' to run a simulation.")
}
