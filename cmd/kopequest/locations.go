package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toseph-here/Kope-Quest/internal/config"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List hunting locations",
	Long: `Display all hunting locations with their element, level range and
reward multipliers.

Examples:
  kopequest locations`,
	Run: runLocations,
}

func runLocations(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Hunting Locations:")
	fmt.Println()
	fmt.Printf("  %-18s %-10s %-8s %-8s %s\n", "Name", "Element", "Levels", "Rewards", "Enemies")
	fmt.Printf("  %-18s %-10s %-8s %-8s %s\n", "----", "-------", "------", "-------", "-------")

	for _, loc := range cfg.Locations {
		levels := fmt.Sprintf("%d-%d", loc.MinLevel, loc.MaxLevel)
		rewards := fmt.Sprintf("x%.1f", loc.XPMultiplier)
		fmt.Printf("  %-18s %-10s %-8s %-8s %s\n",
			loc.Name, loc.Element, levels, rewards, strings.Join(loc.Enemies, ", "))
	}

	fmt.Println()
	fmt.Println("Hunt with: kopequest hunt <player> <location>")
}
