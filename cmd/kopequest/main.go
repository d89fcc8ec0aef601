// kopequest is a turn-based elemental battle game for the terminal.
//
// Usage:
//
//	kopequest locations                 - List hunting locations
//	kopequest hunt <player> <location>  - Fight a generated enemy
//	kopequest duel <player> <player>    - Hotseat PvP duel via join code
//	kopequest simulate                  - Watch two AI policies fight
//	kopequest history [player]          - Show battle history
//
// Global flags:
//
//	--db <path>      - Set database path (default: ~/.kopequest/kopequest.db)
//	--config <path>  - Path to custom game config YAML
//	--seed <value>   - Set RNG seed for reproducible battles
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath string
	flagConfig string
	flagSeed   int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kopequest",
	Short: "Kope Quest - Elemental turn-based battles in your terminal",
	Long: `Kope Quest is a turn-based battle game built around an eight-element
cycle. Pick an element, hunt enemies across themed locations, earn XP
and coins, and duel other local players through join codes.

Available commands:
  locations - Show all hunting locations
  hunt      - Fight a generated enemy in a location
  duel      - Hotseat player-versus-player duel
  simulate  - Auto-battle between two AI policies
  history   - View recent battle results

Examples:
  kopequest locations
  kopequest hunt alice "Ember Fields" --element fire
  kopequest duel alice bob
  kopequest simulate --policy-a aggressive --policy-b defensive
  kopequest history alice`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kopequest/kopequest.db", "Path to game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(huntCmd)
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
}

// resolveSeed turns the --seed flag into a concrete seed value.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
