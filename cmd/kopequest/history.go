package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toseph-here/Kope-Quest/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [player]",
	Short: "Show battle history",
	Long: `Display recent battle results, optionally filtered to one player.

Examples:
  kopequest history
  kopequest history alice
  kopequest history alice --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of battles to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var battles []storage.BattleRecord
	if len(args) == 1 {
		playerID := strings.ToLower(strings.TrimSpace(args[0]))
		battles, err = store.PlayerBattles(playerID, flagHistoryLimit)
	} else {
		battles, err = store.RecentBattles(flagHistoryLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving battles: %v\n", err)
		os.Exit(1)
	}

	if len(battles) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'kopequest hunt <player> <location>'.")
		return
	}

	fmt.Println("Battle History")
	fmt.Println()
	fmt.Printf("  %-5s %-20s %-6s %-8s %-6s %s\n", "Kind", "Result", "Turns", "Rewards", "", "Date")
	fmt.Printf("  %-5s %-20s %-6s %-8s %-6s %s\n", "----", "------", "-----", "-------", "", "----")

	for _, rec := range battles {
		result := describeResult(rec)
		rewards := fmt.Sprintf("%d XP", rec.XP)
		coins := fmt.Sprintf("%d c", rec.Coins)
		dateStr := rec.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-5s %-20s %-6d %-8s %-6s %s\n",
			rec.Kind, result, rec.Turns, rewards, coins, dateStr)
	}
}

func describeResult(rec storage.BattleRecord) string {
	switch {
	case rec.Aborted:
		return "aborted"
	case rec.WinnerID == "" && rec.TimedOut:
		return "draw (turn limit)"
	case rec.WinnerID == "":
		return "draw (mutual KO)"
	default:
		return rec.WinnerID + " won"
	}
}
