package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toseph-here/Kope-Quest/internal/arena"
	"github.com/toseph-here/Kope-Quest/internal/battle"
)

var (
	flagDuelElementA string
	flagDuelElementB string
	flagDuelVerbose  bool
)

var duelCmd = &cobra.Command{
	Use:   "duel <challenger> <opponent>",
	Short: "Hotseat player-versus-player duel",
	Long: `Run a duel between two local players sharing the terminal.

The challenger opens a challenge and receives a join code; the opponent
must type it back to accept. Each turn both players enter an action and
the turn resolves once both are in. The winner takes boosted rewards.

Examples:
  kopequest duel alice bob
  kopequest duel alice bob --element-a fire --element-b water`,
	Args: cobra.ExactArgs(2),
	Run:  runDuel,
}

func init() {
	duelCmd.Flags().StringVar(&flagDuelElementA, "element-a", "", "Element for the challenger if newly created")
	duelCmd.Flags().StringVar(&flagDuelElementB, "element-b", "", "Element for the opponent if newly created")
	duelCmd.Flags().BoolVar(&flagDuelVerbose, "verbose", false, "Log arena activity to stderr")
}

func runDuel(cmd *cobra.Command, args []string) {
	cfg, store, err := openGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	recA, err := loadOrCreatePlayer(store, cfg, args[0], flagDuelElementA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	recB, err := loadOrCreatePlayer(store, cfg, args[1], flagDuelElementB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if recA.ID == recB.ID {
		fmt.Fprintln(os.Stderr, "Error: a player cannot duel themselves")
		os.Exit(1)
	}

	var logger *log.Logger
	if flagDuelVerbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "arena"})
	}
	registry := arena.NewRegistry(cfg, logger, store)
	registry.Start()
	defer registry.Stop()

	playerA, playerB := recA.Combatant(), recB.Combatant()

	code, err := registry.CreateChallenge(playerA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s issues a challenge. Join code: %s\n", playerA.Name, code)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("%s, enter the join code to accept: ", playerB.Name)
	if !scanner.Scan() {
		fmt.Println("\nChallenge abandoned.")
		return
	}

	session, err := registry.Join(scanner.Text(), playerB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error joining: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Duel on! %s (%s) vs %s (%s)\n\n",
		playerA.Name, playerA.Element, playerB.Name, playerB.Element)

	names := map[battle.Side]string{
		battle.SideA: playerA.Name,
		battle.SideB: playerB.Name,
	}

	for !session.Status().Terminal() {
		if !promptAndSubmit(scanner, session, battle.SideA, names) {
			session.Abort()
			break
		}
		if !promptAndSubmit(scanner, session, battle.SideB, names) {
			session.Abort()
			break
		}
		printStanding(session.Combatant(battle.SideA), session.Combatant(battle.SideB))
		fmt.Println()
	}

	out, ok := session.Outcome()
	if !ok {
		return
	}
	printOutcome(out, map[string]string{playerA.ID: playerA.Name, playerB.ID: playerB.Name})

	persistPlayerOutcome(store, playerA.ID, session.Combatant(battle.SideA), out)
	persistPlayerOutcome(store, playerB.ID, session.Combatant(battle.SideB), out)
	if _, err := store.SaveBattle(out); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record battle: %v\n", err)
	}
}

// promptAndSubmit reads one action for the given side and submits it.
// Returns false when stdin is exhausted. A resolved turn is printed here;
// a waiting report just means the opponent still has to act.
func promptAndSubmit(scanner *bufio.Scanner, session *battle.Session, side battle.Side, names map[battle.Side]string) bool {
	for {
		fmt.Printf("%s's action [attack/defend/heal/skill]: ", names[side])
		if !scanner.Scan() {
			fmt.Println("\nDuel abandoned.")
			return false
		}
		action, err := battle.ParseAction(scanner.Text())
		if err != nil {
			fmt.Println("Unknown action. Try attack, defend, heal or skill.")
			continue
		}

		report, err := session.Submit(side, action)
		if err != nil {
			if errors.Is(err, battle.ErrSessionClosed) {
				return true
			}
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if !report.Waiting {
			printTurn(report.Record, names)
		}
		return true
	}
}
