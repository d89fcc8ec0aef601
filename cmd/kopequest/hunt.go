package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/npc"
)

var (
	flagHuntElement string
	flagHuntPolicy  string
)

var huntCmd = &cobra.Command{
	Use:   "hunt <player> <location>",
	Short: "Fight a generated enemy in a location",
	Long: `Start a battle against an enemy generated for the given location.
The enemy's element matches the location and its level tracks yours.

Each turn, type an action:
  attack (a) - Basic physical attack
  defend (d) - Halve incoming damage this turn, recover stamina
  heal   (h) - Restore HP, costs stamina
  skill  (s) - Elemental skill, stronger but costs more stamina

Examples:
  kopequest hunt alice "Ember Fields" --element fire
  kopequest hunt alice "Frost Hollow"
  kopequest hunt alice "Storm Peaks" --enemy-ai aggressive`,
	Args: cobra.ExactArgs(2),
	Run:  runHunt,
}

func init() {
	huntCmd.Flags().StringVar(&flagHuntElement, "element", "", "Element for a newly created player")
	huntCmd.Flags().StringVar(&flagHuntPolicy, "enemy-ai", "balanced", "Enemy AI: balanced, aggressive, defensive")
}

func runHunt(cmd *cobra.Command, args []string) {
	playerName, locationName := args[0], args[1]

	cfg, store, err := openGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	loc, ok := cfg.Location(locationName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown location %q\n", locationName)
		fmt.Fprintln(os.Stderr, "Run 'kopequest locations' to see available locations.")
		os.Exit(1)
	}

	rec, err := loadOrCreatePlayer(store, cfg, playerName, flagHuntElement)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec.Level < loc.MinLevel {
		fmt.Fprintf(os.Stderr, "Error: %s requires level %d (you are level %d)\n",
			loc.Name, loc.MinLevel, rec.Level)
		os.Exit(1)
	}

	seed := resolveSeed()
	player := rec.Combatant()
	enemy := npc.New(seed).Generate(loc, rec.Level)
	policy := battle.NewPolicy(flagHuntPolicy, cfg.Combat, seed)
	session := battle.NewNPCSession(cfg.Combat, seed, player, enemy, policy)

	fmt.Printf("A level %d %s appears in %s!\n", enemy.Level, enemy.Name, loc.Name)
	printStanding(session.Combatant(battle.SideA), session.Combatant(battle.SideB))
	fmt.Println()

	names := map[battle.Side]string{
		battle.SideA: player.Name,
		battle.SideB: enemy.Name,
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Your action [attack/defend/heal/skill]: ")
		if !scanner.Scan() {
			fmt.Println("\nRetreating from battle.")
			session.Abort()
			break
		}
		action, err := battle.ParseAction(scanner.Text())
		if err != nil {
			fmt.Printf("Unknown action. Try attack, defend, heal or skill.\n")
			continue
		}

		report, err := session.Submit(battle.SideA, action)
		if err != nil {
			if errors.Is(err, battle.ErrSessionClosed) {
				break
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		printTurn(report.Record, names)
		printStanding(session.Combatant(battle.SideA), session.Combatant(battle.SideB))
		fmt.Println()

		if report.Status.Terminal() {
			break
		}
	}

	out, ok := session.Outcome()
	if !ok {
		return
	}
	// Location reward multipliers apply only to the player's winnings.
	if out.WinnerID == player.ID {
		out.XP = int(math.Round(float64(out.XP) * loc.XPMultiplier))
		out.Coins = int(math.Round(float64(out.Coins) * loc.CoinMultiplier))
	}
	printOutcome(out, map[string]string{player.ID: player.Name, enemy.ID: enemy.Name})

	persistPlayerOutcome(store, player.ID, session.Combatant(battle.SideA), out)
	if _, err := store.SaveBattle(out); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record battle: %v\n", err)
	}
}
