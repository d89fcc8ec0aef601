package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
	"github.com/toseph-here/Kope-Quest/internal/npc"
)

var (
	flagSimLocationA string
	flagSimLocationB string
	flagSimPolicyA   string
	flagSimPolicyB   string
	flagSimLevel     int
	flagSimQuiet     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Auto-battle between two AI policies",
	Long: `Pit two AI-driven combatants against each other and watch the fight
play out. Each side is a generated enemy from a location, so elements
and stats follow the location tables.

Useful for checking balance: run with --seed for a reproducible fight.

Examples:
  kopequest simulate
  kopequest simulate --policy-a aggressive --policy-b defensive
  kopequest simulate --location-a "Ember Fields" --location-b "Frost Hollow" --level 5
  kopequest simulate --seed 42 --quiet`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimLocationA, "location-a", "", "Location generating side A (default: first)")
	simulateCmd.Flags().StringVar(&flagSimLocationB, "location-b", "", "Location generating side B (default: second)")
	simulateCmd.Flags().StringVar(&flagSimPolicyA, "policy-a", "balanced", "Side A policy: balanced, aggressive, defensive")
	simulateCmd.Flags().StringVar(&flagSimPolicyB, "policy-b", "balanced", "Side B policy: balanced, aggressive, defensive")
	simulateCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level both combatants are generated around")
	simulateCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Only print the outcome")
}

func runSimulate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Locations) < 2 {
		fmt.Fprintln(os.Stderr, "Error: config needs at least two locations")
		os.Exit(1)
	}

	locA, locB := cfg.Locations[0], cfg.Locations[1]
	if flagSimLocationA != "" {
		var ok bool
		if locA, ok = cfg.Location(flagSimLocationA); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown location %q\n", flagSimLocationA)
			os.Exit(1)
		}
	}
	if flagSimLocationB != "" {
		var ok bool
		if locB, ok = cfg.Location(flagSimLocationB); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown location %q\n", flagSimLocationB)
			os.Exit(1)
		}
	}

	seed := resolveSeed()
	gen := npc.New(seed)
	a := gen.Generate(locA, flagSimLevel)
	b := gen.Generate(locB, flagSimLevel)
	policyA := battle.NewPolicy(flagSimPolicyA, cfg.Combat, seed)
	policyB := battle.NewPolicy(flagSimPolicyB, cfg.Combat, seed+1)

	fmt.Printf("%s (%s, level %d, %s) vs %s (%s, level %d, %s)\n",
		a.Name, a.Element, a.Level, policyA.Name(),
		b.Name, b.Element, b.Level, policyB.Name())
	fmt.Printf("Matchup: %s hits at %s, %s hits at %s\n\n",
		a.Name, element.Effectiveness(a.Element, b.Element),
		b.Name, element.Effectiveness(b.Element, a.Element))

	session := battle.NewPvPSession(cfg.Combat, seed, a, b)
	out := battle.Simulate(session, policyA, policyB)

	if !flagSimQuiet {
		names := map[battle.Side]string{battle.SideA: a.Name, battle.SideB: b.Name}
		for _, rec := range out.Log {
			printTurn(rec, names)
		}
	}
	printOutcome(out, map[string]string{a.ID: a.Name, b.ID: b.Name})
}
