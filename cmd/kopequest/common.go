package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
	"github.com/toseph-here/Kope-Quest/internal/storage"
)

// openGame loads the game config and opens the database. The caller owns
// the returned store and must close it.
func openGame() (config.Game, *storage.Store, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Game{}, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return config.Game{}, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, store, nil
}

// loadOrCreatePlayer fetches a player record, creating it from the starting
// stats when absent. Creation requires an element name; an empty elemName
// on a missing player is an error.
func loadOrCreatePlayer(store *storage.Store, cfg config.Game, name, elemName string) (*storage.PlayerRecord, error) {
	id := strings.ToLower(strings.TrimSpace(name))
	if id == "" {
		return nil, fmt.Errorf("player name cannot be empty")
	}

	rec, err := store.Player(id)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}

	if elemName == "" {
		return nil, fmt.Errorf("player %q does not exist; pass --element to create one (choices: %s)",
			name, strings.Join(elementNames(), ", "))
	}
	elem, err := element.Parse(elemName)
	if err != nil {
		return nil, err
	}

	created, err := store.CreatePlayer(id, name, elem, cfg.Starting)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Created new %s adventurer %q (level %d)\n", elem, name, created.Level)
	return &created, nil
}

func elementNames() []string {
	names := make([]string, 0, element.Count)
	for _, e := range element.All() {
		names = append(names, e.String())
	}
	return names
}

// printTurn renders one resolved turn, mapping sides to display names.
func printTurn(rec battle.TurnRecord, names map[battle.Side]string) {
	fmt.Printf("--- Turn %d ---\n", rec.Turn)
	for _, res := range rec.Results {
		who := names[res.Side]
		switch res.Action {
		case battle.ActionAttack, battle.ActionSkill:
			verb := "attacks"
			if res.Action == battle.ActionSkill {
				verb = "unleashes an elemental skill"
			}
			line := fmt.Sprintf("%s %s for %d damage", who, verb, res.Damage)
			if res.Critical {
				line += " (critical!)"
			}
			switch res.Tier {
			case element.TierEffective:
				line += " [effective]"
			case element.TierWeak:
				line += " [resisted]"
			}
			if res.Forced {
				line += " (out of stamina, fell back to a basic attack)"
			}
			fmt.Println(line)
		case battle.ActionDefend:
			fmt.Printf("%s braces for impact (+%d stamina)\n", who, res.Restored)
		case battle.ActionHeal:
			fmt.Printf("%s heals %d HP (-%d stamina)\n", who, res.Healed, res.Spent)
		}
	}
}

// printStanding shows the HP/stamina bars after a turn.
func printStanding(a, b battle.Combatant) {
	fmt.Printf("%s: %d/%d HP, %d/%d stamina | %s: %d/%d HP, %d/%d stamina\n",
		a.Name, a.HP, a.MaxHP, a.Stamina, a.MaxStamina,
		b.Name, b.HP, b.MaxHP, b.Stamina, b.MaxStamina)
}

// printOutcome renders a terminal outcome with names resolved.
func printOutcome(out battle.Outcome, names map[string]string) {
	fmt.Println()
	switch {
	case out.Aborted:
		fmt.Println("The battle was called off.")
	case out.WinnerID == "":
		if out.TimedOut {
			fmt.Printf("Neither side prevailed after %d turns. Draw.\n", out.TurnsTaken)
		} else {
			fmt.Println("Both combatants fell. Draw.")
		}
	default:
		winner := names[out.WinnerID]
		if winner == "" {
			winner = out.WinnerID
		}
		fmt.Printf("%s wins after %d turns! Rewards: %d XP, %d coins\n",
			winner, out.TurnsTaken, out.XP, out.Coins)
	}
}

// persistPlayerOutcome writes a player's side of a finished battle back to
// storage and reports any level ups.
func persistPlayerOutcome(store *storage.Store, playerID string, final battle.Combatant, out battle.Outcome) {
	before, err := store.Player(playerID)
	if err != nil || before == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load player %s for save: %v\n", playerID, err)
		return
	}
	after, err := store.ApplyOutcome(playerID, final, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save player %s: %v\n", playerID, err)
		return
	}
	if after.Level > before.Level {
		fmt.Printf("%s reached level %d! All stats increased.\n", after.Name, after.Level)
	}
}
