package config

import (
	_ "embed"

	"github.com/toseph-here/Kope-Quest/internal/element"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGame returns the hardcoded default configuration. Used as the last
// fallback if the embedded YAML cannot be parsed.
func DefaultGame() Game {
	return Game{
		Combat: Combat{
			HealStaminaCost:  10,
			SkillStaminaCost: 15,
			DefendStamina:    5,
			HealBase:         15,
			HealPerLevel:     8,
			CritBase:         0.1,
			CritCap:          0.3,
			CritMultiplier:   1.5,
			GuardFactor:      0.5,
			SkillMultiplier:  1.3,
			VarianceMin:      0.8,
			VarianceMax:      1.2,
			MaxTurns:         50,
			PvPWinnerBonus:   1.5,
		},
		Arena: Arena{
			ChallengeTTLSecs:  300,
			CleanupPeriodSecs: 30,
			SessionIdleSecs:   1800,
		},
		Starting: StartingStats{
			Level:        1,
			HP:           100,
			MaxHP:        100,
			Stamina:      50,
			MaxStamina:   50,
			Attack:       25,
			Defense:      20,
			Agility:      15,
			ElementPower: 30,
			Coins:        100,
		},
		Locations: []Location{
			{
				Name:           "Burning Volcano",
				Element:        element.Fire,
				MinLevel:       1,
				MaxLevel:       5,
				Enemies:        []string{"Flame Sprite", "Fire Elemental", "Inferno Beast", "Lava Golem"},
				XPMultiplier:   1.0,
				CoinMultiplier: 1.0,
			},
		},
	}
}
