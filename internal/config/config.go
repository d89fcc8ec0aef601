// Package config provides YAML-based game configuration loading for the
// battle engine: combat tuning, arena settings, and location tables.
package config

import (
	"strings"
	"time"

	"github.com/toseph-here/Kope-Quest/internal/element"
)

// Game is the root configuration object.
type Game struct {
	Combat    Combat        `yaml:"combat"`
	Arena     Arena         `yaml:"arena"`
	Locations []Location    `yaml:"locations"`
	Starting  StartingStats `yaml:"starting_stats"`
}

// Combat defines the damage and resource tuning knobs.
type Combat struct {
	HealStaminaCost  int     `yaml:"heal_stamina_cost"`
	SkillStaminaCost int     `yaml:"skill_stamina_cost"`
	DefendStamina    int     `yaml:"defend_stamina_gain"`
	HealBase         int     `yaml:"heal_base"`
	HealPerLevel     int     `yaml:"heal_per_level"`
	CritBase         float64 `yaml:"crit_base_chance"`
	CritCap          float64 `yaml:"crit_max_chance"`
	CritMultiplier   float64 `yaml:"crit_multiplier"`
	GuardFactor      float64 `yaml:"guard_factor"`
	SkillMultiplier  float64 `yaml:"skill_multiplier"`
	VarianceMin      float64 `yaml:"variance_min"`
	VarianceMax      float64 `yaml:"variance_max"`
	MaxTurns         int     `yaml:"max_turns"`
	PvPWinnerBonus   float64 `yaml:"pvp_winner_bonus"`
}

// Arena defines challenge-code and session lifetime settings.
// Durations are expressed in seconds to keep the YAML plain.
type Arena struct {
	ChallengeTTLSecs  int `yaml:"challenge_ttl_secs"`
	CleanupPeriodSecs int `yaml:"cleanup_period_secs"`
	SessionIdleSecs   int `yaml:"session_idle_secs"`
}

// ChallengeTTL returns how long a challenge code stays joinable.
func (a Arena) ChallengeTTL() time.Duration {
	return time.Duration(a.ChallengeTTLSecs) * time.Second
}

// CleanupPeriod returns how often the registry sweeps expired entries.
func (a Arena) CleanupPeriod() time.Duration {
	return time.Duration(a.CleanupPeriodSecs) * time.Second
}

// SessionIdle returns how long an inactive session survives before it is
// aborted by the cleanup sweep.
func (a Arena) SessionIdle() time.Duration {
	return time.Duration(a.SessionIdleSecs) * time.Second
}

// Location describes one hunting ground: its element, the level band its
// enemies spawn in, and the enemy name pool.
type Location struct {
	Name           string          `yaml:"name"`
	Element        element.Element `yaml:"element"`
	MinLevel       int             `yaml:"min_level"`
	MaxLevel       int             `yaml:"max_level"`
	Enemies        []string        `yaml:"enemies"`
	XPMultiplier   float64         `yaml:"xp_multiplier"`
	CoinMultiplier float64         `yaml:"coin_multiplier"`
	Description    string          `yaml:"description"`
}

// StartingStats are the stats a freshly created player record gets.
type StartingStats struct {
	Level        int `yaml:"level"`
	HP           int `yaml:"hp"`
	MaxHP        int `yaml:"max_hp"`
	Stamina      int `yaml:"stamina"`
	MaxStamina   int `yaml:"max_stamina"`
	Attack       int `yaml:"attack"`
	Defense      int `yaml:"defense"`
	Agility      int `yaml:"agility"`
	ElementPower int `yaml:"element_power"`
	Coins        int `yaml:"coins"`
}

// Location looks up a location by name, case-insensitively.
func (g Game) Location(name string) (Location, bool) {
	for _, loc := range g.Locations {
		if strings.EqualFold(loc.Name, name) {
			return loc, true
		}
	}
	return Location{}, false
}
