// Package npc generates computer-controlled combatants for a location and
// level band.
package npc

import (
	"fmt"
	"math/rand"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
)

// Base stat growth per enemy level.
const (
	baseHP           = 80
	hpPerLevel       = 8
	baseStamina      = 40
	staminaPerLevel  = 4
	baseAttack       = 20
	attackPerLevel   = 3
	baseDefense      = 15
	defensePerLevel  = 2
	baseAgility      = 10
	agilityPerLevel  = 2
	basePower        = 25
	powerPerLevel    = 3
	statVarianceSpan = 0.15 // stats roll within ±15%
)

// Generator produces combatants for NPC encounters. Shape is deterministic
// for a location and player level; the exact roll depends on the seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a seeded generator.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate builds an enemy for the given location. The enemy's element is
// always the location's element, its name comes from the location pool, and
// its level lands near the player's, clamped into the location band.
func (g *Generator) Generate(loc config.Location, playerLevel int) battle.Combatant {
	level := g.rollLevel(loc, playerLevel)

	variance := 1 - statVarianceSpan + g.rng.Float64()*2*statVarianceSpan
	roll := func(base, perLevel int) int {
		return int(float64(base+perLevel*level) * variance)
	}

	hp := roll(baseHP, hpPerLevel)
	stamina := roll(baseStamina, staminaPerLevel)

	name := "Unknown Enemy"
	if len(loc.Enemies) > 0 {
		name = loc.Enemies[g.rng.Intn(len(loc.Enemies))]
	}

	return battle.Combatant{
		ID:           fmt.Sprintf("npc:%s:%d", name, level),
		Name:         name,
		Element:      loc.Element,
		Level:        level,
		HP:           hp,
		MaxHP:        hp,
		Stamina:      stamina,
		MaxStamina:   stamina,
		Attack:       roll(baseAttack, attackPerLevel),
		Defense:      roll(baseDefense, defensePerLevel),
		Agility:      roll(baseAgility, agilityPerLevel),
		ElementPower: roll(basePower, powerPerLevel),
	}
}

// rollLevel samples an enemy level within one of the player's, clamped to
// the location's band.
func (g *Generator) rollLevel(loc config.Location, playerLevel int) int {
	level := playerLevel + g.rng.Intn(3) - 1
	if level < loc.MinLevel {
		level = loc.MinLevel
	}
	if level > loc.MaxLevel {
		level = loc.MaxLevel
	}
	if level < 1 {
		level = 1
	}
	return level
}
