// Package battle implements the turn-based combat engine: combatants,
// action resolution, the per-encounter session state machine, NPC action
// policies, and reward computation.
package battle

import "github.com/toseph-here/Kope-Quest/internal/element"

// Combatant is the in-battle view of a participant. It is derived from a
// persistent player record (or generated for an NPC) at session start,
// mutated only by the resolver and the session, and discarded when the
// encounter ends.
type Combatant struct {
	ID      string // player id or NPC tag
	Name    string
	Element element.Element
	Level   int

	HP         int
	MaxHP      int
	Stamina    int
	MaxStamina int

	Attack       int
	Defense      int
	Agility      int
	ElementPower int

	// Defending holds only for the resolution of the opponent's next
	// attack against this combatant; the resolver clears it.
	Defending bool
}

// Alive reports whether the combatant can still fight.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// ApplyDamage subtracts damage, clamping HP at zero.
func (c *Combatant) ApplyDamage(n int) {
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
}

// RestoreHP adds HP up to MaxHP and returns the amount actually restored.
func (c *Combatant) RestoreHP(n int) int {
	if n < 0 {
		n = 0
	}
	restored := min(n, c.MaxHP-c.HP)
	c.HP += restored
	return restored
}

// SpendStamina removes stamina if the combatant has at least n, and
// reports whether the spend happened.
func (c *Combatant) SpendStamina(n int) bool {
	if c.Stamina < n {
		return false
	}
	c.Stamina -= n
	return true
}

// RestoreStamina adds stamina up to MaxStamina and returns the amount
// actually restored.
func (c *Combatant) RestoreStamina(n int) int {
	if n < 0 {
		n = 0
	}
	restored := min(n, c.MaxStamina-c.Stamina)
	c.Stamina += restored
	return restored
}

// HPFraction returns current HP as a fraction of max, used by policies.
func (c *Combatant) HPFraction() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP)
}

// StaminaFraction returns current stamina as a fraction of max.
func (c *Combatant) StaminaFraction() float64 {
	if c.MaxStamina <= 0 {
		return 0
	}
	return float64(c.Stamina) / float64(c.MaxStamina)
}
