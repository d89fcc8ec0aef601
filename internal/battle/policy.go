package battle

import (
	"math/rand"

	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
)

// Policy picks an action for a non-interactive combatant. Implementations
// must respect stamina budgets; the session still falls back to a basic
// Attack if a choice cannot be paid for.
type Policy interface {
	Name() string
	Choose(self, foe *Combatant) Action
}

// NewPolicy builds a policy by name: "aggressive", "balanced" or
// "defensive". Unknown names get the balanced policy.
func NewPolicy(name string, cfg config.Combat, seed int64) Policy {
	rng := rand.New(rand.NewSource(seed))
	switch name {
	case "aggressive":
		return &AggressivePolicy{cfg: cfg, rng: rng}
	case "defensive":
		return &DefensivePolicy{cfg: cfg, rng: rng}
	default:
		return &BalancedPolicy{cfg: cfg, rng: rng}
	}
}

// BalancedPolicy plays the all-rounder: heal when hurt, skill on favorable
// matchups with stamina to spare, defend to recover, otherwise attack.
type BalancedPolicy struct {
	cfg config.Combat
	rng *rand.Rand
}

func (p *BalancedPolicy) Name() string { return "balanced" }

func (p *BalancedPolicy) Choose(self, foe *Combatant) Action {
	if self.HPFraction() < 0.3 && self.Stamina >= p.cfg.HealStaminaCost && self.HP < self.MaxHP {
		return ActionHeal
	}

	if self.StaminaFraction() > 0.6 && self.Stamina >= p.cfg.SkillStaminaCost {
		if element.Effectiveness(self.Element, foe.Element) != element.TierWeak {
			return ActionSkill
		}
	}

	if self.StaminaFraction() < 0.3 {
		return ActionDefend
	}

	// Weighted towards attack.
	if p.rng.Intn(4) == 3 {
		return ActionDefend
	}
	return ActionAttack
}

// AggressivePolicy burns stamina on skills whenever it can and otherwise
// keeps swinging.
type AggressivePolicy struct {
	cfg config.Combat
	rng *rand.Rand
}

func (p *AggressivePolicy) Name() string { return "aggressive" }

func (p *AggressivePolicy) Choose(self, foe *Combatant) Action {
	if self.Stamina >= p.cfg.SkillStaminaCost {
		return ActionSkill
	}
	return ActionAttack
}

// DefensivePolicy prioritizes staying alive: heals earlier, defends more,
// and only commits to a skill on a clearly favorable matchup.
type DefensivePolicy struct {
	cfg config.Combat
	rng *rand.Rand
}

func (p *DefensivePolicy) Name() string { return "defensive" }

func (p *DefensivePolicy) Choose(self, foe *Combatant) Action {
	if self.HPFraction() < 0.5 && self.Stamina >= p.cfg.HealStaminaCost && self.HP < self.MaxHP {
		return ActionHeal
	}

	if self.StaminaFraction() < 0.5 {
		return ActionDefend
	}

	if self.Stamina >= p.cfg.SkillStaminaCost &&
		element.Effectiveness(self.Element, foe.Element) == element.TierEffective {
		return ActionSkill
	}

	if p.rng.Intn(2) == 0 {
		return ActionDefend
	}
	return ActionAttack
}
