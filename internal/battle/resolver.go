package battle

import (
	"math"
	"math/rand"

	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
)

// Resolver computes the outcome of a single action between two combatants.
// It owns the session's RNG; variance and crit rolls are overridable fields
// so tests can pin them.
type Resolver struct {
	cfg config.Combat
	rng *rand.Rand

	// variance samples the damage spread factor in [VarianceMin, VarianceMax].
	variance func() float64
	// critRoll decides a critical hit given the total crit chance.
	critRoll func(chance float64) bool
}

// NewResolver creates a resolver seeded for deterministic replay.
func NewResolver(cfg config.Combat, seed int64) *Resolver {
	r := &Resolver{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	r.variance = func() float64 {
		return cfg.VarianceMin + r.rng.Float64()*(cfg.VarianceMax-cfg.VarianceMin)
	}
	r.critRoll = func(chance float64) bool {
		return r.rng.Float64() < chance
	}
	return r
}

// Resolve applies action by actor against target and returns what happened.
// The only rejection is ErrInsufficientStamina for Heal and Skill; in that
// case nothing is mutated. All HP and stamina mutations clamp to [0, max].
//
// Damage is computed in float64 and rounded half away from zero
// (math.Round) as the final step.
func (r *Resolver) Resolve(side Side, action Action, actor, target *Combatant) (ActionResult, error) {
	res := ActionResult{Side: side, Action: action, Tier: element.TierNormal}

	switch action {
	case ActionAttack:
		res.Tier = element.Effectiveness(actor.Element, target.Element)
		base := float64(actor.Attack) - float64(target.Defense)*0.5
		if base < 0 {
			base = 0
		}
		dmg := base * res.Tier.Multiplier() * r.variance()
		if target.Defending {
			dmg *= 1 - r.cfg.GuardFactor
			target.Defending = false
		}
		if r.critRoll(r.critChance(actor)) {
			dmg *= r.cfg.CritMultiplier
			res.Critical = true
		}
		res.Damage = int(math.Round(dmg))
		target.ApplyDamage(res.Damage)

	case ActionDefend:
		actor.Defending = true
		res.Restored = actor.RestoreStamina(r.cfg.DefendStamina)

	case ActionHeal:
		if !actor.SpendStamina(r.cfg.HealStaminaCost) {
			return res, ErrInsufficientStamina
		}
		res.Spent = r.cfg.HealStaminaCost
		res.Healed = actor.RestoreHP(r.cfg.HealBase + r.cfg.HealPerLevel*actor.Level)

	case ActionSkill:
		if !actor.SpendStamina(r.cfg.SkillStaminaCost) {
			return res, ErrInsufficientStamina
		}
		res.Spent = r.cfg.SkillStaminaCost
		res.Tier = element.Effectiveness(actor.Element, target.Element)
		base := float64(actor.ElementPower)*r.cfg.SkillMultiplier - float64(target.Defense)*0.5
		if base < 0 {
			base = 0
		}
		dmg := base * res.Tier.Multiplier() * r.variance()
		if target.Defending {
			dmg *= 1 - r.cfg.GuardFactor
			target.Defending = false
		}
		// Skills are already amplified and never crit.
		res.Damage = int(math.Round(dmg))
		target.ApplyDamage(res.Damage)

	default:
		return res, ErrInvalidAction
	}

	return res, nil
}

// critChance is the base chance plus an agility bonus, capped.
func (r *Resolver) critChance(actor *Combatant) float64 {
	chance := r.cfg.CritBase + float64(actor.Agility)/100
	return math.Min(chance, r.cfg.CritCap)
}
