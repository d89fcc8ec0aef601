// Package element defines the eight-element cycle and the effectiveness
// lookup that drives damage multipliers in combat.
package element

import (
	"fmt"
	"strings"
)

// Element is one of the eight elements. The declaration order is the cycle
// order: each element beats the next one in the cycle, wrapping around.
type Element int

const (
	Fire Element = iota
	Ice
	Lightning
	Water
	Earth
	Wind
	Shadow
	Light
)

// Count is the number of elements in the cycle.
const Count = 8

// Tier classifies an attack's element matchup.
type Tier int

const (
	TierNormal Tier = iota
	TierEffective
	TierWeak
)

// Damage multipliers per tier.
const (
	MultiplierEffective = 1.5
	MultiplierNormal    = 1.0
	MultiplierWeak      = 0.8
)

var names = [Count]string{"Fire", "Ice", "Lightning", "Water", "Earth", "Wind", "Shadow", "Light"}

// String returns the element's display name.
func (e Element) String() string {
	if e < 0 || e >= Count {
		return "Unknown"
	}
	return names[e]
}

// Valid reports whether e is one of the eight elements.
func (e Element) Valid() bool {
	return e >= 0 && e < Count
}

// Next returns the element that follows e in the cycle, wrapping from
// Light back to Fire.
func (e Element) Next() Element {
	return (e + 1) % Count
}

// Parse converts an element name (case-insensitive) to its Element value.
func Parse(name string) (Element, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("element: unknown element %q", name)
}

// All returns every element in cycle order.
func All() []Element {
	out := make([]Element, Count)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// MarshalYAML encodes the element as its name.
func (e Element) MarshalYAML() (any, error) {
	return e.String(), nil
}

// UnmarshalYAML decodes an element from its name.
func (e *Element) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Effectiveness classifies attacker's matchup against defender.
// The attacker has the edge exactly when the defender is the next element
// in the cycle; the inverse matchup is weak; everything else is neutral,
// including mirror matchups.
func Effectiveness(attacker, defender Element) Tier {
	switch {
	case attacker.Next() == defender:
		return TierEffective
	case defender.Next() == attacker:
		return TierWeak
	default:
		return TierNormal
	}
}

// Multiplier returns the damage multiplier for a tier.
func (t Tier) Multiplier() float64 {
	switch t {
	case TierEffective:
		return MultiplierEffective
	case TierWeak:
		return MultiplierWeak
	default:
		return MultiplierNormal
	}
}

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierEffective:
		return "Effective"
	case TierWeak:
		return "Weak"
	default:
		return "Normal"
	}
}
