package battle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toseph-here/Kope-Quest/internal/element"
)

// Action is one of the four battle actions a side can take on its turn.
type Action int

const (
	ActionAttack Action = iota
	ActionDefend
	ActionHeal
	ActionSkill
)

// Per-call error conditions. None is fatal; all are recoverable by the caller.
var (
	// ErrInsufficientStamina means a Heal or Skill was attempted without
	// the required stamina. The session recovers by substituting a basic
	// Attack rather than skipping the turn.
	ErrInsufficientStamina = errors.New("battle: insufficient stamina")

	// ErrSessionClosed means an action was submitted against a session
	// that already reached a terminal status. No state is mutated.
	ErrSessionClosed = errors.New("battle: session closed")

	// ErrInvalidAction means an unrecognized action tag was submitted.
	ErrInvalidAction = errors.New("battle: invalid action")
)

// Valid reports whether a is a recognized action.
func (a Action) Valid() bool {
	return a >= ActionAttack && a <= ActionSkill
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "Attack"
	case ActionDefend:
		return "Defend"
	case ActionHeal:
		return "Heal"
	case ActionSkill:
		return "Skill"
	default:
		return "Unknown"
	}
}

// ParseAction converts an action name (case-insensitive, with short single
// letter aliases) to its Action value.
func ParseAction(name string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "attack", "a":
		return ActionAttack, nil
	case "defend", "d":
		return ActionDefend, nil
	case "heal", "h":
		return ActionHeal, nil
	case "skill", "s", "element":
		return ActionSkill, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, name)
	}
}

// ActionResult is the resolved effect of a single action within a turn.
type ActionResult struct {
	Side     Side
	Action   Action
	Damage   int
	Healed   int
	Spent    int // stamina spent
	Restored int // stamina restored
	Critical bool
	Tier     element.Tier
	// Forced marks an action that was converted to a basic Attack
	// because the submitted one could not be paid for.
	Forced bool
}

// TurnRecord is one entry of the session's action log: every action
// resolved during a single turn, in resolution order.
type TurnRecord struct {
	Turn    int
	Results []ActionResult
}
