package battle

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toseph-here/Kope-Quest/internal/config"
)

// Side identifies one of the two parties in an encounter.
type Side int

const (
	SideA Side = iota
	SideB
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// String returns a human-readable side name.
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Status is the session state. Active is the only non-terminal state.
type Status int

const (
	StatusActive Status = iota
	StatusWonA
	StatusWonB
	StatusDraw
	StatusAborted
)

// Terminal reports whether the session accepts no further actions.
func (st Status) Terminal() bool {
	return st != StatusActive
}

// String returns a human-readable status name.
func (st Status) String() string {
	switch st {
	case StatusActive:
		return "Active"
	case StatusWonA:
		return "Won by A"
	case StatusWonB:
		return "Won by B"
	case StatusDraw:
		return "Draw"
	case StatusAborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Kind distinguishes solitary NPC encounters from player-vs-player ones.
type Kind int

const (
	KindNPC Kind = iota
	KindPvP
)

// Outcome is the finalized, persistence-ready summary of a terminated
// session.
type Outcome struct {
	BattleID   string
	Kind       Kind
	WinnerID   string // empty on draw or abort
	LoserID    string // empty on draw or abort
	XP         int    // winner's award
	Coins      int    // winner's award
	TurnsTaken int
	TimedOut   bool
	Aborted    bool
	Log        []TurnRecord
}

// TurnReport is returned by Submit. When Waiting is true the opponent has
// not yet acted this turn and nothing was resolved.
type TurnReport struct {
	Waiting bool
	Record  TurnRecord
	Status  Status
	// Outcome is set on the report that terminated the session.
	Outcome *Outcome
}

// Session is the state machine governing one encounter from start to
// terminal outcome. A mutex serializes concurrent submissions so at most
// one turn resolves at a time; a turn fires only once both sides' actions
// are present.
type Session struct {
	mu sync.Mutex

	id       string
	kind     Kind
	cfg      config.Combat
	resolver *Resolver

	a *Combatant
	b *Combatant

	// policy picks side B's action in NPC sessions.
	policy Policy

	turn     int
	status   Status
	timedOut bool
	pending  [2]*Action
	log      []TurnRecord

	lastActivity time.Time
}

// NewNPCSession starts a solitary encounter. Side A is the player; side B
// is non-interactive and acts through the given policy.
func NewNPCSession(cfg config.Combat, seed int64, player, npc Combatant, policy Policy) *Session {
	s := newSession(cfg, seed, player, npc, KindNPC)
	s.policy = policy
	return s
}

// NewPvPSession starts an encounter between two independent callers.
func NewPvPSession(cfg config.Combat, seed int64, a, b Combatant) *Session {
	return newSession(cfg, seed, a, b, KindPvP)
}

func newSession(cfg config.Combat, seed int64, a, b Combatant, kind Kind) *Session {
	a.Defending = false
	b.Defending = false
	return &Session{
		id:           uuid.NewString(),
		kind:         kind,
		cfg:          cfg,
		resolver:     NewResolver(cfg, seed),
		a:            &a,
		b:            &b,
		status:       StatusActive,
		lastActivity: time.Now(),
	}
}

// ID returns the session's battle identifier.
func (s *Session) ID() string {
	return s.id
}

// Kind returns the encounter kind.
func (s *Session) Kind() Kind {
	return s.kind
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Turn returns the number of turns resolved so far.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Combatant returns a copy of the given side's current in-battle state.
func (s *Session) Combatant(side Side) Combatant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.side(side)
}

// Log returns a copy of the action log, one entry per resolved turn.
func (s *Session) Log() []TurnRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TurnRecord, len(s.log))
	copy(out, s.log)
	return out
}

// LastActivity returns when the session last accepted a submission.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) side(side Side) *Combatant {
	if side == SideA {
		return s.a
	}
	return s.b
}

// Submit records one side's action for the current turn. In NPC sessions
// side B's action is chosen immediately by the policy and the turn
// resolves. In PvP sessions the turn resolves once both sides have
// submitted; until then the report carries Waiting. A side that resubmits
// before the turn fires replaces its pending action.
func (s *Session) Submit(side Side, action Action) (TurnReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return TurnReport{Status: s.status}, ErrSessionClosed
	}
	if !action.Valid() {
		return TurnReport{Status: s.status}, ErrInvalidAction
	}

	s.lastActivity = time.Now()
	act := action
	s.pending[side] = &act

	if s.kind == KindNPC && side == SideA {
		npcAct := s.policy.Choose(s.b, s.a)
		s.pending[SideB] = &npcAct
	}

	if s.pending[SideA] == nil || s.pending[SideB] == nil {
		return TurnReport{Waiting: true, Status: s.status}, nil
	}

	record := s.resolveTurn()
	report := TurnReport{Record: record, Status: s.status}
	if s.status.Terminal() {
		out := s.outcomeLocked()
		report.Outcome = &out
	}
	return report, nil
}

// resolveTurn runs both pending actions in agility order (tie goes to side
// A), updates HP, and evaluates termination. Both actions resolve even if
// the first one drops its target to zero; the winner is decided only after
// the full turn, which is how a mutual KO becomes a draw.
func (s *Session) resolveTurn() TurnRecord {
	s.turn++
	record := TurnRecord{Turn: s.turn}

	order := []Side{SideA, SideB}
	if s.b.Agility > s.a.Agility {
		order = []Side{SideB, SideA}
	}

	for _, side := range order {
		action := *s.pending[side]
		actor, target := s.side(side), s.side(side.Opponent())

		res, err := s.resolver.Resolve(side, action, actor, target)
		if err == ErrInsufficientStamina {
			// Explicit policy: fall back to a basic Attack rather
			// than burning the turn on a no-op.
			res, _ = s.resolver.Resolve(side, ActionAttack, actor, target)
			res.Forced = true
		}
		record.Results = append(record.Results, res)
	}

	s.pending[SideA] = nil
	s.pending[SideB] = nil
	s.log = append(s.log, record)

	switch {
	case !s.a.Alive() && !s.b.Alive():
		s.status = StatusDraw
	case !s.b.Alive():
		s.status = StatusWonA
	case !s.a.Alive():
		s.status = StatusWonB
	case s.turn >= s.cfg.MaxTurns:
		s.status = StatusDraw
		s.timedOut = true
	}

	return record
}

// Abort terminates a session from outside the turn flow, typically by the
// cleanup sweep when it has gone idle. No-op on already terminal sessions.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return
	}
	s.status = StatusAborted
}

// Outcome returns the finalized outcome record. The second return is false
// while the session is still active.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Terminal() {
		return Outcome{}, false
	}
	return s.outcomeLocked(), true
}

func (s *Session) outcomeLocked() Outcome {
	out := Outcome{
		BattleID:   s.id,
		Kind:       s.kind,
		TurnsTaken: s.turn,
		TimedOut:   s.timedOut,
		Aborted:    s.status == StatusAborted,
		Log:        s.log,
	}

	var winner, loser *Combatant
	switch s.status {
	case StatusWonA:
		winner, loser = s.a, s.b
	case StatusWonB:
		winner, loser = s.b, s.a
	default:
		return out
	}

	out.WinnerID = winner.ID
	out.LoserID = loser.ID
	out.XP = XPReward(winner.Level, loser.Level)
	out.Coins = CoinReward(winner.Level, loser.Level)
	if s.kind == KindPvP {
		out.XP = int(math.Round(float64(out.XP) * s.cfg.PvPWinnerBonus))
		out.Coins = int(math.Round(float64(out.Coins) * s.cfg.PvPWinnerBonus))
	}
	return out
}
