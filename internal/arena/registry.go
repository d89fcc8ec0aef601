// Package arena pairs independent players into battles via short-lived
// challenge codes and keeps the bookkeeping for the sessions it creates.
package arena

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
)

// Join failure modes. All are per-call and leave no session behind.
var (
	ErrCodeNotFound = errors.New("arena: challenge code not found")
	ErrCodeExpired  = errors.New("arena: challenge code expired")
	ErrCodeConsumed = errors.New("arena: challenge code already consumed")
	ErrSelfJoin     = errors.New("arena: cannot join your own challenge")
)

// BattleRecordSaver persists finished battle outcomes. Decouples the
// registry from the storage package; can be nil.
type BattleRecordSaver interface {
	SaveBattleOutcome(out battle.Outcome) error
}

// challenge is one pending code. expiresAt and owner are immutable after
// creation; consumed is the per-code claim flag, so racing joiners contend
// on this entry alone rather than on the whole registry.
type challenge struct {
	code      string
	owner     battle.Combatant
	createdAt time.Time
	expiresAt time.Time
	consumed  atomic.Bool
}

// Registry owns challenge-code lifetime and tracks the PvP sessions it
// pairs up until they terminate.
type Registry struct {
	combat config.Combat
	arena  config.Arena
	logger *log.Logger
	saver  BattleRecordSaver

	// seed feeds new sessions' RNGs; overridable in tests.
	seed func() int64

	mu       sync.RWMutex
	codes    map[string]*challenge
	sessions map[string]*battle.Session

	done     chan struct{}
	doneOnce sync.Once
}

// NewRegistry creates a registry with the given tuning. logger and saver
// may be nil.
func NewRegistry(cfg config.Game, logger *log.Logger, saver BattleRecordSaver) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		combat:   cfg.Combat,
		arena:    cfg.Arena,
		logger:   logger,
		saver:    saver,
		seed:     func() int64 { return time.Now().UnixNano() },
		codes:    make(map[string]*challenge),
		sessions: make(map[string]*battle.Session),
		done:     make(chan struct{}),
	}
}

// Start begins the background cleanup sweep.
func (r *Registry) Start() {
	go r.cleanupLoop()
}

// Stop shuts the cleanup sweep down. Safe to call more than once.
func (r *Registry) Stop() {
	r.doneOnce.Do(func() { close(r.done) })
}

// CreateChallenge registers a pending challenge for the owner and returns
// the code to share with the opponent.
func (r *Registry) CreateChallenge(owner battle.Combatant) (string, error) {
	if owner.ID == "" {
		return "", errors.New("arena: challenge owner has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.generateUniqueCode()
	now := time.Now()
	r.codes[code] = &challenge{
		code:      code,
		owner:     owner,
		createdAt: now,
		expiresAt: now.Add(r.arena.ChallengeTTL()),
	}

	r.logger.Info("challenge created", "code", code, "owner", owner.ID)
	return code, nil
}

// Join consumes a challenge code and builds the PvP session pairing the
// owner's combatant with the joiner's. The claim is an atomic
// check-and-consume on the code's entry: of any number of racing joiners
// exactly one wins, the rest get ErrCodeConsumed.
func (r *Registry) Join(code string, joiner battle.Combatant) (*battle.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	r.mu.RLock()
	ch, ok := r.codes[code]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCodeNotFound
	}

	if ch.owner.ID == joiner.ID {
		return nil, ErrSelfJoin
	}
	if time.Now().After(ch.expiresAt) {
		return nil, ErrCodeExpired
	}

	if !ch.consumed.CompareAndSwap(false, true) {
		return nil, ErrCodeConsumed
	}

	session := battle.NewPvPSession(r.combat, r.seed(), ch.owner, joiner)

	r.mu.Lock()
	delete(r.codes, code)
	r.sessions[session.ID()] = session
	r.mu.Unlock()

	r.logger.Info("challenge joined",
		"code", code, "owner", ch.owner.ID, "joiner", joiner.ID, "battle", session.ID())
	return session, nil
}

// Session looks up an active session by its battle id.
func (r *Registry) Session(id string) (*battle.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// PendingCount returns the number of unconsumed challenge codes.
func (r *Registry) PendingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// SessionCount returns the number of tracked sessions.
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) cleanupLoop() {
	ticker := time.NewTicker(r.arena.CleanupPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.done:
			return
		}
	}
}

// Sweep removes expired codes, aborts sessions idle past their limit, and
// hands finished sessions' outcomes to the record saver. Exposed so an
// external scheduler can drive collection without the background loop.
func (r *Registry) Sweep() {
	now := time.Now()

	r.mu.Lock()
	var finished []*battle.Session
	for code, ch := range r.codes {
		if now.After(ch.expiresAt) {
			delete(r.codes, code)
			r.logger.Info("challenge expired", "code", code, "owner", ch.owner.ID)
		}
	}
	for id, s := range r.sessions {
		if !s.Status().Terminal() && now.Sub(s.LastActivity()) > r.arena.SessionIdle() {
			s.Abort()
			r.logger.Warn("session aborted for inactivity", "battle", id)
		}
		if s.Status().Terminal() {
			delete(r.sessions, id)
			finished = append(finished, s)
		}
	}
	r.mu.Unlock()

	for _, s := range finished {
		out, ok := s.Outcome()
		if !ok || r.saver == nil {
			continue
		}
		// Best effort; persistence retries are the collaborator's job.
		if err := r.saver.SaveBattleOutcome(out); err != nil {
			r.logger.Error("failed to save battle outcome", "battle", out.BattleID, "error", err)
		}
	}
}

// generateUniqueCode retries until the code is free. Must be called with
// the write lock held.
func (r *Registry) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := r.codes[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase alphanumeric code.
func generateJoinCode() string {
	b := make([]byte, 4) // 4 bytes = 32 bits, base32 encodes to 8 chars, we take 6
	_, err := rand.Read(b)
	if err != nil {
		// Fallback to timestamp-based
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	// Use base32 encoding (A-Z, 2-7), take first 6 chars
	code := base32.StdEncoding.EncodeToString(b)[:6]
	return strings.ToUpper(code)
}
