// Package storage provides SQLite-based persistence for player records and
// battle history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/toseph-here/Kope-Quest/internal/arena"
	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// PlayerRecord is the persistent view of a player. The battle engine reads
// it once at session creation (as a Combatant snapshot) and the outcome is
// written back once at termination.
type PlayerRecord struct {
	ID           string
	Name         string
	Element      element.Element
	Level        int
	XP           int
	HP           int
	MaxHP        int
	Stamina      int
	MaxStamina   int
	Attack       int
	Defense      int
	Agility      int
	ElementPower int
	Coins        int
	BattlesWon   int
	BattlesLost  int
	CreatedAt    time.Time
}

// Combatant derives the in-battle snapshot from the record.
func (p PlayerRecord) Combatant() battle.Combatant {
	return battle.Combatant{
		ID:           p.ID,
		Name:         p.Name,
		Element:      p.Element,
		Level:        p.Level,
		HP:           p.HP,
		MaxHP:        p.MaxHP,
		Stamina:      p.Stamina,
		MaxStamina:   p.MaxStamina,
		Attack:       p.Attack,
		Defense:      p.Defense,
		Agility:      p.Agility,
		ElementPower: p.ElementPower,
	}
}

// BattleRecord is one row of battle history.
type BattleRecord struct {
	ID        int64
	BattleID  string
	Kind      string // "npc" or "pvp"
	WinnerID  string // empty on draw/abort
	LoserID   string
	XP        int
	Coins     int
	Turns     int
	TimedOut  bool
	Aborted   bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			element TEXT NOT NULL,
			level INTEGER NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			hp INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			stamina INTEGER NOT NULL,
			max_stamina INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			agility INTEGER NOT NULL,
			element_power INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			battles_won INTEGER NOT NULL DEFAULT 0,
			battles_lost INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			winner_id TEXT,
			loser_id TEXT,
			xp INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			timed_out INTEGER NOT NULL DEFAULT 0,
			aborted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_winner ON battles(winner_id);
		CREATE INDEX IF NOT EXISTS idx_battles_loser ON battles(loser_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreatePlayer inserts a new player with the configured starting stats.
func (s *Store) CreatePlayer(id, name string, elem element.Element, starting config.StartingStats) (PlayerRecord, error) {
	rec := PlayerRecord{
		ID:           id,
		Name:         name,
		Element:      elem,
		Level:        starting.Level,
		HP:           starting.HP,
		MaxHP:        starting.MaxHP,
		Stamina:      starting.Stamina,
		MaxStamina:   starting.MaxStamina,
		Attack:       starting.Attack,
		Defense:      starting.Defense,
		Agility:      starting.Agility,
		ElementPower: starting.ElementPower,
		Coins:        starting.Coins,
	}

	_, err := s.db.Exec(
		`INSERT INTO players
		 (id, name, element, level, xp, hp, max_hp, stamina, max_stamina, attack, defense, agility, element_power, coins)
		 VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Element.String(), rec.Level,
		rec.HP, rec.MaxHP, rec.Stamina, rec.MaxStamina,
		rec.Attack, rec.Defense, rec.Agility, rec.ElementPower, rec.Coins,
	)
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot create player: %w", err)
	}
	return rec, nil
}

// Player retrieves a player by id. Returns (nil, nil) when absent.
func (s *Store) Player(id string) (*PlayerRecord, error) {
	var (
		rec       PlayerRecord
		elemName  string
		createdAt any
	)
	err := s.db.QueryRow(
		`SELECT id, name, element, level, xp, hp, max_hp, stamina, max_stamina,
		        attack, defense, agility, element_power, coins, battles_won, battles_lost, created_at
		 FROM players WHERE id = ?`,
		id,
	).Scan(
		&rec.ID, &rec.Name, &elemName, &rec.Level, &rec.XP,
		&rec.HP, &rec.MaxHP, &rec.Stamina, &rec.MaxStamina,
		&rec.Attack, &rec.Defense, &rec.Agility, &rec.ElementPower,
		&rec.Coins, &rec.BattlesWon, &rec.BattlesLost, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}

	rec.Element, err = element.Parse(elemName)
	if err != nil {
		return nil, fmt.Errorf("storage: player %s: %w", id, err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

// SavePlayer writes the mutable columns of a player record back.
func (s *Store) SavePlayer(rec PlayerRecord) error {
	_, err := s.db.Exec(
		`UPDATE players SET
		   level = ?, xp = ?, hp = ?, max_hp = ?, stamina = ?, max_stamina = ?,
		   attack = ?, defense = ?, agility = ?, element_power = ?,
		   coins = ?, battles_won = ?, battles_lost = ?
		 WHERE id = ?`,
		rec.Level, rec.XP, rec.HP, rec.MaxHP, rec.Stamina, rec.MaxStamina,
		rec.Attack, rec.Defense, rec.Agility, rec.ElementPower,
		rec.Coins, rec.BattlesWon, rec.BattlesLost, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save player: %w", err)
	}
	return nil
}

// Stat increase applied to every stat on level up.
const levelUpStatIncrease = 5

// ApplyOutcome folds a finished battle into the player's record: HP
// writeback, awards for the winner, win/loss counters, and any level ups
// the new XP total unlocks (each raises every stat by a fixed amount).
// Draws and aborts only write HP back.
func (s *Store) ApplyOutcome(playerID string, final battle.Combatant, out battle.Outcome) (*PlayerRecord, error) {
	rec, err := s.Player(playerID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("storage: unknown player %s", playerID)
	}

	rec.HP = final.HP
	rec.Stamina = final.Stamina

	switch playerID {
	case out.WinnerID:
		rec.XP += out.XP
		rec.Coins += out.Coins
		rec.BattlesWon++
	case out.LoserID:
		rec.BattlesLost++
	}

	for rec.XP >= battle.XPForLevel(rec.Level) {
		rec.XP -= battle.XPForLevel(rec.Level)
		rec.Level++
		rec.MaxHP += levelUpStatIncrease
		rec.MaxStamina += levelUpStatIncrease
		rec.Attack += levelUpStatIncrease
		rec.Defense += levelUpStatIncrease
		rec.Agility += levelUpStatIncrease
		rec.ElementPower += levelUpStatIncrease
	}

	if err := s.SavePlayer(*rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveBattle records the outcome of a finished battle.
// Returns the ID of the inserted record.
func (s *Store) SaveBattle(out battle.Outcome) (int64, error) {
	kind := "npc"
	if out.Kind == battle.KindPvP {
		kind = "pvp"
	}

	res, err := s.db.Exec(
		`INSERT INTO battles
		 (battle_id, kind, winner_id, loser_id, xp, coins, turns, timed_out, aborted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.BattleID, kind, out.WinnerID, out.LoserID,
		out.XP, out.Coins, out.TurnsTaken,
		boolToInt(out.TimedOut), boolToInt(out.Aborted),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBattles retrieves the most recent battle records.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryBattles(
		`SELECT id, battle_id, kind, winner_id, loser_id, xp, coins, turns, timed_out, aborted, created_at
		 FROM battles ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// PlayerBattles retrieves battle history for a specific player.
func (s *Store) PlayerBattles(playerID string, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryBattles(
		`SELECT id, battle_id, kind, winner_id, loser_id, xp, coins, turns, timed_out, aborted, created_at
		 FROM battles WHERE winner_id = ? OR loser_id = ?
		 ORDER BY id DESC LIMIT ?`,
		playerID, playerID, limit,
	)
}

func (s *Store) queryBattles(query string, args ...any) ([]BattleRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []BattleRecord
	for rows.Next() {
		var (
			rec               BattleRecord
			winner, loser     sql.NullString
			timedOut, aborted int
			createdAt         any
		)
		if err := rows.Scan(
			&rec.ID, &rec.BattleID, &rec.Kind, &winner, &loser,
			&rec.XP, &rec.Coins, &rec.Turns, &timedOut, &aborted, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.WinnerID = winner.String
		rec.LoserID = loser.String
		rec.TimedOut = timedOut != 0
		rec.Aborted = aborted != 0
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SaveBattleOutcome implements arena.BattleRecordSaver, letting the
// challenge registry persist results without a storage dependency.
func (s *Store) SaveBattleOutcome(out battle.Outcome) error {
	_, err := s.SaveBattle(out)
	return err
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ arena.BattleRecordSaver = (*Store)(nil)
