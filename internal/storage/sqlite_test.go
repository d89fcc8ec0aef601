package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/toseph-here/Kope-Quest/internal/battle"
	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testStarting() config.StartingStats {
	return config.DefaultGame().Starting
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestCreateAndRetrievePlayer(t *testing.T) {
	store := testStore(t)
	starting := testStarting()

	created, err := store.CreatePlayer("p1", "Alice", element.Fire, starting)
	if err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}
	if created.Level != starting.Level {
		t.Errorf("Expected level %d, got %d", starting.Level, created.Level)
	}

	rec, err := store.Player("p1")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected player, got nil")
	}
	if rec.Name != "Alice" {
		t.Errorf("Expected name Alice, got %q", rec.Name)
	}
	if rec.Element != element.Fire {
		t.Errorf("Expected element fire, got %v", rec.Element)
	}
	if rec.HP != starting.HP || rec.MaxHP != starting.MaxHP {
		t.Errorf("HP = %d/%d, want %d/%d", rec.HP, rec.MaxHP, starting.HP, starting.MaxHP)
	}
	if rec.Coins != starting.Coins {
		t.Errorf("Expected %d coins, got %d", starting.Coins, rec.Coins)
	}
	if rec.XP != 0 || rec.BattlesWon != 0 || rec.BattlesLost != 0 {
		t.Errorf("New player should have zero XP and battle counters")
	}
}

func TestPlayerNotFound(t *testing.T) {
	store := testStore(t)

	rec, err := store.Player("ghost")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("Expected nil for unknown player, got %+v", rec)
	}
}

func TestSavePlayer(t *testing.T) {
	store := testStore(t)

	if _, err := store.CreatePlayer("p1", "Alice", element.Water, testStarting()); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	rec, err := store.Player("p1")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}

	rec.HP = 42
	rec.Coins += 77
	rec.BattlesWon = 3
	if err := store.SavePlayer(*rec); err != nil {
		t.Fatalf("SavePlayer() failed: %v", err)
	}

	got, err := store.Player("p1")
	if err != nil {
		t.Fatalf("Player() failed: %v", err)
	}
	if got.HP != 42 {
		t.Errorf("Expected HP 42, got %d", got.HP)
	}
	if got.Coins != rec.Coins {
		t.Errorf("Expected %d coins, got %d", rec.Coins, got.Coins)
	}
	if got.BattlesWon != 3 {
		t.Errorf("Expected 3 wins, got %d", got.BattlesWon)
	}
}

func TestCombatantSnapshot(t *testing.T) {
	store := testStore(t)
	starting := testStarting()

	rec, err := store.CreatePlayer("p1", "Alice", element.Shadow, starting)
	if err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	c := rec.Combatant()
	if c.ID != "p1" || c.Name != "Alice" {
		t.Errorf("Snapshot identity mismatch: %s/%s", c.ID, c.Name)
	}
	if c.Element != element.Shadow {
		t.Errorf("Expected shadow, got %v", c.Element)
	}
	if c.Attack != starting.Attack || c.Defense != starting.Defense {
		t.Errorf("Snapshot stats mismatch")
	}
	if c.Defending {
		t.Error("Snapshot should not start defending")
	}
}

func TestApplyOutcomeWinner(t *testing.T) {
	store := testStore(t)

	if _, err := store.CreatePlayer("p1", "Alice", element.Fire, testStarting()); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	final := battle.Combatant{ID: "p1", HP: 61, Stamina: 20}
	out := battle.Outcome{
		BattleID:   "b1",
		Kind:       battle.KindNPC,
		WinnerID:   "p1",
		LoserID:    "npc:Ember Fields:1",
		XP:         40,
		Coins:      20,
		TurnsTaken: 5,
	}

	rec, err := store.ApplyOutcome("p1", final, out)
	if err != nil {
		t.Fatalf("ApplyOutcome() failed: %v", err)
	}
	if rec.HP != 61 || rec.Stamina != 20 {
		t.Errorf("HP/stamina writeback mismatch: %d/%d", rec.HP, rec.Stamina)
	}
	if rec.XP != 40 {
		t.Errorf("Expected 40 XP, got %d", rec.XP)
	}
	if rec.Coins != testStarting().Coins+20 {
		t.Errorf("Expected %d coins, got %d", testStarting().Coins+20, rec.Coins)
	}
	if rec.BattlesWon != 1 || rec.BattlesLost != 0 {
		t.Errorf("Expected 1-0 record, got %d-%d", rec.BattlesWon, rec.BattlesLost)
	}
	if rec.Level != 1 {
		t.Errorf("40 XP should not level up, got level %d", rec.Level)
	}
}

func TestApplyOutcomeLoser(t *testing.T) {
	store := testStore(t)
	starting := testStarting()

	if _, err := store.CreatePlayer("p1", "Alice", element.Fire, starting); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	final := battle.Combatant{ID: "p1", HP: 0, Stamina: 5}
	out := battle.Outcome{
		BattleID: "b1",
		Kind:     battle.KindNPC,
		WinnerID: "npc:Ember Fields:1",
		LoserID:  "p1",
		XP:       40,
		Coins:    20,
	}

	rec, err := store.ApplyOutcome("p1", final, out)
	if err != nil {
		t.Fatalf("ApplyOutcome() failed: %v", err)
	}
	if rec.XP != 0 {
		t.Errorf("Loser should gain no XP, got %d", rec.XP)
	}
	if rec.Coins != starting.Coins {
		t.Errorf("Loser should gain no coins, got %d", rec.Coins)
	}
	if rec.BattlesWon != 0 || rec.BattlesLost != 1 {
		t.Errorf("Expected 0-1 record, got %d-%d", rec.BattlesWon, rec.BattlesLost)
	}
}

func TestApplyOutcomeLevelUp(t *testing.T) {
	store := testStore(t)
	starting := testStarting()

	if _, err := store.CreatePlayer("p1", "Alice", element.Fire, starting); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	// Level 1 needs 100 XP; award enough for exactly one level up
	final := battle.Combatant{ID: "p1", HP: 80, Stamina: 30}
	out := battle.Outcome{
		BattleID: "b1",
		Kind:     battle.KindNPC,
		WinnerID: "p1",
		LoserID:  "npc:x:5",
		XP:       130,
		Coins:    50,
	}

	rec, err := store.ApplyOutcome("p1", final, out)
	if err != nil {
		t.Fatalf("ApplyOutcome() failed: %v", err)
	}
	if rec.Level != 2 {
		t.Errorf("Expected level 2, got %d", rec.Level)
	}
	if rec.XP != 30 {
		t.Errorf("Expected 30 leftover XP, got %d", rec.XP)
	}
	if rec.MaxHP != starting.MaxHP+levelUpStatIncrease {
		t.Errorf("Expected max HP %d, got %d", starting.MaxHP+levelUpStatIncrease, rec.MaxHP)
	}
	if rec.Attack != starting.Attack+levelUpStatIncrease {
		t.Errorf("Expected attack %d, got %d", starting.Attack+levelUpStatIncrease, rec.Attack)
	}
}

func TestApplyOutcomeDraw(t *testing.T) {
	store := testStore(t)
	starting := testStarting()

	if _, err := store.CreatePlayer("p1", "Alice", element.Fire, starting); err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	final := battle.Combatant{ID: "p1", HP: 10, Stamina: 0}
	out := battle.Outcome{BattleID: "b1", Kind: battle.KindNPC, TimedOut: true, TurnsTaken: 50}

	rec, err := store.ApplyOutcome("p1", final, out)
	if err != nil {
		t.Fatalf("ApplyOutcome() failed: %v", err)
	}
	if rec.HP != 10 {
		t.Errorf("Draw should still write HP back, got %d", rec.HP)
	}
	if rec.XP != 0 || rec.Coins != starting.Coins {
		t.Errorf("Draw should award nothing, got XP %d coins %d", rec.XP, rec.Coins)
	}
	if rec.BattlesWon != 0 || rec.BattlesLost != 0 {
		t.Errorf("Draw should not touch counters, got %d-%d", rec.BattlesWon, rec.BattlesLost)
	}
}

func TestSaveAndListBattles(t *testing.T) {
	store := testStore(t)

	outcomes := []battle.Outcome{
		{BattleID: "b1", Kind: battle.KindNPC, WinnerID: "p1", LoserID: "npc:a:1", XP: 20, Coins: 10, TurnsTaken: 3},
		{BattleID: "b2", Kind: battle.KindPvP, WinnerID: "p2", LoserID: "p1", XP: 60, Coins: 30, TurnsTaken: 8},
		{BattleID: "b3", Kind: battle.KindNPC, WinnerID: "p3", LoserID: "npc:b:2", XP: 40, Coins: 20, TurnsTaken: 6},
	}
	for _, out := range outcomes {
		if _, err := store.SaveBattle(out); err != nil {
			t.Fatalf("SaveBattle(%s) failed: %v", out.BattleID, err)
		}
	}

	recent, err := store.RecentBattles(10)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 battles, got %d", len(recent))
	}
	// Most recent first
	if recent[0].BattleID != "b3" {
		t.Errorf("Expected b3 first, got %s", recent[0].BattleID)
	}
	if recent[1].Kind != "pvp" {
		t.Errorf("Expected pvp kind, got %s", recent[1].Kind)
	}

	mine, err := store.PlayerBattles("p1", 10)
	if err != nil {
		t.Fatalf("PlayerBattles() failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("Expected 2 battles for p1, got %d", len(mine))
	}
	if mine[0].BattleID != "b2" || mine[1].BattleID != "b1" {
		t.Errorf("Unexpected order: %s, %s", mine[0].BattleID, mine[1].BattleID)
	}
}

func TestRecentBattlesLimit(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 5; i++ {
		out := battle.Outcome{
			BattleID: string(rune('a' + i)),
			Kind:     battle.KindNPC,
			WinnerID: "p1",
		}
		if _, err := store.SaveBattle(out); err != nil {
			t.Fatalf("SaveBattle() failed: %v", err)
		}
	}

	recent, err := store.RecentBattles(2)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Expected 2 battles, got %d", len(recent))
	}
}

func TestSaveBattleOutcomeSaver(t *testing.T) {
	store := testStore(t)

	out := battle.Outcome{BattleID: "b1", Kind: battle.KindPvP, WinnerID: "p1", LoserID: "p2", Aborted: true}
	if err := store.SaveBattleOutcome(out); err != nil {
		t.Fatalf("SaveBattleOutcome() failed: %v", err)
	}

	recent, err := store.RecentBattles(1)
	if err != nil {
		t.Fatalf("RecentBattles() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 battle, got %d", len(recent))
	}
	if !recent[0].Aborted {
		t.Error("Expected aborted flag to round-trip")
	}
}
