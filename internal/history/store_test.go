package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/grimhallow/grimhallow/internal/class"
	"github.com/grimhallow/grimhallow/internal/combat"
	"github.com/grimhallow/grimhallow/internal/combatant"
	"github.com/grimhallow/grimhallow/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.HistoryConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "history.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "history.db")

	store, err := Open(config.HistoryConfig{Driver: "sqlite", SQLitePath: dbPath})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	for _, table := range []string{"combats", "death_news", "saves"} {
		var count int
		if err := store.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("Failed to query %s table: %v", table, err)
		}
	}
}

func TestTrackCombatRoundTrip(t *testing.T) {
	store := openTestStore(t)

	result := &combat.CombatResult{
		ID:               uuid.New(),
		Outcome:          combat.OutcomeVictory,
		Rounds:           4,
		DamageDealt:      62,
		DamageTaken:      18,
		DefeatedMonsters: []string{"Wolf", "Wolf"},
		XPEarned:         200,
		GoldEarned:       80,
		Drops:            []string{"wolf_pelt"},
	}
	if err := store.TrackCombat(result); err != nil {
		t.Fatalf("TrackCombat failed: %v", err)
	}

	records, err := store.RecentCombats(10)
	if err != nil {
		t.Fatalf("RecentCombats failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Got %d records, expected 1", len(records))
	}

	got := records[0]
	if got.ID != result.ID.String() {
		t.Errorf("ID = %q, expected %q", got.ID, result.ID.String())
	}
	if got.Outcome != "Victory" || got.Rounds != 4 {
		t.Errorf("Outcome/Rounds = %q/%d, expected Victory/4", got.Outcome, got.Rounds)
	}
	if got.DamageDealt != 62 || got.DamageTaken != 18 {
		t.Errorf("Damage = %d/%d, expected 62/18", got.DamageDealt, got.DamageTaken)
	}
	if len(got.Defeated) != 2 || got.Defeated[0] != "Wolf" {
		t.Errorf("Defeated = %v, expected two wolves", got.Defeated)
	}
	if len(got.Drops) != 1 || got.Drops[0] != "wolf_pelt" {
		t.Errorf("Drops = %v, expected [wolf_pelt]", got.Drops)
	}
}

func TestRecentCombatsEmptyListsStayNil(t *testing.T) {
	store := openTestStore(t)

	result := &combat.CombatResult{
		ID:      uuid.New(),
		Outcome: combat.OutcomePlayerEscaped,
		Rounds:  1,
	}
	if err := store.TrackCombat(result); err != nil {
		t.Fatalf("TrackCombat failed: %v", err)
	}

	records, err := store.RecentCombats(10)
	if err != nil {
		t.Fatalf("RecentCombats failed: %v", err)
	}
	if len(records[0].Defeated) != 0 || len(records[0].Drops) != 0 {
		t.Errorf("Empty lists round-tripped as %v / %v", records[0].Defeated, records[0].Drops)
	}
}

func TestDeathNewsOrder(t *testing.T) {
	store := openTestStore(t)

	if err := store.WriteDeathNews("Lyra", "Cave Troll"); err != nil {
		t.Fatalf("WriteDeathNews failed: %v", err)
	}
	if err := store.WriteDeathNews("Brute", "Lich King"); err != nil {
		t.Fatalf("WriteDeathNews failed: %v", err)
	}

	notices, err := store.RecentDeaths(10)
	if err != nil {
		t.Fatalf("RecentDeaths failed: %v", err)
	}
	if len(notices) != 2 {
		t.Fatalf("Got %d notices, expected 2", len(notices))
	}
	// Newest first
	if notices[0].Victim != "Brute" || notices[0].Slayer != "Lich King" {
		t.Errorf("First notice = %s/%s, expected Brute/Lich King",
			notices[0].Victim, notices[0].Slayer)
	}
}

func TestAutoSaveUpserts(t *testing.T) {
	store := openTestStore(t)

	hero := combatant.New("Hero", combatant.KindPlayer, class.Warrior, 3)
	hero.MaxHP = 80
	hero.HP = 80
	hero.Gold = 120
	hero.BankGold = 500

	if err := store.AutoSave(hero); err != nil {
		t.Fatalf("AutoSave failed: %v", err)
	}

	// Save again with changed fields; the row must be replaced, not duplicated.
	hero.HP = 40
	hero.Level = 4
	hero.Alignment = combatant.AlignEvil
	if err := store.AutoSave(hero); err != nil {
		t.Fatalf("Second AutoSave failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM saves").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Got %d save rows, expected 1", count)
	}

	save, err := store.LoadSave("Hero")
	if err != nil {
		t.Fatalf("LoadSave failed: %v", err)
	}
	if save == nil {
		t.Fatal("LoadSave returned nil for an existing save")
	}
	if save.HP != 40 || save.Level != 4 || save.Alignment != int(combatant.AlignEvil) {
		t.Errorf("Save = HP %d level %d alignment %d, expected 40/4/%d",
			save.HP, save.Level, save.Alignment, int(combatant.AlignEvil))
	}
	if save.Class != "warrior" {
		t.Errorf("Class = %q, expected warrior", save.Class)
	}
}

func TestLoadSaveMissingReturnsNil(t *testing.T) {
	store := openTestStore(t)

	save, err := store.LoadSave("Nobody")
	if err != nil {
		t.Fatalf("LoadSave failed: %v", err)
	}
	if save != nil {
		t.Errorf("Got %+v, expected nil for a missing save", save)
	}
}
