package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/isotopegame/isotope/internal/econ"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	store.Close()
}

func TestRecordPrestige(t *testing.T) {
	store := newTestStore(t)

	id, err := store.RecordPrestige(1, econ.FromUnits(1200), econ.FromUnits(5000))
	if err != nil {
		t.Fatalf("RecordPrestige failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero insert ID")
	}

	entries, err := store.Prestiges(10)
	if err != nil {
		t.Fatalf("Prestiges failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != 1 || e.CashSpent != 1200 || e.TotalEarnings != 5000 {
		t.Errorf("entry = %+v", e)
	}
}

func TestRecordSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RecordSession(95*time.Second, econ.FromFloat(321.5), econ.FromUnits(700), 2)
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	entries, err := store.Sessions(10)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.DurationSecs != 95 || e.CashEnd != 321.5 || e.Achievements != 2 {
		t.Errorf("entry = %+v", e)
	}
}

func TestHistoryOrderAndLimit(t *testing.T) {
	store := newTestStore(t)

	for level := 1; level <= 5; level++ {
		if _, err := store.RecordPrestige(level, econ.FromUnits(1000), econ.FromUnits(int64(level)*1000)); err != nil {
			t.Fatalf("RecordPrestige %d failed: %v", level, err)
		}
	}

	entries, err := store.Prestiges(3)
	if err != nil {
		t.Fatalf("Prestiges failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	// Newest first.
	if entries[0].Level != 5 || entries[2].Level != 3 {
		t.Errorf("order wrong: levels %d, %d, %d",
			entries[0].Level, entries[1].Level, entries[2].Level)
	}
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats on empty store failed: %v", err)
	}
	if stats.SessionCount != 0 || stats.PrestigeCount != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.RecordSession(60*time.Second, econ.FromUnits(100), econ.FromUnits(400), 1)
	store.RecordSession(120*time.Second, econ.FromUnits(300), econ.FromUnits(900), 3)
	store.RecordPrestige(1, econ.FromUnits(1000), econ.FromUnits(2500))
	store.RecordPrestige(2, econ.FromUnits(1000), econ.FromUnits(6000))

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.SessionCount != 2 {
		t.Errorf("session count = %d, want 2", stats.SessionCount)
	}
	if stats.TotalPlaytime != 3*time.Minute {
		t.Errorf("playtime = %v, want 3m", stats.TotalPlaytime)
	}
	if stats.BestEarnings != 900 {
		t.Errorf("best earnings = %v, want 900", stats.BestEarnings)
	}
	if stats.PrestigeCount != 2 || stats.HighestLevel != 2 {
		t.Errorf("prestige stats = %+v", stats)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	store.RecordSession(60*time.Second, econ.FromUnits(100), econ.FromUnits(400), 0)
	store.RecordPrestige(1, econ.FromUnits(1000), econ.FromUnits(2500))

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.SessionCount != 0 || stats.PrestigeCount != 0 {
		t.Errorf("stats after clear = %+v", stats)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store.RecordPrestige(3, econ.FromUnits(1000), econ.FromUnits(9000))
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	entries, err := store.Prestiges(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Level != 3 {
		t.Errorf("entries after reopen = %+v", entries)
	}
}
