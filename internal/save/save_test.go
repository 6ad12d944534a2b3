package save

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isotopegame/isotope/internal/econ"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "save.json")
	a, err := New(path, econ.DefaultCatalog(), econ.DefaultRules(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	a := newTestAdapter(t)

	s := a.Load()
	if s.Cash != econ.FromUnits(50) {
		t.Errorf("fresh cash = %v, want 50", s.Cash.Float())
	}
	if !s.Particles["alpha"].Unlocked {
		t.Error("alpha should start unlocked")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	engine := econ.NewEngine(econ.DefaultCatalog(), econ.DefaultRules())

	s := a.Load()
	s.Cash = econ.FromFloat(1234.56)
	s.TotalEarnings = econ.FromUnits(6000)
	s.PrestigeLevel = 2
	s.LastUpdate = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.Particles["alpha"].Count = econ.FromFloat(7.25)
	s.Particles["beta"].Unlocked = true
	s.Particles["gamma"].Unlocked = true
	if err := engine.BuyUpgrade(s, "Hyperspace Fabrication"); err != nil {
		t.Fatalf("BuyUpgrade failed: %v", err)
	}
	if engine.CheckAchievements(s) == nil { // Quantum Pioneer
		t.Fatal("expected achievement unlock")
	}

	if err := a.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := a.Load()

	if loaded.Cash != s.Cash {
		t.Errorf("cash = %v, want %v", loaded.Cash.Float(), s.Cash.Float())
	}
	if loaded.TotalEarnings != s.TotalEarnings {
		t.Errorf("earnings = %v, want %v", loaded.TotalEarnings.Float(), s.TotalEarnings.Float())
	}
	if loaded.PrestigeLevel != 2 {
		t.Errorf("prestige level = %d, want 2", loaded.PrestigeLevel)
	}
	if !loaded.LastUpdate.Equal(s.LastUpdate) {
		t.Errorf("last update = %v, want %v", loaded.LastUpdate, s.LastUpdate)
	}
	if loaded.Particles["alpha"].Count != econ.FromFloat(7.25) {
		t.Errorf("alpha count = %v", loaded.Particles["alpha"].Count.Float())
	}
	if !loaded.Particles["beta"].Unlocked || !loaded.Particles["gamma"].Unlocked {
		t.Error("unlock flags lost")
	}
	if got := loaded.Particles["beta"].BaseProduction; got != 3.0 {
		t.Errorf("beta base production = %v, want 3.0 (upgrade effect persisted)", got)
	}
	if got := loaded.Particles["beta"].Purchased; len(got) != 1 || got[0] != "Hyperspace Fabrication" {
		t.Errorf("purchased upgrades = %v", got)
	}
	st := loaded.Achievements[0]
	if st.Name != "Quantum Pioneer" || !st.Unlocked {
		t.Errorf("achievement state = %+v", st)
	}
	// Bonus recomputed from unlocked achievement rewards.
	if loaded.AchievementBonus != 1.1 {
		t.Errorf("achievement bonus = %v, want 1.1", loaded.AchievementBonus)
	}
	// Combined bonus: level base 1.2 times achievement reward 1.1.
	want := 1.2 * 1.1
	if got := loaded.PrestigeBonus(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("prestige bonus = %v, want %v", got, want)
	}
}

func TestLoadCorruptFileStartsFresh(t *testing.T) {
	a := newTestAdapter(t)
	if err := os.WriteFile(a.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	if s.Cash != econ.FromUnits(50) {
		t.Errorf("corrupt load cash = %v, want fresh 50", s.Cash.Float())
	}
}

func TestLoadPartialSchemaDefaults(t *testing.T) {
	a := newTestAdapter(t)
	// Only prestige level present: everything else defaults.
	if err := os.WriteFile(a.Path(), []byte(`{"prestige_level": 3}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	if s.Cash != econ.FromUnits(50) {
		t.Errorf("missing cash should default to 50, got %v", s.Cash.Float())
	}
	if s.PrestigeLevel != 3 {
		t.Errorf("prestige level = %d, want 3", s.PrestigeLevel)
	}
	if len(s.Particles) != 3 {
		t.Errorf("catalog particles not re-established: %d", len(s.Particles))
	}
}

func TestLoadPartialParticleDefaults(t *testing.T) {
	a := newTestAdapter(t)
	// A particle entry with only a count: every other field keeps its
	// catalog default (alpha stays unlocked at base production 1.0).
	doc := `{"particles": {"alpha": {"count": 2}}}`
	if err := os.WriteFile(a.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	alpha := s.Particles["alpha"]
	if alpha.Count != econ.FromUnits(2) {
		t.Errorf("alpha count = %v, want 2", alpha.Count.Float())
	}
	if !alpha.Unlocked {
		t.Error("missing unlocked key should keep alpha's catalog default (unlocked)")
	}
	if alpha.BaseProduction != 1.0 {
		t.Errorf("alpha base production = %v, want catalog default 1.0", alpha.BaseProduction)
	}
	if alpha.Purchased != nil {
		t.Errorf("purchased upgrades = %v, want none", alpha.Purchased)
	}

	// An explicit false still wins over the default.
	doc = `{"particles": {"alpha": {"count": 2, "unlocked": false}}}`
	if err := os.WriteFile(a.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if s := a.Load(); s.Particles["alpha"].Unlocked {
		t.Error("explicit unlocked=false ignored")
	}
}

func TestLoadExplicitZeroCash(t *testing.T) {
	a := newTestAdapter(t)
	if err := os.WriteFile(a.Path(), []byte(`{"cash": 0}`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	if s.Cash != 0 {
		t.Errorf("explicit zero cash = %v, want 0", s.Cash.Float())
	}
}

func TestLoadDropsUnknownEntries(t *testing.T) {
	a := newTestAdapter(t)
	doc := `{
		"cash": 75,
		"particles": {"delta": {"name": "Delta", "count": 99, "unlocked": true}},
		"upgrades": [{"name": "Chrono Shift", "unlocked": true}]
	}`
	if err := os.WriteFile(a.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	if _, ok := s.Particles["delta"]; ok {
		t.Error("unknown particle survived load")
	}
	if s.Cash != econ.FromUnits(75) {
		t.Errorf("cash = %v, want 75", s.Cash.Float())
	}
}

func TestSchemaEvolutionReestablishesCatalogEntries(t *testing.T) {
	a := newTestAdapter(t)
	// A save written before beta/gamma existed: only alpha present.
	doc := `{
		"cash": 100,
		"particles": {"alpha": {"name": "Alpha", "count": 2, "base_production": 1.0, "unlocked": true}}
	}`
	if err := os.WriteFile(a.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	s := a.Load()
	if len(s.Particles) != 3 {
		t.Fatalf("particles = %d, want 3", len(s.Particles))
	}
	if s.Particles["beta"] == nil || s.Particles["beta"].Unlocked {
		t.Error("beta should be re-established locked")
	}
	if len(s.Upgrades) != 3 || len(s.Boosters) != 2 || len(s.Achievements) != 3 {
		t.Error("catalog upgrades/achievements not re-established")
	}
	if s.Particles["alpha"].Count != econ.FromUnits(2) {
		t.Errorf("alpha count = %v, want 2", s.Particles["alpha"].Count.Float())
	}
}

func TestSaveFileShape(t *testing.T) {
	a := newTestAdapter(t)
	s := a.Load()
	if err := a.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(a.Path())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("save file is not valid JSON: %v", err)
	}
	for _, key := range []string{
		"cash", "prestige_level", "prestige_bonus", "last_update",
		"total_earnings", "particles", "upgrades", "booster_upgrades",
		"achievements",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("save file missing key %q", key)
		}
	}
	particles, ok := doc["particles"].(map[string]any)
	if !ok || len(particles) != 3 {
		t.Fatalf("particles shape wrong: %v", doc["particles"])
	}
	alpha, ok := particles["alpha"].(map[string]any)
	if !ok {
		t.Fatal("alpha entry missing")
	}
	for _, key := range []string{
		"name", "base_cost", "cost_growth", "base_production", "produces",
		"color", "count", "upgrades", "description", "unlocked",
		"purchased_upgrades",
	} {
		if _, ok := alpha[key]; !ok {
			t.Errorf("particle entry missing key %q", key)
		}
	}
}

func TestSaveAtomicNoTempLeftovers(t *testing.T) {
	a := newTestAdapter(t)
	s := a.Load()

	for i := 0; i < 3; i++ {
		if err := a.Save(s); err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(a.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the save file, found %v", names)
	}
}

func TestDelete(t *testing.T) {
	a := newTestAdapter(t)
	s := a.Load()
	if err := a.Save(s); err != nil {
		t.Fatal(err)
	}

	if err := a.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(a.Path()); !os.IsNotExist(err) {
		t.Error("save file still exists")
	}
	// Deleting again is fine.
	if err := a.Delete(); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}
