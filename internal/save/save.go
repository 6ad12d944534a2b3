// Package save persists the full game state to a JSON file. Loading is
// deliberately forgiving: a missing file starts a fresh game, corrupt or
// partial content falls back per-field to catalog defaults, and entries
// added to the catalog after the save was written are re-established.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isotopegame/isotope/internal/econ"
)

// Adapter reads and writes the save file for one game. It implements
// econ.Persister.
type Adapter struct {
	path   string
	cat    *econ.Catalog
	rules  econ.Rules
	logger *log.Logger
	now    func() time.Time
}

// New creates an adapter for the given save path. The path may start with
// "~" to refer to the home directory. A nil logger discards warnings.
func New(path string, cat *econ.Catalog, rules econ.Rules, logger *log.Logger) (*Adapter, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("save: cannot resolve path %s: %w", path, err)
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Adapter{
		path:   expanded,
		cat:    cat,
		rules:  rules,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Path returns the resolved save file location.
func (a *Adapter) Path() string { return a.path }

// File schema. Field names and shapes are stable; quantities are stored as
// unit floats, converted to fixed point on load.

type fileState struct {
	// Cash is a pointer so a missing key can default to the starting cash
	// while an explicit 0 (post-prestige) is honored.
	Cash            *float64                `json:"cash"`
	PrestigeLevel   int                     `json:"prestige_level"`
	PrestigeBonus   float64                 `json:"prestige_bonus"`
	LastUpdate      float64                 `json:"last_update"`
	TotalEarnings   float64                 `json:"total_earnings"`
	Particles       map[string]fileParticle `json:"particles"`
	Upgrades        []fileUpgrade           `json:"upgrades"`
	BoosterUpgrades []fileUpgrade           `json:"booster_upgrades"`
	Achievements    []fileAchievement       `json:"achievements"`
}

type fileParticle struct {
	Name       string  `json:"name"`
	BaseCost   float64 `json:"base_cost"`
	CostGrowth float64 `json:"cost_growth"`
	// BaseProduction and Unlocked are pointers for the same reason Cash
	// is: a missing key keeps the catalog default, which differs from an
	// explicit false or zero.
	BaseProduction    *float64 `json:"base_production"`
	Produces          string   `json:"produces"`
	Color             [3]uint8 `json:"color"`
	Count             float64  `json:"count"`
	Upgrades          []string `json:"upgrades"`
	Description       string   `json:"description"`
	Unlocked          *bool    `json:"unlocked"`
	PurchasedUpgrades []string `json:"purchased_upgrades"`
}

type fileUpgrade struct {
	Name                string  `json:"name"`
	Cost                float64 `json:"cost"`
	CostGrowth          float64 `json:"cost_growth"`
	Description         string  `json:"description"`
	ParticleRequirement string  `json:"particle_requirement"`
	Currency            string  `json:"currency"`
	// Unlocked is the purchased flag; the field name is historical.
	Unlocked bool `json:"unlocked"`
}

type fileAchievement struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward"`
	Unlocked    bool    `json:"unlocked"`
}

// Save writes the state atomically: the document goes to a temp file in
// the same directory which then replaces the save via rename.
func (a *Adapter) Save(s *econ.State) error {
	doc := a.encode(s)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save: cannot marshal state: %w", err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("save: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save: cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save: cannot close temp file: %w", err)
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save: cannot replace save file: %w", err)
	}
	return nil
}

// Load restores the saved state. It never fails: a missing file yields a
// fresh game, malformed content is logged and yields a fresh game, and
// partial documents fall back per field.
func (a *Adapter) Load() *econ.State {
	fresh := econ.NewState(a.cat, a.rules, a.now())

	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return fresh
	}
	if err != nil {
		a.logger.Warn("cannot read save file, starting fresh", "path", a.path, "error", err)
		return fresh
	}

	var doc fileState
	if err := json.Unmarshal(data, &doc); err != nil {
		a.logger.Warn("save file is corrupt, starting fresh", "path", a.path, "error", err)
		return fresh
	}

	return a.decode(&doc, fresh)
}

// encode builds the file document from runtime state.
func (a *Adapter) encode(s *econ.State) fileState {
	cash := s.Cash.Float()
	doc := fileState{
		Cash:          &cash,
		PrestigeLevel: s.PrestigeLevel,
		PrestigeBonus: s.PrestigeBonus(),
		LastUpdate:    float64(s.LastUpdate.UnixMilli()) / 1000,
		TotalEarnings: s.TotalEarnings.Float(),
		Particles:     make(map[string]fileParticle, len(s.Order)),
	}
	for _, def := range a.cat.Particles {
		p := s.Particles[def.ID]
		baseProduction := p.BaseProduction
		unlocked := p.Unlocked
		doc.Particles[def.ID] = fileParticle{
			Name:              def.Name,
			BaseCost:          def.BaseCost.Float(),
			CostGrowth:        def.CostGrowth,
			BaseProduction:    &baseProduction,
			Produces:          def.Produces,
			Color:             def.Color,
			Count:             p.Count.Float(),
			Upgrades:          a.cat.UpgradesFor(def.ID),
			Description:       def.Description,
			Unlocked:          &unlocked,
			PurchasedUpgrades: append([]string{}, p.Purchased...),
		}
	}
	doc.Upgrades = encodeUpgrades(a.cat.Upgrades, s.Upgrades)
	doc.BoosterUpgrades = encodeUpgrades(a.cat.Boosters, s.Boosters)
	for _, def := range a.cat.Achievements {
		unlocked := false
		for _, st := range s.Achievements {
			if st.Name == def.Name {
				unlocked = st.Unlocked
				break
			}
		}
		doc.Achievements = append(doc.Achievements, fileAchievement{
			Name:        def.Name,
			Description: def.Description,
			Reward:      def.Reward,
			Unlocked:    unlocked,
		})
	}
	return doc
}

func encodeUpgrades(defs []econ.UpgradeDef, states []econ.UpgradeState) []fileUpgrade {
	out := make([]fileUpgrade, 0, len(defs))
	for _, def := range defs {
		purchased := false
		for _, st := range states {
			if st.Name == def.Name {
				purchased = st.Purchased
				break
			}
		}
		out = append(out, fileUpgrade{
			Name:                def.Name,
			Cost:                def.Cost.Float(),
			CostGrowth:          def.CostGrowth,
			Description:         def.Description,
			ParticleRequirement: def.Requirement,
			Currency:            def.Currency,
			Unlocked:            purchased,
		})
	}
	return out
}

// decode overlays a parsed document onto a fresh state. The fresh state
// already carries every catalog-declared particle, upgrade and achievement,
// so entries absent from the document keep their defaults and entries in
// the document that the catalog no longer declares are dropped with a
// warning.
func (a *Adapter) decode(doc *fileState, s *econ.State) *econ.State {
	if doc.Cash != nil {
		s.Cash = econ.FromFloat(*doc.Cash)
	}
	s.PrestigeLevel = doc.PrestigeLevel
	s.TotalEarnings = econ.FromFloat(doc.TotalEarnings)
	if doc.LastUpdate > 0 {
		// Restoring the stamp grants offline catch-up on the first tick,
		// bounded by the engine's clamp window.
		s.LastUpdate = time.UnixMilli(int64(doc.LastUpdate * 1000))
	}

	for id, fp := range doc.Particles {
		p, ok := s.Particles[id]
		if !ok {
			a.logger.Warn("save contains unknown particle, dropping", "particle", id)
			continue
		}
		p.Count = econ.FromFloat(fp.Count)
		if fp.BaseProduction != nil {
			p.BaseProduction = *fp.BaseProduction
		}
		if fp.Unlocked != nil {
			p.Unlocked = *fp.Unlocked
		}
		if fp.PurchasedUpgrades != nil {
			p.Purchased = append([]string{}, fp.PurchasedUpgrades...)
		}
	}

	decodeUpgrades(doc.Upgrades, s.Upgrades, a.logger)
	decodeUpgrades(doc.BoosterUpgrades, s.Boosters, a.logger)

	// Achievement flags restore by name; the bonus is recomputed from the
	// catalog rewards rather than trusting the saved prestige_bonus.
	s.AchievementBonus = 1.0
	for _, fa := range doc.Achievements {
		for i := range s.Achievements {
			if s.Achievements[i].Name != fa.Name {
				continue
			}
			s.Achievements[i].Unlocked = fa.Unlocked
			break
		}
	}
	for _, def := range a.cat.Achievements {
		for _, st := range s.Achievements {
			if st.Name == def.Name && st.Unlocked {
				s.AchievementBonus *= def.Reward
			}
		}
	}
	return s
}

func decodeUpgrades(saved []fileUpgrade, states []econ.UpgradeState, logger *log.Logger) {
	for _, fu := range saved {
		found := false
		for i := range states {
			if states[i].Name == fu.Name {
				states[i].Purchased = fu.Unlocked
				found = true
				break
			}
		}
		if !found {
			logger.Warn("save contains unknown upgrade, dropping", "upgrade", fu.Name)
		}
	}
}

// Delete removes the save file. Missing files are not an error.
func (a *Adapter) Delete() error {
	err := os.Remove(a.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("save: cannot delete %s: %w", a.path, err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
