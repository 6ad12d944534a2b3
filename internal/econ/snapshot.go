package econ

// Snapshot is a read-only view of the game state prepared for display.
// The UI renders from this; it never touches State directly.
type Snapshot struct {
	Cash          Micros
	TotalEarnings Micros
	PrestigeLevel int
	PrestigeBonus float64
	PrestigeCost  Micros
	CanPrestige   bool

	Particles    []ParticleView
	Upgrades     []UpgradeView
	Boosters     []UpgradeView
	Achievements []AchievementView
}

// ParticleView is the display state of one particle type.
type ParticleView struct {
	ID           string
	Name         string
	Description  string
	Color        [3]uint8
	Count        Micros
	Unlocked     bool
	UnlockAt     Micros  // earnings needed to unlock; zero if unlocked from the start
	NextCost     Micros  // cost of the next unit
	Affordable   bool
	PerSecond    float64 // current production rate
	ProducesCash bool
}

// UpgradeView is the display state of one upgrade.
type UpgradeView struct {
	Name        string
	Description string
	Cost        Micros
	Currency    string
	Purchased   bool
	Visible     bool // requirement particle unlocked
	Affordable  bool
}

// AchievementView is the display state of one achievement.
type AchievementView struct {
	Name        string
	Description string
	Reward      float64
	Unlocked    bool
}

// Snapshot builds a display view of the current state.
func (e *Engine) Snapshot(s *State) Snapshot {
	snap := Snapshot{
		Cash:          s.Cash,
		TotalEarnings: s.TotalEarnings,
		PrestigeLevel: s.PrestigeLevel,
		PrestigeBonus: s.PrestigeBonus(),
		PrestigeCost:  e.rules.PrestigeRequirement,
		CanPrestige:   s.Cash >= e.rules.PrestigeRequirement,
	}

	for _, def := range e.cat.Particles {
		p := s.Particles[def.ID]
		cost := e.Cost(&def, p.Count)
		view := ParticleView{
			ID:           def.ID,
			Name:         def.Name,
			Description:  def.Description,
			Color:        def.Color,
			Count:        p.Count,
			Unlocked:     p.Unlocked,
			NextCost:     cost,
			Affordable:   s.Cash >= cost,
			PerSecond:    e.ProductionPerSecond(s, p),
			ProducesCash: def.Produces == Currency,
		}
		if !p.Unlocked {
			switch def.ID {
			case "beta":
				view.UnlockAt = e.rules.BetaUnlockAt
			case "gamma":
				view.UnlockAt = e.rules.GammaUnlockAt
			}
		}
		snap.Particles = append(snap.Particles, view)
	}

	snap.Upgrades = e.upgradeViews(s, e.cat.Upgrades, false)
	snap.Boosters = e.upgradeViews(s, e.cat.Boosters, true)

	for _, def := range e.cat.Achievements {
		st := s.achievementState(def.Name)
		snap.Achievements = append(snap.Achievements, AchievementView{
			Name:        def.Name,
			Description: def.Description,
			Reward:      def.Reward,
			Unlocked:    st != nil && st.Unlocked,
		})
	}
	return snap
}

func (e *Engine) upgradeViews(s *State, defs []UpgradeDef, booster bool) []UpgradeView {
	views := make([]UpgradeView, 0, len(defs))
	for _, def := range defs {
		st := s.upgradeState(def.Name, booster)
		view := UpgradeView{
			Name:        def.Name,
			Description: def.Description,
			Cost:        def.Cost,
			Currency:    def.Currency,
			Purchased:   st != nil && st.Purchased,
		}
		if req, ok := s.Particles[def.Requirement]; ok {
			view.Visible = req.Unlocked
		}
		if def.Currency == Currency {
			view.Affordable = s.Cash >= def.Cost
		} else if pool, ok := s.Particles[def.Currency]; ok {
			view.Affordable = pool.Count >= def.Cost
		}
		if view.Purchased {
			view.Affordable = false
		}
		views = append(views, view)
	}
	return views
}
