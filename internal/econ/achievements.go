package econ

// CheckAchievements evaluates achievement predicates in declared order and
// unlocks the first one that is newly satisfied, folding its reward into
// the achievement bonus. At most one achievement unlocks per call; callers
// invoke this once per tick, so multiple newly-true achievements unlock on
// consecutive ticks in declared order. Returns nil when nothing unlocked.
func (e *Engine) CheckAchievements(s *State) *AchievementDef {
	for i := range e.cat.Achievements {
		def := &e.cat.Achievements[i]
		st := s.achievementState(def.Name)
		if st == nil || st.Unlocked {
			continue
		}
		if !evalPredicate(s, def.Predicate) {
			continue
		}
		st.Unlocked = true
		s.AchievementBonus *= def.Reward
		return def
	}
	return nil
}

func (s *State) achievementState(name string) *AchievementState {
	for i := range s.Achievements {
		if s.Achievements[i].Name == name {
			return &s.Achievements[i]
		}
	}
	return nil
}

func evalPredicate(s *State, p Predicate) bool {
	switch p.Kind {
	case PredAnyParticleOwned:
		for _, id := range s.Order {
			if s.Particles[id].Count > 0 {
				return true
			}
		}
		return false
	case PredTotalParticles:
		return s.TotalParticles() >= p.Threshold
	case PredTotalEarnings:
		return s.TotalEarnings >= p.Threshold
	default:
		return false
	}
}
