package econ

// BuyParticle purchases one unit of the given particle, debiting cash by
// the cost at the particle's current count. The purchase is all-or-nothing:
// any precondition failure leaves the state byte-for-byte unchanged and the
// returned error names the reason.
func (e *Engine) BuyParticle(s *State, id string) error {
	def := e.cat.Particle(id)
	p, ok := s.Particles[id]
	if def == nil || !ok {
		return ErrUnknownID
	}
	if !p.Unlocked {
		return ErrParticleLocked
	}
	cost := e.Cost(def, p.Count)
	if s.Cash < cost {
		return ErrInsufficientFunds
	}
	s.Cash -= cost
	p.Count += PerUnit
	return nil
}

// BuyUpgrade purchases a one-shot upgrade by name. The correct account
// (cash or a particle pool) is debited, the upgrade is recorded on its
// target particle, and its structural effect is applied to the target's
// base production. All-or-nothing.
func (e *Engine) BuyUpgrade(s *State, name string) error {
	def, booster := e.cat.Upgrade(name)
	if def == nil {
		return ErrUnknownID
	}
	st := s.upgradeState(name, booster)
	if st == nil {
		return ErrUnknownID
	}
	if st.Purchased {
		return ErrAlreadyPurchased
	}

	target, ok := s.Particles[def.Target]
	if !ok {
		return ErrUnknownID
	}
	if !target.Unlocked {
		return ErrParticleLocked
	}

	// Affordability against the right account.
	if def.Currency == Currency {
		if s.Cash < def.Cost {
			return ErrInsufficientFunds
		}
	} else {
		pool, ok := s.Particles[def.Currency]
		if !ok {
			return ErrUnknownID
		}
		if pool.Count < def.Cost {
			return ErrInsufficientFunds
		}
	}

	// Commit: debit, record, apply effect, flag.
	if def.Currency == Currency {
		s.Cash -= def.Cost
	} else {
		s.Particles[def.Currency].Count -= def.Cost
	}
	target.Purchased = append(target.Purchased, def.Name)
	applyEffect(target, def.Effect)
	st.Purchased = true
	return nil
}

// applyEffect dispatches an upgrade's structural production change.
func applyEffect(p *Particle, eff Effect) {
	switch eff.Kind {
	case EffectMultiplyBase:
		p.BaseProduction *= eff.Factor
	case EffectSetBase:
		p.BaseProduction = eff.Value
	}
}

// Prestige resets progress in exchange for a permanent bonus. Cash and all
// particle counts drop to zero and the prestige level increments; unlock
// flags, purchased upgrades and achievement rewards persist. Returns false
// without touching state when cash is below the requirement.
func (e *Engine) Prestige(s *State) bool {
	if s.Cash < e.rules.PrestigeRequirement {
		return false
	}
	s.PrestigeLevel++
	s.Cash = 0
	for _, id := range s.Order {
		s.Particles[id].Count = 0
	}
	return true
}
