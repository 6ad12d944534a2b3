package econ

import "time"

// Persister stores and restores the full game state. The JSON save adapter
// implements this; tests substitute fakes.
type Persister interface {
	// Save writes the state durably. Failures are non-fatal to the game.
	Save(s *State) error
	// Load restores the last saved state, or returns a fresh state when no
	// usable save exists.
	Load() *State
}

// Session ties an engine, its state and a persister together behind the
// interface the UI consumes. All methods are synchronous; the session is
// owned by a single goroutine (the render loop).
type Session struct {
	engine *Engine
	state  *State
	store  Persister
	now    func() time.Time
}

// NewSession restores state through the persister and wraps it. A nil
// clock defaults to time.Now.
func NewSession(engine *Engine, store Persister, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		engine: engine,
		state:  store.Load(),
		store:  store,
		now:    clock,
	}
}

// AdvanceEconomy runs one economy tick over the wall-clock time elapsed
// since the previous one, returning unlock notifications.
func (s *Session) AdvanceEconomy() []string {
	now := s.now()
	return s.engine.Advance(s.state, now.Sub(s.state.LastUpdate), now)
}

// AdvanceBy runs one economy tick with an explicit elapsed duration, for
// deterministic use.
func (s *Session) AdvanceBy(dt time.Duration) []string {
	now := s.state.LastUpdate.Add(dt)
	return s.engine.Advance(s.state, dt, now)
}

// CheckAchievements unlocks at most one newly-earned achievement.
func (s *Session) CheckAchievements() *AchievementDef {
	return s.engine.CheckAchievements(s.state)
}

// BuyParticle purchases one unit of a particle.
func (s *Session) BuyParticle(id string) error {
	return s.engine.BuyParticle(s.state, id)
}

// BuyUpgrade purchases a one-shot upgrade by name.
func (s *Session) BuyUpgrade(name string) error {
	return s.engine.BuyUpgrade(s.state, name)
}

// Prestige performs the prestige reset if affordable.
func (s *Session) Prestige() bool {
	return s.engine.Prestige(s.state)
}

// Snapshot returns a read-only display view of the current state.
func (s *Session) Snapshot() Snapshot {
	return s.engine.Snapshot(s.state)
}

// Save persists the current state.
func (s *Session) Save() error {
	return s.store.Save(s.state)
}

// State exposes the underlying state for persistence and history recording.
func (s *Session) State() *State { return s.state }
