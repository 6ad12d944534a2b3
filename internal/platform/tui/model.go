package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/isotopegame/isotope/internal/econ"
	"github.com/isotopegame/isotope/internal/storage"
)

// noticeTTL is how long transient messages stay on screen.
const noticeTTL = 4 * time.Second

// Options configures the game screen.
type Options struct {
	FPS      int
	Autosave time.Duration // Zero disables autosaving
	Width    int
	Height   int
}

// actionKind identifies a queued player action.
type actionKind int

const (
	actionBuyParticle actionKind = iota
	actionBuyUpgrade
	actionPrestige
	actionSave
)

// action is a player input captured between frames. Actions apply on the
// next tick, after production and achievements have been processed.
type action struct {
	kind actionKind
	arg  string
}

// notice is a transient on-screen message.
type notice struct {
	text  string
	until time.Time
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	sess     *econ.Session
	store    *storage.Store
	opts     Options
	keys     KeyMap
	help     help.Model
	snap     econ.Snapshot
	pending  []action
	notices  []notice
	width    int
	height   int
	quitting bool

	startedAt time.Time
	lastSave  time.Time
}

// NewModel creates a new Bubble Tea model for the given session.
// The store may be nil; history recording is then skipped.
func NewModel(sess *econ.Session, store *storage.Store, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		sess:      sess,
		store:     store,
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      h,
		snap:      sess.Snapshot(),
		width:     opts.Width,
		height:    opts.Height,
		startedAt: time.Now(),
		lastSave:  time.Now(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues player actions for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.shutdown()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Save):
		m.pending = append(m.pending, action{kind: actionSave})

	case key.Matches(msg, m.keys.BuyAlpha):
		m.pending = append(m.pending, action{kind: actionBuyParticle, arg: "alpha"})
	case key.Matches(msg, m.keys.BuyBeta):
		m.pending = append(m.pending, action{kind: actionBuyParticle, arg: "beta"})
	case key.Matches(msg, m.keys.BuyGamma):
		m.pending = append(m.pending, action{kind: actionBuyParticle, arg: "gamma"})

	case key.Matches(msg, m.keys.Upgrade1):
		m.queueUpgrade(m.snap.Upgrades, 0)
	case key.Matches(msg, m.keys.Upgrade2):
		m.queueUpgrade(m.snap.Upgrades, 1)
	case key.Matches(msg, m.keys.Upgrade3):
		m.queueUpgrade(m.snap.Upgrades, 2)
	case key.Matches(msg, m.keys.Booster1):
		m.queueUpgrade(m.snap.Boosters, 0)
	case key.Matches(msg, m.keys.Booster2):
		m.queueUpgrade(m.snap.Boosters, 1)

	case key.Matches(msg, m.keys.Prestige):
		m.pending = append(m.pending, action{kind: actionPrestige})
	}

	return m, nil
}

// queueUpgrade resolves an upgrade slot to its name and queues the purchase.
func (m *Model) queueUpgrade(views []econ.UpgradeView, slot int) {
	if slot >= len(views) {
		return
	}
	m.pending = append(m.pending, action{kind: actionBuyUpgrade, arg: views[slot].Name})
}

// handleTick runs one simulation frame: production first, then achievement
// checks, then queued input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, msg := range m.sess.AdvanceEconomy() {
		m.push(msg)
	}

	if def := m.sess.CheckAchievements(); def != nil {
		m.push(fmt.Sprintf("Achievement unlocked: %s (x%.1f production)", def.Name, def.Reward))
	}

	for _, a := range m.pending {
		m.apply(a)
	}
	m.pending = nil

	if m.opts.Autosave > 0 && time.Since(m.lastSave) >= m.opts.Autosave {
		m.saveGame(false)
	}

	m.snap = m.sess.Snapshot()
	m.expireNotices()

	return m, tickCmd(m.opts.FPS)
}

// apply executes one queued action and reports failures as notices.
func (m *Model) apply(a action) {
	switch a.kind {
	case actionBuyParticle:
		if err := m.sess.BuyParticle(a.arg); err != nil {
			m.pushError(err)
		}

	case actionBuyUpgrade:
		if err := m.sess.BuyUpgrade(a.arg); err != nil {
			m.pushError(err)
		} else {
			m.push(fmt.Sprintf("Purchased %s", a.arg))
		}

	case actionPrestige:
		before := m.sess.Snapshot()
		if !m.sess.Prestige() {
			m.push(fmt.Sprintf("Prestige requires $%s", before.PrestigeCost.Format()))
			return
		}
		after := m.sess.Snapshot()
		m.push(fmt.Sprintf("Prestige! Level %d, production x%.2f", after.PrestigeLevel, after.PrestigeBonus))
		if m.store != nil {
			//nolint:errcheck // Best-effort record, game continues regardless
			m.store.RecordPrestige(after.PrestigeLevel, before.Cash, before.TotalEarnings)
		}

	case actionSave:
		m.saveGame(true)
	}
}

// saveGame persists the session and posts a notice. Manual saves always
// announce; autosaves only announce failures.
func (m *Model) saveGame(manual bool) {
	if err := m.sess.Save(); err != nil {
		m.push(fmt.Sprintf("Save failed: %v", err))
		return
	}
	m.lastSave = time.Now()
	if manual {
		m.push("Game saved")
	}
}

// shutdown saves, records the session, and quits.
func (m Model) shutdown() (tea.Model, tea.Cmd) {
	m.quitting = true
	//nolint:errcheck // Best-effort save on exit
	m.sess.Save()

	if m.store != nil {
		snap := m.sess.Snapshot()
		unlocked := 0
		for _, a := range snap.Achievements {
			if a.Unlocked {
				unlocked++
			}
		}
		//nolint:errcheck // Best-effort record on exit
		m.store.RecordSession(time.Since(m.startedAt), snap.Cash, snap.TotalEarnings, unlocked)
	}

	return m, tea.Quit
}

// push adds a transient notice.
func (m *Model) push(text string) {
	m.notices = append(m.notices, notice{text: text, until: time.Now().Add(noticeTTL)})
	if len(m.notices) > 5 {
		m.notices = m.notices[len(m.notices)-5:]
	}
}

// pushError translates purchase errors into player-facing notices.
func (m *Model) pushError(err error) {
	switch {
	case errors.Is(err, econ.ErrInsufficientFunds):
		m.push("Not enough to buy that")
	case errors.Is(err, econ.ErrParticleLocked):
		m.push("That particle is still locked")
	case errors.Is(err, econ.ErrAlreadyPurchased):
		m.push("Already purchased")
	default:
		m.push(err.Error())
	}
}

// expireNotices drops notices past their display window.
func (m *Model) expireNotices() {
	now := time.Now()
	kept := m.notices[:0]
	for _, n := range m.notices {
		if n.until.After(now) {
			kept = append(kept, n)
		}
	}
	m.notices = kept
}

// Run starts the Bubble Tea program for the given session.
func Run(sess *econ.Session, store *storage.Store, opts Options) error {
	model := NewModel(sess, store, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
