package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	BuyAlpha key.Binding
	BuyBeta  key.Binding
	BuyGamma key.Binding
	Upgrade1 key.Binding
	Upgrade2 key.Binding
	Upgrade3 key.Binding
	Booster1 key.Binding
	Booster2 key.Binding
	Prestige key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.BuyAlpha, k.Upgrade1, k.Prestige, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.BuyAlpha, k.BuyBeta, k.BuyGamma},
		{k.Upgrade1, k.Upgrade2, k.Upgrade3},
		{k.Booster1, k.Booster2, k.Prestige},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		BuyAlpha: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "buy alpha"),
		),
		BuyBeta: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "buy beta"),
		),
		BuyGamma: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "buy gamma"),
		),
		Upgrade1: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "upgrade 1"),
		),
		Upgrade2: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "upgrade 2"),
		),
		Upgrade3: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "upgrade 3"),
		),
		Booster1: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "booster 1"),
		),
		Booster2: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "booster 2"),
		),
		Prestige: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prestige"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
