package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Windows
	New       key.Binding
	Raise     key.Binding
	Next      key.Binding
	Prev      key.Binding
	ShowSel   key.Binding
	HideSel   key.Binding
	HideTop   key.Binding
	HideAll   key.Binding
	OverlayOn key.Binding
	CloseBtn  key.Binding

	// Stack
	Offset   key.Binding
	CopyYAML key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Raise, k.HideTop, k.Offset, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Raise, k.Next, k.Prev},
		{k.ShowSel, k.HideSel, k.HideTop, k.HideAll},
		{k.OverlayOn, k.CloseBtn, k.Offset, k.CopyYAML},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new window"),
		),
		Raise: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "show/raise"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "j", "down"),
			key.WithHelp("tab/j", "next window"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "k", "up"),
			key.WithHelp("S-tab/k", "prev window"),
		),
		ShowSel: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "show selected"),
		),
		HideSel: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "hide selected"),
		),
		HideTop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide top"),
		),
		HideAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hide all"),
		),
		OverlayOn: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle overlay close"),
		),
		CloseBtn: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle close button"),
		),
		Offset: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "set offset"),
		),
		CopyYAML: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy stack as YAML"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
