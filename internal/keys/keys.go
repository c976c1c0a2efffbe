// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the playground.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Reload      key.Binding
	ToggleTable key.Binding
	ToggleYAML  key.Binding

	// General
	Help         key.Binding
	ToggleStatus key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous region"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next region"),
		),

		// Actions
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload rc file"),
		),
		ToggleTable: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle rule table"),
		),
		ToggleYAML: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yaml rule dump"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                             // Navigation
		{k.Reload, k.ToggleTable, k.ToggleYAML},    // Actions
		{k.Help, k.ToggleStatus, k.Escape, k.Quit}, // General
	}
}
