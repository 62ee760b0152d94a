// Package keys defines the TUI key bindings.
package keys

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// KeyMap defines the key bindings for the application.
type KeyMap struct {
	// Global
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Switch key.Binding
	Enter  key.Binding

	// Home actions
	Close        key.Binding
	CloseAll     key.Binding
	Archive      key.Binding
	Menu         key.Binding
	ArchivedMenu key.Binding
	Private      key.Binding
	Search       key.Binding
	Settings     key.Binding
	Library      key.Binding
	Help         key.Binding

	// Browser actions
	Copy key.Binding
	New  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "tabs/archived"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "close all"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archive"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		ArchivedMenu: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "bundle menu"),
		),
		Private: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "private"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Settings: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "settings"),
		),
		Library: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "library"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy url"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new tab"),
		),
	}
}

// HomeHints lists the bindings shown on the home screen.
func (k KeyMap) HomeHints() []key.Binding {
	return []key.Binding{
		k.Enter, k.Close, k.Archive, k.Menu, k.Private,
		k.Search, k.Library, k.Settings, k.Switch,
	}
}

// BrowserHints lists the bindings shown on the browser page.
func (k KeyMap) BrowserHints() []key.Binding {
	return []key.Binding{k.Copy, k.Close, k.Back}
}

// Hints renders bindings as "[key] desc" pairs.
func Hints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
