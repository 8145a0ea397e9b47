// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the form-level key bindings. Keys that reach the
// focused select box are configured separately through tui.KeyMap.
type KeyMap struct {
	// Focus ring.
	Next     key.Binding
	Previous key.Binding

	Save key.Binding // Save the selections and quit.

	Quit      key.Binding // Only while the focused list is closed.
	ForceQuit key.Binding // Always.
}

// DefaultKeyMap is the built-in form key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
