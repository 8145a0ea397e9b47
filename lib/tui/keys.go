// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/bureau-select/lib/selection"
)

// KeyMap binds terminal keys to the select state machine's keys.
type KeyMap struct {
	Enter  key.Binding
	Space  key.Binding
	Up     key.Binding
	Down   key.Binding
	Escape key.Binding
}

// DefaultKeyMap uses the arrow keys, enter, space and escape. Vim
// keys are deliberately absent: every other key is a no-op for the
// widget and stays available to the host.
var DefaultKeyMap = KeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/pick"),
	),
	Space: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "open/pick"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// Translate maps a terminal key press to a controller key. Unbound
// keys become [selection.KeyOther].
func (keys KeyMap) Translate(message tea.KeyMsg) selection.Key {
	switch {
	case key.Matches(message, keys.Enter):
		return selection.KeyEnter
	case key.Matches(message, keys.Space):
		return selection.KeySpace
	case key.Matches(message, keys.Up):
		return selection.KeyArrowUp
	case key.Matches(message, keys.Down):
		return selection.KeyArrowDown
	case key.Matches(message, keys.Escape):
		return selection.KeyEscape
	default:
		return selection.KeyOther
	}
}

// ShortHelp returns the bindings shown in a one-line help bar.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Enter, keys.Up, keys.Down, keys.Escape}
}
