// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

// Key is a key press, already translated from whatever input layer
// produced it. Only the keys the state machine reacts to are named.
type Key int

const (
	// KeyOther is any key the controller ignores.
	KeyOther Key = iota
	KeyEnter
	KeySpace
	KeyArrowUp
	KeyArrowDown
	KeyEscape
)

// String returns the key name used in logs.
func (key Key) String() string {
	switch key {
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyArrowUp:
		return "up"
	case KeyArrowDown:
		return "down"
	case KeyEscape:
		return "escape"
	default:
		return "other"
	}
}

// Target identifies which part of the widget an input event hit.
type Target int

const (
	// TargetRoot is the widget container itself: the box showing the
	// current value, including empty space around chips.
	TargetRoot Target = iota
	// TargetOption is a row in the open option list. The event's Index
	// is the catalog position.
	TargetOption
	// TargetClear is the clear-all affordance.
	TargetClear
	// TargetChip is the remove affordance on one selected item in
	// multiple mode. The event's Index is the position in the
	// current selection.
	TargetChip
)

// String returns the target name used in logs.
func (target Target) String() string {
	switch target {
	case TargetRoot:
		return "root"
	case TargetOption:
		return "option"
	case TargetClear:
		return "clear"
	case TargetChip:
		return "chip"
	default:
		return "unknown"
	}
}

// KeyEvent is a key press delivered to a target. The keyboard state
// machine only acts on events targeting the root.
type KeyEvent struct {
	Key    Key
	Target Target
}

// MouseAction is the kind of pointer interaction.
type MouseAction int

const (
	// MouseClick is a primary-button press.
	MouseClick MouseAction = iota
	// MouseEnter is the pointer moving onto a target.
	MouseEnter
)

// MouseEvent is a pointer interaction with one part of the widget.
type MouseEvent struct {
	Action MouseAction
	Target Target
	Index  int
}
