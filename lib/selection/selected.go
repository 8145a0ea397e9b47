// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

// Selection is the caller-owned current choice. The two
// implementations, [Single] and [Multi], fix the controller's mode at
// compile time: a Controller[Multi] cannot be handed a Single.
//
// All methods are pure. Toggle and Cleared return new values and never
// modify the receiver.
type Selection[S any] interface {
	// Multiple reports whether this is the multiple-selection mode.
	Multiple() bool

	// Contains reports whether option is part of the selection.
	Contains(option Option) bool

	// Toggle returns the selection after the user picks option, and
	// whether that differs from the receiver.
	Toggle(option Option) (S, bool)

	// Cleared returns the empty selection of the same mode.
	Cleared() S

	// Options lists the selected options in display order.
	Options() []Option

	// Empty reports whether nothing is selected.
	Empty() bool
}

// Single holds at most one option. The zero value means no selection,
// which is distinct from every option (including one whose value is
// the empty string).
type Single struct {
	option Option
	set    bool
}

// SingleOf returns a single selection holding option.
func SingleOf(option Option) Single {
	return Single{option: option, set: true}
}

// Get returns the selected option, or false when nothing is selected.
func (single Single) Get() (Option, bool) {
	return single.option, single.set
}

// Multiple is always false for Single.
func (Single) Multiple() bool { return false }

// Contains reports whether option is the selected option.
func (single Single) Contains(option Option) bool {
	return single.set && single.option.Same(option)
}

// Toggle selects option. Picking the option that is already selected
// leaves the selection unchanged rather than clearing it.
func (single Single) Toggle(option Option) (Single, bool) {
	if single.Contains(option) {
		return single, false
	}
	return SingleOf(option), true
}

// Cleared returns the empty single selection.
func (Single) Cleared() Single { return Single{} }

// Options returns the selected option as a one-element slice, or nil.
func (single Single) Options() []Option {
	if !single.set {
		return nil
	}
	return []Option{single.option}
}

// Empty reports whether nothing is selected.
func (single Single) Empty() bool { return !single.set }

// Multi is an ordered set of options in insertion order. A nil Multi
// is an empty selection.
type Multi []Option

// Multiple is always true for Multi.
func (Multi) Multiple() bool { return true }

// Contains reports whether option is a member.
func (multi Multi) Contains(option Option) bool {
	return multi.indexOf(option) >= 0
}

// Toggle removes option if it is a member, otherwise appends it. The
// result is always a fresh slice; the receiver's backing array is
// never written.
func (multi Multi) Toggle(option Option) (Multi, bool) {
	position := multi.indexOf(option)
	if position >= 0 {
		result := make(Multi, 0, len(multi)-1)
		result = append(result, multi[:position]...)
		result = append(result, multi[position+1:]...)
		return result, true
	}
	result := make(Multi, 0, len(multi)+1)
	result = append(result, multi...)
	result = append(result, option)
	return result, true
}

// Cleared returns an empty, non-nil Multi.
func (Multi) Cleared() Multi { return Multi{} }

// Options returns a copy of the members in insertion order.
func (multi Multi) Options() []Option {
	if len(multi) == 0 {
		return nil
	}
	result := make([]Option, len(multi))
	copy(result, multi)
	return result
}

// Empty reports whether there are no members.
func (multi Multi) Empty() bool { return len(multi) == 0 }

func (multi Multi) indexOf(option Option) int {
	key := option.Key()
	for position, member := range multi {
		if member.Key() == key {
			return position
		}
	}
	return -1
}

// Compile-time mode checks.
var (
	_ Selection[Single] = Single{}
	_ Selection[Multi]  = Multi(nil)
)
