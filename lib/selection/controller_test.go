// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"testing"
)

var (
	first  = Option{Label: "First", Value: NumberValue(1)}
	second = Option{Label: "Second", Value: NumberValue(2)}
	third  = Option{Label: "Third", Value: NumberValue(3)}
	fourth = Option{Label: "Fourth", Value: NumberValue(4)}
)

func demoCatalog() *Catalog {
	return MustCatalog(first, second, third, fourth)
}

// harness plays the part of the external owner: it records every
// onChange call and hands the new value back to the controller, the way
// a host application would.
type harness[S Selection[S]] struct {
	controller *Controller[S]
	changes    []S
}

func newHarness[S Selection[S]](catalog *Catalog, initial S) *harness[S] {
	h := &harness[S]{}
	h.controller = NewController(catalog, initial, func(next S) {
		h.changes = append(h.changes, next)
		h.controller.SetValue(next)
	})
	return h
}

func (h *harness[S]) press(key Key) bool {
	return h.controller.HandleKey(KeyEvent{Key: key, Target: TargetRoot})
}

func (h *harness[S]) click(target Target, index int) {
	h.controller.HandleMouse(MouseEvent{Action: MouseClick, Target: target, Index: index})
}

func labels(options []Option) []string {
	result := make([]string, len(options))
	for index, option := range options {
		result[index] = option.Label
	}
	return result
}

func assertLabels(t *testing.T, got []Option, want ...string) {
	t.Helper()
	gotLabels := labels(got)
	if len(gotLabels) != len(want) {
		t.Fatalf("selection = %v, want %v", gotLabels, want)
	}
	for index := range want {
		if gotLabels[index] != want[index] {
			t.Fatalf("selection = %v, want %v", gotLabels, want)
		}
	}
}

func TestNewControllerInitialState(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first})

	if h.controller.IsOpen() {
		t.Error("new controller should be closed")
	}
	if h.controller.Highlighted() != 0 {
		t.Errorf("new controller highlight = %d, want 0", h.controller.Highlighted())
	}
	if !h.controller.Multiple() {
		t.Error("Controller[Multi] should report multiple mode")
	}
	if len(h.changes) != 0 {
		t.Errorf("construction should not call onChange, got %d calls", len(h.changes))
	}
}

func TestNewControllerNilOnChangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil onChange")
		}
	}()
	NewController[Single](demoCatalog(), Single{}, nil)
}

func TestHighlightClampsAtBottom(t *testing.T) {
	for size := 1; size <= 6; size++ {
		options := make([]Option, size)
		for index := range options {
			options[index] = Option{Label: "option", Value: NumberValue(float64(index))}
		}
		h := newHarness(MustCatalog(options...), Single{})
		h.press(KeyArrowDown) // opens

		for step := 0; step < size-1; step++ {
			h.press(KeyArrowDown)
		}
		if h.controller.Highlighted() != size-1 {
			t.Fatalf("size %d: after %d down moves highlight = %d, want %d",
				size, size-1, h.controller.Highlighted(), size-1)
		}

		h.press(KeyArrowDown)
		if h.controller.Highlighted() != size-1 {
			t.Errorf("size %d: extra down move changed highlight to %d", size, h.controller.Highlighted())
		}
	}
}

func TestHighlightClampsAtTop(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})
	h.press(KeyArrowUp) // opens at 0

	h.press(KeyArrowUp)
	if h.controller.Highlighted() != 0 {
		t.Errorf("up move at index 0 changed highlight to %d", h.controller.Highlighted())
	}

	h.press(KeyArrowDown)
	h.press(KeyArrowUp)
	h.press(KeyArrowUp)
	if h.controller.Highlighted() != 0 {
		t.Errorf("highlight = %d, want 0", h.controller.Highlighted())
	}
}

func TestArrowWhenClosedOnlyOpens(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})

	if !h.press(KeyArrowDown) {
		t.Fatal("arrow down should be consumed")
	}
	if !h.controller.IsOpen() {
		t.Fatal("arrow down on a closed list should open it")
	}
	if h.controller.Highlighted() != 0 {
		t.Errorf("opening arrow should not move the highlight, got %d", h.controller.Highlighted())
	}
}

func TestMultiSelectToggleTwiceRestores(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first})

	h.controller.SelectOption(second)
	assertLabels(t, h.controller.Value(), "First", "Second")

	h.controller.SelectOption(second)
	assertLabels(t, h.controller.Value(), "First")

	if len(h.changes) != 2 {
		t.Errorf("expected 2 onChange calls, got %d", len(h.changes))
	}
}

func TestMultiSelectAppendsInOrder(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{})

	h.controller.SelectOption(third)
	h.controller.SelectOption(first)
	h.controller.SelectOption(fourth)
	assertLabels(t, h.controller.Value(), "Third", "First", "Fourth")

	h.controller.SelectOption(first)
	assertLabels(t, h.controller.Value(), "Third", "Fourth")
}

func TestMultiSelectDoesNotMutateCallerSlice(t *testing.T) {
	backing := make(Multi, 1, 4)
	backing[0] = first
	h := newHarness(demoCatalog(), backing)

	h.controller.SelectOption(second)

	if len(backing) != 1 || backing[:2][1].Label == "Second" {
		t.Error("SelectOption wrote into the caller's backing array")
	}
}

func TestSingleReselectIsNoop(t *testing.T) {
	h := newHarness(demoCatalog(), SingleOf(first))

	h.controller.SelectOption(first)

	if len(h.changes) != 0 {
		t.Errorf("re-selecting the current option should not call onChange, got %d calls", len(h.changes))
	}
	selected, ok := h.controller.Value().Get()
	if !ok || selected.Label != "First" {
		t.Errorf("selection = %v (%v), want First", selected, ok)
	}
}

func TestSingleSelectReplaces(t *testing.T) {
	h := newHarness(demoCatalog(), SingleOf(first))

	h.controller.SelectOption(second)

	if len(h.changes) != 1 {
		t.Fatalf("expected 1 onChange call, got %d", len(h.changes))
	}
	selected, ok := h.controller.Value().Get()
	if !ok || selected.Label != "Second" {
		t.Errorf("selection = %v (%v), want Second", selected, ok)
	}
}

func TestSelectComparesByKey(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first})

	// A separately constructed option with the same value is the same
	// option.
	lookalike := Option{Label: "First", Value: NumberValue(1)}
	if !h.controller.IsSelected(lookalike) {
		t.Error("option with equal value should be selected")
	}
	h.controller.SelectOption(lookalike)
	assertLabels(t, h.controller.Value())

	// The string "1" is not the number 1.
	stringOne := Option{Label: "First", Value: StringValue("1")}
	if h.controller.IsSelected(stringOne) {
		t.Error("string value should not match number value")
	}
}

func TestClearSelection(t *testing.T) {
	t.Run("Multiple", func(t *testing.T) {
		for _, initial := range []Multi{nil, {}, {first}, {first, second, third, fourth}} {
			h := newHarness(demoCatalog(), initial)
			h.controller.ClearSelection()
			if len(h.changes) != 1 {
				t.Fatalf("expected exactly 1 onChange call, got %d", len(h.changes))
			}
			cleared := h.changes[0]
			if cleared == nil || len(cleared) != 0 {
				t.Errorf("cleared value = %#v, want empty non-nil set", cleared)
			}
		}
	})

	t.Run("Single", func(t *testing.T) {
		for _, initial := range []Single{{}, SingleOf(first), SingleOf(Option{Label: "", Value: StringValue("")})} {
			h := newHarness(demoCatalog(), initial)
			h.controller.ClearSelection()
			if len(h.changes) != 1 {
				t.Fatalf("expected exactly 1 onChange call, got %d", len(h.changes))
			}
			if !h.changes[0].Empty() {
				t.Errorf("cleared single selection should be empty, got %v", h.changes[0])
			}
		}
	})
}

func TestOpeningResetsHighlight(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})

	h.press(KeyEnter)
	h.press(KeyArrowDown)
	h.press(KeyArrowDown)
	if h.controller.Highlighted() != 2 {
		t.Fatalf("highlight = %d, want 2", h.controller.Highlighted())
	}
	h.press(KeyEscape)

	// Each way of opening must reset.
	openers := map[string]func(){
		"enter":      func() { h.press(KeyEnter) },
		"space":      func() { h.press(KeySpace) },
		"arrow":      func() { h.press(KeyArrowUp) },
		"root click": func() { h.click(TargetRoot, 0) },
		"toggle":     func() { h.controller.ToggleOpen() },
	}
	for name, open := range openers {
		h.controller.Blur()
		h.controller.HandleMouse(MouseEvent{Action: MouseEnter, Target: TargetOption, Index: 3})
		open()
		if !h.controller.IsOpen() {
			t.Errorf("%s: list should be open", name)
		}
		if h.controller.Highlighted() != 0 {
			t.Errorf("%s: highlight = %d after opening, want 0", name, h.controller.Highlighted())
		}
	}
}

func TestScenarioSingleKeyboardCommit(t *testing.T) {
	h := newHarness(demoCatalog(), SingleOf(first))

	h.press(KeyEnter) // open
	h.press(KeyArrowDown)
	h.press(KeyArrowDown)

	highlighted, _ := h.controller.HighlightedOption()
	if highlighted.Label != "Third" {
		t.Fatalf("highlighted = %q, want Third", highlighted.Label)
	}

	h.press(KeyEnter)

	if h.controller.IsOpen() {
		t.Error("enter on an open list should close it")
	}
	selected, _ := h.controller.Value().Get()
	if selected.Label != "Third" {
		t.Errorf("selection = %q, want Third", selected.Label)
	}
}

func TestScenarioOpenThenImmediateCommit(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{})

	h.press(KeySpace)
	h.press(KeySpace)

	assertLabels(t, h.controller.Value(), "First")
	if h.controller.IsOpen() {
		t.Error("second space should close the list")
	}
}

func TestScenarioMultiClickToggle(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{})

	h.click(TargetRoot, 0)
	h.click(TargetOption, 1)
	assertLabels(t, h.controller.Value(), "Second")
	if h.controller.IsOpen() {
		t.Error("clicking an option should close the list")
	}

	h.click(TargetRoot, 0)
	h.click(TargetOption, 1)
	assertLabels(t, h.controller.Value())
}

func TestScenarioBlurCloses(t *testing.T) {
	h := newHarness(demoCatalog(), SingleOf(first))

	h.press(KeyEnter)
	h.press(KeyArrowDown)
	h.controller.Blur()

	if h.controller.IsOpen() {
		t.Error("blur should close the list")
	}
	if len(h.changes) != 0 {
		t.Errorf("blur should not change the selection, got %d onChange calls", len(h.changes))
	}

	// Blur on a closed list stays closed.
	h.controller.Blur()
	if h.controller.IsOpen() {
		t.Error("blur should never open the list")
	}
}

func TestEscape(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})

	if h.press(KeyEscape) {
		t.Error("escape on a closed list should not be consumed")
	}
	h.press(KeyEnter)
	if !h.press(KeyEscape) {
		t.Error("escape on an open list should be consumed")
	}
	if h.controller.IsOpen() {
		t.Error("escape should close the list")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})

	if h.press(KeyOther) {
		t.Error("unrecognised key should not be consumed when closed")
	}
	h.press(KeyEnter)
	h.press(KeyArrowDown)
	if h.press(KeyOther) {
		t.Error("unrecognised key should not be consumed when open")
	}
	if !h.controller.IsOpen() || h.controller.Highlighted() != 1 {
		t.Error("unrecognised key changed state")
	}
}

func TestKeysOnChildTargetsIgnored(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first})

	for _, target := range []Target{TargetClear, TargetChip, TargetOption} {
		for _, key := range []Key{KeyEnter, KeySpace, KeyArrowDown, KeyArrowUp, KeyEscape} {
			if h.controller.HandleKey(KeyEvent{Key: key, Target: target}) {
				t.Errorf("key %s on %s should not be consumed", key, target)
			}
		}
	}
	if h.controller.IsOpen() {
		t.Error("keys on child targets opened the list")
	}
	if len(h.changes) != 0 {
		t.Errorf("keys on child targets changed the selection %d times", len(h.changes))
	}
}

func TestClearClickDoesNotToggle(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first, second})

	h.click(TargetClear, 0)

	if h.controller.IsOpen() {
		t.Error("clicking clear should not open the list")
	}
	assertLabels(t, h.controller.Value())

	h.click(TargetRoot, 0)
	h.click(TargetClear, 0)
	if !h.controller.IsOpen() {
		t.Error("clicking clear should not close an open list")
	}
}

func TestChipClickRemovesItem(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first, third, fourth})

	h.click(TargetChip, 1)

	assertLabels(t, h.controller.Value(), "First", "Fourth")
	if h.controller.IsOpen() {
		t.Error("chip click should not toggle the list")
	}

	h.click(TargetChip, 7)
	if len(h.changes) != 1 {
		t.Errorf("out-of-range chip click should be ignored, got %d onChange calls", len(h.changes))
	}
}

func TestChipClickIgnoredInSingleMode(t *testing.T) {
	h := newHarness(demoCatalog(), SingleOf(first))

	h.click(TargetChip, 0)

	if len(h.changes) != 0 {
		t.Errorf("chip click in single mode changed the selection")
	}
	if h.controller.IsOpen() {
		t.Error("chip click in single mode toggled the list")
	}
}

func TestHoverSetsHighlight(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})
	h.press(KeyEnter)

	h.controller.HandleMouse(MouseEvent{Action: MouseEnter, Target: TargetOption, Index: 2})
	if h.controller.Highlighted() != 2 {
		t.Fatalf("hover highlight = %d, want 2", h.controller.Highlighted())
	}

	// Keyboard continues from the hovered row.
	h.press(KeyArrowDown)
	if h.controller.Highlighted() != 3 {
		t.Errorf("highlight after hover+down = %d, want 3", h.controller.Highlighted())
	}

	h.controller.HandleMouse(MouseEvent{Action: MouseEnter, Target: TargetOption, Index: 9})
	h.controller.HandleMouse(MouseEvent{Action: MouseEnter, Target: TargetOption, Index: -1})
	if h.controller.Highlighted() != 3 {
		t.Errorf("out-of-range hover moved highlight to %d", h.controller.Highlighted())
	}
}

func TestOptionClickOutOfRangeIgnored(t *testing.T) {
	h := newHarness(demoCatalog(), Single{})
	h.press(KeyEnter)

	h.click(TargetOption, 4)

	if len(h.changes) != 0 {
		t.Error("out-of-range option click changed the selection")
	}
	if !h.controller.IsOpen() {
		t.Error("out-of-range option click should not bubble to the root")
	}
}

func TestEmptyCatalog(t *testing.T) {
	h := newHarness(MustCatalog(), Multi{})

	h.press(KeyEnter)
	if !h.controller.IsOpen() {
		t.Fatal("enter should open an empty list")
	}
	h.press(KeyArrowDown)
	h.press(KeyArrowUp)
	if h.controller.Highlighted() != 0 {
		t.Errorf("navigation on an empty catalog moved highlight to %d", h.controller.Highlighted())
	}
	if _, ok := h.controller.HighlightedOption(); ok {
		t.Error("empty catalog should have no highlighted option")
	}

	h.press(KeyEnter)
	if h.controller.IsOpen() {
		t.Error("enter should close an empty list")
	}
	if len(h.changes) != 0 {
		t.Errorf("enter on an empty catalog changed the selection %d times", len(h.changes))
	}
}

func TestNilCatalogIsEmpty(t *testing.T) {
	h := newHarness[Single](nil, Single{})
	if h.controller.Catalog().Len() != 0 {
		t.Errorf("nil catalog length = %d, want 0", h.controller.Catalog().Len())
	}
	h.press(KeyEnter)
	h.press(KeyEnter)
	if len(h.changes) != 0 {
		t.Error("nil catalog produced a selection")
	}
}

func TestNavigationNeverCallsOnChange(t *testing.T) {
	h := newHarness(demoCatalog(), Multi{first})

	h.press(KeyArrowDown)
	h.press(KeyArrowDown)
	h.press(KeyArrowUp)
	h.press(KeyEscape)
	h.click(TargetRoot, 0)
	h.controller.HandleMouse(MouseEvent{Action: MouseEnter, Target: TargetOption, Index: 3})
	h.controller.Blur()

	if len(h.changes) != 0 {
		t.Errorf("navigation and open/close called onChange %d times", len(h.changes))
	}
}
