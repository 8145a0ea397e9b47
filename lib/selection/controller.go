// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"log/slog"
)

// ControllerOption configures a Controller.
type ControllerOption func(*controllerSettings)

type controllerSettings struct {
	logger *slog.Logger
}

// WithLogger sets the logger the controller reports transitions to,
// at debug level. The default discards everything.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(settings *controllerSettings) {
		settings.logger = logger
	}
}

// Controller is the state machine behind a select widget. It owns two
// pieces of state, whether the option list is open and which row is
// highlighted, and reads (never writes) a selection value owned by the
// caller. Every user action that should change the selection is
// reported through onChange; the caller applies the new value and
// hands it back with [Controller.SetValue].
//
// The type parameter fixes the mode: Controller[Single] or
// Controller[Multi].
//
// A Controller is not safe for concurrent use. It is meant to be
// driven from one event loop, and every method runs to completion
// before returning.
type Controller[S Selection[S]] struct {
	catalog  *Catalog
	value    S
	onChange func(S)
	logger   *slog.Logger

	open        bool
	highlighted int
}

// NewController creates a closed controller with the highlight on the
// first option. A nil catalog is treated as empty. onChange must not
// be nil.
func NewController[S Selection[S]](catalog *Catalog, value S, onChange func(S), options ...ControllerOption) *Controller[S] {
	if onChange == nil {
		panic("selection.NewController: onChange is nil")
	}
	if catalog == nil {
		catalog = MustCatalog()
	}
	settings := controllerSettings{logger: slog.New(slog.DiscardHandler)}
	for _, option := range options {
		option(&settings)
	}
	return &Controller[S]{
		catalog:  catalog,
		value:    value,
		onChange: onChange,
		logger:   settings.logger,
	}
}

// Catalog returns the option catalog.
func (controller *Controller[S]) Catalog() *Catalog {
	return controller.catalog
}

// Value returns the selection the caller last handed over.
func (controller *Controller[S]) Value() S {
	return controller.value
}

// SetValue replaces the selection the controller reads. The caller
// calls this after applying a value received through onChange, or
// whenever it changes the selection for its own reasons.
func (controller *Controller[S]) SetValue(value S) {
	controller.value = value
}

// Multiple reports whether the controller is in multiple-selection
// mode.
func (controller *Controller[S]) Multiple() bool {
	return controller.value.Multiple()
}

// IsOpen reports whether the option list is expanded.
func (controller *Controller[S]) IsOpen() bool {
	return controller.open
}

// Highlighted returns the catalog position of the keyboard/mouse
// cursor. For an empty catalog it is 0, which is out of range.
func (controller *Controller[S]) Highlighted() int {
	return controller.highlighted
}

// HighlightedOption returns the highlighted option, or false when the
// catalog is empty.
func (controller *Controller[S]) HighlightedOption() (Option, bool) {
	return controller.catalog.At(controller.highlighted)
}

// IsSelected reports whether option is part of the current selection.
func (controller *Controller[S]) IsSelected(option Option) bool {
	return controller.value.Contains(option)
}

// ToggleOpen opens a closed list or closes an open one.
func (controller *Controller[S]) ToggleOpen() {
	controller.setOpen(!controller.open)
}

// Blur closes the list unconditionally. Called when the widget loses
// focus.
func (controller *Controller[S]) Blur() {
	controller.setOpen(false)
}

// SelectOption reports the selection that results from the user
// picking option. In multiple mode that toggles membership; in single
// mode it replaces the selection, and picking the current selection
// again reports nothing. Open state and highlight are untouched.
func (controller *Controller[S]) SelectOption(option Option) {
	next, changed := controller.value.Toggle(option)
	if !changed {
		controller.logger.Debug("option already selected",
			"value", option.Value.Text(),
		)
		return
	}
	controller.emit("select", next)
}

// ClearSelection reports an empty selection: an empty set in multiple
// mode, no selection in single mode.
func (controller *Controller[S]) ClearSelection() {
	controller.emit("clear", controller.value.Cleared())
}

// HandleKey runs one key press through the keyboard state machine and
// reports whether the controller consumed it. Events aimed at anything
// other than the root are not consumed, so a key press on the clear
// affordance is never handled twice.
func (controller *Controller[S]) HandleKey(event KeyEvent) bool {
	if event.Target != TargetRoot {
		return false
	}

	switch event.Key {
	case KeyEnter, KeySpace:
		if !controller.open {
			controller.setOpen(true)
			return true
		}
		// Commit the highlighted row and close in the same press.
		if option, ok := controller.HighlightedOption(); ok {
			controller.SelectOption(option)
		}
		controller.setOpen(false)
		return true

	case KeyArrowUp, KeyArrowDown:
		if !controller.open {
			controller.setOpen(true)
			return true
		}
		step := 1
		if event.Key == KeyArrowUp {
			step = -1
		}
		controller.moveHighlight(controller.highlighted + step)
		return true

	case KeyEscape:
		if !controller.open {
			return false
		}
		controller.setOpen(false)
		return true
	}
	return false
}

// HandleMouse dispatches a pointer event. The target's own handler
// runs first; a click then bubbles to the root (toggling the list)
// unless the target stopped it. Option rows, the clear affordance and
// chip remove affordances all stop propagation.
func (controller *Controller[S]) HandleMouse(event MouseEvent) {
	propagate := true

	switch event.Target {
	case TargetOption:
		propagate = false
		option, ok := controller.catalog.At(event.Index)
		if !ok {
			return
		}
		switch event.Action {
		case MouseEnter:
			controller.moveHighlight(event.Index)
		case MouseClick:
			controller.SelectOption(option)
			controller.setOpen(false)
		}

	case TargetClear:
		propagate = false
		if event.Action == MouseClick {
			controller.ClearSelection()
		}

	case TargetChip:
		propagate = false
		if event.Action != MouseClick || !controller.Multiple() {
			return
		}
		members := controller.value.Options()
		if event.Index < 0 || event.Index >= len(members) {
			return
		}
		controller.SelectOption(members[event.Index])
	}

	if propagate && event.Action == MouseClick {
		controller.ToggleOpen()
	}
}

// moveHighlight sets the highlight to position if it is inside the
// catalog. Out-of-range positions are ignored, not clamped.
func (controller *Controller[S]) moveHighlight(position int) {
	if position < 0 || position >= controller.catalog.Len() {
		return
	}
	controller.highlighted = position
}

// setOpen is the only place the open flag changes. Every closed-to-open
// transition resets the highlight to the first row, whatever caused it.
func (controller *Controller[S]) setOpen(open bool) {
	if controller.open == open {
		return
	}
	controller.open = open
	if open {
		controller.highlighted = 0
	}
	controller.logger.Debug("select list toggled", "open", open)
}

func (controller *Controller[S]) emit(action string, next S) {
	controller.logger.Debug("selection changed",
		"action", action,
		"selected", len(next.Options()),
	)
	controller.onChange(next)
}
