// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selection implements the state machine behind a dropdown
// select widget, independent of any rendering layer.
//
// A [Controller] reconciles three things: a fixed [Catalog] of
// options, a selection value owned by the caller ([Single] or [Multi]),
// and its own open/highlight state. Input arrives as [KeyEvent] and
// [MouseEvent] values that a presentation layer has already hit-tested
// and translated. The controller never writes the selection itself;
// it calls the onChange callback with the new value and the caller
// hands that value back via [Controller.SetValue]:
//
//	var tags selection.Multi
//	var controller *selection.Controller[selection.Multi]
//	controller = selection.NewController(catalog, tags, func(next selection.Multi) {
//	    tags = next
//	    controller.SetValue(next)
//	})
//
// Options are compared by key (derived from their value), so a
// catalog may not contain two options with the same value.
package selection
