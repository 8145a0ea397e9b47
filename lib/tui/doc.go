// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders select widgets in a terminal. Built on bubbletea
// (Elm architecture), it turns key presses and mouse events into
// [selection.Controller] events and draws the result: a bordered box
// showing the selection, and a floating option list spliced over the
// host's view.
//
// [SelectBox] is the widget. The host owns the selection value: it
// passes an onChange callback when constructing the box and hands each
// accepted value back through SetValue. Hosts that lay out several
// boxes use the mode-independent [Widget] interface, call SetAnchor
// after layout so mouse hit-testing matches the drawn position, and
// finish each frame with [SpliceOverlay] for the box whose list is
// open.
//
// [DropdownOverlay], [RenderScrollbar] and [PadOverlayLine] are the
// lower-level pieces the box draws with; [Theme] and [KeyMap] configure
// colors and bindings.
package tui
