// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selectui is the interactive form viewer: a bubbletea model
// that lays out one select box per field of a catalogdef.Definition and
// owns every field's value.
//
// Each box reports changes through its onChange callback; the model
// records the new value, logs it, and hands it back to the box within
// the same Update, so no later event sees a stale value.
//
// Focus moves with Tab and Shift+Tab or by clicking. Moving focus away
// from a field closes its option list, as does clicking anywhere
// outside it. q quits while the focused list is closed, Ctrl+S quits
// and marks the selections for saving, Ctrl+C always quits.
//
// [TUILogHandler] routes slog records into the program so they appear
// in the status bar for a few seconds before the key help returns.
// After the program exits, [Model.Result] gives the final selections
// and [Model.Record] stores them in a selectstate.State.
package selectui
