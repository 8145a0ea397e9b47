// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selectstate remembers selections between runs. A state file
// holds, per field name, the values that were selected and the digest
// of the catalog they were selected from. A saved selection is only
// restored against the same catalog: if the options changed, the
// caller falls back to the field's initial value.
//
// The file is CBOR (see lib/codec) and is replaced atomically on save.
package selectstate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bureau-foundation/bureau-select/lib/codec"
	"github.com/bureau-foundation/bureau-select/lib/selection"
)

// CurrentVersion is written to every saved state.
const CurrentVersion = 1

// ErrStaleCatalog is returned by Restore when the catalog no longer
// matches the one the selection was saved against.
var ErrStaleCatalog = errors.New("catalog changed since the selection was saved")

// ErrNoSavedSelection is returned by Restore for a field that was never
// saved.
var ErrNoSavedSelection = errors.New("no saved selection")

// State is the content of a state file.
type State struct {
	Version int                   `cbor:"version"`
	Fields  map[string]FieldState `cbor:"fields"`
}

// FieldState is one field's saved selection.
type FieldState struct {
	Digest selection.Digest  `cbor:"digest"`
	Values []selection.Value `cbor:"values"`
}

// New returns an empty state at the current version.
func New() *State {
	return &State{Version: CurrentVersion, Fields: make(map[string]FieldState)}
}

// Record stores the options selected in field, tagged with the digest
// of catalog.
func (state *State) Record(field string, catalog *selection.Catalog, selected []selection.Option) {
	values := make([]selection.Value, len(selected))
	for index, option := range selected {
		values[index] = option.Value
	}
	if state.Fields == nil {
		state.Fields = make(map[string]FieldState)
	}
	state.Fields[field] = FieldState{Digest: catalog.Digest(), Values: values}
}

// Restore returns the options saved for field, resolved against
// catalog in their saved order. Returns ErrNoSavedSelection if nothing
// was saved and ErrStaleCatalog if the catalog digest differs.
func (state *State) Restore(field string, catalog *selection.Catalog) ([]selection.Option, error) {
	saved, exists := state.Fields[field]
	if !exists {
		return nil, fmt.Errorf("field %q: %w", field, ErrNoSavedSelection)
	}
	if saved.Digest != catalog.Digest() {
		return nil, fmt.Errorf("field %q: %w", field, ErrStaleCatalog)
	}

	options := make([]selection.Option, 0, len(saved.Values))
	seen := make(map[string]bool, len(saved.Values))
	for _, value := range saved.Values {
		if seen[value.Key()] {
			continue
		}
		seen[value.Key()] = true
		option, ok := catalog.Lookup(value)
		if !ok {
			// Unreachable with a matching digest unless the file was
			// edited by hand.
			return nil, fmt.Errorf("field %q: saved value %s: %w", field, value, ErrStaleCatalog)
		}
		options = append(options, option)
	}
	return options, nil
}

// Names returns the saved field names in sorted order.
func (state *State) Names() []string {
	names := make([]string, 0, len(state.Fields))
	for name := range state.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a state file. A missing file is an empty state, not an
// error: the first run has nothing to restore.
func Load(path string) (*State, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}
	defer file.Close()

	var state State
	if err := codec.NewDecoder(file).Decode(&state); err != nil {
		return nil, fmt.Errorf("decoding state file %s: %w", path, err)
	}
	if state.Version != CurrentVersion {
		return nil, fmt.Errorf("state file %s has version %d, want %d", path, state.Version, CurrentVersion)
	}
	if state.Fields == nil {
		state.Fields = make(map[string]FieldState)
	}
	return &state, nil
}

// Save writes the state to path atomically: it encodes into a
// temporary file in the same directory, syncs it, then renames it over
// the target. A crash mid-write leaves the previous file intact.
func Save(path string, state *State) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	temporary, err := os.CreateTemp(directory, ".select-state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary state file: %w", err)
	}
	temporaryPath := temporary.Name()
	succeeded := false
	defer func() {
		if !succeeded {
			temporary.Close()
			os.Remove(temporaryPath)
		}
	}()

	state.Version = CurrentVersion
	if err := codec.NewEncoder(temporary).Encode(state); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		return fmt.Errorf("syncing state file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing state file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	succeeded = true

	// Sync the directory so the rename survives a power loss.
	parentDirectory, err := os.Open(directory)
	if err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}
	return nil
}
