// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// ErrDuplicateOption is returned by [NewCatalog] when two options
// share a value key.
var ErrDuplicateOption = errors.New("duplicate option value")

// Option is one selectable item: a display label and a machine value.
// Options are compared by [Option.Key], never by label.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value Value  `json:"value" yaml:"value"`
}

// Key returns the option's identity, derived from its value.
func (option Option) Key() string {
	return option.Value.Key()
}

// Same reports whether two options have the same identity.
func (option Option) Same(other Option) bool {
	return option.Key() == other.Key()
}

// Digest is a BLAKE3 hash over a catalog's labels and keys, in order.
type Digest [32]byte

// String returns the hex encoding of the digest.
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest decodes a hex digest produced by [Digest.String].
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing catalog digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("catalog digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// Catalog is the ordered, immutable list of options a user may pick
// from. Keys are unique within a catalog.
type Catalog struct {
	options []Option
	index   map[string]int
}

// NewCatalog copies options into a catalog. Returns
// [ErrDuplicateOption] if two options have the same key. An empty
// catalog is valid.
func NewCatalog(options []Option) (*Catalog, error) {
	catalog := &Catalog{
		options: make([]Option, len(options)),
		index:   make(map[string]int, len(options)),
	}
	for position, option := range options {
		key := option.Key()
		if previous, exists := catalog.index[key]; exists {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateOption,
				option.Value.Text(), previous, position)
		}
		catalog.index[key] = position
		catalog.options[position] = option
	}
	return catalog, nil
}

// MustCatalog is like [NewCatalog] but panics on error. For literals
// in tests and built-in definitions.
func MustCatalog(options ...Option) *Catalog {
	catalog, err := NewCatalog(options)
	if err != nil {
		panic("selection.MustCatalog: " + err.Error())
	}
	return catalog
}

// Len returns the number of options.
func (catalog *Catalog) Len() int {
	return len(catalog.options)
}

// At returns the option at position, or false if position is out of
// range.
func (catalog *Catalog) At(position int) (Option, bool) {
	if position < 0 || position >= len(catalog.options) {
		return Option{}, false
	}
	return catalog.options[position], true
}

// IndexOf returns the position of option in the catalog, or -1.
func (catalog *Catalog) IndexOf(option Option) int {
	position, exists := catalog.index[option.Key()]
	if !exists {
		return -1
	}
	return position
}

// Lookup finds the option with the given value.
func (catalog *Catalog) Lookup(value Value) (Option, bool) {
	position, exists := catalog.index[value.Key()]
	if !exists {
		return Option{}, false
	}
	return catalog.options[position], true
}

// Options returns a copy of the catalog's options in order.
func (catalog *Catalog) Options() []Option {
	result := make([]Option, len(catalog.options))
	copy(result, catalog.options)
	return result
}

// Digest hashes every option's key and label, length-prefixed, in
// catalog order. Reordering, relabeling, adding or removing options all
// change the digest.
func (catalog *Catalog) Digest() Digest {
	hasher := blake3.New()
	var lengthPrefix [8]byte
	writeField := func(field string) {
		binary.BigEndian.PutUint64(lengthPrefix[:], uint64(len(field)))
		hasher.Write(lengthPrefix[:])
		hasher.Write([]byte(field))
	}
	for _, option := range catalog.options {
		writeField(option.Key())
		writeField(option.Label)
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
