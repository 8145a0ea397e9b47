// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind distinguishes the two shapes an option value can take.
type ValueKind int

const (
	// KindString is a text value. The zero Value is the empty string.
	KindString ValueKind = iota
	// KindNumber is a numeric value.
	KindNumber
)

// Value is the machine value of an option: either a string or a
// number. The two kinds never compare equal, so the string "1" and
// the number 1 are distinct values.
type Value struct {
	kind   ValueKind
	text   string
	number float64
}

// StringValue returns a string-kinded value.
func StringValue(text string) Value {
	return Value{kind: KindString, text: text}
}

// NumberValue returns a number-kinded value.
func NumberValue(number float64) Value {
	return Value{kind: KindNumber, number: number}
}

// Finite reports whether the value is a string or a finite number.
// NaN and the infinities have no JSON form.
func (value Value) Finite() bool {
	return value.kind != KindNumber || !(math.IsNaN(value.number) || math.IsInf(value.number, 0))
}

// Kind reports whether the value is a string or a number.
func (value Value) Kind() ValueKind {
	return value.kind
}

// Text returns the string form of a string value, or the formatted
// number for a number value.
func (value Value) Text() string {
	if value.kind == KindNumber {
		return strconv.FormatFloat(value.number, 'g', -1, 64)
	}
	return value.text
}

// Number returns the numeric form and true for number values, and
// (0, false) for string values.
func (value Value) Number() (float64, bool) {
	if value.kind != KindNumber {
		return 0, false
	}
	return value.number, true
}

// Key returns the canonical identity of the value. Options are
// compared by key, so two values with the same key are the same value.
func (value Value) Key() string {
	if value.kind == KindNumber {
		return "n:" + value.Text()
	}
	return "s:" + value.text
}

// String implements fmt.Stringer.
func (value Value) String() string {
	return value.Text()
}

// MarshalJSON encodes strings as JSON strings and numbers as JSON
// numbers.
func (value Value) MarshalJSON() ([]byte, error) {
	if value.kind == KindNumber {
		return json.Marshal(value.number)
	}
	return json.Marshal(value.text)
}

// UnmarshalJSON accepts a JSON string or a JSON number.
func (value *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch typed := raw.(type) {
	case string:
		*value = StringValue(typed)
	case float64:
		*value = NumberValue(typed)
	default:
		return fmt.Errorf("option value must be a string or a number, got %s", data)
	}
	return nil
}

// MarshalYAML encodes strings as YAML strings and numbers as YAML
// numbers.
func (value Value) MarshalYAML() (any, error) {
	if value.kind == KindNumber {
		return value.number, nil
	}
	return value.text, nil
}

// UnmarshalYAML accepts a scalar. Plain scalars that resolve to !!int
// or !!float become numbers; everything else (including quoted "1")
// stays a string.
func (value *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: option value must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		var number float64
		if err := node.Decode(&number); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return fmt.Errorf("line %d: option value %s is not a finite number", node.Line, node.Value)
		}
		*value = NumberValue(number)
	default:
		*value = StringValue(node.Value)
	}
	return nil
}

// MarshalText encodes the value as its key, so text-based encoders
// (CBOR text strings, map keys) keep the string/number distinction.
func (value Value) MarshalText() ([]byte, error) {
	return []byte(value.Key()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (value *Value) UnmarshalText(data []byte) error {
	parsed, err := ParseKey(string(data))
	if err != nil {
		return err
	}
	*value = parsed
	return nil
}

// ParseKey parses the output of [Value.Key].
func ParseKey(key string) (Value, error) {
	if len(key) < 2 || key[1] != ':' {
		return Value{}, fmt.Errorf("malformed value key %q", key)
	}
	switch key[0] {
	case 's':
		return StringValue(key[2:]), nil
	case 'n':
		number, err := strconv.ParseFloat(key[2:], 64)
		if err != nil {
			return Value{}, fmt.Errorf("malformed number in value key %q: %w", key, err)
		}
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return Value{}, fmt.Errorf("value key %q is not a finite number", key)
		}
		return NumberValue(number), nil
	default:
		return Value{}, fmt.Errorf("unknown kind in value key %q", key)
	}
}
