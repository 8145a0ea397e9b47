// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogdef

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bureau-select/lib/selection"
)

// ErrUnknownValue is returned when an initial value is not one of the
// field's options.
var ErrUnknownValue = errors.New("value is not an option")

// Definition is a form: an ordered list of select fields.
type Definition struct {
	// Title is shown above the form. Optional.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one select widget.
type Field struct {
	// Name identifies the field in saved state and in the printed
	// result. Unique within a definition.
	Name string `json:"name" yaml:"name"`

	// Label is the heading shown above the box. Defaults to Name.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Multiple selects multiple mode (chips) instead of single mode.
	Multiple bool `json:"multiple,omitempty" yaml:"multiple,omitempty"`

	// Placeholder is shown while nothing is selected.
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	Options []selection.Option `json:"options" yaml:"options"`

	// Initial lists the values selected when no saved state applies.
	// A bare scalar is accepted as a one-element list.
	Initial Values `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// Heading returns Label, or Name when Label is empty.
func (field Field) Heading() string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

// Catalog builds the field's option catalog.
func (field Field) Catalog() (*selection.Catalog, error) {
	catalog, err := selection.NewCatalog(field.Options)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}
	return catalog, nil
}

// InitialOptions resolves Initial against catalog, in the order the
// values are listed.
func (field Field) InitialOptions(catalog *selection.Catalog) ([]selection.Option, error) {
	options := make([]selection.Option, 0, len(field.Initial))
	for _, value := range field.Initial {
		option, ok := catalog.Lookup(value)
		if !ok {
			return nil, fmt.Errorf("field %q: initial value %s: %w", field.Name, value, ErrUnknownValue)
		}
		options = append(options, option)
	}
	return options, nil
}

// Values is a list of option values that also accepts a single scalar.
type Values []selection.Value

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (values *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var value selection.Value
		if err := node.Decode(&value); err != nil {
			return err
		}
		*values = Values{value}
		return nil
	}
	var list []selection.Value
	if err := node.Decode(&list); err != nil {
		return err
	}
	*values = list
	return nil
}

// UnmarshalJSON accepts either a string or number, or an array of them.
func (values *Values) UnmarshalJSON(data []byte) error {
	var list []selection.Value
	if err := json.Unmarshal(data, &list); err == nil {
		*values = list
		return nil
	}
	var value selection.Value
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("initial must be a value or a list of values: %w", err)
	}
	*values = Values{value}
	return nil
}

// Demo returns the built-in definition used when no file is given: the
// same four options offered once as a multiple select and once as a
// single select.
func Demo() *Definition {
	options := []selection.Option{
		{Label: "First", Value: selection.NumberValue(1)},
		{Label: "Second", Value: selection.NumberValue(2)},
		{Label: "Third", Value: selection.NumberValue(3)},
		{Label: "Fourth", Value: selection.NumberValue(4)},
	}
	return &Definition{
		Title: "Select demo",
		Fields: []Field{
			{
				Name:     "multiple",
				Label:    "Multiple",
				Multiple: true,
				Options:  options,
				Initial:  Values{selection.NumberValue(1)},
			},
			{
				Name:    "single",
				Label:   "Single",
				Options: options,
				Initial: Values{selection.NumberValue(1)},
			},
		},
	}
}
