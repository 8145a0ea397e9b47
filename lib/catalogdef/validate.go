// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package catalogdef

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/bureau-select/lib/selection"
)

// Validate checks a Definition for structural issues. Returns a list of
// human-readable issue descriptions. An empty list means the definition
// is valid.
//
// Checks:
//   - At least one field is required
//   - Field names are non-empty and unique
//   - Option labels are non-empty and option values are unique finite
//     numbers or strings
//   - Every initial value is one of the field's options, listed once
//   - A single-mode field has at most one initial value
func Validate(definition *Definition) []string {
	var issues []string

	if len(definition.Fields) == 0 {
		issues = append(issues, "definition has no fields (at least one field is required)")
	}

	fieldNames := make(map[string]int, len(definition.Fields))
	for index, field := range definition.Fields {
		prefix := fmt.Sprintf("fields[%d]", index)
		if strings.TrimSpace(field.Name) == "" {
			issues = append(issues, prefix+": name is required")
		} else if firstIndex, exists := fieldNames[field.Name]; exists {
			issues = append(issues, fmt.Sprintf(
				"%s %q: duplicate field name (first used at fields[%d])",
				prefix, field.Name, firstIndex,
			))
		} else {
			fieldNames[field.Name] = index
		}
		issues = append(issues, validateField(field, prefix)...)
	}

	return issues
}

func validateField(field Field, prefix string) []string {
	var issues []string
	if field.Name != "" {
		prefix = fmt.Sprintf("%s %q", prefix, field.Name)
	}

	for index, option := range field.Options {
		if option.Label == "" {
			issues = append(issues, fmt.Sprintf("%s: options[%d] has an empty label", prefix, index))
		}
		if !option.Value.Finite() {
			issues = append(issues, fmt.Sprintf("%s: options[%d] value %s is not a finite number", prefix, index, option.Value))
		}
	}

	catalog, err := selection.NewCatalog(field.Options)
	if err != nil {
		// Initial values cannot be checked against an invalid catalog.
		return append(issues, fmt.Sprintf("%s: %v", prefix, err))
	}

	if !field.Multiple && len(field.Initial) > 1 {
		issues = append(issues, fmt.Sprintf(
			"%s: single-select field has %d initial values (at most one allowed)",
			prefix, len(field.Initial),
		))
	}

	seen := make(map[string]bool, len(field.Initial))
	for index, value := range field.Initial {
		if _, ok := catalog.Lookup(value); !ok {
			issues = append(issues, fmt.Sprintf("%s: initial[%d] %s is not an option", prefix, index, value))
		}
		if seen[value.Key()] {
			issues = append(issues, fmt.Sprintf("%s: initial[%d] %s is listed twice", prefix, index, value))
		}
		seen[value.Key()] = true
	}

	return issues
}
