// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bureau-select/lib/selectui"
)

// Output formats for the final selections.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var outputFormats = []string{outputText, outputJSON, outputYAML}

// writeResult prints the selections in format. Text is one
// "name: label, label" line per field, with "-" for an empty field.
func writeResult(writer io.Writer, format string, results []selectui.FieldResult) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)

	case outputYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return err
		}
		return encoder.Close()

	case outputText:
		for _, result := range results {
			labels := make([]string, len(result.Selected))
			for index, option := range result.Selected {
				labels[index] = option.Label
			}
			text := strings.Join(labels, ", ")
			if text == "" {
				text = "-"
			}
			if _, err := fmt.Fprintf(writer, "%s: %s\n", result.Name, text); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", format, outputFormats)
	}
}
