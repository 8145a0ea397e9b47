// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalogdef parses and validates form definitions: the list of
// select fields a viewer shows, each with its option catalog, selection
// mode and initial value.
//
// Definitions are authored as YAML or as JSONC (JSON extended with
// comments and trailing commas). The typical flow:
//
//  1. ReadFile or Parse: YAML/JSONC bytes → Definition
//  2. Validate: structural checks (names, catalogs, initial values)
//  3. Field.Catalog and Field.InitialOptions: build what the widgets need
package catalogdef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a definition file.
type Format string

const (
	// FormatYAML is YAML 1.2, parsed with yaml.v3.
	FormatYAML Format = "yaml"
	// FormatJSONC is JSON with // and /* */ comments and trailing commas.
	FormatJSONC Format = "jsonc"
)

// FormatFromPath picks the format from a file extension: .yaml and .yml
// are YAML, .json and .jsonc are JSONC.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return "", fmt.Errorf("%s: unknown definition format (want .yaml, .yml, .json or .jsonc)", path)
	}
}

// Parse decodes a definition. Unknown keys are rejected in both formats
// so a misspelled "multiple" does not silently produce a single-select
// field.
func Parse(data []byte, format Format) (*Definition, error) {
	var definition Definition
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&definition); err != nil {
			return nil, fmt.Errorf("parsing definition: %w", err)
		}
	case FormatJSONC:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&definition); err != nil {
			return nil, fmt.Errorf("parsing definition: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown definition format %q", format)
	}
	return &definition, nil
}

// ReadFile reads a definition from disk, choosing the format from the
// file extension.
func ReadFile(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	definition, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return definition, nil
}
