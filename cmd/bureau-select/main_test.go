// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/bureau-select/lib/config"
)

func TestApplyFlagsOnlyOverridesGivenFlags(t *testing.T) {
	var values flags
	flagSet := newFlagSet(&values)
	if err := flagSet.Parse([]string{"--definition", "form.yaml", "--no-state", "--width", "60"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Log.Level = "debug"
	applyFlags(cfg, flagSet, values)

	if cfg.Definition != "form.yaml" {
		t.Errorf("Definition = %q", cfg.Definition)
	}
	if !cfg.State.Disabled {
		t.Error("--no-state should disable state")
	}
	if cfg.BoxWidth != 60 {
		t.Errorf("BoxWidth = %d, want 60", cfg.BoxWidth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, an unset flag should keep the config value", cfg.Log.Level)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"positional argument", []string{"extra"}, "unexpected argument: extra"},
		{"output format", []string{"--output", "xml"}, "unknown --output format"},
		{"narrow box", []string{"--no-state", "--width", "5"}, "box_width must be at least"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(config.EnvironmentVariable, "")
			err := run(test.args)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Fatalf("run(%v) = %v, want an error containing %q", test.args, err, test.want)
			}
			var toolErr *ToolError
			if !errors.As(err, &toolErr) || toolErr.ExitCode() != 2 {
				t.Errorf("error %v should be a validation error", err)
			}
		})
	}
}

func TestLoadDefinition(t *testing.T) {
	demo, err := loadDefinition("")
	if err != nil || demo.Title != "Select demo" {
		t.Fatalf("empty path: %v, %v", demo, err)
	}

	directory := t.TempDir()
	valid := filepath.Join(directory, "form.yaml")
	writeFile(t, valid, `
title: Pick
fields:
  - name: color
    options:
      - {label: Red, value: red}
      - {label: Blue, value: blue}
    initial: blue
`)
	definition, err := loadDefinition(valid)
	if err != nil {
		t.Fatalf("valid definition: %v", err)
	}
	if len(definition.Fields) != 1 || definition.Fields[0].Name != "color" {
		t.Errorf("fields = %+v", definition.Fields)
	}

	invalid := filepath.Join(directory, "bad.jsonc")
	writeFile(t, invalid, `{
  // Two fields with the same name.
  "fields": [
    {"name": "a", "options": [{"label": "X", "value": 1}]},
    {"name": "a", "options": [{"label": "Y", "value": 2}]},
  ]
}`)
	_, err = loadDefinition(invalid)
	if err == nil || !strings.Contains(err.Error(), "invalid definition") {
		t.Errorf("duplicate field names: %v", err)
	}

	if _, err := loadDefinition(filepath.Join(directory, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFanoutHandler(t *testing.T) {
	var quiet, loud strings.Builder
	handler := fanoutHandler{
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&loud, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	logger := slog.New(handler).With("field", "tags")

	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled when any handler accepts it")
	}

	logger.Info("selection changed")
	logger.Warn("saved selection ignored")

	if strings.Contains(quiet.String(), "selection changed") {
		t.Error("the warn handler received an info record")
	}
	if !strings.Contains(quiet.String(), "saved selection ignored") {
		t.Error("the warn handler missed a warn record")
	}
	if strings.Count(loud.String(), "field=tags") != 2 {
		t.Errorf("the debug handler should get both records with attrs:\n%s", loud.String())
	}
}

func TestOpenFileLogHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "select.log")
	handler, closeFile, err := openFileLogHandler(path)
	if err != nil {
		t.Fatal(err)
	}
	record := slog.NewRecord(time.Now(), slog.LevelDebug, "select list toggled", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatal(err)
	}
	closeFile()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"select list toggled"`) {
		t.Errorf("log file = %s", data)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
