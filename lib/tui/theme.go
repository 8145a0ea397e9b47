// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for select widgets. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Box chrome. FocusBorder replaces Border while the widget has
	// keyboard focus.
	Border      lipgloss.Color
	FocusBorder lipgloss.Color

	// Option rows. A row that is both selected and highlighted uses
	// the highlighted colors.
	SelectedBackground    lipgloss.Color
	HighlightedBackground lipgloss.Color
	HighlightedForeground lipgloss.Color

	// Chips (multiple mode) and the remove/clear affordances.
	ChipBorder   lipgloss.Color
	RemoveAccent lipgloss.Color

	// Background of the floating option list.
	ListBackground lipgloss.Color

	// Status bar.
	HelpText    lipgloss.Color
	WarningText lipgloss.Color
	ErrorText   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Border:      lipgloss.Color("243"), // mid gray
	FocusBorder: lipgloss.Color("39"),  // bright blue

	SelectedBackground:    lipgloss.Color("24"), // muted blue
	HighlightedBackground: lipgloss.Color("33"), // strong blue
	HighlightedForeground: lipgloss.Color("255"),

	ChipBorder:   lipgloss.Color("243"),
	RemoveAccent: lipgloss.Color("196"), // red

	ListBackground: lipgloss.Color("236"),

	HelpText:    lipgloss.Color("241"),
	WarningText: lipgloss.Color("220"),
	ErrorText:   lipgloss.Color("196"),
}

// ThemeOverrides holds optional replacement colors, keyed the same way
// as the config file. Empty strings keep the base color.
type ThemeOverrides struct {
	NormalText            string `yaml:"normal_text"`
	FaintText             string `yaml:"faint_text"`
	Border                string `yaml:"border"`
	FocusBorder           string `yaml:"focus_border"`
	SelectedBackground    string `yaml:"selected_background"`
	HighlightedBackground string `yaml:"highlighted_background"`
	HighlightedForeground string `yaml:"highlighted_foreground"`
	ChipBorder            string `yaml:"chip_border"`
	RemoveAccent          string `yaml:"remove_accent"`
	ListBackground        string `yaml:"list_background"`
	HelpText              string `yaml:"help_text"`
}

// Apply returns a copy of theme with every non-empty override applied.
// Colors must be ANSI 256 codes ("0"-"255") or hex ("#rrggbb").
func (overrides ThemeOverrides) Apply(theme Theme) (Theme, error) {
	fields := []struct {
		name   string
		value  string
		target *lipgloss.Color
	}{
		{"normal_text", overrides.NormalText, &theme.NormalText},
		{"faint_text", overrides.FaintText, &theme.FaintText},
		{"border", overrides.Border, &theme.Border},
		{"focus_border", overrides.FocusBorder, &theme.FocusBorder},
		{"selected_background", overrides.SelectedBackground, &theme.SelectedBackground},
		{"highlighted_background", overrides.HighlightedBackground, &theme.HighlightedBackground},
		{"highlighted_foreground", overrides.HighlightedForeground, &theme.HighlightedForeground},
		{"chip_border", overrides.ChipBorder, &theme.ChipBorder},
		{"remove_accent", overrides.RemoveAccent, &theme.RemoveAccent},
		{"list_background", overrides.ListBackground, &theme.ListBackground},
		{"help_text", overrides.HelpText, &theme.HelpText},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if !validColor(field.value) {
			return theme, fmt.Errorf("theme.%s: %q is not an ANSI 256 code or #rrggbb color", field.name, field.value)
		}
		*field.target = lipgloss.Color(field.value)
	}
	return theme, nil
}

func validColor(value string) bool {
	if len(value) == 7 && value[0] == '#' {
		_, err := strconv.ParseUint(value[1:], 16, 32)
		return err == nil
	}
	code, err := strconv.Atoi(value)
	return err == nil && code >= 0 && code <= 255
}
