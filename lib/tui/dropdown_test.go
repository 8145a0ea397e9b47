// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func rows(count int) []DropdownRow {
	result := make([]DropdownRow, count)
	for index := range result {
		result[index] = DropdownRow{Label: fmt.Sprintf("Row %d", index)}
	}
	return result
}

func TestDropdownEnsureVisible(t *testing.T) {
	dropdown := DropdownOverlay{Rows: rows(40), Highlighted: 20}
	dropdown.EnsureVisible()
	if dropdown.Offset != 20-MaxVisibleOptions+1 {
		t.Errorf("offset = %d, want %d", dropdown.Offset, 20-MaxVisibleOptions+1)
	}

	dropdown.Highlighted = 2
	dropdown.EnsureVisible()
	if dropdown.Offset != 2 {
		t.Errorf("offset = %d after moving above the window, want 2", dropdown.Offset)
	}

	dropdown.Offset = 100
	dropdown.Highlighted = 39
	dropdown.EnsureVisible()
	if dropdown.Offset != 40-MaxVisibleOptions {
		t.Errorf("offset = %d, want clamped to %d", dropdown.Offset, 40-MaxVisibleOptions)
	}
}

func TestDropdownScrollClamps(t *testing.T) {
	dropdown := DropdownOverlay{Rows: rows(20)}
	dropdown.Scroll(-3)
	if dropdown.Offset != 0 {
		t.Errorf("offset = %d after scrolling up from the top", dropdown.Offset)
	}
	dropdown.Scroll(50)
	if dropdown.Offset != 20-MaxVisibleOptions {
		t.Errorf("offset = %d, want %d", dropdown.Offset, 20-MaxVisibleOptions)
	}
}

func TestDropdownHitTesting(t *testing.T) {
	dropdown := DropdownOverlay{Rows: rows(20), Offset: 3, AnchorX: 4, AnchorY: 10}

	if !dropdown.Contains(4, 10) {
		t.Error("top-left corner should be inside")
	}
	if dropdown.Contains(3, 10) || dropdown.Contains(4, 9) {
		t.Error("points left of or above the anchor should be outside")
	}
	if dropdown.Contains(4, 10+MaxVisibleOptions) {
		t.Error("row below the last visible row should be outside")
	}
	if got := dropdown.OptionAtY(10); got != 3 {
		t.Errorf("OptionAtY(top) = %d, want the offset row 3", got)
	}
	if got := dropdown.OptionAtY(9); got != -1 {
		t.Errorf("OptionAtY(above) = %d, want -1", got)
	}
}

func TestDropdownRender(t *testing.T) {
	dropdown := DropdownOverlay{
		Rows: []DropdownRow{
			{Label: "First", Selected: true},
			{Label: "Second"},
		},
		Highlighted: 1,
		MinWidth:    20,
	}
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, dropdown.Width())
		}
	}
	if got := ansi.Strip(lines[0]); !strings.Contains(got, "✓ First") || strings.Contains(got, ">") {
		t.Errorf("selected row = %q", got)
	}
	if got := ansi.Strip(lines[1]); !strings.Contains(got, "> ") || !strings.Contains(got, "Second") {
		t.Errorf("highlighted row = %q", got)
	}
}

func TestDropdownRenderEmpty(t *testing.T) {
	dropdown := DropdownOverlay{}
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 1 || !strings.Contains(ansi.Strip(lines[0]), emptyListText) {
		t.Errorf("empty list rendered %q", lines)
	}
	if dropdown.OptionAtY(0) != -1 {
		t.Error("empty list has no option rows")
	}
}

func TestDropdownScrollbarColumn(t *testing.T) {
	dropdown := DropdownOverlay{Rows: rows(30), MinWidth: 20}
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != MaxVisibleOptions {
		t.Fatalf("got %d lines, want %d", len(lines), MaxVisibleOptions)
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, dropdown.Width())
		}
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaa\nbbbbbbbb"
	got := ansi.Strip(SpliceOverlay(view, []string{"XY", "ZW"}, 2, 1))
	want := "aaaaaaaa\nbbXYbbbb\n  ZW"
	if got != want {
		t.Errorf("SpliceOverlay = %q, want %q", got, want)
	}
}
