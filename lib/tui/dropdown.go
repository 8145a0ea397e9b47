// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MaxVisibleOptions is the tallest the option list grows before it
// scrolls.
const MaxVisibleOptions = 15

// DropdownRow is one option as the list displays it.
type DropdownRow struct {
	Label    string
	Selected bool
}

// DropdownOverlay renders the floating option list anchored below a
// select box. It is rebuilt from controller state on every frame; the
// only state it carries across frames is Offset, which the owning
// SelectBox stores.
type DropdownOverlay struct {
	Rows        []DropdownRow
	Highlighted int // Catalog position of the highlighted row.
	Offset      int // Index of the first visible row.
	AnchorX     int // Screen X coordinate of the list's top-left corner.
	AnchorY     int // Screen Y coordinate of the list's top-left corner.
	MinWidth    int // The list is at least as wide as the box above it.
}

// VisibleRows returns how many option rows fit in the list.
func (dropdown *DropdownOverlay) VisibleRows() int {
	return min(len(dropdown.Rows), MaxVisibleOptions)
}

// Height returns the number of screen lines Render produces. An empty
// list still takes one line for its placeholder.
func (dropdown *DropdownOverlay) Height() int {
	return max(dropdown.VisibleRows(), 1)
}

// overflows reports whether there are more rows than fit, in which
// case the rightmost column is a scrollbar.
func (dropdown *DropdownOverlay) overflows() bool {
	return len(dropdown.Rows) > MaxVisibleOptions
}

// Width returns the total visible width of the rendered list in
// columns. Render and the mouse hit-testing both use it.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := ansi.StringWidth(emptyListText)
	for _, row := range dropdown.Rows {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(row.Label))
	}
	// Layout " > ✓ LABEL ": padding, highlight marker, space,
	// selected marker, space, label, padding.
	width := max(1+1+1+1+1+maxLabelWidth+1, dropdown.MinWidth)
	if dropdown.overflows() {
		width++
	}
	return width
}

// EnsureVisible adjusts Offset so the highlighted row is inside the
// visible window and the window never runs past the end of the list.
func (dropdown *DropdownOverlay) EnsureVisible() {
	visible := dropdown.VisibleRows()
	if visible == 0 {
		dropdown.Offset = 0
		return
	}

	maxOffset := max(len(dropdown.Rows)-visible, 0)
	dropdown.Offset = min(max(dropdown.Offset, 0), maxOffset)

	if dropdown.Highlighted < dropdown.Offset {
		dropdown.Offset = dropdown.Highlighted
	}
	if dropdown.Highlighted >= dropdown.Offset+visible {
		dropdown.Offset = dropdown.Highlighted - visible + 1
	}
}

// Scroll moves the visible window by delta rows without moving the
// highlight, clamped to the list.
func (dropdown *DropdownOverlay) Scroll(delta int) {
	maxOffset := max(len(dropdown.Rows)-dropdown.VisibleRows(), 0)
	dropdown.Offset = min(max(dropdown.Offset+delta, 0), maxOffset)
}

// Contains returns true if the screen coordinate (x, y) falls within
// the list's bounding rectangle.
func (dropdown *DropdownOverlay) Contains(x, y int) bool {
	if y < dropdown.AnchorY || y >= dropdown.AnchorY+dropdown.Height() {
		return false
	}
	return x >= dropdown.AnchorX && x < dropdown.AnchorX+dropdown.Width()
}

// OptionAtY returns the catalog position of the row at screen Y, or -1
// if Y is outside the rows.
func (dropdown *DropdownOverlay) OptionAtY(y int) int {
	row := y - dropdown.AnchorY
	if row < 0 || row >= dropdown.VisibleRows() {
		return -1
	}
	index := dropdown.Offset + row
	if index >= len(dropdown.Rows) {
		return -1
	}
	return index
}

const emptyListText = "No options"

// Render produces the list lines for overlay splicing. Every line has
// the same visible width and a solid background. The highlighted row
// uses the highlight colors; selected rows get a tinted background and
// a check mark.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2
	if dropdown.overflows() {
		innerWidth--
	}

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.ListBackground).
		Foreground(theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.NormalText)
	highlightedStyle := lipgloss.NewStyle().
		Background(theme.HighlightedBackground).
		Foreground(theme.HighlightedForeground).
		Bold(true)

	if len(dropdown.Rows) == 0 {
		faint := backgroundStyle.Foreground(theme.FaintText).Italic(true)
		return []string{PadOverlayLine(faint.Render(emptyListText), innerWidth, backgroundStyle)}
	}

	var scrollbar []string
	if dropdown.overflows() {
		scrollbar = strings.Split(RenderScrollbar(theme, dropdown.VisibleRows(),
			len(dropdown.Rows), dropdown.VisibleRows(), dropdown.Offset), "\n")
	}

	lines := make([]string, 0, dropdown.VisibleRows())
	for row := 0; row < dropdown.VisibleRows(); row++ {
		index := dropdown.Offset + row
		option := dropdown.Rows[index]

		style := backgroundStyle
		highlightMarker := " "
		switch {
		case index == dropdown.Highlighted:
			style = highlightedStyle
			highlightMarker = ">"
		case option.Selected:
			style = selectedStyle
		}
		selectedMarker := " "
		if option.Selected {
			selectedMarker = "✓"
		}

		label := option.Label
		labelRoom := innerWidth - 4
		if ansi.StringWidth(label) > labelRoom {
			label = ansi.Truncate(label, labelRoom, "…")
		}
		content := highlightMarker + " " + selectedMarker + " " + label
		line := PadOverlayLine(style.Render(content), innerWidth, style)
		if scrollbar != nil {
			line += backgroundStyle.Render(scrollbar[row])
		}
		lines = append(lines, line)
	}
	return lines
}
