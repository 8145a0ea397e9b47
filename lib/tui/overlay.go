// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Uses ANSI-aware
// truncation so escape sequences in the view survive on both sides of
// the overlay. Lines the view does not have yet are padded with
// spaces, so a list opened near the bottom of a short view still
// shows in full.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 || anchorY < 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for len(viewLines) < anchorY+len(overlayLines) {
		viewLines = append(viewLines, "")
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder

		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to innerWidth and adds one column
// of background on each side, so the result is innerWidth+2 wide.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(innerWidth-ansi.StringWidth(styledContent), 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
