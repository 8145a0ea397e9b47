// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/bureau-select/lib/selection"
)

// DefaultBoxWidth is the select box width in columns, borders included.
const DefaultBoxWidth = 40

// minBoxWidth leaves room for a one-column value area next to the
// trailer.
const minBoxWidth = 4 + trailerWidth + 1

// trailerWidth is the width of " × │ ▾" at the right of the first
// content line.
const trailerWidth = 6

// Widget is the part of a select box that a host model needs without
// knowing the selection mode.
type Widget interface {
	HandleKey(message tea.KeyMsg) bool
	HandleMouse(message tea.MouseMsg) bool
	Focus()
	Blur()
	Focused() bool
	IsOpen() bool
	SetAnchor(x, y int)
	Width() int
	Height() int
	View() string
	Overlay() (lines []string, anchorX, anchorY int)
	Selected() []selection.Option
}

// SelectBox is the terminal rendering of a select widget. It draws the
// box (chips or a label, the clear affordance, a divider and a caret)
// and the floating option list, hit-tests mouse events against what it
// drew, and feeds the resulting events to its [selection.Controller].
//
// The selection value belongs to whoever passed onChange: the box only
// shows what it was last given through the constructor or SetValue.
type SelectBox[S selection.Selection[S]] struct {
	controller  *selection.Controller[S]
	theme       Theme
	keys        KeyMap
	width       int
	placeholder string

	anchorX int // Screen X of the box's top-left corner.
	anchorY int // Screen Y of the box's top-left corner.
	focused bool

	listOffset int // First visible row of the option list.
}

// NewSelectBox creates an unfocused, closed select box at (0, 0).
func NewSelectBox[S selection.Selection[S]](catalog *selection.Catalog, value S, onChange func(S), options ...selection.ControllerOption) *SelectBox[S] {
	return &SelectBox[S]{
		controller:  selection.NewController(catalog, value, onChange, options...),
		theme:       DefaultTheme,
		keys:        DefaultKeyMap,
		width:       DefaultBoxWidth,
		placeholder: "Select…",
	}
}

// Controller returns the state machine behind the box.
func (box *SelectBox[S]) Controller() *selection.Controller[S] {
	return box.controller
}

// SetValue hands the box the selection its owner now holds.
func (box *SelectBox[S]) SetValue(value S) {
	box.controller.SetValue(value)
}

// SetTheme replaces the color palette.
func (box *SelectBox[S]) SetTheme(theme Theme) {
	box.theme = theme
}

// SetKeyMap replaces the key bindings.
func (box *SelectBox[S]) SetKeyMap(keys KeyMap) {
	box.keys = keys
}

// SetWidth sets the box width in columns, borders included.
func (box *SelectBox[S]) SetWidth(width int) {
	box.width = max(width, minBoxWidth)
}

// SetPlaceholder sets the text shown when nothing is selected.
func (box *SelectBox[S]) SetPlaceholder(placeholder string) {
	box.placeholder = placeholder
}

// SetAnchor positions the box's top-left corner in screen coordinates.
// The host calls this whenever its layout changes so mouse hit-testing
// matches what is drawn.
func (box *SelectBox[S]) SetAnchor(x, y int) {
	box.anchorX = x
	box.anchorY = y
}

// Focus gives the box keyboard focus.
func (box *SelectBox[S]) Focus() {
	box.focused = true
}

// Blur removes keyboard focus and closes the option list.
func (box *SelectBox[S]) Blur() {
	box.focused = false
	box.controller.Blur()
}

// Focused reports whether the box has keyboard focus.
func (box *SelectBox[S]) Focused() bool {
	return box.focused
}

// IsOpen reports whether the option list is showing.
func (box *SelectBox[S]) IsOpen() bool {
	return box.controller.IsOpen()
}

// Selected returns the options in the current selection.
func (box *SelectBox[S]) Selected() []selection.Option {
	return box.controller.Value().Options()
}

// Width returns the box width in columns.
func (box *SelectBox[S]) Width() int {
	return box.width
}

// Height returns the box height in lines, borders included. Chips wrap
// onto extra lines in multiple mode, so this can change after a
// selection.
func (box *SelectBox[S]) Height() int {
	return len(box.layout().lines) + 2
}

// HandleKey feeds a key press to the controller while the box has
// focus. The terminal has no focusable children inside the box, so
// every key press targets the root. Reports whether it was consumed.
func (box *SelectBox[S]) HandleKey(message tea.KeyMsg) bool {
	if !box.focused {
		return false
	}
	wasOpen := box.controller.IsOpen()
	handled := box.controller.HandleKey(selection.KeyEvent{
		Key:    box.keys.Translate(message),
		Target: selection.TargetRoot,
	})
	if handled {
		box.syncList(wasOpen)
	}
	return handled
}

// HandleMouse hit-tests a mouse event against the open option list and
// the box. A press inside the box focuses it; a press anywhere else
// blurs it. Reports whether the event landed on the box or its list.
func (box *SelectBox[S]) HandleMouse(message tea.MouseMsg) bool {
	wasOpen := box.controller.IsOpen()

	if wasOpen {
		list := box.dropdown()
		if list.Contains(message.X, message.Y) {
			box.handleListMouse(list, message)
			return true
		}
	}

	if !box.contains(message.X, message.Y) {
		if isClick(message) && box.focused {
			box.Blur()
		}
		return false
	}

	if message.Action != tea.MouseActionPress || message.Button != tea.MouseButtonLeft {
		return true
	}

	box.focused = true
	target, index := box.hitTest(message.X, message.Y)
	box.controller.HandleMouse(selection.MouseEvent{
		Action: selection.MouseClick,
		Target: target,
		Index:  index,
	})
	box.syncList(wasOpen)
	return true
}

// isClick reports whether message is a button press. Wheel events are
// also reported as presses but never move focus.
func isClick(message tea.MouseMsg) bool {
	if message.Action != tea.MouseActionPress {
		return false
	}
	switch message.Button {
	case tea.MouseButtonLeft, tea.MouseButtonMiddle, tea.MouseButtonRight:
		return true
	}
	return false
}

func (box *SelectBox[S]) handleListMouse(list DropdownOverlay, message tea.MouseMsg) {
	switch {
	case message.Button == tea.MouseButtonWheelUp:
		list.Scroll(-1)
		box.listOffset = list.Offset
		return
	case message.Button == tea.MouseButtonWheelDown:
		list.Scroll(1)
		box.listOffset = list.Offset
		return
	}

	index := list.OptionAtY(message.Y)
	if index < 0 {
		return
	}
	switch {
	case message.Action == tea.MouseActionMotion:
		box.controller.HandleMouse(selection.MouseEvent{
			Action: selection.MouseEnter,
			Target: selection.TargetOption,
			Index:  index,
		})
	case message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft:
		box.focused = true
		box.controller.HandleMouse(selection.MouseEvent{
			Action: selection.MouseClick,
			Target: selection.TargetOption,
			Index:  index,
		})
	}
}

// syncList keeps the highlighted row inside the visible window after
// keyboard navigation, and starts a freshly opened list at the top.
func (box *SelectBox[S]) syncList(wasOpen bool) {
	if !box.controller.IsOpen() {
		return
	}
	if !wasOpen {
		box.listOffset = 0
	}
	list := box.dropdown()
	list.EnsureVisible()
	box.listOffset = list.Offset
}

// contains reports whether (x, y) is inside the box's border.
func (box *SelectBox[S]) contains(x, y int) bool {
	return x >= box.anchorX && x < box.anchorX+box.width &&
		y >= box.anchorY && y < box.anchorY+box.Height()
}

// contentOrigin is the screen position of the first content cell:
// inside the border and the one-column padding.
func (box *SelectBox[S]) contentOrigin() (int, int) {
	return box.anchorX + 2, box.anchorY + 1
}

// hitTest maps a point inside the box to the widget part under it.
// Chips are only laid out in multiple mode, so single mode never
// yields TargetChip.
func (box *SelectBox[S]) hitTest(x, y int) (selection.Target, int) {
	layout := box.layout()
	originX, originY := box.contentOrigin()
	column, line := x-originX, y-originY

	if line == 0 && layout.clearColumn >= 0 && column == layout.clearColumn {
		return selection.TargetClear, 0
	}
	for _, chip := range layout.chips {
		if chip.line == line && column >= chip.start && column < chip.end {
			return selection.TargetChip, chip.index
		}
	}
	return selection.TargetRoot, 0
}

// dropdown builds the option list for the current controller state,
// anchored directly below the box.
func (box *SelectBox[S]) dropdown() DropdownOverlay {
	catalog := box.controller.Catalog()
	rows := make([]DropdownRow, catalog.Len())
	for position := range rows {
		option, _ := catalog.At(position)
		rows[position] = DropdownRow{
			Label:    option.Label,
			Selected: box.controller.IsSelected(option),
		}
	}
	return DropdownOverlay{
		Rows:        rows,
		Highlighted: box.controller.Highlighted(),
		Offset:      box.listOffset,
		AnchorX:     box.anchorX,
		AnchorY:     box.anchorY + box.Height(),
		MinWidth:    box.width,
	}
}

// Overlay returns the option list lines and where to splice them, or
// nil when the list is closed.
func (box *SelectBox[S]) Overlay() ([]string, int, int) {
	if !box.controller.IsOpen() {
		return nil, 0, 0
	}
	list := box.dropdown()
	return list.Render(box.theme), list.AnchorX, list.AnchorY
}

// chipRegion is where one chip sits within the content area.
type chipRegion struct {
	line  int
	start int // First column, relative to the content origin.
	end   int // One past the last column.
	index int // Position in the selection.
}

type boxLayout struct {
	lines       []string
	chips       []chipRegion
	clearColumn int // -1 when the clear affordance is hidden.
}

func (box *SelectBox[S]) contentWidth() int {
	return box.width - 4
}

// layout arranges the value area and the trailer. View and hit-testing
// both use it, so what is clicked is what was drawn.
func (box *SelectBox[S]) layout() boxLayout {
	contentWidth := box.contentWidth()
	valuesWidth := contentWidth - trailerWidth
	value := box.controller.Value()
	selected := value.Options()

	normal := lipgloss.NewStyle().Foreground(box.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(box.theme.FaintText)

	var rows []string
	var chips []chipRegion

	switch {
	case len(selected) == 0:
		rows = []string{faint.Render(truncate(box.placeholder, valuesWidth))}

	case value.Multiple():
		chipStyle := lipgloss.NewStyle().Foreground(box.theme.ChipBorder)
		removeStyle := lipgloss.NewStyle().Foreground(box.theme.RemoveAccent)

		var current strings.Builder
		currentWidth := 0
		for index, option := range selected {
			label := truncate(option.Label, valuesWidth-4)
			chipWidth := ansi.StringWidth(label) + 4
			if currentWidth > 0 && currentWidth+1+chipWidth > valuesWidth {
				rows = append(rows, current.String())
				current.Reset()
				currentWidth = 0
			}
			if currentWidth > 0 {
				current.WriteString(" ")
				currentWidth++
			}
			chips = append(chips, chipRegion{
				line:  len(rows),
				start: currentWidth,
				end:   currentWidth + chipWidth,
				index: index,
			})
			current.WriteString(chipStyle.Render("[") + normal.Render(label) + " " +
				removeStyle.Render("×") + chipStyle.Render("]"))
			currentWidth += chipWidth
		}
		rows = append(rows, current.String())

	default:
		rows = []string{normal.Render(truncate(selected[0].Label, valuesWidth))}
	}

	clearColumn := -1
	clearGlyph := " "
	if len(selected) > 0 {
		clearColumn = valuesWidth + 1
		clearGlyph = lipgloss.NewStyle().Foreground(box.theme.RemoveAccent).Render("×")
	}
	caret := "▾"
	if box.controller.IsOpen() {
		caret = "▴"
	}
	divider := lipgloss.NewStyle().Foreground(box.theme.Border).Render("│")
	trailer := " " + clearGlyph + " " + divider + " " + faint.Render(caret)

	lines := make([]string, len(rows))
	for index, row := range rows {
		padded := row + strings.Repeat(" ", max(valuesWidth-ansi.StringWidth(row), 0))
		if index == 0 {
			lines[index] = padded + trailer
		} else {
			lines[index] = padded + strings.Repeat(" ", trailerWidth)
		}
	}

	return boxLayout{lines: lines, chips: chips, clearColumn: clearColumn}
}

// View renders the box with a rounded border that lights up while the
// box has focus. The option list is not part of View; hosts splice
// Overlay on top of their full view.
func (box *SelectBox[S]) View() string {
	borderColor := box.theme.Border
	if box.focused {
		borderColor = box.theme.FocusBorder
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(box.width - 2)
	return style.Render(strings.Join(box.layout().lines, "\n"))
}

// truncate shortens text to width columns with a trailing ellipsis.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

var (
	_ Widget = (*SelectBox[selection.Single])(nil)
	_ Widget = (*SelectBox[selection.Multi])(nil)
)
