// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/bureau-select/lib/catalogdef"
	"github.com/bureau-foundation/bureau-select/lib/selection"
	"github.com/bureau-foundation/bureau-select/lib/selectstate"
	"github.com/bureau-foundation/bureau-select/lib/tui"
)

// Layout constants, in screen cells.
const (
	leftMargin = 2
	topMargin  = 1 // Blank line above the title.
)

// Options configures a Model. The zero value is usable.
type Options struct {
	Theme    tui.Theme
	Keys     KeyMap
	BoxKeys  tui.KeyMap
	BoxWidth int

	// Logger receives selection changes at Info and controller
	// transitions at Debug. Nil discards.
	Logger *slog.Logger

	// State, when non-nil, supplies saved selections that replace each
	// field's initial value if its catalog is unchanged.
	State *selectstate.State
}

// field is one named select box and the value its owner holds. The
// model is copied by value on every Update, so fields live behind
// pointers that all copies share.
type field struct {
	name     string
	heading  string
	multiple bool
	catalog  *selection.Catalog
	widget   tui.Widget

	// selected is the owner's copy of the value, updated by the box's
	// onChange before the box is handed the value back.
	selected []selection.Option

	// anchorY is the screen row of the heading line, set by layout.
	anchorY int
}

// FieldResult is one field's final selection, for printing.
type FieldResult struct {
	Name     string             `json:"name" yaml:"name"`
	Multiple bool               `json:"multiple" yaml:"multiple"`
	Selected []selection.Option `json:"selected" yaml:"selected"`
}

// Model is the bubbletea model for a form of select boxes. It owns
// every selection value: boxes report changes through their onChange
// callback and the model applies them.
type Model struct {
	title   string
	fields  []*field
	theme   tui.Theme
	keys    KeyMap
	boxKeys tui.KeyMap
	logger  *slog.Logger

	focus int // Index of the focused field, or -1.

	width  int
	height int
	ready  bool

	// Status bar: the most recent log record, cleared after a delay.
	status         string
	statusLevel    slog.Level
	statusSequence int

	saved bool
}

// NewModel builds the form for a validated definition. A field's
// starting value is its saved selection when opts.State holds one for
// an unchanged catalog, otherwise its initial value.
func NewModel(definition *catalogdef.Definition, opts Options) (Model, error) {
	if opts.Theme == (tui.Theme{}) {
		opts.Theme = tui.DefaultTheme
	}
	if len(opts.Keys.Next.Keys()) == 0 {
		opts.Keys = DefaultKeyMap
	}
	if len(opts.BoxKeys.Enter.Keys()) == 0 {
		opts.BoxKeys = tui.DefaultKeyMap
	}
	if opts.BoxWidth == 0 {
		opts.BoxWidth = tui.DefaultBoxWidth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	model := Model{
		title:   definition.Title,
		theme:   opts.Theme,
		keys:    opts.Keys,
		boxKeys: opts.BoxKeys,
		logger:  opts.Logger,
		focus:   -1,
	}

	for _, definitionField := range definition.Fields {
		entry, err := newField(definitionField, opts)
		if err != nil {
			return Model{}, err
		}
		model.fields = append(model.fields, entry)
	}

	if len(model.fields) > 0 {
		model.setFocus(0)
	}
	model.layout()
	return model, nil
}

func newField(definitionField catalogdef.Field, opts Options) (*field, error) {
	catalog, err := definitionField.Catalog()
	if err != nil {
		return nil, err
	}
	selected, err := definitionField.InitialOptions(catalog)
	if err != nil {
		return nil, err
	}

	if opts.State != nil {
		restored, err := opts.State.Restore(definitionField.Name, catalog)
		switch {
		case err == nil:
			selected = restored
		case errors.Is(err, selectstate.ErrStaleCatalog):
			opts.Logger.Warn("saved selection ignored: options changed", "field", definitionField.Name)
		}
	}
	if !definitionField.Multiple && len(selected) > 1 {
		selected = selected[:1]
	}

	entry := &field{
		name:     definitionField.Name,
		heading:  definitionField.Heading(),
		multiple: definitionField.Multiple,
		catalog:  catalog,
		selected: selected,
	}

	if definitionField.Multiple {
		entry.widget = bindBox(entry, catalog, selection.Multi(selected), definitionField.Placeholder, opts)
	} else {
		initial := selection.Single{}
		if len(selected) == 1 {
			initial = selection.SingleOf(selected[0])
		}
		entry.widget = bindBox(entry, catalog, initial, definitionField.Placeholder, opts)
	}
	return entry, nil
}

// bindBox creates a select box whose changes flow into entry. The
// callback applies the value to the box in the same event, so the next
// event the box sees already reflects it.
func bindBox[S selection.Selection[S]](entry *field, catalog *selection.Catalog, initial S, placeholder string, opts Options) *tui.SelectBox[S] {
	logger := opts.Logger.With("field", entry.name)

	var box *tui.SelectBox[S]
	box = tui.NewSelectBox(catalog, initial, func(next S) {
		entry.selected = next.Options()
		logger.Info("selection changed", "selected", labels(entry.selected))
		box.SetValue(next)
	}, selection.WithLogger(logger))

	box.SetTheme(opts.Theme)
	box.SetKeyMap(opts.BoxKeys)
	box.SetWidth(opts.BoxWidth)
	if placeholder != "" {
		box.SetPlaceholder(placeholder)
	}
	return box
}

func labels(options []selection.Option) string {
	if len(options) == 0 {
		return "(none)"
	}
	names := make([]string, len(options))
	for index, option := range options {
		names[index] = option.Label
	}
	return strings.Join(names, ", ")
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Form keys (focus ring, save, quit) are
// handled here; everything else goes to the focused box.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var command tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		command = model.handleKey(message)

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case logRecordMsg:
		model.statusSequence++
		model.status = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		command = tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.statusSequence {
			model.status = ""
		}
	}

	model.layout()
	return model, command
}

func (model *Model) handleKey(message tea.KeyMsg) tea.Cmd {
	focused := model.focused()
	listOpen := focused != nil && focused.widget.IsOpen()

	switch {
	case key.Matches(message, model.keys.ForceQuit):
		return tea.Quit

	case key.Matches(message, model.keys.Save):
		model.saved = true
		model.logger.Info("saving selections")
		return tea.Quit

	case key.Matches(message, model.keys.Next):
		model.moveFocus(1)

	case key.Matches(message, model.keys.Previous):
		model.moveFocus(-1)

	case key.Matches(message, model.keys.Quit) && !listOpen:
		return tea.Quit

	case focused != nil:
		focused.widget.HandleKey(message)
	}
	return nil
}

// handleMouse routes a mouse event. An open list floats over the
// fields below it, so its box sees the event first; if the list or box
// takes it, no other box is asked. Otherwise every box gets the event:
// the one under the pointer handles it, the others treat a click as
// "outside" and blur.
func (model *Model) handleMouse(message tea.MouseMsg) {
	for index, entry := range model.fields {
		if !entry.widget.IsOpen() {
			continue
		}
		if entry.widget.HandleMouse(message) {
			model.takeFocusFrom(index)
			return
		}
	}

	consumed := false
	for index, entry := range model.fields {
		if entry.widget.HandleMouse(message) {
			consumed = true
			model.takeFocusFrom(index)
		}
	}
	if model.focus >= 0 && !model.fields[model.focus].widget.Focused() {
		model.focus = -1
	}

	// A click on a heading focuses its box without opening it.
	if !consumed && message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft {
		for index, entry := range model.fields {
			if message.Y == entry.anchorY {
				model.setFocus(index)
				return
			}
		}
	}
}

// takeFocusFrom records that field index took focus through the mouse
// and blurs whichever field had it before.
func (model *Model) takeFocusFrom(index int) {
	if !model.fields[index].widget.Focused() {
		return
	}
	if model.focus >= 0 && model.focus != index {
		model.fields[model.focus].widget.Blur()
	}
	model.focus = index
}

func (model *Model) focused() *field {
	if model.focus < 0 || model.focus >= len(model.fields) {
		return nil
	}
	return model.fields[model.focus]
}

// setFocus moves keyboard focus to index, blurring the previous field
// so its list closes.
func (model *Model) setFocus(index int) {
	if previous := model.focused(); previous != nil {
		previous.widget.Blur()
	}
	model.focus = index
	if next := model.focused(); next != nil {
		next.widget.Focus()
	}
}

// moveFocus steps around the focus ring. With nothing focused, forward
// starts at the first field and backward at the last.
func (model *Model) moveFocus(delta int) {
	count := len(model.fields)
	if count == 0 {
		return
	}
	if model.focus < 0 {
		if delta > 0 {
			model.setFocus(0)
		} else {
			model.setFocus(count - 1)
		}
		return
	}
	model.setFocus(((model.focus+delta)%count + count) % count)
}

// layout positions every box. Box heights change as chips wrap, so
// this runs after every update.
func (model *Model) layout() {
	y := topMargin
	if model.title != "" {
		y += 2 // Title and a blank line.
	}
	for _, entry := range model.fields {
		entry.anchorY = y
		entry.widget.SetAnchor(leftMargin, y+1)
		y += 1 + entry.widget.Height() + 1 // Heading, box, blank line.
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	margin := strings.Repeat(" ", leftMargin)
	headingStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := make([]string, topMargin)
	if model.title != "" {
		lines = append(lines, margin+headingStyle.Render(model.title), "")
	}

	for index, entry := range model.fields {
		heading := entry.heading
		if entry.multiple {
			heading += faintStyle.Render(" (multiple)")
		}
		marker := " "
		if index == model.focus {
			marker = lipgloss.NewStyle().Foreground(model.theme.FocusBorder).Render("›")
		}
		lines = append(lines, marker+" "+headingStyle.Render(heading))
		for _, boxLine := range strings.Split(entry.widget.View(), "\n") {
			lines = append(lines, margin+boxLine)
		}
		lines = append(lines, "")
	}

	// Pad so the status bar sits on the last screen line.
	for len(lines) < model.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, model.renderStatus())
	output := strings.Join(lines, "\n")

	for _, entry := range model.fields {
		if overlay, anchorX, anchorY := entry.widget.Overlay(); overlay != nil {
			output = tui.SpliceOverlay(output, overlay, anchorX, anchorY)
		}
	}
	return output
}

func (model Model) renderStatus() string {
	if model.status != "" {
		color := model.theme.HelpText
		switch {
		case model.statusLevel >= slog.LevelError:
			color = model.theme.ErrorText
		case model.statusLevel >= slog.LevelWarn:
			color = model.theme.WarningText
		}
		return " " + lipgloss.NewStyle().Foreground(color).Render(model.status)
	}
	return " " + lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(model.renderHelp())
}

func (model Model) renderHelp() string {
	bindings := []key.Binding{model.keys.Next, model.keys.Save, model.keys.Quit}
	if model.focused() != nil {
		bindings = append(model.boxKeys.ShortHelp(), bindings...)
	}
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", help.Key, help.Desc))
	}
	return strings.Join(parts, "  ")
}

// Saved reports whether the user quit with the save key.
func (model Model) Saved() bool {
	return model.saved
}

// Result returns every field's selection in definition order.
func (model Model) Result() []FieldResult {
	results := make([]FieldResult, len(model.fields))
	for index, entry := range model.fields {
		selected := entry.selected
		if selected == nil {
			selected = []selection.Option{}
		}
		results[index] = FieldResult{
			Name:     entry.name,
			Multiple: entry.multiple,
			Selected: selected,
		}
	}
	return results
}

// Record stores every field's selection in state, tagged with its
// catalog digest.
func (model Model) Record(state *selectstate.State) {
	for _, entry := range model.fields {
		state.Record(entry.name, entry.catalog, entry.selected)
	}
}
