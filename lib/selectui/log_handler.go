// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package selectui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" text.
	Summary string

	// Level picks the status bar color (warn and error stand out).
	Level slog.Level
}

// logRecordFadeMsg clears the status bar message it was scheduled for.
// A newer record bumps the sequence, so an older fade leaves it alone.
type logRecordFadeMsg struct {
	sequence int
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar before fading back to the keyboard help line.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. Records below the configured level
// are dropped; the rest are formatted and sent via program.Send().
//
// The handler is created before the program. Call SetProgram once the
// tea.Program exists; records arriving before that are dropped.
//
// All handlers derived via WithAttrs/WithGroup share the same program
// pointer, so a single SetProgram call reaches every derived handler.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[tea.Program]
	attrs   []string // Preformatted "key=value", group prefix applied.
	prefix  string   // Dotted group path for record attrs, e.g. "form.".
}

// NewTUILogHandler creates a handler that delivers records at or
// above level to the bubbletea program.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler is interested in records at the
// given level.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and sends it to the program. The send
// runs on its own goroutine: records logged from inside Update would
// otherwise block on the event loop that is busy running Update.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	message := handler.format(record)
	go program.Send(message)
	return nil
}

func (handler *TUILogHandler) format(record slog.Record) logRecordMsg {
	parts := slices.Clone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, handler.prefix, attr)
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	return logRecordMsg{Summary: summary, Level: record.Level}
}

// appendAttr formats attr as "key=value", flattening groups into
// dotted keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, member)
		}
		return parts
	}
	return append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		derived.attrs = appendAttr(derived.attrs, handler.prefix, attr)
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attrs with name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	derived.prefix = handler.prefix + name + "."
	return &derived
}
