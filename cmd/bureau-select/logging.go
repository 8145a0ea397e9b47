// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/bureau-select/lib/selectui"
)

// newStderrLogger is used before and after the TUI runs, when stderr
// belongs to the user again. Text on a terminal, JSON otherwise.
func newStderrLogger(level slog.Level) *slog.Logger {
	return slog.New(newStreamHandler(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level))
}

func newStreamHandler(writer io.Writer, terminal bool, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(writer, options)
	}
	return slog.NewJSONHandler(writer, options)
}

// newTUILogger routes records at level and above into the status bar.
// With logOutput set, every record (debug included) is also written to
// that file as JSON. The returned cleanup closes the file.
func newTUILogger(level slog.Level, logOutput string) (*slog.Logger, *selectui.TUILogHandler, func(), error) {
	tuiHandler := selectui.NewTUILogHandler(level)
	if logOutput == "" {
		return slog.New(tuiHandler), tuiHandler, func() {}, nil
	}

	fileHandler, closeFile, err := openFileLogHandler(logOutput)
	if err != nil {
		return nil, nil, nil, err
	}
	return slog.New(fanoutHandler{tuiHandler, fileHandler}), tuiHandler, closeFile, nil
}

// openFileLogHandler creates a slog.JSONHandler writing to path. The
// file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to every handler enabled for its
// level. A level is enabled if any handler is.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
