// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// ErrorCategory classifies command errors so main can pick an exit
// code without parsing error text.
type ErrorCategory string

const (
	// CategoryValidation means bad input: an unknown flag value, a
	// definition or config file that does not parse or validate. The
	// user should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryInternal means an unexpected failure such as an I/O error
	// writing the state file.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error with an optional hint printed after
// the message.
type ToolError struct {
	Category ErrorCategory
	Err      error
	Hint     string
}

// Error returns the message, followed by a blank line and the hint
// when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode returns 2 for validation errors and 1 otherwise, matching
// the usual convention for usage errors.
func (e *ToolError) ExitCode() int {
	if e.Category == CategoryValidation {
		return 2
	}
	return 1
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
