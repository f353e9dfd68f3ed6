// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

// ErrorCategory classifies command failures so scripts can decide
// whether to retry, fix input, or give up without parsing messages.
type ErrorCategory string

const (
	// CategoryValidation means the input was wrong: bad arguments or a
	// config document that does not decode.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound means a referenced file or key does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryUnsupported means the daemon's platform does not provide
	// the operation.
	CategoryUnsupported ErrorCategory = "unsupported"

	// CategoryTransient means the daemon could not be reached. Retrying
	// may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal covers everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized command error with an optional hint
// printed after the message.
type ToolError struct {
	Category ErrorCategory
	Err      error
	Hint     string
}

func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Categorize wraps err in a ToolError. An existing ToolError is
// returned unchanged; otherwise the category comes from the errkind
// classification or, for a socket that refuses connections, is
// transient with a hint to start widgetd. Pass an empty socketPath for
// errors that did not come from a daemon call.
func Categorize(err error, socketPath string) error {
	if err == nil {
		return nil
	}
	var tool *ToolError
	if errors.As(err, &tool) {
		return err
	}
	if socketPath != "" && (errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED)) {
		return (&ToolError{Category: CategoryTransient, Err: err}).
			WithHint(fmt.Sprintf("Is widgetd running? It listens on %s.", socketPath))
	}
	category := CategoryInternal
	if errors.Is(err, fs.ErrNotExist) {
		category = CategoryNotFound
	}
	if kind, ok := errkind.KindOf(err); ok {
		switch kind {
		case errkind.Deserialization:
			category = CategoryValidation
		case errkind.Unsupported:
			category = CategoryUnsupported
		}
	}
	return &ToolError{Category: category, Err: err}
}
