// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package errkind

import (
	"errors"
	"fmt"
)

// Kind is a failure category. Kind implements error so that a bare kind
// can be the target of errors.Is.
type Kind uint8

const (
	// IO covers filesystem failures: directory creation, temporary file
	// writes, renames, and reads other than "file does not exist".
	IO Kind = iota + 1

	// Serialization covers failures encoding a value to its wire or
	// persisted form.
	Serialization

	// Deserialization covers input that does not decode into the
	// expected shape: unknown element tags, missing required fields,
	// enum values outside their set.
	Deserialization

	// Unsupported is returned by operations the current platform does
	// not provide, such as opening a widget window on mobile.
	Unsupported

	// NativeBridge wraps a failure reported by the native capability
	// layer (reload, preference mirroring, window management).
	NativeBridge
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Serialization:
		return "serialization"
	case Deserialization:
		return "deserialization"
	case Unsupported:
		return "unsupported"
	case NativeBridge:
		return "native"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) Error() string { return k.String() + " error" }

// Error is a classified failure.
type Error struct {
	Kind Kind

	// Op names the operation that failed, e.g. "push config" or
	// "persist group weather". May be empty.
	Op string

	// Err is the underlying cause. May be nil for errors that carry
	// only a kind and operation (Unsupported typically does).
	Err error
}

func (e *Error) Error() string {
	message := e.Kind.String()
	if e.Op != "" {
		message = e.Op + ": " + message
	}
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	kind, ok := target.(Kind)
	return ok && kind == e.Kind
}

// New classifies err under kind. Returns nil when err is nil so callers
// can wrap a call's result unconditionally.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf formats a message and classifies it under kind.
func Errorf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// NotSupported returns an Unsupported error for op.
func NotSupported(op string) error {
	return &Error{Kind: Unsupported, Op: op, Err: errors.New("not available on this platform")}
}

// KindOf returns the kind of the first classified error or bare Kind
// in err's chain.
func KindOf(err error) (Kind, bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind, true
	}
	var kind Kind
	if errors.As(err, &kind) {
		return kind, true
	}
	return 0, false
}

// ParseKind returns the kind whose String is name.
func ParseKind(name string) (Kind, bool) {
	for kind := IO; kind <= NativeBridge; kind++ {
		if kind.String() == name {
			return kind, true
		}
	}
	return 0, false
}
