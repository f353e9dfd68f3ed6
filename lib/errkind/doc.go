// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package errkind classifies widget bridge failures into a small, fixed
// taxonomy so callers on the other side of a process boundary can react
// to the category without parsing messages.
//
// Every classified error is an [*Error] carrying a [Kind], the operation
// that failed, and the underlying cause. Kinds are themselves errors, so
// classification is tested with the standard library:
//
//	if errors.Is(err, errkind.IO) {
//	    // persistence failed; the in-memory value is still applied
//	}
//
// Errors that are not classified (context cancellation, programmer
// errors) pass through unchanged.
package errkind
