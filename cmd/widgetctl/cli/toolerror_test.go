// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

func TestToolErrorHint(t *testing.T) {
	err := Validation("missing --group").WithHint("Pass --group <name>.")
	if got, want := err.Error(), "missing --group\n\nPass --group <name>."; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if Validation("bad").Error() != "bad" {
		t.Error("error without hint changed the message")
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"deserialization", errkind.New(errkind.Deserialization, "parse", errors.New("x")), CategoryValidation},
		{"unsupported", errkind.NotSupported("create window"), CategoryUnsupported},
		{"io", errkind.New(errkind.IO, "persist", errors.New("disk full")), CategoryInternal},
		{"plain", errors.New("boom"), CategoryInternal},
		{"refused", fmt.Errorf("connecting: %w", syscall.ECONNREFUSED), CategoryTransient},
		{"missing socket", fmt.Errorf("connecting: %w", syscall.ENOENT), CategoryTransient},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Categorize(test.err, "/run/widgetd.sock")
			var tool *ToolError
			if !errors.As(err, &tool) {
				t.Fatalf("Categorize returned %T", err)
			}
			if tool.Category != test.want {
				t.Errorf("category = %q, want %q", tool.Category, test.want)
			}
			if !errors.Is(err, test.err) {
				t.Error("categorized error does not wrap the original")
			}
		})
	}
}

func TestCategorizeTransientHint(t *testing.T) {
	err := Categorize(fmt.Errorf("connecting: %w", syscall.ECONNREFUSED), "/run/widgetd.sock")
	if !strings.Contains(err.Error(), "Is widgetd running?") {
		t.Errorf("error = %q, want daemon hint", err)
	}
}

func TestCategorizeLocalMissingFile(t *testing.T) {
	err := Categorize(fmt.Errorf("reading config: %w", syscall.ENOENT), "")
	var tool *ToolError
	if !errors.As(err, &tool) {
		t.Fatalf("Categorize returned %T", err)
	}
	if tool.Category != CategoryNotFound {
		t.Errorf("category = %q, want %q", tool.Category, CategoryNotFound)
	}
	if strings.Contains(err.Error(), "widgetd") {
		t.Errorf("error = %q, local failure should not mention the daemon", err)
	}
}

func TestCategorizeKeepsToolError(t *testing.T) {
	original := NotFound("no such file")
	if Categorize(original, "") != error(original) {
		t.Error("Categorize replaced an existing ToolError")
	}
	if Categorize(nil, "") != nil {
		t.Error("Categorize(nil) != nil")
	}
}
