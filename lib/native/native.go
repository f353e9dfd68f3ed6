// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"context"

	"github.com/bureau-foundation/widgets/lib/widget"
)

// Capabilities is the platform surface required by the bridge.
// Implementations must be safe for concurrent use.
type Capabilities interface {
	// ReloadAll asks the OS to refresh every widget of the application.
	ReloadAll(ctx context.Context) error

	// ReloadKind asks the OS to refresh widgets of one kind.
	ReloadKind(ctx context.Context, kind string) error

	// SharedContainerPath returns the directory shared with the widget
	// extension for group, if the platform has one.
	SharedContainerPath(group string) (string, bool)

	// SetPreference mirrors a key-value write into the platform
	// preference store for group (UserDefaults suite, SharedPreferences
	// file).
	SetPreference(group, key, value string) error
}

// Windows manages desktop widget windows. Only desktop hosts implement
// it.
type Windows interface {
	// CreateWindow opens a frameless widget window.
	CreateWindow(ctx context.Context, config widget.WindowConfig) error

	// CloseWindow closes the window with label. It reports false when no
	// such window exists.
	CloseWindow(ctx context.Context, label string) (bool, error)
}

// Pinner asks the launcher to pin a widget to the home screen. Only
// mobile hosts implement it.
type Pinner interface {
	RequestPin(ctx context.Context) (bool, error)
}

// Nop is a Capabilities with no native surface: reloads succeed and do
// nothing, there are no shared containers, and preference mirroring is
// skipped.
type Nop struct{}

func (Nop) ReloadAll(context.Context) error              { return nil }
func (Nop) ReloadKind(context.Context, string) error     { return nil }
func (Nop) SharedContainerPath(string) (string, bool)    { return "", false }
func (Nop) SetPreference(group, key, value string) error { return nil }
