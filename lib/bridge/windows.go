// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"

	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// RequestWidget asks the launcher to pin one of the application's
// widgets. It reports whether the launcher accepted the request.
// Desktop hosts and hosts without a native.Pinner return an
// errkind.Unsupported error.
func (b *Bridge) RequestWidget(ctx context.Context) (bool, error) {
	if b.platform == Desktop || b.pinner == nil {
		return false, errkind.NotSupported("request widget")
	}
	accepted, err := b.pinner.RequestPin(ctx)
	if err != nil {
		return false, errkind.New(errkind.NativeBridge, "request widget", err)
	}
	return accepted, nil
}

// CreateWindow opens a desktop widget window. A window without a URL
// loads the built-in renderer for its group and size.
func (b *Bridge) CreateWindow(ctx context.Context, config widget.WindowConfig) error {
	if b.platform == Mobile || b.windows == nil {
		return errkind.NotSupported("create widget window")
	}
	config.URL = config.RendererURL()
	if err := b.windows.CreateWindow(ctx, config); err != nil {
		return errkind.New(errkind.NativeBridge, "create widget window "+config.Label, err)
	}
	if config.Group != "" {
		b.pollers.Ensure(config.Group)
	}
	return nil
}

// CloseWindow closes the desktop widget window with label. It reports
// false when no such window was open.
func (b *Bridge) CloseWindow(ctx context.Context, label string) (bool, error) {
	if b.platform == Mobile || b.windows == nil {
		return false, errkind.NotSupported("close widget window")
	}
	closed, err := b.windows.CloseWindow(ctx, label)
	if err != nil {
		return false, errkind.New(errkind.NativeBridge, "close widget window "+label, err)
	}
	return closed, nil
}
