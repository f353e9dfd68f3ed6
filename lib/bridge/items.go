// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"slices"

	"github.com/bureau-foundation/widgets/lib/metrics"
)

// SetItem stores value under key in group and persists the group. The
// value is also mirrored into the platform preference store; mirroring
// failures are logged, not returned. Observers receive widget-update.
func (b *Bridge) SetItem(ctx context.Context, key, value, group string) error {
	err := b.store.Set(group, key, value)
	b.metrics.StoreWrites.WithLabelValues(metrics.WriteResult(err)).Inc()
	if err != nil {
		return err
	}

	if err := b.native.SetPreference(group, key, value); err != nil {
		b.logger.Warn("mirroring value into platform preferences failed",
			"group", group,
			"key", key,
			"error", err,
		)
	}
	return nil
}

// GetItem returns the value stored under key in group. A missing key is
// reported by ok == false, not by an error.
func (b *Bridge) GetItem(ctx context.Context, key, group string) (value string, ok bool, err error) {
	return b.store.Get(group, key)
}

// RegisterWidgets records the widget kinds the application provides,
// replacing any earlier registration. Desktop hosts have nothing to
// register with and ignore the call.
func (b *Bridge) RegisterWidgets(ctx context.Context, kinds []string) error {
	if b.platform == Desktop {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kinds = slices.Clone(kinds)
	b.logger.Info("registered widget kinds", "kinds", kinds)
	return nil
}

// RegisteredKinds returns the kinds passed to RegisterWidgets.
func (b *Bridge) RegisteredKinds() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.kinds)
}
