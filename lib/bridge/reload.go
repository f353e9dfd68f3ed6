// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"

	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
	"github.com/bureau-foundation/widgets/lib/throttle"
)

// ReloadAll asks the platform to refresh every widget and emits
// widget-reload with scope "all". It is never throttled.
func (b *Bridge) ReloadAll(ctx context.Context) error {
	if err := b.native.ReloadAll(ctx); err != nil {
		return errkind.New(errkind.NativeBridge, "reload all timelines", err)
	}
	b.publish(ctx, events.NewReload(events.ReloadAllScope, b.clock.Now()))
	return nil
}

// ReloadKind asks the platform to refresh widgets of one kind and emits
// widget-reload with the kind as scope.
func (b *Bridge) ReloadKind(ctx context.Context, kind string) error {
	if err := b.native.ReloadKind(ctx, kind); err != nil {
		return errkind.New(errkind.NativeBridge, "reload timelines of "+kind, err)
	}
	b.publish(ctx, events.NewReload(kind, b.clock.Now()))
	return nil
}

// requestReload reloads every widget after a config change. Mobile
// reloads go through the throttle; desktop reloads always run.
func (b *Bridge) requestReload(ctx context.Context) (throttle.Outcome, error) {
	outcome := throttle.Dispatched
	var err error
	if b.platform == Mobile && b.throttle != nil {
		outcome, err = b.throttle.Request(ctx, b.ReloadAll)
	} else {
		err = b.ReloadAll(ctx)
	}

	switch {
	case err != nil:
		b.metrics.Reloads.WithLabelValues(metrics.ReloadFailed).Inc()
	case outcome == throttle.Skipped:
		b.metrics.Reloads.WithLabelValues(metrics.ReloadSkipped).Inc()
		b.logger.Debug("reload skipped by throttle", "interval", b.throttle.Interval())
	default:
		b.metrics.Reloads.WithLabelValues(metrics.ReloadDispatched).Inc()
	}
	return outcome, err
}
