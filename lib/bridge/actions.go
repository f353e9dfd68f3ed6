// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"encoding/json"

	"github.com/bureau-foundation/widgets/lib/actions"
	"github.com/bureau-foundation/widgets/lib/events"
)

// EmitAction emits a widget-action event directly, for interactions
// that reach the application without going through the data file.
func (b *Bridge) EmitAction(ctx context.Context, group, action string, payload json.RawMessage) error {
	b.metrics.ActionsEmitted.Inc()
	return b.publish(ctx, events.NewAction(group, events.ActionPayload{Action: action, Payload: payload}, b.clock.Now()))
}

// PollPendingActions delivers the actions queued for group now, without
// waiting for the poller, and returns them. Unlike the background
// poller it reports read failures.
func (b *Bridge) PollPendingActions(ctx context.Context, group string) ([]actions.Action, error) {
	poller, ok := b.pollers.Poller(group)
	if !ok {
		poller = actions.NewPoller(actions.PollerOptions{
			Group:   group,
			Store:   b.store,
			Sink:    events.SinkFunc(b.publish),
			Clock:   b.clock,
			Logger:  b.logger,
			Metrics: b.metrics,
		})
	}
	return poller.PollErr(ctx)
}
