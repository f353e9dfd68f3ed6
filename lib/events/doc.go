// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package events carries widget bridge notifications to observers.
//
// The bridge publishes four kinds of [Event]:
//
//   - widget-update: a key-value group changed; the payload is the
//     group name.
//   - widget-reload: a timeline reload was requested; the payload is the
//     scope, "all" or a widget kind.
//   - widget-config-push: a config was pushed; the payload is the
//     canonical config JSON. Sent on every push, changed or not.
//   - widget-action: a widget interaction arrived; the payload is
//     {"action": ..., "payload": ...}.
//
// Every event carries a ULID so observers that receive it through more
// than one path can deduplicate.
//
// A [Sink] accepts events. [Hub] fans events out to in-process
// subscribers over buffered channels and drops events for subscribers
// that fall behind. [NATSSink] forwards events to other processes on
// subjects of the form <prefix>.<group>.<event>. [Multi] combines
// sinks.
package events
