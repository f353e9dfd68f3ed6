// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Widgetd is the widget bridge daemon. It owns the per-group data
// files, accepts widget configs and data writes from the host shell
// over a CBOR Unix socket, throttles reloads on mobile, and relays
// pending widget actions on desktop.
//
// Every event the bridge emits (widget-update, widget-reload,
// widget-config-push, widget-action) is forwarded to NATS when
// events.nats_url is configured, under
// <subject_prefix>.<group>.<event>. Prometheus metrics are served on
// daemon.metrics_address at /metrics.
//
// Socket actions are listed in lib/ipc. Configuration comes from
// --config, then WIDGETS_CONFIG, then built-in defaults; see
// lib/config.
package main
