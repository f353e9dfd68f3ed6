// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge connects an application to its home screen and
// desktop widgets.
//
// A [Bridge] is the handle a host creates once and passes to whatever
// serves its UI (widgetd serves it over a Unix socket). It owns the
// key-value [datastore.Store] shared with the native widget process,
// the config push pipeline, the reload throttle, the per-group action
// pollers, and the event hub observers subscribe to.
//
// Config pushes are deduplicated by content: the config is
// canonicalized (members sorted, nulls dropped), hashed, and compared
// with the last hash accepted for the group. Only a changed config is
// persisted under [ConfigKey] and triggers a timeline reload, but every
// push is broadcast as a widget-config-push event so live desktop
// renderers always see it.
//
// The two platforms differ in a few operations. On [Mobile], reloads
// go through the throttle, widget kinds can be registered, and pin
// requests are forwarded to the launcher; window management is
// unsupported. On [Desktop], reloads are immediate, each pushed group
// gets an action poller, and windows can be created when the host
// provides a native.Windows implementation; pin requests are
// unsupported.
package bridge
