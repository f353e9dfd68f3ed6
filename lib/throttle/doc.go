// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package throttle rate-limits widget timeline reload requests.
//
// Mobile platforms budget how often an application may ask for its
// widgets to be refreshed, so the bridge collapses bursts of config
// pushes into at most one reload per minimum interval. Requests made
// inside the interval are skipped, not queued: the next push after the
// interval expires triggers the reload, and the widget extension reads
// the latest persisted config when it runs.
//
// The interval comes from configuration ([ReleaseInterval] in staging
// and production, zero in development) and can be overridden for a
// single process with the WIDGETS_MIN_RELOAD_SECS environment variable
// ([IntervalFromEnv]). A zero interval disables throttling.
package throttle
