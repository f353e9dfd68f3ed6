// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the widget
// daemon and CLI.
//
// Configuration is loaded from a single file specified by either the
// WIDGETS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. The environment also selects the
// reload throttle default: development builds reload on every change,
// staging and production at most every 15 minutes.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${WIDGETS_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values; the one
// exception, WIDGETS_MIN_RELOAD_SECS, is applied by lib/throttle at
// startup.
//
// This package depends on no other widget packages.
package config
