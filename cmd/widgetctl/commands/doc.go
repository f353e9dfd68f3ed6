// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the widgetctl command tree.
//
// Most commands talk to widgetd over its socket; the socket path comes
// from --socket, else from the configuration (--config, then
// WIDGETS_CONFIG, then defaults). The config validate, inspect, and hash
// commands and action enqueue work offline on files.
package commands
