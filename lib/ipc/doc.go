// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ipc defines the CBOR message types of the widgetd socket
// protocol. cmd/widgetd and cmd/widgetctl both import this package so
// the wire types are defined once.
//
// Widget configs and window descriptions travel as JSON text inside
// CBOR byte strings, so that the daemon validates them with the same
// decoder the host shell and data files use.
package ipc
