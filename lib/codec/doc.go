// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used on the widgetd socket.
//
// Two serialization formats meet in this project:
//
//   - JSON for everything shared with the native widget process and
//     the host shell: group data files, widget configs, events, and
//     CLI --json output.
//   - CBOR for the widgetd Unix socket protocol between widgetctl (or
//     a host shell plugin) and the daemon.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same request always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For sockets:
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// Protocol types in lib/ipc carry `cbor` struct tags only; types that
// also appear in JSON output (bridge.Status, bridge.PushResult) use
// `json` tags, which fxamacker/cbor reads as a fallback.
package codec
