// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the Unix socket request-response layer
// shared by widgetd and its clients.
//
// Each connection carries exactly one CBOR request and one CBOR
// response. A request is a map whose "action" field selects the
// handler; the rest of the map is action-specific and decoded by the
// handler itself. Responses use the [Response] envelope:
//
//	{ok: true, data: <cbor>}
//	{ok: false, error: "...", kind: "unsupported"}
//
// The kind field carries the errkind classification of a failed
// request, so a [ServiceError] returned by [Client.Call] still matches
// errors.Is(err, errkind.Unsupported) on the client side.
//
// [SocketServer.Observe] reports each handled request's action,
// duration, and error; widgetd records them as Prometheus metrics.
//
// Access control is the socket file mode: widgetd creates its socket
// in a per-user directory and any process that can connect is trusted.
package service
