// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for widget packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] wrap the select
// with a wall-clock fallback so that a broken test fails instead of
// hanging. They are the only place tests use real timeouts; everything
// else runs on the fake clock from lib/clock.
//
// [SocketDir] returns a short temporary directory for Unix sockets,
// whose paths are limited to 108 bytes. [WriteJSONFile] seeds a data
// file the way a native widget process would.
//
// All helpers call t.Fatalf on failure rather than returning errors.
package testutil
