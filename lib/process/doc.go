// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the entrypoint helpers shared by widgetd and
// widgetctl: reporting the error returned by run() before the
// structured logger exists, and choosing the exit code.
package process
