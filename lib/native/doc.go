// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package native declares the capabilities the widget bridge needs from
// the host platform: asking the OS to re-read widget timelines,
// locating the container shared with the widget extension, mirroring
// values into the platform preference store, and managing desktop
// widget windows.
//
// The bridge never calls platform APIs itself. A host embeds it with
// an implementation of [Capabilities] (and optionally [Windows]) backed
// by its OS bindings. [Nop] serves hosts with no native widget surface;
// package nativetest provides a recording double for tests.
package native
