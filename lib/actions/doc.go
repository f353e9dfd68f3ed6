// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package actions moves widget interactions from the native widget
// process to the application.
//
// A widget cannot call into the application directly. When the user
// taps a button, the widget extension appends an entry to the JSON list
// stored under [PendingKey] in its group's data file. Entries are
// either bare action identifiers ("refresh") or objects carrying a
// payload ({"action": "toggle", "payload": {...}}).
//
// A [Poller] watches one group: every interval (and, optionally, when
// the file changes on disk) it re-reads the group, emits one
// widget-action event per entry in order, and then removes the entries
// it emitted. Entries appended between the read and the removal stay
// queued for the next poll. A crash between emitting and removing
// redelivers the entries, so delivery is at least once.
//
// Poll failures (unreadable or malformed files) are logged at debug
// level and retried on the next tick; a poller never stops on its own.
//
// [Manager] starts at most one poller per group and stops them all on
// Close. [Enqueue] and [Drain] operate directly on a data file, for
// tools that stand in for the native side.
package actions
