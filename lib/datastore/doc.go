// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package datastore holds the per-group key-value data that native
// widget renderers read.
//
// Each widget group has one JSON file containing an object of string
// keys to string values. The file lives in the group's shared
// container when the platform provides one (an App Group on Apple
// platforms), otherwise under the data directory as
// widgets/<group>.json with the group name sanitized for the
// filesystem.
//
// A [Store] caches each group's map in memory, loading it lazily on
// first access. A missing or malformed file loads as an empty map.
// Every [Store.Set] rewrites the whole file atomically (temporary file,
// fsync, rename) so a reader in another process sees either the old or
// the new contents, never a partial write.
//
// Writers in different processes are not coordinated: when two
// processes rewrite the same group concurrently the last rename wins
// and the other writer's change is lost until it writes again. Within
// one process, persistence of a group is serialized so the file always
// converges to the in-memory map.
package datastore
