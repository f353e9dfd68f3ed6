// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind widgetctl.
//
// [Command] is a named node with optional [Command.Subcommands], a lazy
// [pflag.FlagSet] factory, and a Run function. The tree is assembled in
// cmd/widgetctl/commands and dispatched with [Command.Execute], which
// parses flags, routes subcommands, prints help with examples, and
// suggests the nearest name (edit distance at most 3) for a mistyped
// command or flag.
//
// Command parameters are plain structs whose fields carry flag, desc,
// and default tags; [FlagsFromParams] binds them. Embedding [JSONOutput]
// adds --json.
//
// Errors returned from commands may be categorized with [ToolError];
// [Categorize] derives the category of a daemon failure from its
// errkind classification.
package cli
