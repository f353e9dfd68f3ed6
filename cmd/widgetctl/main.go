// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// widgetctl is the command-line client of widgetd. It pushes widget
// configs and data, triggers reloads, and inspects config documents.
package main

import (
	"os"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/commands"
	"github.com/bureau-foundation/widgets/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
