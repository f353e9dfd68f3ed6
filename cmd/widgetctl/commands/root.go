// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"os"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Root returns the widgetctl command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:        "widgetctl",
		Summary:     "Control the widget bridge daemon",
		Description: "widgetctl pushes widget configs and data to widgetd, triggers reloads,\nand inspects widget config documents.",
		Subcommands: []*cli.Command{
			pushCommand(),
			configCommand(),
			itemCommand(),
			reloadCommand(),
			registerCommand(),
			actionCommand(),
			windowCommand(),
			pinCommand(),
			statusCommand(),
			versionCommand(),
		},
	}
}
