// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

type registerParams struct {
	connection
}

func registerCommand() *cli.Command {
	var params registerParams
	return &cli.Command{
		Name:    "register",
		Summary: "Declare the widget kinds the app provides",
		Usage:   "widgetctl register <kind>...",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("register", &params) },
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("register needs at least one widget kind")
			}
			return params.call(ipc.ActionRegisterWidgets, ipc.RegisterWidgetsRequest{Kinds: args}, nil)
		},
	}
}
