// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

type pinParams struct {
	connection
}

func pinCommand() *cli.Command {
	var params pinParams
	return &cli.Command{
		Name:        "pin",
		Summary:     "Ask the launcher to pin a widget",
		Description: "Show the platform's pin-widget prompt. Only launchers that support\npinning accept the request.",
		Flags:       func() *pflag.FlagSet { return cli.FlagsFromParams("pin", &params) },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("pin takes no arguments")
			}
			var response ipc.RequestWidgetResponse
			if err := params.call(ipc.ActionRequestWidget, nil, &response); err != nil {
				return err
			}
			if !response.Accepted {
				_, err := fmt.Fprintln(stdout, "launcher declined the pin request")
				return err
			}
			_, err := fmt.Fprintln(stdout, "pin request shown")
			return err
		},
	}
}
