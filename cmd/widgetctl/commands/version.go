// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/version"
)

type versionParams struct {
	Short bool `flag:"short" desc:"print only the version number"`
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print the widgetctl version",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("version", &params) },
		Run: func(args []string) error {
			if params.Short {
				_, err := fmt.Fprintln(stdout, version.Short())
				return err
			}
			_, err := fmt.Fprintln(stdout, "widgetctl "+version.Full())
			return err
		},
	}
}
