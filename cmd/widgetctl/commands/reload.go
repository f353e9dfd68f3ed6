// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

type reloadParams struct {
	connection
	Kind string `flag:"kind,k" desc:"reload only widgets of this kind"`
}

func reloadCommand() *cli.Command {
	var params reloadParams
	return &cli.Command{
		Name:    "reload",
		Summary: "Ask the platform to reload widget timelines",
		Description: "Reload every widget, or only one kind with --kind. On mobile platforms\n" +
			"reloads are rate limited and a request inside the interval is dropped.",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("reload", &params) },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("reload takes no arguments")
			}
			if params.Kind != "" {
				return params.call(ipc.ActionReloadKind, ipc.ReloadKindRequest{Kind: params.Kind}, nil)
			}
			return params.call(ipc.ActionReloadAll, nil, nil)
		},
	}
}
