// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

func itemCommand() *cli.Command {
	return &cli.Command{
		Name:        "item",
		Summary:     "Read and write widget group data",
		Subcommands: []*cli.Command{itemSetCommand(), itemGetCommand()},
	}
}

type itemParams struct {
	connection
	Group string `flag:"group,g" desc:"widget group"`
}

func itemSetCommand() *cli.Command {
	var params itemParams
	return &cli.Command{
		Name:    "set",
		Summary: "Store a value in a group's data file",
		Usage:   "widgetctl item set [flags] <key> <value>",
		Examples: []cli.Example{
			{Description: "Set the temperature shown by a widget", Command: "widgetctl item set -g weather temperature 21"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("set", &params) },
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Validation("item set takes a key and a value")
			}
			request := ipc.ItemRequest{Group: params.Group, Key: args[0], Value: args[1]}
			return params.call(ipc.ActionSetItem, request, nil)
		},
	}
}

func itemGetCommand() *cli.Command {
	var params itemParams
	return &cli.Command{
		Name:    "get",
		Summary: "Print a value from a group's data file",
		Usage:   "widgetctl item get [flags] <key>",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("get", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("item get takes exactly one key")
			}
			var response ipc.ItemResponse
			request := ipc.ItemRequest{Group: params.Group, Key: args[0]}
			if err := params.call(ipc.ActionGetItem, request, &response); err != nil {
				return err
			}
			if !response.Found {
				return cli.NotFound("no value for %q in %s", args[0], groupLabel(params.Group))
			}
			_, err := fmt.Fprintln(stdout, response.Value)
			return err
		},
	}
}
