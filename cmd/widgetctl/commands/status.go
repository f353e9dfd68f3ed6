// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

type statusParams struct {
	connection
	cli.JSONOutput
}

func statusCommand() *cli.Command {
	var params statusParams
	return &cli.Command{
		Name:    "status",
		Summary: "Show widgetd state",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("status", &params) },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("status takes no arguments")
			}
			var status ipc.StatusResponse
			if err := params.call(ipc.ActionStatus, nil, &status); err != nil {
				return err
			}
			if done, err := params.EmitJSONTo(stdout, status); done {
				return err
			}

			writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "version\t%s\n", status.Version)
			fmt.Fprintf(writer, "platform\t%s\n", status.Platform)
			fmt.Fprintf(writer, "environment\t%s\n", status.Environment)
			fmt.Fprintf(writer, "reload interval\t%s\n", status.ReloadInterval)
			fmt.Fprintf(writer, "registered kinds\t%s\n", listOrNone(status.RegisteredKinds))
			fmt.Fprintf(writer, "pollers\t%s\n", listOrNone(status.Pollers))
			fmt.Fprintf(writer, "event subscribers\t%d\n", status.EventSubscribers)
			if len(status.Windows) > 0 {
				fmt.Fprintf(writer, "windows\t%s\n", strings.Join(status.Windows, ", "))
			}
			groups := make([]string, 0, len(status.ConfigHashes))
			for group := range status.ConfigHashes {
				groups = append(groups, group)
			}
			slices.Sort(groups)
			for _, group := range groups {
				fmt.Fprintf(writer, "config %s\t%s\n", groupLabel(group), status.ConfigHashes[group])
			}
			return writer.Flush()
		},
	}
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
