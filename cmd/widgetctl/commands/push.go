// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
	"github.com/bureau-foundation/widgets/lib/widget"
)

type pushParams struct {
	connection
	cli.JSONOutput
	Group      string `flag:"group,g" desc:"widget group (app group identifier)"`
	SkipReload bool   `flag:"skip-reload" desc:"persist without requesting a reload"`
}

func pushCommand() *cli.Command {
	var params pushParams
	return &cli.Command{
		Name:    "push",
		Summary: "Push a widget config file to widgetd",
		Description: "Validate a widget config (JSON or JSONC) locally, then push it to the\n" +
			"daemon. An unchanged config is not rewritten and does not reload widgets.",
		Usage: "widgetctl push [flags] <config.json>",
		Examples: []cli.Example{
			{Description: "Push the weather widget layout", Command: "widgetctl push --group group.com.example.weather weather.jsonc"},
			{Description: "Push without reloading", Command: "widgetctl push -g weather --skip-reload weather.json"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("push", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("push takes exactly one config file, got %d arguments", len(args))
			}
			config, err := widget.ParseConfigFile(args[0])
			if err != nil {
				return cli.Categorize(err, "")
			}
			encoded, err := widget.Marshal(config)
			if err != nil {
				return err
			}

			var result ipc.PushConfigResponse
			request := ipc.PushConfigRequest{Group: params.Group, Config: encoded, SkipReload: params.SkipReload}
			if err := params.call(ipc.ActionPushConfig, request, &result); err != nil {
				return err
			}
			if done, err := params.EmitJSONTo(stdout, result); done {
				return err
			}

			state := "unchanged"
			if result.Changed {
				state = "updated"
			}
			if result.Reload != "" {
				state += ", reload " + result.Reload
			}
			_, err = fmt.Fprintf(stdout, "%s %s (%s)\n", groupLabel(params.Group), result.Hash, state)
			return err
		},
	}
}

// groupLabel names a group in human output.
func groupLabel(group string) string {
	if group == "" {
		return "(default group)"
	}
	return group
}
