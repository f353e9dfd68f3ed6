// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/actions"
	"github.com/bureau-foundation/widgets/lib/ipc"
)

func actionCommand() *cli.Command {
	return &cli.Command{
		Name:    "action",
		Summary: "Send and inspect widget interactions",
		Subcommands: []*cli.Command{
			actionEmitCommand(),
			actionEnqueueCommand(),
			actionPollCommand(),
		},
	}
}

type actionParams struct {
	connection
	Group string `flag:"group,g" desc:"widget group"`
}

// actionArgs splits "<name> [payload]" and checks the payload is JSON.
func actionArgs(command string, args []string) (name string, payload json.RawMessage, err error) {
	if len(args) < 1 || len(args) > 2 {
		return "", nil, cli.Validation("%s takes an action name and an optional JSON payload", command)
	}
	name = args[0]
	if len(args) == 2 {
		payload = json.RawMessage(args[1])
		if !json.Valid(payload) {
			return "", nil, cli.Validation("payload is not valid JSON: %s", args[1])
		}
	}
	return name, payload, nil
}

func actionEmitCommand() *cli.Command {
	var params actionParams
	return &cli.Command{
		Name:        "emit",
		Summary:     "Deliver a widget action to listeners now",
		Description: "Publish a widget-action event through widgetd, bypassing the pending\nqueue in the group's data file.",
		Usage:       "widgetctl action emit [flags] <name> [payload]",
		Examples: []cli.Example{
			{Description: "Simulate a refresh tap", Command: `widgetctl action emit -g weather refresh '{"source":"cli"}'`},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("emit", &params) },
		Run: func(args []string) error {
			name, payload, err := actionArgs("action emit", args)
			if err != nil {
				return err
			}
			request := ipc.WidgetActionRequest{Group: params.Group, Name: name, Payload: payload}
			return params.call(ipc.ActionWidgetAction, request, nil)
		},
	}
}

func actionEnqueueCommand() *cli.Command {
	var params actionParams
	return &cli.Command{
		Name:    "enqueue",
		Summary: "Queue a widget action in the group's data file",
		Description: "Append an action to the pending queue the way the native widget does\n" +
			"on a tap. The file is written directly, so widgetd need not be running;\n" +
			"its poller delivers the action within one poll interval.",
		Usage: "widgetctl action enqueue [flags] <name> [payload]",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("enqueue", &params) },
		Run: func(args []string) error {
			name, payload, err := actionArgs("action enqueue", args)
			if err != nil {
				return err
			}
			path, err := params.dataPath(params.Group)
			if err != nil {
				return err
			}
			if err := actions.Enqueue(path, actions.Action{Action: name, Payload: payload}); err != nil {
				return cli.Categorize(err, "")
			}
			_, err = fmt.Fprintf(stdout, "queued %s in %s\n", name, path)
			return err
		},
	}
}

type actionPollParams struct {
	actionParams
	cli.JSONOutput
}

// polledAction is the JSON form of a delivered action.
type polledAction struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func actionPollCommand() *cli.Command {
	var params actionPollParams
	return &cli.Command{
		Name:    "poll",
		Summary: "Drain the group's pending actions",
		Description: "Run one poll cycle in widgetd and print the delivered actions. Each\n" +
			"action is also published as a widget-action event.",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("poll", &params) },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("action poll takes no arguments")
			}
			var response ipc.PollActionsResponse
			if err := params.call(ipc.ActionPollActions, ipc.GroupRequest{Group: params.Group}, &response); err != nil {
				return err
			}
			delivered := make([]polledAction, 0, len(response.Actions))
			for _, action := range response.Actions {
				delivered = append(delivered, polledAction{Action: action.Action, Payload: action.Payload})
			}
			if done, err := params.EmitJSONTo(stdout, delivered); done {
				return err
			}
			if len(delivered) == 0 {
				_, err := fmt.Fprintln(stdout, "no pending actions")
				return err
			}
			for _, action := range delivered {
				if len(action.Payload) == 0 {
					fmt.Fprintln(stdout, action.Action)
					continue
				}
				fmt.Fprintf(stdout, "%s %s\n", action.Action, action.Payload)
			}
			return nil
		},
	}
}
