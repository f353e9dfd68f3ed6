// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
	"github.com/bureau-foundation/widgets/lib/widget"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Summary: "Read and check widget configs",
		Subcommands: []*cli.Command{
			configGetCommand(),
			configValidateCommand(),
			configInspectCommand(),
			configHashCommand(),
		},
	}
}

type configGetParams struct {
	connection
	Group string `flag:"group,g" desc:"widget group"`
	Color bool   `flag:"color" desc:"force syntax highlighting"`
}

func configGetCommand() *cli.Command {
	var params configGetParams
	return &cli.Command{
		Name:        "get",
		Summary:     "Print the canonical config stored for a group",
		Description: "Print the config widgetd last accepted for a group, in canonical form.\nOutput is highlighted when stdout is a terminal.",
		Flags:       func() *pflag.FlagSet { return cli.FlagsFromParams("get", &params) },
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Validation("config get takes no arguments")
			}
			var response ipc.GetConfigResponse
			if err := params.call(ipc.ActionGetConfig, ipc.GroupRequest{Group: params.Group}, &response); err != nil {
				return err
			}
			if !response.Found {
				return cli.NotFound("no widget config stored for %s", groupLabel(params.Group))
			}
			return writeHighlightedJSON(stdout, response.Config, highlightFormatter(params.Color))
		},
	}
}

func configValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Summary: "Check widget config files without pushing them",
		Usage:   "widgetctl config validate <file>...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("config validate needs at least one file")
			}
			failed := 0
			for _, path := range args {
				if _, err := widget.ParseConfigFile(path); err != nil {
					failed++
					fmt.Fprintf(stdout, "%s: invalid\n  %v\n", path, err)
					continue
				}
				fmt.Fprintf(stdout, "%s: ok\n", path)
			}
			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func configInspectCommand() *cli.Command {
	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the element tree of a widget config file",
		Usage:   "widgetctl config inspect <file>",
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("config inspect takes exactly one file")
			}
			config, err := widget.ParseConfigFile(args[0])
			if err != nil {
				return cli.Categorize(err, "")
			}
			return renderInspect(stdout, config)
		},
	}
}

type configHashParams struct {
	cli.JSONOutput
}

type hashResult struct {
	Hash      string `json:"hash"`
	Canonical string `json:"canonical"`
}

func configHashCommand() *cli.Command {
	var params configHashParams
	return &cli.Command{
		Name:        "hash",
		Summary:     "Print the content hash of a widget config file",
		Description: "Print the hash widgetd uses to detect unchanged pushes. Files that differ\nonly in formatting, member order, or null members hash the same.",
		Usage:       "widgetctl config hash [--json] <file>",
		Flags:       func() *pflag.FlagSet { return cli.FlagsFromParams("hash", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("config hash takes exactly one file")
			}
			config, err := widget.ParseConfigFile(args[0])
			if err != nil {
				return cli.Categorize(err, "")
			}
			canonical, err := widget.Canonicalize(config)
			if err != nil {
				return err
			}
			if canonical == nil {
				return errors.New("empty canonical form")
			}
			result := hashResult{Hash: widget.ContentHash(canonical).String(), Canonical: string(canonical)}
			if done, err := params.EmitJSONTo(stdout, result); done {
				return err
			}
			_, err = fmt.Fprintln(stdout, result.Hash)
			return err
		},
	}
}
