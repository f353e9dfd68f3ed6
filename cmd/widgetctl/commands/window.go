// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/ipc"
	"github.com/bureau-foundation/widgets/lib/widget"
)

func windowCommand() *cli.Command {
	return &cli.Command{
		Name:        "window",
		Summary:     "Open and close desktop widget windows",
		Subcommands: []*cli.Command{windowCreateCommand(), windowCloseCommand()},
	}
}

// optionalFloat is a float64 flag that remembers whether it was set.
type optionalFloat struct {
	value *float64
}

func (f *optionalFloat) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(text string) error {
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}
	f.value = &parsed
	return nil
}

func (f *optionalFloat) Type() string { return "float" }

// Position binds --x and --y. Unset coordinates let the host place the
// window.
type Position struct {
	X optionalFloat
	Y optionalFloat
}

func (p *Position) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.Var(&p.X, "x", "left edge in logical pixels")
	flagSet.Var(&p.Y, "y", "top edge in logical pixels")
}

type windowCreateParams struct {
	connection
	Position
	URL           string  `flag:"url" desc:"page to load instead of the built-in renderer"`
	Group         string  `flag:"group,g" desc:"widget group rendered by the built-in renderer"`
	Size          string  `flag:"size" desc:"size family rendered by the built-in renderer" default:"small"`
	Width         float64 `flag:"width" desc:"window width" default:"170"`
	Height        float64 `flag:"height" desc:"window height" default:"170"`
	AlwaysOnTop   bool    `flag:"always-on-top" desc:"keep the window above others"`
	ShowInTaskbar bool    `flag:"show-in-taskbar" desc:"list the window in the taskbar"`
}

func windowCreateCommand() *cli.Command {
	var params windowCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Open a frameless widget window",
		Usage:   "widgetctl window create [flags] <label>",
		Examples: []cli.Example{
			{Description: "Open the medium weather widget", Command: "widgetctl window create -g weather --size medium --width 340 weather-main"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("window create takes exactly one label")
			}
			size := widget.Size(params.Size)
			switch size {
			case widget.SizeSmall, widget.SizeMedium, widget.SizeLarge:
			default:
				return cli.Validation("--size must be small, medium, or large, got %q", params.Size)
			}
			window := widget.WindowConfig{
				Label:       args[0],
				URL:         params.URL,
				Width:       params.Width,
				Height:      params.Height,
				X:           params.X.value,
				Y:           params.Y.value,
				AlwaysOnTop: params.AlwaysOnTop,
				SkipTaskbar: !params.ShowInTaskbar,
				Group:       params.Group,
				Size:        size,
			}
			encoded, err := json.Marshal(window)
			if err != nil {
				return err
			}
			if err := params.call(ipc.ActionCreateWindow, ipc.CreateWindowRequest{Window: encoded}, nil); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "opened %s (%s)\n", window.Label, window.RendererURL())
			return err
		},
	}
}

type windowCloseParams struct {
	connection
}

func windowCloseCommand() *cli.Command {
	var params windowCloseParams
	return &cli.Command{
		Name:    "close",
		Summary: "Close a widget window",
		Usage:   "widgetctl window close <label>",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("close", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("window close takes exactly one label")
			}
			var response ipc.CloseWindowResponse
			if err := params.call(ipc.ActionCloseWindow, ipc.CloseWindowRequest{Label: args[0]}, &response); err != nil {
				return err
			}
			if !response.Closed {
				return cli.NotFound("no window labeled %q", args[0])
			}
			return nil
		},
	}
}
