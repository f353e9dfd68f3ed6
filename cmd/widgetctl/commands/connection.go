// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"time"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/codec"
	"github.com/bureau-foundation/widgets/lib/config"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/service"
)

// callTimeout bounds one daemon request.
const callTimeout = 30 * time.Second

// connection locates widgetd. Embed it in a params struct to get the
// --config and --socket flags.
type connection struct {
	ConfigPath string `flag:"config" desc:"path to widgets.yaml (default $WIDGETS_CONFIG)"`
	SocketPath string `flag:"socket" desc:"widgetd socket (default daemon.socket_path)"`
	Verbose    bool   `flag:"verbose,v" desc:"log requests to stderr"`
}

func (c *connection) loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(c.ConfigPath)
	if err != nil {
		return nil, cli.Validation("%v", err)
	}
	return cfg, nil
}

func (c *connection) socketPath() (string, error) {
	if c.SocketPath != "" {
		return c.SocketPath, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Daemon.SocketPath, nil
}

// call sends one request to widgetd and categorizes any failure.
func (c *connection) call(action string, fields, result any) error {
	socketPath, err := c.socketPath()
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(c.Verbose)
	if c.Verbose {
		logger.Debug("sending request", "action", action, "socket", socketPath, "fields", diagnose(fields))
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	started := time.Now()
	err = service.NewClient(socketPath).Call(ctx, action, fields, result)
	logger.Debug("request finished", "action", action, "elapsed", time.Since(started), "error", err)
	return cli.Categorize(err, socketPath)
}

// diagnose renders request fields in CBOR diagnostic notation.
func diagnose(fields any) string {
	if fields == nil {
		return "{}"
	}
	encoded, err := codec.Marshal(fields)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	text, err := codec.Diagnose(encoded)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return text
}

// dataPath returns the data file of group as widgetd would resolve it.
func (c *connection) dataPath(group string) (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	locator := datastore.Locator{DataDir: cfg.Paths.Data, Containers: cfg}
	return locator.Path(group), nil
}
