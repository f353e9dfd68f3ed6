// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/widgets/lib/bridge"
	"github.com/bureau-foundation/widgets/lib/clock"
	"github.com/bureau-foundation/widgets/lib/config"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
	"github.com/bureau-foundation/widgets/lib/process"
	"github.com/bureau-foundation/widgets/lib/service"
	"github.com/bureau-foundation/widgets/lib/throttle"
	"github.com/bureau-foundation/widgets/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

// flags are the command-line overrides of the loaded configuration.
type flags struct {
	configPath     string
	socketPath     string
	platform       string
	metricsAddress string
	natsURL        string
	logLevel       string
	showVersion    bool
}

func parseFlags(args []string) (flags, error) {
	var parsed flags
	flagSet := pflag.NewFlagSet("widgetd", pflag.ContinueOnError)
	flagSet.StringVar(&parsed.configPath, "config", "", "path to widgets.yaml (default $"+config.EnvConfig+")")
	flagSet.StringVar(&parsed.socketPath, "socket", "", "override daemon.socket_path")
	flagSet.StringVar(&parsed.platform, "platform", "", "override platform (desktop or mobile)")
	flagSet.StringVar(&parsed.metricsAddress, "metrics-address", "", "override daemon.metrics_address")
	flagSet.StringVar(&parsed.natsURL, "nats-url", "", "override events.nats_url")
	flagSet.StringVar(&parsed.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flagSet.BoolVar(&parsed.showVersion, "version", false, "print version information and exit")
	err := flagSet.Parse(args)
	return parsed, err
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(parsed flags) (*config.Config, error) {
	cfg, err := config.Resolve(parsed.configPath)
	if err != nil {
		return nil, err
	}
	if parsed.socketPath != "" {
		cfg.Daemon.SocketPath = parsed.socketPath
	}
	if parsed.platform != "" {
		cfg.Platform = config.Platform(parsed.platform)
	}
	if parsed.metricsAddress != "" {
		cfg.Daemon.MetricsAddress = parsed.metricsAddress
	}
	if parsed.natsURL != "" {
		cfg.Events.NATSURL = parsed.natsURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(args []string) error {
	parsed, err := parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if parsed.showVersion {
		fmt.Printf("widgetd %s\n", version.Info())
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(parsed.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(parsed)
	if err != nil {
		return err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	widgetBridge, host, cleanup, err := newBridge(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	server := service.NewSocketServer(cfg.Daemon.SocketPath, logger)
	(&daemon{bridge: widgetBridge, host: host, config: cfg, logger: logger}).register(server)

	socketDone := make(chan error, 1)
	go func() {
		socketDone <- server.Serve(ctx)
	}()

	metricsDone := serveMetrics(ctx, cfg.Daemon.MetricsAddress, widgetBridge.Metrics(), logger)

	logger.Info("widgetd running",
		"version", version.Info(),
		"platform", cfg.Platform,
		"environment", cfg.Environment,
		"socket", cfg.Daemon.SocketPath,
		"data", cfg.Paths.Data,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	if err := <-socketDone; err != nil {
		logger.Error("socket server error", "error", err)
	}
	if err := <-metricsDone; err != nil {
		logger.Error("metrics server error", "error", err)
	}
	return nil
}

// newBridge assembles the bridge and its collaborators from cfg. The
// returned cleanup closes the bridge and the NATS connection.
func newBridge(cfg *config.Config, logger *slog.Logger) (*bridge.Bridge, *host, func(), error) {
	reloadInterval, err := cfg.ReloadInterval()
	if err != nil {
		return nil, nil, nil, err
	}
	reloadInterval = throttle.IntervalFromEnv(reloadInterval, logger)
	pollInterval, err := cfg.PollInterval()
	if err != nil {
		return nil, nil, nil, err
	}

	realClock := clock.Real()
	host := newHost(cfg, logger)
	options := bridge.Options{
		Platform:     bridge.Platform(cfg.Platform),
		Native:       host,
		DataDir:      cfg.Paths.Data,
		Sink:         events.Discard,
		EventBuffer:  cfg.Events.Buffer,
		PollInterval: pollInterval,
		WatchFiles:   cfg.Actions.Watch,
		Clock:        realClock,
		Logger:       logger,
		Metrics:      metrics.New(true),
	}
	if options.Platform == bridge.Desktop {
		options.Windows = host
	} else {
		options.Throttle = throttle.New(reloadInterval, realClock)
	}

	closeNATS := func() {}
	if cfg.Events.NATSURL != "" {
		conn, err := events.ConnectNATS(cfg.Events.NATSURL, "widgetd", 0)
		if err != nil {
			return nil, nil, nil, err
		}
		options.Sink = events.NewNATSSink(conn, cfg.Events.SubjectPrefix)
		closeNATS = func() {
			if err := conn.Drain(); err != nil {
				logger.Warn("draining NATS connection", "error", err)
			}
		}
		logger.Info("forwarding events to NATS",
			"url", cfg.Events.NATSURL,
			"prefix", cfg.Events.SubjectPrefix,
		)
	}

	widgetBridge, err := bridge.New(options)
	if err != nil {
		closeNATS()
		return nil, nil, nil, err
	}
	cleanup := func() {
		widgetBridge.Close()
		closeNATS()
	}
	return widgetBridge, host, cleanup, nil
}

// serveMetrics serves /metrics on address until ctx is done. An empty
// address disables the server. The returned channel yields the server's
// exit error once.
func serveMetrics(ctx context.Context, address string, registry *metrics.Metrics, logger *slog.Logger) <-chan error {
	done := make(chan error, 1)
	if address == "" {
		done <- nil
		return done
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("metrics server listening", "address", address)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	return done
}
