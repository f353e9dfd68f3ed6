// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bureau-foundation/widgets/lib/actions"
	"github.com/bureau-foundation/widgets/lib/clock"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
	"github.com/bureau-foundation/widgets/lib/native"
	"github.com/bureau-foundation/widgets/lib/throttle"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// ConfigKey is the data file key holding a group's canonical config.
const ConfigKey = "__widget_config__"

// Platform selects platform-specific behaviour.
type Platform string

const (
	Desktop Platform = "desktop"
	Mobile  Platform = "mobile"
)

// Options configures a Bridge.
type Options struct {
	Platform Platform

	// Native is the host platform surface. Nil uses native.Nop.
	Native native.Capabilities

	// Windows manages desktop widget windows. Nil makes window
	// operations unsupported.
	Windows native.Windows

	// Pinner forwards pin requests on mobile. Nil makes RequestWidget
	// unsupported.
	Pinner native.Pinner

	// Store holds the group data. When nil a store rooted at DataDir
	// is created, with shared containers resolved through Native.
	Store   *datastore.Store
	DataDir string

	// Throttle limits reloads triggered by config pushes on mobile.
	// Nil disables throttling.
	Throttle *throttle.Throttle

	// Sink receives every event in addition to the bridge's hub, for
	// forwarding to other processes.
	Sink events.Sink

	// EventBuffer is the channel capacity of hub subscriptions created
	// through Subscribe.
	EventBuffer int

	// PollInterval and WatchFiles configure the desktop action
	// pollers.
	PollInterval time.Duration
	WatchFiles   bool

	Clock   clock.Clock
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Bridge is the widget bridge handle. It is safe for concurrent use.
type Bridge struct {
	platform    Platform
	native      native.Capabilities
	windows     native.Windows
	pinner      native.Pinner
	store       *datastore.Store
	throttle    *throttle.Throttle
	hub         *events.Hub
	sink        events.Sink
	eventBuffer int
	clock       clock.Clock
	logger      *slog.Logger
	metrics     *metrics.Metrics
	pollers     *actions.Manager

	// mu guards hashes and kinds.
	mu     sync.Mutex
	hashes map[string]widget.Hash
	kinds  []string

	unsubscribe func()
	closeOnce   sync.Once
}

// New creates a bridge. Call Close to stop its pollers.
func New(options Options) (*Bridge, error) {
	if options.Platform != Desktop && options.Platform != Mobile {
		return nil, fmt.Errorf("unknown platform %q", options.Platform)
	}
	if options.Store == nil && options.DataDir == "" {
		return nil, fmt.Errorf("either Store or DataDir is required")
	}

	b := &Bridge{
		platform:    options.Platform,
		native:      options.Native,
		windows:     options.Windows,
		pinner:      options.Pinner,
		store:       options.Store,
		throttle:    options.Throttle,
		sink:        options.Sink,
		eventBuffer: options.EventBuffer,
		clock:       options.Clock,
		logger:      options.Logger,
		metrics:     options.Metrics,
		hub:         events.NewHub(),
		hashes:      make(map[string]widget.Hash),
	}
	if b.native == nil {
		b.native = native.Nop{}
	}
	if b.clock == nil {
		b.clock = clock.Real()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	if b.metrics == nil {
		b.metrics = metrics.New(false)
	}
	if b.store == nil {
		b.store = datastore.New(datastore.Options{
			Locator: datastore.Locator{DataDir: options.DataDir, Containers: b.native},
			Logger:  b.logger,
		})
	}

	b.hub.OnDrop = func(event events.Event) {
		b.metrics.EventsDropped.WithLabelValues(string(event.Name)).Inc()
	}
	b.unsubscribe = b.store.Subscribe(func(group string) {
		b.publish(context.Background(), events.NewUpdate(group, b.clock.Now()))
	})
	b.pollers = actions.NewManager(context.Background(), func(group string) *actions.Poller {
		return actions.NewPoller(actions.PollerOptions{
			Group:    group,
			Store:    b.store,
			Sink:     events.SinkFunc(b.publish),
			Interval: options.PollInterval,
			Watch:    options.WatchFiles,
			Clock:    b.clock,
			Logger:   b.logger,
			Metrics:  b.metrics,
		})
	}, b.metrics)

	return b, nil
}

// Platform returns the platform the bridge was created for.
func (b *Bridge) Platform() Platform { return b.platform }

// Store returns the bridge's key-value store.
func (b *Bridge) Store() *datastore.Store { return b.store }

// Metrics returns the bridge's instruments.
func (b *Bridge) Metrics() *metrics.Metrics { return b.metrics }

// Subscribe returns a subscription to the bridge's events. A nil
// filter receives every event.
func (b *Bridge) Subscribe(filter events.Filter) *events.Subscription {
	return b.hub.Subscribe(b.eventBuffer, filter)
}

// Close stops the action pollers and closes every subscription.
func (b *Bridge) Close() error {
	b.closeOnce.Do(func() {
		b.pollers.Close()
		b.unsubscribe()
		b.hub.Close()
	})
	return nil
}

// publish delivers event to the hub and the external sink. Delivery
// failures are logged; observers are never allowed to fail an
// operation.
func (b *Bridge) publish(ctx context.Context, event events.Event) error {
	if err := b.hub.Publish(ctx, event); err != nil && !errors.Is(err, events.ErrClosed) {
		b.logger.Warn("publishing event to subscribers failed", "event", event.Name, "error", err)
	}
	if b.sink != nil {
		if err := b.sink.Publish(ctx, event); err != nil {
			b.logger.Warn("forwarding event failed",
				"event", event.Name,
				"group", event.Group,
				"error", err,
			)
		}
	}
	return nil
}

// Status summarizes the bridge state.
type Status struct {
	Platform         Platform          `json:"platform"`
	ReloadInterval   time.Duration     `json:"reload_interval"`
	Pollers          []string          `json:"pollers"`
	RegisteredKinds  []string          `json:"registered_kinds"`
	ConfigHashes     map[string]string `json:"config_hashes"`
	EventSubscribers int               `json:"event_subscribers"`
}

// Status returns a snapshot of the bridge state.
func (b *Bridge) Status() Status {
	status := Status{
		Platform:         b.platform,
		Pollers:          b.pollers.Groups(),
		EventSubscribers: b.hub.Subscribers(),
		ConfigHashes:     make(map[string]string),
	}
	slices.Sort(status.Pollers)
	if b.throttle != nil {
		status.ReloadInterval = b.throttle.Interval()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	status.RegisteredKinds = slices.Clone(b.kinds)
	for group, hash := range b.hashes {
		status.ConfigHashes[group] = hash.String()
	}
	return status
}
