// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bureau-foundation/widgets/lib/clock"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
)

// DefaultInterval is the poll period used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Store is the part of *datastore.Store the poller uses.
type Store interface {
	Path(group string) string
	Invalidate(group string)
	Snapshot(group string) (map[string]string, error)
	Reload(group string, mutate func(values map[string]string) bool) error
}

// PollerOptions configures a Poller.
type PollerOptions struct {
	Group string
	Store Store

	// Sink receives one widget-action event per queued action.
	Sink events.Sink

	// Interval between polls. Zero uses DefaultInterval.
	Interval time.Duration

	// Watch additionally polls whenever the group's data file changes.
	Watch bool

	Clock   clock.Clock
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Poller delivers the pending actions of one group.
type Poller struct {
	group    string
	store    Store
	sink     events.Sink
	interval time.Duration
	watch    bool
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// pollMu serializes polls started by Run and by explicit callers.
	pollMu sync.Mutex
}

// NewPoller creates a poller. It does nothing until Run or Poll is
// called.
func NewPoller(options PollerOptions) *Poller {
	poller := &Poller{
		group:    options.Group,
		store:    options.Store,
		sink:     options.Sink,
		interval: options.Interval,
		watch:    options.Watch,
		clock:    options.Clock,
		logger:   options.Logger,
		metrics:  options.Metrics,
	}
	if poller.interval <= 0 {
		poller.interval = DefaultInterval
	}
	if poller.clock == nil {
		poller.clock = clock.Real()
	}
	if poller.logger == nil {
		poller.logger = slog.New(slog.DiscardHandler)
	}
	if poller.sink == nil {
		poller.sink = events.Discard
	}
	return poller
}

// Group returns the group this poller serves.
func (p *Poller) Group() string { return p.group }

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	var changes <-chan fsnotify.Event
	var watchErrors <-chan error
	path := filepath.Clean(p.store.Path(p.group))
	if p.watch {
		watcher, err := p.startWatcher(path)
		if err != nil {
			p.logger.Warn("file watch unavailable, polling on interval only",
				"group", p.group,
				"path", path,
				"error", err,
			)
		} else {
			defer watcher.Close()
			changes = watcher.Events
			watchErrors = watcher.Errors
		}
	}

	// The ticker is created after the watch so that a registered timer
	// implies the watch is active.
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug("action poller started", "group", p.group, "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("action poller stopped", "group", p.group)
			return
		case <-ticker.C:
			p.Poll(ctx)
		case change, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			if filepath.Clean(change.Name) == path && change.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				p.Poll(ctx)
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			p.logger.Debug("file watch error", "group", p.group, "error", err)
		}
	}
}

// startWatcher watches the directory holding path. Writers replace the
// file by rename, which a watch on the file itself would lose.
func (p *Poller) startWatcher(path string) (*fsnotify.Watcher, error) {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(directory); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// Poll delivers the currently queued actions and returns them. Errors
// are logged and counted, never returned; the next poll retries.
func (p *Poller) Poll(ctx context.Context) []Action {
	delivered, err := p.poll(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.PollErrors.Inc()
		}
		p.logger.Debug("polling pending actions failed",
			"group", p.group,
			"error", err,
		)
	}
	return delivered
}

// PollErr is Poll for callers that want the error, such as an explicit
// poll requested over the socket.
func (p *Poller) PollErr(ctx context.Context) ([]Action, error) {
	return p.poll(ctx)
}

func (p *Poller) poll(ctx context.Context) ([]Action, error) {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	// Another process owns writes to the queue, so never trust the
	// cached copy.
	p.store.Invalidate(p.group)
	values, err := p.store.Snapshot(p.group)
	if err != nil {
		return nil, err
	}
	raw, ok := values[PendingKey]
	if !ok {
		return nil, nil
	}
	entries, err := ParsePending(raw)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	delivered := withAction(entries)
	now := p.clock.Now()
	for _, action := range delivered {
		if err := p.sink.Publish(ctx, events.NewAction(p.group, action.Event(), now)); err != nil {
			p.logger.Debug("publishing widget-action failed",
				"group", p.group,
				"action", action.Action,
				"error", err,
			)
		}
		if p.metrics != nil {
			p.metrics.ActionsEmitted.Inc()
		}
	}

	// Re-read before clearing: the native side may have appended while
	// the events were being published.
	count := len(entries)
	err = p.store.Reload(p.group, func(values map[string]string) bool {
		return removePending(values, count)
	})
	return delivered, err
}
