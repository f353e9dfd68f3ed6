// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"context"
	"sync"

	"github.com/bureau-foundation/widgets/lib/metrics"
)

// Manager runs at most one Poller per group.
type Manager struct {
	newPoller func(group string) *Poller
	metrics   *metrics.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	pollers map[string]*Poller
	closed  bool
}

// NewManager creates a manager whose pollers run until ctx is cancelled
// or Close is called. newPoller builds the poller for a group.
func NewManager(ctx context.Context, newPoller func(group string) *Poller, m *metrics.Metrics) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		newPoller: newPoller,
		metrics:   m,
		ctx:       ctx,
		cancel:    cancel,
		pollers:   make(map[string]*Poller),
	}
}

// Ensure starts the poller for group unless one is already running. It
// reports whether a poller was started.
func (m *Manager) Ensure(group string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	if _, ok := m.pollers[group]; ok {
		return false
	}

	poller := m.newPoller(group)
	m.pollers[group] = poller
	if m.metrics != nil {
		m.metrics.ActivePollers.Inc()
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		poller.Run(m.ctx)
		if m.metrics != nil {
			m.metrics.ActivePollers.Dec()
		}
	}()
	return true
}

// Poller returns the running poller for group.
func (m *Manager) Poller(group string) (*Poller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	poller, ok := m.pollers[group]
	return poller, ok
}

// Groups returns the groups with a running poller.
func (m *Manager) Groups() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	groups := make([]string, 0, len(m.pollers))
	for group := range m.pollers {
		groups = append(groups, group)
	}
	return groups
}

// Close stops every poller and waits for them to return. Ensure does
// nothing after Close.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.wg.Wait()
}
