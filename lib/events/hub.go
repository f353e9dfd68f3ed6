// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Publish after the hub is closed.
var ErrClosed = errors.New("events: hub closed")

// DefaultBuffer is the subscription channel capacity used when
// Subscribe is given a non-positive size.
const DefaultBuffer = 64

// Filter selects which events a subscription receives. A nil filter
// receives everything.
type Filter func(Event) bool

// ForNames returns a filter matching any of names.
func ForNames(names ...Name) Filter {
	return func(event Event) bool {
		for _, name := range names {
			if event.Name == name {
				return true
			}
		}
		return false
	}
}

// Hub delivers events to in-process subscribers. Publish never blocks:
// a subscriber whose buffer is full misses the event, and OnDrop (if
// set) is called with it.
type Hub struct {
	// OnDrop is called for every event dropped because a subscriber's
	// buffer was full. It must not block.
	OnDrop func(Event)

	mu            sync.RWMutex
	subscriptions map[*Subscription]struct{}
	closed        atomic.Bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subscriptions: make(map[*Subscription]struct{})}
}

// Subscription is one subscriber's view of the hub.
type Subscription struct {
	// C receives matching events in publish order. It is closed when the
	// subscription or the hub is closed.
	C <-chan Event

	channel chan Event
	filter  Filter
	hub     *Hub
	once    sync.Once
}

// Subscribe registers a subscriber with the given buffer size.
func (h *Hub) Subscribe(buffer int, filter Filter) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	channel := make(chan Event, buffer)
	subscription := &Subscription{C: channel, channel: channel, filter: filter, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed.Load() {
		close(channel)
		subscription.once.Do(func() {})
		return subscription
	}
	h.subscriptions[subscription] = struct{}{}
	return subscription
}

// Close unregisters the subscription and closes C.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subscriptions, s)
		s.hub.mu.Unlock()
		close(s.channel)
	})
}

// Publish delivers event to every matching subscriber.
func (h *Hub) Publish(_ context.Context, event Event) error {
	if h.closed.Load() {
		return ErrClosed
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for subscription := range h.subscriptions {
		if subscription.filter != nil && !subscription.filter(event) {
			continue
		}
		select {
		case subscription.channel <- event:
		default:
			if h.OnDrop != nil {
				h.OnDrop(event)
			}
		}
	}
	return nil
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions)
}

// Close closes every subscription. Later publishes return ErrClosed.
func (h *Hub) Close() error {
	if h.closed.Swap(true) {
		return ErrClosed
	}

	h.mu.Lock()
	subscriptions := h.subscriptions
	h.subscriptions = make(map[*Subscription]struct{})
	h.mu.Unlock()

	for subscription := range subscriptions {
		subscription.once.Do(func() { close(subscription.channel) })
	}
	return nil
}
