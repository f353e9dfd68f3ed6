// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bureau-foundation/widgets/lib/clock"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
	"github.com/bureau-foundation/widgets/lib/testutil"
)

var epoch = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	store        *datastore.Store
	hub          *events.Hub
	subscription *events.Subscription
	clock        *clock.FakeClock
	metrics      *metrics.Metrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	hub := events.NewHub()
	subscription := hub.Subscribe(16, events.ForNames(events.Action))
	t.Cleanup(subscription.Close)
	return &harness{
		store:        datastore.New(datastore.Options{Locator: datastore.Locator{DataDir: t.TempDir()}}),
		hub:          hub,
		subscription: subscription,
		clock:        clock.Fake(epoch),
		metrics:      metrics.New(false),
	}
}

func (h *harness) poller(group string, watch bool) *Poller {
	return NewPoller(PollerOptions{
		Group:   group,
		Store:   h.store,
		Sink:    h.hub,
		Watch:   watch,
		Clock:   h.clock,
		Metrics: h.metrics,
	})
}

func (h *harness) receiveActions(t *testing.T, n int) []string {
	t.Helper()
	var names []string
	for range n {
		event := testutil.RequireReceive(t, h.subscription.C, 5*time.Second, "waiting for widget-action")
		var payload events.ActionPayload
		if err := event.DecodePayload(&payload); err != nil {
			t.Fatal(err)
		}
		names = append(names, payload.Action)
	}
	return names
}

func TestPollEmitsInOrderAndClears(t *testing.T) {
	h := newHarness(t)
	path := h.store.Path("g")
	testutil.WriteJSONFile(t, path, map[string]string{PendingKey: `["a","b"]`, "keep": "1"})

	delivered := h.poller("g", false).Poll(context.Background())
	if len(delivered) != 2 {
		t.Fatalf("delivered %d actions, want 2", len(delivered))
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.receiveActions(t, 2)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	values, err := datastore.ReadMapFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if values[PendingKey] != "[]" || values["keep"] != "1" {
		t.Errorf("file after poll = %v, want empty queue and other keys kept", values)
	}
	if got := promtest.ToFloat64(h.metrics.ActionsEmitted); got != 2 {
		t.Errorf("actions_emitted_total = %v, want 2", got)
	}
}

func TestPollSeesExternalWritesThroughCache(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Set("g", "k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := Enqueue(h.store.Path("g"), Action{Action: "tap"}); err != nil {
		t.Fatal(err)
	}

	h.poller("g", false).Poll(context.Background())
	if diff := cmp.Diff([]string{"tap"}, h.receiveActions(t, 1)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if value, _, _ := h.store.Get("g", "k"); value != "v" {
		t.Errorf("k = %q after poll, want %q", value, "v")
	}
}

func TestPollKeepsActionsQueuedDuringDelivery(t *testing.T) {
	h := newHarness(t)
	path := h.store.Path("g")
	if err := Enqueue(path, Action{Action: "a"}); err != nil {
		t.Fatal(err)
	}

	appended := false
	sink := events.SinkFunc(func(ctx context.Context, event events.Event) error {
		if !appended {
			appended = true
			if err := Enqueue(path, Action{Action: "c"}); err != nil {
				t.Errorf("Enqueue during publish: %v", err)
			}
		}
		return h.hub.Publish(ctx, event)
	})
	poller := NewPoller(PollerOptions{Group: "g", Store: h.store, Sink: sink, Clock: h.clock})

	first := poller.Poll(context.Background())
	if len(first) != 1 || first[0].Action != "a" {
		t.Fatalf("first poll delivered %v, want [a]", first)
	}
	values, err := datastore.ReadMapFile(path)
	if err != nil {
		t.Fatal(err)
	}
	pending, err := ParsePending(values[PendingKey])
	if err != nil || len(pending) != 1 || pending[0].Action != "c" {
		t.Fatalf("queue after poll = %s, want only c", values[PendingKey])
	}

	second := poller.Poll(context.Background())
	if len(second) != 1 || second[0].Action != "c" {
		t.Fatalf("second poll delivered %v, want [c]", second)
	}
	if diff := cmp.Diff([]string{"a", "c"}, h.receiveActions(t, 2)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestPollErrorsAreSwallowed(t *testing.T) {
	h := newHarness(t)
	path := h.store.Path("g")
	testutil.WriteJSONFile(t, path, map[string]string{PendingKey: `not a list`})

	if delivered := h.poller("g", false).Poll(context.Background()); delivered != nil {
		t.Errorf("delivered = %v, want nothing", delivered)
	}
	if got := promtest.ToFloat64(h.metrics.PollErrors); got != 1 {
		t.Errorf("poll_errors_total = %v, want 1", got)
	}
	values, _ := datastore.ReadMapFile(path)
	if values[PendingKey] != "not a list" {
		t.Errorf("malformed queue rewritten to %q", values[PendingKey])
	}
}

func TestPollWithoutQueue(t *testing.T) {
	h := newHarness(t)
	if delivered := h.poller("g", false).Poll(context.Background()); delivered != nil {
		t.Errorf("delivered = %v, want nothing", delivered)
	}
	if _, err := os.Stat(h.store.Path("g")); !os.IsNotExist(err) {
		t.Errorf("poll created the data file: %v", err)
	}
}

func TestRunPollsOnInterval(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.poller("g", false).Run(ctx)
	}()

	h.clock.WaitForTimers(1)
	if err := Enqueue(h.store.Path("g"), Action{Action: "first"}); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(DefaultInterval)
	if diff := cmp.Diff([]string{"first"}, h.receiveActions(t, 1)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	cancel()
	testutil.RequireClosed(t, done, 5*time.Second, "poller exits on cancel")
}

func TestRunWakesOnFileChange(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.poller("g", true).Run(ctx)

	// The ticker is registered after the watch, and the fake clock is
	// never advanced, so only the file change can trigger the poll.
	h.clock.WaitForTimers(1)
	if err := Enqueue(h.store.Path("g"), Action{Action: "watched"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"watched"}, h.receiveActions(t, 1)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestManagerStartsOncePerGroup(t *testing.T) {
	h := newHarness(t)
	manager := NewManager(context.Background(), func(group string) *Poller {
		return h.poller(group, false)
	}, h.metrics)

	if !manager.Ensure("g") {
		t.Error("first Ensure did not start a poller")
	}
	if manager.Ensure("g") {
		t.Error("second Ensure started another poller")
	}
	if !manager.Ensure("other") {
		t.Error("Ensure for a second group did not start a poller")
	}
	if diff := cmp.Diff([]string{"g", "other"}, manager.Groups(), cmpSorted); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
	if got := promtest.ToFloat64(h.metrics.ActivePollers); got != 2 {
		t.Errorf("pollers_active = %v, want 2", got)
	}

	manager.Close()
	if got := promtest.ToFloat64(h.metrics.ActivePollers); got != 0 {
		t.Errorf("pollers_active after Close = %v, want 0", got)
	}
	if manager.Ensure("late") {
		t.Error("Ensure after Close started a poller")
	}
}

var cmpSorted = cmpopts.SortSlices(func(a, b string) bool { return a < b })
