// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines the Prometheus instruments for the widget
// bridge. Each [Metrics] owns its registry so that independent bridges
// (and tests) do not share counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "widgets"

// Push results.
const (
	PushChanged   = "changed"
	PushUnchanged = "unchanged"
	PushFailed    = "failed"
)

// Reload outcomes.
const (
	ReloadDispatched = "dispatched"
	ReloadSkipped    = "skipped"
	ReloadFailed     = "failed"
)

// Metrics holds the bridge instruments.
type Metrics struct {
	Registry *prometheus.Registry

	ConfigPushes   *prometheus.CounterVec
	Reloads        *prometheus.CounterVec
	StoreWrites    *prometheus.CounterVec
	ActionsEmitted prometheus.Counter
	PollErrors     prometheus.Counter
	EventsDropped  *prometheus.CounterVec
	ActivePollers  prometheus.Gauge

	SocketRequests *prometheus.CounterVec
	SocketDuration *prometheus.HistogramVec
}

// New creates the instruments on a fresh registry. When process is
// true the Go runtime and process collectors are registered too.
func New(process bool) *Metrics {
	registry := prometheus.NewRegistry()
	if process {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		ConfigPushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_pushes_total",
			Help:      "Widget config pushes by result (changed, unchanged, failed).",
		}, []string{"result"}),
		Reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Timeline reload requests by outcome (dispatched, skipped, failed).",
		}, []string{"outcome"}),
		StoreWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Key-value group file writes by result (ok, error).",
		}, []string{"result"}),
		ActionsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_emitted_total",
			Help:      "widget-action events emitted.",
		}),
		PollErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Pending action polls that failed and were retried on the next tick.",
		}),
		EventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events not delivered to a slow in-process subscriber, by event name.",
		}, []string{"event"}),
		ActivePollers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pollers_active",
			Help:      "Running pending action pollers.",
		}),
		SocketRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "socket_requests_total",
			Help:      "widgetd socket requests by action and result (ok, error).",
		}, []string{"action", "result"}),
		SocketDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "socket_request_duration_seconds",
			Help:      "Time spent in widgetd socket handlers, by action.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"action"}),
	}
}

// ObserveSocketRequest records one handled socket request.
func (m *Metrics) ObserveSocketRequest(action string, elapsed time.Duration, err error) {
	m.SocketRequests.WithLabelValues(action, WriteResult(err)).Inc()
	m.SocketDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// WriteResult maps a write error to the StoreWrites label.
func WriteResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
