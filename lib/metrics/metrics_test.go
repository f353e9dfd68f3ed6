// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstancesAreIndependent(t *testing.T) {
	first := New(false)
	second := New(false)

	first.ConfigPushes.WithLabelValues(PushChanged).Inc()
	first.ConfigPushes.WithLabelValues(PushChanged).Inc()

	if got := promtest.ToFloat64(first.ConfigPushes.WithLabelValues(PushChanged)); got != 2 {
		t.Errorf("first changed pushes = %v, want 2", got)
	}
	if got := promtest.ToFloat64(second.ConfigPushes.WithLabelValues(PushChanged)); got != 0 {
		t.Errorf("second changed pushes = %v, want 0", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New(true)
	m.Reloads.WithLabelValues(ReloadSkipped).Inc()
	m.ActivePollers.Set(2)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(recorder.Body)

	for _, want := range []string{
		`widgets_reloads_total{outcome="skipped"} 1`,
		`widgets_pollers_active 2`,
		`go_goroutines`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestObserveSocketRequest(t *testing.T) {
	m := New(false)
	m.ObserveSocketRequest("push-config", 3*time.Millisecond, nil)
	m.ObserveSocketRequest("push-config", time.Millisecond, errors.New("invalid"))

	if got := promtest.ToFloat64(m.SocketRequests.WithLabelValues("push-config", "ok")); got != 1 {
		t.Errorf("ok requests = %v, want 1", got)
	}
	if got := promtest.ToFloat64(m.SocketRequests.WithLabelValues("push-config", "error")); got != 1 {
		t.Errorf("failed requests = %v, want 1", got)
	}
	if got := promtest.CollectAndCount(m.SocketDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestWriteResult(t *testing.T) {
	if got := WriteResult(nil); got != "ok" {
		t.Errorf("WriteResult(nil) = %q, want %q", got, "ok")
	}
	if got := WriteResult(errors.New("disk full")); got != "error" {
		t.Errorf("WriteResult(err) = %q, want %q", got, "error")
	}
}
