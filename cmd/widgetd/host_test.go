// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/widgets/lib/config"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/widget"
)

func TestHostSetPreference(t *testing.T) {
	cfg := testConfig(t, config.Mobile)
	h := newHost(cfg, slog.New(slog.DiscardHandler))

	if err := h.SetPreference("group.com.example", "temp", "21"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := h.SetPreference("group.com.example", "city", "Oslo"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}

	path := filepath.Join(cfg.Paths.Root, "preferences", "group.com.example.json")
	values, err := datastore.ReadMapFile(path)
	if err != nil {
		t.Fatalf("ReadMapFile: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"temp": "21", "city": "Oslo"}, values); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	modified := info.ModTime()
	if err := h.SetPreference("group.com.example", "temp", "21"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(modified) {
		t.Error("unchanged preference rewrote the file")
	}
}

func TestHostSharedContainerPath(t *testing.T) {
	cfg := testConfig(t, config.Mobile)
	cfg.Paths.SharedContainers = map[string]string{"group.com.example": "/containers/example"}
	h := newHost(cfg, slog.New(slog.DiscardHandler))

	if path, ok := h.SharedContainerPath("group.com.example"); !ok || path != "/containers/example" {
		t.Errorf("SharedContainerPath = %q, %v", path, ok)
	}
	if _, ok := h.SharedContainerPath("other"); ok {
		t.Error("unconfigured group has a shared container")
	}
}

func TestHostWindows(t *testing.T) {
	h := newHost(testConfig(t, config.Desktop), slog.New(slog.DiscardHandler))
	ctx := context.Background()

	for _, label := range []string{"b", "a"} {
		if err := h.CreateWindow(ctx, widget.WindowConfig{Label: label, Width: 100, Height: 100}); err != nil {
			t.Fatalf("CreateWindow(%s): %v", label, err)
		}
	}
	if err := h.CreateWindow(ctx, widget.WindowConfig{Label: "a"}); err == nil {
		t.Error("duplicate label accepted")
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.windowLabels()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	closed, err := h.CloseWindow(ctx, "a")
	if err != nil || !closed {
		t.Errorf("CloseWindow(a) = %v, %v", closed, err)
	}
	closed, err = h.CloseWindow(ctx, "a")
	if err != nil || closed {
		t.Errorf("second CloseWindow(a) = %v, %v", closed, err)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	cfg, err := loadConfig(flags{
		socketPath:     "/tmp/widgets-flag.sock",
		platform:       "mobile",
		metricsAddress: "127.0.0.1:9464",
	})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Daemon.SocketPath != "/tmp/widgets-flag.sock" || cfg.Platform != config.Mobile || cfg.Daemon.MetricsAddress != "127.0.0.1:9464" {
		t.Errorf("overrides not applied: %+v", cfg.Daemon)
	}

	if _, err := loadConfig(flags{platform: "watch"}); err == nil {
		t.Error("invalid platform accepted")
	}
}
