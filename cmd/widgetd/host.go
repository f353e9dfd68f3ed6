// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bureau-foundation/widgets/lib/config"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// host is the native surface of a headless daemon. Reloads are
// announced through the bridge's widget-reload events, which the host
// shell consumes. Preferences are mirrored into one JSON file per group
// under <root>/preferences. Windows are tracked by label so the shell
// can query and close them.
type host struct {
	config         *config.Config
	preferencesDir string
	logger         *slog.Logger

	mu      sync.Mutex
	windows map[string]widget.WindowConfig
}

func newHost(cfg *config.Config, logger *slog.Logger) *host {
	return &host{
		config:         cfg,
		preferencesDir: filepath.Join(cfg.Paths.Root, "preferences"),
		logger:         logger,
		windows:        make(map[string]widget.WindowConfig),
	}
}

func (h *host) ReloadAll(context.Context) error {
	h.logger.Debug("reload requested", "scope", "all")
	return nil
}

func (h *host) ReloadKind(_ context.Context, kind string) error {
	h.logger.Debug("reload requested", "scope", kind)
	return nil
}

func (h *host) SharedContainerPath(group string) (string, bool) {
	return h.config.SharedContainerPath(group)
}

// SetPreference mirrors one key into the group's preference file.
func (h *host) SetPreference(group, key, value string) error {
	return datastore.UpdateMapFile(h.preferencePath(group), func(values map[string]string) bool {
		if current, ok := values[key]; ok && current == value {
			return false
		}
		values[key] = value
		return true
	})
}

func (h *host) preferencePath(group string) string {
	return filepath.Join(h.preferencesDir, datastore.SanitizeGroup(group)+".json")
}

// CreateWindow records a widget window. Labels are unique.
func (h *host) CreateWindow(_ context.Context, window widget.WindowConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.windows[window.Label]; exists {
		return fmt.Errorf("window %q already exists", window.Label)
	}
	h.windows[window.Label] = window
	h.logger.Info("widget window created",
		"label", window.Label,
		"url", window.URL,
		"width", window.Width,
		"height", window.Height,
	)
	return nil
}

func (h *host) CloseWindow(_ context.Context, label string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.windows[label]; !exists {
		return false, nil
	}
	delete(h.windows, label)
	h.logger.Info("widget window closed", "label", label)
	return true, nil
}

// windowLabels returns the open window labels, sorted.
func (h *host) windowLabels() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	labels := make([]string, 0, len(h.windows))
	for label := range h.windows {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}
