// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nativetest provides a recording implementation of the native
// capability interfaces for tests.
package nativetest

import (
	"context"
	"sync"

	"github.com/bureau-foundation/widgets/lib/widget"
)

// Preference is one recorded SetPreference call.
type Preference struct {
	Group string
	Key   string
	Value string
}

// Recorder implements native.Capabilities, native.Windows, and
// native.Pinner, recording every call. Set the *Err fields to make the
// corresponding calls fail. The zero value is ready to use.
type Recorder struct {
	mu sync.Mutex

	// Containers maps groups to shared container paths.
	Containers map[string]string

	ReloadErr     error
	PreferenceErr error
	WindowErr     error

	reloadAll   int
	reloadKinds []string
	preferences []Preference
	windows     map[string]widget.WindowConfig
	pins        int
}

func (r *Recorder) ReloadAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadAll++
	return r.ReloadErr
}

func (r *Recorder) ReloadKind(_ context.Context, kind string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadKinds = append(r.reloadKinds, kind)
	return r.ReloadErr
}

func (r *Recorder) SharedContainerPath(group string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, ok := r.Containers[group]
	return path, ok
}

func (r *Recorder) SetPreference(group, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PreferenceErr != nil {
		return r.PreferenceErr
	}
	r.preferences = append(r.preferences, Preference{Group: group, Key: key, Value: value})
	return nil
}

func (r *Recorder) CreateWindow(_ context.Context, config widget.WindowConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WindowErr != nil {
		return r.WindowErr
	}
	if r.windows == nil {
		r.windows = make(map[string]widget.WindowConfig)
	}
	r.windows[config.Label] = config
	return nil
}

func (r *Recorder) CloseWindow(_ context.Context, label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WindowErr != nil {
		return false, r.WindowErr
	}
	_, ok := r.windows[label]
	delete(r.windows, label)
	return ok, nil
}

func (r *Recorder) RequestPin(context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pins++
	return true, nil
}

// ReloadAllCount returns the number of ReloadAll calls.
func (r *Recorder) ReloadAllCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloadAll
}

// ReloadKinds returns the kinds passed to ReloadKind, in call order.
func (r *Recorder) ReloadKinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reloadKinds...)
}

// Preferences returns the recorded SetPreference calls, in call order.
func (r *Recorder) Preferences() []Preference {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Preference(nil), r.preferences...)
}

// Window returns the open window with label.
func (r *Recorder) Window(label string) (widget.WindowConfig, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	config, ok := r.windows[label]
	return config, ok
}

// PinCount returns the number of RequestPin calls.
func (r *Recorder) PinCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pins
}
