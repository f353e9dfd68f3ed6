// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"encoding/json"

	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/events"
	"github.com/bureau-foundation/widgets/lib/metrics"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// PushResult describes what PushConfig did.
type PushResult struct {
	// Hash is the content hash of the canonical config.
	Hash widget.Hash `json:"hash"`

	// Changed reports whether the config differed from the last one
	// accepted for the group and was persisted.
	Changed bool `json:"changed"`

	// Reload is "dispatched", "skipped", or empty when no reload was
	// requested.
	Reload string `json:"reload,omitempty"`
}

// PushConfig publishes config for group.
//
// The config is canonicalized and hashed. When the hash differs from
// the last one accepted for the group, the canonical JSON is persisted
// under ConfigKey and, unless skipReload is set, a reload is requested.
// A widget-config-push event carrying the canonical config is emitted
// on every call, changed or not. On desktop the group's action poller
// is started if it is not running yet.
//
// When persisting fails the group's hash is restored, no reload is
// requested, and the error is returned; the next push of the same
// config retries the write.
func (b *Bridge) PushConfig(ctx context.Context, config *widget.Config, group string, skipReload bool) (PushResult, error) {
	canonical, err := widget.Canonicalize(config)
	if err != nil {
		b.metrics.ConfigPushes.WithLabelValues(metrics.PushFailed).Inc()
		return PushResult{}, err
	}
	hash := widget.ContentHash(canonical)
	result := PushResult{Hash: hash}

	previous, hadPrevious := b.swapHash(group, hash)
	result.Changed = !hadPrevious || previous != hash

	if result.Changed {
		if err := b.SetItem(ctx, ConfigKey, string(canonical), group); err != nil {
			b.restoreHash(group, hash, previous, hadPrevious)
			b.metrics.ConfigPushes.WithLabelValues(metrics.PushFailed).Inc()
			return PushResult{}, err
		}
		b.metrics.ConfigPushes.WithLabelValues(metrics.PushChanged).Inc()
	} else {
		b.metrics.ConfigPushes.WithLabelValues(metrics.PushUnchanged).Inc()
	}

	var reloadErr error
	if result.Changed && !skipReload {
		outcome, err := b.requestReload(ctx)
		if err != nil {
			reloadErr = err
		} else {
			result.Reload = outcome.String()
		}
	}

	b.publish(ctx, events.NewConfigPush(group, canonical, b.clock.Now()))

	if b.platform == Desktop {
		b.pollers.Ensure(group)
	}

	b.logger.Debug("config pushed",
		"group", group,
		"hash", hash.String(),
		"changed", result.Changed,
		"reload", result.Reload,
	)
	return result, reloadErr
}

// swapHash records hash as the group's current config hash and returns
// the previous one. A group without a hash in memory is seeded from
// its persisted config so that a restart does not count as a change.
func (b *Bridge) swapHash(group string, hash widget.Hash) (widget.Hash, bool) {
	b.mu.Lock()
	_, known := b.hashes[group]
	b.mu.Unlock()

	var seeded widget.Hash
	var haveSeed bool
	if !known {
		if stored, ok, err := b.store.Get(group, ConfigKey); err == nil && ok {
			seeded, haveSeed = widget.ContentHash([]byte(stored)), true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	previous, ok := b.hashes[group]
	if !ok && haveSeed {
		previous, ok = seeded, true
	}
	b.hashes[group] = hash
	return previous, ok
}

// restoreHash undoes swapHash unless another push replaced the hash in
// the meantime.
func (b *Bridge) restoreHash(group string, hash, previous widget.Hash, hadPrevious bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hashes[group] != hash {
		return
	}
	if hadPrevious {
		b.hashes[group] = previous
	} else {
		delete(b.hashes, group)
	}
}

// GetConfig returns the config last persisted for group. A group
// without a config returns ok == false and no error.
func (b *Bridge) GetConfig(ctx context.Context, group string) (config *widget.Config, ok bool, err error) {
	stored, ok, err := b.ConfigJSON(ctx, group)
	if err != nil || !ok {
		return nil, false, err
	}
	config, err = widget.ParseConfig(stored)
	if err != nil {
		return nil, false, errkind.New(errkind.Serialization, "decode stored widget config", err)
	}
	return config, true, nil
}

// ConfigJSON returns the canonical config text persisted for group.
func (b *Bridge) ConfigJSON(ctx context.Context, group string) (json.RawMessage, bool, error) {
	stored, ok, err := b.store.Get(group, ConfigKey)
	if err != nil || !ok {
		return nil, false, err
	}
	return json.RawMessage(stored), true, nil
}
