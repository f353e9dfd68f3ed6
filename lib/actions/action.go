// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/events"
)

// PendingKey is the data file key holding the queued actions.
const PendingKey = "__widget_pending_actions__"

// emptyQueue is the value PendingKey is reset to.
const emptyQueue = "[]"

// Action is one queued widget interaction.
type Action struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// UnmarshalJSON accepts a bare action string or an object.
func (a *Action) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		*a = Action{}
		return json.Unmarshal(trimmed, &a.Action)
	}
	type plain Action
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return err
	}
	if bytes.Equal(bytes.TrimSpace(decoded.Payload), []byte("null")) {
		decoded.Payload = nil
	}
	*a = Action(decoded)
	return nil
}

// MarshalJSON writes actions without a payload as bare strings, the
// form the native widget writers use.
func (a Action) MarshalJSON() ([]byte, error) {
	if len(a.Payload) == 0 {
		return json.Marshal(a.Action)
	}
	type plain Action
	return json.Marshal(plain(a))
}

// Event converts the action to its widget-action payload.
func (a Action) Event() events.ActionPayload {
	return events.ActionPayload{Action: a.Action, Payload: a.Payload}
}

// ParsePending decodes a PendingKey value, which must be a JSON list.
// Entries that are not an action string or object, or that lack an
// action identifier, are returned as empty Actions so that callers
// still count them when trimming the queue.
func ParsePending(raw string) ([]Action, error) {
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, errkind.New(errkind.Deserialization, "parsing pending actions", err)
	}
	entries := make([]Action, len(list))
	for i, item := range list {
		if err := json.Unmarshal(item, &entries[i]); err != nil || entries[i].Action == "" {
			entries[i] = Action{}
		}
	}
	return entries, nil
}

// removePending drops the first count entries from the queue in values.
// It reports whether values changed.
func removePending(values map[string]string, count int) bool {
	raw, ok := values[PendingKey]
	if !ok || count == 0 {
		return false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		// The queue was replaced by something unreadable since it was
		// polled; reset it rather than redeliver forever.
		values[PendingKey] = emptyQueue
		return true
	}
	if count > len(entries) {
		count = len(entries)
	}
	remaining := entries[count:]
	if len(remaining) == 0 {
		values[PendingKey] = emptyQueue
		return raw != emptyQueue
	}
	encoded, err := json.Marshal(remaining)
	if err != nil {
		return false
	}
	values[PendingKey] = string(encoded)
	return true
}

// Enqueue appends action to the queue in the data file at path, the
// way the native widget process records a tap.
func Enqueue(path string, action Action) error {
	if action.Action == "" {
		return fmt.Errorf("enqueueing action: empty action identifier")
	}
	return datastore.UpdateMapFile(path, func(values map[string]string) bool {
		var entries []json.RawMessage
		if raw, ok := values[PendingKey]; ok {
			// A malformed queue is replaced.
			_ = json.Unmarshal([]byte(raw), &entries)
		}
		encoded, err := json.Marshal(action)
		if err != nil {
			return false
		}
		entries = append(entries, encoded)
		list, err := json.Marshal(entries)
		if err != nil {
			return false
		}
		values[PendingKey] = string(list)
		return true
	})
}

// Drain reads the queue from the data file at path, resets it, and
// returns the entries that carry an action identifier.
func Drain(path string) ([]Action, error) {
	values, err := datastore.ReadMapFile(path)
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
	err = datastore.UpdateMapFile(path, func(values map[string]string) bool {
		return removePending(values, len(entries))
	})
	if err != nil {
		return nil, err
	}
	return withAction(entries), nil
}

func withAction(entries []Action) []Action {
	result := make([]Action, 0, len(entries))
	for _, entry := range entries {
		if entry.Action != "" {
			result = append(result, entry)
		}
	}
	return result
}
