// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Name identifies an event kind. The values are the event names host
// shells subscribe to.
type Name string

const (
	Update     Name = "widget-update"
	Reload     Name = "widget-reload"
	ConfigPush Name = "widget-config-push"
	Action     Name = "widget-action"
)

// ReloadAllScope is the widget-reload payload for a reload of every
// widget kind.
const ReloadAllScope = "all"

// Event is one bridge notification.
type Event struct {
	// ID is a ULID assigned when the event is created.
	ID string `json:"id"`

	Name Name `json:"event"`

	// Group is the widget group the event concerns. Empty for events
	// that are not group-scoped, such as reloads.
	Group string `json:"group,omitempty"`

	Time time.Time `json:"time"`

	// Payload is the JSON body delivered to subscribers.
	Payload json.RawMessage `json:"payload"`
}

// ActionPayload is the body of a widget-action event.
type ActionPayload struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New builds an event with a fresh ULID, encoding payload as JSON.
// A json.RawMessage payload is used as is.
func New(name Name, group string, payload any, now time.Time) (Event, error) {
	var body json.RawMessage
	switch value := payload.(type) {
	case json.RawMessage:
		body = value
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Event{}, fmt.Errorf("encoding %s payload: %w", name, err)
		}
		body = encoded
	}
	return Event{
		ID:      ulid.Make().String(),
		Name:    name,
		Group:   group,
		Time:    now.UTC(),
		Payload: body,
	}, nil
}

// NewUpdate returns a widget-update event for group.
func NewUpdate(group string, now time.Time) Event {
	event, _ := New(Update, group, group, now)
	return event
}

// NewReload returns a widget-reload event. scope is ReloadAllScope or
// a widget kind.
func NewReload(scope string, now time.Time) Event {
	event, _ := New(Reload, "", scope, now)
	return event
}

// NewConfigPush returns a widget-config-push event carrying canonical,
// which must be valid JSON.
func NewConfigPush(group string, canonical json.RawMessage, now time.Time) Event {
	event, _ := New(ConfigPush, group, canonical, now)
	return event
}

// NewAction returns a widget-action event.
func NewAction(group string, action ActionPayload, now time.Time) Event {
	event, _ := New(Action, group, action, now)
	return event
}

// DecodePayload unmarshals the event payload into target.
func (e Event) DecodePayload(target any) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("decoding %s payload: %w", e.Name, err)
	}
	return nil
}
