// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ipc

// Socket actions.
const (
	ActionSetItem         = "set-item"
	ActionGetItem         = "get-item"
	ActionRegisterWidgets = "register-widgets"
	ActionReloadAll       = "reload-all"
	ActionReloadKind      = "reload-kind"
	ActionRequestWidget   = "request-widget"
	ActionCreateWindow    = "create-window"
	ActionCloseWindow     = "close-window"
	ActionPushConfig      = "push-config"
	ActionGetConfig       = "get-config"
	ActionWidgetAction    = "widget-action"
	ActionPollActions     = "poll-actions"
	ActionStatus          = "status"
)

// ItemRequest is the body of set-item and get-item. Value is ignored by
// get-item.
type ItemRequest struct {
	Group string `cbor:"group"`
	Key   string `cbor:"key"`
	Value string `cbor:"value,omitempty"`
}

// ItemResponse is the result of get-item.
type ItemResponse struct {
	Value string `cbor:"value"`
	Found bool   `cbor:"found"`
}

// RegisterWidgetsRequest is the body of register-widgets.
type RegisterWidgetsRequest struct {
	Kinds []string `cbor:"kinds"`
}

// ReloadKindRequest is the body of reload-kind.
type ReloadKindRequest struct {
	Kind string `cbor:"kind"`
}

// RequestWidgetResponse is the result of request-widget.
type RequestWidgetResponse struct {
	Accepted bool `cbor:"accepted"`
}

// CreateWindowRequest is the body of create-window. Window is a JSON
// widget.WindowConfig.
type CreateWindowRequest struct {
	Window []byte `cbor:"window"`
}

// CloseWindowRequest is the body of close-window.
type CloseWindowRequest struct {
	Label string `cbor:"label"`
}

// CloseWindowResponse is the result of close-window.
type CloseWindowResponse struct {
	Closed bool `cbor:"closed"`
}

// PushConfigRequest is the body of push-config. Config is a JSON widget
// config document.
type PushConfigRequest struct {
	Group      string `cbor:"group"`
	Config     []byte `cbor:"config"`
	SkipReload bool   `cbor:"skip_reload,omitempty"`
}

// PushConfigResponse is the result of push-config.
type PushConfigResponse struct {
	// Hash is the 16-digit hex content hash of the canonical config.
	Hash    string `cbor:"hash" json:"hash"`
	Changed bool   `cbor:"changed" json:"changed"`
	Reload  string `cbor:"reload,omitempty" json:"reload,omitempty"`
}

// GroupRequest is the body of get-config and poll-actions.
type GroupRequest struct {
	Group string `cbor:"group"`
}

// GetConfigResponse is the result of get-config. Config is the
// canonical JSON text.
type GetConfigResponse struct {
	Config []byte `cbor:"config,omitempty"`
	Found  bool   `cbor:"found"`
}

// WidgetActionRequest is the body of widget-action. Payload is optional
// JSON.
type WidgetActionRequest struct {
	Group   string `cbor:"group,omitempty"`
	Name    string `cbor:"name"`
	Payload []byte `cbor:"payload,omitempty"`
}

// PolledAction is one delivered pending action.
type PolledAction struct {
	Action  string `cbor:"action"`
	Payload []byte `cbor:"payload,omitempty"`
}

// PollActionsResponse is the result of poll-actions.
type PollActionsResponse struct {
	Actions []PolledAction `cbor:"actions"`
}

// StatusResponse is the result of status.
type StatusResponse struct {
	Version          string            `cbor:"version" json:"version"`
	Platform         string            `cbor:"platform" json:"platform"`
	Environment      string            `cbor:"environment" json:"environment"`
	ReloadInterval   string            `cbor:"reload_interval" json:"reload_interval"`
	Pollers          []string          `cbor:"pollers" json:"pollers"`
	RegisteredKinds  []string          `cbor:"registered_kinds" json:"registered_kinds"`
	ConfigHashes     map[string]string `cbor:"config_hashes" json:"config_hashes"`
	EventSubscribers int               `cbor:"event_subscribers" json:"event_subscribers"`
	Windows          []string          `cbor:"windows,omitempty" json:"windows,omitempty"`
}
