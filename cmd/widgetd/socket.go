// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/widgets/lib/bridge"
	"github.com/bureau-foundation/widgets/lib/codec"
	"github.com/bureau-foundation/widgets/lib/config"
	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/ipc"
	"github.com/bureau-foundation/widgets/lib/service"
	"github.com/bureau-foundation/widgets/lib/version"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// daemon holds the state shared by the socket handlers.
type daemon struct {
	bridge *bridge.Bridge
	host   *host
	config *config.Config
	logger *slog.Logger
}

// register installs every socket action on server.
func (d *daemon) register(server *service.SocketServer) {
	server.Observe(d.bridge.Metrics().ObserveSocketRequest)
	server.Handle(ipc.ActionSetItem, d.handleSetItem)
	server.Handle(ipc.ActionGetItem, d.handleGetItem)
	server.Handle(ipc.ActionRegisterWidgets, d.handleRegisterWidgets)
	server.Handle(ipc.ActionReloadAll, d.handleReloadAll)
	server.Handle(ipc.ActionReloadKind, d.handleReloadKind)
	server.Handle(ipc.ActionRequestWidget, d.handleRequestWidget)
	server.Handle(ipc.ActionCreateWindow, d.handleCreateWindow)
	server.Handle(ipc.ActionCloseWindow, d.handleCloseWindow)
	server.Handle(ipc.ActionPushConfig, d.handlePushConfig)
	server.Handle(ipc.ActionGetConfig, d.handleGetConfig)
	server.Handle(ipc.ActionWidgetAction, d.handleWidgetAction)
	server.Handle(ipc.ActionPollActions, d.handlePollActions)
	server.Handle(ipc.ActionStatus, d.handleStatus)
}

// decodeRequest decodes the action-specific fields of a raw request.
func decodeRequest[T any](raw []byte) (T, error) {
	var request T
	if err := codec.Unmarshal(raw, &request); err != nil {
		return request, errkind.New(errkind.Deserialization, "decode request", err)
	}
	return request, nil
}

func (d *daemon) handleSetItem(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.ItemRequest](raw)
	if err != nil {
		return nil, err
	}
	if request.Key == "" {
		return nil, errkind.Errorf(errkind.Deserialization, "set item", "key is required")
	}
	return nil, d.bridge.SetItem(ctx, request.Key, request.Value, request.Group)
}

func (d *daemon) handleGetItem(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.ItemRequest](raw)
	if err != nil {
		return nil, err
	}
	value, found, err := d.bridge.GetItem(ctx, request.Key, request.Group)
	if err != nil {
		return nil, err
	}
	return ipc.ItemResponse{Value: value, Found: found}, nil
}

func (d *daemon) handleRegisterWidgets(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.RegisterWidgetsRequest](raw)
	if err != nil {
		return nil, err
	}
	return nil, d.bridge.RegisterWidgets(ctx, request.Kinds)
}

func (d *daemon) handleReloadAll(ctx context.Context, _ []byte) (any, error) {
	return nil, d.bridge.ReloadAll(ctx)
}

func (d *daemon) handleReloadKind(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.ReloadKindRequest](raw)
	if err != nil {
		return nil, err
	}
	if request.Kind == "" {
		return nil, errkind.Errorf(errkind.Deserialization, "reload kind", "kind is required")
	}
	return nil, d.bridge.ReloadKind(ctx, request.Kind)
}

func (d *daemon) handleRequestWidget(ctx context.Context, _ []byte) (any, error) {
	accepted, err := d.bridge.RequestWidget(ctx)
	if err != nil {
		return nil, err
	}
	return ipc.RequestWidgetResponse{Accepted: accepted}, nil
}

func (d *daemon) handleCreateWindow(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.CreateWindowRequest](raw)
	if err != nil {
		return nil, err
	}
	var window widget.WindowConfig
	if err := json.Unmarshal(request.Window, &window); err != nil {
		return nil, errkind.New(errkind.Deserialization, "decode window config", err)
	}
	return nil, d.bridge.CreateWindow(ctx, window)
}

func (d *daemon) handleCloseWindow(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.CloseWindowRequest](raw)
	if err != nil {
		return nil, err
	}
	closed, err := d.bridge.CloseWindow(ctx, request.Label)
	if err != nil {
		return nil, err
	}
	return ipc.CloseWindowResponse{Closed: closed}, nil
}

// handlePushConfig accepts JSON or JSONC config text. A reload failure
// after a successful write is reported as an error; the write and the
// config-push event have already happened.
func (d *daemon) handlePushConfig(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.PushConfigRequest](raw)
	if err != nil {
		return nil, err
	}
	if len(request.Config) == 0 {
		return nil, errkind.Errorf(errkind.Deserialization, "push config", "config is required")
	}
	parsed, err := widget.ParseConfig(jsonc.ToJSON(request.Config))
	if err != nil {
		return nil, err
	}
	result, err := d.bridge.PushConfig(ctx, parsed, request.Group, request.SkipReload)
	if err != nil {
		return nil, err
	}
	return ipc.PushConfigResponse{
		Hash:    result.Hash.String(),
		Changed: result.Changed,
		Reload:  result.Reload,
	}, nil
}

func (d *daemon) handleGetConfig(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.GroupRequest](raw)
	if err != nil {
		return nil, err
	}
	canonical, found, err := d.bridge.ConfigJSON(ctx, request.Group)
	if err != nil {
		return nil, err
	}
	return ipc.GetConfigResponse{Config: canonical, Found: found}, nil
}

func (d *daemon) handleWidgetAction(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.WidgetActionRequest](raw)
	if err != nil {
		return nil, err
	}
	if request.Name == "" {
		return nil, errkind.Errorf(errkind.Deserialization, "widget action", "name is required")
	}
	if len(request.Payload) > 0 && !json.Valid(request.Payload) {
		return nil, errkind.Errorf(errkind.Deserialization, "widget action", "payload is not valid JSON")
	}
	return nil, d.bridge.EmitAction(ctx, request.Group, request.Name, request.Payload)
}

func (d *daemon) handlePollActions(ctx context.Context, raw []byte) (any, error) {
	request, err := decodeRequest[ipc.GroupRequest](raw)
	if err != nil {
		return nil, err
	}
	delivered, err := d.bridge.PollPendingActions(ctx, request.Group)
	if err != nil {
		return nil, err
	}
	response := ipc.PollActionsResponse{Actions: make([]ipc.PolledAction, 0, len(delivered))}
	for _, action := range delivered {
		response.Actions = append(response.Actions, ipc.PolledAction{
			Action:  action.Action,
			Payload: action.Payload,
		})
	}
	return response, nil
}

func (d *daemon) handleStatus(context.Context, []byte) (any, error) {
	status := d.bridge.Status()
	return ipc.StatusResponse{
		Version:          version.Info(),
		Platform:         string(status.Platform),
		Environment:      string(d.config.Environment),
		ReloadInterval:   status.ReloadInterval.String(),
		Pollers:          status.Pollers,
		RegisteredKinds:  status.RegisteredKinds,
		ConfigHashes:     status.ConfigHashes,
		EventSubscribers: status.EventSubscribers,
		Windows:          d.host.windowLabels(),
	}, nil
}
