// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/actions"
	"github.com/bureau-foundation/widgets/lib/codec"
	"github.com/bureau-foundation/widgets/lib/datastore"
	"github.com/bureau-foundation/widgets/lib/errkind"
	"github.com/bureau-foundation/widgets/lib/ipc"
	"github.com/bureau-foundation/widgets/lib/service"
	"github.com/bureau-foundation/widgets/lib/testutil"
	"github.com/bureau-foundation/widgets/lib/version"
)

const clockConfig = `{
	// Shown on the home screen.
	"version": 1,
	"small": {
		"type": "vstack",
		"spacing": 4,
		"children": [
			{"type": "text", "content": "Clock", "fontSize": 12, "color": null},
			{"type": "text", "content": "12:00", "fontSize": 28},
		],
	},
}`

// run executes widgetctl with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buffer bytes.Buffer
	previous := stdout
	stdout = &buffer
	t.Cleanup(func() { stdout = previous })
	err := Root().Execute(args)
	return buffer.String(), err
}

// serve runs a socket server with handlers until the test ends and
// returns its path.
func serve(t *testing.T, handlers map[string]service.ActionFunc) string {
	t.Helper()
	socketPath := filepath.Join(testutil.SocketDir(t), "widgetd.sock")
	server := service.NewSocketServer(socketPath, nil)
	for action, handler := range handlers {
		server.Handle(action, handler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, done, 5*time.Second, "socket server did not stop"); err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	for {
		if _, err := os.Stat(socketPath); err == nil {
			return socketPath
		}
		if t.Context().Err() != nil {
			t.Fatal("socket never appeared")
		}
		time.Sleep(time.Millisecond)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func category(t *testing.T, err error) cli.ErrorCategory {
	t.Helper()
	var tool *cli.ToolError
	if !errors.As(err, &tool) {
		t.Fatalf("error %v (%T) is not a ToolError", err, err)
	}
	return tool.Category
}

func TestPushSendsCanonicalConfig(t *testing.T) {
	requests := make(chan ipc.PushConfigRequest, 1)
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionPushConfig: func(ctx context.Context, raw []byte) (any, error) {
			var request ipc.PushConfigRequest
			if err := codec.Unmarshal(raw, &request); err != nil {
				return nil, err
			}
			requests <- request
			return ipc.PushConfigResponse{Hash: "00000000000000aa", Changed: true, Reload: "dispatched"}, nil
		},
	})
	path := writeFile(t, "clock.jsonc", clockConfig)

	output, err := run(t, "push", "--socket", socketPath, "-g", "group.clock", "--skip-reload", path)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	received := testutil.RequireReceive(t, requests, 5*time.Second, "push-config not received")
	if received.Group != "group.clock" || !received.SkipReload {
		t.Errorf("request = %+v, want group.clock with skip_reload", received)
	}
	if bytes.Contains(received.Config, []byte("null")) || bytes.Contains(received.Config, []byte("//")) {
		t.Errorf("pushed config %s still carries comments or nulls", received.Config)
	}
	if want := "group.clock 00000000000000aa (updated, reload dispatched)\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestPushJSONOutput(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionPushConfig: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.PushConfigResponse{Hash: "0123456789abcdef"}, nil
		},
	})
	path := writeFile(t, "clock.json", clockConfig)

	output, err := run(t, "push", "--socket", socketPath, "--json", path)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	var result ipc.PushConfigResponse
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("output %q is not JSON: %v", output, err)
	}
	if diff := cmp.Diff(ipc.PushConfigResponse{Hash: "0123456789abcdef"}, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestPushRejectsInvalidConfigLocally(t *testing.T) {
	path := writeFile(t, "bad.json", `{"small": {"type": "text"}}`)
	_, err := run(t, "push", "--socket", "/nonexistent/widgetd.sock", path)
	if err == nil {
		t.Fatal("push of an invalid config succeeded")
	}
	if got := category(t, err); got != cli.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestDaemonNotRunningHint(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "absent.sock")
	_, err := run(t, "status", "--socket", socketPath)
	if err == nil {
		t.Fatal("status without a daemon succeeded")
	}
	if got := category(t, err); got != cli.CategoryTransient {
		t.Errorf("category = %q, want transient", got)
	}
	if !strings.Contains(err.Error(), "Is widgetd running?") {
		t.Errorf("error = %q, want daemon hint", err)
	}
}

func TestItemGetNotFound(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionGetItem: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.ItemResponse{}, nil
		},
	})
	_, err := run(t, "item", "get", "--socket", socketPath, "missing")
	if got := category(t, err); got != cli.CategoryNotFound {
		t.Errorf("category = %q, want not_found", got)
	}
}

func TestItemSetAndGet(t *testing.T) {
	var mu sync.Mutex
	values := map[string]string{}
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionSetItem: func(ctx context.Context, raw []byte) (any, error) {
			var request ipc.ItemRequest
			if err := codec.Unmarshal(raw, &request); err != nil {
				return nil, err
			}
			mu.Lock()
			defer mu.Unlock()
			values[request.Group+"/"+request.Key] = request.Value
			return nil, nil
		},
		ipc.ActionGetItem: func(ctx context.Context, raw []byte) (any, error) {
			var request ipc.ItemRequest
			if err := codec.Unmarshal(raw, &request); err != nil {
				return nil, err
			}
			mu.Lock()
			defer mu.Unlock()
			value, ok := values[request.Group+"/"+request.Key]
			return ipc.ItemResponse{Value: value, Found: ok}, nil
		},
	})

	if _, err := run(t, "item", "set", "--socket", socketPath, "-g", "weather", "temperature", "21"); err != nil {
		t.Fatalf("item set: %v", err)
	}
	output, err := run(t, "item", "get", "--socket", socketPath, "-g", "weather", "temperature")
	if err != nil {
		t.Fatalf("item get: %v", err)
	}
	if output != "21\n" {
		t.Errorf("output = %q, want %q", output, "21\n")
	}
}

func TestUnsupportedActionCategory(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionRequestWidget: func(ctx context.Context, raw []byte) (any, error) {
			return nil, errkind.NotSupported("request widget")
		},
	})
	_, err := run(t, "pin", "--socket", socketPath)
	if got := category(t, err); got != cli.CategoryUnsupported {
		t.Errorf("category = %q, want unsupported", got)
	}
}

func TestReloadSelectsAction(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	record := func(call string) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, call)
	}
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionReloadAll: func(ctx context.Context, raw []byte) (any, error) {
			record("all")
			return nil, nil
		},
		ipc.ActionReloadKind: func(ctx context.Context, raw []byte) (any, error) {
			var request ipc.ReloadKindRequest
			if err := codec.Unmarshal(raw, &request); err != nil {
				return nil, err
			}
			record("kind:" + request.Kind)
			return nil, nil
		},
	})

	if _, err := run(t, "reload", "--socket", socketPath); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := run(t, "reload", "--socket", socketPath, "--kind", "ClockWidget"); err != nil {
		t.Fatalf("reload --kind: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"all", "kind:ClockWidget"}, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigHashIgnoresFormatting(t *testing.T) {
	first := writeFile(t, "first.jsonc", clockConfig)
	second := writeFile(t, "second.json",
		`{"small":{"children":[{"content":"Clock","fontSize":12,"type":"text"},{"type":"text","fontSize":28,"content":"12:00"}],"spacing":4,"type":"vstack"},"version":1}`)

	firstHash, err := run(t, "config", "hash", first)
	if err != nil {
		t.Fatalf("config hash: %v", err)
	}
	secondHash, err := run(t, "config", "hash", second)
	if err != nil {
		t.Fatalf("config hash: %v", err)
	}
	if firstHash != secondHash {
		t.Errorf("hashes differ: %q vs %q", firstHash, secondHash)
	}
	if len(strings.TrimSpace(firstHash)) != 16 {
		t.Errorf("hash %q is not 16 hex digits", firstHash)
	}
}

func TestConfigValidate(t *testing.T) {
	good := writeFile(t, "good.jsonc", clockConfig)
	bad := writeFile(t, "bad.json", `{"small": {"type": "gauge"}}`)

	output, err := run(t, "config", "validate", good, bad)
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Code != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(output, good+": ok") {
		t.Errorf("output missing ok line for %s:\n%s", good, output)
	}
	if !strings.Contains(output, bad+": invalid") {
		t.Errorf("output missing invalid line for %s:\n%s", bad, output)
	}
}

func TestConfigInspect(t *testing.T) {
	path := writeFile(t, "clock.jsonc", clockConfig)
	output, err := run(t, "config", "inspect", path)
	if err != nil {
		t.Fatalf("config inspect: %v", err)
	}
	for _, want := range []string{"small", "vstack", "text", `content="Clock"`, "3 elements"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "medium") {
		t.Errorf("output shows an absent size family:\n%s", output)
	}
}

func TestConfigGetPlainWhenNotTerminal(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionGetConfig: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.GetConfigResponse{Config: []byte(`{"small":{"content":"Hi","type":"text"},"version":1}`), Found: true}, nil
		},
	})
	output, err := run(t, "config", "get", "--socket", socketPath)
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("output carries escape sequences: %q", output)
	}
	if !strings.Contains(output, `"content": "Hi"`) {
		t.Errorf("output is not indented JSON:\n%s", output)
	}
}

func TestConfigGetAbsent(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionGetConfig: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.GetConfigResponse{}, nil
		},
	})
	_, err := run(t, "config", "get", "--socket", socketPath, "-g", "none")
	if got := category(t, err); got != cli.CategoryNotFound {
		t.Errorf("category = %q, want not_found", got)
	}
}

func TestActionEnqueueWritesDataFile(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	configPath := writeFile(t, "widgets.yaml", "paths:\n  root: "+root+"\n  data: "+dataDir+"\n")

	if _, err := run(t, "action", "enqueue", "--config", configPath, "-g", "weather", "refresh", `{"city":"Oslo"}`); err != nil {
		t.Fatalf("action enqueue: %v", err)
	}
	if _, err := run(t, "action", "enqueue", "--config", configPath, "-g", "weather", "open"); err != nil {
		t.Fatalf("action enqueue: %v", err)
	}

	path := datastore.Locator{DataDir: dataDir}.Path("weather")
	queued, err := actions.Drain(path)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	want := []actions.Action{
		{Action: "refresh", Payload: json.RawMessage(`{"city":"Oslo"}`)},
		{Action: "open"},
	}
	if diff := cmp.Diff(want, queued); diff != "" {
		t.Errorf("queued actions mismatch (-want +got):\n%s", diff)
	}
}

func TestActionEmitRejectsInvalidPayload(t *testing.T) {
	_, err := run(t, "action", "emit", "--socket", "/nonexistent/widgetd.sock", "refresh", "{not json")
	if got := category(t, err); got != cli.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestActionPoll(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionPollActions: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.PollActionsResponse{Actions: []ipc.PolledAction{
				{Action: "refresh"},
				{Action: "select", Payload: []byte(`{"id":7}`)},
			}}, nil
		},
	})
	output, err := run(t, "action", "poll", "--socket", socketPath, "-g", "inbox")
	if err != nil {
		t.Fatalf("action poll: %v", err)
	}
	if want := "refresh\nselect {\"id\":7}\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestWindowCreateSendsConfig(t *testing.T) {
	windows := make(chan []byte, 1)
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionCreateWindow: func(ctx context.Context, raw []byte) (any, error) {
			var request ipc.CreateWindowRequest
			if err := codec.Unmarshal(raw, &request); err != nil {
				return nil, err
			}
			windows <- request.Window
			return nil, nil
		},
	})
	output, err := run(t, "window", "create", "--socket", socketPath, "-g", "weather", "--x", "40", "--width", "340", "main")
	if err != nil {
		t.Fatalf("window create: %v", err)
	}
	var window map[string]any
	if err := json.Unmarshal(testutil.RequireReceive(t, windows, 5*time.Second, "create-window not received"), &window); err != nil {
		t.Fatalf("window document: %v", err)
	}
	want := map[string]any{
		"label":       "main",
		"width":       340.0,
		"height":      170.0,
		"x":           40.0,
		"alwaysOnTop": false,
		"skipTaskbar": true,
		"group":       "weather",
		"size":        "small",
	}
	if diff := cmp.Diff(want, window); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(output, "widgetview://localhost/?group=weather&size=small") {
		t.Errorf("output = %q, want renderer URL", output)
	}
}

func TestWindowCreateRejectsUnknownSize(t *testing.T) {
	_, err := run(t, "window", "create", "--socket", "/nonexistent/widgetd.sock", "--size", "huge", "main")
	if got := category(t, err); got != cli.CategoryValidation {
		t.Errorf("category = %q, want validation", got)
	}
}

func TestStatus(t *testing.T) {
	socketPath := serve(t, map[string]service.ActionFunc{
		ipc.ActionStatus: func(ctx context.Context, raw []byte) (any, error) {
			return ipc.StatusResponse{
				Version:         "v1.2.0",
				Platform:        "mobile",
				Environment:     "production",
				ReloadInterval:  "15m0s",
				RegisteredKinds: []string{"ClockWidget"},
				ConfigHashes:    map[string]string{"group.clock": "00000000000000aa"},
			}, nil
		},
	})
	output, err := run(t, "status", "--socket", socketPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"mobile", "15m0s", "ClockWidget", "pollers", "none", "config group.clock", "00000000000000aa"} {
		if !strings.Contains(output, want) {
			t.Errorf("status output missing %q:\n%s", want, output)
		}
	}

	output, err = run(t, "status", "--socket", socketPath, "--json")
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	var decoded ipc.StatusResponse
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("status --json output %q: %v", output, err)
	}
	if decoded.Platform != "mobile" {
		t.Errorf("platform = %q, want mobile", decoded.Platform)
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	_, err := run(t, "statsu")
	if err == nil || !strings.Contains(err.Error(), `did you mean "status"`) {
		t.Errorf("err = %v, want suggestion for status", err)
	}
}

func TestVersionShort(t *testing.T) {
	output, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if output != version.Version+"\n" {
		t.Errorf("output = %q, want %q", output, version.Version+"\n")
	}
}

func TestDiagnose(t *testing.T) {
	if got := diagnose(nil); got != "{}" {
		t.Errorf("diagnose(nil) = %q, want {}", got)
	}
	got := diagnose(ipc.ReloadKindRequest{Kind: "ClockWidget"})
	if !strings.Contains(got, `"kind": "ClockWidget"`) {
		t.Errorf("diagnose = %q, want the kind field", got)
	}
}
