// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sampleRequest struct {
	Action string `cbor:"action"`
	Group  string `cbor:"group,omitempty"`
	Key    string `cbor:"key"`
}

type sampleJSONTagged struct {
	Hash    uint64 `json:"hash"`
	Changed bool   `json:"changed"`
}

func TestMarshalDeterministic(t *testing.T) {
	request := map[string]any{"action": "set-item", "group": "g", "key": "k", "value": "v"}

	first, err := Marshal(request)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(request)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestMapAndStructEncodeIdentically(t *testing.T) {
	fromStruct, err := Marshal(sampleRequest{Action: "get-item", Group: "g", Key: "k"})
	if err != nil {
		t.Fatal(err)
	}
	fromMap, err := Marshal(map[string]any{"action": "get-item", "group": "g", "key": "k"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(fromStruct, fromMap) {
		t.Errorf("struct and map encodings differ:\n%x\n%x", fromStruct, fromMap)
	}
}

func TestDecodeIntoAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"action": "status", "nested": map[string]any{"a": 1}})
	if err != nil {
		t.Fatal(err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	top, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := top["nested"].(map[string]any); !ok {
		t.Errorf("nested value is %T, want map[string]any", top["nested"])
	}
}

func TestJSONTagFallback(t *testing.T) {
	data, err := Marshal(sampleJSONTagged{Hash: 42, Changed: true})
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"hash": uint64(42), "changed": true}, decoded); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamOfRequests(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	requests := []sampleRequest{
		{Action: "set-item", Group: "a", Key: "1"},
		{Action: "get-item", Key: "2"},
	}
	for _, request := range requests {
		if err := encoder.Encode(request); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	var decoded []sampleRequest
	for range requests {
		var request sampleRequest
		if err := decoder.Decode(&request); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		decoded = append(decoded, request)
	}
	if diff := cmp.Diff(requests, decoded); diff != "" {
		t.Errorf("stream mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	data, err := Marshal(map[string]any{"action": "get-item", "key": "k", "future": []int{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	var request sampleRequest
	if err := Unmarshal(data, &request); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if request.Key != "k" {
		t.Errorf("Key = %q, want k", request.Key)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"ok": true})
	if err != nil {
		t.Fatal(err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"ok": true`) {
		t.Errorf("Diagnose = %q, want it to contain %q", diagnostic, `"ok": true`)
	}
}
