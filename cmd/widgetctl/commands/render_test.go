// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestHighlightFormatterPlainForPipes(t *testing.T) {
	previous := stdout
	stdout = new(bytes.Buffer)
	t.Cleanup(func() { stdout = previous })

	if got := highlightFormatter(false); got != "" {
		t.Errorf("highlightFormatter(false) = %q, want plain output", got)
	}
	if got := highlightFormatter(true); got != "terminal256" {
		t.Errorf("highlightFormatter(true) = %q, want terminal256", got)
	}
}

func TestWriteHighlightedJSON(t *testing.T) {
	data := []byte(`{"version":1,"small":{"type":"spacer"}}`)

	var plain bytes.Buffer
	if err := writeHighlightedJSON(&plain, data, ""); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"version\": 1,\n  \"small\": {\n    \"type\": \"spacer\"\n  }\n}\n"
	if plain.String() != want {
		t.Errorf("plain output = %q, want %q", plain.String(), want)
	}

	var colored bytes.Buffer
	if err := writeHighlightedJSON(&colored, data, "terminal256"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("highlighted output has no escape sequences: %q", colored.String())
	}
	if !strings.Contains(colored.String(), "spacer") {
		t.Errorf("highlighted output lost content: %q", colored.String())
	}
}

func TestWriteHighlightedJSONRejectsInvalid(t *testing.T) {
	if err := writeHighlightedJSON(new(bytes.Buffer), []byte("{"), ""); err == nil {
		t.Error("invalid JSON was formatted")
	}
}

func TestSummarizeTruncates(t *testing.T) {
	path := writeFile(t, "long.json", `{"small": {"type": "text", "content": "`+strings.Repeat("é", 80)+`"}}`)
	output, err := run(t, "config", "inspect", path)
	if err != nil {
		t.Fatalf("config inspect: %v", err)
	}
	if !strings.Contains(output, "...") {
		t.Errorf("long summary not truncated:\n%s", output)
	}
	if strings.Contains(output, strings.Repeat("é", 80)) {
		t.Errorf("summary kept the full content:\n%s", output)
	}
}
