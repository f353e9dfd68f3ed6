// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

// Size names a widget size family.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists the size families in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// Config is the declarative UI of one widget group: a layout tree per
// size family. A family left nil is not offered by the widget.
type Config struct {
	Version int     `json:"version"`
	Small   Element `json:"small,omitempty"`
	Medium  Element `json:"medium,omitempty"`
	Large   Element `json:"large,omitempty"`
}

// Layout returns the tree for size, or nil.
func (c *Config) Layout(size Size) Element {
	switch size {
	case SizeSmall:
		return c.Small
	case SizeMedium:
		return c.Medium
	case SizeLarge:
		return c.Large
	}
	return nil
}

func (c *Config) UnmarshalJSON(data []byte) error {
	tree, err := decodeTree(data)
	if err != nil {
		return &DecodeError{Err: err}
	}
	fields, ok := tree.(map[string]any)
	if !ok {
		return &DecodeError{Err: fmt.Errorf("expected a JSON object, got %s", describeValue(tree))}
	}
	decoded := Config{Version: 1}
	if raw, ok := fields["version"]; ok && raw != nil {
		if err := decodeValue(raw, &decoded.Version); err != nil {
			return within("version", err)
		}
	}
	for _, size := range Sizes {
		raw, ok := fields[string(size)]
		if !ok || raw == nil {
			continue
		}
		element, err := buildElement(raw, 0)
		if err != nil {
			return within(string(size), err)
		}
		switch size {
		case SizeSmall:
			decoded.Small = element
		case SizeMedium:
			decoded.Medium = element
		case SizeLarge:
			decoded.Large = element
		}
	}
	*c = decoded
	return nil
}

// ParseConfig decodes a widget config document. Failures are
// classified as errkind.Deserialization and wrap a *DecodeError naming
// the offending path.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errkind.New(errkind.Deserialization, "parse widget config", err)
	}
	if err := Validate(&config); err != nil {
		return nil, errkind.New(errkind.Deserialization, "parse widget config", err)
	}
	return &config, nil
}

// ParseConfigFile reads a widget config from disk. Files may contain
// comments and trailing commas.
func ParseConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errkind.New(errkind.IO, "read widget config", err)
	}
	config, err := ParseConfig(jsonc.ToJSON(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Marshal encodes config. Absent optional members are omitted.
func Marshal(config *Config) ([]byte, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return nil, errkind.New(errkind.Serialization, "encode widget config", err)
	}
	return data, nil
}

// WindowConfig describes a desktop widget window. When URL is empty the
// window loads the built-in renderer for Group at Size.
type WindowConfig struct {
	Label       string   `json:"label"`
	URL         string   `json:"url,omitempty"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	AlwaysOnTop bool     `json:"alwaysOnTop"`
	SkipTaskbar bool     `json:"skipTaskbar"`
	Group       string   `json:"group,omitempty"`
	Size        Size     `json:"size,omitempty"`
}

func (w *WindowConfig) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return &DecodeError{Err: err}
	}
	if err := requireFields(fields, "label", "width", "height"); err != nil {
		return err
	}
	type plain WindowConfig
	decoded := plain{SkipTaskbar: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return within("", err)
	}
	*w = WindowConfig(decoded)
	return nil
}

// RendererURL returns the URL the window should load: URL when set,
// otherwise the built-in renderer for the window's group and size. The
// group defaults to "default" and the size to small.
func (w *WindowConfig) RendererURL() string {
	if w.URL != "" {
		return w.URL
	}
	group := w.Group
	if group == "" {
		group = "default"
	}
	size := w.Size
	if size == "" {
		size = SizeSmall
	}
	query := url.Values{"group": {group}, "size": {string(size)}}
	return "widgetview://localhost/?" + query.Encode()
}
