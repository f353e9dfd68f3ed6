// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeError reports where in a widget document decoding failed. Path
// uses dotted field names and bracketed indexes relative to the
// document root, for example "medium.children[1].fontWeight".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// within re-roots err under prefix. Type errors from encoding/json are
// converted so that every decode failure carries a path.
func within(prefix string, err error) error {
	if err == nil {
		return nil
	}
	switch typed := err.(type) {
	case *DecodeError:
		return &DecodeError{Path: joinPath(prefix, typed.Path), Err: typed.Err}
	case *json.UnmarshalTypeError:
		return &DecodeError{
			Path: joinPath(prefix, typed.Field),
			Err:  fmt.Errorf("cannot use JSON %s as %s", typed.Value, typed.Type),
		}
	default:
		return &DecodeError{Path: prefix, Err: err}
	}
}

func joinPath(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	case strings.HasPrefix(path, "["):
		return prefix + path
	default:
		return prefix + "." + path
	}
}

// objectFields splits a JSON object into its members. Anything other
// than an object is a decode error.
func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("expected a JSON object, got %s", describeJSON(data))
	}
	return fields, nil
}

// requireFields fails on the first listed member that is absent or null.
func requireFields(fields map[string]json.RawMessage, names ...string) error {
	for _, name := range names {
		value, ok := fields[name]
		if !ok || isNull(value) {
			return &DecodeError{Path: name, Err: fmt.Errorf("missing required field")}
		}
	}
	return nil
}

// requireMembers is requireFields for a member map of a parsed
// document, where null is nil.
func requireMembers(fields map[string]any, names ...string) error {
	for _, name := range names {
		if value, ok := fields[name]; !ok || value == nil {
			return &DecodeError{Path: name, Err: fmt.Errorf("missing required field")}
		}
	}
	return nil
}

// decodeTree parses data once into generic values. Numbers stay
// json.Number so that re-encoding a node reproduces them exactly.
func decodeTree(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return tree, nil
}

// decodeValue decodes one node of a parsed document into target.
func decodeValue(node any, target any) error {
	encoded, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

func isNull(data json.RawMessage) bool {
	return strings.TrimSpace(string(data)) == "null"
}

// describeJSON names the kind of a JSON value for error messages.
func describeJSON(data []byte) string {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "nothing"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// describeValue names the kind of a parsed JSON value.
func describeValue(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}

// tagged prefixes an encoded JSON object with a discriminator member.
// body must be the encoding of a struct, which always starts with '{'.
func tagged(key, value string, body []byte) ([]byte, error) {
	tag, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var buffer strings.Builder
	buffer.Grow(len(body) + len(key) + len(tag) + 4)
	buffer.WriteString(`{"`)
	buffer.WriteString(key)
	buffer.WriteString(`":`)
	buffer.Write(tag)
	if len(body) > 2 {
		buffer.WriteByte(',')
	}
	buffer.Write(body[1:])
	return []byte(buffer.String()), nil
}
