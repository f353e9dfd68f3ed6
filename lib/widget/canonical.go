// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"bytes"
	"encoding/json"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

// StripNulls returns a copy of a decoded JSON value with every null
// object member removed, recursively. Array elements are kept (a null
// element stays null) but are themselves stripped. Scalars are returned
// unchanged. StripNulls is idempotent.
func StripNulls(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		stripped := make(map[string]any, len(typed))
		for key, member := range typed {
			if member == nil {
				continue
			}
			stripped[key] = StripNulls(member)
		}
		return stripped
	case []any:
		stripped := make([]any, len(typed))
		for index, element := range typed {
			stripped[index] = StripNulls(element)
		}
		return stripped
	default:
		return value
	}
}

// Canonicalize returns the canonical JSON text of config: compact,
// object keys sorted, numbers kept as written, no null members. Two
// structurally equal configs always produce identical bytes.
func Canonicalize(config *Config) (json.RawMessage, error) {
	encoded, err := Marshal(config)
	if err != nil {
		return nil, err
	}
	return CanonicalJSON(encoded)
}

// CanonicalJSON canonicalizes an arbitrary JSON document the same way
// Canonicalize does.
func CanonicalJSON(data []byte) (json.RawMessage, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return nil, errkind.New(errkind.Serialization, "canonicalize", err)
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(StripNulls(generic)); err != nil {
		return nil, errkind.New(errkind.Serialization, "canonicalize", err)
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
