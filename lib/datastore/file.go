// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/widgets/lib/errkind"
)

// fileMode is readable by the widget extension process, which runs as
// the same user but not necessarily in the same sandbox group.
const fileMode = 0o644

// ReadMapFile reads a group data file. A missing file is an empty map.
// A file that is not a JSON object of strings returns an
// errkind.Deserialization error; other read failures are errkind.IO.
func ReadMapFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errkind.New(errkind.IO, "read "+path, err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errkind.New(errkind.Deserialization, "decode "+path, err)
	}
	if values == nil {
		// The file held JSON null.
		values = map[string]string{}
	}
	return values, nil
}

// WriteMapFile atomically replaces a group data file with values,
// creating its directory if needed. The encoding is indented JSON with
// sorted keys.
func WriteMapFile(path string, values map[string]string) error {
	if values == nil {
		values = map[string]string{}
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errkind.New(errkind.Serialization, "encode "+path, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errkind.New(errkind.IO, "create data directory", err)
	}
	if err := WriteFileAtomic(path, data, fileMode); err != nil {
		return errkind.New(errkind.IO, "persist "+path, err)
	}
	return nil
}

// UpdateMapFile applies mutate to the current contents of path and
// writes the result if mutate reports a change. A malformed file is
// treated as empty. This is the read-modify-write cycle used by writers
// that do not hold a Store, such as the native widget process recording
// a tap.
func UpdateMapFile(path string, mutate func(values map[string]string) bool) error {
	values, err := ReadMapFile(path)
	if errors.Is(err, errkind.Deserialization) {
		values, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	if !mutate(values) {
		return nil
	}
	return WriteMapFile(path, values)
}
