// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SharedDataFile is the file name used inside a shared container.
const SharedDataFile = "widget_data.json"

// ContainerLocator resolves a group to a directory shared with the
// native widget process. The native capability layer implements it.
type ContainerLocator interface {
	SharedContainerPath(group string) (string, bool)
}

// Locator maps widget groups to data file paths.
type Locator struct {
	// DataDir is the application data directory. Group files without a
	// shared container live in DataDir/widgets.
	DataDir string

	// Containers resolves shared containers. May be nil.
	Containers ContainerLocator
}

// Path returns the data file for group.
func (l Locator) Path(group string) string {
	if l.Containers != nil {
		if container, ok := l.Containers.SharedContainerPath(group); ok && container != "" {
			return filepath.Join(container, SharedDataFile)
		}
	}
	return filepath.Join(l.DataDir, "widgets", SanitizeGroup(group)+".json")
}

// SanitizeGroup maps a group identifier to a safe file name stem:
// letters, digits, and '.' are kept, every other rune becomes '_'. An
// empty group maps to "_".
func SanitizeGroup(group string) string {
	if group == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			return r
		}
		return '_'
	}, group)
}
