// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package datastore

import (
	"path/filepath"
	"testing"
)

func TestSanitizeGroup(t *testing.T) {
	tests := []struct {
		group string
		want  string
	}{
		{"group.com.example.weather", "group.com.example.weather"},
		{"my widgets/2", "my_widgets_2"},
		{"../etc", ".._etc"},
		{"météo", "météo"},
		{"", "_"},
	}
	for _, test := range tests {
		if got := SanitizeGroup(test.group); got != test.want {
			t.Errorf("SanitizeGroup(%q) = %q, want %q", test.group, got, test.want)
		}
	}
}

type fakeContainers map[string]string

func (f fakeContainers) SharedContainerPath(group string) (string, bool) {
	path, ok := f[group]
	return path, ok
}

func TestLocatorPath(t *testing.T) {
	locator := Locator{
		DataDir:    "/data",
		Containers: fakeContainers{"group.shared": "/containers/shared"},
	}
	if got, want := locator.Path("group.shared"), filepath.Join("/containers/shared", SharedDataFile); got != want {
		t.Errorf("Path(shared) = %q, want %q", got, want)
	}
	if got, want := locator.Path("group/local"), "/data/widgets/group_local.json"; got != want {
		t.Errorf("Path(local) = %q, want %q", got, want)
	}
}
