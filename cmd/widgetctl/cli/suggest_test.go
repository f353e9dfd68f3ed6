// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "ab", 1},
		{"ab", "abc", 1},
		{"abc", "bac", 2},
		{"kitten", "sitting", 3},
		{"reload", "relaod", 2},
		{"inspect", "inspet", 1},
	}
	for _, test := range tests {
		t.Run(test.a+"/"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := levenshtein(test.b, test.a); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "push"},
		{Name: "reload"},
		{Name: "status"},
		{Name: "inspect"},
	}
	tests := []struct {
		input string
		want  string
	}{
		{"psuh", "push"},
		{"reloa", "reload"},
		{"stauts", "status"},
		{"inspct", "inspect"},
		{"zzzzzzzzz", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("push", pflag.ContinueOnError)
	flagSet.String("group", "", "")
	flagSet.BoolP("skip-reload", "s", false, "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--gruop", "weather"}, "--group"},
		{[]string{"--group", "weather", "--skip-relaod"}, "--skip-reload"},
		{[]string{"-s", "--grp=weather"}, "--group"},
		{[]string{"--completely-different"}, ""},
		{[]string{"--", "--gruop"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}
