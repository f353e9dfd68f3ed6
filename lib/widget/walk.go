// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"errors"
	"fmt"
)

// MaxDepth bounds the nesting of a layout tree. Real widgets are a few
// levels deep; the bound keeps hostile documents from driving the
// recursive walkers arbitrarily deep.
const MaxDepth = 64

// SkipChildren may be returned by a WalkFunc to skip a container's
// children without stopping the walk.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each element. path is the element's location,
// e.g. "small.children[0]"; depth is 0 for a size family root.
type WalkFunc func(path string, depth int, element Element) error

// Walk visits every element of every present size family depth-first,
// in document order.
func Walk(config *Config, fn WalkFunc) error {
	for _, size := range Sizes {
		root := config.Layout(size)
		if root == nil {
			continue
		}
		if err := walkElement(string(size), 0, root, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkElement(path string, depth int, element Element, fn WalkFunc) error {
	if err := fn(path, depth, element); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	parent, ok := element.(Parent)
	if !ok {
		return nil
	}
	for index, child := range parent.ChildElements() {
		if err := walkElement(fmt.Sprintf("%s.children[%d]", path, index), depth+1, child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a config built in code the same way ParseConfig
// checks a decoded one: enum members must be in range, no element may
// be nil, and nesting may not exceed MaxDepth.
func Validate(config *Config) error {
	return Walk(config, func(path string, depth int, element Element) error {
		if element == nil {
			return &DecodeError{Path: path, Err: errors.New("nil element")}
		}
		if depth >= MaxDepth {
			return &DecodeError{Path: path, Err: fmt.Errorf("nesting deeper than %d levels", MaxDepth)}
		}
		return within(path, element.check())
	})
}

// Count returns the number of elements in a config, by type.
func Count(config *Config) map[ElementType]int {
	counts := make(map[ElementType]int)
	Walk(config, func(_ string, _ int, element Element) error {
		if element != nil {
			counts[element.Type()]++
		}
		return nil
	})
	return counts
}
