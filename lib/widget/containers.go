// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import "encoding/json"

// VStack lays its children out vertically.
type VStack struct {
	Style
	Children  Elements            `json:"children"`
	Spacing   *float64            `json:"spacing,omitempty"`
	Alignment HorizontalAlignment `json:"alignment,omitempty"`
}

// HStack lays its children out horizontally.
type HStack struct {
	Style
	Children  Elements          `json:"children"`
	Spacing   *float64          `json:"spacing,omitempty"`
	Alignment VerticalAlignment `json:"alignment,omitempty"`
}

// ZStack overlays its children back to front.
type ZStack struct {
	Style
	Children Elements `json:"children"`
	// Alignment is passed through to the renderer, e.g. "topLeading".
	Alignment *string `json:"alignment,omitempty"`
}

// Grid arranges its children in rows of Columns cells.
type Grid struct {
	Style
	Children   Elements `json:"children"`
	Columns    uint32   `json:"columns"`
	Spacing    *float64 `json:"spacing,omitempty"`
	RowSpacing *float64 `json:"rowSpacing,omitempty"`
}

// Container wraps children in an aligned box, for cards and badges.
type Container struct {
	Style
	Children         Elements `json:"children"`
	ContentAlignment *string  `json:"contentAlignment,omitempty"`
}

// Link makes its children tappable. A tap opens URL, or when Action is
// set, queues the action for the application.
type Link struct {
	Style
	Children Elements `json:"children"`
	URL      *string  `json:"url,omitempty"`
	Action   *string  `json:"action,omitempty"`
}

func (*VStack) Type() ElementType    { return TypeVStack }
func (*HStack) Type() ElementType    { return TypeHStack }
func (*ZStack) Type() ElementType    { return TypeZStack }
func (*Grid) Type() ElementType      { return TypeGrid }
func (*Container) Type() ElementType { return TypeContainer }
func (*Link) Type() ElementType      { return TypeLink }

func (e *VStack) ChildElements() []Element    { return e.Children }
func (e *HStack) ChildElements() []Element    { return e.Children }
func (e *ZStack) ChildElements() []Element    { return e.Children }
func (e *Grid) ChildElements() []Element      { return e.Children }
func (e *Container) ChildElements() []Element { return e.Children }
func (e *Link) ChildElements() []Element      { return e.Children }

func (e *VStack) adopt(children Elements)    { e.Children = children }
func (e *HStack) adopt(children Elements)    { e.Children = children }
func (e *ZStack) adopt(children Elements)    { e.Children = children }
func (e *Grid) adopt(children Elements)      { e.Children = children }
func (e *Container) adopt(children Elements) { e.Children = children }
func (e *Link) adopt(children Elements)      { e.Children = children }

func (e *VStack) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("alignment", e.Alignment, horizontalAlignments)
}

func (e *HStack) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("alignment", e.Alignment, verticalAlignments)
}

func (e *ZStack) check() error    { return e.checkStyle() }
func (e *Grid) check() error      { return e.checkStyle() }
func (e *Container) check() error { return e.checkStyle() }
func (e *Link) check() error      { return e.checkStyle() }

func (e *VStack) MarshalJSON() ([]byte, error) {
	type plain VStack
	return marshalElement(TypeVStack, (*plain)(e))
}

func (e *HStack) MarshalJSON() ([]byte, error) {
	type plain HStack
	return marshalElement(TypeHStack, (*plain)(e))
}

func (e *ZStack) MarshalJSON() ([]byte, error) {
	type plain ZStack
	return marshalElement(TypeZStack, (*plain)(e))
}

func (e *Grid) MarshalJSON() ([]byte, error) {
	type plain Grid
	return marshalElement(TypeGrid, (*plain)(e))
}

func (e *Container) MarshalJSON() ([]byte, error) {
	type plain Container
	return marshalElement(TypeContainer, (*plain)(e))
}

func (e *Link) MarshalJSON() ([]byte, error) {
	type plain Link
	return marshalElement(TypeLink, (*plain)(e))
}

func marshalElement(elementType ElementType, fields any) ([]byte, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return tagged("type", string(elementType), body)
}
