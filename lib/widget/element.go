// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ElementType is the discriminator carried in an element's "type" member.
type ElementType string

const (
	TypeVStack    ElementType = "vstack"
	TypeHStack    ElementType = "hstack"
	TypeZStack    ElementType = "zstack"
	TypeGrid      ElementType = "grid"
	TypeContainer ElementType = "container"
	TypeLink      ElementType = "link"
	TypeText      ElementType = "text"
	TypeImage     ElementType = "image"
	TypeProgress  ElementType = "progress"
	TypeGauge     ElementType = "gauge"
	TypeButton    ElementType = "button"
	TypeToggle    ElementType = "toggle"
	TypeDivider   ElementType = "divider"
	TypeSpacer    ElementType = "spacer"
	TypeDate      ElementType = "date"
	TypeChart     ElementType = "chart"
	TypeList      ElementType = "list"
	TypeShape     ElementType = "shape"
	TypeTimer     ElementType = "timer"
	TypeCanvas    ElementType = "canvas"
	TypeLabel     ElementType = "label"
)

// Element is one node of a widget UI tree. The concrete types in this
// package are the only implementations.
type Element interface {
	// Type returns the element's discriminator.
	Type() ElementType

	// check validates enum members after decoding.
	check() error
}

// Parent is implemented by container elements.
type Parent interface {
	Element
	ChildElements() []Element
}

// elementKind describes how to decode one element variant.
type elementKind struct {
	// make returns a zero value with decode defaults applied.
	make     func() Element
	required []string
	enums    []string
}

var elementKinds = map[ElementType]elementKind{
	TypeVStack:    {make: func() Element { return new(VStack) }, enums: []string{"alignment"}},
	TypeHStack:    {make: func() Element { return new(HStack) }, enums: []string{"alignment"}},
	TypeZStack:    {make: func() Element { return new(ZStack) }},
	TypeGrid:      {make: func() Element { return &Grid{Columns: 2} }},
	TypeContainer: {make: func() Element { return new(Container) }},
	TypeLink:      {make: func() Element { return new(Link) }},
	TypeText: {
		make:     func() Element { return new(Text) },
		required: []string{"content"},
		enums:    []string{"fontWeight", "fontDesign", "textStyle", "alignment"},
	},
	TypeImage:    {make: func() Element { return new(Image) }, enums: []string{"contentMode"}},
	TypeProgress: {make: func() Element { return &Progress{Total: 1} }, required: []string{"value"}, enums: []string{"barStyle"}},
	TypeGauge:    {make: func() Element { return new(Gauge) }, required: []string{"value"}, enums: []string{"gaugeStyle"}},
	TypeButton:   {make: func() Element { return new(Button) }, required: []string{"label"}, enums: []string{"textAlignment"}},
	TypeToggle:   {make: func() Element { return new(Toggle) }, required: []string{"isOn"}},
	TypeDivider:  {make: func() Element { return new(Divider) }},
	TypeSpacer:   {make: func() Element { return new(Spacer) }},
	TypeDate:     {make: func() Element { return new(Date) }, required: []string{"date"}, enums: []string{"dateStyle"}},
	TypeChart:    {make: func() Element { return new(Chart) }, required: []string{"chartType", "chartData"}},
	TypeList:     {make: func() Element { return new(List) }},
	TypeShape:    {make: func() Element { return new(Shape) }, required: []string{"shapeType"}},
	TypeTimer:    {make: func() Element { return new(Timer) }, required: []string{"targetDate"}, enums: []string{"counting", "fontWeight"}},
	TypeCanvas:   {make: func() Element { return new(Canvas) }, required: []string{"width", "height"}},
	TypeLabel:    {make: func() Element { return new(Label) }, required: []string{"text", "systemName"}, enums: []string{"fontWeight"}},
}

// ElementTypes returns every known element discriminator, sorted.
func ElementTypes() []ElementType {
	types := make([]ElementType, 0, len(elementKinds))
	for elementType := range elementKinds {
		types = append(types, elementType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DecodeElement decodes a single element from its JSON object form.
// Errors are *DecodeError values with paths relative to the element.
func DecodeElement(data []byte) (Element, error) {
	tree, err := decodeTree(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return buildElement(tree, 0)
}

// buildElement decodes one element of an already parsed document.
// depth is the element's nesting level; the limit is enforced before
// any child is visited.
func buildElement(node any, depth int) (Element, error) {
	if depth >= MaxDepth {
		return nil, &DecodeError{Err: fmt.Errorf("nesting deeper than %d levels", MaxDepth)}
	}
	fields, ok := node.(map[string]any)
	if !ok {
		return nil, &DecodeError{Err: fmt.Errorf("expected a JSON object, got %s", describeValue(node))}
	}
	rawType, ok := fields["type"]
	if !ok || rawType == nil {
		return nil, &DecodeError{Path: "type", Err: fmt.Errorf("missing element type")}
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, &DecodeError{Path: "type", Err: fmt.Errorf("element type must be a string")}
	}
	elementType := ElementType(typeName)
	kind, known := elementKinds[elementType]
	if !known {
		return nil, &DecodeError{Path: "type", Err: fmt.Errorf("unknown element type %q", elementType)}
	}
	if err := requireMembers(fields, kind.required...); err != nil {
		return nil, err
	}

	element := kind.make()
	container, isParent := element.(adopter)
	var children []any
	if isParent {
		if raw, present := fields["children"]; present && raw != nil {
			list, ok := raw.([]any)
			if !ok {
				return nil, &DecodeError{Path: "children", Err: fmt.Errorf("expected an array, got %s", describeValue(raw))}
			}
			children = list
			delete(fields, "children")
		}
	}

	if err := decodeValue(fields, element); err != nil {
		return nil, within("", err)
	}
	if err := rejectEmptyEnums(fields, element, kind.enums); err != nil {
		return nil, err
	}
	if isParent {
		decoded := make(Elements, 0, len(children))
		for index, child := range children {
			childElement, err := buildElement(child, depth+1)
			if err != nil {
				return nil, within(fmt.Sprintf("children[%d]", index), err)
			}
			decoded = append(decoded, childElement)
		}
		container.adopt(decoded)
	}
	if err := element.check(); err != nil {
		return nil, within("", err)
	}
	return element, nil
}

// rejectEmptyEnums fails when an enum member of the element is given
// as "". The empty string is no enum's value, and decoding it would be
// indistinguishable from leaving the member out.
func rejectEmptyEnums(fields map[string]any, element Element, enums []string) error {
	if _, styled := element.(interface{ checkStyle() error }); styled {
		enums = append([]string{"clipShape"}, enums...)
	}
	for _, name := range enums {
		if text, ok := fields[name].(string); ok && text == "" {
			return &DecodeError{Path: name, Err: fmt.Errorf("empty value is not allowed")}
		}
	}
	return nil
}

// adopter is implemented by the container elements so the decoder can
// attach children it has decoded itself.
type adopter interface {
	adopt(children Elements)
}

// Elements is an ordered list of child elements. It encodes as a JSON
// array (never null) and decodes each member by its "type".
type Elements []Element

func (e Elements) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Element(e))
}

func (e *Elements) UnmarshalJSON(data []byte) error {
	tree, err := decodeTree(data)
	if err != nil {
		return &DecodeError{Path: "children", Err: err}
	}
	if tree == nil {
		*e = nil
		return nil
	}
	list, ok := tree.([]any)
	if !ok {
		return &DecodeError{Path: "children", Err: fmt.Errorf("expected an array, got %s", describeValue(tree))}
	}
	decoded := make(Elements, 0, len(list))
	for index, node := range list {
		element, err := buildElement(node, 1)
		if err != nil {
			return within(fmt.Sprintf("children[%d]", index), err)
		}
		decoded = append(decoded, element)
	}
	*e = decoded
	return nil
}
