// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Style carries the presentation attributes shared by every element
// except spacer. Its members are flattened into the element's JSON
// object.
type Style struct {
	Padding      *Padding    `json:"padding,omitempty"`
	Background   *Background `json:"background,omitempty"`
	CornerRadius *float64    `json:"cornerRadius,omitempty"`
	Opacity      *float64    `json:"opacity,omitempty"`
	Frame        *Frame      `json:"frame,omitempty"`
	Border       *Border     `json:"border,omitempty"`
	Shadow       *Shadow     `json:"shadow,omitempty"`
	ClipShape    ShapeType   `json:"clipShape,omitempty"`
	// Flex is a layout weight for flexible sizing inside stacks.
	Flex *float64 `json:"flex,omitempty"`
}

func (s *Style) checkStyle() error {
	if err := checkEnum("clipShape", s.ClipShape, shapeTypes); err != nil {
		return err
	}
	if s.Background != nil && s.Background.Gradient != nil {
		return within("background", s.Background.Gradient.check())
	}
	return nil
}

// Color is either a solid color (hex string or semantic name such as
// "label" or "accent") or an adaptive light/dark pair.
type Color struct {
	Solid string
	Light string
	Dark  string
}

// SolidColor returns a solid Color.
func SolidColor(value string) *Color { return &Color{Solid: value} }

// AdaptiveColor returns a Color that switches with the system appearance.
func AdaptiveColor(light, dark string) *Color { return &Color{Light: light, Dark: dark} }

// Adaptive reports whether c is a light/dark pair.
func (c Color) Adaptive() bool { return c.Solid == "" && (c.Light != "" || c.Dark != "") }

func (c Color) MarshalJSON() ([]byte, error) {
	if c.Adaptive() {
		return json.Marshal(lightDark{Light: c.Light, Dark: c.Dark})
	}
	return json.Marshal(c.Solid)
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var solid string
	if err := json.Unmarshal(data, &solid); err == nil {
		*c = Color{Solid: solid}
		return nil
	}
	pair, err := decodeLightDark(data)
	if err != nil {
		return fmt.Errorf("color must be a string or {light, dark}: %w", err)
	}
	*c = Color{Light: pair.Light, Dark: pair.Dark}
	return nil
}

type lightDark struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

func decodeLightDark(data []byte) (lightDark, error) {
	fields, err := objectFields(data)
	if err != nil {
		return lightDark{}, err
	}
	if err := requireFields(fields, "light", "dark"); err != nil {
		return lightDark{}, err
	}
	var pair lightDark
	if err := json.Unmarshal(data, &pair); err != nil {
		return lightDark{}, err
	}
	return pair, nil
}

// Background is a solid color, a gradient, or an adaptive light/dark
// pair. Exactly one form is set.
type Background struct {
	Solid    string
	Gradient *Gradient
	Adaptive *Color
}

// Gradient describes a multi-stop gradient fill.
type Gradient struct {
	GradientType GradientType      `json:"gradientType"`
	Colors       []string          `json:"colors"`
	Direction    GradientDirection `json:"direction,omitempty"`
}

func (g *Gradient) check() error {
	if err := checkEnum("gradientType", g.GradientType, gradientTypes); err != nil {
		return err
	}
	return checkEnum("direction", g.Direction, gradientDirections)
}

func (b Background) MarshalJSON() ([]byte, error) {
	switch {
	case b.Gradient != nil:
		colors := b.Gradient.Colors
		if colors == nil {
			colors = []string{}
		}
		return json.Marshal(Gradient{GradientType: b.Gradient.GradientType, Colors: colors, Direction: b.Gradient.Direction})
	case b.Adaptive != nil:
		return json.Marshal(lightDark{Light: b.Adaptive.Light, Dark: b.Adaptive.Dark})
	default:
		return json.Marshal(b.Solid)
	}
}

func (b *Background) UnmarshalJSON(data []byte) error {
	var solid string
	if err := json.Unmarshal(data, &solid); err == nil {
		*b = Background{Solid: solid}
		return nil
	}
	fields, err := objectFields(data)
	if err != nil {
		return fmt.Errorf("background must be a color, gradient, or {light, dark}: %w", err)
	}
	if _, isGradient := fields["gradientType"]; isGradient {
		if err := requireFields(fields, "gradientType", "colors"); err != nil {
			return within("background", err)
		}
		if string(fields["direction"]) == `""` {
			return &DecodeError{Path: "background.direction", Err: errors.New("empty value is not allowed")}
		}
		var gradient Gradient
		if err := json.Unmarshal(data, &gradient); err != nil {
			return within("background", err)
		}
		*b = Background{Gradient: &gradient}
		return nil
	}
	pair, err := decodeLightDark(data)
	if err != nil {
		return within("background", err)
	}
	*b = Background{Adaptive: &Color{Light: pair.Light, Dark: pair.Dark}}
	return nil
}

// Padding is either uniform on all edges or specified per edge.
type Padding struct {
	Uniform *float64
	Edges   *EdgeInsets
}

// EdgeInsets sets padding per edge. Absent edges get no padding.
type EdgeInsets struct {
	Top      *float64 `json:"top,omitempty"`
	Bottom   *float64 `json:"bottom,omitempty"`
	Leading  *float64 `json:"leading,omitempty"`
	Trailing *float64 `json:"trailing,omitempty"`
}

// UniformPadding returns padding of value on every edge.
func UniformPadding(value float64) *Padding { return &Padding{Uniform: &value} }

func (p Padding) MarshalJSON() ([]byte, error) {
	if p.Edges != nil {
		return json.Marshal(p.Edges)
	}
	if p.Uniform != nil {
		return json.Marshal(*p.Uniform)
	}
	return []byte("null"), nil
}

func (p *Padding) UnmarshalJSON(data []byte) error {
	var uniform float64
	if err := json.Unmarshal(data, &uniform); err == nil {
		*p = Padding{Uniform: &uniform}
		return nil
	}
	if describeJSON(data) != "object" {
		return &DecodeError{Path: "padding", Err: fmt.Errorf("expected a number or edge object, got %s", describeJSON(data))}
	}
	var edges EdgeInsets
	if err := json.Unmarshal(data, &edges); err != nil {
		return within("padding", err)
	}
	*p = Padding{Edges: &edges}
	return nil
}

// Frame constrains an element's size.
type Frame struct {
	Width     *float64   `json:"width,omitempty"`
	Height    *float64   `json:"height,omitempty"`
	MaxWidth  *Dimension `json:"maxWidth,omitempty"`
	MaxHeight *Dimension `json:"maxHeight,omitempty"`
}

// Dimension is a fixed size in points or a keyword such as "infinity".
type Dimension struct {
	Points  *float64
	Keyword string
}

func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.Points != nil {
		return json.Marshal(*d.Points)
	}
	return json.Marshal(d.Keyword)
}

func (d *Dimension) UnmarshalJSON(data []byte) error {
	var points float64
	if err := json.Unmarshal(data, &points); err == nil {
		*d = Dimension{Points: &points}
		return nil
	}
	var keyword string
	if err := json.Unmarshal(data, &keyword); err != nil {
		return errors.New("dimension must be a number or a keyword string")
	}
	*d = Dimension{Keyword: keyword}
	return nil
}

// Border strokes the element's outline. Width defaults to 1.
type Border struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

func (b *Border) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return within("border", err)
	}
	if err := requireFields(fields, "color"); err != nil {
		return within("border", err)
	}
	type plain Border
	decoded := plain{Width: 1}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return within("border", err)
	}
	*b = Border(decoded)
	return nil
}

// Shadow draws a drop shadow behind the element.
type Shadow struct {
	Color  *string  `json:"color,omitempty"`
	Radius *float64 `json:"radius,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}
