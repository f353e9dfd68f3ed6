// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"fmt"
)

// DrawKind is the discriminator carried in a draw command's "draw" member.
type DrawKind string

const (
	DrawKindCircle DrawKind = "circle"
	DrawKindLine   DrawKind = "line"
	DrawKindRect   DrawKind = "rect"
	DrawKindArc    DrawKind = "arc"
	DrawKindText   DrawKind = "text"
	DrawKindPath   DrawKind = "path"
)

// DrawCommand is one vector drawing instruction inside a canvas.
// Coordinates are in the canvas's own point space.
type DrawCommand interface {
	Draw() DrawKind
}

// DrawCircle draws a circle centred at (CX, CY).
type DrawCircle struct {
	CX          float64  `json:"cx"`
	CY          float64  `json:"cy"`
	R           float64  `json:"r"`
	Fill        *Color   `json:"fill,omitempty"`
	Stroke      *Color   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

// DrawLine draws a segment from (X1, Y1) to (X2, Y2).
type DrawLine struct {
	X1          float64  `json:"x1"`
	Y1          float64  `json:"y1"`
	X2          float64  `json:"x2"`
	Y2          float64  `json:"y2"`
	Stroke      *Color   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	LineCap     *string  `json:"lineCap,omitempty"`
}

// DrawRect draws an optionally rounded rectangle.
type DrawRect struct {
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Fill         *Color   `json:"fill,omitempty"`
	Stroke       *Color   `json:"stroke,omitempty"`
	StrokeWidth  *float64 `json:"strokeWidth,omitempty"`
	CornerRadius *float64 `json:"cornerRadius,omitempty"`
}

// DrawArc draws an arc between two angles in degrees.
type DrawArc struct {
	CX          float64  `json:"cx"`
	CY          float64  `json:"cy"`
	R           float64  `json:"r"`
	StartAngle  float64  `json:"startAngle"`
	EndAngle    float64  `json:"endAngle"`
	Fill        *Color   `json:"fill,omitempty"`
	Stroke      *Color   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

// DrawText places a string at (X, Y).
type DrawText struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Content  string   `json:"content"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Color    *Color   `json:"color,omitempty"`
	Anchor   *string  `json:"anchor,omitempty"`
}

// DrawPath draws SVG path data such as "M10 10 L90 90".
type DrawPath struct {
	D           string   `json:"d"`
	Fill        *Color   `json:"fill,omitempty"`
	Stroke      *Color   `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
}

func (*DrawCircle) Draw() DrawKind { return DrawKindCircle }
func (*DrawLine) Draw() DrawKind   { return DrawKindLine }
func (*DrawRect) Draw() DrawKind   { return DrawKindRect }
func (*DrawArc) Draw() DrawKind    { return DrawKindArc }
func (*DrawText) Draw() DrawKind   { return DrawKindText }
func (*DrawPath) Draw() DrawKind   { return DrawKindPath }

var drawKinds = map[DrawKind]struct {
	make     func() DrawCommand
	required []string
}{
	DrawKindCircle: {func() DrawCommand { return new(DrawCircle) }, []string{"cx", "cy", "r"}},
	DrawKindLine:   {func() DrawCommand { return new(DrawLine) }, []string{"x1", "y1", "x2", "y2"}},
	DrawKindRect:   {func() DrawCommand { return new(DrawRect) }, []string{"x", "y", "width", "height"}},
	DrawKindArc:    {func() DrawCommand { return new(DrawArc) }, []string{"cx", "cy", "r", "startAngle", "endAngle"}},
	DrawKindText:   {func() DrawCommand { return new(DrawText) }, []string{"x", "y", "content"}},
	DrawKindPath:   {func() DrawCommand { return new(DrawPath) }, []string{"d"}},
}

func decodeDrawCommand(data []byte) (DrawCommand, error) {
	fields, err := objectFields(data)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	rawKind, ok := fields["draw"]
	if !ok || isNull(rawKind) {
		return nil, &DecodeError{Path: "draw", Err: fmt.Errorf("missing draw command kind")}
	}
	var kind DrawKind
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return nil, &DecodeError{Path: "draw", Err: fmt.Errorf("draw command kind must be a string")}
	}
	entry, known := drawKinds[kind]
	if !known {
		return nil, &DecodeError{Path: "draw", Err: fmt.Errorf("unknown draw command %q", kind)}
	}
	if err := requireFields(fields, entry.required...); err != nil {
		return nil, err
	}
	command := entry.make()
	if err := json.Unmarshal(data, command); err != nil {
		return nil, within("", err)
	}
	return command, nil
}

// DrawCommands is the ordered command list of a canvas.
type DrawCommands []DrawCommand

func (d DrawCommands) MarshalJSON() ([]byte, error) {
	encoded := make([]json.RawMessage, 0, len(d))
	for _, command := range d {
		body, err := json.Marshal(command)
		if err != nil {
			return nil, err
		}
		withKind, err := tagged("draw", string(command.Draw()), body)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, withKind)
	}
	return json.Marshal(encoded)
}

func (d *DrawCommands) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Path: "elements", Err: fmt.Errorf("expected an array, got %s", describeJSON(data))}
	}
	decoded := make(DrawCommands, 0, len(raws))
	for index, raw := range raws {
		command, err := decodeDrawCommand(raw)
		if err != nil {
			return within(fmt.Sprintf("elements[%d]", index), err)
		}
		decoded = append(decoded, command)
	}
	*d = decoded
	return nil
}
