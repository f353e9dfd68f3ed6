// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/json"
	"fmt"
)

// Text renders a run of text.
type Text struct {
	Style
	Content    string        `json:"content"`
	FontSize   *float64      `json:"fontSize,omitempty"`
	FontWeight FontWeight    `json:"fontWeight,omitempty"`
	FontDesign FontDesign    `json:"fontDesign,omitempty"`
	TextStyle  TextStyle     `json:"textStyle,omitempty"`
	Color      *Color        `json:"color,omitempty"`
	Alignment  TextAlignment `json:"alignment,omitempty"`
	LineLimit  *uint32       `json:"lineLimit,omitempty"`
}

// Image renders a symbol, inline base64 data, or a remote URL.
type Image struct {
	Style
	// SystemName is an SF Symbol (Apple) or Material icon (Android) name.
	SystemName  *string     `json:"systemName,omitempty"`
	Data        *string     `json:"data,omitempty"`
	URL         *string     `json:"url,omitempty"`
	Size        *float64    `json:"size,omitempty"`
	Color       *Color      `json:"color,omitempty"`
	ContentMode ContentMode `json:"contentMode,omitempty"`
}

// Progress renders Value out of Total (default 1).
type Progress struct {
	Style
	Value    float64       `json:"value"`
	Total    float64       `json:"total"`
	Label    *string       `json:"label,omitempty"`
	Tint     *Color        `json:"tint,omitempty"`
	Color    *Color        `json:"color,omitempty"`
	BarStyle ProgressStyle `json:"barStyle,omitempty"`
}

// Gauge renders Value within [Min, Max].
type Gauge struct {
	Style
	Value             float64    `json:"value"`
	Min               *float64   `json:"min,omitempty"`
	Max               *float64   `json:"max,omitempty"`
	Label             *string    `json:"label,omitempty"`
	CurrentValueLabel *string    `json:"currentValueLabel,omitempty"`
	Tint              *Color     `json:"tint,omitempty"`
	Color             *Color     `json:"color,omitempty"`
	GaugeStyle        GaugeStyle `json:"gaugeStyle,omitempty"`
}

// Button is a tappable label. Action takes precedence over URL.
type Button struct {
	Style
	Label           string        `json:"label"`
	URL             *string       `json:"url,omitempty"`
	Action          *string       `json:"action,omitempty"`
	Color           *Color        `json:"color,omitempty"`
	BackgroundColor *Color        `json:"backgroundColor,omitempty"`
	FontSize        *float64      `json:"fontSize,omitempty"`
	TextAlignment   TextAlignment `json:"textAlignment,omitempty"`
}

// Toggle renders an on/off switch whose tap is reported as Action.
type Toggle struct {
	Style
	IsOn   bool    `json:"isOn"`
	Label  *string `json:"label,omitempty"`
	Tint   *string `json:"tint,omitempty"`
	Action *string `json:"action,omitempty"`
}

// Divider draws a separator line.
type Divider struct {
	Style
	Color     *Color   `json:"color,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
}

// Spacer takes up flexible space. It carries no style.
type Spacer struct {
	MinLength *float64 `json:"minLength,omitempty"`
}

// Date renders an ISO-8601 timestamp in one of the DateStyle forms.
type Date struct {
	Style
	Date      string    `json:"date"`
	DateStyle DateStyle `json:"dateStyle,omitempty"`
	FontSize  *float64  `json:"fontSize,omitempty"`
	Color     *Color    `json:"color,omitempty"`
}

// Chart renders a series of labelled values.
type Chart struct {
	Style
	ChartType ChartType   `json:"chartType"`
	ChartData ChartSeries `json:"chartData"`
	Tint      *Color      `json:"tint,omitempty"`
}

// ChartSeries is the data of a chart, in display order.
type ChartSeries []ChartPoint

func (s ChartSeries) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ChartPoint(s))
}

func (s *ChartSeries) UnmarshalJSON(data []byte) error {
	return decodeList("chartData", data, (*[]ChartPoint)(s))
}

// ChartPoint is one labelled value in a chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color *Color  `json:"color,omitempty"`
}

func (p *ChartPoint) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := requireFields(fields, "label", "value"); err != nil {
		return err
	}
	type plain ChartPoint
	return json.Unmarshal(data, (*plain)(p))
}

// List renders a collection of rows. Android renders it as a scrolling
// collection; other platforms render the first rows that fit.
type List struct {
	Style
	Items    ListItems `json:"items"`
	Spacing  *float64  `json:"spacing,omitempty"`
	FontSize *float64  `json:"fontSize,omitempty"`
	Color    *Color    `json:"color,omitempty"`
}

// ListItems is the rows of a list, in display order.
type ListItems []ListItem

func (l ListItems) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ListItem(l))
}

func (l *ListItems) UnmarshalJSON(data []byte) error {
	return decodeList("items", data, (*[]ListItem)(l))
}

// ListItem is one row of a list. A tap on a row with an Action queues
// the action together with Payload.
type ListItem struct {
	Text    string  `json:"text"`
	Checked *bool   `json:"checked,omitempty"`
	Action  *string `json:"action,omitempty"`
	Payload *string `json:"payload,omitempty"`
}

func (i *ListItem) UnmarshalJSON(data []byte) error {
	fields, err := objectFields(data)
	if err != nil {
		return err
	}
	if err := requireFields(fields, "text"); err != nil {
		return err
	}
	type plain ListItem
	return json.Unmarshal(data, (*plain)(i))
}

// Shape renders a filled or stroked primitive.
type Shape struct {
	Style
	ShapeType   ShapeType `json:"shapeType"`
	Fill        *Color    `json:"fill,omitempty"`
	Stroke      *Color    `json:"stroke,omitempty"`
	StrokeWidth *float64  `json:"strokeWidth,omitempty"`
	Size        *float64  `json:"size,omitempty"`
}

// Timer counts toward or away from TargetDate without a timeline reload.
type Timer struct {
	Style
	TargetDate string        `json:"targetDate"`
	Counting   TimerCounting `json:"counting,omitempty"`
	FontSize   *float64      `json:"fontSize,omitempty"`
	FontWeight FontWeight    `json:"fontWeight,omitempty"`
	Color      *Color        `json:"color,omitempty"`
}

// Canvas draws a list of vector commands into a Width x Height box.
type Canvas struct {
	Style
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Elements DrawCommands `json:"elements"`
}

// Label pairs a symbol with text.
type Label struct {
	Style
	Text       string     `json:"text"`
	SystemName string     `json:"systemName"`
	IconColor  *Color     `json:"iconColor,omitempty"`
	FontSize   *float64   `json:"fontSize,omitempty"`
	FontWeight FontWeight `json:"fontWeight,omitempty"`
	Color      *Color     `json:"color,omitempty"`
	Spacing    *float64   `json:"spacing,omitempty"`
}

func (*Text) Type() ElementType     { return TypeText }
func (*Image) Type() ElementType    { return TypeImage }
func (*Progress) Type() ElementType { return TypeProgress }
func (*Gauge) Type() ElementType    { return TypeGauge }
func (*Button) Type() ElementType   { return TypeButton }
func (*Toggle) Type() ElementType   { return TypeToggle }
func (*Divider) Type() ElementType  { return TypeDivider }
func (*Spacer) Type() ElementType   { return TypeSpacer }
func (*Date) Type() ElementType     { return TypeDate }
func (*Chart) Type() ElementType    { return TypeChart }
func (*List) Type() ElementType     { return TypeList }
func (*Shape) Type() ElementType    { return TypeShape }
func (*Timer) Type() ElementType    { return TypeTimer }
func (*Canvas) Type() ElementType   { return TypeCanvas }
func (*Label) Type() ElementType    { return TypeLabel }

func (e *Text) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	if err := checkEnum("fontWeight", e.FontWeight, fontWeights); err != nil {
		return err
	}
	if err := checkEnum("fontDesign", e.FontDesign, fontDesigns); err != nil {
		return err
	}
	if err := checkEnum("textStyle", e.TextStyle, textStyles); err != nil {
		return err
	}
	return checkEnum("alignment", e.Alignment, textAlignments)
}

func (e *Image) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("contentMode", e.ContentMode, contentModes)
}

func (e *Progress) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("barStyle", e.BarStyle, progressStyles)
}

func (e *Gauge) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("gaugeStyle", e.GaugeStyle, gaugeStyles)
}

func (e *Button) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("textAlignment", e.TextAlignment, textAlignments)
}

func (e *Toggle) check() error  { return e.checkStyle() }
func (e *Divider) check() error { return e.checkStyle() }
func (e *Spacer) check() error  { return nil }

func (e *Date) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("dateStyle", e.DateStyle, dateStyles)
}

func (e *Chart) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	if e.ChartType == "" {
		return &DecodeError{Path: "chartType", Err: fmt.Errorf("missing required field")}
	}
	return checkEnum("chartType", e.ChartType, chartTypes)
}

func (e *List) check() error { return e.checkStyle() }

func (e *Shape) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	if e.ShapeType == "" {
		return &DecodeError{Path: "shapeType", Err: fmt.Errorf("missing required field")}
	}
	return checkEnum("shapeType", e.ShapeType, shapeTypes)
}

func (e *Timer) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	if err := checkEnum("counting", e.Counting, timerCountings); err != nil {
		return err
	}
	return checkEnum("fontWeight", e.FontWeight, fontWeights)
}

func (e *Canvas) check() error { return e.checkStyle() }

func (e *Label) check() error {
	if err := e.checkStyle(); err != nil {
		return err
	}
	return checkEnum("fontWeight", e.FontWeight, fontWeights)
}

func (e *Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return marshalElement(TypeText, (*plain)(e))
}

func (e *Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return marshalElement(TypeImage, (*plain)(e))
}

func (e *Progress) MarshalJSON() ([]byte, error) {
	type plain Progress
	return marshalElement(TypeProgress, (*plain)(e))
}

func (e *Gauge) MarshalJSON() ([]byte, error) {
	type plain Gauge
	return marshalElement(TypeGauge, (*plain)(e))
}

func (e *Button) MarshalJSON() ([]byte, error) {
	type plain Button
	return marshalElement(TypeButton, (*plain)(e))
}

func (e *Toggle) MarshalJSON() ([]byte, error) {
	type plain Toggle
	return marshalElement(TypeToggle, (*plain)(e))
}

func (e *Divider) MarshalJSON() ([]byte, error) {
	type plain Divider
	return marshalElement(TypeDivider, (*plain)(e))
}

func (e *Spacer) MarshalJSON() ([]byte, error) {
	type plain Spacer
	return marshalElement(TypeSpacer, (*plain)(e))
}

func (e *Date) MarshalJSON() ([]byte, error) {
	type plain Date
	return marshalElement(TypeDate, (*plain)(e))
}

func (e *Chart) MarshalJSON() ([]byte, error) {
	type plain Chart
	return marshalElement(TypeChart, (*plain)(e))
}

func (e *List) MarshalJSON() ([]byte, error) {
	type plain List
	return marshalElement(TypeList, (*plain)(e))
}

func (e *Shape) MarshalJSON() ([]byte, error) {
	type plain Shape
	return marshalElement(TypeShape, (*plain)(e))
}

func (e *Timer) MarshalJSON() ([]byte, error) {
	type plain Timer
	return marshalElement(TypeTimer, (*plain)(e))
}

func (e *Canvas) MarshalJSON() ([]byte, error) {
	type plain Canvas
	return marshalElement(TypeCanvas, (*plain)(e))
}

func (e *Label) MarshalJSON() ([]byte, error) {
	type plain Label
	return marshalElement(TypeLabel, (*plain)(e))
}

// decodeList decodes a JSON array member by member so that a failure
// reports the index of the offending entry.
func decodeList[T any](field string, data []byte, out *[]T) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return &DecodeError{Path: field, Err: fmt.Errorf("expected an array, got %s", describeJSON(data))}
	}
	decoded := make([]T, len(raws))
	for index, raw := range raws {
		if err := json.Unmarshal(raw, &decoded[index]); err != nil {
			return within(fmt.Sprintf("%s[%d]", field, index), err)
		}
	}
	*out = decoded
	return nil
}
