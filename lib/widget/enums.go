// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"fmt"
	"slices"
)

// FontWeight selects a font weight.
type FontWeight string

const (
	FontWeightUltralight FontWeight = "ultralight"
	FontWeightThin       FontWeight = "thin"
	FontWeightLight      FontWeight = "light"
	FontWeightRegular    FontWeight = "regular"
	FontWeightMedium     FontWeight = "medium"
	FontWeightSemibold   FontWeight = "semibold"
	FontWeightBold       FontWeight = "bold"
	FontWeightHeavy      FontWeight = "heavy"
	FontWeightBlack      FontWeight = "black"
)

var fontWeights = []FontWeight{
	FontWeightUltralight, FontWeightThin, FontWeightLight, FontWeightRegular,
	FontWeightMedium, FontWeightSemibold, FontWeightBold, FontWeightHeavy, FontWeightBlack,
}

// FontDesign selects a font family variant.
type FontDesign string

const (
	FontDesignDefault    FontDesign = "default"
	FontDesignMonospaced FontDesign = "monospaced"
	FontDesignRounded    FontDesign = "rounded"
	FontDesignSerif      FontDesign = "serif"
)

var fontDesigns = []FontDesign{FontDesignDefault, FontDesignMonospaced, FontDesignRounded, FontDesignSerif}

// TextStyle is a semantic text size that follows the platform's
// accessibility scaling. When set it takes precedence over fontSize.
type TextStyle string

const (
	TextStyleLargeTitle  TextStyle = "largeTitle"
	TextStyleTitle       TextStyle = "title"
	TextStyleTitle2      TextStyle = "title2"
	TextStyleTitle3      TextStyle = "title3"
	TextStyleHeadline    TextStyle = "headline"
	TextStyleSubheadline TextStyle = "subheadline"
	TextStyleBody        TextStyle = "body"
	TextStyleCallout     TextStyle = "callout"
	TextStyleFootnote    TextStyle = "footnote"
	TextStyleCaption     TextStyle = "caption"
	TextStyleCaption2    TextStyle = "caption2"
)

var textStyles = []TextStyle{
	TextStyleLargeTitle, TextStyleTitle, TextStyleTitle2, TextStyleTitle3,
	TextStyleHeadline, TextStyleSubheadline, TextStyleBody, TextStyleCallout,
	TextStyleFootnote, TextStyleCaption, TextStyleCaption2,
}

// TextAlignment aligns multi-line text.
type TextAlignment string

const (
	TextAlignLeading  TextAlignment = "leading"
	TextAlignCenter   TextAlignment = "center"
	TextAlignTrailing TextAlignment = "trailing"
)

var textAlignments = []TextAlignment{TextAlignLeading, TextAlignCenter, TextAlignTrailing}

// HorizontalAlignment aligns the children of a vertical stack.
type HorizontalAlignment string

const (
	AlignLeading  HorizontalAlignment = "leading"
	AlignCenter   HorizontalAlignment = "center"
	AlignTrailing HorizontalAlignment = "trailing"
)

var horizontalAlignments = []HorizontalAlignment{AlignLeading, AlignCenter, AlignTrailing}

// VerticalAlignment aligns the children of a horizontal stack.
type VerticalAlignment string

const (
	AlignTop            VerticalAlignment = "top"
	AlignVerticalCenter VerticalAlignment = "center"
	AlignBottom         VerticalAlignment = "bottom"
)

var verticalAlignments = []VerticalAlignment{AlignTop, AlignVerticalCenter, AlignBottom}

// ContentMode controls how an image fills its frame.
type ContentMode string

const (
	ContentModeFit  ContentMode = "fit"
	ContentModeFill ContentMode = "fill"
)

var contentModes = []ContentMode{ContentModeFit, ContentModeFill}

// ProgressStyle selects the progress indicator shape.
type ProgressStyle string

const (
	ProgressLinear   ProgressStyle = "linear"
	ProgressCircular ProgressStyle = "circular"
)

var progressStyles = []ProgressStyle{ProgressLinear, ProgressCircular}

// GaugeStyle selects the gauge shape.
type GaugeStyle string

const (
	GaugeCircular GaugeStyle = "circular"
	GaugeLinear   GaugeStyle = "linear"
)

var gaugeStyles = []GaugeStyle{GaugeCircular, GaugeLinear}

// DateStyle selects how a date element renders its timestamp.
type DateStyle string

const (
	DateStyleTime     DateStyle = "time"
	DateStyleDate     DateStyle = "date"
	DateStyleRelative DateStyle = "relative"
	DateStyleOffset   DateStyle = "offset"
	DateStyleTimer    DateStyle = "timer"
)

var dateStyles = []DateStyle{DateStyleTime, DateStyleDate, DateStyleRelative, DateStyleOffset, DateStyleTimer}

// ChartType selects the chart renderer.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartArea ChartType = "area"
	ChartPie  ChartType = "pie"
)

var chartTypes = []ChartType{ChartBar, ChartLine, ChartArea, ChartPie}

// ShapeType names a primitive shape. It is used both by the shape
// element and by the clipShape style attribute.
type ShapeType string

const (
	ShapeCircle    ShapeType = "circle"
	ShapeCapsule   ShapeType = "capsule"
	ShapeRectangle ShapeType = "rectangle"
)

var shapeTypes = []ShapeType{ShapeCircle, ShapeCapsule, ShapeRectangle}

// TimerCounting is the direction a timer runs. Renderers default to down.
type TimerCounting string

const (
	CountUp   TimerCounting = "up"
	CountDown TimerCounting = "down"
)

var timerCountings = []TimerCounting{CountUp, CountDown}

// GradientType selects the gradient geometry.
type GradientType string

const (
	GradientLinear  GradientType = "linear"
	GradientRadial  GradientType = "radial"
	GradientAngular GradientType = "angular"
)

var gradientTypes = []GradientType{GradientLinear, GradientRadial, GradientAngular}

// GradientDirection orients a linear gradient.
type GradientDirection string

const (
	TopToBottom                GradientDirection = "topToBottom"
	BottomToTop                GradientDirection = "bottomToTop"
	LeadingToTrailing          GradientDirection = "leadingToTrailing"
	TrailingToLeading          GradientDirection = "trailingToLeading"
	TopLeadingToBottomTrailing GradientDirection = "topLeadingToBottomTrailing"
	TopTrailingToBottomLeading GradientDirection = "topTrailingToBottomLeading"
)

var gradientDirections = []GradientDirection{
	TopToBottom, BottomToTop, LeadingToTrailing, TrailingToLeading,
	TopLeadingToBottomTrailing, TopTrailingToBottomLeading,
}

// checkEnum rejects a non-empty value outside allowed. The empty value
// means the field was absent.
func checkEnum[T ~string](field string, value T, allowed []T) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return &DecodeError{Path: field, Err: fmt.Errorf("unknown value %q (want one of %v)", string(value), allowed)}
}
