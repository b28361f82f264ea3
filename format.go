// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import (
	"fmt"
	"slices"
	"strings"
)

// Format is the font, fill and alignment applied to a cell.
//
// The zero value of a field means its default, see DefaultFormat.
type Format struct {
	// Size is the font size in points.
	Size   float64
	Bold   bool
	Italic bool
	// Underline is "", "none", "single" or "double".
	Underline string
	// Color is the font color as RRGGBB.
	Color string
	// FillType is the fill pattern (see FillPatterns), "solid" if empty.
	FillType string
	// FillColor is the fill color as RRGGBB. No fill is set when empty.
	FillColor  string
	Horizontal string
	Vertical   string
	Wrap       bool
}

const (
	DefaultFontSize   = 11
	DefaultFontColor  = "000000"
	DefaultHorizontal = "general"
	DefaultVertical   = "bottom"
	// MaxFontSize is the largest font size xlsx accepts.
	MaxFontSize = 409
)

// DefaultFormat returns the Format with every default filled in.
func DefaultFormat() Format {
	return Format{
		Size:       DefaultFontSize,
		Color:      DefaultFontColor,
		Horizontal: DefaultHorizontal,
		Vertical:   DefaultVertical,
	}
}

// FillPatterns lists the fill pattern names in xlsx order; the index is the
// xlsx pattern number.
var FillPatterns = []string{
	"none", "solid", "mediumGray", "darkGray", "lightGray",
	"darkHorizontal", "darkVertical", "darkDown", "darkUp", "darkGrid",
	"darkTrellis", "lightHorizontal", "lightVertical", "lightDown", "lightUp",
	"lightGrid", "lightTrellis", "gray125", "gray0625",
}

var (
	underlines  = []string{"none", "single", "double"}
	horizontals = []string{"general", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}
	verticals   = []string{"top", "center", "bottom", "justify", "distributed"}
)

// FillPattern returns the xlsx pattern number, -1 if there is no fill.
func (f Format) FillPattern() int {
	if f.FillColor == "" {
		return -1
	}
	if f.FillType == "" {
		return 1
	}
	return slices.Index(FillPatterns, f.FillType)
}

// Normalize fills in the defaults and checks every enumerated field.
func (f Format) Normalize() (Format, error) {
	if f.Size == 0 {
		f.Size = DefaultFontSize
	} else if f.Size < 0 || f.Size > MaxFontSize {
		return f, fmt.Errorf("font size %v: %w", f.Size, ErrInvalidArgument)
	}
	if f.Underline == "none" {
		f.Underline = ""
	} else if f.Underline != "" && !slices.Contains(underlines, f.Underline) {
		return f, fmt.Errorf("underline %q: %w", f.Underline, ErrInvalidArgument)
	}
	var err error
	if f.Color == "" {
		f.Color = DefaultFontColor
	} else if f.Color, err = normalizeColor(f.Color); err != nil {
		return f, fmt.Errorf("font color: %w", err)
	}
	if f.FillColor != "" {
		if f.FillColor, err = normalizeColor(f.FillColor); err != nil {
			return f, fmt.Errorf("fill color: %w", err)
		}
	}
	if f.FillType != "" && !slices.Contains(FillPatterns, f.FillType) {
		return f, fmt.Errorf("fill type %q: %w", f.FillType, ErrInvalidArgument)
	}
	if f.Horizontal == "" {
		f.Horizontal = DefaultHorizontal
	} else if !slices.Contains(horizontals, f.Horizontal) {
		return f, fmt.Errorf("horizontal alignment %q: %w", f.Horizontal, ErrInvalidArgument)
	}
	if f.Vertical == "" {
		f.Vertical = DefaultVertical
	} else if !slices.Contains(verticals, f.Vertical) {
		return f, fmt.Errorf("vertical alignment %q: %w", f.Vertical, ErrInvalidArgument)
	}
	return f, nil
}

// normalizeColor accepts RRGGBB or AARRGGBB, with an optional leading '#',
// and returns upper-case RRGGBB.
func normalizeColor(s string) (string, error) {
	c := strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return "", fmt.Errorf("color %q: %w", s, ErrInvalidArgument)
	}
	for i := 0; i < len(c); i++ {
		if !('0' <= c[i] && c[i] <= '9' || 'A' <= c[i] && c[i] <= 'F') {
			return "", fmt.Errorf("color %q: %w", s, ErrInvalidArgument)
		}
	}
	return c, nil
}

// ParseFormat converts the short-key map form into a normalized Format.
//
// Recognized keys: sz, b, i, u, color, fill_type, fill, horizontal,
// vertical, wrap. Other keys are ignored; a nil value means the default.
func ParseFormat(m map[string]any) (Format, error) {
	var f Format
	for k, v := range m {
		if v == nil {
			continue
		}
		var err error
		switch k {
		case "sz":
			f.Size, err = toFloat(v)
		case "b":
			f.Bold, err = toBool(v)
		case "i":
			f.Italic, err = toBool(v)
		case "wrap":
			f.Wrap, err = toBool(v)
		case "u":
			f.Underline, err = toString(v)
		case "color":
			f.Color, err = toString(v)
		case "fill_type":
			f.FillType, err = toString(v)
		case "fill":
			f.FillColor, err = toString(v)
		case "horizontal":
			f.Horizontal, err = toString(v)
		case "vertical":
			f.Vertical, err = toString(v)
		default:
			continue
		}
		if err != nil {
			return f, fmt.Errorf("format option %q: %w", k, err)
		}
	}
	return f.Normalize()
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%T is not a number: %w", v, ErrInvalidArgument)
}

func toBool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%T is not a bool: %w", v, ErrInvalidArgument)
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", fmt.Errorf("%T is not a string: %w", v, ErrInvalidArgument)
}
