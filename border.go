// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import (
	"fmt"
	"strings"
)

// Sides is a set of cell border sides.
type Sides uint8

const (
	SideLeft Sides = 1 << iota
	SideRight
	SideTop
	SideBottom

	NoSides  Sides = 0
	AllSides       = SideLeft | SideRight | SideTop | SideBottom
)

// Has reports whether all of o is in s.
func (s Sides) Has(o Sides) bool { return s&o == o }

func (s Sides) String() string {
	if s == NoSides {
		return "none"
	}
	var parts []string
	for _, x := range []struct {
		side Sides
		name string
	}{{SideLeft, "left"}, {SideRight, "right"}, {SideTop, "top"}, {SideBottom, "bottom"}} {
		if s.Has(x.side) {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "+")
}

// Position is where a cell sits inside a Range.
type Position uint8

const (
	Interior Position = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	TopEdge
	LeftEdge
	BottomEdge
	RightEdge
)

var positionNames = [...]string{
	Interior:    "interior",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
	TopEdge:     "top",
	LeftEdge:    "left",
	BottomEdge:  "bottom",
	RightEdge:   "right",
}

func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// Sides returns the border sides drawn for p in outside mode.
func (p Position) Sides() Sides {
	switch p {
	case TopLeft:
		return SideLeft | SideTop
	case TopRight:
		return SideRight | SideTop
	case BottomLeft:
		return SideLeft | SideBottom
	case BottomRight:
		return SideRight | SideBottom
	case TopEdge:
		return SideTop
	case LeftEdge:
		return SideLeft
	case BottomEdge:
		return SideBottom
	case RightEdge:
		return SideRight
	default:
		return NoSides
	}
}

// Classify returns the position of c in r.
//
// Corners win over edges and are tried in the order top-left, top-right,
// bottom-left, bottom-right, so a single-cell range is TopLeft.
func Classify(r Range, c Coord) Position {
	top, bottom := c.Row == r.Start.Row, c.Row == r.End.Row
	left, right := c.Col == r.Start.Col, c.Col == r.End.Col
	switch {
	case top && left:
		return TopLeft
	case top && right:
		return TopRight
	case bottom && left:
		return BottomLeft
	case bottom && right:
		return BottomRight
	case top:
		return TopEdge
	case left:
		return LeftEdge
	case bottom:
		return BottomEdge
	case right:
		return RightEdge
	}
	return Interior
}

// BorderMode selects which cells of a range get a border.
type BorderMode uint8

const (
	// BorderAll draws all four sides of every cell.
	BorderAll BorderMode = iota
	// BorderOutside draws only the outline of the range.
	BorderOutside
)

func (m BorderMode) String() string {
	switch m {
	case BorderAll:
		return "all"
	case BorderOutside:
		return "outside"
	}
	return fmt.Sprintf("BorderMode(%d)", uint8(m))
}

// ParseBorderMode parses "all" or "outside".
func ParseBorderMode(s string) (BorderMode, error) {
	switch s {
	case "all":
		return BorderAll, nil
	case "outside":
		return BorderOutside, nil
	}
	return 0, fmt.Errorf("%q is not a valid border type: %w", s, ErrInvalidArgument)
}

// BorderStyle is the line style of a border side.
type BorderStyle string

const (
	BorderThin             BorderStyle = "thin"
	BorderMedium           BorderStyle = "medium"
	BorderDashed           BorderStyle = "dashed"
	BorderDotted           BorderStyle = "dotted"
	BorderThick            BorderStyle = "thick"
	BorderDouble           BorderStyle = "double"
	BorderHair             BorderStyle = "hair"
	BorderMediumDashed     BorderStyle = "mediumDashed"
	BorderDashDot          BorderStyle = "dashDot"
	BorderMediumDashDot    BorderStyle = "mediumDashDot"
	BorderDashDotDot       BorderStyle = "dashDotDot"
	BorderMediumDashDotDot BorderStyle = "mediumDashDotDot"
	BorderSlantDashDot     BorderStyle = "slantDashDot"
)

// BorderStyles lists the valid styles in xlsx order; index+1 is the xlsx
// style number (0 is "none").
var BorderStyles = []BorderStyle{
	BorderThin, BorderMedium, BorderDashed, BorderDotted, BorderThick,
	BorderDouble, BorderHair, BorderMediumDashed, BorderDashDot,
	BorderMediumDashDot, BorderDashDotDot, BorderMediumDashDotDot,
	BorderSlantDashDot,
}

// Index returns the xlsx style number of s, or 0 if s is unknown.
func (s BorderStyle) Index() int {
	for i, x := range BorderStyles {
		if x == s {
			return i + 1
		}
	}
	return 0
}

// Validate returns ErrInvalidArgument for an unknown style.
func (s BorderStyle) Validate() error {
	if s.Index() == 0 {
		return fmt.Errorf("border style %q: %w", string(s), ErrInvalidArgument)
	}
	return nil
}
