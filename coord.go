// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Coord is a 1-based (column, row) cell coordinate.
type Coord struct {
	Col, Row int
}

// String returns the "B12" form, or the empty string for an invalid Coord.
func (c Coord) String() string {
	s, _ := CellName(c.Col, c.Row)
	return s
}

// ColumnName converts a 1-based column index to its letters:
// 1→"A", 26→"Z", 27→"AA", 703→"AAA".
func ColumnName(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("column %d: %w", n, ErrInvalidArgument)
	}
	s, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "", fmt.Errorf("column %d: %v: %w", n, err, ErrInvalidArgument)
	}
	return s, nil
}

// ColumnNumber is the inverse of ColumnName. It is case-insensitive.
func ColumnNumber(s string) (int, error) {
	if s == "" || !isLetters(s) {
		return 0, fmt.Errorf("column %q: %w", s, ErrInvalidArgument)
	}
	n, err := excelize.ColumnNameToNumber(s)
	if err != nil {
		return 0, fmt.Errorf("column %q: %v: %w", s, err, ErrInvalidArgument)
	}
	return n, nil
}

// CellName returns the "B12" style name of the cell.
func CellName(col, row int) (string, error) {
	if col < 1 || row < 1 {
		return "", fmt.Errorf("cell (%d, %d): %w", col, row, ErrInvalidArgument)
	}
	s, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell (%d, %d): %v: %w", col, row, err, ErrInvalidArgument)
	}
	return s, nil
}

// SplitCellName splits "b12" into ("B", 12).
// The whole string must be letters followed by digits, within XFD1048576.
func SplitCellName(s string) (letters string, row int, err error) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) || !isDigits(s[i:]) {
		return "", 0, fmt.Errorf("cell %q: %w", s, ErrInvalidFormat)
	}
	if row, err = strconv.Atoi(s[i:]); err != nil || row < 1 || row > MaxRowCount {
		return "", 0, fmt.Errorf("cell %q: bad row: %w", s, ErrInvalidFormat)
	}
	letters = strings.ToUpper(s[:i])
	if _, err = excelize.ColumnNameToNumber(letters); err != nil {
		return "", 0, fmt.Errorf("cell %q: %v: %w", s, err, ErrInvalidFormat)
	}
	return letters, row, nil
}

// ParseCell parses "B12" into Coord{Col: 2, Row: 12}.
func ParseCell(s string) (Coord, error) {
	letters, row, err := SplitCellName(s)
	if err != nil {
		return Coord{}, err
	}
	col, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return Coord{}, fmt.Errorf("cell %q: %v: %w", s, err, ErrInvalidFormat)
	}
	return Coord{Col: col, Row: row}, nil
}

// Range is a rectangle of cells, Start is the top-left, End is the
// bottom-right corner.
type Range struct {
	Start, End Coord
}

// NewRange returns the Range spanned by the two corners, in any order.
func NewRange(a, b Coord) Range {
	return Range{
		Start: Coord{Col: min(a.Col, b.Col), Row: min(a.Row, b.Row)},
		End:   Coord{Col: max(a.Col, b.Col), Row: max(a.Row, b.Row)},
	}
}

// SplitRange splits "B1:D2" into its corners, as written.
func SplitRange(s string) (startCol string, startRow int, endCol string, endRow int, err error) {
	first, last, err := splitRange(s)
	if err != nil {
		return "", 0, "", 0, err
	}
	if startCol, startRow, err = SplitCellName(first); err != nil {
		return "", 0, "", 0, fmt.Errorf("range %q: %w", s, err)
	}
	if endCol, endRow, err = SplitCellName(last); err != nil {
		return "", 0, "", 0, fmt.Errorf("range %q: %w", s, err)
	}
	return startCol, startRow, endCol, endRow, nil
}

// ParseRange parses "B1:D2". Inverted corners ("D2:B1") are normalized.
func ParseRange(s string) (Range, error) {
	first, last, err := splitRange(s)
	if err != nil {
		return Range{}, err
	}
	a, err := ParseCell(first)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	b, err := ParseCell(last)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	return NewRange(a, b), nil
}

func splitRange(s string) (string, string, error) {
	first, last, ok := strings.Cut(s, ":")
	if !ok || strings.Contains(last, ":") {
		return "", "", fmt.Errorf("range %q: need exactly one ':': %w", s, ErrInvalidFormat)
	}
	return first, last, nil
}

// String returns the "A1:C5" form.
func (r Range) String() string { return r.Start.String() + ":" + r.End.String() }

// Width is the number of columns.
func (r Range) Width() int { return r.End.Col - r.Start.Col + 1 }

// Height is the number of rows.
func (r Range) Height() int { return r.End.Row - r.Start.Row + 1 }

// Contains reports whether c is inside r.
func (r Range) Contains(c Coord) bool {
	return r.Start.Col <= c.Col && c.Col <= r.End.Col &&
		r.Start.Row <= c.Row && c.Row <= r.End.Row
}

// Each calls fn for every cell, rows outer, columns inner.
// It stops at the first error.
func (r Range) Each(fn func(Coord) error) error {
	for row := r.Start.Row; row <= r.End.Row; row++ {
		for col := r.Start.Col; col <= r.End.Col; col++ {
			if err := fn(Coord{Col: col, Row: row}); err != nil {
				return err
			}
		}
	}
	return nil
}

func isLetter(b byte) bool { return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z') }

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
