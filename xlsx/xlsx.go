// Copyright 2020, 2023 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsx implements excelwriter.Engine with excelize.
package xlsx

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/xuri/excelize/v2"
)

var _ = (excelwriter.Engine)((*Engine)(nil))

// Engine is an xlsx document held in memory.
type Engine struct {
	xl *excelize.File
	// styles maps base style ID + change to the resulting style ID.
	styles map[string]int
}

// NewEngine returns an empty document with one sheet.
//
// Everything is collected in memory, so big sheets may impose problems.
func NewEngine() *Engine {
	return &Engine{xl: excelize.NewFile()}
}

// OpenEngine reads an existing xlsx document.
func OpenEngine(r io.Reader) (*Engine, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Engine{xl: xl}, nil
}

// File returns the underlying excelize file.
func (e *Engine) File() *excelize.File { return e.xl }

func (e *Engine) Close() error {
	if e == nil || e.xl == nil {
		return nil
	}
	xl := e.xl
	e.xl = nil
	return xl.Close()
}

func (e *Engine) WriteTo(w io.Writer) (int64, error) { return e.xl.WriteTo(w) }

func (e *Engine) SheetList() []string { return e.xl.GetSheetList() }

// index returns the index of the sheet, -1 if there is none.
// Sheet titles are case-insensitive in xlsx.
func (e *Engine) index(title string) (int, error) {
	idx, err := e.xl.GetSheetIndex(title)
	if err != nil {
		return -1, fmt.Errorf("%q: %w: %w", title, excelwriter.ErrInvalidArgument, err)
	}
	return idx, nil
}

func (e *Engine) NewSheet(title string) error {
	idx, err := e.index(title)
	if err != nil {
		return err
	}
	if idx != -1 {
		return fmt.Errorf("%q clashes with %q: %w", title, e.xl.GetSheetName(idx), excelwriter.ErrAlreadyExists)
	}
	_, err = e.xl.NewSheet(title)
	return err
}

func (e *Engine) DeleteSheet(title string) error {
	idx, err := e.index(title)
	if err != nil {
		return err
	}
	if idx == -1 {
		return fmt.Errorf("%q: %w", title, excelwriter.ErrNotFound)
	}
	if e.xl.SheetCount == 1 {
		return fmt.Errorf("%q is the only sheet: %w", title, excelwriter.ErrInvalidArgument)
	}
	return e.xl.DeleteSheet(title)
}

func (e *Engine) RenameSheet(oldTitle, newTitle string) error {
	idx, err := e.index(oldTitle)
	if err != nil {
		return err
	}
	if idx == -1 {
		return fmt.Errorf("%q: %w", oldTitle, excelwriter.ErrNotFound)
	}
	other, err := e.index(newTitle)
	if err != nil {
		return err
	}
	if other != -1 && other != idx {
		return fmt.Errorf("%q clashes with %q: %w", newTitle, e.xl.GetSheetName(other), excelwriter.ErrAlreadyExists)
	}
	return e.xl.SetSheetName(e.xl.GetSheetName(idx), newTitle)
}

func (e *Engine) SetActiveSheet(title string) error {
	idx, err := e.index(title)
	if err != nil {
		return err
	}
	if idx == -1 {
		return fmt.Errorf("%q: %w", title, excelwriter.ErrNotFound)
	}
	e.xl.SetActiveSheet(idx)
	return nil
}

func (e *Engine) SetCreator(author string) error {
	return e.xl.SetDocProps(&excelize.DocProperties{Creator: author})
}

// Creator returns the author from the document metadata.
func (e *Engine) Creator() (string, error) {
	props, err := e.xl.GetDocProps()
	if err != nil {
		return "", err
	}
	return props.Creator, nil
}

func (e *Engine) GetCellValue(sheet, cell string) (string, error) {
	return e.xl.GetCellValue(sheet, cell)
}

func (e *Engine) Rows(sheet string) ([][]string, error) { return e.xl.GetRows(sheet) }

func (e *Engine) Extent(sheet string) (rows, cols int, err error) {
	all, err := e.xl.GetRows(sheet)
	if err != nil {
		return 0, 0, err
	}
	for _, row := range all {
		cols = max(cols, len(row))
	}
	return len(all), cols, nil
}

// SetCellValue writes v to the cell.
//
// Dates are written as YYYY-MM-DD strings, sql.Null* and driver.Valuer are
// unwrapped, nil and invalid Null values leave the cell blank.
func (e *Engine) SetCellValue(sheet, cell string, v any) error {
	if v == nil {
		return nil
	}
	if vr, ok := v.(driver.Valuer); ok {
		if vv, err := vr.Value(); err == nil {
			v = vv
		}
	}
	isNil := v == nil
	var err error
	var printed bool
	switch x := v.(type) {
	case time.Time:
		if isNil = x.IsZero(); !isNil {
			err = e.xl.SetCellStr(sheet, cell, x.Format("2006-01-02"))
			printed = true
		}
	case sql.NullTime:
		if x.Valid {
			t := x.Time
			if isNil = t.IsZero(); !isNil {
				err = e.xl.SetCellStr(sheet, cell, t.Format("2006-01-02"))
				printed = true
			}
		} else {
			isNil = true
		}
	case sql.NullFloat64:
		if x.Valid {
			err = e.xl.SetCellFloat(sheet, cell, x.Float64, -1, 64)
			printed = true
		} else {
			isNil = true
		}
	case sql.NullInt64:
		if x.Valid {
			err = e.xl.SetCellInt(sheet, cell, x.Int64)
			printed = true
		} else {
			isNil = true
		}
	case sql.NullString:
		if x.Valid {
			v = x.String
		} else {
			v, isNil = "", true
		}
	case excelwriter.Number:
		if f, perr := strconv.ParseFloat(string(x), 64); perr == nil {
			err = e.xl.SetCellFloat(sheet, cell, f, -1, 64)
			printed = true
		} else {
			v = string(x)
		}
	case fmt.Stringer:
		v = x.String()
	}
	if isNil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, cell, err)
	}
	if printed {
		return nil
	}
	if s, ok := v.(string); ok {
		err = e.xl.SetCellStr(sheet, cell, s)
	} else {
		err = e.xl.SetCellValue(sheet, cell, v)
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, cell, err)
	}
	return nil
}

// SetCellFormat sets font and alignment, and fill if f has a fill color.
// Borders and number format of the cell are kept.
func (e *Engine) SetCellFormat(sheet, cell string, f excelwriter.Format) error {
	key := fmt.Sprintf("fmt\t%+v", f)
	return e.restyle(sheet, cell, key, func(st *excelize.Style) {
		st.Font = &excelize.Font{
			Size:      f.Size,
			Bold:      f.Bold,
			Italic:    f.Italic,
			Underline: f.Underline,
			Color:     f.Color,
		}
		if p := f.FillPattern(); p >= 0 {
			st.Fill = excelize.Fill{Type: "pattern", Pattern: p, Color: []string{f.FillColor}}
		}
		st.Alignment = &excelize.Alignment{
			Horizontal: f.Horizontal,
			Vertical:   f.Vertical,
			WrapText:   f.Wrap,
		}
	})
}

// SetCellBorder replaces the border of the cell.
func (e *Engine) SetCellBorder(sheet, cell string, sides excelwriter.Sides, style excelwriter.BorderStyle) error {
	idx := style.Index()
	if idx == 0 {
		return fmt.Errorf("border style %q: %w", string(style), excelwriter.ErrInvalidArgument)
	}
	var border []excelize.Border
	for _, s := range []struct {
		side excelwriter.Sides
		typ  string
	}{
		{excelwriter.SideLeft, "left"},
		{excelwriter.SideRight, "right"},
		{excelwriter.SideTop, "top"},
		{excelwriter.SideBottom, "bottom"},
	} {
		if sides.Has(s.side) {
			border = append(border, excelize.Border{Type: s.typ, Color: "000000", Style: idx})
		}
	}
	key := "border\t" + sides.String() + "\t" + string(style)
	return e.restyle(sheet, cell, key, func(st *excelize.Style) { st.Border = border })
}

// restyle sets the style of the cell to its current style changed by apply.
// The result is cached by the current style ID and key.
func (e *Engine) restyle(sheet, cell, key string, apply func(*excelize.Style)) error {
	base, err := e.xl.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, cell, err)
	}
	k := strconv.Itoa(base) + "\t" + key
	s, ok := e.styles[k]
	if !ok {
		st, err := e.xl.GetStyle(base)
		if err != nil {
			return fmt.Errorf("style %d: %w", base, err)
		}
		apply(st)
		if s, err = e.xl.NewStyle(st); err != nil {
			return fmt.Errorf("%s[%s] %s: %w", sheet, cell, strings.ReplaceAll(key, "\t", " "), err)
		}
		if e.styles == nil {
			e.styles = make(map[string]int)
		}
		e.styles[k] = s
	}
	return e.xl.SetCellStyle(sheet, cell, cell, s)
}
