// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import (
	"fmt"
	"log/slog"
	"slices"
)

// Workbook keeps track of the sheets of a document and writes data and
// formatting to the current sheet through its Engine.
//
// A Workbook is not safe for concurrent use.
type Workbook struct {
	eng      Engine
	logger   *slog.Logger
	filename string
	sheets   map[string]struct{}
	current  string
}

// New returns a Workbook with a single sheet named title.
func New(eng Engine, title string, opts ...Option) (*Workbook, error) {
	if eng == nil {
		return nil, fmt.Errorf("nil engine: %w", ErrInvalidArgument)
	}
	if title == "" {
		return nil, &SheetError{Op: "create", Title: title, Err: fmt.Errorf("empty title: %w", ErrInvalidArgument)}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	list := eng.SheetList()
	if len(list) != 1 {
		return nil, fmt.Errorf("engine has %d sheets, wanted 1: %w", len(list), ErrInvalidArgument)
	}
	if list[0] != title {
		if err := eng.RenameSheet(list[0], title); err != nil {
			return nil, &SheetError{Op: "create", Title: title, Err: err}
		}
	}
	if o.author != "" {
		if err := eng.SetCreator(o.author); err != nil {
			return nil, fmt.Errorf("set author %q: %w", o.author, err)
		}
	}
	wb := &Workbook{
		eng:      eng,
		logger:   o.logger,
		filename: o.filename,
		sheets:   map[string]struct{}{title: {}},
		current:  title,
	}
	wb.logger.Debug("new workbook", "title", title, "author", o.author)
	return wb, nil
}

// Engine returns the underlying engine.
func (wb *Workbook) Engine() Engine { return wb.eng }

// Sheets returns the sheet titles in workbook order.
func (wb *Workbook) Sheets() []string {
	if wb.eng == nil {
		return nil
	}
	list := wb.eng.SheetList()
	return slices.DeleteFunc(list, func(s string) bool { return !wb.HasSheet(s) })
}

// SheetCount returns the number of sheets.
func (wb *Workbook) SheetCount() int { return len(wb.sheets) }

// HasSheet reports whether a sheet titled title exists. Titles are case-sensitive.
func (wb *Workbook) HasSheet(title string) bool {
	_, ok := wb.sheets[title]
	return ok
}

// CurrentSheet returns the title of the sheet data and formatting go to.
func (wb *Workbook) CurrentSheet() string { return wb.current }

// AddSheet creates a new sheet and makes it the current one.
func (wb *Workbook) AddSheet(title string) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if wb.HasSheet(title) {
		return &SheetError{Op: "add", Title: title, Err: ErrAlreadyExists}
	}
	if err := wb.eng.NewSheet(title); err != nil {
		return &SheetError{Op: "add", Title: title, Err: err}
	}
	wb.sheets[title] = struct{}{}
	if err := wb.activate(title); err != nil {
		return &SheetError{Op: "add", Title: title, Err: err}
	}
	wb.logger.Debug("add sheet", "title", title, "count", len(wb.sheets))
	return nil
}

// RemoveSheet deletes the sheet.
//
// If it was the current sheet, the first remaining sheet becomes current.
// The last sheet cannot be removed.
func (wb *Workbook) RemoveSheet(title string) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if !wb.HasSheet(title) {
		return &SheetError{Op: "remove", Title: title, Err: ErrNotFound}
	}
	if len(wb.sheets) == 1 {
		return &SheetError{Op: "remove", Title: title, Err: fmt.Errorf("the only sheet: %w", ErrInvalidArgument)}
	}
	if err := wb.eng.DeleteSheet(title); err != nil {
		return &SheetError{Op: "remove", Title: title, Err: err}
	}
	delete(wb.sheets, title)
	if wb.current == title {
		if err := wb.activate(wb.Sheets()[0]); err != nil {
			return &SheetError{Op: "remove", Title: title, Err: err}
		}
	}
	wb.logger.Debug("remove sheet", "title", title, "count", len(wb.sheets), "current", wb.current)
	return nil
}

// RenameSheet renames oldTitle to newTitle. The current sheet follows the rename.
func (wb *Workbook) RenameSheet(oldTitle, newTitle string) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if !wb.HasSheet(oldTitle) {
		return &SheetError{Op: "rename", Title: oldTitle, Err: ErrNotFound}
	}
	if oldTitle == newTitle {
		return nil
	}
	if wb.HasSheet(newTitle) {
		return &SheetError{Op: "rename", Title: oldTitle, Err: fmt.Errorf("%q: %w", newTitle, ErrAlreadyExists)}
	}
	if err := wb.eng.RenameSheet(oldTitle, newTitle); err != nil {
		return &SheetError{Op: "rename", Title: oldTitle, Err: err}
	}
	delete(wb.sheets, oldTitle)
	wb.sheets[newTitle] = struct{}{}
	if wb.current == oldTitle {
		wb.current = newTitle
	}
	wb.logger.Debug("rename sheet", "old", oldTitle, "new", newTitle)
	return nil
}

// SetCurrentSheet makes title the current sheet.
func (wb *Workbook) SetCurrentSheet(title string) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if !wb.HasSheet(title) {
		return &SheetError{Op: "select", Title: title, Err: ErrNotFound}
	}
	if err := wb.activate(title); err != nil {
		return &SheetError{Op: "select", Title: title, Err: err}
	}
	return nil
}

// activate sets the current sheet, and the active sheet of the engine, so
// the saved document opens on it. The current sheet is set even if the
// engine fails.
func (wb *Workbook) activate(title string) error {
	wb.current = title
	if err := wb.eng.SetActiveSheet(title); err != nil {
		return fmt.Errorf("set active sheet: %w", err)
	}
	return nil
}

// FormatCell applies f to the cell of the current sheet.
func (wb *Workbook) FormatCell(cell string, f Format) error {
	if wb.eng == nil {
		return ErrClosed
	}
	c, err := ParseCell(cell)
	if err != nil {
		return err
	}
	if f, err = f.Normalize(); err != nil {
		return err
	}
	return wb.formatCell(c, f)
}

func (wb *Workbook) formatCell(c Coord, f Format) error {
	name := c.String()
	if err := wb.eng.SetCellFormat(wb.current, name, f); err != nil {
		return fmt.Errorf("%s[%s]: %w", wb.current, name, err)
	}
	return nil
}

// FormatRow applies f to every used cell of the 1-based row.
func (wb *Workbook) FormatRow(row int, f Format) error {
	if wb.eng == nil {
		return ErrClosed
	}
	f, err := f.Normalize()
	if err != nil {
		return err
	}
	rows, cols, err := wb.eng.Extent(wb.current)
	if err != nil {
		return fmt.Errorf("%s: %w", wb.current, err)
	}
	if row < 1 || row > rows {
		return fmt.Errorf("%s: row %d of %d: %w", wb.current, row, rows, ErrIndexOutOfRange)
	}
	return NewRange(Coord{Col: 1, Row: row}, Coord{Col: cols, Row: row}).Each(func(c Coord) error {
		return wb.formatCell(c, f)
	})
}

// FormatColumn applies f to every used cell of the column given by its letters.
func (wb *Workbook) FormatColumn(column string, f Format) error {
	if wb.eng == nil {
		return ErrClosed
	}
	col, err := ColumnNumber(column)
	if err != nil {
		return err
	}
	if f, err = f.Normalize(); err != nil {
		return err
	}
	rows, cols, err := wb.eng.Extent(wb.current)
	if err != nil {
		return fmt.Errorf("%s: %w", wb.current, err)
	}
	if col > cols {
		return fmt.Errorf("%s: column %s of %d: %w", wb.current, column, cols, ErrIndexOutOfRange)
	}
	return NewRange(Coord{Col: col, Row: 1}, Coord{Col: col, Row: rows}).Each(func(c Coord) error {
		return wb.formatCell(c, f)
	})
}

// FormatRange applies f to every cell of the range, like "B1:D2".
func (wb *Workbook) FormatRange(rng string, f Format) error {
	if wb.eng == nil {
		return ErrClosed
	}
	r, err := ParseRange(rng)
	if err != nil {
		return err
	}
	if f, err = f.Normalize(); err != nil {
		return err
	}
	return r.Each(func(c Coord) error { return wb.formatCell(c, f) })
}

// SetBorders draws borders of the given style on the range.
func (wb *Workbook) SetBorders(rng string, mode BorderMode, style BorderStyle) error {
	if wb.eng == nil {
		return ErrClosed
	}
	r, err := ParseRange(rng)
	if err != nil {
		return err
	}
	if err = style.Validate(); err != nil {
		return err
	}
	var sidesOf func(Coord) Sides
	switch mode {
	case BorderAll:
		sidesOf = func(Coord) Sides { return AllSides }
	case BorderOutside:
		sidesOf = func(c Coord) Sides { return Classify(r, c).Sides() }
	default:
		return fmt.Errorf("border mode %s: %w", mode, ErrInvalidArgument)
	}
	return r.Each(func(c Coord) error {
		sides := sidesOf(c)
		if sides == NoSides {
			return nil
		}
		name := c.String()
		if err := wb.eng.SetCellBorder(wb.current, name, sides, style); err != nil {
			return fmt.Errorf("%s[%s]: %w", wb.current, name, err)
		}
		return nil
	})
}

// InsertData writes rows into the current sheet starting at A1.
func (wb *Workbook) InsertData(rows [][]any) error { return wb.InsertDataAt(rows, 1, 1) }

// InsertDataAt writes rows into the current sheet, rows[i][j] going to
// row rowOffset+i, column colOffset+j. Rows may have different lengths.
func (wb *Workbook) InsertDataAt(rows [][]any, rowOffset, colOffset int) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if rowOffset < 1 || colOffset < 1 {
		return fmt.Errorf("offset (%d, %d): %w", rowOffset, colOffset, ErrInvalidArgument)
	}
	if len(rows) == 0 {
		return nil
	}
	if last := rowOffset + len(rows) - 1; last > MaxRowCount {
		return fmt.Errorf("%s: row %d: %w", wb.current, last, ErrTooManyRows)
	}
	var width int
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width != 0 {
		if _, err := ColumnName(colOffset + width - 1); err != nil {
			return err
		}
	}
	for i, row := range rows {
		for j, v := range row {
			name, err := CellName(colOffset+j, rowOffset+i)
			if err != nil {
				return err
			}
			if err = wb.eng.SetCellValue(wb.current, name, v); err != nil {
				return fmt.Errorf("%s[%s]: %w", wb.current, name, err)
			}
		}
	}
	wb.logger.Debug("insert data", "sheet", wb.current, "rows", len(rows), "at", Coord{Col: colOffset, Row: rowOffset})
	return nil
}

// CellValue returns the formatted value of the cell of the current sheet.
func (wb *Workbook) CellValue(cell string) (string, error) {
	if wb.eng == nil {
		return "", ErrClosed
	}
	if _, err := ParseCell(cell); err != nil {
		return "", err
	}
	return wb.eng.GetCellValue(wb.current, cell)
}

// Rows returns the used cells of the sheet as formatted strings.
func (wb *Workbook) Rows(title string) ([][]string, error) {
	if wb.eng == nil {
		return nil, ErrClosed
	}
	if !wb.HasSheet(title) {
		return nil, &SheetError{Op: "read", Title: title, Err: ErrNotFound}
	}
	return wb.eng.Rows(title)
}

// Close releases the resources of the engine.
// Afterwards the other methods return ErrClosed.
func (wb *Workbook) Close() error {
	if wb == nil || wb.eng == nil {
		return nil
	}
	eng := wb.eng
	wb.eng = nil
	return eng.Close()
}
