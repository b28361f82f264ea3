// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package excelwriter builds spreadsheet documents in memory: sheets are
// added, renamed and removed through a Workbook, data is written in blocks
// and cells, rows, columns and ranges are formatted, then the whole thing is
// written out by an Engine.
package excelwriter

import (
	"errors"
	"fmt"
	"io"
)

// Engine is the spreadsheet file engine a Workbook delegates to.
//
// A fresh Engine has exactly one sheet.
// Cells are addressed by their "A1" style name.
type Engine interface {
	io.WriterTo
	io.Closer

	// SheetList returns the sheet titles in workbook order.
	SheetList() []string
	NewSheet(title string) error
	DeleteSheet(title string) error
	RenameSheet(oldTitle, newTitle string) error
	SetActiveSheet(title string) error
	// SetCreator sets the author in the document metadata.
	SetCreator(author string) error

	SetCellValue(sheet, cell string, value any) error
	GetCellValue(sheet, cell string) (string, error)
	// Rows returns the used part of the sheet as formatted strings.
	Rows(sheet string) ([][]string, error)
	// Extent returns the number of used rows and columns.
	Extent(sheet string) (rows, cols int, err error)

	// SetCellFormat replaces font and alignment of the cell, and its fill
	// if f has a fill color. The border is kept.
	SetCellFormat(sheet, cell string, f Format) error
	// SetCellBorder replaces the border of the cell with the given sides,
	// keeping everything else.
	SetCellBorder(sheet, cell string, sides Sides, style BorderStyle) error
}

var (
	// ErrInvalidArgument is returned for out-of-domain parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidFormat is returned for malformed cell and range strings.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrAlreadyExists is returned when a sheet title is taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotFound is returned when a sheet title does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned for rows and columns beyond the used extent.
	ErrIndexOutOfRange = errors.New("index out of range")

	ErrTooManyRows = errors.New("too many rows")
	// ErrClosed is returned by the methods of a closed Workbook.
	ErrClosed = errors.New("workbook is closed")
)

// MaxRowCount is the number of maximum rows.
const MaxRowCount = 1_048_576

// SheetError records a failed sheet registry operation.
type SheetError struct {
	Op    string
	Title string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s sheet %q: %v", e.Op, e.Title, e.Err)
}

func (e *SheetError) Unwrap() error { return e.Err }

// Number is a string that contains a number.
type Number string
