// Copyright 2020, 2023 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx_test

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/AureaDraco/ExcelWriter/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newEngine(t *testing.T) *xlsx.Engine {
	t.Helper()
	e := xlsx.NewEngine()
	t.Cleanup(func() { e.Close() })
	return e
}

func TestSetCellValue(t *testing.T) {
	e := newEngine(t)
	const sheet = "Sheet1"
	for cell, tc := range map[string]struct {
		v    any
		want string
	}{
		"A1": {"text", "text"},
		"A2": {3, "3"},
		"A3": {2.5, "2.5"},
		"A4": {true, "TRUE"},
		"A5": {time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC), "2024-02-29"},
		"A6": {time.Time{}, ""},
		"A7": {sql.NullString{String: "x", Valid: true}, "x"},
		"A8": {sql.NullString{String: "x"}, ""},
		"A9": {sql.NullInt64{Int64: 7, Valid: true}, "7"},
		"B1": {sql.NullFloat64{Float64: 0.25, Valid: true}, "0.25"},
		"B2": {sql.NullTime{}, ""},
		"B3": {excelwriter.Number("12.50"), "12.5"},
		"B4": {excelwriter.Number("n/a"), "n/a"},
		"B5": {nil, ""},
		"B6": {excelwriter.Coord{Col: 3, Row: 4}, "C4"},
	} {
		require.NoError(t, e.SetCellValue(sheet, cell, tc.v), cell)
		got, err := e.GetCellValue(sheet, cell)
		require.NoError(t, err, cell)
		assert.Equal(t, tc.want, got, cell)
	}
}

func TestSetCellValue_NumberIsNumeric(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.SetCellValue("Sheet1", "A1", excelwriter.Number("1e3")))
	typ, err := e.File().GetCellType("Sheet1", "A1")
	require.NoError(t, err)
	assert.NotContains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, typ)
	got, err := e.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "1000", got)
}

func TestExtent(t *testing.T) {
	e := newEngine(t)
	rows, cols, err := e.Extent("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)

	require.NoError(t, e.SetCellValue("Sheet1", "A1", "a"))
	require.NoError(t, e.SetCellValue("Sheet1", "D3", "d"))
	rows, cols, err = e.Extent("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)

	_, _, err = e.Extent("nope")
	assert.Error(t, err)
}

func TestSheets(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.NewSheet("Data"))
	assert.ErrorIs(t, e.NewSheet("DATA"), excelwriter.ErrAlreadyExists)
	assert.ErrorIs(t, e.NewSheet("a?b"), excelwriter.ErrInvalidArgument)
	assert.Equal(t, []string{"Sheet1", "Data"}, e.SheetList())

	assert.ErrorIs(t, e.RenameSheet("Data", "sheet1"), excelwriter.ErrAlreadyExists)
	assert.ErrorIs(t, e.RenameSheet("Nope", "X"), excelwriter.ErrNotFound)
	require.NoError(t, e.RenameSheet("data", "Report"))
	assert.Equal(t, []string{"Sheet1", "Report"}, e.SheetList())

	require.NoError(t, e.SetActiveSheet("Report"))
	assert.Equal(t, 1, e.File().GetActiveSheetIndex())
	assert.ErrorIs(t, e.SetActiveSheet("Nope"), excelwriter.ErrNotFound)

	assert.ErrorIs(t, e.DeleteSheet("Nope"), excelwriter.ErrNotFound)
	require.NoError(t, e.DeleteSheet("Sheet1"))
	assert.Equal(t, []string{"Report"}, e.SheetList())
	assert.ErrorIs(t, e.DeleteSheet("Report"), excelwriter.ErrInvalidArgument)
}

func TestSetCellBorder(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.SetCellBorder("Sheet1", "B2", excelwriter.SideLeft|excelwriter.SideBottom, excelwriter.BorderDashed))
	id, err := e.File().GetCellStyle("Sheet1", "B2")
	require.NoError(t, err)
	st, err := e.File().GetStyle(id)
	require.NoError(t, err)
	require.Len(t, st.Border, 2)
	for _, b := range st.Border {
		assert.Contains(t, []string{"left", "bottom"}, b.Type)
		assert.Equal(t, excelwriter.BorderDashed.Index(), b.Style)
		assert.Equal(t, "000000", b.Color)
	}

	assert.ErrorIs(t, e.SetCellBorder("Sheet1", "B2", excelwriter.AllSides, "wiggly"), excelwriter.ErrInvalidArgument)
}

func TestSetCellFormat_StyleReuse(t *testing.T) {
	e := newEngine(t)
	f, err := excelwriter.Format{Bold: true, FillColor: "CCCCCC"}.Normalize()
	require.NoError(t, err)
	for _, cell := range []string{"A1", "B1", "C1"} {
		require.NoError(t, e.SetCellFormat("Sheet1", cell, f))
	}
	a, err := e.File().GetCellStyle("Sheet1", "A1")
	require.NoError(t, err)
	c, err := e.File().GetCellStyle("Sheet1", "C1")
	require.NoError(t, err)
	assert.NotZero(t, a)
	assert.Equal(t, a, c)
}

func TestOpenEngine(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.SetCreator("me"))
	require.NoError(t, e.SetCellValue("Sheet1", "A1", "x"))
	var buf bytes.Buffer
	_, err := e.WriteTo(&buf)
	require.NoError(t, err)

	o, err := xlsx.OpenEngine(&buf)
	require.NoError(t, err)
	defer o.Close()
	rows, err := o.Rows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}}, rows)
	creator, err := o.Creator()
	require.NoError(t, err)
	assert.Equal(t, "me", creator)

	_, err = xlsx.OpenEngine(bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}
