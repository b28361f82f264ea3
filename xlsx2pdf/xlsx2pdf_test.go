// Copyright 2021 Tamas Gulacsi. All rights reserved.

package main

import (
	"testing"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/AureaDraco/ExcelWriter/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSheet(t *testing.T) {
	eng := xlsx.NewEngine()
	defer eng.Close()
	require.NoError(t, eng.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, eng.SetCellValue("Sheet1", "A2", "apple"))
	require.NoError(t, eng.NewSheet("Empty"))

	rows, err := readSheet(eng, "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name"}, {"apple"}}, rows)

	_, err = readSheet(eng, "Empty")
	assert.ErrorIs(t, err, excelwriter.ErrInvalidArgument)
	assert.NotErrorIs(t, err, excelwriter.ErrNotFound)
	assert.ErrorContains(t, err, "empty sheet")

	_, err = readSheet(eng, "Missing")
	assert.ErrorIs(t, err, excelwriter.ErrNotFound)

	_, err = readSheet(eng, "a/b")
	assert.ErrorIs(t, err, excelwriter.ErrInvalidArgument)
}
