// Copyright 2021 Tamas Gulacsi. All rights reserved.

// Package pdf renders the rows of a sheet as a PDF table.
package pdf

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// gridColumns is the width of the maroto grid.
const gridColumns = 12

// Options of Render.
type Options struct {
	// AlternateColor is the background of every second row.
	AlternateColor *Color
	// FontSize of the content; the header is 1.375 times bigger.
	FontSize  float64
	Landscape bool
}

// DefaultOptions returns light gray alternate rows with 8pt font, portrait.
func DefaultOptions() Options {
	return Options{
		AlternateColor: &Color{Color: color.Color{Red: 230, Green: 230, Blue: 230}},
		FontSize:       8,
	}
}

// Render writes rows as a PDF table to w, the first row being the header.
// Rows shorter than the header are padded, longer ones are cut.
func Render(w io.Writer, rows [][]string, opts Options) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("no header: %w", excelwriter.ErrInvalidArgument)
	}
	headers := rows[0]
	if len(headers) > gridColumns {
		return fmt.Errorf("%d columns, at most %d fit: %w", len(headers), gridColumns, excelwriter.ErrInvalidArgument)
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 8
	}
	contents := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := make([]string, len(headers))
		copy(r, row)
		contents = append(contents, r)
	}

	orientation := consts.Portrait
	if opts.Landscape {
		orientation = consts.Landscape
	}
	m := pdf.NewMaroto(orientation, consts.A4)
	gridSize := GridSizes(headers, contents)
	tl := props.TableList{
		HeaderProp: props.TableListContent{
			Family:    consts.Arial,
			Style:     consts.Bold,
			Size:      opts.FontSize * 1.375,
			GridSizes: gridSize,
		},
		ContentProp: props.TableListContent{
			Family:    consts.Courier,
			Style:     consts.Normal,
			Size:      opts.FontSize,
			GridSizes: gridSize,
		},
		Align:              consts.Center,
		HeaderContentSpace: opts.FontSize * 1.2,
		Line:               false,
	}
	if opts.AlternateColor != nil {
		tl.AlternatedBackground = &opts.AlternateColor.Color
	}
	m.TableList(headers, contents, tl)
	buf, err := m.Output()
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// GridSizes distributes the grid columns by the average text width of
// each column, giving every column at least one.
// With more than 12 headers the sizes sum to more than the grid.
func GridSizes(headers []string, contents [][]string) []uint {
	widths := make([]float64, len(headers))
	var total float64
	for i, s := range headers {
		widths[i] = float64(len(s))
	}
	for _, row := range contents {
		for i, s := range row {
			if i < len(widths) {
				widths[i] += float64(len(s))
			}
		}
	}
	for _, w := range widths {
		total += w
	}
	gridSize := make([]uint, len(headers))
	var used uint
	for i, w := range widths {
		g := uint(1)
		if total > 0 {
			g = uint(math.Max(1, math.Floor(w/total*gridColumns)))
		}
		gridSize[i] = g
		used += g
	}
	// hand out the rounding remainder to the widest columns
	for used < gridColumns {
		best := 0
		for i, w := range widths {
			if w/float64(gridSize[i]) > widths[best]/float64(gridSize[best]) {
				best = i
			}
		}
		gridSize[best]++
		used++
	}
	for used > gridColumns {
		best := -1
		for i := range gridSize {
			if gridSize[i] > 1 && (best < 0 || gridSize[i] > gridSize[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		gridSize[best]--
		used--
	}
	return gridSize
}

// Color is an RGB color, parsed from and printed as RRGGBB.
type Color struct {
	color.Color
}

func (c *Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.Red, c.Green, c.Blue)
}

func (c *Color) Parse(s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("color %q: %w: %w", s, excelwriter.ErrInvalidFormat, err)
	}
	if len(b) != 3 {
		return fmt.Errorf("color %q: need RRGGBB: %w", s, excelwriter.ErrInvalidFormat)
	}
	c.Red, c.Green, c.Blue = int(b[0]), int(b[1]), int(b[2])
	return nil
}

// Set implements flag.Value.
func (c *Color) Set(s string) error { return c.Parse(s) }
