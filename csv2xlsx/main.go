// Copyright 2021 Tamas Gulacsi. All rights reserved.

// Command csv2xlsx converts CSV files into the sheets of an xlsx document.
//
//	csv2xlsx [flags] out.xlsx[.gz] [sheet:]in1.csv [sheet:]in2.csv ...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/AureaDraco/ExcelWriter/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (flag=value lines)")
	flagEnc := fs.String("charset", excelwriter.EncName, "csv charset name")
	flagAuthor := fs.String("author", "", "document author")
	flagHeaderFill := fs.String("header-fill", "D9D9D9", "header background color (RRGGBB), empty for none")
	flagBorder := fs.String("border", "thin", "border style around the data, empty for none")
	flagBorderMode := fs.String("border-mode", "outside", "border mode: all or outside")
	flagNoHeader := fs.Bool("no-header", false, "the first row is data, not header")

	app := ffcli.Command{Name: "csv2xlsx", FlagSet: fs,
		ShortUsage: "csv2xlsx [flags] out.xlsx[.gz] [sheet:]in.csv...",
		Options: []ff.Option{
			ff.WithEnvVarPrefix("CSV2XLSX"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithAllowMissingConfigFile(true),
		},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) < 2 {
				return flag.ErrHelp
			}
			enc, err := excelwriter.GetEncoding(*flagEnc)
			if err != nil {
				return err
			}
			logger.Debug("encoding", "name", *flagEnc, "encoding", enc)
			mode, err := excelwriter.ParseBorderMode(*flagBorderMode)
			if err != nil {
				return err
			}
			c := converter{
				Encoding:   *flagEnc,
				HeaderFill: *flagHeaderFill,
				Border:     excelwriter.BorderStyle(*flagBorder),
				BorderMode: mode,
				Header:     !*flagNoHeader,
			}

			var wb *excelwriter.Workbook
			for i, fn := range args[1:] {
				if err := ctx.Err(); err != nil {
					return err
				}
				sheetName := fmt.Sprintf("Sheet%d", i+1)
				if i := strings.IndexByte(fn, ':'); i >= 0 {
					sheetName, fn = fn[:i], fn[i+1:]
				} else if fn != "" && fn != "-" {
					sheetName = strings.TrimSuffix(filepath.Base(fn), ".csv")
				}
				if wb == nil {
					if wb, err = excelwriter.New(xlsx.NewEngine(), sheetName,
						excelwriter.WithAuthor(*flagAuthor),
						excelwriter.WithLogger(logger),
					); err != nil {
						return err
					}
					defer wb.Close()
				} else if err = wb.AddSheet(sheetName); err != nil {
					return err
				}
				if err = c.copyFile(wb, fn); err != nil {
					return fmt.Errorf("%q: %w", fn, err)
				}
			}

			out := args[0]
			if out == "" || out == "-" {
				_, err = wb.WriteTo(os.Stdout)
				return err
			}
			return wb.SaveAs(out)
		},
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

type converter struct {
	Encoding   string
	HeaderFill string
	Border     excelwriter.BorderStyle
	BorderMode excelwriter.BorderMode
	Header     bool
}

// copyFile inserts the CSV into the current sheet of wb, formats its header
// and draws the border around the data.
func (c converter) copyFile(wb *excelwriter.Workbook, fn string) error {
	cr, err := excelwriter.OpenCsv(fn, c.Encoding)
	if err != nil {
		return err
	}
	defer cr.Close()
	rows, err := excelwriter.ReadCsv(cr.Reader)
	if err != nil {
		return err
	}
	if err = wb.InsertData(rows); err != nil {
		return err
	}
	logger.Info("inserted", "sheet", wb.CurrentSheet(), "rows", len(rows))
	if len(rows) == 0 {
		return nil
	}
	if c.Header {
		if err = wb.FormatRow(1, excelwriter.Format{Bold: true, FillColor: c.HeaderFill}); err != nil {
			return err
		}
	}
	if c.Border == "" {
		return nil
	}
	var width int
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil
	}
	last, err := excelwriter.CellName(width, len(rows))
	if err != nil {
		return err
	}
	logger.Debug("border", "range", "A1:"+last, "style", c.Border, "mode", c.BorderMode)
	return wb.SetBorders("A1:"+last, c.BorderMode, c.Border)
}
