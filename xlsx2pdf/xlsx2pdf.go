// Copyright 2021 Tamas Gulacsi. All rights reserved.

// Command xlsx2pdf renders a sheet of an xlsx document as a PDF table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	excelwriter "github.com/AureaDraco/ExcelWriter"
	"github.com/AureaDraco/ExcelWriter/pdf"
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
	opts := pdf.DefaultOptions()

	fs := flag.NewFlagSet("xlsx2pdf", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagOut := fs.String("o", "", "output file name (default input file + .pdf)")
	flagSheet := fs.String("sheet", "", "sheet to render (default: the active one)")
	fs.Var(opts.AlternateColor, "alternate-color", "alternate row color")
	fs.BoolVar(&opts.Landscape, "L", false, "landscape orientation (default: portrait)")
	fs.Float64Var(&opts.FontSize, "f", 8, "font size")

	app := ffcli.Command{Name: "xlsx2pdf", FlagSet: fs,
		ShortUsage: "xlsx2pdf [flags] in.xlsx",
		Options:    []ff.Option{ff.WithEnvVarPrefix("XLSX2PDF")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return flag.ErrHelp
			}
			fh := os.Stdin
			if args[0] != "" && args[0] != "-" {
				var err error
				if fh, err = os.Open(args[0]); err != nil {
					return err
				}
				defer fh.Close()
			}
			eng, err := xlsx.OpenEngine(fh)
			if err != nil {
				return err
			}
			defer eng.Close()

			rows, err := readSheet(eng, *flagSheet)
			if err != nil {
				return err
			}

			out := *flagOut
			if out == "" &&
				len(args) != 0 && args[0] != "" && args[0] != "-" {
				out = strings.TrimSuffix(args[0], ".xlsx") + ".pdf"
			}
			if out == "" || out == "-" {
				return pdf.Render(os.Stdout, rows, opts)
			}
			w, err := os.Create(out)
			if err != nil {
				return err
			}
			defer w.Close()
			if err = pdf.Render(w, rows, opts); err != nil {
				return err
			}
			return w.Close()
		},
	}

	args := make([]string, 0, len(os.Args))
	for _, a := range os.Args[1:] {
		if strings.HasPrefix(a, "-f") && len(a) > 2 && '0' <= a[2] && a[2] <= '9' {
			args = append(args, "-f", a[2:])
		} else {
			args = append(args, a)
		}
	}
	logger.Debug("args", "original", os.Args[1:], "fixed", args)
	if err := app.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

// readSheet returns the rows of the named sheet, or of the active one if
// sheet is empty.
func readSheet(eng *xlsx.Engine, sheet string) ([][]string, error) {
	xl := eng.File()
	if sheet == "" {
		sheet = xl.GetSheetName(xl.GetActiveSheetIndex())
	}
	if idx, err := xl.GetSheetIndex(sheet); err != nil {
		return nil, &excelwriter.SheetError{Op: "render", Title: sheet, Err: fmt.Errorf("%w: %w", excelwriter.ErrInvalidArgument, err)}
	} else if idx == -1 {
		return nil, &excelwriter.SheetError{Op: "render", Title: sheet, Err: excelwriter.ErrNotFound}
	}
	rows, err := eng.Rows(sheet)
	if err != nil {
		return nil, err
	}
	logger.Debug("read", "sheet", sheet, "rows", len(rows))
	if len(rows) == 0 {
		return nil, &excelwriter.SheetError{Op: "render", Title: sheet, Err: fmt.Errorf("empty sheet: %w", excelwriter.ErrInvalidArgument)}
	}
	return rows, nil
}
