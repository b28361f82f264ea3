// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteTo writes the document to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	if wb.eng == nil {
		return 0, ErrClosed
	}
	return wb.eng.WriteTo(w)
}

// Save writes the document to the file given by WithFilename.
func (wb *Workbook) Save() error { return wb.SaveAs(wb.filename) }

// SaveAs writes the document to the named file.
//
// The file is replaced only after the whole document has been written.
// A ".gz" suffix compresses the output with gzip.
// A new file gets mode 0644, an existing one keeps its mode.
func (wb *Workbook) SaveAs(name string) error {
	if wb.eng == nil {
		return ErrClosed
	}
	if name == "" {
		return fmt.Errorf("empty file name: %w", ErrInvalidArgument)
	}
	fh, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(fh.Name())
	defer fh.Close()

	w := io.Writer(fh)
	var gw *gzip.Writer
	if strings.HasSuffix(name, ".gz") {
		gw = gzip.NewWriter(fh)
		gw.Name = strings.TrimSuffix(filepath.Base(name), ".gz")
		w = gw
	}
	n, err := wb.eng.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	if gw != nil {
		if err = gw.Close(); err != nil {
			return fmt.Errorf("compress %q: %w", name, err)
		}
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(name); err == nil {
		mode = fi.Mode().Perm()
	}
	if err = fh.Chmod(mode); err != nil {
		return err
	}
	if err = fh.Sync(); err != nil {
		return err
	}
	if err = fh.Close(); err != nil {
		return err
	}
	if err = os.Rename(fh.Name(), name); err != nil {
		return err
	}
	wb.logger.Debug("saved", "file", name, "bytes", n, "sheets", wb.Sheets())
	return nil
}
