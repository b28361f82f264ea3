package excelwriter

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// EncName is the default CSV charset, taken from LANG.
var EncName = "utf-8"

func init() {
	lang := os.Getenv("LANG")
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		enc, _, _ := strings.Cut(lang[i+1:], "@")
		EncName = strings.ToLower(enc)
	}
}

// GetEncoding returns the named encoding, nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

// OpenCsv opens the named file ("" or "-" is stdin) as CSV in the given
// charset. The separator is guessed from the first line.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return csvReadCloser{}, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			return csvReadCloser{}, err
		}
	}
	cr, err := NewCsvReader(fh, enc)
	if err != nil {
		fh.Close()
		return csvReadCloser{}, err
	}
	return csvReadCloser{cr, fh}, nil
}

// NewCsvReader returns a csv.Reader reading r, decoded from enc if not nil,
// with the separator guessed from the first 1KiB.
func NewCsvReader(r io.Reader, enc encoding.Encoding) (*csv.Reader, error) {
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		return nil, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || r == ' ' || r == '.' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		if r == '\r' || r == '\n' {
			break
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	return cr, nil
}

// ReadCsv reads all records of cr as rows for Workbook.InsertData.
// Fields that parse as numbers become Number.
func ReadCsv(cr *csv.Reader) ([][]any, error) {
	var rows [][]any
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return rows, err
		}
		row := make([]any, len(rec))
		for i, s := range rec {
			if _, err := strconv.ParseFloat(s, 64); err == nil && s != "" {
				row[i] = Number(s)
			} else {
				row[i] = s
			}
		}
		rows = append(rows, row)
	}
}
