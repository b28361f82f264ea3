// Copyright 2020, Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelwriter

import "log/slog"

// DefaultFilename is used by Save when no WithFilename option was given.
const DefaultFilename = "./Book1.xlsx"

type options struct {
	author   string
	filename string
	logger   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		filename: DefaultFilename,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Option configures a Workbook.
type Option func(*options)

// WithAuthor sets the creator in the document metadata.
func WithAuthor(author string) Option {
	return func(o *options) { o.author = author }
}

// WithFilename sets the file Save writes to.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithLogger sets the logger for debug messages (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
