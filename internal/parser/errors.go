package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTransactions is returned when a text document yields no transaction lines.
// It usually means the statement layout is not supported.
var ErrNoTransactions = errors.New("no transactions found; the statement layout may not be supported")

// MissingColumnsError reports that a tabular source lacks a date or description column.
type MissingColumnsError struct {
	Missing []string // roles that could not be bound, e.g. "date"
	Headers []string // headers as they appeared in the source
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("could not find %s column(s) in headers [%s]",
		strings.Join(e.Missing, " and "), strings.Join(e.Headers, ", "))
}

// UnsupportedFormatError is returned for file extensions the dispatcher does not handle.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q (supported: csv, xlsx, xls, pdf)", e.Extension)
}

// DecodeError wraps a failure to decode the raw bytes of a file.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
