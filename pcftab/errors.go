package pcftab

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors encountered while decoding or encoding a font.
// ErrorKind implements the error interface, so clients may use errors.Is to
// test for a kind of error.
type ErrorKind int

const (
	InvalidFormat          ErrorKind = iota + 1 // bad magic or table count
	InvalidVersion                              // unsupported container version
	MissingRequired                             // mandatory table or glyph missing
	InvalidTableEntry                           // malformed counts or offsets within a table
	InvalidBitmapData                           // bitmap offset/size inconsistent with its glyph
	UnsupportedFormat                           // unknown table format word
	InvalidCompression                          // malformed gzip stream
	TableOffsetOutOfBounds                      // table claims bytes outside of the file
	InvalidGlyphCount                           // glyph count exceeds the sanity ceiling
	InvalidMetricsFormat                        // unknown metrics layout
	InvalidEncodingRange                        // code-point grid is malformed or too large
	BitmapSizeMismatch                          // bitmap sizes disagree with table contents
)

var errorKindNames = [...]string{
	"Unknown",
	"InvalidFormat",
	"InvalidVersion",
	"MissingRequired",
	"InvalidTableEntry",
	"InvalidBitmapData",
	"UnsupportedFormat",
	"InvalidCompression",
	"TableOffsetOutOfBounds",
	"InvalidGlyphCount",
	"InvalidMetricsFormat",
	"InvalidEncodingRange",
	"BitmapSizeMismatch",
}

// String returns the name of an error kind.
func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(errorKindNames) {
		return errorKindNames[0]
	}
	return errorKindNames[k]
}

func (k ErrorKind) Error() string {
	return "PCF font: " + k.String()
}

// Error represents an error encountered during decoding or encoding of a font.
type Error struct {
	Kind   ErrorKind // classification of the error
	Table  TableType // the table where the error occurred (0 for the container)
	Issue  string    // human-readable description of the issue
	Offset uint32    // byte offset in the font file where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e *Error) Error() string {
	where := "container"
	if e.Table != 0 {
		where = e.Table.String()
	}
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s at offset %d: %s", e.Kind.String(), where, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind.String(), where, e.Issue)
}

// Unwrap returns the error kind, enabling errors.Is(err, kind).
func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the ErrorKind of err, or 0 if err does not carry one.
func KindOf(err error) ErrorKind {
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func newError(kind ErrorKind, table TableType, offset uint32, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Table:  table,
		Issue:  fmt.Sprintf(format, args...),
		Offset: offset,
	}
}

// NewError creates an error of a given kind, not bound to a location in a
// font file. Packages assembling or encoding fonts use it to report errors
// with the same taxonomy as the decoders.
func NewError(kind ErrorKind, table TableType, format string, args ...any) *Error {
	return newError(kind, table, 0, format, args...)
}

// withKind re-classifies err, which has to be an *Error.
func withKind(kind ErrorKind, err error) error {
	var e *Error
	if errors.As(err, &e) {
		c := *e
		c.Kind = kind
		return &c
	}
	return err
}

// withIssue prefixes the issue of err, which has to be an *Error.
func withIssue(err error, format string, args ...any) error {
	var e *Error
	if errors.As(err, &e) {
		c := *e
		c.Issue = fmt.Sprintf(format, args...) + c.Issue
		return &c
	}
	return err
}

// Warning represents a non-critical issue encountered during decoding.
// Warnings indicate potential problems but do not prevent font usage.
type Warning struct {
	Table  TableType // the table where the warning occurred
	Issue  string    // human-readable description of the warning
	Offset uint32    // byte offset in the font file (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}
