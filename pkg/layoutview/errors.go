package layoutview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrIO indicates the input file exists but cannot be read.
var ErrIO = errors.New("file unreadable")

// ErrInvalidFormat indicates the input file is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInternal indicates a defect during classification.
var ErrInternal = errors.New("internal error")

// ErrorKind classifies errors for callers that need a coarse signal.
type ErrorKind string

const (
	KindNone     ErrorKind = ""
	KindNotFound ErrorKind = "not_found"
	KindIO       ErrorKind = "io"
	KindFormat   ErrorKind = "format"
	KindCanceled ErrorKind = "canceled"
	KindInternal ErrorKind = "internal"
)

// KindOf reports the kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrFileNotFound):
		return KindNotFound
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrInvalidFormat):
		return KindFormat
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}

// WorkbookError represents a failure to open or read a workbook.
type WorkbookError struct {
	Path string
	Op   string // "open", "read"
	Kind error  // one of the sentinel errors
	Err  error
}

func (e *WorkbookError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *WorkbookError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// SheetError represents an error while loading or classifying one sheet.
type SheetError struct {
	SheetName string
	Stage     string // "load", "classify"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}

// openError maps an error from opening a workbook to the taxonomy.
func openError(path string, err error) error {
	kind := ErrInvalidFormat
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrFileNotFound
	case errors.As(err, &pathErr):
		kind = ErrIO
	}
	return &WorkbookError{Path: path, Op: "open", Kind: kind, Err: err}
}
