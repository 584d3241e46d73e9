package xlgrid

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/address"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/parser"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/writer"
)

// ErrSheetNotFound indicates the requested sheet name is absent from the document.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrInvalidAddress indicates a cell reference or column label that cannot be parsed.
var ErrInvalidAddress = address.ErrInvalidAddress

// ErrCorruptDocument indicates a document that violates the package structure.
var ErrCorruptDocument = parser.ErrCorruptDocument

// ErrIOFailure indicates the underlying storage could not be opened, read or written.
var ErrIOFailure = errors.New("i/o failure")

// ErrNoSheets indicates a write request without any sheet.
var ErrNoSheets = writer.ErrNoSheets

// Operations reported by CodecError.
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpInspect = "inspect"
)

// CodecError is returned by every file-level operation of this package.
type CodecError struct {
	Op    string // "read", "write", "inspect"
	Path  string
	Sheet string
	// Kind is the taxonomy sentinel the failure was classified as, nil if none applies.
	Kind error
	Err  error
}

func (e *CodecError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s %s (sheet %q): %v", e.Op, e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel the error was classified as, so
// that errors.Is(err, ErrIOFailure) holds for wrapped file system errors.
func (e *CodecError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewCodecError creates a new CodecError and classifies err.
func NewCodecError(op, path, sheet string, err error) *CodecError {
	return &CodecError{
		Op:    op,
		Path:  path,
		Sheet: sheet,
		Kind:  classify(op, err),
		Err:   err,
	}
}

func classify(op string, err error) error {
	var pathErr *fs.PathError
	var linkErr *os.LinkError

	switch {
	case errors.Is(err, ErrSheetNotFound):
		return ErrSheetNotFound
	case errors.Is(err, ErrInvalidAddress):
		return ErrInvalidAddress
	case errors.Is(err, ErrCorruptDocument),
		errors.Is(err, zip.ErrFormat),
		errors.Is(err, zip.ErrAlgorithm),
		errors.Is(err, zip.ErrChecksum):
		return ErrCorruptDocument
	case errors.Is(err, ErrNoSheets):
		return ErrNoSheets
	case errors.As(err, &pathErr), errors.As(err, &linkErr):
		return ErrIOFailure
	case op == OpWrite:
		return ErrIOFailure
	default:
		// The file opened but its contents could not be understood.
		return ErrCorruptDocument
	}
}

// Category returns the taxonomy name of an error returned by this package:
// "SheetNotFound", "InvalidAddress", "CorruptDocument", "IOFailure" or
// "NoSheets". It returns "" for nil or unclassified errors.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSheetNotFound):
		return "SheetNotFound"
	case errors.Is(err, ErrInvalidAddress):
		return "InvalidAddress"
	case errors.Is(err, ErrCorruptDocument):
		return "CorruptDocument"
	case errors.Is(err, ErrIOFailure):
		return "IOFailure"
	case errors.Is(err, ErrNoSheets):
		return "NoSheets"
	default:
		return ""
	}
}
