package parser

import "errors"

// ErrSheetNotFound indicates that the requested sheet name is not listed in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrCorruptDocument indicates a package that violates the spreadsheet structure,
// such as a missing workbook part or a shared string index out of range.
var ErrCorruptDocument = errors.New("corrupt document")
