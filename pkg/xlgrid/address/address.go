// Package address converts between row/column indices and A1-style cell
// references.
//
// Columns are zero-based internally and labelled with bijective base-26
// letters externally (A..Z, AA..AZ, BA, ...). Rows are 1-based.
package address

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidAddress indicates a cell reference or column label that cannot be parsed.
var ErrInvalidAddress = errors.New("invalid address")

// maxLabelIndex bounds column arithmetic so that label decoding cannot overflow int.
const maxLabelIndex = math.MaxInt32

// ColumnLabelToIndex returns the zero-based column index for a label such as "A" or "AB".
func ColumnLabelToIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidAddress)
	}

	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if !isUpper(ch) {
			return 0, fmt.Errorf("%w: column label %q", ErrInvalidAddress, label)
		}
		n = n*26 + int(ch-'A'+1)
		if n > maxLabelIndex {
			return 0, fmt.Errorf("%w: column label %q out of range", ErrInvalidAddress, label)
		}
	}

	return n - 1, nil
}

// IndexToColumnLabel returns the label for a zero-based column index.
// It returns "" for negative indices.
func IndexToColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	var buf [16]byte
	pos := len(buf)
	for index >= 0 {
		pos--
		buf[pos] = byte('A' + index%26)
		// No zero digit: step down before dividing.
		index = index/26 - 1
	}

	return string(buf[pos:])
}

// CellReference returns the reference for a 1-based row and zero-based column, e.g. (2, 0) -> "A2".
// It returns "" when the coordinates are out of range.
func CellReference(row, column int) string {
	if ValidateCoordinates(row, column) != nil {
		return ""
	}
	return IndexToColumnLabel(column) + strconv.Itoa(row)
}

// ValidateCoordinates reports whether row and column form a valid cell address.
func ValidateCoordinates(row, column int) error {
	if row < 1 {
		return fmt.Errorf("%w: row %d must be >= 1", ErrInvalidAddress, row)
	}
	if column < 0 || column > maxLabelIndex {
		return fmt.Errorf("%w: column %d out of range", ErrInvalidAddress, column)
	}
	return nil
}

// ParseCellReference splits a reference such as "B7" into its 1-based row and zero-based column.
// The reference must match [A-Z]+[1-9][0-9]*.
func ParseCellReference(ref string) (row, column int, err error) {
	label, err := ColumnLabel(ref)
	if err != nil {
		return 0, 0, err
	}

	digits := ref[len(label):]
	if digits == "" || digits[0] == '0' {
		return 0, 0, fmt.Errorf("%w: cell reference %q", ErrInvalidAddress, ref)
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return 0, 0, fmt.Errorf("%w: cell reference %q", ErrInvalidAddress, ref)
		}
	}

	row, err = strconv.Atoi(digits)
	if err != nil || row > maxLabelIndex {
		return 0, 0, fmt.Errorf("%w: row in cell reference %q out of range", ErrInvalidAddress, ref)
	}

	column, err = ColumnLabelToIndex(label)
	if err != nil {
		return 0, 0, err
	}

	return row, column, nil
}

// ColumnLabel returns the leading run of uppercase letters of a cell reference.
func ColumnLabel(ref string) (string, error) {
	end := 0
	for end < len(ref) && isUpper(ref[end]) {
		end++
	}
	if end == 0 {
		return "", fmt.Errorf("%w: cell reference %q", ErrInvalidAddress, ref)
	}
	return ref[:end], nil
}

// NextColumnLabel returns the label that follows label in column order.
// The empty label is treated as the one before "A".
func NextColumnLabel(label string) string {
	if label == "" {
		return "A"
	}

	b := []byte(label)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}

	// Every position carried over, e.g. "ZZ" -> "AAA".
	return "A" + string(b)
}

// RangeReference returns an "A1:D10" style range for two corners given as
// 1-based rows and zero-based columns.
func RangeReference(row1, col1, row2, col2 int) string {
	return CellReference(row1, col1) + ":" + CellReference(row2, col2)
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
