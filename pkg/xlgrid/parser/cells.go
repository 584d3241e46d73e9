package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/address"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/xstring"
)

// Cell types of the t attribute that need special value resolution.
const (
	cellTypeSharedString = "s"
	cellTypeInlineString = "inlineStr"
)

// sparseSheet holds cell values keyed by 1-based row and zero-based column,
// independent of the order they were stored in.
type sparseSheet struct {
	rows map[int]map[int]string
}

// parseWorksheet reads the sheetData of a worksheet part into a sparse sheet.
func parseWorksheet(data []byte, sst []string) (*sparseSheet, error) {
	sheet := &sparseSheet{rows: make(map[int]map[int]string)}
	decoder := xml.NewDecoder(bytes.NewReader(data))
	lastRow := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: worksheet: %v", ErrCorruptDocument, err)
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "row" {
			continue
		}

		rowNum, err := rowIndex(se, lastRow)
		if err != nil {
			return nil, err
		}

		cells, ok := sheet.rows[rowNum]
		if !ok {
			cells = make(map[int]string)
			sheet.rows[rowNum] = cells
		}
		if err := parseRow(decoder, rowNum, cells, sst); err != nil {
			return nil, err
		}
		lastRow = rowNum
	}

	return sheet, nil
}

// rowIndex returns the r attribute of a row element, or the row after the
// previous one when the attribute is omitted.
func rowIndex(se xml.StartElement, lastRow int) (int, error) {
	for _, attr := range se.Attr {
		if attr.Name.Local != "r" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(attr.Value))
		if err != nil || n < 1 || n > address.MaxRows {
			return 0, fmt.Errorf("%w: row index %q", address.ErrInvalidAddress, attr.Value)
		}
		return n, nil
	}
	if lastRow >= address.MaxRows {
		return 0, fmt.Errorf("%w: too many rows", ErrCorruptDocument)
	}
	return lastRow + 1, nil
}

// parseRow consumes a row element and stores its cells.
func parseRow(decoder *xml.Decoder, rowNum int, cells map[int]string, sst []string) error {
	lastCol := -1
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrCorruptDocument, rowNum, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "c" {
				col, value, err := parseCell(decoder, t, rowNum, lastCol, sst)
				if err != nil {
					return err
				}
				cells[col] = value
				lastCol = col
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return nil
}

// parseCell consumes a c element and returns its zero-based column and resolved value.
func parseCell(decoder *xml.Decoder, start xml.StartElement, rowNum, lastCol int, sst []string) (int, string, error) {
	var ref, cellType string
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "r":
			ref = attr.Value
		case "t":
			cellType = attr.Value
		}
	}

	col := lastCol + 1
	if ref != "" {
		_, c, err := address.ParseCellReference(ref)
		if err != nil {
			return 0, "", fmt.Errorf("row %d: %w", rowNum, err)
		}
		col = c
	}
	if col >= address.MaxColumns {
		return 0, "", fmt.Errorf("%w: cell in row %d beyond column %s",
			ErrCorruptDocument, rowNum, address.IndexToColumnLabel(address.MaxColumns-1))
	}

	var value, inline string
	var hasValue, hasInline bool

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return 0, "", fmt.Errorf("%w: cell %s: %v", ErrCorruptDocument, cellName(rowNum, col), err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "v":
				text, err := readElementText(decoder)
				if err != nil {
					return 0, "", fmt.Errorf("%w: cell %s: %v", ErrCorruptDocument, cellName(rowNum, col), err)
				}
				value, hasValue = text, true
				depth--
			case "is":
				text, err := readRichText(decoder)
				if err != nil {
					return 0, "", fmt.Errorf("%w: cell %s: %v", ErrCorruptDocument, cellName(rowNum, col), err)
				}
				inline, hasInline = text, true
				depth--
			default:
				// Formulas and extensions carry no value of their own.
				if err := decoder.Skip(); err != nil {
					return 0, "", fmt.Errorf("%w: cell %s: %v", ErrCorruptDocument, cellName(rowNum, col), err)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	switch {
	case cellType == cellTypeInlineString && hasInline:
		return col, inline, nil
	case !hasValue:
		return col, "", nil
	case cellType == cellTypeSharedString:
		s, err := lookupSharedString(sst, value)
		if err != nil {
			return 0, "", fmt.Errorf("cell %s: %w", cellName(rowNum, col), err)
		}
		return col, s, nil
	default:
		return col, xstring.Unescape(value), nil
	}
}

// lookupSharedString resolves a shared string index stored in a cell value.
func lookupSharedString(sst []string, value string) (string, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: shared string index %q", ErrCorruptDocument, value)
	}
	if idx < 0 || idx >= len(sst) {
		return "", fmt.Errorf("%w: shared string index %d out of range (table has %d entries)",
			ErrCorruptDocument, idx, len(sst))
	}
	return sst[idx], nil
}

func cellName(row, col int) string {
	return address.CellReference(row, col)
}

// grid materializes the sparse sheet: rows in ascending index order, cells in
// ascending column order, with empty strings filling the columns between two
// present cells. Columns before a row's first present cell are not filled.
func (s *sparseSheet) grid() models.Grid {
	rowNums := make([]int, 0, len(s.rows))
	for r := range s.rows {
		rowNums = append(rowNums, r)
	}
	sort.Ints(rowNums)

	result := make(models.Grid, 0, len(rowNums))
	for _, r := range rowNums {
		result = append(result, fillRow(s.rows[r]))
	}
	return result
}

// fillRow turns one row's column map into a contiguous slice starting at its first present column.
func fillRow(cells map[int]string) []string {
	cols := make([]int, 0, len(cells))
	for c := range cells {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	row := make([]string, 0, len(cols))
	lastLabel := ""
	for _, col := range cols {
		label := address.IndexToColumnLabel(col)
		if lastLabel != "" {
			for next := address.NextColumnLabel(lastLabel); next != label; next = address.NextColumnLabel(next) {
				row = append(row, "")
			}
		}
		row = append(row, cells[col])
		lastLabel = label
	}
	return row
}
