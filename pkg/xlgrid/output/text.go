package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"golang.org/x/text/width"
)

// ToCSV writes a grid as CSV records. Rows keep their own length.
func ToCSV(w io.Writer, grid models.Grid) error {
	cw := csv.NewWriter(w)
	for _, row := range grid {
		record := row
		if record == nil {
			record = []string{}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FromCSV reads CSV records into a grid. Records may differ in length.
func FromCSV(r io.Reader) (models.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return models.Grid(records), nil
}

// ToTable writes one line per row in the form "Row N: [a] [b] ...".
func ToTable(w io.Writer, grid models.Grid) error {
	for i, row := range grid {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Row %d:", i+1)
		for _, cell := range row {
			sb.WriteString(" [")
			sb.WriteString(cell)
			sb.WriteString("]")
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// ToAlignedTable writes the grid as space-padded columns. Column widths count
// East Asian wide and fullwidth characters as two cells.
func ToAlignedTable(w io.Writer, grid models.Grid) error {
	widths := make([]int, grid.Width())
	for _, row := range grid {
		for j, cell := range row {
			if n := DisplayWidth(cell); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for _, row := range grid {
		var sb strings.Builder
		for j, cell := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[j]-DisplayWidth(cell)))
			}
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
