// Package models defines the in-memory shapes exchanged with the codec.
package models

// Grid is an ordered sequence of rows, each an ordered sequence of string cells.
// Rows may have different lengths.
type Grid [][]string

// Sheet pairs a sheet name with its grid.
type Sheet struct {
	// Name is the sheet name as listed in the workbook.
	Name string `json:"name"`
	// Rows contains the sheet's cell values.
	Rows Grid `json:"rows"`
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cells returns the total number of cells across all rows.
func (g Grid) Cells() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Equal reports whether two grids hold the same rows cell for cell.
// A nil grid equals an empty one.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}
