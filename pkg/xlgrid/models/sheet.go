package models

// GridStats summarizes the populated area of a grid.
type GridStats struct {
	// Rows is the number of rows.
	Rows int `json:"rows"`
	// Columns is the length of the longest row.
	Columns int `json:"columns"`
	// NonEmpty is the number of cells holding a non-empty string.
	NonEmpty int `json:"non_empty"`
	// Range is the bounding range of non-empty cells (e.g., "A1:D10"), empty if there are none.
	Range string `json:"range,omitempty"`
	// Density is NonEmpty divided by the number of cells in Range.
	Density float64 `json:"density"`
}

// SheetInfo describes one sheet of a document as seen by inspection.
type SheetInfo struct {
	// Index is the zero-based position in the workbook's sheet list.
	Index int `json:"index"`
	// Name is the sheet name.
	Name string `json:"name"`
	// Dimension is the sheet's declared used range, if the document records one.
	Dimension string `json:"dimension,omitempty"`
	// PrintAreas lists the sheet's print ranges (e.g., "A1:D10").
	PrintAreas []string `json:"print_areas,omitempty"`
	// Stats summarizes the sheet's cell values.
	Stats GridStats `json:"stats"`
}
