// Package writer encodes grids as an xlsx package.
//
// Every cell is written as an inline string; no shared string table is
// produced. Characters XML cannot carry are stored as _xHHHH_ escapes. Sheets get ids 1..n in the order given and keep their names as-is.
package writer

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/address"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/xstring"
)

// ErrNoSheets indicates a write request without any sheet.
var ErrNoSheets = errors.New("workbook needs at least one sheet")

const cellTypeInlineString = "inlineStr"

// Write encodes the sheets as an xlsx package to w.
//
// All worksheets are built before anything is written, so a sheet that cannot
// be encoded fails the whole call without output. The zip stream is finalized
// once at the end.
func Write(w io.Writer, sheets []models.Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	worksheets := make([]xlsxWorksheet, len(sheets))
	for i, sheet := range sheets {
		ws, err := buildWorksheet(sheet.Rows)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", sheet.Name, err)
		}
		worksheets[i] = ws
	}

	zw := zip.NewWriter(w)

	if err := writePart(zw, partContentTypes, buildContentTypes(len(sheets))); err != nil {
		return err
	}
	if err := writePart(zw, partRootRels, buildRootRels()); err != nil {
		return err
	}

	wb, wbRels := buildWorkbook(sheets)
	if err := writePart(zw, partWorkbook, wb); err != nil {
		return err
	}
	if err := writePart(zw, partWorkbookRels, wbRels); err != nil {
		return err
	}

	for i := range worksheets {
		name := "xl/" + fmt.Sprintf(worksheetTargetFmt, i+1)
		if err := writePart(zw, name, &worksheets[i]); err != nil {
			return fmt.Errorf("sheet %q: %w", sheets[i].Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize package: %w", err)
	}
	return nil
}

// buildWorksheet lays out a grid: row r holds the cells of grid[r-1], cell c
// of a row is written at column c.
func buildWorksheet(grid models.Grid) (xlsxWorksheet, error) {
	if len(grid) > address.MaxRows {
		return xlsxWorksheet{}, fmt.Errorf("%w: %d rows exceed the sheet limit of %d",
			address.ErrInvalidAddress, len(grid), address.MaxRows)
	}

	ws := xlsxWorksheet{
		SheetData: xlsxSheetData{Rows: make([]xlsxRow, len(grid))},
	}

	width := 0
	for i, cells := range grid {
		rowNum := i + 1
		if len(cells) > address.MaxColumns {
			return xlsxWorksheet{}, fmt.Errorf("%w: row %d has %d cells, the sheet limit is %d",
				address.ErrInvalidAddress, rowNum, len(cells), address.MaxColumns)
		}
		if len(cells) > width {
			width = len(cells)
		}

		row := xlsxRow{R: rowNum}
		if len(cells) > 0 {
			row.Cells = make([]xlsxC, len(cells))
		}
		for col, value := range cells {
			row.Cells[col] = xlsxC{
				R:  address.CellReference(rowNum, col),
				T:  cellTypeInlineString,
				IS: xlsxIS{T: xlsxT{Space: "preserve", Val: xstring.Escape(value)}},
			}
		}
		ws.SheetData.Rows[i] = row
	}

	ref := "A1"
	if len(grid) > 0 && width > 0 {
		ref = address.RangeReference(1, 0, len(grid), width-1)
	}
	ws.Dimension = &xlsxDimension{Ref: ref}

	return ws, nil
}

func buildContentTypes(sheetCount int) *xlsxTypes {
	types := &xlsxTypes{
		Defaults: []xlsxDefault{
			{Extension: "rels", ContentType: contentTypeRelationships},
			{Extension: "xml", ContentType: contentTypeXML},
		},
		Overrides: []xlsxOverride{
			{PartName: "/" + partWorkbook, ContentType: contentTypeWorkbook},
		},
	}
	for i := 1; i <= sheetCount; i++ {
		types.Overrides = append(types.Overrides, xlsxOverride{
			PartName:    "/xl/" + fmt.Sprintf(worksheetTargetFmt, i),
			ContentType: contentTypeWorksheet,
		})
	}
	return types
}

func buildRootRels() *xlsxRelationships {
	return &xlsxRelationships{
		Relationships: []xlsxRelationship{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: partWorkbook},
		},
	}
}

// buildWorkbook returns the workbook part and its relationships. Sheet i
// (zero-based) gets sheetId i+1, relationship rId(i+1) and part sheet(i+1).xml.
func buildWorkbook(sheets []models.Sheet) (*xlsxWorkbook, *xlsxRelationships) {
	wb := &xlsxWorkbook{XMLNSR: nsRelationships}
	rels := &xlsxRelationships{}

	for i, sheet := range sheets {
		rID := fmt.Sprintf("rId%d", i+1)
		wb.Sheets = append(wb.Sheets, xlsxSheet{
			Name:    sheet.Name,
			SheetID: i + 1,
			RID:     rID,
		})
		rels.Relationships = append(rels.Relationships, xlsxRelationship{
			ID:     rID,
			Type:   relTypeWorksheet,
			Target: fmt.Sprintf(worksheetTargetFmt, i+1),
		})
	}

	return wb, rels
}

// writePart adds one XML part to the package.
func writePart(zw *zip.Writer, name string, v any) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create part %s: %w", name, err)
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return fmt.Errorf("write part %s: %w", name, err)
	}
	if err := xml.NewEncoder(fw).Encode(v); err != nil {
		return fmt.Errorf("encode part %s: %w", name, err)
	}
	return nil
}
