package parser

import (
	"archive/zip"
	"fmt"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
)

// ListSheets returns the sheet names of the package in workbook order.
func ListSheets(zr *zip.Reader) ([]string, error) {
	wb, err := openWorkbook(zr)
	if err != nil {
		return nil, err
	}
	return wb.sheetNames(), nil
}

// ReadSheet reads one worksheet into a grid. An empty sheetName selects the
// first sheet of the workbook.
//
// Shared string references are resolved against the workbook's shared string
// table. Within each row the result starts at the first stored cell; columns
// between stored cells are filled with empty strings.
func ReadSheet(zr *zip.Reader, sheetName string) (models.Grid, error) {
	wb, err := openWorkbook(zr)
	if err != nil {
		return nil, err
	}

	entry, err := wb.lookup(sheetName)
	if err != nil {
		return nil, err
	}

	sst, err := wb.loadSharedStrings()
	if err != nil {
		return nil, err
	}

	return readWorksheet(wb, entry, sst)
}

// ReadAll reads every worksheet of the package in workbook order.
func ReadAll(zr *zip.Reader) ([]models.Sheet, error) {
	wb, err := openWorkbook(zr)
	if err != nil {
		return nil, err
	}
	if len(wb.sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook lists no sheets", ErrCorruptDocument)
	}

	sst, err := wb.loadSharedStrings()
	if err != nil {
		return nil, err
	}

	sheets := make([]models.Sheet, 0, len(wb.sheets))
	for _, entry := range wb.sheets {
		grid, err := readWorksheet(wb, entry, sst)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", entry.name, err)
		}
		sheets = append(sheets, models.Sheet{Name: entry.name, Rows: grid})
	}

	return sheets, nil
}

func readWorksheet(wb *workbook, entry sheetEntry, sst []string) (models.Grid, error) {
	if entry.partPath == "" {
		return nil, fmt.Errorf("%w: sheet %q has no worksheet relationship %q",
			ErrCorruptDocument, entry.name, entry.relID)
	}

	data, err := readZipFile(wb.zr, entry.partPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: missing worksheet part %s", ErrCorruptDocument, entry.partPath)
	}

	sheet, err := parseWorksheet(data, sst)
	if err != nil {
		return nil, err
	}

	return sheet.grid(), nil
}
