package xlgrid

import (
	"fmt"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/writer"
	"github.com/xuri/excelize/v2"
)

// WriteSheet writes a single-sheet document to path, replacing any existing file.
func WriteSheet(path string, grid models.Grid, sheetName string, opts WriteOptions) error {
	return WriteSheets(path, []models.Sheet{{Name: sheetName, Rows: grid}}, opts)
}

// WriteSheets writes one worksheet per sheet, in order, to path.
//
// The document is staged next to path and renamed over it once complete, so
// readers of path see either the previous file or the new one. Sheet names
// are used as given; duplicates are not rejected.
func WriteSheets(path string, sheets []models.Sheet, opts WriteOptions) error {
	if err := writeFile(path, sheets, opts); err != nil {
		return NewCodecError(OpWrite, path, "", err)
	}
	return nil
}

func writeFile(path string, sheets []models.Sheet, opts WriteOptions) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(opts.fileMode()))
	if err != nil {
		return err
	}
	// No-op once the file has replaced path.
	defer pf.Cleanup()

	if err := writer.Write(pf, sheets); err != nil {
		return err
	}

	if opts.Verify {
		if err := verifyFile(pf.Name(), sheets); err != nil {
			return err
		}
	}

	return pf.CloseAtomicallyReplace()
}

// verifyFile opens a written document with excelize and checks that it lists
// the expected sheets with the expected values.
func verifyFile(path string, sheets []models.Sheet) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: verify: %v", ErrCorruptDocument, err)
	}
	defer f.Close()

	list := f.GetSheetList()
	if len(list) != len(sheets) {
		return fmt.Errorf("%w: verify: %d sheets listed, %d written", ErrCorruptDocument, len(list), len(sheets))
	}

	seen := make(map[string]bool, len(sheets))
	for i, sheet := range sheets {
		if list[i] != sheet.Name {
			return fmt.Errorf("%w: verify: sheet %d is %q, expected %q", ErrCorruptDocument, i+1, list[i], sheet.Name)
		}
		// Lookup by name only reaches the first of duplicate names.
		if seen[sheet.Name] {
			continue
		}
		seen[sheet.Name] = true

		rows, err := f.GetRows(sheet.Name)
		if err != nil {
			return fmt.Errorf("%w: verify sheet %q: %v", ErrCorruptDocument, sheet.Name, err)
		}
		if !trimGrid(rows).Equal(trimGrid(sheet.Rows)) {
			return fmt.Errorf("%w: verify: sheet %q reads back different values", ErrCorruptDocument, sheet.Name)
		}
	}

	return nil
}

// trimGrid drops trailing empty cells of each row and trailing empty rows,
// which general-purpose readers do not report.
func trimGrid(grid models.Grid) models.Grid {
	result := make(models.Grid, len(grid))
	last := -1
	for i, row := range grid {
		end := len(row)
		for end > 0 && row[end-1] == "" {
			end--
		}
		result[i] = row[:end]
		if end > 0 {
			last = i
		}
	}
	return result[:last+1]
}
