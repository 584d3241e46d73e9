package xlgrid

import (
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/address"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/xuri/excelize/v2"
)

// Inspect reports every sheet of the document at path.
// It reads the document with excelize, independently of ReadSheet.
func Inspect(path string) ([]models.SheetInfo, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewCodecError(OpInspect, path, "", err)
	}
	defer f.Close()

	areas := printAreas(f)
	sheetList := f.GetSheetList()
	infos := make([]models.SheetInfo, 0, len(sheetList))
	for i, sheetName := range sheetList {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, NewCodecError(OpInspect, path, sheetName, err)
		}

		// Not every producer records a dimension.
		dimension, _ := f.GetSheetDimension(sheetName)

		infos = append(infos, models.SheetInfo{
			Index:      i,
			Name:       sheetName,
			Dimension:  dimension,
			Stats:      Stats(rows),
			PrintAreas: areas[sheetName],
		})
	}

	return infos, nil
}

// Stats summarizes the shape of a grid and the bounding box of its non-empty cells.
func Stats(grid models.Grid) models.GridStats {
	stats := models.GridStats{
		Rows:    len(grid),
		Columns: grid.Width(),
	}

	b := scanValues(grid)
	if b.count == 0 {
		return stats
	}

	area := (b.lastRow - b.firstRow + 1) * (b.lastCol - b.firstCol + 1)
	stats.NonEmpty = b.count
	stats.Density = float64(b.count) / float64(area)
	stats.Range = address.RangeReference(b.firstRow+1, b.firstCol, b.lastRow+1, b.lastCol)

	return stats
}

// valueBounds is the zero-based bounding box of the non-empty cells of a grid
// and their number. Every non-empty cell lies inside the box.
type valueBounds struct {
	firstRow, lastRow int
	firstCol, lastCol int
	count             int
}

func scanValues(grid models.Grid) valueBounds {
	var b valueBounds
	for r, row := range grid {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if b.count == 0 {
				b = valueBounds{firstRow: r, lastRow: r, firstCol: c, lastCol: c}
			}
			b.count++
			b.lastRow = r
			b.firstCol = min(b.firstCol, c)
			b.lastCol = max(b.lastCol, c)
		}
	}
	return b
}
