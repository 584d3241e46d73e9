// Package output serializes grids for display and interchange.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
)

// ToJSON serializes a grid as a JSON array of string arrays.
// Nil rows are encoded as empty arrays.
func ToJSON(grid models.Grid, pretty bool) ([]byte, error) {
	return marshal(nonNilRows(grid), pretty)
}

// SheetsToJSON serializes sheets as a JSON array of {"name", "rows"} objects.
func SheetsToJSON(sheets []models.Sheet, pretty bool) ([]byte, error) {
	out := make([]models.Sheet, len(sheets))
	for i, s := range sheets {
		out[i] = models.Sheet{Name: s.Name, Rows: nonNilRows(s.Rows)}
	}
	return marshal(out, pretty)
}

// SheetInfosToJSON serializes inspection results.
func SheetInfosToJSON(infos []models.SheetInfo, pretty bool) ([]byte, error) {
	if infos == nil {
		infos = []models.SheetInfo{}
	}
	return marshal(infos, pretty)
}

func nonNilRows(grid models.Grid) models.Grid {
	out := make(models.Grid, len(grid))
	for i, row := range grid {
		if row == nil {
			row = []string{}
		}
		out[i] = row
	}
	return out
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
