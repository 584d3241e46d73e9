package xlgrid

import (
	"strings"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/address"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// printAreas maps sheet names to the ranges of their print areas.
func printAreas(f *excelize.File) map[string][]string {
	result := make(map[string][]string)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		sheetName, ranges := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(ranges) > 0 {
			result[sheetName] = append(result[sheetName], ranges...)
		}
	}

	return result
}

// parsePrintAreaReference splits a reference such as
// 'My Sheet'!$A$1:$D$10,'My Sheet'!$F$1:$G$4 into the sheet name and its
// ranges in "A1:D10" form. Parts that are not cell ranges are skipped.
func parsePrintAreaReference(ref string) (string, []string) {
	var sheetName string
	var ranges []string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		if sheetName == "" {
			sheetName = unquoteSheetName(part[:idx])
		}
		if r, ok := normalizeRange(part[idx+1:]); ok {
			ranges = append(ranges, r)
		}
	}

	return sheetName, ranges
}

func unquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// normalizeRange drops absolute markers and orders the corners.
func normalizeRange(s string) (string, bool) {
	s = strings.ReplaceAll(s, "$", "")
	first, last, found := strings.Cut(s, ":")
	if !found {
		last = first
	}

	r1, c1, err := address.ParseCellReference(first)
	if err != nil {
		return "", false
	}
	r2, c2, err := address.ParseCellReference(last)
	if err != nil {
		return "", false
	}

	return address.RangeReference(min(r1, r2), min(c1, c2), max(r1, r2), max(c1, c2)), true
}
