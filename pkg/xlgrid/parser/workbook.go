// Package parser reads worksheet contents out of an xlsx package.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

const defaultWorkbookPath = "xl/workbook.xml"

// sheetEntry is one sheet element of the workbook part.
type sheetEntry struct {
	name    string
	sheetID string
	relID   string
	// partPath is the resolved worksheet part name, empty when the relationship is missing.
	partPath string
}

// relationship is one Relationship element of a .rels part.
type relationship struct {
	id      string
	relType string
	target  string
	// external targets point outside the package.
	external bool
}

// workbook holds the package-level structure needed to locate worksheet parts.
type workbook struct {
	zr                *zip.Reader
	path              string
	sheets            []sheetEntry
	sharedStringsPath string
}

// openWorkbook locates the workbook part and resolves its sheets.
func openWorkbook(zr *zip.Reader) (*workbook, error) {
	wbPath, err := findWorkbookPath(zr)
	if err != nil {
		return nil, err
	}

	workbookXML, err := readZipFile(zr, wbPath)
	if err != nil {
		return nil, err
	}
	if workbookXML == nil {
		return nil, fmt.Errorf("%w: missing workbook part %s", ErrCorruptDocument, wbPath)
	}

	sheets, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, err
	}

	wb := &workbook{
		zr:     zr,
		path:   wbPath,
		sheets: sheets,
	}

	relsXML, err := readZipFile(zr, relsPathFor(wbPath))
	if err != nil {
		return nil, err
	}
	rels, err := parseRelationships(relsXML)
	if err != nil {
		return nil, err
	}

	baseDir := path.Dir(wbPath)
	byID := make(map[string]relationship, len(rels))
	for _, rel := range rels {
		byID[rel.id] = rel
		if hasRelType(rel.relType, "sharedStrings") && !rel.external {
			wb.sharedStringsPath = resolveTarget(baseDir, rel.target)
		}
	}

	for i := range wb.sheets {
		if rel, ok := byID[wb.sheets[i].relID]; ok && !rel.external {
			wb.sheets[i].partPath = resolveTarget(baseDir, rel.target)
		}
	}

	// Some producers omit the relationship but still ship the conventional part.
	if wb.sharedStringsPath == "" {
		candidate := path.Join(baseDir, "sharedStrings.xml")
		if findZipFile(zr, candidate) != nil {
			wb.sharedStringsPath = candidate
		}
	}

	return wb, nil
}

// sheetNames returns the sheet names in document order.
func (wb *workbook) sheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.name
	}
	return names
}

// lookup returns the named sheet, or the first sheet when name is empty.
func (wb *workbook) lookup(name string) (sheetEntry, error) {
	if len(wb.sheets) == 0 {
		return sheetEntry{}, fmt.Errorf("%w: workbook lists no sheets", ErrCorruptDocument)
	}
	if name == "" {
		return wb.sheets[0], nil
	}
	for _, s := range wb.sheets {
		if s.name == name {
			return s, nil
		}
	}
	return sheetEntry{}, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// findWorkbookPath resolves the officeDocument relationship of the package,
// falling back to the conventional location.
func findWorkbookPath(zr *zip.Reader) (string, error) {
	rootRels, err := readZipFile(zr, "_rels/.rels")
	if err != nil {
		return "", err
	}
	if rootRels != nil {
		rels, err := parseRelationships(rootRels)
		if err != nil {
			return "", err
		}
		for _, rel := range rels {
			if hasRelType(rel.relType, "officeDocument") && !rel.external {
				p := resolveTarget("", rel.target)
				if findZipFile(zr, p) != nil {
					return p, nil
				}
			}
		}
	}

	if findZipFile(zr, defaultWorkbookPath) != nil {
		return defaultWorkbookPath, nil
	}
	return "", fmt.Errorf("%w: no workbook part", ErrCorruptDocument)
}

// parseWorkbookSheets returns the sheet elements of workbook.xml in document order.
func parseWorkbookSheets(data []byte) ([]sheetEntry, error) {
	var result []sheetEntry
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: workbook: %v", ErrCorruptDocument, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var entry sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.name = attr.Value
				case "sheetId":
					entry.sheetID = attr.Value
				case "id":
					entry.relID = attr.Value
				}
			}
			result = append(result, entry)
		}
	}

	return result, nil
}

// parseRelationships parses a .rels part. A nil part yields no relationships.
func parseRelationships(data []byte) ([]relationship, error) {
	if data == nil {
		return nil, nil
	}

	var result []relationship
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: relationships: %v", ErrCorruptDocument, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.id = attr.Value
				case "Type":
					rel.relType = attr.Value
				case "Target":
					rel.target = attr.Value
				case "TargetMode":
					rel.external = strings.EqualFold(attr.Value, "External")
				}
			}
			result = append(result, rel)
		}
	}

	return result, nil
}

// hasRelType matches a relationship type by its last path segment, which is
// shared by the transitional and strict schemas.
func hasRelType(relType, kind string) bool {
	return strings.HasSuffix(relType, "/"+kind)
}

// relsPathFor returns the relationships part belonging to a part, e.g.
// xl/workbook.xml -> xl/_rels/workbook.xml.rels.
func relsPathFor(partPath string) string {
	return path.Join(path.Dir(partPath), "_rels", path.Base(partPath)+".rels")
}

// resolveTarget resolves a relationship target against the directory of its source part.
// Targets starting with "/" are relative to the package root.
func resolveTarget(baseDir, target string) string {
	target = strings.ReplaceAll(target, "\\", "/")
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(baseDir, target), "/")
}

func findZipFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// readZipFile returns the contents of a part, or nil if the package does not contain it.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	f := findZipFile(r, name)
	if f == nil {
		return nil, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptDocument, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptDocument, name, err)
	}
	return data, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return sb.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return sb.String(), nil
}
