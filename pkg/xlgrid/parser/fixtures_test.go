package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

const (
	nsMain     = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelsDoc  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRelsPkg  = "http://schemas.openxmlformats.org/package/2006/relationships"
	relTypeDoc = nsRelsDoc + "/officeDocument"
	relTypeWS  = nsRelsDoc + "/worksheet"
	relTypeSST = nsRelsDoc + "/sharedStrings"
)

// fixtureSheet is a worksheet for a hand-assembled package.
type fixtureSheet struct {
	name string
	// target is the relationship target; defaults to worksheets/sheetN.xml.
	target string
	// sheetData is the inner XML of the sheetData element.
	sheetData string
}

// fixture describes a minimal xlsx package.
type fixture struct {
	sheets []fixtureSheet
	// sharedStrings is the inner XML of the sst element; no part is written when empty.
	sharedStrings string
	// omitRootRels leaves out _rels/.rels.
	omitRootRels bool
}

func (f fixture) parts() map[string]string {
	parts := make(map[string]string)

	if !f.omitRootRels {
		parts["_rels/.rels"] = fmt.Sprintf(
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<Relationships xmlns="%s"><Relationship Id="rId1" Type="%s" Target="xl/workbook.xml"/></Relationships>`,
			nsRelsPkg, relTypeDoc)
	}

	var sheets, rels strings.Builder
	for i, s := range f.sheets {
		target := s.target
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		fmt.Fprintf(&sheets, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, s.name, i+1, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="%s"/>`, i+1, relTypeWS, target)

		partName := resolveTarget("xl", target)
		parts[partName] = fmt.Sprintf(
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<worksheet xmlns="%s"><sheetData>%s</sheetData></worksheet>`,
			nsMain, s.sheetData)
	}

	if f.sharedStrings != "" {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="%s" Target="sharedStrings.xml"/>`, len(f.sheets)+1, relTypeSST)
		parts["xl/sharedStrings.xml"] = fmt.Sprintf(
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><sst xmlns="%s">%s</sst>`,
			nsMain, f.sharedStrings)
	}

	parts["xl/workbook.xml"] = fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<workbook xmlns="%s" xmlns:r="%s"><sheets>%s</sheets></workbook>`,
		nsMain, nsRelsDoc, sheets.String())
	parts["xl/_rels/workbook.xml.rels"] = fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="%s">%s</Relationships>`,
		nsRelsPkg, rels.String())

	return parts
}

func (f fixture) open(t *testing.T) *zip.Reader {
	t.Helper()
	return openParts(t, f.parts())
}

// openParts zips the given parts in memory and opens them for reading.
func openParts(t *testing.T, parts map[string]string) *zip.Reader {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create part %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write part %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finalize package: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to open package: %v", err)
	}
	return zr
}

// inlineCell renders an inline string cell.
func inlineCell(ref, value string) string {
	return fmt.Sprintf(`<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, value)
}
