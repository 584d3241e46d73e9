package writer

import "encoding/xml"

// XML namespaces and relationship types of the parts written by this package.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"

	relTypeOfficeDocument = nsRelationships + "/officeDocument"
	relTypeWorksheet      = nsRelationships + "/worksheet"

	contentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	contentTypeXML           = "application/xml"
	contentTypeWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	contentTypeWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
)

// Part names.
const (
	partContentTypes   = "[Content_Types].xml"
	partRootRels       = "_rels/.rels"
	partWorkbook       = "xl/workbook.xml"
	partWorkbookRels   = "xl/_rels/workbook.xml.rels"
	worksheetTargetFmt = "worksheets/sheet%d.xml"
)

// xlsxTypes maps the Types element of [Content_Types].xml.
type xlsxTypes struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []xlsxDefault  `xml:"Default"`
	Overrides []xlsxOverride `xml:"Override"`
}

type xlsxDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// xlsxRelationships maps the Relationships element of a .rels part.
type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// xlsxWorkbook maps the workbook element. The r prefix is declared literally so
// that sheet relationship ids are written as r:id.
type xlsxWorkbook struct {
	XMLName xml.Name    `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main workbook"`
	XMLNSR  string      `xml:"xmlns:r,attr"`
	Sheets  []xlsxSheet `xml:"sheets>sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

// xlsxWorksheet maps the worksheet element with only the sheetData child.
type xlsxWorksheet struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	Dimension *xlsxDimension `xml:"dimension"`
	SheetData xlsxSheetData  `xml:"sheetData"`
}

type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetData struct {
	Rows []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R     int     `xml:"r,attr"`
	Cells []xlsxC `xml:"c"`
}

// xlsxC is a cell holding an inline string.
type xlsxC struct {
	R  string `xml:"r,attr"`
	T  string `xml:"t,attr"`
	IS xlsxIS `xml:"is"`
}

type xlsxIS struct {
	T xlsxT `xml:"t"`
}

// xlsxT is a text element; xml:space="preserve" keeps leading and trailing whitespace.
type xlsxT struct {
	Space string `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Val   string `xml:",chardata"`
}
