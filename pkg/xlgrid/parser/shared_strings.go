package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/xstring"
)

// loadSharedStrings reads the shared string table of the workbook.
// A workbook without one yields a nil table.
func (wb *workbook) loadSharedStrings() ([]string, error) {
	if wb.sharedStringsPath == "" {
		return nil, nil
	}

	data, err := readZipFile(wb.zr, wb.sharedStringsPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	return parseSharedStrings(data)
}

// parseSharedStrings returns the text of every si entry in table order.
func parseSharedStrings(data []byte) ([]string, error) {
	var table []string
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: shared strings: %v", ErrCorruptDocument, err)
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "si" {
			text, err := readRichText(decoder)
			if err != nil {
				return nil, fmt.Errorf("%w: shared string %d: %v", ErrCorruptDocument, len(table), err)
			}
			table = append(table, text)
		}
	}

	return table, nil
}

// readRichText collects the text of a string item (si or is element): its own
// t element plus the t element of every rich text run, with _xHHHH_ escapes
// decoded. Phonetic runs are skipped.
func readRichText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "t":
				text, err := readElementText(decoder)
				if err != nil {
					return "", err
				}
				sb.WriteString(xstring.Unescape(text))
				depth--
			case "rPh", "phoneticPr":
				if err := decoder.Skip(); err != nil {
					return "", err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return sb.String(), nil
}
