// Package extract converts uploaded files into plain text for prompt
// assembly. It special-cases Word documents and spreadsheets by structure,
// falls back to a raw decode for text media types, and yields empty text for
// anything it does not understand.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
	"github.com/xuri/excelize/v2"
)

// Text converts one file to plain text.
//
// Unsupported formats return ("", nil): not knowing a format is not an
// error. A format we claim to support but cannot parse returns an error;
// callers are expected to absorb it into an empty-text fallback.
func Text(name, mimeType string, data []byte) (string, error) {
	switch {
	case strings.HasSuffix(name, ".docx"):
		return docxText(data)
	// Legacy binary .xls is deliberately not claimed: the reader below only
	// understands OOXML, so .xls takes the empty-text default like any other
	// unsupported format.
	case strings.HasSuffix(name, ".xlsx"):
		return spreadsheetText(data)
	case strings.HasPrefix(mimeType, "text/"):
		return string(data), nil
	default:
		return "", nil
	}
}

func docxText(data []byte) (string, error) {
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("converting docx: %w", err)
	}
	return body, nil
}

// spreadsheetText serializes every sheet as a tab-separated grid prefixed by
// its sheet name, one blank line between sheets.
func spreadsheetText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		fmt.Fprintf(&sb, "Sheet: %s\n", sheet)
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
