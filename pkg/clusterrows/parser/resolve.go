package parser

import (
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/xuri/excelize/v2"
)

// Resolve parses range text such as "$'Sheet1'.$A$1:$C$11", "Sheet2!B3" or
// "A1:C10" into a RangeAddress. Text without a sheet prefix refers to
// currentSheet. A single cell yields a 1x1 range and reversed corners are
// normalized. It returns false for an unknown sheet or unparsable reference.
func Resolve(text string, sheets SheetLookup, currentSheet int) (models.RangeAddress, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.RangeAddress{}, false
	}

	sheetPart, refPart, hasSheet := splitSheetReference(text)
	sheet := currentSheet
	if hasSheet {
		name, ok := unquoteSheetName(sheetPart)
		if !ok || sheets == nil {
			return models.RangeAddress{}, false
		}
		idx, found := sheets.SheetIndex(name)
		if !found {
			return models.RangeAddress{}, false
		}
		sheet = idx
	}

	r, ok := parseRangeReference(refPart)
	if !ok {
		return models.RangeAddress{}, false
	}
	r.Sheet = sheet
	return r.Normalize(), true
}

// ResolveCell resolves text that must name exactly one cell.
func ResolveCell(text string, sheets SheetLookup, currentSheet int) (models.CellAddress, bool) {
	r, ok := Resolve(text, sheets, currentSheet)
	if !ok || !r.IsSingleCell() {
		return models.CellAddress{}, false
	}
	return r.TopLeft(), true
}

// splitSheetReference splits text at the last '.' or '!' outside single
// quotes. Cell references never contain either character.
func splitSheetReference(text string) (sheet, ref string, ok bool) {
	idx := -1
	inQuote := false
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			inQuote = !inQuote
		case '.', '!':
			if !inQuote {
				idx = i
			}
		}
	}
	if idx < 0 {
		return "", text, false
	}
	return text[:idx], text[idx+1:], true
}

// unquoteSheetName strips the "$" and quote decoration from a sheet name.
func unquoteSheetName(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if strings.HasPrefix(s, "'") {
		if len(s) < 2 || !strings.HasSuffix(s, "'") {
			return "", false
		}
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// parseRangeReference parses "$A$1:$D$10" or "B3" into 0-based bounds.
func parseRangeReference(ref string) (models.RangeAddress, bool) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return models.RangeAddress{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.RangeAddress{}, false
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return models.RangeAddress{}, false
		}
	}

	return models.RangeAddress{
		StartColumn: startCol - 1,
		StartRow:    startRow - 1,
		EndColumn:   endCol - 1,
		EndRow:      endRow - 1,
	}, true
}
