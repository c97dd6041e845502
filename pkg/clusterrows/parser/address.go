package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// Grid limits of the host spreadsheet (0-based, inclusive).
const (
	MaxCol = 1023
	MaxRow = 1048575
)

// ErrInvalidReference indicates text that is not a cell or column reference.
var ErrInvalidReference = errors.New("invalid cell reference")

// SheetNamer maps sheet indices to display names.
type SheetNamer interface {
	SheetName(index int) (string, bool)
}

// SheetLookup maps between sheet names and indices.
type SheetLookup interface {
	SheetNamer
	SheetIndex(name string) (int, bool)
}

// EncodeColumn returns the bijective base-26 letters for a 0-based column
// index: 0 is "A", 25 is "Z", 26 is "AA". It panics on a negative index.
func EncodeColumn(index int) string {
	if index < 0 {
		panic(fmt.Sprintf("parser: negative column index %d", index))
	}
	var buf [16]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// DecodeColumn parses column letters (case-insensitive) into a 0-based index.
func DecodeColumn(text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty column", ErrInvalidReference)
	}
	n := 0
	for i := 0; i < len(text); i++ {
		ch := text[i]
		var digit int
		switch {
		case ch >= 'A' && ch <= 'Z':
			digit = int(ch-'A') + 1
		case ch >= 'a' && ch <= 'z':
			digit = int(ch-'a') + 1
		default:
			return 0, fmt.Errorf("%w: column %q", ErrInvalidReference, text)
		}
		if n > (math.MaxInt-digit)/26 {
			return 0, fmt.Errorf("%w: column %q overflows", ErrInvalidReference, text)
		}
		n = n*26 + digit
	}
	return n - 1, nil
}

// EncodeAddress renders a cell position such as "B3" or "$B$3".
func EncodeAddress(col, row int, absolute bool) string {
	var sb strings.Builder
	if absolute {
		sb.WriteByte('$')
	}
	sb.WriteString(EncodeColumn(col))
	if absolute {
		sb.WriteByte('$')
	}
	sb.WriteString(strconv.Itoa(row + 1))
	return sb.String()
}

// QuoteSheetName wraps a sheet name in single quotes, doubling embedded quotes.
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// EncodeRange renders r in the form accepted by the range fields,
// e.g. "$'Sheet1'.$A$1:$C$11". The sheet prefix is omitted when the
// sheet index is unknown to sheets.
func EncodeRange(r models.RangeAddress, sheets SheetNamer) string {
	return sheetPrefix(r.Sheet, sheets) +
		EncodeAddress(r.StartColumn, r.StartRow, true) + ":" +
		EncodeAddress(r.EndColumn, r.EndRow, true)
}

// EncodeCell renders a single cell with its sheet, e.g. "$'Sheet1'.$D$1".
func EncodeCell(c models.CellAddress, sheets SheetNamer) string {
	return sheetPrefix(c.Sheet, sheets) + EncodeAddress(c.Column, c.Row, true)
}

// FormulaReference renders r with relative corners in OOXML formula
// syntax, e.g. "'Sheet1'!A2:C11".
func FormulaReference(r models.RangeAddress, sheets SheetNamer) string {
	var sb strings.Builder
	if sheets != nil {
		if name, ok := sheets.SheetName(r.Sheet); ok {
			sb.WriteString(QuoteSheetName(name))
			sb.WriteByte('!')
		}
	}
	sb.WriteString(EncodeAddress(r.StartColumn, r.StartRow, false))
	if !r.IsSingleCell() {
		sb.WriteByte(':')
		sb.WriteString(EncodeAddress(r.EndColumn, r.EndRow, false))
	}
	return sb.String()
}

// CellName returns the plain A1 name of a cell, as used by excelize.
func CellName(col, row int) string {
	return EncodeAddress(col, row, false)
}

func sheetPrefix(sheet int, sheets SheetNamer) string {
	if sheets == nil {
		return ""
	}
	name, ok := sheets.SheetName(sheet)
	if !ok {
		return ""
	}
	return "$" + QuoteSheetName(name) + "."
}
