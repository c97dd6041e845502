package parser

import (
	"errors"
	"testing"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// stubSheets is a fixed sheet list for address tests.
type stubSheets []string

func (s stubSheets) SheetName(index int) (string, bool) {
	if index < 0 || index >= len(s) {
		return "", false
	}
	return s[index], true
}

func (s stubSheets) SheetIndex(name string) (int, bool) {
	for i, n := range s {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func TestEncodeColumn(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{MaxCol, "AMJ"},
	}

	for _, tt := range tests {
		if result := EncodeColumn(tt.index); result != tt.expected {
			t.Errorf("EncodeColumn(%d) = %q, expected %q", tt.index, result, tt.expected)
		}
	}
}

func TestEncodeColumnNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EncodeColumn(-1) did not panic")
		}
	}()
	EncodeColumn(-1)
}

func TestColumnRoundTrip(t *testing.T) {
	for i := 0; i <= MaxCol; i++ {
		letters := EncodeColumn(i)
		got, err := DecodeColumn(letters)
		if err != nil {
			t.Fatalf("DecodeColumn(%q) failed: %v", letters, err)
		}
		if got != i {
			t.Fatalf("DecodeColumn(EncodeColumn(%d)) = %d", i, got)
		}
	}
}

func TestDecodeColumn(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"A", 0, false},
		{"z", 25, false},
		{"aa", 26, false},
		{"ZZ", 701, false},
		{"AAA", 702, false},
		{"", 0, true},
		{"A1", 0, true},
		{"$A", 0, true},
		{"ZZZZZZZZZZZZZZZZZZZZ", 0, true},
	}

	for _, tt := range tests {
		got, err := DecodeColumn(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("DecodeColumn(%q) error = %v, expected ErrInvalidReference", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeColumn(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("DecodeColumn(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestEncodeAddress(t *testing.T) {
	tests := []struct {
		col, row int
		absolute bool
		expected string
	}{
		{0, 0, false, "A1"},
		{0, 0, true, "$A$1"},
		{27, 9, true, "$AB$10"},
		{MaxCol, MaxRow, false, "AMJ1048576"},
	}

	for _, tt := range tests {
		if result := EncodeAddress(tt.col, tt.row, tt.absolute); result != tt.expected {
			t.Errorf("EncodeAddress(%d, %d, %v) = %q, expected %q",
				tt.col, tt.row, tt.absolute, result, tt.expected)
		}
	}
}

func TestEncodeRange(t *testing.T) {
	sheets := stubSheets{"Sheet1", "It's"}

	tests := []struct {
		r        models.RangeAddress
		expected string
	}{
		{models.RangeAddress{Sheet: 0, EndColumn: 2, EndRow: 10}, "$'Sheet1'.$A$1:$C$11"},
		{models.RangeAddress{Sheet: 1, StartColumn: 1, StartRow: 1, EndColumn: 1, EndRow: 1}, "$'It''s'.$B$2:$B$2"},
		{models.RangeAddress{Sheet: 5, EndColumn: 0, EndRow: 0}, "$A$1:$A$1"},
	}

	for _, tt := range tests {
		if result := EncodeRange(tt.r, sheets); result != tt.expected {
			t.Errorf("EncodeRange(%+v) = %q, expected %q", tt.r, result, tt.expected)
		}
	}
}

func TestEncodeCellAndFormulaReference(t *testing.T) {
	sheets := stubSheets{"Sheet1"}

	if got := EncodeCell(models.CellAddress{Column: 3}, sheets); got != "$'Sheet1'.$D$1" {
		t.Errorf("EncodeCell = %q", got)
	}
	r := models.RangeAddress{StartColumn: 0, StartRow: 1, EndColumn: 2, EndRow: 10}
	if got := FormulaReference(r, sheets); got != "'Sheet1'!A2:C11" {
		t.Errorf("FormulaReference = %q", got)
	}
	if got := FormulaReference(models.CellAddress{Column: 1, Row: 1}.Range(), nil); got != "B2" {
		t.Errorf("FormulaReference single cell = %q", got)
	}
}
