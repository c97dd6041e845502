package workbook

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func newTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	if _, err := f.NewSheet("Data Two"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	return New(f)
}

func TestSheetLookup(t *testing.T) {
	w := newTestWorkbook(t)

	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"Sheet1", 0, true},
		{"sheet1", 0, true},
		{"DATA TWO", 1, true},
		{"Missing", 0, false},
	}

	for _, tt := range tests {
		index, ok := w.SheetIndex(tt.name)
		if ok != tt.ok || index != tt.index {
			t.Errorf("SheetIndex(%q) = %d, %v, expected %d, %v", tt.name, index, ok, tt.index, tt.ok)
		}
	}

	if name, ok := w.SheetName(1); !ok || name != "Data Two" {
		t.Errorf("SheetName(1) = %q, %v", name, ok)
	}
	if _, ok := w.SheetName(2); ok {
		t.Error("SheetName(2) should not exist")
	}
}

func TestCurrentSelection(t *testing.T) {
	w := newTestWorkbook(t)

	// No saved selection defaults to A1.
	got, err := w.CurrentSelection()
	if err != nil {
		t.Fatalf("CurrentSelection failed: %v", err)
	}
	if got != (models.RangeAddress{}) {
		t.Errorf("default selection = %+v", got)
	}

	err = w.File().SetPanes("Sheet1", &excelize.Panes{
		Selection: []excelize.Selection{{SQRef: "B2:D12 F1", ActiveCell: "B2"}},
	})
	if err != nil {
		t.Fatalf("SetPanes failed: %v", err)
	}
	got, err = w.CurrentSelection()
	if err != nil {
		t.Fatalf("CurrentSelection failed: %v", err)
	}
	expected := models.RangeAddress{StartColumn: 1, StartRow: 1, EndColumn: 3, EndRow: 11}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	override := models.RangeAddress{Sheet: 1, StartColumn: 4, StartRow: 4, EndColumn: 2, EndRow: 2}
	w.SetSelection(override)
	got, _ = w.CurrentSelection()
	if diff := cmp.Diff(override.Normalize(), got); diff != "" {
		t.Errorf("override mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsCacheInvalidatedOnWrite(t *testing.T) {
	w := newTestWorkbook(t)
	w.File().SetCellValue("Sheet1", "A1", 1)

	rows, err := w.Rows(0)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	if err := w.SetCellText(models.CellAddress{Row: 2}, "x"); err != nil {
		t.Fatalf("SetCellText failed: %v", err)
	}
	rows, err = w.Rows(0)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 3 || rows[2][0] != "x" {
		t.Errorf("rows not refreshed after write: %v", rows)
	}

	if _, err := w.Rows(5); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestWriteArrayFormula(t *testing.T) {
	w := newTestWorkbook(t)
	r := models.RangeAddress{StartColumn: 3, StartRow: 1, EndColumn: 4, EndRow: 10}
	if err := w.WriteArrayFormula(r, "GMMCLUSTER('Sheet1'!A2:C11,0,10,100)"); err != nil {
		t.Fatalf("WriteArrayFormula failed: %v", err)
	}
	formula, err := w.File().GetCellFormula("Sheet1", "D2")
	if err != nil {
		t.Fatalf("GetCellFormula failed: %v", err)
	}
	if formula != "GMMCLUSTER('Sheet1'!A2:C11,0,10,100)" {
		t.Errorf("formula = %q", formula)
	}
}

func TestAddConditionalFills(t *testing.T) {
	w := newTestWorkbook(t)
	r := models.RangeAddress{EndColumn: 2, EndRow: 9}
	fills := []models.ConditionalFill{
		{Criteria: "$D1=0", Color: "#df2020"},
		{Criteria: "$D1=1", Color: "#20dfdf"},
	}
	if err := w.AddConditionalFills(r, fills); err != nil {
		t.Fatalf("AddConditionalFills failed: %v", err)
	}
	formats, err := w.File().GetConditionalFormats("Sheet1")
	if err != nil {
		t.Fatalf("GetConditionalFormats failed: %v", err)
	}
	rules := formats["A1:C10"]
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules on A1:C10, got %v", formats)
	}
	if rules[1].Criteria != "$D1=1" {
		t.Errorf("criteria = %q", rules[1].Criteria)
	}
}

func TestOpenAndSave(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.xlsx")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Open(missing) error = %v, expected ErrFileNotFound", err)
	}

	w := newTestWorkbook(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := w.SetCellNumber(models.CellAddress{Sheet: 1, Column: 1, Row: 1}, 2.5); err != nil {
		t.Fatalf("SetCellNumber failed: %v", err)
	}
	if err := w.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	w2, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer w2.Close()
	rows, err := w2.Rows(1)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if rows[1][1] != "2.5" {
		t.Errorf("B2 = %q, expected 2.5", rows[1][1])
	}
}
