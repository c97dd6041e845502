package clusterrows

import (
	"errors"
	"testing"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
	"github.com/google/go-cmp/cmp"
)

func TestModelDerivations(t *testing.T) {
	m := NewModel()
	if m.Rows() != 0 || m.DataRows() != 0 || m.Columns() != 0 {
		t.Errorf("unset model should derive zeros, got %d/%d/%d", m.Rows(), m.DataRows(), m.Columns())
	}
	if _, ok := m.Snapshot(); ok {
		t.Error("Snapshot should fail without addresses")
	}

	if err := m.SetInputRange(&models.RangeAddress{StartColumn: 0, StartRow: 5, EndColumn: 2, EndRow: 104}); err != nil {
		t.Fatalf("SetInputRange failed: %v", err)
	}
	m.HasHeader = true

	if m.Rows() != 100 {
		t.Errorf("Rows() = %d, expected 100", m.Rows())
	}
	if m.DataRows() != 99 {
		t.Errorf("DataRows() = %d, expected 99", m.DataRows())
	}
	if m.Columns() != 3 {
		t.Errorf("Columns() = %d, expected 3", m.Columns())
	}

	cfg, ok := m.Snapshot()
	if !ok {
		t.Fatal("Snapshot should succeed with a default output")
	}
	if cfg.DataRows() != 99 {
		t.Errorf("snapshot DataRows() = %d, expected 99", cfg.DataRows())
	}
}

func TestModelDefaultOutputFollowsInput(t *testing.T) {
	m := NewModel()
	m.SetInputRange(&models.RangeAddress{Sheet: 1, StartColumn: 2, StartRow: 4, EndColumn: 0, EndRow: 20})

	in, _ := m.Input()
	if diff := cmp.Diff(models.RangeAddress{Sheet: 1, StartColumn: 0, StartRow: 4, EndColumn: 2, EndRow: 20}, in); diff != "" {
		t.Errorf("input not normalized (-want +got):\n%s", diff)
	}
	out, ok := m.Output()
	if !ok || out != (models.CellAddress{Sheet: 1, Column: 3, Row: 4}) {
		t.Errorf("default output = %+v, %v", out, ok)
	}

	m.SetInputRange(&models.RangeAddress{StartColumn: 5, EndColumn: 6, EndRow: 9})
	out, _ = m.Output()
	if out != (models.CellAddress{Column: 7}) {
		t.Errorf("default output did not follow input: %+v", out)
	}

	m.SetInputRange(nil)
	if _, ok := m.Output(); ok {
		t.Error("clearing the input should clear a derived output")
	}
	if m.OutputExplicit() {
		t.Error("output should not be explicit")
	}
}

func TestModelExplicitOutputIsSticky(t *testing.T) {
	m := NewModel()
	m.SetInputRange(&models.RangeAddress{EndColumn: 2, EndRow: 10})
	if err := m.SetOutputLocation(&models.CellAddress{Column: 9, Row: 3}); err != nil {
		t.Fatalf("SetOutputLocation failed: %v", err)
	}

	m.SetInputRange(&models.RangeAddress{StartColumn: 4, EndColumn: 6, EndRow: 50})
	out, _ := m.Output()
	if out != (models.CellAddress{Column: 9, Row: 3}) {
		t.Errorf("explicit output moved: %+v", out)
	}

	m.SetOutputLocation(nil)
	m.SetInputRange(&models.RangeAddress{EndColumn: 1, EndRow: 10})
	if _, ok := m.Output(); ok {
		t.Error("unset explicit output should not be re-derived")
	}
	if !m.OutputExplicit() {
		t.Error("output should stay explicit after being unset")
	}
}

func TestModelRejectsOffGrid(t *testing.T) {
	m := NewModel()
	m.SetInputRange(&models.RangeAddress{EndColumn: 2, EndRow: 10})
	before := *m

	tests := []struct {
		name string
		set  func() error
	}{
		{"input past last column", func() error {
			return m.SetInputRange(&models.RangeAddress{EndColumn: parser.MaxCol + 1, EndRow: 10})
		}},
		{"input past last row", func() error {
			return m.SetInputRange(&models.RangeAddress{EndColumn: 2, EndRow: parser.MaxRow + 1})
		}},
		{"negative input", func() error {
			return m.SetInputRange(&models.RangeAddress{StartRow: -1, EndColumn: 2, EndRow: 10})
		}},
		{"output past last column", func() error {
			return m.SetOutputLocation(&models.CellAddress{Column: parser.MaxCol + 1})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set()
			var cv *ConstraintViolation
			if !errors.As(err, &cv) {
				t.Fatalf("expected ConstraintViolation, got %v", err)
			}
			if diff := cmp.Diff(before, *m, cmp.AllowUnexported(Model{})); diff != "" {
				t.Errorf("model changed (-want +got):\n%s", diff)
			}
		})
	}
}
