package parser

import (
	"strconv"
	"testing"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// sampleRows builds a header row at B2 followed by n numeric rows over three columns.
func sampleRows(n int) [][]string {
	rows := [][]string{{}, {"", "x", "y", "z"}}
	for i := 0; i < n; i++ {
		v := strconv.Itoa(i)
		rows = append(rows, []string{"", v, v + ".5", "-" + v})
	}
	return rows
}

func TestDetectDataRange(t *testing.T) {
	rows := sampleRows(10)
	block := models.RangeAddress{StartColumn: 1, StartRow: 1, EndColumn: 3, EndRow: 11}

	tests := []struct {
		name     string
		sel      models.RangeAddress
		expected models.RangeAddress
	}{
		{
			name:     "cell inside block",
			sel:      models.RangeAddress{StartColumn: 2, StartRow: 5, EndColumn: 2, EndRow: 5},
			expected: block,
		},
		{
			name:     "oversized selection shrinks",
			sel:      models.RangeAddress{StartColumn: 0, StartRow: 0, EndColumn: 20, EndRow: 40},
			expected: block,
		},
		{
			name:     "empty cell above block snaps down",
			sel:      models.RangeAddress{StartColumn: 1, StartRow: 0, EndColumn: 1, EndRow: 0},
			expected: block,
		},
		{
			name:     "empty cell below block snaps up",
			sel:      models.RangeAddress{StartColumn: 2, StartRow: 12, EndColumn: 2, EndRow: 12},
			expected: block,
		},
		{
			name:     "isolated empty cell stays",
			sel:      models.RangeAddress{StartColumn: 8, StartRow: 8, EndColumn: 8, EndRow: 8},
			expected: models.RangeAddress{StartColumn: 8, StartRow: 8, EndColumn: 8, EndRow: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDataRange(rows, tt.sel, DefaultDetectionParams())
			if got != tt.expected {
				t.Errorf("DetectDataRange(%+v) = %+v, expected %+v", tt.sel, got, tt.expected)
			}
		})
	}
}

func TestDetectDataRangeExcludesResultColumns(t *testing.T) {
	rows := sampleRows(10)
	rows[1] = append(rows[1], HeaderClusterID, HeaderConfidence)
	for i := 2; i < len(rows); i++ {
		rows[i] = append(rows[i], "0", "0.9")
	}

	sel := models.RangeAddress{StartColumn: 1, StartRow: 3, EndColumn: 1, EndRow: 3}
	got := DetectDataRange(rows, sel, DefaultDetectionParams())
	expected := models.RangeAddress{StartColumn: 1, StartRow: 1, EndColumn: 3, EndRow: 11}
	if got != expected {
		t.Errorf("DetectDataRange = %+v, expected %+v", got, expected)
	}
}

func TestDetectDataRangeClampsSelection(t *testing.T) {
	sel := models.RangeAddress{EndColumn: 500, EndRow: 20000}
	got := DetectDataRange(nil, sel, DetectionParams{MaxRows: 10, MaxCols: 5})
	// Nothing to fit onto: the clamped selection collapses to its last cell.
	expected := models.RangeAddress{StartColumn: 4, StartRow: 9, EndColumn: 4, EndRow: 9}
	if got != expected {
		t.Errorf("DetectDataRange = %+v, expected %+v", got, expected)
	}
}

func TestDetectHeader(t *testing.T) {
	block := models.RangeAddress{StartColumn: 1, StartRow: 1, EndColumn: 3, EndRow: 11}

	if !DetectHeader(sampleRows(10), block) {
		t.Error("expected header for text row above numbers")
	}

	numeric := sampleRows(10)[2:]
	r := models.RangeAddress{StartColumn: 1, EndColumn: 3, EndRow: 9}
	if DetectHeader(numeric, r) {
		t.Error("expected no header for all-numeric block")
	}

	text := [][]string{{"a", "b"}, {"c", "d"}}
	if DetectHeader(text, models.RangeAddress{EndColumn: 1, EndRow: 1}) {
		t.Error("expected no header when the second row has no numbers")
	}

	if DetectHeader(text, models.RangeAddress{EndColumn: 1}) {
		t.Error("expected no header for a single row")
	}
}
