package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// ExtractMatrix reads the cells of r from rows into a row-major slice.
// Cells that do not hold a number are returned as NaN.
func ExtractMatrix(rows [][]string, r models.RangeAddress) []float64 {
	g := grid(rows)
	data := make([]float64, 0, r.Rows()*r.Columns())
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartColumn; col <= r.EndColumn; col++ {
			data = append(data, numericValue(g.cell(col, row)))
		}
	}
	return data
}

// ParseCount parses an integer form field. Text that is not an integer
// yields -1, which every count range check rejects.
func ParseCount(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return v
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

func isNumeric(s string) bool {
	_, text := parseValue(strings.TrimSpace(s)).(string)
	return !text
}

func numericValue(s string) float64 {
	switch v := parseValue(strings.TrimSpace(s)).(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return math.NaN()
	}
}
