package parser

import (
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// Result column titles written next to clustered data.
const (
	HeaderClusterID  = "ClusterId"
	HeaderConfidence = "Confidence"
)

// DetectionParams bounds the initial selection before it is fitted to data.
type DetectionParams struct {
	MaxRows int
	MaxCols int
}

// DefaultDetectionParams returns default data range detection parameters.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		MaxRows: 8000,
		MaxCols: 100,
	}
}

// DetectDataRange fits a selection to the surrounding block of data.
// The selection is clamped to params, shrunk to its non-empty bounds and
// then grown while adjacent rows or columns hold data. A single empty cell
// next to data snaps onto that data first. Trailing result columns from a
// previous run are excluded.
func DetectDataRange(rows [][]string, sel models.RangeAddress, params DetectionParams) models.RangeAddress {
	r := sel.Normalize()
	if params.MaxRows > 0 && r.Rows() > params.MaxRows {
		r.EndRow = r.StartRow + params.MaxRows - 1
	}
	if params.MaxCols > 0 && r.Columns() > params.MaxCols {
		r.EndColumn = r.StartColumn + params.MaxCols - 1
	}

	g := grid(rows)
	r = g.shrink(r)
	if r.IsSingleCell() && g.empty(r.StartColumn, r.StartRow) {
		switch {
		case r.StartRow < MaxRow && !g.empty(r.StartColumn, r.StartRow+1):
			r.StartRow++
			r.EndRow++
		case r.StartRow > 0 && !g.empty(r.StartColumn, r.StartRow-1):
			r.StartRow--
			r.EndRow--
		default:
			return r
		}
	}
	r = g.expand(r)
	return g.excludeResultColumns(r)
}

// DetectHeader reports whether the first row of r looks like column titles:
// it holds text only and the row below holds at least one number.
func DetectHeader(rows [][]string, r models.RangeAddress) bool {
	if r.Rows() < 2 {
		return false
	}
	g := grid(rows)
	titles := 0
	for col := r.StartColumn; col <= r.EndColumn; col++ {
		cell := g.cell(col, r.StartRow)
		if cell == "" {
			continue
		}
		if isNumeric(cell) {
			return false
		}
		titles++
	}
	if titles == 0 {
		return false
	}
	for col := r.StartColumn; col <= r.EndColumn; col++ {
		if isNumeric(g.cell(col, r.StartRow+1)) {
			return true
		}
	}
	return false
}

// grid gives bounds-safe access to a jagged row slice as returned by GetRows.
type grid [][]string

func (g grid) cell(col, row int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

func (g grid) empty(col, row int) bool {
	return g.cell(col, row) == ""
}

func (g grid) columnEmpty(col, startRow, endRow int) bool {
	for row := startRow; row <= endRow && row < len(g); row++ {
		if !g.empty(col, row) {
			return false
		}
	}
	return true
}

func (g grid) rowEmpty(row, startCol, endCol int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for col := startCol; col <= endCol && col < len(g[row]); col++ {
		if !g.empty(col, row) {
			return false
		}
	}
	return true
}

func (g grid) shrink(r models.RangeAddress) models.RangeAddress {
	start := r.EndColumn
	for col := r.StartColumn; col <= r.EndColumn; col++ {
		if !g.columnEmpty(col, r.StartRow, r.EndRow) {
			start = col
			break
		}
	}
	end := start
	for col := r.EndColumn; col >= start; col-- {
		if !g.columnEmpty(col, r.StartRow, r.EndRow) {
			end = col
			break
		}
	}
	r.StartColumn, r.EndColumn = start, end

	start = r.EndRow
	for row := r.StartRow; row <= r.EndRow; row++ {
		if !g.rowEmpty(row, r.StartColumn, r.EndColumn) {
			start = row
			break
		}
	}
	end = start
	for row := r.EndRow; row >= start; row-- {
		if !g.rowEmpty(row, r.StartColumn, r.EndColumn) {
			end = row
			break
		}
	}
	r.StartRow, r.EndRow = start, end
	return r
}

func (g grid) expand(r models.RangeAddress) models.RangeAddress {
	for r.StartColumn > 0 && !g.columnEmpty(r.StartColumn-1, r.StartRow, r.EndRow) {
		r.StartColumn--
	}
	for r.EndColumn < MaxCol && !g.columnEmpty(r.EndColumn+1, r.StartRow, r.EndRow) {
		r.EndColumn++
	}
	for r.StartRow > 0 && !g.rowEmpty(r.StartRow-1, r.StartColumn, r.EndColumn) {
		r.StartRow--
	}
	for r.EndRow < MaxRow && !g.rowEmpty(r.EndRow+1, r.StartColumn, r.EndColumn) {
		r.EndRow++
	}
	return r
}

// excludeResultColumns drops trailing ClusterId/Confidence columns.
func (g grid) excludeResultColumns(r models.RangeAddress) models.RangeAddress {
	for _, title := range []string{HeaderConfidence, HeaderClusterID} {
		if r.EndColumn > r.StartColumn && g.cell(r.EndColumn, r.StartRow) == title {
			r.EndColumn--
		}
	}
	return r
}
