package models

// RangeAddress represents inclusive cell coordinate bounds on one sheet.
// All indices are 0-based.
type RangeAddress struct {
	// Sheet is the sheet index within the workbook.
	Sheet int `json:"sheet"`
	// StartColumn is the first column.
	StartColumn int `json:"start_column"`
	// StartRow is the first row.
	StartRow int `json:"start_row"`
	// EndColumn is the last column (inclusive).
	EndColumn int `json:"end_column"`
	// EndRow is the last row (inclusive).
	EndRow int `json:"end_row"`
}

// Rows returns the number of rows covered by r.
func (r RangeAddress) Rows() int {
	return r.EndRow - r.StartRow + 1
}

// Columns returns the number of columns covered by r.
func (r RangeAddress) Columns() int {
	return r.EndColumn - r.StartColumn + 1
}

// TopLeft returns the first cell of r.
func (r RangeAddress) TopLeft() CellAddress {
	return CellAddress{Sheet: r.Sheet, Column: r.StartColumn, Row: r.StartRow}
}

// BottomRight returns the last cell of r.
func (r RangeAddress) BottomRight() CellAddress {
	return CellAddress{Sheet: r.Sheet, Column: r.EndColumn, Row: r.EndRow}
}

// IsSingleCell reports whether r covers exactly one cell.
func (r RangeAddress) IsSingleCell() bool {
	return r.StartColumn == r.EndColumn && r.StartRow == r.EndRow
}

// Normalize returns r with start and end swapped where they are reversed.
func (r RangeAddress) Normalize() RangeAddress {
	if r.StartColumn > r.EndColumn {
		r.StartColumn, r.EndColumn = r.EndColumn, r.StartColumn
	}
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	return r
}

// Contains reports whether c lies inside r.
func (r RangeAddress) Contains(c CellAddress) bool {
	return c.Sheet == r.Sheet &&
		c.Column >= r.StartColumn && c.Column <= r.EndColumn &&
		c.Row >= r.StartRow && c.Row <= r.EndRow
}
