// Package models defines data structures shared by the cluster configuration engine.
package models

// CellAddress identifies a single cell. All indices are 0-based.
// A nil *CellAddress means the location has not been set.
type CellAddress struct {
	// Sheet is the sheet index within the workbook.
	Sheet int `json:"sheet"`
	// Column is the column index (0 = A).
	Column int `json:"column"`
	// Row is the row index (0 = row 1).
	Row int `json:"row"`
}

// Range returns the 1x1 range covering c.
func (c CellAddress) Range() RangeAddress {
	return RangeAddress{
		Sheet:       c.Sheet,
		StartColumn: c.Column,
		StartRow:    c.Row,
		EndColumn:   c.Column,
		EndRow:      c.Row,
	}
}
