package models

// ClusterConfig is an immutable snapshot of a validated configuration,
// handed to the result writer on accept.
type ClusterConfig struct {
	// Input is the selected data range, including the header row if any.
	Input RangeAddress `json:"input"`
	// Output is the anchor cell of the two result columns.
	Output CellAddress `json:"output"`
	// NumClusters is the requested cluster count (0 = automatic).
	NumClusters int `json:"num_clusters"`
	// NumEpochs is the number of training restarts.
	NumEpochs int `json:"num_epochs"`
	// NumIterations is the iteration cap per epoch.
	NumIterations int `json:"num_iterations"`
	// HasHeader marks the first input row as column titles.
	HasHeader bool `json:"has_header"`
	// ColorRows requests per-cluster coloring of the data rows.
	ColorRows bool `json:"color_rows"`
}

// DataRange returns the input range without the header row.
func (c ClusterConfig) DataRange() RangeAddress {
	r := c.Input
	if c.HasHeader {
		r.StartRow++
	}
	return r
}

// DataRows returns the number of sample rows.
func (c ClusterConfig) DataRows() int {
	return c.DataRange().Rows()
}

// ResultRange returns the two-column block receiving cluster ids and
// confidences. It starts one row below the anchor when a header is present.
func (c ClusterConfig) ResultRange() RangeAddress {
	start := c.Output.Row
	if c.HasHeader {
		start++
	}
	return RangeAddress{
		Sheet:       c.Output.Sheet,
		StartColumn: c.Output.Column,
		StartRow:    start,
		EndColumn:   c.Output.Column + 1,
		EndRow:      start + c.DataRows() - 1,
	}
}
