package models

// ClusterRequest is the input handed to a clustering routine.
type ClusterRequest struct {
	// Data holds the sample matrix in row-major order. Cells without a
	// number are NaN.
	Data []float64 `json:"-"`
	// Rows is the number of samples.
	Rows int `json:"rows"`
	// Cols is the number of features per sample.
	Cols int `json:"cols"`
	// NumClusters is the requested cluster count (0 = automatic).
	NumClusters int `json:"num_clusters"`
	// NumEpochs is the number of training restarts.
	NumEpochs int `json:"num_epochs"`
	// NumIterations is the iteration cap per epoch.
	NumIterations int `json:"num_iterations"`
}

// ConditionalFill colors cells of a range for which Criteria holds.
type ConditionalFill struct {
	// Criteria is a formula relative to the top-left cell of the range.
	Criteria string `json:"criteria"`
	// Color is the fill color as "#RRGGBB".
	Color string `json:"color"`
}
