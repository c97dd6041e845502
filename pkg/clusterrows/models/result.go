package models

// Assignment is the clustering outcome for one sample row.
type Assignment struct {
	// Label is the cluster index, or -1 when the computation rejected the input.
	Label int `json:"label"`
	// Confidence is the membership probability of Label.
	Confidence float64 `json:"confidence"`
}

// WriteResult describes what was written back to the workbook.
type WriteResult struct {
	// SheetName is the sheet receiving the results.
	SheetName string `json:"sheet_name"`
	// Formula is the array formula placed over the result range.
	Formula string `json:"formula"`
	// OutputRange is the result range in A1 notation.
	OutputRange string `json:"output_range"`
	// NumClusters is the number of clusters found (or requested).
	NumClusters int `json:"num_clusters"`
	// Colored reports whether conditional coloring was applied.
	Colored bool `json:"colored"`
	// Assignments holds the per-row results when a clusterer was run.
	Assignments []Assignment `json:"assignments,omitempty"`
}
