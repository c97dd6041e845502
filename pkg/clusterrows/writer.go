package clusterrows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// ResultSheet is the write side of the host document.
type ResultSheet interface {
	WriteArrayFormula(r models.RangeAddress, formula string) error
	SetCellText(c models.CellAddress, text string) error
	SetCellNumber(c models.CellAddress, v float64) error
	AddConditionalFills(r models.RangeAddress, fills []models.ConditionalFill) error
}

// Writer writes a validated configuration back to the document as an array
// formula, optional header labels and optional per-cluster coloring.
type Writer struct {
	doc       Document
	opts      Options
	clusterer Clusterer
	logger    *slog.Logger
}

// NewWriter creates a Writer. clusterer may be nil, in which case only the
// formula is written and evaluation is left to the spreadsheet application.
func NewWriter(doc Document, opts Options, clusterer Clusterer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{
		doc:       doc,
		opts:      opts,
		clusterer: clusterer,
		logger:    logger,
	}
}

// Formula returns the array formula text for cfg, without the leading "=".
func (w *Writer) Formula(cfg models.ClusterConfig) string {
	return fmt.Sprintf("%s(%s,%d,%d,%d)",
		w.opts.Function(),
		parser.FormulaReference(cfg.DataRange(), w.doc),
		cfg.NumClusters, cfg.NumEpochs, cfg.NumIterations)
}

// Write applies cfg to the document.
func (w *Writer) Write(ctx context.Context, cfg models.ClusterConfig) (models.WriteResult, error) {
	out := cfg.ResultRange()
	sheetName, _ := w.doc.SheetName(out.Sheet)

	res := models.WriteResult{
		SheetName:   sheetName,
		Formula:     w.Formula(cfg),
		OutputRange: parser.FormulaReference(out, nil),
	}

	if w.clusterer != nil {
		assignments, err := w.compute(ctx, cfg)
		if err != nil {
			return res, err
		}
		res.Assignments = assignments
		if w.opts.ShouldWriteValues() {
			if err := w.writeValues(out, assignments); err != nil {
				return res, NewWriteError(sheetName, "values", err)
			}
		}
	}

	if err := w.doc.WriteArrayFormula(out, res.Formula); err != nil {
		return res, NewWriteError(sheetName, "formula", err)
	}

	if cfg.HasHeader {
		if err := w.writeHeader(cfg.Output); err != nil {
			return res, NewWriteError(sheetName, "header", err)
		}
	}

	res.NumClusters = countClusters(cfg.NumClusters, res.Assignments)

	if cfg.ColorRows {
		n := res.NumClusters
		if n == 0 {
			// Labels are unknown until the sheet is recalculated.
			n = MaxClusters
		}
		data := cfg.DataRange()
		if err := w.doc.AddConditionalFills(data, w.clusterFills(data, out, n)); err != nil {
			dataSheet, _ := w.doc.SheetName(data.Sheet)
			return res, NewWriteError(dataSheet, "coloring", err)
		}
		res.Colored = true
	}

	w.logger.Info("wrote cluster results",
		"sheet", sheetName,
		"range", res.OutputRange,
		"clusters", res.NumClusters,
		"colored", res.Colored)
	return res, nil
}

func (w *Writer) compute(ctx context.Context, cfg models.ClusterConfig) ([]models.Assignment, error) {
	data := cfg.DataRange()
	rows, err := w.doc.Rows(data.Sheet)
	if err != nil {
		name, _ := w.doc.SheetName(data.Sheet)
		return nil, NewWriteError(name, "values", err)
	}

	req := models.ClusterRequest{
		Data:          parser.ExtractMatrix(rows, data),
		Rows:          data.Rows(),
		Cols:          data.Columns(),
		NumClusters:   cfg.NumClusters,
		NumEpochs:     cfg.NumEpochs,
		NumIterations: cfg.NumIterations,
	}
	w.logger.Debug("clustering", "rows", req.Rows, "cols", req.Cols, "clusters", req.NumClusters)

	assignments, err := w.clusterer.Cluster(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("cluster rows: %w", err)
	}
	for i, a := range assignments {
		if a.Label == -1 {
			return nil, fmt.Errorf("%w: row %d", ErrComputationRejected, i+1)
		}
	}
	if len(assignments) != req.Rows {
		return nil, fmt.Errorf("%w: got %d assignments for %d rows", ErrComputationRejected, len(assignments), req.Rows)
	}
	return assignments, nil
}

func (w *Writer) writeValues(out models.RangeAddress, assignments []models.Assignment) error {
	for i, a := range assignments {
		row := out.StartRow + i
		if err := w.doc.SetCellNumber(models.CellAddress{Sheet: out.Sheet, Column: out.StartColumn, Row: row}, float64(a.Label)); err != nil {
			return err
		}
		if err := w.doc.SetCellNumber(models.CellAddress{Sheet: out.Sheet, Column: out.StartColumn + 1, Row: row}, a.Confidence); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeHeader(anchor models.CellAddress) error {
	if err := w.doc.SetCellText(anchor, parser.HeaderClusterID); err != nil {
		return err
	}
	anchor.Column++
	return w.doc.SetCellText(anchor, parser.HeaderConfidence)
}

// clusterFills builds one rule per cluster comparing the label column of
// each row against the cluster index.
func (w *Writer) clusterFills(data, out models.RangeAddress, n int) []models.ConditionalFill {
	ref := "$" + parser.EncodeColumn(out.StartColumn) + strconv.Itoa(out.StartRow+1)
	if out.Sheet != data.Sheet {
		if name, ok := w.doc.SheetName(out.Sheet); ok {
			ref = parser.QuoteSheetName(name) + "!" + ref
		}
	}
	colors := ClusterColors(n)
	fills := make([]models.ConditionalFill, n)
	for i := range fills {
		fills[i] = models.ConditionalFill{
			Criteria: ref + "=" + strconv.Itoa(i),
			Color:    colors[i],
		}
	}
	return fills
}

// countClusters returns the requested count, or max label + 1 in automatic mode.
func countClusters(requested int, assignments []models.Assignment) int {
	if requested != 0 {
		return requested
	}
	maxLabel := -1
	for _, a := range assignments {
		if a.Label > maxLabel {
			maxLabel = a.Label
		}
	}
	return maxLabel + 1
}
