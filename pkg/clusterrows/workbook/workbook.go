// Package workbook adapts an excelize workbook to the clusterrows document model.
package workbook

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

var _ clusterrows.Document = (*Workbook)(nil)

// Workbook is a clusterrows.Document backed by an excelize file.
type Workbook struct {
	f         *excelize.File
	fold      cases.Caser
	logger    *slog.Logger
	selection *models.RangeAddress
	rows      map[int][][]string
}

// Option customizes a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger for workbook diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbook) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Open opens an xlsx file.
func Open(path string, opts ...Option) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return New(f, opts...), nil
}

// New wraps an already opened excelize file.
func New(f *excelize.File, opts ...Option) *Workbook {
	w := &Workbook{
		f:      f,
		fold:   cases.Fold(),
		logger: slog.New(slog.DiscardHandler),
		rows:   make(map[int][][]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File { return w.f }

// Close closes the underlying file.
func (w *Workbook) Close() error { return w.f.Close() }

// Save writes the workbook back to the path it was opened from.
func (w *Workbook) Save() error { return w.f.Save() }

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error { return w.f.SaveAs(path) }

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string { return w.f.GetSheetList() }

// SheetName returns the name of the sheet at index.
func (w *Workbook) SheetName(index int) (string, bool) {
	sheets := w.f.GetSheetList()
	if index < 0 || index >= len(sheets) {
		return "", false
	}
	return sheets[index], true
}

// SheetIndex returns the index of the named sheet. Names compare
// case-insensitively, as in spreadsheet applications.
func (w *Workbook) SheetIndex(name string) (int, bool) {
	sheets := w.f.GetSheetList()
	for i, s := range sheets {
		if s == name {
			return i, true
		}
	}
	folded := w.fold.String(name)
	for i, s := range sheets {
		if w.fold.String(s) == folded {
			return i, true
		}
	}
	return 0, false
}

// ActiveSheet returns the index of the active sheet.
func (w *Workbook) ActiveSheet() int { return w.f.GetActiveSheetIndex() }

// SetActiveSheet makes the sheet at index active.
func (w *Workbook) SetActiveSheet(index int) { w.f.SetActiveSheet(index) }

// SetSelection overrides the selection stored in the file.
func (w *Workbook) SetSelection(r models.RangeAddress) {
	r = r.Normalize()
	w.selection = &r
}

// CurrentSelection returns the selection override if set, otherwise the
// selection saved in the active sheet's view, falling back to A1.
func (w *Workbook) CurrentSelection() (models.RangeAddress, error) {
	if w.selection != nil {
		return *w.selection, nil
	}
	sheet := w.ActiveSheet()
	name, ok := w.SheetName(sheet)
	if !ok {
		return models.RangeAddress{}, clusterrows.ErrNoSelection
	}
	panes, err := w.f.GetPanes(name)
	if err != nil {
		return models.RangeAddress{}, fmt.Errorf("read sheet view of %q: %w", name, err)
	}
	for _, sel := range panes.Selection {
		for _, ref := range []string{firstRef(sel.SQRef), sel.ActiveCell} {
			if ref == "" {
				continue
			}
			if r, ok := parser.Resolve(ref, w, sheet); ok {
				return r, nil
			}
			w.logger.Debug("ignoring unparsable selection", "sheet", name, "ref", ref)
		}
	}
	return models.CellAddress{Sheet: sheet}.Range(), nil
}

// Rows returns the raw cell text of a sheet. Results are cached until the
// sheet is written to.
func (w *Workbook) Rows(sheet int) ([][]string, error) {
	if rows, ok := w.rows[sheet]; ok {
		return rows, nil
	}
	name, ok := w.SheetName(sheet)
	if !ok {
		return nil, fmt.Errorf("no sheet at index %d", sheet)
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	w.rows[sheet] = rows
	return rows, nil
}

// WriteArrayFormula places formula as an array formula over r.
func (w *Workbook) WriteArrayFormula(r models.RangeAddress, formula string) error {
	name, err := w.sheetForWrite(r.Sheet)
	if err != nil {
		return err
	}
	formulaType := excelize.STCellFormulaTypeArray
	ref := parser.CellName(r.StartColumn, r.StartRow) + ":" + parser.CellName(r.EndColumn, r.EndRow)
	return w.f.SetCellFormula(name, parser.CellName(r.StartColumn, r.StartRow), formula,
		excelize.FormulaOpts{Type: &formulaType, Ref: &ref})
}

// SetCellText writes a string cell.
func (w *Workbook) SetCellText(c models.CellAddress, text string) error {
	name, err := w.sheetForWrite(c.Sheet)
	if err != nil {
		return err
	}
	return w.f.SetCellStr(name, parser.CellName(c.Column, c.Row), text)
}

// SetCellNumber writes a numeric cell.
func (w *Workbook) SetCellNumber(c models.CellAddress, v float64) error {
	name, err := w.sheetForWrite(c.Sheet)
	if err != nil {
		return err
	}
	return w.f.SetCellFloat(name, parser.CellName(c.Column, c.Row), v, -1, 64)
}

// AddConditionalFills adds one formula rule per fill over r.
func (w *Workbook) AddConditionalFills(r models.RangeAddress, fills []models.ConditionalFill) error {
	if len(fills) == 0 {
		return nil
	}
	name, err := w.sheetForWrite(r.Sheet)
	if err != nil {
		return err
	}
	opts := make([]excelize.ConditionalFormatOptions, 0, len(fills))
	for _, fill := range fills {
		style, err := w.f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{fill.Color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create fill style %s: %w", fill.Color, err)
		}
		opts = append(opts, excelize.ConditionalFormatOptions{
			Type:     "formula",
			Criteria: fill.Criteria,
			Format:   &style,
		})
	}
	ref := parser.CellName(r.StartColumn, r.StartRow) + ":" + parser.CellName(r.EndColumn, r.EndRow)
	return w.f.SetConditionalFormat(name, ref, opts)
}

// sheetForWrite resolves a sheet index and drops its cached rows.
func (w *Workbook) sheetForWrite(sheet int) (string, error) {
	name, ok := w.SheetName(sheet)
	if !ok {
		return "", fmt.Errorf("no sheet at index %d", sheet)
	}
	delete(w.rows, sheet)
	return name, nil
}

// firstRef returns the first reference of a space-separated sqref list.
func firstRef(sqref string) string {
	fields := strings.Fields(sqref)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
