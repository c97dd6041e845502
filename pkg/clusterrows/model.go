package clusterrows

import (
	"fmt"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// Model holds the configuration being edited in a dialog.
//
// The output anchor follows the input range (one column right of it, same
// top row) until an output location is set explicitly; from then on it is
// left alone. Scalars accept any value and are range checked by Validate.
type Model struct {
	input          *models.RangeAddress
	output         *models.CellAddress
	outputExplicit bool

	NumClusters   int
	NumEpochs     int
	NumIterations int
	HasHeader     bool
	ColorRows     bool
}

// NewModel returns a model with no addresses and default scalars.
func NewModel() *Model {
	return &Model{
		NumClusters:   DefaultNumClusters,
		NumEpochs:     DefaultNumEpochs,
		NumIterations: DefaultNumIterations,
	}
}

// Input returns the input range, if set.
func (m *Model) Input() (models.RangeAddress, bool) {
	if m.input == nil {
		return models.RangeAddress{}, false
	}
	return *m.input, true
}

// Output returns the output anchor, if set.
func (m *Model) Output() (models.CellAddress, bool) {
	if m.output == nil {
		return models.CellAddress{}, false
	}
	return *m.output, true
}

// OutputExplicit reports whether the output anchor was set by the user.
func (m *Model) OutputExplicit() bool {
	return m.outputExplicit
}

// SetInputRange replaces the input range. A nil range unsets it. Ranges
// outside the sheet grid are rejected and leave the model unchanged.
func (m *Model) SetInputRange(r *models.RangeAddress) error {
	if r != nil {
		nr := r.Normalize()
		if err := checkGrid(FieldInputRange, nr); err != nil {
			return err
		}
		r = &nr
	}
	m.input = r
	if m.outputExplicit {
		return nil
	}
	if r == nil {
		m.output = nil
		return nil
	}
	m.output = &models.CellAddress{
		Sheet:  r.Sheet,
		Column: r.EndColumn + 1,
		Row:    r.StartRow,
	}
	return nil
}

// SetOutputLocation replaces the output anchor and stops it following the
// input range. A nil address unsets it without restoring that behavior.
func (m *Model) SetOutputLocation(c *models.CellAddress) error {
	if c != nil {
		if err := checkGrid(FieldOutputLocation, c.Range()); err != nil {
			return err
		}
		cc := *c
		c = &cc
	}
	m.output = c
	m.outputExplicit = true
	return nil
}

// Rows returns the number of input rows including any header, or 0.
func (m *Model) Rows() int {
	if m.input == nil {
		return 0
	}
	return m.input.Rows()
}

// DataRows returns the number of sample rows, or 0.
func (m *Model) DataRows() int {
	if m.input == nil {
		return 0
	}
	n := m.input.Rows()
	if m.HasHeader {
		n--
	}
	return n
}

// Columns returns the number of input columns, or 0.
func (m *Model) Columns() int {
	if m.input == nil {
		return 0
	}
	return m.input.Columns()
}

// Snapshot returns the configuration as an immutable value. It reports
// false while either address is unset.
func (m *Model) Snapshot() (models.ClusterConfig, bool) {
	if m.input == nil || m.output == nil {
		return models.ClusterConfig{}, false
	}
	return models.ClusterConfig{
		Input:         *m.input,
		Output:        *m.output,
		NumClusters:   m.NumClusters,
		NumEpochs:     m.NumEpochs,
		NumIterations: m.NumIterations,
		HasHeader:     m.HasHeader,
		ColorRows:     m.ColorRows,
	}, true
}

func checkGrid(f Field, r models.RangeAddress) error {
	if r.StartColumn < 0 || r.StartRow < 0 || r.Sheet < 0 {
		return &ConstraintViolation{Field: f, Message: "negative coordinate"}
	}
	if r.EndColumn > parser.MaxCol || r.EndRow > parser.MaxRow {
		return &ConstraintViolation{
			Field:   f,
			Message: fmt.Sprintf("exceeds sheet grid (%s)", parser.EncodeAddress(r.EndColumn, r.EndRow, false)),
		}
	}
	return nil
}
