package clusterrows

import (
	"errors"
	"fmt"
)

// ErrSelectionPending indicates a range pick was requested while another is in flight.
var ErrSelectionPending = errors.New("range selection already in progress")

// ErrNotValidated indicates an accept was attempted on an invalid configuration.
var ErrNotValidated = errors.New("configuration has not passed validation")

// ErrComputationRejected indicates the clusterer refused the input data.
var ErrComputationRejected = errors.New("clustering computation rejected the input")

// ErrNoSelection indicates the host could not report a current selection.
var ErrNoSelection = errors.New("no current selection")

// AddressError reports range or cell text that does not resolve.
type AddressError struct {
	Field Field
	Text  string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %q", e.Field, e.Text)
}

// ConstraintViolation reports a value that breaks a numeric or grid rule.
type ConstraintViolation struct {
	Field   Field
	Message string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// WriteError represents an error while writing results back to a sheet.
type WriteError struct {
	SheetName string
	Component string // "formula", "header", "values", "coloring"
	Err       error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewWriteError creates a new WriteError.
func NewWriteError(sheetName, component string, err error) *WriteError {
	return &WriteError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
