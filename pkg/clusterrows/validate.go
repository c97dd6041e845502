package clusterrows

import (
	"fmt"
	"strings"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// Check identifies one validation rule. Rules run in declaration order.
type Check int

const (
	CheckNone Check = iota
	CheckInputEmpty
	CheckInputResolves
	CheckSampleCount
	CheckOutputSet
	CheckOutputBelowData
	CheckColumnSpace
	CheckRowSpace
	CheckNumClusters
	CheckNumEpochs
	CheckNumIterations
)

// Parameter bounds, inclusive.
const (
	MinSamples    = 10
	MinClusters   = 0
	MaxClusters   = 15
	MinEpochs     = 3
	MaxEpochs     = 100
	MinIterations = 5
	MaxIterations = 10000
	resultColumns = 2
)

// Verdict is the outcome of a validation pass.
type Verdict struct {
	// Check is the first failing rule, or CheckNone.
	Check Check
	// Field is the control to highlight.
	Field Field
	// Message is the user-facing error text.
	Message string
}

// OK reports whether every rule passed.
func (v Verdict) OK() bool {
	return v.Check == CheckNone
}

// Err returns the verdict as an error, or nil when it passed.
func (v Verdict) Err() error {
	switch v.Check {
	case CheckNone:
		return nil
	case CheckInputEmpty, CheckInputResolves, CheckOutputSet:
		return &AddressError{Field: v.Field, Text: v.Message}
	default:
		return &ConstraintViolation{Field: v.Field, Message: v.Message}
	}
}

func fail(c Check, f Field, msg string) Verdict {
	return Verdict{Check: c, Field: f, Message: msg}
}

// Validate runs the ordered rules against m and returns the first failure.
// inputText is the raw input field, used to tell an empty field from one
// that does not resolve.
func Validate(m *Model, inputText string) Verdict {
	if strings.TrimSpace(inputText) == "" {
		return fail(CheckInputEmpty, FieldInputRange, "no input range specified.")
	}
	input, ok := m.Input()
	if !ok {
		return fail(CheckInputResolves, FieldInputRange, "invalid data range.")
	}
	if m.DataRows() < MinSamples {
		return fail(CheckSampleCount, FieldInputRange, fmt.Sprintf("must have at least %d samples.", MinSamples))
	}
	output, ok := m.Output()
	if !ok {
		return fail(CheckOutputSet, FieldOutputLocation, "invalid output location.")
	}
	if m.ColorRows && output.Row < input.StartRow {
		return fail(CheckOutputBelowData, FieldOutputLocation, "output must not start above the data when coloring rows.")
	}
	if output.Column+resultColumns-1 > parser.MaxCol {
		return fail(CheckColumnSpace, FieldOutputLocation, "not enough column space.")
	}
	if rows := m.Rows(); output.Row+rows-1 > parser.MaxRow {
		return fail(CheckRowSpace, FieldOutputLocation, fmt.Sprintf("not enough row space, need %d rows.", rows))
	}
	if m.NumClusters < MinClusters || m.NumClusters > MaxClusters {
		return fail(CheckNumClusters, FieldNumClusters,
			fmt.Sprintf("number of clusters must be in the range [%d, %d].", MinClusters, MaxClusters))
	}
	if m.NumEpochs < MinEpochs || m.NumEpochs > MaxEpochs {
		return fail(CheckNumEpochs, FieldNumEpochs,
			fmt.Sprintf("number of epochs must be in the range [%d, %d].", MinEpochs, MaxEpochs))
	}
	if m.NumIterations < MinIterations || m.NumIterations > MaxIterations {
		return fail(CheckNumIterations, FieldNumIterations,
			fmt.Sprintf("number of iterations must be in the range [%d, %d].", MinIterations, MaxIterations))
	}
	return Verdict{}
}

// ApplyVerdict reflects v on the form. Fields of rules that passed before the
// failing one are cleared, the failing field is marked, and fields of rules
// after it keep their previous state.
func ApplyVerdict(form Form, v Verdict) {
	if v.OK() {
		for _, f := range ValidatedFields {
			form.SetHighlight(f, false)
		}
		form.SetMessage("")
		form.SetAcceptEnabled(true)
		return
	}
	for _, f := range ValidatedFields {
		if f == v.Field {
			break
		}
		form.SetHighlight(f, false)
	}
	form.SetHighlight(v.Field, true)
	form.SetMessage(v.Message)
	form.SetAcceptEnabled(false)
}
