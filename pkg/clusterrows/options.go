// Package clusterrows configures row clustering over a spreadsheet range
// and writes the clustering formula back to the sheet.
package clusterrows

import (
	"log/slog"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// HeaderMode controls how the header row of the input range is decided.
type HeaderMode string

const (
	// HeaderAuto detects a header row from the cell contents.
	HeaderAuto HeaderMode = "auto"
	// HeaderYes always treats the first row as a header.
	HeaderYes HeaderMode = "yes"
	// HeaderNo never treats the first row as a header.
	HeaderNo HeaderMode = "no"
)

// DefaultFunctionName is the spreadsheet function invoked by the result formula.
const DefaultFunctionName = "GMMCLUSTER"

// Default scalar parameters of a new configuration.
const (
	DefaultNumClusters   = 0
	DefaultNumEpochs     = 10
	DefaultNumIterations = 100
)

// Options configures dialog and writer behavior.
type Options struct {
	// FunctionName is the array function written into the output range.
	FunctionName string
	// Header decides the initial header flag when the dialog opens.
	Header HeaderMode
	// DetectDataRange fits the host selection to the surrounding data on open.
	// If nil, defaults to true.
	DetectDataRange *bool
	// Detection bounds the selection before fitting.
	Detection parser.DetectionParams
	// WriteValues stores computed cluster ids as cached cell values when a
	// clusterer is configured. If nil, defaults to true.
	WriteValues *bool
}

// DefaultOptions returns default dialog options.
func DefaultOptions() Options {
	return Options{
		FunctionName: DefaultFunctionName,
		Header:       HeaderAuto,
		Detection:    parser.DefaultDetectionParams(),
	}
}

// ShouldDetectDataRange returns whether to fit the selection to data on open.
func (o Options) ShouldDetectDataRange() bool {
	if o.DetectDataRange != nil {
		return *o.DetectDataRange
	}
	return true
}

// ShouldWriteValues returns whether computed results are written as cell values.
func (o Options) ShouldWriteValues() bool {
	if o.WriteValues != nil {
		return *o.WriteValues
	}
	return true
}

// Function returns the configured function name or the default.
func (o Options) Function() string {
	if o.FunctionName == "" {
		return DefaultFunctionName
	}
	return o.FunctionName
}

// Option customizes a Dialog.
type Option func(*Dialog)

// WithOptions replaces the dialog options.
func WithOptions(opts Options) Option {
	return func(d *Dialog) {
		d.opts = opts
	}
}

// WithLogger sets the logger used for session and write diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dialog) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClusterer runs c on accept and writes its results next to the formula.
func WithClusterer(c Clusterer) Option {
	return func(d *Dialog) {
		d.clusterer = c
	}
}
