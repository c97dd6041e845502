// Package main provides the CLI entry point for clusterrows-go.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/compute"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/tui"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/workbook"
	"github.com/spf13/cobra"
)

var (
	outputPath    string
	inputRange    string
	outputCell    string
	numClusters   int
	numEpochs     int
	numIterations int
	header        string
	colorRows     bool
	noDetect      bool
	batch         bool
	engine        string
	engineArgs    []string
	noValues      bool
	functionName  string
	printJSON     bool
	logFile       string
	verbose       bool
)

// errBatchPick is returned to the dialog when a range pick is requested
// without a terminal.
var errBatchPick = errors.New("interactive range selection is not available in batch mode")

func main() {
	rootCmd := &cobra.Command{
		Use:   "clusterrows [input.xlsx]",
		Short: "Configure row clustering over a spreadsheet range",
		Long: `clusterrows-go opens a workbook, lets you choose the data range, output
location and clustering parameters, and writes a clustering array formula
(optionally with computed results and per-cluster row coloring) back to the sheet.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite input)")
	rootCmd.Flags().StringVar(&inputRange, "range", "", "Input range, e.g. \"Sheet1!A1:C100\" (default: detected from the saved selection)")
	rootCmd.Flags().StringVar(&outputCell, "output-cell", "", "Top-left cell of the result columns (default: right of the input)")
	rootCmd.Flags().IntVar(&numClusters, "clusters", clusterrows.DefaultNumClusters, "Number of clusters, 0 for automatic")
	rootCmd.Flags().IntVar(&numEpochs, "epochs", clusterrows.DefaultNumEpochs, "Number of training epochs")
	rootCmd.Flags().IntVar(&numIterations, "iterations", clusterrows.DefaultNumIterations, "Iterations per epoch")
	rootCmd.Flags().StringVar(&header, "header", string(clusterrows.HeaderAuto), "Header row: auto, yes, or no")
	rootCmd.Flags().BoolVar(&colorRows, "color", false, "Color data rows by cluster")
	rootCmd.Flags().BoolVar(&noDetect, "no-detect", false, "Use the selection as-is instead of fitting it to the data")
	rootCmd.Flags().BoolVar(&batch, "batch", false, "Apply flags and write without the interactive form")
	rootCmd.Flags().StringVar(&engine, "engine", "", "Clustering executable to compute results (JSON on stdin/stdout)")
	rootCmd.Flags().StringArrayVar(&engineArgs, "engine-arg", nil, "Argument passed to the clustering executable (repeatable)")
	rootCmd.Flags().BoolVar(&noValues, "no-values", false, "Do not store computed results as cell values")
	rootCmd.Flags().StringVar(&functionName, "function", clusterrows.DefaultFunctionName, "Spreadsheet function used in the result formula")
	rootCmd.Flags().BoolVar(&printJSON, "json", false, "Print the write result as JSON")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Parse header mode
	mode := clusterrows.HeaderMode(header)
	switch mode {
	case clusterrows.HeaderAuto, clusterrows.HeaderYes, clusterrows.HeaderNo:
	default:
		return fmt.Errorf("invalid header mode: %s (must be auto, yes, or no)", header)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	wb, err := workbook.Open(inputPath, workbook.WithLogger(logger))
	if err != nil {
		return err
	}
	defer wb.Close()

	opts := clusterrows.DefaultOptions()
	opts.FunctionName = functionName
	opts.Header = mode
	if noDetect {
		detect := false
		opts.DetectDataRange = &detect
	}
	if noValues {
		write := false
		opts.WriteValues = &write
	}
	dialogOpts := []clusterrows.Option{
		clusterrows.WithOptions(opts),
		clusterrows.WithLogger(logger),
	}
	if engine != "" {
		dialogOpts = append(dialogOpts, clusterrows.WithClusterer(&compute.Command{
			Path:   engine,
			Args:   engineArgs,
			Logger: logger,
		}))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var d *clusterrows.Dialog
	if batch {
		d, err = runBatch(ctx, cmd, wb, dialogOpts)
	} else {
		d, err = runInteractive(ctx, cmd, wb, dialogOpts)
	}
	if err != nil {
		return err
	}

	res, ok := d.Result()
	if !ok {
		fmt.Fprintln(os.Stderr, "cancelled, workbook not modified")
		return nil
	}

	if outputPath != "" {
		err = wb.SaveAs(outputPath)
	} else {
		err = wb.Save()
	}
	if err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	if printJSON {
		jsonData, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Println(string(jsonData))
	}
	return nil
}

func runBatch(ctx context.Context, cmd *cobra.Command, wb *workbook.Workbook, opts []clusterrows.Option) (*clusterrows.Dialog, error) {
	d := clusterrows.NewDialog(wb, clusterrows.NewMemoryForm(), batchPicker{}, opts...)
	d.Open()
	if err := applyFlags(ctx, cmd, d); err != nil {
		return nil, err
	}
	if v := d.Verdict(); !v.OK() {
		return nil, fmt.Errorf("invalid configuration: %w", v.Err())
	}
	if err := d.Dispatch(ctx, clusterrows.Action{Kind: clusterrows.ActionAccept}); err != nil {
		return nil, err
	}
	return d, nil
}

func runInteractive(ctx context.Context, cmd *cobra.Command, wb *workbook.Workbook, opts []clusterrows.Option) (*clusterrows.Dialog, error) {
	m := tui.New(ctx, wb, opts...)
	if err := applyFlags(ctx, cmd, m.Dialog()); err != nil {
		return nil, err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("terminal UI failed: %w", err)
	}
	return m.Dialog(), nil
}

// applyFlags enters explicitly given flags into the form as user edits.
func applyFlags(ctx context.Context, cmd *cobra.Command, d *clusterrows.Dialog) error {
	flags := cmd.Flags()
	edits := []struct {
		flag  string
		field clusterrows.Field
		text  func() string
	}{
		{"range", clusterrows.FieldInputRange, func() string { return inputRange }},
		{"output-cell", clusterrows.FieldOutputLocation, func() string { return outputCell }},
		{"clusters", clusterrows.FieldNumClusters, func() string { return strconv.Itoa(numClusters) }},
		{"epochs", clusterrows.FieldNumEpochs, func() string { return strconv.Itoa(numEpochs) }},
		{"iterations", clusterrows.FieldNumIterations, func() string { return strconv.Itoa(numIterations) }},
	}
	for _, e := range edits {
		if !flags.Changed(e.flag) {
			continue
		}
		if err := d.Edit(ctx, e.field, e.text()); err != nil {
			return err
		}
	}
	if flags.Changed("color") {
		if err := d.Toggle(ctx, clusterrows.FieldColorRows, colorRows); err != nil {
			return err
		}
	}
	return nil
}

// newLogger builds the process logger. Without a log file, batch runs log
// warnings to stderr and interactive runs stay quiet.
func newLogger() (*slog.Logger, func(), error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer
	closeFn := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
		if !verbose {
			level = slog.LevelInfo
		}
	case batch:
		w = os.Stderr
	default:
		return slog.New(slog.DiscardHandler), closeFn, nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// batchPicker refuses interactive range selection.
type batchPicker struct{}

func (batchPicker) AddRangeSelectionListener(clusterrows.SelectionListener)    {}
func (batchPicker) RemoveRangeSelectionListener(clusterrows.SelectionListener) {}
func (batchPicker) StartRangeSelection(clusterrows.SelectionRequest) error {
	return errBatchPick
}
