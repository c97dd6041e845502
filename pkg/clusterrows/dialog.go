package clusterrows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// Document is the host spreadsheet a dialog works on.
type Document interface {
	parser.SheetLookup
	ResultSheet

	// ActiveSheet returns the index of the sheet shown to the user.
	ActiveSheet() int
	// CurrentSelection returns the user's selection, or ErrNoSelection.
	CurrentSelection() (models.RangeAddress, error)
	// Rows returns the cell text of a sheet, row by row.
	Rows(sheet int) ([][]string, error)
}

// ActionKind enumerates the user actions a Dialog handles.
type ActionKind int

const (
	// ActionEdit reports a changed value in Action.Field.
	ActionEdit ActionKind = iota
	// ActionPickInput picks the input range on the sheet.
	ActionPickInput
	// ActionPickOutput picks the output cell on the sheet.
	ActionPickOutput
	// ActionAccept writes the results and closes the form.
	ActionAccept
	// ActionCancel closes the form without writing.
	ActionCancel
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionPickInput:
		return "pick-input"
	case ActionPickOutput:
		return "pick-output"
	case ActionAccept:
		return "accept"
	case ActionCancel:
		return "cancel"
	}
	return "unknown"
}

// Action is a user event delivered to Dialog.Dispatch.
type Action struct {
	Kind  ActionKind
	Field Field
}

// Dialog drives one configuration form from open to accept or cancel.
// It is not safe for concurrent use; all calls must come from the host's
// event loop.
type Dialog struct {
	doc       Document
	form      Form
	model     *Model
	session   *Session
	opts      Options
	clusterer Clusterer
	logger    *slog.Logger

	updating bool
	verdict  Verdict
	result   *models.WriteResult
	closed   bool
}

// NewDialog creates a dialog over doc, rendered by form, picking ranges
// through picker.
func NewDialog(doc Document, form Form, picker RangePicker, opts ...Option) *Dialog {
	d := &Dialog{
		doc:    doc,
		form:   form,
		model:  NewModel(),
		opts:   DefaultOptions(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.session = newSession(picker, sessionHooks{
		suspend:  func() { d.form.SetVisible(false) },
		complete: d.completeSelection,
		resume: func() {
			d.form.SetVisible(true)
			d.validate()
		},
	}, d.logger)
	return d
}

// Model returns the configuration being edited.
func (d *Dialog) Model() *Model { return d.model }

// Session returns the range selection session.
func (d *Dialog) Session() *Session { return d.session }

// Verdict returns the result of the latest validation pass.
func (d *Dialog) Verdict() Verdict { return d.verdict }

// Result returns what was written on accept, if anything.
func (d *Dialog) Result() (models.WriteResult, bool) {
	if d.result == nil {
		return models.WriteResult{}, false
	}
	return *d.result, true
}

// Closed reports whether the dialog has been accepted or cancelled.
func (d *Dialog) Closed() bool { return d.closed }

// Open seeds the model from the host selection, fills in the form and runs
// the first validation.
func (d *Dialog) Open() {
	sel, err := d.doc.CurrentSelection()
	if err != nil {
		d.logger.Warn("no initial selection", "error", err)
	} else {
		d.seed(sel)
	}
	d.writeFields(ValidatedFields...)
	d.writeFields(FieldHasHeader, FieldColorRows)
	d.form.SetVisible(true)
	d.validate()
}

func (d *Dialog) seed(sel models.RangeAddress) {
	rows, err := d.doc.Rows(sel.Sheet)
	if err != nil {
		d.logger.Warn("cannot read selection sheet", "sheet", sel.Sheet, "error", err)
	} else if d.opts.ShouldDetectDataRange() {
		sel = parser.DetectDataRange(rows, sel, d.opts.Detection)
	}

	switch d.opts.Header {
	case HeaderYes:
		d.model.HasHeader = true
	case HeaderNo:
		d.model.HasHeader = false
	default:
		d.model.HasHeader = parser.DetectHeader(rows, sel)
	}

	if err := d.model.SetInputRange(&sel); err != nil {
		d.logger.Warn("ignoring initial selection", "error", err)
		return
	}
	d.logger.Debug("dialog opened",
		"range", parser.EncodeRange(sel, d.doc),
		"header", d.model.HasHeader)
}

// Dispatch handles one user action.
func (d *Dialog) Dispatch(ctx context.Context, a Action) error {
	if d.closed {
		return nil
	}
	switch a.Kind {
	case ActionEdit:
		if d.updating {
			return nil
		}
		d.edit(a.Field)
		d.validate()
		return nil
	case ActionPickInput:
		return d.pick(TargetInput)
	case ActionPickOutput:
		return d.pick(TargetOutput)
	case ActionAccept:
		return d.accept(ctx)
	case ActionCancel:
		d.logger.Debug("dialog cancelled")
		d.close()
		return nil
	}
	return fmt.Errorf("unknown action %v", a.Kind)
}

// Edit sets a text field as if the user typed it and handles the change.
func (d *Dialog) Edit(ctx context.Context, f Field, text string) error {
	d.withUpdating(func() { d.form.SetText(f, text) })
	return d.Dispatch(ctx, Action{Kind: ActionEdit, Field: f})
}

// Toggle sets a check box as if the user clicked it and handles the change.
func (d *Dialog) Toggle(ctx context.Context, f Field, on bool) error {
	d.withUpdating(func() { d.form.SetChecked(f, on) })
	return d.Dispatch(ctx, Action{Kind: ActionEdit, Field: f})
}

func (d *Dialog) edit(f Field) {
	switch f {
	case FieldInputRange:
		r, ok := parser.Resolve(d.form.Text(f), d.doc, d.doc.ActiveSheet())
		if !ok {
			d.model.SetInputRange(nil)
		} else if err := d.model.SetInputRange(&r); err != nil {
			d.logger.Debug("input range rejected", "error", err)
			d.model.SetInputRange(nil)
		}
		d.refreshDefaultOutput()
	case FieldOutputLocation:
		c, ok := parser.ResolveCell(d.form.Text(f), d.doc, d.doc.ActiveSheet())
		if !ok {
			d.model.SetOutputLocation(nil)
		} else if err := d.model.SetOutputLocation(&c); err != nil {
			d.logger.Debug("output location rejected", "error", err)
			d.model.SetOutputLocation(nil)
		}
	case FieldNumClusters:
		d.model.NumClusters = parser.ParseCount(d.form.Text(f))
	case FieldNumEpochs:
		d.model.NumEpochs = parser.ParseCount(d.form.Text(f))
	case FieldNumIterations:
		d.model.NumIterations = parser.ParseCount(d.form.Text(f))
	case FieldHasHeader:
		d.model.HasHeader = d.form.Checked(f)
	case FieldColorRows:
		d.model.ColorRows = d.form.Checked(f)
	}
}

func (d *Dialog) pick(t Target) error {
	f := t.Field()
	req := SelectionRequest{
		InitialValue:   d.form.Text(f),
		Title:          "Select " + f.String(),
		CloseOnRelease: true,
		SingleCellOnly: t == TargetOutput,
	}
	return d.session.Request(t, req)
}

// completeSelection merges a picked range into the model.
func (d *Dialog) completeSelection(t Target, text string) error {
	switch t {
	case TargetOutput:
		c, ok := parser.ResolveCell(text, d.doc, d.doc.ActiveSheet())
		if !ok {
			return &AddressError{Field: FieldOutputLocation, Text: text}
		}
		if err := d.model.SetOutputLocation(&c); err != nil {
			return err
		}
		d.writeFields(FieldOutputLocation)
	default:
		r, ok := parser.Resolve(text, d.doc, d.doc.ActiveSheet())
		if !ok {
			return &AddressError{Field: FieldInputRange, Text: text}
		}
		if err := d.model.SetInputRange(&r); err != nil {
			return err
		}
		d.writeFields(FieldInputRange)
		d.refreshDefaultOutput()
	}
	return nil
}

func (d *Dialog) accept(ctx context.Context) error {
	if _, pending := d.session.Pending(); pending {
		return ErrSelectionPending
	}
	v := d.validate()
	if !v.OK() {
		return fmt.Errorf("%w: %w", ErrNotValidated, v.Err())
	}
	cfg, _ := d.model.Snapshot()

	d.form.SetMessage("Computing clusters...")
	d.form.SetAcceptEnabled(false)

	res, err := NewWriter(d.doc, d.opts, d.clusterer, d.logger).Write(ctx, cfg)
	if err != nil {
		d.logger.Error("writing results failed", "error", err)
		d.form.SetMessage(err.Error())
		d.form.SetAcceptEnabled(true)
		return err
	}
	d.result = &res
	d.close()
	return nil
}

func (d *Dialog) close() {
	d.closed = true
	d.form.Close()
}

// validate runs the ordered checks and reflects the verdict on the form.
// It does nothing while the dialog itself is writing fields.
func (d *Dialog) validate() Verdict {
	if d.updating {
		return d.verdict
	}
	d.verdict = Validate(d.model, d.form.Text(FieldInputRange))
	ApplyVerdict(d.form, d.verdict)
	return d.verdict
}

// refreshDefaultOutput shows the derived output anchor while it still
// follows the input range.
func (d *Dialog) refreshDefaultOutput() {
	if !d.model.OutputExplicit() {
		d.writeFields(FieldOutputLocation)
	}
}

// writeFields copies model values into the form.
func (d *Dialog) writeFields(fields ...Field) {
	d.withUpdating(func() {
		for _, f := range fields {
			switch f {
			case FieldInputRange:
				text := ""
				if r, ok := d.model.Input(); ok {
					text = parser.EncodeRange(r, d.doc)
				}
				d.form.SetText(f, text)
			case FieldOutputLocation:
				text := ""
				if c, ok := d.model.Output(); ok {
					text = parser.EncodeCell(c, d.doc)
				}
				d.form.SetText(f, text)
			case FieldNumClusters:
				d.form.SetText(f, strconv.Itoa(d.model.NumClusters))
			case FieldNumEpochs:
				d.form.SetText(f, strconv.Itoa(d.model.NumEpochs))
			case FieldNumIterations:
				d.form.SetText(f, strconv.Itoa(d.model.NumIterations))
			case FieldHasHeader:
				d.form.SetChecked(f, d.model.HasHeader)
			case FieldColorRows:
				d.form.SetChecked(f, d.model.ColorRows)
			}
		}
	})
}

func (d *Dialog) withUpdating(fn func()) {
	prev := d.updating
	d.updating = true
	defer func() { d.updating = prev }()
	fn()
}
