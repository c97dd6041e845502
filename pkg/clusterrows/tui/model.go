// Package tui shows the cluster configuration form in a terminal and lets
// the user pick ranges on a text rendering of the workbook.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

const labelWidth = 22

var (
	textFields   = []clusterrows.Field{clusterrows.FieldInputRange, clusterrows.FieldOutputLocation, clusterrows.FieldNumClusters, clusterrows.FieldNumEpochs, clusterrows.FieldNumIterations}
	toggleFields = []clusterrows.Field{clusterrows.FieldHasHeader, clusterrows.FieldColorRows}
)

// Focus positions after the fields.
const (
	focusAccept = 7
	focusCancel = 8
	focusCount  = 9
)

var (
	_ clusterrows.Form        = (*Model)(nil)
	_ clusterrows.RangePicker = (*Model)(nil)
	_ tea.Model               = (*Model)(nil)
)

// Model is the Bubble Tea model of the configuration form. It is both the
// Form and the RangePicker of the dialog it drives.
type Model struct {
	ctx    context.Context
	doc    clusterrows.Document
	dialog *clusterrows.Dialog

	inputs     map[clusterrows.Field]*textinput.Model
	checks     map[clusterrows.Field]bool
	highlights map[clusterrows.Field]bool
	message    string
	accept     bool
	visible    bool
	closed     bool
	err        error

	focus  int
	keys   formKeyMap
	pkeys  pickKeyMap
	help   help.Model
	styles styles
	width  int
	height int

	listeners []clusterrows.SelectionListener
	pick      *picker
}

// New creates the form over doc and opens its dialog.
func New(ctx context.Context, doc clusterrows.Document, opts ...clusterrows.Option) *Model {
	m := &Model{
		ctx:        ctx,
		doc:        doc,
		inputs:     make(map[clusterrows.Field]*textinput.Model),
		checks:     make(map[clusterrows.Field]bool),
		highlights: make(map[clusterrows.Field]bool),
		visible:    true,
		keys:       defaultFormKeyMap(),
		pkeys:      defaultPickKeyMap(),
		help:       help.New(),
		styles:     defaultStyles(),
	}
	for _, f := range textFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 32
		m.inputs[f] = &ti
	}
	m.inputs[textFields[0]].Focus()

	m.dialog = clusterrows.NewDialog(doc, m, m, opts...)
	m.dialog.Open()
	return m
}

// Dialog returns the dialog driven by the form.
func (m *Model) Dialog() *clusterrows.Dialog {
	return m.dialog
}

// Err returns the error of the last action, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.pick != nil {
			m.scrollToCursor()
		}
		return m, nil
	case tea.KeyMsg:
		if m.pick != nil {
			m.updatePick(msg)
			return m, m.quitIfClosed()
		}
		return m.updateForm(msg)
	case tea.MouseMsg:
		if m.pick != nil {
			m.updatePickMouse(msg)
		}
		return m, nil
	}

	if ti, ok := m.focusedInput(); ok && m.pick == nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionCancel})
	case key.Matches(msg, m.keys.Accept):
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionAccept})
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Pick):
		m.pickFocused()
	case key.Matches(msg, m.keys.Enter):
		return m, m.activate()
	case key.Matches(msg, m.keys.Toggle) && m.focus >= len(textFields):
		return m, m.activate()
	default:
		return m, m.typeInto(msg)
	}
	return m, m.quitIfClosed()
}

// activate handles enter on the focused item.
func (m *Model) activate() tea.Cmd {
	switch m.focus {
	case focusAccept:
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionAccept})
		return m.quitIfClosed()
	case focusCancel:
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionCancel})
		return m.quitIfClosed()
	}
	f, ok := m.focusedField()
	if !ok {
		return nil
	}
	if !f.IsToggle() {
		return m.setFocus(m.focus + 1)
	}
	m.checks[f] = !m.checks[f]
	m.dispatch(clusterrows.Action{Kind: clusterrows.ActionEdit, Field: f})
	return nil
}

func (m *Model) typeInto(msg tea.KeyMsg) tea.Cmd {
	f, ok := m.focusedField()
	if !ok || f.IsToggle() {
		return nil
	}
	ti := m.inputs[f]
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if ti.Value() != before {
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionEdit, Field: f})
	}
	return cmd
}

func (m *Model) pickFocused() {
	f, ok := m.focusedField()
	if !ok {
		return
	}
	switch f {
	case clusterrows.FieldInputRange:
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionPickInput})
	case clusterrows.FieldOutputLocation:
		m.dispatch(clusterrows.Action{Kind: clusterrows.ActionPickOutput})
	}
}

func (m *Model) dispatch(a clusterrows.Action) {
	m.err = m.dialog.Dispatch(m.ctx, a)
}

func (m *Model) quitIfClosed() tea.Cmd {
	if m.closed {
		return tea.Quit
	}
	return nil
}

func (m *Model) focusedField() (clusterrows.Field, bool) {
	switch {
	case m.focus < len(textFields):
		return textFields[m.focus], true
	case m.focus < len(textFields)+len(toggleFields):
		return toggleFields[m.focus-len(textFields)], true
	}
	return 0, false
}

func (m *Model) focusedInput() (*textinput.Model, bool) {
	f, ok := m.focusedField()
	if !ok {
		return nil, false
	}
	ti, ok := m.inputs[f]
	return ti, ok
}

func (m *Model) setFocus(i int) tea.Cmd {
	if ti, ok := m.focusedInput(); ok {
		ti.Blur()
	}
	m.focus = (i + focusCount) % focusCount
	if ti, ok := m.focusedInput(); ok {
		return ti.Focus()
	}
	return nil
}

// Form

func (m *Model) Text(f clusterrows.Field) string {
	if ti, ok := m.inputs[f]; ok {
		return ti.Value()
	}
	return ""
}

func (m *Model) SetText(f clusterrows.Field, text string) {
	if ti, ok := m.inputs[f]; ok {
		ti.SetValue(text)
		ti.CursorEnd()
	}
}

func (m *Model) Checked(f clusterrows.Field) bool { return m.checks[f] }

func (m *Model) SetChecked(f clusterrows.Field, on bool) { m.checks[f] = on }

func (m *Model) SetHighlight(f clusterrows.Field, invalid bool) { m.highlights[f] = invalid }

func (m *Model) SetMessage(msg string) { m.message = msg }

func (m *Model) SetAcceptEnabled(enabled bool) { m.accept = enabled }

func (m *Model) SetVisible(visible bool) { m.visible = visible }

func (m *Model) Close() {
	m.closed = true
	m.visible = false
}

// RangePicker

func (m *Model) AddRangeSelectionListener(l clusterrows.SelectionListener) {
	m.listeners = append(m.listeners, l)
}

func (m *Model) RemoveRangeSelectionListener(l clusterrows.SelectionListener) {
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// StartRangeSelection switches to the sheet grid, starting from the range
// in req.InitialValue when it resolves.
func (m *Model) StartRangeSelection(req clusterrows.SelectionRequest) error {
	if m.pick != nil {
		return errors.New("range selection already active")
	}
	sel, ok := parser.Resolve(req.InitialValue, m.doc, m.doc.ActiveSheet())
	if !ok {
		sel = models.CellAddress{Sheet: m.doc.ActiveSheet()}.Range()
	}
	m.pick = newPicker(req, sel)
	m.scrollToCursor()
	return nil
}

// endPick leaves the grid and reports the outcome to every listener.
func (m *Model) endPick(done bool) {
	p := m.pick
	m.pick = nil
	text := p.text(m.doc)
	for _, l := range append([]clusterrows.SelectionListener(nil), m.listeners...) {
		if done {
			l.Done(text)
		} else {
			l.Aborted()
		}
	}
}

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	if m.pick != nil {
		return m.pickView()
	}
	if !m.visible {
		return ""
	}
	return m.formView()
}

func (m *Model) formView() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Cluster Rows"))
	b.WriteString("\n")

	for i, f := range textFields {
		b.WriteString(m.labelView(i, f))
		value := m.inputs[f].View()
		if m.highlights[f] {
			value = m.styles.invalid.Render("▸ ") + value
		} else {
			value = "  " + value
		}
		b.WriteString(value)
		b.WriteString("\n")
	}
	for i, f := range toggleFields {
		mark := "[ ]"
		if m.checks[f] {
			mark = "[x]"
		}
		b.WriteString(m.labelView(len(textFields)+i, f))
		b.WriteString("  " + mark)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	accept := m.styles.disabled
	if m.accept {
		accept = m.styles.button
	}
	cancel := m.styles.button
	if m.focus == focusAccept {
		accept = accept.BorderForeground(lipgloss.Color("10"))
	}
	if m.focus == focusCancel {
		cancel = cancel.BorderForeground(lipgloss.Color("10"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, accept.Render("Accept"), " ", cancel.Render("Cancel")))
	b.WriteString("\n")

	switch {
	case m.message != "" && !m.accept:
		b.WriteString(m.styles.invalid.Render(m.message))
	case m.message != "":
		b.WriteString(m.styles.message.Render(m.message))
	case m.err != nil:
		b.WriteString(m.styles.invalid.Render(m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) labelView(i int, f clusterrows.Field) string {
	label := strings.ToUpper(f.String()[:1]) + f.String()[1:]
	if m.focus == i {
		return m.styles.focused.Render(label)
	}
	return m.styles.label.Render(label)
}
