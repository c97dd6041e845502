package clusterrows

// Field names a control on the configuration form.
type Field int

const (
	FieldInputRange Field = iota
	FieldOutputLocation
	FieldNumClusters
	FieldNumEpochs
	FieldNumIterations
	FieldHasHeader
	FieldColorRows
)

var fieldNames = [...]string{
	FieldInputRange:     "input range",
	FieldOutputLocation: "output location",
	FieldNumClusters:    "number of clusters",
	FieldNumEpochs:      "number of epochs",
	FieldNumIterations:  "number of iterations",
	FieldHasHeader:      "has header",
	FieldColorRows:      "color rows",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown field"
	}
	return fieldNames[f]
}

// IsToggle reports whether f is a boolean control.
func (f Field) IsToggle() bool {
	return f == FieldHasHeader || f == FieldColorRows
}

// ValidatedFields lists the fields that carry an error highlight, in check order.
var ValidatedFields = []Field{
	FieldInputRange,
	FieldOutputLocation,
	FieldNumClusters,
	FieldNumEpochs,
	FieldNumIterations,
}

// Form is the host toolkit's view of the configuration form.
// Setters may fire change notifications; the Dialog ignores edits it
// caused itself.
type Form interface {
	Text(f Field) string
	SetText(f Field, text string)
	Checked(f Field) bool
	SetChecked(f Field, on bool)
	SetHighlight(f Field, invalid bool)
	SetMessage(msg string)
	SetAcceptEnabled(enabled bool)
	SetVisible(visible bool)
	Close()
}

// MemoryForm is a Form kept in memory, used for batch runs and tests.
type MemoryForm struct {
	texts      map[Field]string
	checks     map[Field]bool
	highlights map[Field]bool
	message    string
	accept     bool
	visible    bool
	closed     bool

	// OnChange, if set, is called after every programmatic value change,
	// the way toolkit change listeners fire.
	OnChange func(Field)
}

// NewMemoryForm returns an empty, visible form.
func NewMemoryForm() *MemoryForm {
	return &MemoryForm{
		texts:      make(map[Field]string),
		checks:     make(map[Field]bool),
		highlights: make(map[Field]bool),
		visible:    true,
	}
}

func (m *MemoryForm) Text(f Field) string { return m.texts[f] }

func (m *MemoryForm) SetText(f Field, text string) {
	m.texts[f] = text
	if m.OnChange != nil {
		m.OnChange(f)
	}
}

func (m *MemoryForm) Checked(f Field) bool { return m.checks[f] }

func (m *MemoryForm) SetChecked(f Field, on bool) {
	m.checks[f] = on
	if m.OnChange != nil {
		m.OnChange(f)
	}
}

func (m *MemoryForm) SetHighlight(f Field, invalid bool) { m.highlights[f] = invalid }

func (m *MemoryForm) SetMessage(msg string) { m.message = msg }

func (m *MemoryForm) SetAcceptEnabled(enabled bool) { m.accept = enabled }

func (m *MemoryForm) SetVisible(visible bool) { m.visible = visible }

func (m *MemoryForm) Close() {
	m.closed = true
	m.visible = false
}

// Highlighted reports whether f is marked invalid.
func (m *MemoryForm) Highlighted(f Field) bool { return m.highlights[f] }

// Message returns the current annotation.
func (m *MemoryForm) Message() string { return m.message }

// AcceptEnabled reports whether the accept action is enabled.
func (m *MemoryForm) AcceptEnabled() bool { return m.accept }

// Visible reports whether the form is shown.
func (m *MemoryForm) Visible() bool { return m.visible }

// Closed reports whether the form was closed.
func (m *MemoryForm) Closed() bool { return m.closed }
