package clusterrows

import (
	"fmt"
	"strconv"

	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
)

// fakeDoc is an in-memory Document.
type fakeDoc struct {
	sheets    []string
	active    int
	selection models.RangeAddress
	selErr    error
	rows      map[int][][]string

	formulas map[models.RangeAddress]string
	texts    map[models.CellAddress]string
	numbers  map[models.CellAddress]float64
	fills    map[models.RangeAddress][]models.ConditionalFill
	writeErr error
}

func newFakeDoc(sheets ...string) *fakeDoc {
	if len(sheets) == 0 {
		sheets = []string{"Sheet1"}
	}
	return &fakeDoc{
		sheets:   sheets,
		rows:     make(map[int][][]string),
		formulas: make(map[models.RangeAddress]string),
		texts:    make(map[models.CellAddress]string),
		numbers:  make(map[models.CellAddress]float64),
		fills:    make(map[models.RangeAddress][]models.ConditionalFill),
	}
}

func (d *fakeDoc) SheetName(index int) (string, bool) {
	if index < 0 || index >= len(d.sheets) {
		return "", false
	}
	return d.sheets[index], true
}

func (d *fakeDoc) SheetIndex(name string) (int, bool) {
	for i, s := range d.sheets {
		if s == name {
			return i, true
		}
	}
	return 0, false
}

func (d *fakeDoc) ActiveSheet() int { return d.active }

func (d *fakeDoc) CurrentSelection() (models.RangeAddress, error) {
	if d.selErr != nil {
		return models.RangeAddress{}, d.selErr
	}
	return d.selection, nil
}

func (d *fakeDoc) Rows(sheet int) ([][]string, error) {
	if _, ok := d.SheetName(sheet); !ok {
		return nil, fmt.Errorf("no sheet at index %d", sheet)
	}
	return d.rows[sheet], nil
}

func (d *fakeDoc) WriteArrayFormula(r models.RangeAddress, formula string) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.formulas[r] = formula
	return nil
}

func (d *fakeDoc) SetCellText(c models.CellAddress, text string) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.texts[c] = text
	return nil
}

func (d *fakeDoc) SetCellNumber(c models.CellAddress, v float64) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.numbers[c] = v
	return nil
}

func (d *fakeDoc) AddConditionalFills(r models.RangeAddress, fills []models.ConditionalFill) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.fills[r] = fills
	return nil
}

// sampleSheet returns a header row over three columns followed by n numeric rows.
func sampleSheet(n int) [][]string {
	rows := [][]string{{"x", "y", "z"}}
	for i := 0; i < n; i++ {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(i * 2), "0.5"})
	}
	return rows
}

// fakePicker records selection requests and lets tests play the host's part.
type fakePicker struct {
	listeners []SelectionListener
	requests  []SelectionRequest
	startErr  error
}

func (p *fakePicker) AddRangeSelectionListener(l SelectionListener) {
	p.listeners = append(p.listeners, l)
}

func (p *fakePicker) RemoveRangeSelectionListener(l SelectionListener) {
	for i, existing := range p.listeners {
		if existing == l {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return
		}
	}
}

func (p *fakePicker) StartRangeSelection(req SelectionRequest) error {
	p.requests = append(p.requests, req)
	return p.startErr
}

func (p *fakePicker) done(text string) {
	for _, l := range append([]SelectionListener(nil), p.listeners...) {
		l.Done(text)
	}
}

func (p *fakePicker) abort() {
	for _, l := range append([]SelectionListener(nil), p.listeners...) {
		l.Aborted()
	}
}
