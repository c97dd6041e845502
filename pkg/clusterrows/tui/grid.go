package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/models"
	"github.com/dennisfrancis/clusterrows-go/pkg/clusterrows/parser"
)

// Grid layout in terminal cells.
const (
	rowLabelWidth = 6
	columnWidth   = 10
	gridTop       = 2 // title and column header lines
	gridChrome    = 5 // title, column header, status, blank, help
	defaultWidth  = 80
	defaultHeight = 24
)

// picker is the state of an interactive range selection on the grid.
type picker struct {
	req      clusterrows.SelectionRequest
	sheet    int
	anchor   models.CellAddress
	cursor   models.CellAddress
	dragging bool
	top      int
	left     int
}

func newPicker(req clusterrows.SelectionRequest, sel models.RangeAddress) *picker {
	p := &picker{
		req:    req,
		sheet:  sel.Sheet,
		anchor: sel.TopLeft(),
		cursor: sel.BottomRight(),
	}
	if req.SingleCellOnly {
		p.cursor = p.anchor
	}
	return p
}

func (p *picker) selection() models.RangeAddress {
	return models.RangeAddress{
		Sheet:       p.sheet,
		StartColumn: p.anchor.Column,
		StartRow:    p.anchor.Row,
		EndColumn:   p.cursor.Column,
		EndRow:      p.cursor.Row,
	}.Normalize()
}

func (p *picker) text(sheets parser.SheetNamer) string {
	if p.req.SingleCellOnly {
		return parser.EncodeCell(p.cursor, sheets)
	}
	return parser.EncodeRange(p.selection(), sheets)
}

// move shifts the cursor. Unless extending, the selection collapses onto it.
func (p *picker) move(dcol, drow int, extend bool) {
	p.cursor.Column = clamp(p.cursor.Column+dcol, 0, parser.MaxCol)
	p.cursor.Row = clamp(p.cursor.Row+drow, 0, parser.MaxRow)
	if !extend || p.req.SingleCellOnly {
		p.anchor = p.cursor
	}
}

func (p *picker) setSheet(sheet int) {
	p.sheet = sheet
	p.anchor.Sheet = sheet
	p.cursor.Sheet = sheet
}

func (m *Model) updatePick(msg tea.KeyMsg) {
	p := m.pick
	switch {
	case key.Matches(msg, m.pkeys.Abort):
		m.endPick(false)
		return
	case key.Matches(msg, m.pkeys.Confirm):
		m.endPick(true)
		return
	case key.Matches(msg, m.pkeys.PrevSheet):
		m.switchSheet(-1)
	case key.Matches(msg, m.pkeys.NextSheet):
		m.switchSheet(1)
	case key.Matches(msg, m.pkeys.Up):
		p.move(0, -1, false)
	case key.Matches(msg, m.pkeys.Down):
		p.move(0, 1, false)
	case key.Matches(msg, m.pkeys.Left):
		p.move(-1, 0, false)
	case key.Matches(msg, m.pkeys.Right):
		p.move(1, 0, false)
	case key.Matches(msg, m.pkeys.ExtendUp):
		p.move(0, -1, true)
	case key.Matches(msg, m.pkeys.ExtendDown):
		p.move(0, 1, true)
	case key.Matches(msg, m.pkeys.ExtendLeft):
		p.move(-1, 0, true)
	case key.Matches(msg, m.pkeys.ExtendRight):
		p.move(1, 0, true)
	}
	m.scrollToCursor()
}

func (m *Model) updatePickMouse(msg tea.MouseMsg) {
	p := m.pick
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p.top = max(0, p.top-3)
	case msg.Button == tea.MouseButtonWheelDown:
		p.top = min(parser.MaxRow, p.top+3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return
		}
		p.anchor, p.cursor = c, c
		p.dragging = true
	case msg.Action == tea.MouseActionMotion && p.dragging:
		if c, ok := m.cellAt(msg.X, msg.Y); ok {
			p.cursor = c
			if p.req.SingleCellOnly {
				p.anchor = c
			}
		}
	case msg.Action == tea.MouseActionRelease && p.dragging:
		p.dragging = false
		if c, ok := m.cellAt(msg.X, msg.Y); ok {
			p.cursor = c
			if p.req.SingleCellOnly {
				p.anchor = c
			}
		}
		if p.req.CloseOnRelease {
			m.endPick(true)
		}
	}
}

func (m *Model) switchSheet(delta int) {
	n := m.sheetCount()
	if n == 0 {
		return
	}
	m.pick.setSheet(((m.pick.sheet+delta)%n + n) % n)
}

func (m *Model) sheetCount() int {
	n := 0
	for {
		if _, ok := m.doc.SheetName(n); !ok {
			return n
		}
		n++
	}
}

func (m *Model) gridSize() (cols, rows int) {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return max(1, (width-rowLabelWidth)/columnWidth), max(1, height-gridChrome)
}

// scrollToCursor moves the viewport so the cursor cell is visible.
func (m *Model) scrollToCursor() {
	p := m.pick
	cols, rows := m.gridSize()
	if p.cursor.Column < p.left {
		p.left = p.cursor.Column
	} else if p.cursor.Column >= p.left+cols {
		p.left = p.cursor.Column - cols + 1
	}
	if p.cursor.Row < p.top {
		p.top = p.cursor.Row
	} else if p.cursor.Row >= p.top+rows {
		p.top = p.cursor.Row - rows + 1
	}
}

// cellAt maps a terminal position to the grid cell drawn there.
func (m *Model) cellAt(x, y int) (models.CellAddress, bool) {
	p := m.pick
	if x < rowLabelWidth || y < gridTop {
		return models.CellAddress{}, false
	}
	cols, rows := m.gridSize()
	dc, dr := (x-rowLabelWidth)/columnWidth, y-gridTop
	if dc >= cols || dr >= rows {
		return models.CellAddress{}, false
	}
	col, row := p.left+dc, p.top+dr
	if col > parser.MaxCol || row > parser.MaxRow {
		return models.CellAddress{}, false
	}
	return models.CellAddress{Sheet: p.sheet, Column: col, Row: row}, true
}

func (m *Model) pickView() string {
	p := m.pick
	cols, rows := m.gridSize()
	data, _ := m.doc.Rows(p.sheet)
	sel := p.selection()
	name, _ := m.doc.SheetName(p.sheet)

	var b strings.Builder
	b.WriteString(m.styles.title.UnsetMarginBottom().Render(p.req.Title))
	b.WriteString("  " + m.styles.header.Render("sheet "+name))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	for c := p.left; c < p.left+cols && c <= parser.MaxCol; c++ {
		b.WriteString(m.styles.header.Render(fit(parser.EncodeColumn(c), columnWidth)))
	}
	b.WriteString("\n")

	for r := p.top; r < p.top+rows && r <= parser.MaxRow; r++ {
		b.WriteString(m.styles.header.Render(fmt.Sprintf("%*s ", rowLabelWidth-1, strconv.Itoa(r+1))))
		for c := p.left; c < p.left+cols && c <= parser.MaxCol; c++ {
			cell := fit(cellText(data, c, r), columnWidth-1)
			addr := models.CellAddress{Sheet: p.sheet, Column: c, Row: r}
			switch {
			case addr == p.cursor:
				cell = m.styles.cursor.Render(cell)
			case sel.Contains(addr):
				cell = m.styles.selected.Render(cell)
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.message.Render(p.text(m.doc)))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.pkeys))
	return b.String()
}

func cellText(rows [][]string, col, row int) string {
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

// fit pads or truncates s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
