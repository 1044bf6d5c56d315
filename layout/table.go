// seehuhn.de/go/pdfdoc - a library for reading, writing and laying out PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package layout

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Cell is a cell of a [Table].
type Cell struct {
	Content Element

	Row, Col         int
	RowSpan, ColSpan int

	// Background, if set, fills the cell before the content is drawn.
	Background *graphics.RGB
}

// Span makes the cell cover several rows and columns.
func (c *Cell) Span(rows, cols int) *Cell {
	c.RowSpan = rows
	c.ColSpan = cols
	return c
}

// Table arranges elements in a grid.
//
// With fixed column widths, the available width is divided between the
// columns in proportion to the given weights.  With flexible column widths,
// every column is as wide as its widest content, and all columns are
// scaled down proportionally if the table does not fit.
type Table struct {
	// Weights gives the relative column widths.  This is nil for tables
	// with flexible column widths.
	Weights []float64

	// Padding is the space between the cell border and the content.
	Padding float64

	// BorderWidth is the line width of the cell borders.  Borders are
	// omitted if this is negative.
	BorderWidth float64
	BorderColor graphics.RGB

	Margins Spacing

	numCols int
	cells   []*Cell

	colWidths  []float64
	rowHeights []float64
	rects      map[*Cell]pdf.Rectangle
}

// NewFixedTable returns a table with the given relative column widths.
func NewFixedTable(weights ...float64) *Table {
	return &Table{
		Weights:     weights,
		numCols:     len(weights),
		Padding:     2,
		BorderWidth: 0.5,
	}
}

// NewFlexibleTable returns a table whose column widths are determined by
// the content.
func NewFlexibleTable(columns int) *Table {
	return &Table{
		numCols:     columns,
		Padding:     2,
		BorderWidth: 0.5,
	}
}

// Add places an element into the cell at the given row and column.
func (t *Table) Add(row, col int, e Element) *Cell {
	c := &Cell{Content: e, Row: row, Col: col, RowSpan: 1, ColSpan: 1}
	t.cells = append(t.cells, c)
	return c
}

// Check verifies that all cells lie inside the table and that no two cells
// overlap.
func (t *Table) Check() error {
	used := make(map[[2]int]*Cell)
	for _, c := range t.cells {
		if c.Row < 0 || c.Col < 0 || c.RowSpan < 1 || c.ColSpan < 1 ||
			c.Col+c.ColSpan > t.numCols {
			return fmt.Errorf("cell (%d,%d): %w", c.Row, c.Col, errCellOutside)
		}
		for i := c.Row; i < c.Row+c.RowSpan; i++ {
			for j := c.Col; j < c.Col+c.ColSpan; j++ {
				if other, ok := used[[2]int{i, j}]; ok {
					return fmt.Errorf("cells (%d,%d) and (%d,%d): %w",
						c.Row, c.Col, other.Row, other.Col, errCellOverlap)
				}
				used[[2]int{i, j}] = c
			}
		}
	}
	return nil
}

// CellRect returns the rectangle where a cell was drawn, or the zero
// rectangle if the table has not been drawn yet.
func (t *Table) CellRect(c *Cell) pdf.Rectangle {
	return t.rects[c]
}

func (t *Table) numRows() int {
	n := 0
	for _, c := range t.cells {
		n = max(n, c.Row+c.RowSpan)
	}
	return n
}

// Spacing implements the [Element] interface.
func (t *Table) Spacing() Spacing {
	return t.Margins
}

// TextSize implements the [Element] interface.
func (t *Table) TextSize() float64 {
	return 0
}

func (t *Table) computeColumns(width float64) {
	t.colWidths = make([]float64, t.numCols)
	if t.Weights != nil {
		var total float64
		for _, w := range t.Weights {
			total += max(w, 0)
		}
		for i := range t.colWidths {
			switch {
			case total <= 0:
				t.colWidths[i] = width / float64(t.numCols)
			case i < len(t.Weights):
				t.colWidths[i] = width * max(t.Weights[i], 0) / total
			}
		}
		return
	}

	for _, c := range t.cells {
		if c.ColSpan != 1 {
			continue
		}
		w := naturalWidth(c.Content) + 2*t.Padding
		t.colWidths[c.Col] = math.Max(t.colWidths[c.Col], w)
	}
	// spanning cells widen their columns evenly, if needed
	for _, c := range t.cells {
		if c.ColSpan == 1 {
			continue
		}
		need := naturalWidth(c.Content) + 2*t.Padding
		have := t.span(t.colWidths, c.Col, c.ColSpan)
		if need > have {
			extra := (need - have) / float64(c.ColSpan)
			for j := c.Col; j < c.Col+c.ColSpan; j++ {
				t.colWidths[j] += extra
			}
		}
	}

	var total float64
	for _, w := range t.colWidths {
		total += w
	}
	if total > width {
		q := width / total
		for i := range t.colWidths {
			t.colWidths[i] *= q
		}
	}
}

// naturalWidth returns the width an element takes when it is not wrapped.
func naturalWidth(e Element) float64 {
	if nw, ok := e.(interface{ NaturalWidth() float64 }); ok {
		return nw.NaturalWidth()
	}
	w, _ := e.Measure(pdf.Rectangle{URx: 1e6, URy: 1e6})
	return w
}

func (t *Table) span(sizes []float64, start, n int) float64 {
	var sum float64
	for _, s := range sizes[start : start+n] {
		sum += s
	}
	return sum
}

// contentRect returns the inner rectangle for a cell, with the top edge
// at top.
func (t *Table) contentRect(c *Cell, left, top float64) pdf.Rectangle {
	w := t.span(t.colWidths, c.Col, c.ColSpan)
	return pdf.Rectangle{
		LLx: left + t.Padding,
		LLy: -1e6,
		URx: left + w - t.Padding,
		URy: top - t.Padding,
	}
}

// Measure implements the [Element] interface.
//
// Row heights are computed in two passes: first every row becomes as high
// as its highest single-row cell, then rows covered by a spanning cell are
// enlarged evenly if the cell needs more space.
//
// A table which fails [Table.Check] measures as empty.
func (t *Table) Measure(avail pdf.Rectangle) (float64, float64) {
	if t.Check() != nil {
		t.colWidths = nil
		t.rowHeights = nil
		return 0, 0
	}
	t.computeColumns(avail.Width())

	n := t.numRows()
	t.rowHeights = make([]float64, n)
	for _, c := range t.cells {
		if c.RowSpan != 1 {
			continue
		}
		h := t.cellHeight(c)
		t.rowHeights[c.Row] = math.Max(t.rowHeights[c.Row], h)
	}
	for _, c := range t.cells {
		if c.RowSpan == 1 {
			continue
		}
		need := t.cellHeight(c)
		have := t.span(t.rowHeights, c.Row, c.RowSpan)
		if need > have {
			extra := (need - have) / float64(c.RowSpan)
			for i := c.Row; i < c.Row+c.RowSpan; i++ {
				t.rowHeights[i] += extra
			}
		}
	}

	var width, height float64
	for _, w := range t.colWidths {
		width += w
	}
	for _, h := range t.rowHeights {
		height += h
	}
	return width, height
}

func (t *Table) cellHeight(c *Cell) float64 {
	_, h := c.Content.Measure(t.contentRect(c, 0, 0))
	return h + 2*t.Padding
}

// Draw implements the [Element] interface.
//
// The cell contents are drawn first and then cut from the content stream,
// so that backgrounds and borders can be drawn underneath before the
// contents are restored.
func (t *Table) Draw(c *Canvas, box pdf.Rectangle) error {
	err := t.Check()
	if err != nil {
		return err
	}
	if len(t.colWidths) != t.numCols || len(t.rowHeights) != t.numRows() {
		t.Measure(box)
	}

	xs := make([]float64, t.numCols+1)
	xs[0] = box.LLx
	for j, w := range t.colWidths {
		xs[j+1] = xs[j] + w
	}
	ys := make([]float64, len(t.rowHeights)+1)
	ys[0] = box.URy
	for i, h := range t.rowHeights {
		ys[i+1] = ys[i] - h
	}

	t.rects = make(map[*Cell]pdf.Rectangle, len(t.cells))
	mark := c.Mark()
	for _, cell := range t.cells {
		rect := pdf.Rectangle{
			LLx: xs[cell.Col],
			LLy: ys[cell.Row+cell.RowSpan],
			URx: xs[cell.Col+cell.ColSpan],
			URy: ys[cell.Row],
		}
		t.rects[cell] = rect

		inner := t.contentRect(cell, rect.LLx, rect.URy)
		w, h := cell.Content.Measure(inner)
		err := cell.Content.Draw(c, pdf.Rectangle{
			LLx: inner.LLx,
			LLy: inner.URy - h,
			URx: inner.LLx + w,
			URy: inner.URy,
		})
		if err != nil {
			return err
		}
	}
	content := c.Cut(mark)

	ops := &graphics.Ops{}
	ops.PushGraphicsState()
	for _, cell := range t.cells {
		if cell.Background == nil {
			continue
		}
		r := t.rects[cell]
		ops.SetFillRGB(*cell.Background)
		ops.Rectangle(r.LLx, r.LLy, r.Width(), r.Height())
		ops.Fill()
	}
	if t.BorderWidth >= 0 {
		ops.SetStrokeRGB(t.BorderColor)
		ops.SetLineWidth(t.BorderWidth)
		for _, cell := range t.cells {
			r := t.rects[cell]
			ops.Rectangle(r.LLx, r.LLy, r.Width(), r.Height())
		}
		ops.Stroke()
	}
	ops.PopGraphicsState()
	err = c.Append(ops)
	if err != nil {
		return err
	}
	return c.Restore(content)
}

var (
	errCellOutside = errors.New("cell outside the table")
	errCellOverlap = errors.New("overlapping cells")
)
