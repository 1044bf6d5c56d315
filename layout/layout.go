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

// Package layout places text, tables, lists, images and shapes on the pages
// of a document.
//
// Elements are added one after another using [Layout.Add].  Each element is
// placed below the previous one in the current column.  When a column is
// full, layout continues in the next column, and after the last column on
// a new page.
package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
)

// Spacing gives the space to leave around an element.
type Spacing struct {
	Top, Right, Bottom, Left float64
}

// Element is something which can be placed by the layout engine.
type Element interface {
	// Spacing returns the margins around the element.
	Spacing() Spacing

	// TextSize returns the font size for text elements, and 0 for all other
	// elements.  This is used to compute the space between elements.
	TextSize() float64

	// Measure returns the size the element needs, when placed at the top
	// of the given rectangle.  The height may exceed the height of avail.
	Measure(avail pdf.Rectangle) (width, height float64)

	// Draw paints the element into the given box.
	Draw(c *Canvas, box pdf.Rectangle) error
}

// A Painter draws into the header or footer band of a page.
type Painter func(c *Canvas, band pdf.Rectangle, pageNo int) error

// Options control the page layout.  Zero values select the defaults.
type Options struct {
	// PageSize is the media box of new pages.  The default is A4.
	PageSize pdf.Rectangle

	// Columns is the number of text columns.  The default is 1.
	Columns int

	// Margins are the page margins.  By default, 10% of the page height
	// is used at the top and bottom, and 10% of the page width on the
	// left and right.
	Margins *Spacing

	// Gutter is the space between columns.  The default is 5% of the
	// page width.
	Gutter float64

	// Header and Footer, if set, are called once for every new page.
	// HeaderHeight and FooterHeight give the sizes of the bands, which are
	// removed from the area available to the columns.
	Header       Painter
	HeaderHeight float64
	Footer       Painter
	FooterHeight float64

	// NewPage creates the next page when all columns of the current page
	// are full.  The default appends a page of size PageSize to the
	// document.  If NewPage returns nil, the layout stops and further
	// elements are discarded.
	NewPage func(doc *document.Document) (*document.Page, error)

	// Logger receives diagnostic messages.  If this is nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// placed records an element which has been painted.
type placed struct {
	box      pdf.Rectangle
	spacing  Spacing
	textSize float64
}

// Layout distributes elements over the columns of a sequence of pages.
type Layout struct {
	doc    *document.Document
	opt    Options
	logger *slog.Logger

	margins Spacing
	gutter  float64

	canvas   *Canvas
	pageNo   int
	column   int
	prev     *placed
	overflow bool
}

// New starts a new layout.  The first page is created immediately.
func New(doc *document.Document, opt *Options) (*Layout, error) {
	l := &Layout{doc: doc}
	if opt != nil {
		l.opt = *opt
	}
	if l.opt.PageSize.IsZero() {
		l.opt.PageSize = document.A4
	}
	if l.opt.Columns <= 0 {
		l.opt.Columns = 1
	}
	l.logger = l.opt.Logger
	if l.logger == nil {
		l.logger = slog.Default()
	}

	size := l.opt.PageSize
	if l.opt.Margins != nil {
		l.margins = *l.opt.Margins
	} else {
		v := 0.1 * size.Height()
		h := 0.1 * size.Width()
		l.margins = Spacing{Top: v, Right: h, Bottom: v, Left: h}
	}
	l.gutter = l.opt.Gutter
	if l.gutter == 0 && l.opt.Columns > 1 {
		l.gutter = 0.05 * size.Width()
	}
	if l.ColumnWidth() <= 0 || l.top() <= l.bottom() {
		return nil, errNoSpace
	}

	err := l.nextPage()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Document returns the document the layout writes to.
func (l *Layout) Document() *document.Document {
	return l.doc
}

// Canvas returns the canvas for the current page, or nil if the layout
// has overflowed.
func (l *Layout) Canvas() *Canvas {
	if l.overflow {
		return nil
	}
	return l.canvas
}

// Column returns the index of the active column.
func (l *Layout) Column() int {
	return l.column
}

// Overflowed reports whether the layout has stopped because no further
// page could be created.
func (l *Layout) Overflowed() bool {
	return l.overflow
}

// ColumnWidth returns the width of a single column.
func (l *Layout) ColumnWidth() float64 {
	n := float64(l.opt.Columns)
	total := l.opt.PageSize.Width() - l.margins.Left - l.margins.Right
	return (total - (n-1)*l.gutter) / n
}

// ColumnRect returns the area of column i on the page.
func (l *Layout) ColumnRect(i int) pdf.Rectangle {
	w := l.ColumnWidth()
	x := l.opt.PageSize.LLx + l.margins.Left + float64(i)*(w+l.gutter)
	return pdf.Rectangle{LLx: x, LLy: l.bottom(), URx: x + w, URy: l.top()}
}

func (l *Layout) top() float64 {
	return l.opt.PageSize.URy - l.margins.Top - l.opt.HeaderHeight
}

func (l *Layout) bottom() float64 {
	return l.opt.PageSize.LLy + l.margins.Bottom + l.opt.FooterHeight
}

// Add places e below the previously added element.
//
// If the element does not fit into the remaining space of the column,
// it is placed at the top of the next column.  ErrElementTooTall is
// returned if the element does not even fit into an empty column, and
// ErrElementTooWide if it is wider than a column.  Once the layout has
// overflowed, Add does nothing.
//
// Elements with a Check() error method, like [Table], are validated
// before anything is measured.
func (l *Layout) Add(e Element) error {
	if c, ok := e.(checker); ok {
		if err := c.Check(); err != nil {
			return err
		}
	}
	for {
		if l.column >= l.opt.Columns || l.overflow {
			return nil
		}

		col := l.ColumnRect(l.column)
		sp := e.Spacing()

		prevBottom := l.top()
		var leading, gap float64
		if l.prev != nil {
			prevBottom = l.prev.box.LLy
			leading = math.Max(elementLeading(l.prev.textSize), elementLeading(e.TextSize()))
			gap = math.Max(l.prev.spacing.Bottom, sp.Top)
		} else {
			gap = sp.Top
		}

		avail := pdf.Rectangle{
			LLx: col.LLx + sp.Left,
			LLy: col.LLy,
			URx: col.URx - sp.Right,
			URy: prevBottom - leading - gap,
		}
		if avail.URy < avail.LLy {
			if l.prev == nil {
				return fmt.Errorf("%w: margins exceed column height", ErrElementTooTall)
			}
			err := l.nextColumn()
			if err != nil {
				return err
			}
			continue
		}

		width, height := e.Measure(avail)
		if height > avail.Height()+epsilon {
			if l.prev == nil {
				return fmt.Errorf("%w: height %.2f exceeds column height %.2f",
					ErrElementTooTall, height, avail.Height())
			}
			err := l.nextColumn()
			if err != nil {
				return err
			}
			continue
		}
		if avail.LLx+width > col.URx+epsilon {
			return fmt.Errorf("%w: width %.2f exceeds available width %.2f",
				ErrElementTooWide, width, col.URx-avail.LLx)
		}

		box := pdf.Rectangle{
			LLx: avail.LLx,
			LLy: avail.URy - height,
			URx: avail.LLx + width,
			URy: avail.URy,
		}
		err := e.Draw(l.canvas, box)
		if err != nil {
			return err
		}
		l.prev = &placed{box: box, spacing: sp, textSize: e.TextSize()}
		return nil
	}
}

type checker interface {
	Check() error
}

// NextColumn continues the layout at the top of the next column.
func (l *Layout) NextColumn() error {
	if l.overflow {
		return nil
	}
	return l.nextColumn()
}

// NextPage continues the layout at the top of the first column on a new
// page.
func (l *Layout) NextPage() error {
	if l.overflow {
		return nil
	}
	return l.nextPage()
}

func (l *Layout) nextColumn() error {
	l.column++
	l.prev = nil
	if l.column < l.opt.Columns {
		return nil
	}
	return l.nextPage()
}

func (l *Layout) nextPage() error {
	var page *document.Page
	var err error
	if l.opt.NewPage != nil {
		page, err = l.opt.NewPage(l.doc)
	} else {
		page = l.doc.AddPage(l.opt.PageSize)
	}
	if err != nil {
		return err
	}
	if page == nil {
		l.logger.Debug("layout overflow, discarding further elements")
		l.overflow = true
		return nil
	}

	canvas, err := newCanvas(l.doc, page)
	if err != nil {
		return err
	}
	l.canvas = canvas
	l.pageNo++
	l.column = 0
	l.prev = nil

	size := l.opt.PageSize
	if l.opt.Header != nil {
		band := pdf.Rectangle{
			LLx: size.LLx + l.margins.Left,
			LLy: l.top(),
			URx: size.URx - l.margins.Right,
			URy: l.top() + l.opt.HeaderHeight,
		}
		err := l.opt.Header(canvas, band, l.pageNo)
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
	}
	if l.opt.Footer != nil {
		band := pdf.Rectangle{
			LLx: size.LLx + l.margins.Left,
			LLy: l.bottom() - l.opt.FooterHeight,
			URx: size.URx - l.margins.Right,
			URy: l.bottom(),
		}
		err := l.opt.Footer(canvas, band, l.pageNo)
		if err != nil {
			return fmt.Errorf("footer: %w", err)
		}
	}
	return nil
}

// elementLeading gives the space an element requires above and below.
func elementLeading(textSize float64) float64 {
	if textSize > 0 {
		return 1.2 * textSize
	}
	return 5
}

// epsilon is the tolerance used when comparing lengths.
const epsilon = 1e-2

var (
	// ErrElementTooTall is returned by [Layout.Add] when an element is
	// higher than an empty column.
	ErrElementTooTall = errors.New("element too tall")

	// ErrElementTooWide is returned by [Layout.Add] when an element is
	// wider than a column.
	ErrElementTooWide = errors.New("element too wide")

	errNoSpace = errors.New("margins leave no space for the columns")
)
