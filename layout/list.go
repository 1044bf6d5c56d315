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
	"strconv"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/graphics"
)

// List is a bulleted or numbered list.  Items can be any elements,
// including nested lists.
type List struct {
	Items []Element

	// Ordered selects numbered labels "1.", "2.", ... instead of bullets.
	Ordered bool
	Start   int
	Bullet  string

	// Font and FontSize are used for the labels.
	Font     font.Font
	FontSize float64

	// Indent is the space reserved for the labels.  The default is twice
	// the font size.
	Indent float64

	// ItemGap is the vertical space between items.  The default is a
	// quarter of the font size.
	ItemGap float64

	heights []float64
}

// NewList returns an empty bulleted list.
func NewList(f font.Font, size float64) *List {
	return &List{Font: f, FontSize: size, Bullet: "•", Start: 1}
}

// AddItem appends an item to the list.
func (l *List) AddItem(e Element) *List {
	l.Items = append(l.Items, e)
	return l
}

// Spacing implements the [Element] interface.
func (l *List) Spacing() Spacing {
	v := 0.5 * l.FontSize
	return Spacing{Top: v, Bottom: v}
}

// TextSize implements the [Element] interface.
func (l *List) TextSize() float64 {
	return l.FontSize
}

func (l *List) indent() float64 {
	if l.Indent > 0 {
		return l.Indent
	}
	return 2 * l.FontSize
}

func (l *List) gap() float64 {
	if l.ItemGap > 0 {
		return l.ItemGap
	}
	return 0.25 * l.FontSize
}

func (l *List) label(i int) string {
	if l.Ordered {
		start := l.Start
		if start == 0 {
			start = 1
		}
		return strconv.Itoa(start+i) + "."
	}
	if l.Bullet == "" {
		return "•"
	}
	return l.Bullet
}

func (l *List) itemRect(avail pdf.Rectangle, top float64) pdf.Rectangle {
	return pdf.Rectangle{
		LLx: avail.LLx + l.indent(),
		LLy: avail.LLy,
		URx: avail.URx,
		URy: top,
	}
}

// Measure implements the [Element] interface.
func (l *List) Measure(avail pdf.Rectangle) (float64, float64) {
	l.heights = l.heights[:0]
	var width, height float64
	top := avail.URy
	for i, item := range l.Items {
		if i > 0 {
			height += l.gap()
			top -= l.gap()
		}
		w, h := item.Measure(l.itemRect(avail, top))
		l.heights = append(l.heights, h)
		width = max(width, l.indent()+w)
		height += h
		top -= h
	}
	return width, height
}

// Draw implements the [Element] interface.
func (l *List) Draw(c *Canvas, box pdf.Rectangle) error {
	if len(l.heights) != len(l.Items) {
		l.Measure(box)
	}
	name, err := c.FontName(l.Font)
	if err != nil {
		return err
	}
	ascent := l.Font.Ascent() * l.FontSize / float64(l.Font.UnitsPerEm())

	top := box.URy
	for i, item := range l.Items {
		if i > 0 {
			top -= l.gap()
		}

		// labels are right-aligned in the indentation
		label := l.label(i)
		w := font.TextWidth(l.Font, label, l.FontSize)
		ops := &graphics.Ops{}
		ops.TextBegin()
		ops.TextSetFont(name, l.FontSize)
		ops.TextFirstLine(box.LLx+l.indent()-w-0.3*l.FontSize, top-ascent)
		ops.TextShow(font.Layout(l.Font, label).Encode())
		ops.TextEnd()
		err := c.Append(ops)
		if err != nil {
			return err
		}

		r := l.itemRect(box, top)
		r.LLy = top - l.heights[i]
		err = item.Draw(c, r)
		if err != nil {
			return err
		}
		top -= l.heights[i]
	}
	return nil
}
