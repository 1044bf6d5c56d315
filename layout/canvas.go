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
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Canvas is the page which elements are drawn onto.
type Canvas struct {
	Doc     *document.Document
	Page    *document.Page
	Content *graphics.ContentStream
}

func newCanvas(doc *document.Document, page *document.Page) (*Canvas, error) {
	c, err := page.Content()
	if err != nil {
		return nil, err
	}
	return &Canvas{Doc: doc, Page: page, Content: c}, nil
}

// FontName returns the resource name for f on the current page.  The
// font is embedded into the document on first use.
func (c *Canvas) FontName(f font.Font) (pdf.Name, error) {
	ref, err := c.Doc.FontRef(f)
	if err != nil {
		return "", err
	}
	return c.Content.FontName(ref)
}

// Append adds the operators collected in ops to the page.
func (c *Canvas) Append(ops *graphics.Ops) error {
	return c.Content.AppendOperators(ops.Bytes())
}

// Mark returns the current end of the content stream.
func (c *Canvas) Mark() int {
	return c.Content.Mark()
}

// Cut removes and returns everything written after mark.
func (c *Canvas) Cut(mark int) []byte {
	return c.Content.Cut(mark)
}

// Restore appends data previously removed by Cut.
func (c *Canvas) Restore(data []byte) error {
	return c.Content.AppendOperators(data)
}

// SetOpacity adds a graphics state operator for the given alpha value to
// ops.  Opacity 1 is the default and emits nothing.
func (c *Canvas) SetOpacity(ops *graphics.Ops, alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return nil
	}
	return c.Content.SetExtGState(ops, graphics.Opacity(alpha))
}
