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

package document

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/content"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Page is a typed view of a page dictionary.
type Page struct {
	Dict *pdf.Dict
	Ref  pdf.Reference

	doc     *Document
	content *graphics.ContentStream
}

// asPage checks that dict is a page dictionary with a (possibly
// inherited) media box.
func asPage(doc *Document, ref pdf.Reference, dict *pdf.Dict) (*Page, error) {
	if tp, _ := dict.Get("Type").(pdf.Name); tp != "Page" {
		return nil, fmt.Errorf("object %s: %w", ref, errNotAPage)
	}
	mb, err := content.Inherited(doc.Arena, dict, "MediaBox")
	if err != nil {
		return nil, err
	}
	if _, err := pdf.GetRectangle(doc.Arena, mb); err != nil || mb == nil {
		return nil, fmt.Errorf("page %s: invalid /MediaBox", ref)
	}
	return &Page{Dict: dict, Ref: ref, doc: doc}, nil
}

// Document returns the document which contains the page.
func (p *Page) Document() *Document {
	return p.doc
}

// Index returns the position of the page in the document, or -1 if the
// page is not part of the page tree.
func (p *Page) Index() int {
	for i, q := range p.doc.pages {
		if q == p {
			return i
		}
	}
	return -1
}

// MediaBox returns the page size.
func (p *Page) MediaBox() pdf.Rectangle {
	obj, _ := content.Inherited(p.doc.Arena, p.Dict, "MediaBox")
	rect, err := pdf.GetRectangle(p.doc.Arena, obj)
	if err != nil || rect == nil {
		return pdf.Rectangle{}
	}
	return *rect
}

// Rotate returns the number of degrees by which the page is rotated
// clockwise when displayed.
func (p *Page) Rotate() int {
	obj, _ := content.Inherited(p.doc.Arena, p.Dict, "Rotate")
	x, _ := pdf.GetInteger(p.doc.Arena, obj)
	r := int(x) % 360
	if r < 0 {
		r += 360
	}
	return r
}

// SetRotate sets the display rotation of the page.  The angle must be a
// multiple of 90 degrees.
func (p *Page) SetRotate(degrees int) error {
	if degrees%90 != 0 {
		return errRotation
	}
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	if degrees == 0 {
		p.Dict.Delete("Rotate")
	} else {
		p.Dict.Set("Rotate", pdf.Integer(degrees))
	}
	return nil
}

// Content returns the content stream of the page, together with its
// resource dictionary.
//
// Pages read from a file may have a /Contents array; these streams are
// merged into one.  Inherited resources are copied into the page, so
// that new resources can be added without affecting other pages.
func (p *Page) Content() (*graphics.ContentStream, error) {
	if p.content != nil {
		return p.content, nil
	}
	r := p.doc.Arena

	res, err := content.Inherited(r, p.Dict, "Resources")
	if err != nil {
		return nil, err
	}
	resources, err := pdf.GetDict(r, res)
	if err != nil {
		return nil, fmt.Errorf("page /Resources: %w", err)
	}
	if resources == nil {
		resources = pdf.NewDict()
		p.Dict.Set("Resources", resources)
	} else if _, isRef := res.(pdf.Reference); isRef || !p.Dict.Has("Resources") {
		resources = resources.Clone()
		p.Dict.Set("Resources", resources)
	}

	var stm *pdf.Stream
	switch contents := p.Dict.Get("Contents").(type) {
	case nil:
	case pdf.Reference:
		obj, err := pdf.Resolve(r, contents)
		if err != nil {
			return nil, err
		}
		stm, _ = obj.(*pdf.Stream)
	case *pdf.Stream:
		stm = contents
	}
	if stm == nil && p.Dict.Has("Contents") {
		data, err := content.PageContent(r, p.Dict, p.doc.logger)
		if err != nil {
			return nil, err
		}
		dict := pdf.NewDict().Set("Filter", pdf.Name("FlateDecode"))
		stm = pdf.NewDecodedStream(dict, data)
		p.Dict.Set("Contents", r.Add(stm))
	}

	p.content = graphics.NewContentStream(r, stm, resources)
	p.content.Logger = p.doc.logger
	if stm == nil {
		p.Dict.Set("Contents", r.Add(p.content.Stream))
	}
	return p.content, nil
}

// AppendOperators appends content stream operators to the page.
func (p *Page) AppendOperators(b []byte) error {
	c, err := p.Content()
	if err != nil {
		return err
	}
	return c.AppendOperators(b)
}

// Text returns the text shown on the page.
func (p *Page) Text() (string, error) {
	return content.ExtractText(p.doc.Arena, p.Dict)
}

var (
	errNotAPage = errors.New("not a page dictionary")
	errRotation = errors.New("page rotation must be a multiple of 90 degrees")
)
