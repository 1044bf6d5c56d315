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

// Package annotation adds annotations to the pages of a document and
// reads them back.
//
// The annotation types supported here are Link, Text, Square, Circle,
// Highlight and Redact.  Annotations of other types are returned as
// [*Unknown] by [List].  Redaction annotations mark areas of a page; the
// marked text is removed by [ApplyRedactions].
package annotation

import (
	"errors"
	"fmt"
	"time"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/document"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Annotation represents a PDF annotation.
type Annotation interface {
	// AnnotationType returns the subtype of the annotation, e.g. "Text" or
	// "Link".
	AnnotationType() pdf.Name

	// GetCommon returns the common annotation fields.
	GetCommon() *Common

	// AsDict returns the annotation dictionary, without the /P entry.
	AsDict() (*pdf.Dict, error)
}

var (
	_ Annotation = (*Link)(nil)
	_ Annotation = (*Text)(nil)
	_ Annotation = (*Square)(nil)
	_ Annotation = (*Circle)(nil)
	_ Annotation = (*Highlight)(nil)
	_ Annotation = (*Redact)(nil)
	_ Annotation = (*Unknown)(nil)
)

// Common contains the fields shared by all annotation types.
type Common struct {
	// Rect is the location of the annotation on the page, in default user
	// space units.
	Rect pdf.Rectangle

	// Contents (optional) is the text displayed for the annotation, or an
	// alternate description for annotations which do not display text.
	Contents string

	// Name (optional) uniquely identifies the annotation among all the
	// annotations on its page.  [Add] fills in a name if this is empty.
	//
	// This corresponds to the /NM entry in the PDF annotation dictionary.
	Name string

	// Modified (optional) is the time when the annotation was last changed.
	//
	// This corresponds to the /M entry in the PDF annotation dictionary.
	Modified time.Time

	// Flags is a set of flags specifying various characteristics of the
	// annotation.
	//
	// This corresponds to the /F entry in the PDF annotation dictionary.
	Flags Flags

	// Color (optional) is used for the background of closed pop-up
	// windows, for title bars and for link borders.
	//
	// This corresponds to the /C entry in the PDF annotation dictionary.
	Color *graphics.RGB

	// Page is the page the annotation belongs to.  It is set by [List].
	//
	// This corresponds to the /P entry in the PDF annotation dictionary.
	Page pdf.Reference
}

// GetCommon implements the [Annotation] interface.
func (c *Common) GetCommon() *Common {
	return c
}

func (c *Common) fillDict(d *pdf.Dict, tp pdf.Name) error {
	if c.Rect.IsZero() {
		return fmt.Errorf("%s annotation: %w", tp, errMissingRect)
	}
	d.Set("Type", pdf.Name("Annot"))
	d.Set("Subtype", tp)
	d.Set("Rect", c.Rect.AsArray())
	if c.Contents != "" {
		d.Set("Contents", pdf.TextString(c.Contents))
	}
	if c.Name != "" {
		d.Set("NM", pdf.TextString(c.Name))
	}
	if !c.Modified.IsZero() {
		d.Set("M", pdf.Date(c.Modified))
	}
	if c.Flags != 0 {
		d.Set("F", pdf.Integer(c.Flags))
	}
	if c.Color != nil {
		d.Set("C", c.Color.AsArray())
	}
	return nil
}

func decodeCommon(r pdf.Getter, c *Common, d *pdf.Dict) error {
	rect, err := pdf.GetRectangle(r, d.Get("Rect"))
	if err != nil {
		return err
	} else if rect == nil {
		return errMissingRect
	}
	c.Rect = *rect

	if s, err := pdf.GetString(r, d.Get("Contents")); err == nil {
		c.Contents = s.AsTextString()
	}
	if s, err := pdf.GetString(r, d.Get("NM")); err == nil {
		c.Name = s.AsTextString()
	}
	if s, err := pdf.GetString(r, d.Get("M")); err == nil && s != nil {
		if t, err := s.AsDate(); err == nil {
			c.Modified = t
		}
	}
	if f, err := pdf.GetInteger(r, d.Get("F")); err == nil {
		c.Flags = Flags(f)
	}
	c.Color = getColor(r, d.Get("C"))
	if ref, ok := d.Get("P").(pdf.Reference); ok {
		c.Page = ref
	}
	return nil
}

// Markup contains fields common to markup annotations.
type Markup struct {
	// Title (optional) is the text label displayed in the title bar of the
	// annotation's pop-up window.  By convention this identifies the user
	// who added the annotation.
	//
	// This corresponds to the /T entry in the PDF annotation dictionary.
	Title string

	// CreationDate (optional) is the time when the annotation was created.
	CreationDate time.Time

	// Subject (optional) is a short description of the annotation.
	//
	// This corresponds to the /Subj entry in the PDF annotation dictionary.
	Subject string
}

func (m *Markup) fillDict(d *pdf.Dict) {
	if m.Title != "" {
		d.Set("T", pdf.TextString(m.Title))
	}
	if !m.CreationDate.IsZero() {
		d.Set("CreationDate", pdf.Date(m.CreationDate))
	}
	if m.Subject != "" {
		d.Set("Subj", pdf.TextString(m.Subject))
	}
}

func decodeMarkup(r pdf.Getter, m *Markup, d *pdf.Dict) {
	if s, err := pdf.GetString(r, d.Get("T")); err == nil {
		m.Title = s.AsTextString()
	}
	if s, err := pdf.GetString(r, d.Get("CreationDate")); err == nil && s != nil {
		if t, err := s.AsDate(); err == nil {
			m.CreationDate = t
		}
	}
	if s, err := pdf.GetString(r, d.Get("Subj")); err == nil {
		m.Subject = s.AsTextString()
	}
}

// Add appends the annotation to the /Annots array of the page.
//
// The annotation dictionary is stored as an indirect object and its
// reference is returned.  If the annotation has no name, the name
// "annotation-NNN" is used, where NNN is the position of the annotation in
// the /Annots array.
func Add(doc *document.Document, page *document.Page, a Annotation) (pdf.Reference, error) {
	annots, err := pdf.GetArray(doc.Arena, page.Dict.Get("Annots"))
	if err != nil {
		return 0, fmt.Errorf("page /Annots: %w", err)
	}

	common := a.GetCommon()
	if common.Name == "" {
		common.Name = fmt.Sprintf("annotation-%03d", len(annots))
	}
	common.Page = page.Ref

	dict, err := a.AsDict()
	if err != nil {
		return 0, err
	}
	dict.Set("P", page.Ref)
	ref := doc.Arena.Add(dict)

	// The array is copied, since it may be shared with other pages.
	res := make(pdf.Array, 0, len(annots)+1)
	res = append(res, annots...)
	res = append(res, ref)
	page.Dict.Set("Annots", res)

	return ref, nil
}

// List returns the annotations of a page.
//
// Annotation dictionaries which cannot be read are skipped.  Annotations
// of unsupported types are returned as [*Unknown].
func List(r pdf.Getter, page *pdf.Dict) ([]Annotation, error) {
	annots, err := pdf.GetArray(r, page.Get("Annots"))
	if err != nil {
		return nil, fmt.Errorf("page /Annots: %w", err)
	}

	var res []Annotation
	for _, obj := range annots {
		dict, err := pdf.GetDict(r, obj)
		if err != nil || dict == nil {
			continue
		}
		a, err := Decode(r, dict)
		if err != nil {
			continue
		}
		res = append(res, a)
	}
	return res, nil
}

// Decode reads an annotation from its dictionary.
func Decode(r pdf.Getter, dict *pdf.Dict) (Annotation, error) {
	tp, err := pdf.GetName(r, dict.Get("Subtype"))
	if err != nil {
		return nil, err
	}

	var a Annotation
	switch tp {
	case "Link":
		a, err = decodeLink(r, dict)
	case "Text":
		a, err = decodeText(r, dict)
	case "Square":
		var s *Square
		s, err = decodeSquare(r, dict)
		a = s
	case "Circle":
		var s *Square
		s, err = decodeSquare(r, dict)
		if s != nil {
			a = (*Circle)(s)
		}
	case "Highlight":
		a, err = decodeHighlight(r, dict)
	case "Redact":
		a, err = decodeRedact(r, dict)
	default:
		u := &Unknown{Subtype: tp, Dict: dict}
		err = decodeCommon(r, &u.Common, dict)
		a = u
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func getColor(r pdf.Getter, obj pdf.Object) *graphics.RGB {
	a, err := pdf.GetArray(r, obj)
	if err != nil || len(a) != 3 {
		return nil
	}
	var v [3]float64
	for i, x := range a {
		v[i], err = pdf.GetNumber(r, x)
		if err != nil {
			return nil
		}
	}
	return &graphics.RGB{R: v[0], G: v[1], B: v[2]}
}

func getNumbers(r pdf.Getter, obj pdf.Object) []float64 {
	a, err := pdf.GetArray(r, obj)
	if err != nil || len(a) == 0 {
		return nil
	}
	res := make([]float64, 0, len(a))
	for _, x := range a {
		v, err := pdf.GetNumber(r, x)
		if err != nil {
			return nil
		}
		res = append(res, v)
	}
	return res
}

func numbers(x []float64) pdf.Array {
	res := make(pdf.Array, len(x))
	for i, v := range x {
		res[i] = pdf.Number(v)
	}
	return res
}

var (
	errMissingRect = errors.New("missing /Rect")
	errQuadPoints  = errors.New("QuadPoints must consist of groups of 8 numbers")
)
