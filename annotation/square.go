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

package annotation

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/graphics"
)

// Square represents a rectangle drawn on the page.  The rectangle is
// inscribed in Rect, inset by Margin.
type Square struct {
	Common
	Markup

	// FillColor (optional) is the colour used for the interior.
	//
	// This corresponds to the /IC entry in the PDF annotation dictionary.
	FillColor *graphics.RGB

	// BorderWidth is the line width of the border.  If this is zero, the
	// default width of 1 is used.  Use a negative value for no border.
	BorderWidth float64

	// Margin (optional) gives the distances between Rect and the drawn
	// shape, in the order left, top, right, bottom.
	//
	// This corresponds to the /RD entry in the PDF annotation dictionary.
	Margin []float64
}

// AnnotationType returns "Square".
// This implements the [Annotation] interface.
func (s *Square) AnnotationType() pdf.Name {
	return "Square"
}

// AsDict implements the [Annotation] interface.
func (s *Square) AsDict() (*pdf.Dict, error) {
	return s.asDict("Square")
}

func (s *Square) asDict(tp pdf.Name) (*pdf.Dict, error) {
	d := pdf.NewDict()
	if err := s.Common.fillDict(d, tp); err != nil {
		return nil, err
	}
	s.Markup.fillDict(d)
	if s.FillColor != nil {
		d.Set("IC", s.FillColor.AsArray())
	}
	switch {
	case s.BorderWidth < 0:
		d.Set("BS", pdf.NewDict().Set("W", pdf.Integer(0)))
	case s.BorderWidth > 0 && s.BorderWidth != 1:
		d.Set("BS", pdf.NewDict().Set("W", pdf.Number(s.BorderWidth)))
	}
	if len(s.Margin) == 4 {
		d.Set("RD", numbers(s.Margin))
	}
	return d, nil
}

func decodeSquare(r pdf.Getter, d *pdf.Dict) (*Square, error) {
	s := &Square{}
	if err := decodeCommon(r, &s.Common, d); err != nil {
		return nil, err
	}
	decodeMarkup(r, &s.Markup, d)
	s.FillColor = getColor(r, d.Get("IC"))
	if bs, _ := pdf.GetDict(r, d.Get("BS")); bs != nil && bs.Has("W") {
		w, _ := pdf.GetNumber(r, bs.Get("W"))
		if w == 0 {
			w = -1
		}
		s.BorderWidth = w
	}
	if rd := getNumbers(r, d.Get("RD")); len(rd) == 4 {
		s.Margin = rd
	}
	return s, nil
}

// Circle represents an ellipse drawn on the page.  The ellipse is
// inscribed in Rect, inset by Margin.  The fields have the same meaning
// as for [Square].
type Circle Square

// GetCommon implements the [Annotation] interface.
func (c *Circle) GetCommon() *Common {
	return &c.Common
}

// AnnotationType returns "Circle".
// This implements the [Annotation] interface.
func (c *Circle) AnnotationType() pdf.Name {
	return "Circle"
}

// AsDict implements the [Annotation] interface.
func (c *Circle) AsDict() (*pdf.Dict, error) {
	return (*Square)(c).asDict("Circle")
}
