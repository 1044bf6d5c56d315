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
)

// Highlight marks text on the page with a coloured background.
type Highlight struct {
	Common
	Markup

	// QuadPoints gives the coordinates of the highlighted areas.  Each group
	// of 8 numbers gives the four corners x1 y1 ... x4 y4 of one
	// quadrilateral, counter-clockwise.  If this is empty, Rect is used.
	QuadPoints []float64
}

// AnnotationType returns "Highlight".
// This implements the [Annotation] interface.
func (h *Highlight) AnnotationType() pdf.Name {
	return "Highlight"
}

// AsDict implements the [Annotation] interface.
func (h *Highlight) AsDict() (*pdf.Dict, error) {
	if len(h.QuadPoints)%8 != 0 {
		return nil, errQuadPoints
	}
	d := pdf.NewDict()
	if err := h.Common.fillDict(d, "Highlight"); err != nil {
		return nil, err
	}
	h.Markup.fillDict(d)
	d.Set("QuadPoints", numbers(quadPoints(h.QuadPoints, h.Rect)))
	return d, nil
}

func decodeHighlight(r pdf.Getter, d *pdf.Dict) (*Highlight, error) {
	h := &Highlight{}
	if err := decodeCommon(r, &h.Common, d); err != nil {
		return nil, err
	}
	decodeMarkup(r, &h.Markup, d)
	if qp := getNumbers(r, d.Get("QuadPoints")); len(qp)%8 == 0 {
		h.QuadPoints = qp
	}
	return h, nil
}

// quadPoints returns qp, or the quadrilateral covering rect if qp is empty.
func quadPoints(qp []float64, rect pdf.Rectangle) []float64 {
	if len(qp) > 0 {
		return qp
	}
	return []float64{
		rect.LLx, rect.URy,
		rect.URx, rect.URy,
		rect.LLx, rect.LLy,
		rect.URx, rect.LLy,
	}
}

// quadRects returns the bounding boxes of the quadrilaterals in qp.
func quadRects(qp []float64) []pdf.Rectangle {
	var res []pdf.Rectangle
	for i := 0; i+8 <= len(qp); i += 8 {
		r := pdf.Rectangle{LLx: qp[i], LLy: qp[i+1], URx: qp[i], URy: qp[i+1]}
		for j := i + 2; j < i+8; j += 2 {
			r.LLx = min(r.LLx, qp[j])
			r.LLy = min(r.LLy, qp[j+1])
			r.URx = max(r.URx, qp[j])
			r.URy = max(r.URy, qp[j+1])
		}
		res = append(res, r)
	}
	return res
}
