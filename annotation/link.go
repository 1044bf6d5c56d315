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
	"errors"

	"seehuhn.de/go/pdfdoc"
)

// Link represents a hypertext link annotation.
//
// Exactly one of URI and Dest must be set.
type Link struct {
	Common

	// URI is the target of a URI action.
	URI string

	// Dest is the page shown when the link is activated.  The page is
	// displayed so that it fits the window.
	Dest pdf.Reference

	// Highlight (optional) is the visual effect used when the link is
	// activated: "N" (none), "I" (invert), "O" (outline) or "P" (push).
	//
	// This corresponds to the /H entry in the PDF annotation dictionary.
	Highlight pdf.Name

	// BorderWidth is the width of the border drawn around the link area.
	// The default is no border.
	BorderWidth float64
}

// AnnotationType returns "Link".
// This implements the [Annotation] interface.
func (l *Link) AnnotationType() pdf.Name {
	return "Link"
}

// AsDict implements the [Annotation] interface.
func (l *Link) AsDict() (*pdf.Dict, error) {
	if (l.URI == "") == (l.Dest == 0) {
		return nil, errLinkTarget
	}

	d := pdf.NewDict()
	if err := l.Common.fillDict(d, "Link"); err != nil {
		return nil, err
	}
	if l.URI != "" {
		action := pdf.NewDict().
			Set("S", pdf.Name("URI")).
			Set("URI", pdf.String(l.URI))
		d.Set("A", action)
	} else {
		d.Set("Dest", pdf.Array{l.Dest, pdf.Name("Fit")})
	}
	if l.Highlight != "" && l.Highlight != "I" {
		d.Set("H", l.Highlight)
	}
	d.Set("Border", pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Number(l.BorderWidth)})
	return d, nil
}

func decodeLink(r pdf.Getter, d *pdf.Dict) (*Link, error) {
	l := &Link{}
	if err := decodeCommon(r, &l.Common, d); err != nil {
		return nil, err
	}

	if action, _ := pdf.GetDict(r, d.Get("A")); action != nil {
		if tp, _ := pdf.GetName(r, action.Get("S")); tp == "URI" {
			uri, _ := pdf.GetString(r, action.Get("URI"))
			l.URI = string(uri)
		}
	}
	if dest, _ := pdf.GetArray(r, d.Get("Dest")); len(dest) > 0 {
		if ref, ok := dest[0].(pdf.Reference); ok {
			l.Dest = ref
		}
	}
	l.Highlight, _ = pdf.GetName(r, d.Get("H"))
	if border, _ := pdf.GetArray(r, d.Get("Border")); len(border) >= 3 {
		l.BorderWidth, _ = pdf.GetNumber(r, border[2])
	}
	return l, nil
}

var errLinkTarget = errors.New("link annotation needs either a URI or a destination")
