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

import "seehuhn.de/go/pdfdoc"

// Text represents a "sticky note" attached to a point on the page.
type Text struct {
	Common
	Markup

	// Open specifies whether the note is initially displayed open.
	Open bool

	// Icon (optional) is the name of the icon used to display the note,
	// for example "Comment", "Key", "Note", "Help", "NewParagraph",
	// "Paragraph" or "Insert".  The default is "Note".
	//
	// This corresponds to the /Name entry in the PDF annotation dictionary.
	Icon pdf.Name
}

// AnnotationType returns "Text".
// This implements the [Annotation] interface.
func (t *Text) AnnotationType() pdf.Name {
	return "Text"
}

// AsDict implements the [Annotation] interface.
func (t *Text) AsDict() (*pdf.Dict, error) {
	d := pdf.NewDict()
	if err := t.Common.fillDict(d, "Text"); err != nil {
		return nil, err
	}
	t.Markup.fillDict(d)
	if t.Open {
		d.Set("Open", pdf.Bool(true))
	}
	if t.Icon != "" && t.Icon != "Note" {
		d.Set("Name", t.Icon)
	}
	return d, nil
}

func decodeText(r pdf.Getter, d *pdf.Dict) (*Text, error) {
	t := &Text{}
	if err := decodeCommon(r, &t.Common, d); err != nil {
		return nil, err
	}
	decodeMarkup(r, &t.Markup, d)
	open, _ := pdf.GetBool(r, d.Get("Open"))
	t.Open = bool(open)
	t.Icon, _ = pdf.GetName(r, d.Get("Name"))
	if t.Icon == "" {
		t.Icon = "Note"
	}
	return t, nil
}
