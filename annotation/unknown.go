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

// Unknown represents an annotation of a type not supported by this
// package.  The annotation dictionary is kept unchanged.
type Unknown struct {
	Common

	Subtype pdf.Name
	Dict    *pdf.Dict
}

// AnnotationType implements the [Annotation] interface.
func (u *Unknown) AnnotationType() pdf.Name {
	return u.Subtype
}

// AsDict implements the [Annotation] interface.
// Changes to the Common fields are applied to a copy of the original
// dictionary.
func (u *Unknown) AsDict() (*pdf.Dict, error) {
	d := u.Dict.Clone()
	if d == nil {
		d = pdf.NewDict()
	}
	d.Delete("P")
	if err := u.Common.fillDict(d, u.Subtype); err != nil {
		return nil, err
	}
	return d, nil
}
