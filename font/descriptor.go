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

package font

import (
	"math"

	"seehuhn.de/go/pdfdoc"
)

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of PDF 32000-1:2008.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0
	FlagSerif       Flags = 1 << 1
	FlagSymbolic    Flags = 1 << 2
	FlagScript      Flags = 1 << 3
	FlagNonsymbolic Flags = 1 << 5
	FlagItalic      Flags = 1 << 6
	FlagAllCap      Flags = 1 << 16
	FlagSmallCap    Flags = 1 << 17
	FlagForceBold   Flags = 1 << 18
)

// Descriptor represents a PDF font descriptor.
// All lengths are in PDF glyph space units (1/1000 of text space).
//
// See section 9.8.1 of PDF 32000-1:2008.
type Descriptor struct {
	FontName    string
	Flags       Flags
	FontBBox    pdf.Rectangle
	ItalicAngle float64
	Ascent      float64
	Descent     float64
	CapHeight   float64
	StemV       float64

	// FontFile, if set, is the key and stream for the embedded font
	// program, for example /FontFile2 for TrueType fonts.
	FontFileKey pdf.Name
	FontFile    *pdf.Stream
}

// AsDict returns the font descriptor dictionary.
func (d *Descriptor) AsDict() *pdf.Dict {
	res := pdf.NewDict()
	res.Set("Type", pdf.Name("FontDescriptor"))
	res.Set("FontName", pdf.Name(d.FontName))
	res.Set("Flags", pdf.Integer(d.Flags))
	res.Set("FontBBox", d.FontBBox.AsArray())
	res.Set("ItalicAngle", pdf.Number(d.ItalicAngle))
	res.Set("Ascent", pdf.Number(math.Round(d.Ascent)))
	res.Set("Descent", pdf.Number(math.Round(d.Descent)))
	res.Set("CapHeight", pdf.Number(math.Round(d.CapHeight)))
	res.Set("StemV", pdf.Number(math.Round(d.StemV)))
	if d.FontFile != nil && d.FontFileKey != "" {
		res.Set(d.FontFileKey, d.FontFile)
	}
	return res
}

// SimpleWidths returns the /Widths array for a simple font, covering the
// character codes first to last.  Widths are given in PDF glyph space units.
func SimpleWidths(f Font, first, last byte, decode func(byte) rune) pdf.Array {
	q := 1000 / float64(f.UnitsPerEm())
	res := make(pdf.Array, 0, int(last)-int(first)+1)
	for c := int(first); c <= int(last); c++ {
		r := decode(byte(c))
		var w float64
		if r != 0xFFFD {
			w = f.AdvanceWidth(f.GlyphID(r)) * q
		}
		res = append(res, pdf.Number(math.Round(w)))
	}
	return res
}
