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

package content

import (
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/pdfdoc/font/standard"
	"seehuhn.de/go/sfnt/glyph"
)

// fontInfo holds the information needed to position and decode text
// shown in a font.
type fontInfo struct {
	name    pdf.Name
	m       *font.Metrics
	std     *standard.Instance
	ascent  float64
	descent float64
}

func makeFontInfo(r pdf.Getter, ref pdf.Object) *fontInfo {
	m, err := font.ReadMetrics(r, ref)
	if err != nil {
		// damaged font dictionaries are replaced by default metrics
		return &fontInfo{ascent: 750, descent: -250}
	}

	res := &fontInfo{
		name:    m.BaseFont,
		m:       m,
		ascent:  m.Ascent,
		descent: m.Descent,
	}
	if std, ok := standard.Lookup(string(m.BaseFont)); ok {
		res.std = std
		if res.ascent == 0 && res.descent == 0 {
			res.ascent = std.Ascent()
			res.descent = std.Descent()
		}
	}
	if res.ascent == 0 && res.descent == 0 {
		res.ascent = 750
		res.descent = -250
	}
	return res
}

// width returns the glyph width of character code c, in thousandths of a
// text space unit.
func (f *fontInfo) width(c byte) float64 {
	if f.m != nil {
		if w, ok := f.m.Width(c); ok {
			return w
		}
	}
	if f.std != nil {
		return f.std.AdvanceWidth(glyph.ID(c))
	}
	return 500
}

func (f *fontInfo) decode(c byte) rune {
	if f.m != nil {
		return f.m.Decode(c)
	}
	return font.WinAnsiDecode(c)
}
