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
	"fmt"
	"strconv"
	"strings"
	"sync"

	"seehuhn.de/go/pdfdoc"
)

// Metrics describes a simple font dictionary found in a PDF file.
// It provides the information needed to position and extract text.
type Metrics struct {
	Subtype  pdf.Name
	BaseFont pdf.Name

	// Widths holds the glyph widths for the codes starting at FirstChar,
	// in PDF glyph space units.  It is empty for standard fonts which
	// omit the /Widths array.
	FirstChar    int
	Widths       []float64
	MissingWidth float64

	Ascent  float64
	Descent float64

	decode [256]rune
}

// ReadMetrics reads a font dictionary.
func ReadMetrics(r pdf.Getter, obj pdf.Object) (*Metrics, error) {
	dict, err := pdf.GetDict(r, obj)
	if err != nil {
		return nil, err
	} else if dict == nil {
		return nil, fmt.Errorf("missing font dictionary")
	}

	res := &Metrics{}
	res.Subtype, err = pdf.GetName(r, dict.Get("Subtype"))
	if err != nil {
		return nil, fmt.Errorf("font /Subtype: %w", err)
	}
	res.BaseFont, err = pdf.GetName(r, dict.Get("BaseFont"))
	if err != nil {
		return nil, fmt.Errorf("font /BaseFont: %w", err)
	}

	first, err := pdf.GetInteger(r, dict.Get("FirstChar"))
	if err != nil {
		return nil, fmt.Errorf("font /FirstChar: %w", err)
	}
	res.FirstChar = int(first)
	widths, err := pdf.GetArray(r, dict.Get("Widths"))
	if err != nil {
		return nil, fmt.Errorf("font /Widths: %w", err)
	}
	for _, w := range widths {
		x, err := pdf.GetNumber(r, w)
		if err != nil {
			return nil, fmt.Errorf("font /Widths: %w", err)
		}
		res.Widths = append(res.Widths, x)
	}

	fd, err := pdf.GetDict(r, dict.Get("FontDescriptor"))
	if err != nil {
		return nil, fmt.Errorf("font /FontDescriptor: %w", err)
	}
	if fd != nil {
		res.MissingWidth, _ = pdf.GetNumber(r, fd.Get("MissingWidth"))
		res.Ascent, _ = pdf.GetNumber(r, fd.Get("Ascent"))
		res.Descent, _ = pdf.GetNumber(r, fd.Get("Descent"))
	}

	base := WinAnsiDecode
	encObj, err := pdf.Resolve(r, dict.Get("Encoding"))
	if err != nil {
		return nil, fmt.Errorf("font /Encoding: %w", err)
	}
	var diff pdf.Array
	switch enc := encObj.(type) {
	case pdf.Name:
		if enc == "MacRomanEncoding" {
			base = MacRomanDecode
		}
	case *pdf.Dict:
		if name, _ := enc.Get("BaseEncoding").(pdf.Name); name == "MacRomanEncoding" {
			base = MacRomanDecode
		}
		diff, _ = pdf.GetArray(r, enc.Get("Differences"))
	}
	for c := 0; c < 256; c++ {
		res.decode[c] = base(byte(c))
	}
	code := -1
	for _, obj := range diff {
		switch obj := obj.(type) {
		case pdf.Integer:
			code = int(obj)
		case pdf.Name:
			if code >= 0 && code < 256 {
				if u := runeForGlyphName(string(obj)); u != 0 {
					res.decode[code] = u
				}
				code++
			}
		}
	}

	return res, nil
}

// Width returns the width of the glyph for character code c, in PDF glyph
// space units.  If the font has no /Widths entry for c, ok is false.
func (m *Metrics) Width(c byte) (w float64, ok bool) {
	idx := int(c) - m.FirstChar
	if idx < 0 || idx >= len(m.Widths) {
		return m.MissingWidth, len(m.Widths) > 0
	}
	return m.Widths[idx], true
}

// Decode returns the text for character code c.
func (m *Metrics) Decode(c byte) rune {
	return m.decode[c]
}

var glyphNameRunes = sync.OnceValue(func() map[string]rune {
	m := make(map[string]rune, 256)
	for c := 255; c >= 0x20; c-- {
		if name := winAnsiNames[c]; name != "" {
			m[name] = WinAnsiDecode(byte(c))
		}
	}
	m["space"] = ' '
	m["hyphen"] = '-'
	m["fi"] = 'ﬁ'
	m["fl"] = 'ﬂ'
	m["dotlessi"] = 'ı'
	m["minus"] = '−'
	return m
})

func runeForGlyphName(name string) rune {
	if r, ok := glyphNameRunes()[name]; ok {
		return r
	}
	if hex, ok := strings.CutPrefix(name, "uni"); ok && len(hex) == 4 {
		x, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return rune(x)
		}
	}
	return 0
}
