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

// Package truetype implements TrueType fonts for use in PDF files.
//
// Glyph metrics are taken from the "cmap" and "hmtx" tables of the font
// file.  Fonts are embedded as simple fonts, using WinAnsiEncoding, with
// the complete font file stored in a /FontFile2 stream.
package truetype

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// Font is a TrueType font.  Fonts are immutable and can be shared
// between documents.
type Font struct {
	info *sfnt.Font
	data []byte
	cmap interface{ Lookup(rune) glyph.ID }
}

// Load reads a TrueType font from a file.
func Load(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse reads a TrueType font from the contents of a font file.
// The data slice is kept and must not be modified by the caller.
func Parse(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("truetype: %w", err)
	}
	if !info.IsGlyf() {
		return nil, errors.New("truetype: no glyf outlines in font")
	}
	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("truetype: %w", err)
	}
	return &Font{info: info, data: data, cmap: cmap}, nil
}

// PostScriptName implements the [font.Font] interface.
func (f *Font) PostScriptName() string {
	return f.info.PostScriptName()
}

// UnitsPerEm implements the [font.Font] interface.
func (f *Font) UnitsPerEm() uint16 {
	return f.info.UnitsPerEm
}

// AdvanceWidth implements the [font.Font] interface.
// The value is taken from the "hmtx" table.
func (f *Font) AdvanceWidth(gid glyph.ID) float64 {
	if int(gid) >= f.info.NumGlyphs() {
		return 0
	}
	return float64(f.info.GlyphWidth(gid))
}

// Ascent implements the [font.Font] interface.
func (f *Font) Ascent() float64 {
	return float64(f.info.Ascent)
}

// Descent implements the [font.Font] interface.
func (f *Font) Descent() float64 {
	return float64(f.info.Descent)
}

// GlyphID implements the [font.Font] interface.
// The value is taken from the "cmap" table.
func (f *Font) GlyphID(r rune) glyph.ID {
	return f.cmap.Lookup(r)
}

// Encode implements the [font.Font] interface.
// Characters without a glyph in the font cannot be encoded.
func (f *Font) Encode(r rune) (byte, bool) {
	c, ok := font.WinAnsiEncode(r)
	if !ok || f.GlyphID(r) == 0 {
		return 0, false
	}
	return c, true
}

// IsEmbedded implements the [font.Font] interface.
func (f *Font) IsEmbedded() bool {
	return true
}

// Embed implements the [font.Font] interface.
func (f *Font) Embed(a *pdf.Arena) (pdf.Reference, error) {
	const firstChar, lastChar = 32, 255

	fontFile := pdf.NewDecodedStream(pdf.NewDict().
		Set("Length1", pdf.Integer(len(f.data))).
		Set("Filter", pdf.Name("FlateDecode")), f.data)

	q := 1000 / float64(f.UnitsPerEm())
	widths := font.SimpleWidths(f, firstChar, lastChar, font.WinAnsiDecode)
	var maxWidth float64
	for _, w := range widths {
		if x, ok := w.(pdf.Integer); ok && float64(x) > maxWidth {
			maxWidth = float64(x)
		}
	}

	flags := font.FlagNonsymbolic
	italicAngle := float64(f.info.ItalicAngle)
	if italicAngle != 0 {
		flags |= font.FlagItalic
	}
	ascent := f.Ascent() * q
	descent := f.Descent() * q
	capHeight := float64(f.info.CapHeight) * q
	if capHeight <= 0 {
		capHeight = ascent
	}
	fd := &font.Descriptor{
		FontName:    f.PostScriptName(),
		Flags:       flags,
		FontBBox:    pdf.Rectangle{LLx: 0, LLy: math.Round(descent), URx: maxWidth, URy: math.Round(ascent)},
		ItalicAngle: italicAngle,
		Ascent:      ascent,
		Descent:     descent,
		CapHeight:   capHeight,
		StemV:       80,
		FontFileKey: "FontFile2",
		FontFile:    fontFile,
	}
	fdRef := a.Add(fd.AsDict())

	dict := pdf.NewDict()
	dict.Set("Type", pdf.Name("Font"))
	dict.Set("Subtype", pdf.Name("TrueType"))
	dict.Set("BaseFont", pdf.Name(f.PostScriptName()))
	dict.Set("FirstChar", pdf.Integer(firstChar))
	dict.Set("LastChar", pdf.Integer(lastChar))
	dict.Set("Widths", widths)
	dict.Set("FontDescriptor", fdRef)
	dict.Set("Encoding", pdf.Name("WinAnsiEncoding"))
	return a.Add(dict), nil
}

var _ font.Font = (*Font)(nil)
