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

// Package type1 provides non-embedded Type 1 fonts, with metrics read
// from Adobe Font Metrics (AFM) files.
package type1

import (
	"fmt"
	"io"
	"math"
	"os"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/sfnt/glyph"
)

// Font is a Type 1 font described by an AFM file.
//
// The font program is not embedded, so PDF viewers need to have the font
// installed.  Glyph IDs are WinAnsiEncoding character codes.
type Font struct {
	name      string
	widths    [256]float64
	has       [256]bool
	ascent    float64
	descent   float64
	capHeight float64
	italic    float64
	fixed     bool
}

// LoadAFM reads font metrics from an AFM file.
func LoadAFM(fname string) (*Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadAFM(fd)
}

// ReadAFM reads font metrics in AFM format.
func ReadAFM(r io.Reader) (*Font, error) {
	metrics, err := afm.Read(r)
	if err != nil {
		return nil, fmt.Errorf("type1: %w", err)
	}
	if metrics.FontName == "" {
		return nil, fmt.Errorf("type1: missing font name")
	}

	res := &Font{
		name:      metrics.FontName,
		ascent:    float64(metrics.Ascent),
		descent:   float64(metrics.Descent),
		capHeight: float64(metrics.CapHeight),
		italic:    float64(metrics.ItalicAngle),
		fixed:     metrics.IsFixedPitch,
	}
	for c := 32; c < 256; c++ {
		name := font.WinAnsiGlyphName(byte(c))
		if name == "" {
			continue
		}
		g, ok := metrics.Glyphs[name]
		if !ok {
			continue
		}
		res.widths[c] = float64(g.WidthX)
		res.has[c] = true
	}
	if res.ascent == 0 {
		res.ascent = 750
	}
	if res.descent == 0 {
		res.descent = -250
	}
	return res, nil
}

// PostScriptName implements the [font.Font] interface.
func (f *Font) PostScriptName() string {
	return f.name
}

// UnitsPerEm implements the [font.Font] interface.
func (f *Font) UnitsPerEm() uint16 {
	return 1000
}

// AdvanceWidth implements the [font.Font] interface.
func (f *Font) AdvanceWidth(gid glyph.ID) float64 {
	if gid > 255 {
		return 0
	}
	return f.widths[gid]
}

// Ascent implements the [font.Font] interface.
func (f *Font) Ascent() float64 {
	return f.ascent
}

// Descent implements the [font.Font] interface.
func (f *Font) Descent() float64 {
	return f.descent
}

// GlyphID implements the [font.Font] interface.
func (f *Font) GlyphID(r rune) glyph.ID {
	c, ok := f.Encode(r)
	if !ok {
		return 0
	}
	return glyph.ID(c)
}

// Encode implements the [font.Font] interface.
func (f *Font) Encode(r rune) (byte, bool) {
	c, ok := font.WinAnsiEncode(r)
	if !ok || !f.has[c] {
		return 0, false
	}
	return c, true
}

// IsEmbedded implements the [font.Font] interface.
func (f *Font) IsEmbedded() bool {
	return false
}

// Embed implements the [font.Font] interface.
func (f *Font) Embed(a *pdf.Arena) (pdf.Reference, error) {
	var first, last byte = 255, 0
	for c := 32; c < 256; c++ {
		if f.has[c] {
			first = min(first, byte(c))
			last = max(last, byte(c))
		}
	}
	if first > last {
		return 0, fmt.Errorf("type1: font %q has no WinAnsi glyphs", f.name)
	}

	flags := font.FlagNonsymbolic
	if f.fixed {
		flags |= font.FlagFixedPitch
	}
	if f.italic != 0 {
		flags |= font.FlagItalic
	}
	var maxWidth float64
	for _, w := range f.widths {
		maxWidth = math.Max(maxWidth, w)
	}
	fd := &font.Descriptor{
		FontName:    f.name,
		Flags:       flags,
		FontBBox:    pdf.Rectangle{LLx: 0, LLy: f.descent, URx: maxWidth, URy: f.ascent},
		ItalicAngle: f.italic,
		Ascent:      f.ascent,
		Descent:     f.descent,
		CapHeight:   f.capHeight,
		StemV:       80,
	}

	dict := pdf.NewDict()
	dict.Set("Type", pdf.Name("Font"))
	dict.Set("Subtype", pdf.Name("Type1"))
	dict.Set("BaseFont", pdf.Name(f.name))
	dict.Set("FirstChar", pdf.Integer(first))
	dict.Set("LastChar", pdf.Integer(last))
	dict.Set("Widths", font.SimpleWidths(f, first, last, font.WinAnsiDecode))
	dict.Set("FontDescriptor", a.Add(fd.AsDict()))
	dict.Set("Encoding", pdf.Name("WinAnsiEncoding"))
	return a.Add(dict), nil
}

var _ font.Font = (*Font)(nil)
