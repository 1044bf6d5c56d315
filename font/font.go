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

// Package font defines the interface used to measure and encode text,
// together with helpers shared by the individual font implementations.
//
// All fonts handled by this library are simple fonts: each glyph is
// selected by a single byte character code.  Text is encoded using
// WinAnsiEncoding, except for the symbolic standard fonts which use their
// built-in encoding.
package font

import (
	"iter"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/sfnt/glyph"
)

// Font represents a font which can be used to lay out text.
//
// Implementations are immutable once created and may be shared between
// documents.
type Font interface {
	// PostScriptName returns the PostScript name of the font.
	PostScriptName() string

	// UnitsPerEm returns the number of font design units per em.
	UnitsPerEm() uint16

	// AdvanceWidth returns the advance width of a glyph,
	// in font design units.
	AdvanceWidth(gid glyph.ID) float64

	// Ascent and Descent give the vertical extent of the font above and
	// below the baseline, in font design units.  Descent is negative.
	Ascent() float64
	Descent() float64

	// GlyphID returns the glyph used to show r.  The value 0 is
	// returned if the font has no glyph for r.
	GlyphID(r rune) glyph.ID

	// Encode returns the character code used for r in PDF content streams.
	Encode(r rune) (byte, bool)

	// Embed writes the font dictionary, and the font file if the font is
	// embedded, into the arena.
	Embed(a *pdf.Arena) (pdf.Reference, error)

	// IsEmbedded reports whether Embed includes the font program.
	IsEmbedded() bool
}

// Glyph is a single glyph of a GlyphLine.
type Glyph struct {
	GID glyph.ID

	// Code is the character code used in the content stream.
	Code byte

	// Advance is the advance width in font design units.
	Advance float64

	// Text is the text represented by the glyph.
	Text string
}

// GlyphLine is a sequence of glyphs, as used for one line of text.
type GlyphLine []Glyph

// Glyphs returns the glyphs for the text s.  The sequence is computed
// lazily.
//
// Characters which cannot be encoded in the font are shown using the
// glyph for '?', but keep their original Text.
func Glyphs(f Font, s string) iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		for _, r := range s {
			g := Glyph{Text: string(r)}
			code, ok := f.Encode(r)
			gid := f.GlyphID(r)
			if !ok {
				code, _ = f.Encode('?')
				gid = f.GlyphID('?')
			}
			g.GID = gid
			g.Code = code
			g.Advance = f.AdvanceWidth(gid)
			if !yield(g) {
				return
			}
		}
	}
}

// Layout collects the glyphs for s into a GlyphLine.
func Layout(f Font, s string) GlyphLine {
	var res GlyphLine
	for g := range Glyphs(f, s) {
		res = append(res, g)
	}
	return res
}

// WidthInTextSpace returns the total advance of the glyphs, for the given
// font size.
func (l GlyphLine) WidthInTextSpace(f Font, size float64) float64 {
	var w float64
	for _, g := range l {
		w += g.Advance
	}
	return w * size / float64(f.UnitsPerEm())
}

// Text returns the text represented by the glyphs.
func (l GlyphLine) Text() string {
	n := 0
	for _, g := range l {
		n += len(g.Text)
	}
	buf := make([]byte, 0, n)
	for _, g := range l {
		buf = append(buf, g.Text...)
	}
	return string(buf)
}

// Encode returns the character codes of the glyphs, as used in a PDF
// string for the Tj operator.
func (l GlyphLine) Encode() pdf.String {
	res := make(pdf.String, len(l))
	for i, g := range l {
		res[i] = g.Code
	}
	return res
}

// TextWidth returns the width of s when set in font f at the given size.
func TextWidth(f Font, s string, size float64) float64 {
	var w float64
	for g := range Glyphs(f, s) {
		w += g.Advance
	}
	return w * size / float64(f.UnitsPerEm())
}

// Height returns the distance between ascent and descent, scaled to
// the given font size.
func Height(f Font, size float64) float64 {
	return (f.Ascent() - f.Descent()) * size / float64(f.UnitsPerEm())
}
