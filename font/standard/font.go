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

// Package standard provides access to the 14 standard PDF fonts.
//
// The fonts are not embedded into PDF files.  Glyph widths come from
// built-in tables, so no font files are needed.
package standard

import (
	"fmt"

	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
	"seehuhn.de/go/sfnt/glyph"
)

// Font identifies the individual fonts.
type Font string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	CourierOblique       Font = "Courier-Oblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	HelveticaOblique     Font = "Helvetica-Oblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesBoldItalic      Font = "Times-BoldItalic"
	TimesItalic          Font = "Times-Italic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

// All lists the 14 standard PDF fonts defined in this package.
var All = []Font{
	Courier,
	CourierBold,
	CourierBoldOblique,
	CourierOblique,
	Helvetica,
	HelveticaBold,
	HelveticaBoldOblique,
	HelveticaOblique,
	TimesRoman,
	TimesBold,
	TimesBoldItalic,
	TimesItalic,
	Symbol,
	ZapfDingbats,
}

// New returns a font instance for f.
// New panics if f is not one of the 14 standard fonts.
func (f Font) New() *Instance {
	m, ok := allMetrics[f]
	if !ok {
		panic(fmt.Sprintf("standard: unknown font %q", string(f)))
	}
	return &Instance{name: f, m: m}
}

// Lookup returns the font instance for the given PostScript name.
// Some common alternative names, like "Arial", are recognised.
func Lookup(name string) (*Instance, bool) {
	f := Font(name)
	if alt, ok := aliases[name]; ok {
		f = alt
	}
	if _, ok := allMetrics[f]; !ok {
		return nil, false
	}
	return f.New(), true
}

var aliases = map[string]Font{
	"Arial":                    Helvetica,
	"Arial,Bold":               HelveticaBold,
	"Arial,Italic":             HelveticaOblique,
	"Arial,BoldItalic":         HelveticaBoldOblique,
	"CourierNew":               Courier,
	"CourierNew,Bold":          CourierBold,
	"TimesNewRoman":            TimesRoman,
	"TimesNewRoman,Bold":       TimesBold,
	"TimesNewRoman,Italic":     TimesItalic,
	"TimesNewRoman,BoldItalic": TimesBoldItalic,
}

// Instance is a standard font, ready for use in a document.
//
// Glyph IDs are the character codes of the font encoding: WinAnsiEncoding
// for the Latin fonts, and the built-in encoding for Symbol and
// ZapfDingbats.
type Instance struct {
	name Font
	m    *metrics
}

// PostScriptName implements the [font.Font] interface.
func (f *Instance) PostScriptName() string {
	return string(f.name)
}

// UnitsPerEm implements the [font.Font] interface.
// Standard font metrics are given in thousandths of an em.
func (f *Instance) UnitsPerEm() uint16 {
	return 1000
}

// AdvanceWidth implements the [font.Font] interface.
func (f *Instance) AdvanceWidth(gid glyph.ID) float64 {
	if gid < 32 || gid > 255 {
		return 0
	}
	if f.m.widths == nil {
		return 600
	}
	return float64(f.m.widths[gid-32])
}

// Ascent implements the [font.Font] interface.
func (f *Instance) Ascent() float64 {
	return f.m.ascent
}

// Descent implements the [font.Font] interface.
func (f *Instance) Descent() float64 {
	return f.m.descent
}

// GlyphID implements the [font.Font] interface.
func (f *Instance) GlyphID(r rune) glyph.ID {
	c, ok := f.Encode(r)
	if !ok {
		return 0
	}
	return glyph.ID(c)
}

// Encode implements the [font.Font] interface.
func (f *Instance) Encode(r rune) (byte, bool) {
	if f.m.symbolic {
		if r < 32 || r > 255 {
			return 0, false
		}
		c := byte(r)
		if f.m.widths[c-32] == 0 {
			return 0, false
		}
		return c, true
	}
	return font.WinAnsiEncode(r)
}

// IsEmbedded implements the [font.Font] interface.
// Standard fonts are never embedded.
func (f *Instance) IsEmbedded() bool {
	return false
}

// Embed implements the [font.Font] interface.
// The font dictionary has no /Widths array, since PDF viewers know the
// metrics of the standard fonts.
func (f *Instance) Embed(a *pdf.Arena) (pdf.Reference, error) {
	dict := pdf.NewDict()
	dict.Set("Type", pdf.Name("Font"))
	dict.Set("Subtype", pdf.Name("Type1"))
	dict.Set("BaseFont", pdf.Name(f.name))
	if !f.m.symbolic {
		dict.Set("Encoding", pdf.Name("WinAnsiEncoding"))
	}
	return a.Add(dict), nil
}

// Descriptor returns a font descriptor for the font.  This is only needed
// when a standard font is written with an explicit /Widths array.
func (f *Instance) Descriptor() *font.Descriptor {
	flags := f.m.flags
	if f.m.symbolic {
		flags |= font.FlagSymbolic
	} else {
		flags |= font.FlagNonsymbolic
	}
	return &font.Descriptor{
		FontName:    string(f.name),
		Flags:       flags,
		FontBBox:    f.m.bbox,
		ItalicAngle: f.m.italicAngle,
		Ascent:      f.m.ascent,
		Descent:     f.m.descent,
		CapHeight:   f.m.capHeight,
		StemV:       f.m.stemV,
	}
}

var _ font.Font = (*Instance)(nil)
