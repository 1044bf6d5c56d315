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
	"golang.org/x/text/encoding/charmap"
)

// WinAnsiEncode returns the WinAnsiEncoding character code for r.
func WinAnsiEncode(r rune) (byte, bool) {
	switch {
	case r >= 0x20 && r < 0x7F:
		return byte(r), true
	case r < 0x20 || r == 0x7F:
		return 0, false
	}
	c, ok := charmap.Windows1252.EncodeRune(r)
	if !ok || c >= 0x80 && c < 0xA0 && winAnsiNames[c] == "" {
		return 0, false
	}
	return c, true
}

// WinAnsiDecode returns the character represented by the WinAnsiEncoding
// character code c.
func WinAnsiDecode(c byte) rune {
	if c < 0x20 || winAnsiNames[c] == "" {
		return 0xFFFD
	}
	return charmap.Windows1252.DecodeByte(c)
}

// WinAnsiGlyphName returns the glyph name for the WinAnsiEncoding
// character code c, or "" if the code is unused.
func WinAnsiGlyphName(c byte) string {
	return winAnsiNames[c]
}

// MacRomanDecode returns the character represented by the
// MacRomanEncoding character code c.
func MacRomanDecode(c byte) rune {
	if c < 0x20 {
		return 0xFFFD
	}
	return charmap.Macintosh.DecodeByte(c)
}

var winAnsiNames = [256]string{
	0x20: "space", "exclam", "quotedbl", "numbersign", "dollar", "percent",
	"ampersand", "quotesingle", "parenleft", "parenright", "asterisk",
	"plus", "comma", "hyphen", "period", "slash",
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "colon", "semicolon", "less", "equal", "greater", "question",
	"at", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"bracketleft", "backslash", "bracketright", "asciicircum", "underscore",
	"grave", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"braceleft", "bar", "braceright", "asciitilde",

	0x80: "Euro",
	0x82: "quotesinglbase", "florin", "quotedblbase", "ellipsis", "dagger",
	"daggerdbl", "circumflex", "perthousand", "Scaron", "guilsinglleft", "OE",
	0x8E: "Zcaron",
	0x91: "quoteleft", "quoteright", "quotedblleft", "quotedblright",
	"bullet", "endash", "emdash", "tilde", "trademark", "scaron",
	"guilsinglright", "oe",
	0x9E: "zcaron", "Ydieresis",

	0xA0: "space", "exclamdown", "cent", "sterling", "currency", "yen",
	"brokenbar", "section", "dieresis", "copyright", "ordfeminine",
	"guillemotleft", "logicalnot", "hyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu",
	"paragraph", "periodcentered", "cedilla", "onesuperior", "ordmasculine",
	"guillemotright", "onequarter", "onehalf", "threequarters",
	"questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adieresis", "Aring", "AE",
	"Ccedilla", "Egrave", "Eacute", "Ecircumflex", "Edieresis", "Igrave",
	"Iacute", "Icircumflex", "Idieresis", "Eth", "Ntilde", "Ograve",
	"Oacute", "Ocircumflex", "Otilde", "Odieresis", "multiply", "Oslash",
	"Ugrave", "Uacute", "Ucircumflex", "Udieresis", "Yacute", "Thorn",
	"germandbls",
	"agrave", "aacute", "acircumflex", "atilde", "adieresis", "aring", "ae",
	"ccedilla", "egrave", "eacute", "ecircumflex", "edieresis", "igrave",
	"iacute", "icircumflex", "idieresis", "eth", "ntilde", "ograve",
	"oacute", "ocircumflex", "otilde", "odieresis", "divide", "oslash",
	"ugrave", "uacute", "ucircumflex", "udieresis", "yacute", "thorn",
	"ydieresis",
}
