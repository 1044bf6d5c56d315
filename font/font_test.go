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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/sfnt/glyph"
)

// monoFont is a minimal Font, where every glyph is half an em wide.
type monoFont struct{}

func (monoFont) PostScriptName() string                  { return "Mono" }
func (monoFont) UnitsPerEm() uint16                      { return 2048 }
func (monoFont) AdvanceWidth(gid glyph.ID) float64       { return 1024 }
func (monoFont) Ascent() float64                         { return 1600 }
func (monoFont) Descent() float64                        { return -448 }
func (monoFont) GlyphID(r rune) glyph.ID                 { return glyph.ID(r) }
func (monoFont) Encode(r rune) (byte, bool)              { return WinAnsiEncode(r) }
func (monoFont) Embed(*pdf.Arena) (pdf.Reference, error) { return 0, nil }
func (monoFont) IsEmbedded() bool                        { return false }

func TestWinAnsi(t *testing.T) {
	for c := 0x20; c < 256; c++ {
		r := WinAnsiDecode(byte(c))
		if r == 0xFFFD {
			continue
		}
		c2, ok := WinAnsiEncode(r)
		if !ok || int(c2) != c {
			t.Errorf("%d -> %q -> %d %t", c, r, c2, ok)
		}
	}
	for _, c := range []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D} {
		if r := WinAnsiDecode(c); r != 0xFFFD {
			t.Errorf("unused code %d decoded as %q", c, r)
		}
	}
	if name := WinAnsiGlyphName(0xE4); name != "adieresis" {
		t.Errorf("wrong glyph name %q", name)
	}
}

func TestGlyphLine(t *testing.T) {
	f := monoFont{}
	line := Layout(f, "abcd")
	if len(line) != 4 {
		t.Fatalf("wrong length %d", len(line))
	}
	if w := line.WidthInTextSpace(f, 10); w != 20 {
		t.Errorf("width = %g, expected 20", w)
	}
	if w := TextWidth(f, "abcd", 10); w != 20 {
		t.Errorf("width = %g, expected 20", w)
	}
	if s := line.Encode(); string(s) != "abcd" {
		t.Errorf("wrong encoding %q", s)
	}

	// the sequence can be stopped early
	n := 0
	for range Glyphs(f, "abcdef") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("n = %d", n)
	}
}

func TestSimpleWidths(t *testing.T) {
	f := monoFont{}
	ww := SimpleWidths(f, 0x7E, 0x81, WinAnsiDecode)
	expected := pdf.Array{pdf.Integer(500), pdf.Integer(0), pdf.Integer(500), pdf.Integer(0)}
	if d := cmp.Diff(expected, ww); d != "" {
		t.Error(d)
	}
}

func TestReadMetrics(t *testing.T) {
	a := pdf.NewArena()
	fd := a.Add(pdf.NewDict().
		Set("Type", pdf.Name("FontDescriptor")).
		Set("Ascent", pdf.Integer(700)).
		Set("Descent", pdf.Integer(-200)).
		Set("MissingWidth", pdf.Integer(250)))
	enc := pdf.NewDict().
		Set("Type", pdf.Name("Encoding")).
		Set("Differences", pdf.Array{pdf.Integer(65), pdf.Name("adieresis"), pdf.Name("uni263A")})
	dict := pdf.NewDict().
		Set("Type", pdf.Name("Font")).
		Set("Subtype", pdf.Name("TrueType")).
		Set("BaseFont", pdf.Name("Test")).
		Set("FirstChar", pdf.Integer(65)).
		Set("Widths", pdf.Array{pdf.Integer(600), pdf.Real(612.5)}).
		Set("FontDescriptor", fd).
		Set("Encoding", enc)

	m, err := ReadMetrics(a, dict)
	if err != nil {
		t.Fatal(err)
	}
	if m.BaseFont != "Test" || m.Ascent != 700 || m.Descent != -200 {
		t.Errorf("wrong metrics %v", m)
	}
	if w, ok := m.Width('B'); !ok || w != 612.5 {
		t.Errorf("width of B = %g %t", w, ok)
	}
	if w, _ := m.Width('Z'); w != 250 {
		t.Errorf("missing width = %g", w)
	}
	got := string([]rune{m.Decode('A'), m.Decode('B'), m.Decode('C')})
	if got != "ä☺C" {
		t.Errorf("wrong text %q", got)
	}
}
