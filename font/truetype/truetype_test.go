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

package truetype

import (
	"bytes"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/pdfdoc"
	"seehuhn.de/go/pdfdoc/font"
)

func TestGoRegular(t *testing.T) {
	F, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if F.PostScriptName() == "" {
		t.Error("missing PostScript name")
	}
	if F.UnitsPerEm() != 2048 {
		t.Errorf("wrong units per em %d", F.UnitsPerEm())
	}
	if F.Ascent() <= 0 || F.Descent() >= 0 {
		t.Errorf("wrong ascent/descent %g %g", F.Ascent(), F.Descent())
	}

	gid := F.GlyphID('A')
	if gid == 0 {
		t.Fatal("no glyph for 'A'")
	}
	if F.AdvanceWidth(gid) <= 0 {
		t.Error("glyph 'A' has no width")
	}
	if code, ok := F.Encode('A'); !ok || code != 'A' {
		t.Errorf("wrong code %d %t", code, ok)
	}

	w1 := font.TextWidth(F, "ii", 10)
	w2 := font.TextWidth(F, "WW", 10)
	if !(w1 < w2) {
		t.Errorf("font is not proportional: %g %g", w1, w2)
	}
}

func TestEmbed(t *testing.T) {
	F, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	a := pdf.NewArena()
	ref, err := F.Embed(a)
	if err != nil {
		t.Fatal(err)
	}
	dict := pdf.MustDict(must(a.Get(ref)))
	if dict.Get("Subtype") != pdf.Name("TrueType") {
		t.Errorf("wrong subtype %v", dict.Get("Subtype"))
	}
	widths, err := pdf.GetArray(a, dict.Get("Widths"))
	if err != nil || len(widths) != 224 {
		t.Fatalf("wrong widths: %d %v", len(widths), err)
	}

	fd, err := pdf.GetDict(a, dict.Get("FontDescriptor"))
	if err != nil {
		t.Fatal(err)
	}
	stm, err := pdf.GetStream(a, fd.Get("FontFile2"))
	if err != nil || stm == nil {
		t.Fatalf("missing font file: %v", err)
	}
	data, err := stm.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, goregular.TTF) {
		t.Error("font file differs from the original")
	}
	if !F.IsEmbedded() {
		t.Error("font not reported as embedded")
	}
}

func must(obj pdf.Object, err error) pdf.Object {
	if err != nil {
		panic(err)
	}
	return obj
}
