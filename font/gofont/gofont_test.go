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

package gofont

import (
	"testing"

	"seehuhn.de/go/pdfdoc/font"
)

func TestAll(t *testing.T) {
	for _, f := range All {
		F, err := f.New()
		if err != nil {
			t.Errorf("font %d: %v", f, err)
			continue
		}
		if F.GlyphID('g') == 0 {
			t.Errorf("%s: no glyph for 'g'", F.PostScriptName())
		}
	}
}

func TestMonoWidths(t *testing.T) {
	F := Mono.Must()
	w1 := font.TextWidth(F, "iiii", 12)
	w2 := font.TextWidth(F, "MMMM", 12)
	if w1 != w2 || w1 == 0 {
		t.Errorf("Go Mono is not monospaced: %g != %g", w1, w2)
	}
}
