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

package pdf

import "testing"

func TestVersion(t *testing.T) {
	for v := V1_0; v <= V1_7; v++ {
		s := v.String()
		w, err := ParseVersion(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
		} else if w != v {
			t.Errorf("%s: got %d, want %d", s, w, v)
		}
	}
	if V1_7.String() != "1.7" {
		t.Errorf("wrong string %q", V1_7.String())
	}
	if _, err := ParseVersion("2.5"); err == nil {
		t.Error("missing error")
	}
}
