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

package float

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		x    float64
		prec int
		out  string
	}{
		{0.5, 5, ".5"},
		{5, 5, "5"},
		{100, 5, "100"},
		{10.5, 5, "10.5"},
		{-0.25, 5, "-.25"},
		{1e-7, 5, "0"},
		{-1e-7, 5, "0"},
		{123.456, 2, "123.46"},
		{1.0 / 3.0, 5, ".33333"},
	}
	for _, test := range cases {
		out := Format(test.x, test.prec)
		if out != test.out {
			t.Errorf("Format(%g, %d) = %q, want %q", test.x, test.prec, out, test.out)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(2.345678, 3); got != 2.346 {
		t.Errorf("Round = %g", got)
	}
}
