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

package ascii85

import (
	"io"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"BOu!rDZ~>", "hello"},
		{"BOu!r\nDZ ~>", "hello"},
		{"z@:E^~>", "\x00\x00\x00\x00abc"},
		{`87cURD]i,"Ebo80~>`, "Hello World!"},
		{"BOu!rDZ", "hello"},
		{"~>", ""},
	}
	for _, test := range cases {
		out, err := io.ReadAll(Decode(strings.NewReader(test.in)))
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if string(out) != test.out {
			t.Errorf("%q: got %q, want %q", test.in, out, test.out)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, in := range []string{"BOu!{DZ~>", "BOu!rDZ~x"} {
		_, err := io.ReadAll(Decode(strings.NewReader(in)))
		if err == nil {
			t.Errorf("%q: missing error", in)
		}
	}
}
